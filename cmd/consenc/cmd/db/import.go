package db

import (
	"fmt"

	"consenc/cli"
	"consenc/config"
	"consenc/store"

	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

var importCmd = &cobra.Command{
	Use:   "import <name> <file?>",
	Short: "Decodes maps from a file or stdin and stores them under name.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(c *cobra.Command, args []string) error {
		var path string
		if len(args) == 2 {
			path = args[1]
		}
		return withDB(c, func(db *leveldb.DB, cfg *config.Config) error {
			maps, _, err := cli.ReadMapsFile(path, cfg)
			if err != nil {
				return err
			}
			info, err := store.PutMap(db, args[0], maps)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Stored %d maps (%d pairs) as %s. Hash: %s\n", info.MapCount, info.PairCount, info.Name, info.Hash)
			return nil
		})
	},
}

func init() {
	cmd.AddCommand(importCmd)
}
