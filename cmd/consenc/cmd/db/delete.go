package db

import (
	"fmt"

	"consenc/config"
	"consenc/store"

	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <names...>",
	Short: "Deletes stored map sets.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return withDB(c, func(db *leveldb.DB, cfg *config.Config) error {
			if err := store.DeleteMaps(db, args...); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Deleted %d map sets.\n", len(args))
			return nil
		})
	},
}

func init() {
	cmd.AddCommand(deleteCmd)
}
