package db

import (
	"consenc/cli"
	"consenc/config"
	"consenc/psbt"
	"consenc/store"

	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Prints the maps stored under name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return withDB(c, func(db *leveldb.DB, cfg *config.Config) error {
			info, err := store.GetMapInfo(db, args[0])
			if err != nil {
				return err
			}
			maps, err := store.LoadMaps(db, args[0])
			if err != nil {
				return err
			}
			var n uint64
			for _, pairs := range maps {
				n += uint64(len(psbt.EncodeMap(pairs)))
			}
			return cli.WriteMaps(c.OutOrStdout(), cfg.Output.Format, cli.NewMapsView(info.Name, n, maps))
		})
	},
}

func init() {
	cmd.AddCommand(showCmd)
}
