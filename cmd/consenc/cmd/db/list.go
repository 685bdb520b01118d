package db

import (
	"strconv"
	"time"

	"consenc/cli"
	"consenc/config"
	"consenc/store"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists stored map sets.",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return withDB(c, func(db *leveldb.DB, cfg *config.Config) error {
			infos, err := store.ListMaps(db)
			if err != nil {
				return err
			}
			if cfg.Output.Format == config.OutputFormatJSON {
				if infos == nil {
					infos = []*store.MapInfo{}
				}
				return cli.WriteJSON(c.OutOrStdout(), infos)
			}

			table := tablewriter.NewWriter(c.OutOrStdout())
			table.SetHeader([]string{"Name", "Maps", "Pairs", "Hash", "Imported At"})
			for _, info := range infos {
				table.Append([]string{
					info.Name,
					strconv.Itoa(info.MapCount),
					strconv.Itoa(info.PairCount),
					info.Hash.String(),
					info.ImportedAt.Format(time.RFC3339),
				})
			}
			table.Render()
			return nil
		})
	},
}

func init() {
	cmd.AddCommand(listCmd)
}
