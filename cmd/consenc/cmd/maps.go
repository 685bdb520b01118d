package cmd

import (
	"consenc/cli"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Commands for raw PSBT key-value maps.",
}

var mapDecodeCmd = &cobra.Command{
	Use:   "decode [files...]",
	Short: "Decodes consecutive maps from files, or from stdin when no files are given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		paths := args
		if len(paths) == 0 {
			paths = []string{"-"}
		}

		views := make([]*cli.MapsView, len(paths))
		var g errgroup.Group
		g.SetLimit(cfg.Tuning.Workers)
		for i, path := range paths {
			g.Go(func() error {
				maps, n, err := cli.ReadMapsFile(path, cfg)
				if err != nil {
					return err
				}
				views[i] = cli.NewMapsView(cli.SourceName(path), n, maps)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for _, view := range views {
			if err := cli.WriteMaps(cmd.OutOrStdout(), cfg.Output.Format, view); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	mapCmd.AddCommand(mapDecodeCmd)
	rootCmd.AddCommand(mapCmd)
}
