package cmd

import (
	"fmt"
	"os"

	"consenc/cli"
	"consenc/cmd/consenc/cmd/db"
	"consenc/config"
	"consenc/log"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "consenc",
	Short:         "Encode and decode Bitcoin consensus compact sizes and raw PSBT records.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		level, err := log.NewLevel(cfg.LogLevel)
		if err != nil {
			return errors.Wrap(err, "error parsing log level")
		}
		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, config.DefaultHomePath, "Home directory for consenc's config and database.")
	rootCmd.PersistentFlags().String(cli.FlagFormat, config.DefaultConfig.Output.Format, "Output format (table or json).")
	rootCmd.PersistentFlags().String(cli.FlagInputFormat, config.DefaultConfig.Input.Format, "Input format (auto, hex or binary).")
	rootCmd.PersistentFlags().String(cli.FlagLogLevel, config.DefaultConfig.LogLevel, "Log level.")
	db.AddCmd(rootCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
