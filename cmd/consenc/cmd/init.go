package cmd

import (
	"fmt"

	"consenc/cli"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes consenc's home directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cli.InitHomeDir(cmd)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully initialized consenc in %s.\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
