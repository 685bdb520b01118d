package cmd

import (
	"fmt"

	"consenc/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use: "version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.UserAgent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
