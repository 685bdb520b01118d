package cmd

import (
	"encoding/hex"
	"strconv"

	"consenc/cli"
	"consenc/cwire"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var compactSizeCmd = &cobra.Command{
	Use:   "compactsize",
	Short: "Commands for Bitcoin compact size integers.",
}

var compactSizeEncodeCmd = &cobra.Command{
	Use:   "encode <n>",
	Short: "Prints the canonical encoding of n.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return errors.Wrap(err, "n must be an unsigned 64-bit integer")
		}
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		encoded := cwire.EncodeToVec(cwire.NewCompactSizeEncoder(n))
		return cli.WriteFields(cmd.OutOrStdout(), cfg.Output.Format, [][2]string{
			{"value", strconv.FormatUint(n, 10)},
			{"hex", hex.EncodeToString(encoded)},
			{"length", strconv.Itoa(len(encoded))},
		})
	},
}

var compactSizeDecodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decodes a single canonical compact size.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := cli.ParseHexArg("input", args[0])
		if err != nil {
			return err
		}
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		n, err := cwire.DecodeFromSlice[uint64](cwire.NewCompactSizeDecoder(), b)
		if err != nil {
			return errors.Wrap(err, "error decoding compact size")
		}
		return cli.WriteFields(cmd.OutOrStdout(), cfg.Output.Format, [][2]string{
			{"value", strconv.FormatUint(n, 10)},
			{"hex", hex.EncodeToString(b)},
			{"length", strconv.Itoa(len(b))},
		})
	},
}

func init() {
	compactSizeCmd.AddCommand(compactSizeEncodeCmd)
	compactSizeCmd.AddCommand(compactSizeDecodeCmd)
	rootCmd.AddCommand(compactSizeCmd)
}
