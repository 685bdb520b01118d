package cmd

import (
	"encoding/hex"
	"strconv"

	"consenc/cli"
	"consenc/psbt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	flagPrefix  = "prefix"
	flagSubtype = "subtype"
	flagKey     = "key"
)

var proprietaryCmd = &cobra.Command{
	Use:   "proprietary",
	Short: "Commands for proprietary (type 0xfc) PSBT keys.",
}

var proprietaryEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Serializes a proprietary key.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		prefixArg, _ := flags.GetString(flagPrefix)
		prefix, err := cli.ParseHexArg(flagPrefix, prefixArg)
		if err != nil {
			return err
		}
		subtypeArg, _ := flags.GetString(flagSubtype)
		subtype, err := strconv.ParseUint(subtypeArg, 0, 64)
		if err != nil {
			return errors.Wrap(err, "subtype must be an unsigned 64-bit integer")
		}
		keyArg, _ := flags.GetString(flagKey)
		keyBytes, err := cli.ParseHexArg(flagKey, keyArg)
		if err != nil {
			return err
		}
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}

		pk := psbt.ProprietaryKey[psbt.ProprietaryType]{
			Prefix:  prefix,
			Subtype: psbt.ProprietaryType(subtype),
			Key:     keyBytes,
		}
		return writeKey(cmd, cfg.Output.Format, pk.ToKey())
	},
}

var proprietaryDecodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decodes a serialized key of type 0xfc as a proprietary key.",
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
		key, err := psbt.DecodeKey(b)
		if err != nil {
			return errors.Wrap(err, "error decoding key")
		}
		pk, err := psbt.ProprietaryKeyFromKey[psbt.ProprietaryType](key)
		if err != nil {
			return err
		}
		return cli.WriteFields(cmd.OutOrStdout(), cfg.Output.Format, proprietaryFields(pk))
	},
}

func proprietaryFields(pk psbt.ProprietaryKey[psbt.ProprietaryType]) [][2]string {
	return [][2]string{
		{"prefix", hex.EncodeToString(pk.Prefix)},
		{"subtype", strconv.FormatUint(pk.Subtype.Uint64(), 10)},
		{"proprietary_key", hex.EncodeToString(pk.Key)},
	}
}

func init() {
	proprietaryEncodeCmd.Flags().String(flagPrefix, "", "Hex-encoded identifier prefix.")
	proprietaryEncodeCmd.Flags().String(flagSubtype, "0", "Subtype.")
	proprietaryEncodeCmd.Flags().String(flagKey, "", "Hex-encoded key bytes.")
	proprietaryCmd.AddCommand(proprietaryEncodeCmd)
	proprietaryCmd.AddCommand(proprietaryDecodeCmd)
	rootCmd.AddCommand(proprietaryCmd)
}
