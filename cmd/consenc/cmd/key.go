package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"consenc/cli"
	"consenc/psbt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	flagType = "type"
	flagData = "data"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Commands for raw PSBT keys.",
}

var keyEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Serializes a key from its type and key data.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeArg, _ := cmd.Flags().GetString(flagType)
		typeValue, err := strconv.ParseUint(typeArg, 0, 64)
		if err != nil {
			return errors.Wrap(err, "type must be an unsigned 64-bit integer")
		}
		dataArg, _ := cmd.Flags().GetString(flagData)
		keyData, err := cli.ParseHexArg(flagData, dataArg)
		if err != nil {
			return err
		}
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		return writeKey(cmd, cfg.Output.Format, psbt.Key{TypeValue: typeValue, KeyData: keyData})
	},
}

var keyDecodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decodes a serialized key.",
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
		if errors.Is(err, psbt.ErrNoMorePairs) {
			return cli.WriteFields(cmd.OutOrStdout(), cfg.Output.Format, [][2]string{
				{"terminator", "true"},
			})
		}
		if err != nil {
			return errors.Wrap(err, "error decoding key")
		}
		return writeKey(cmd, cfg.Output.Format, key)
	},
}

func writeKey(cmd *cobra.Command, format string, key psbt.Key) error {
	fields := [][2]string{
		{"type", fmt.Sprintf("%#x", key.TypeValue)},
		{"key_data", hex.EncodeToString(key.KeyData)},
		{"keylen", strconv.FormatUint(key.Len(), 10)},
		{"hex", hex.EncodeToString(key.Serialize())},
		{"hash", key.Hash().String()},
	}
	if pub, err := key.PubKey(); err == nil {
		fields = append(fields, [2]string{"pubkey", hex.EncodeToString(pub.SerializeCompressed())})
	}
	if key.TypeValue == psbt.ProprietaryKeyType {
		if pk, err := psbt.ProprietaryKeyFromKey[psbt.ProprietaryType](key); err == nil {
			fields = append(fields, proprietaryFields(pk)...)
		}
	}
	return cli.WriteFields(cmd.OutOrStdout(), format, fields)
}

func init() {
	keyEncodeCmd.Flags().String(flagType, "", "Key type.")
	keyEncodeCmd.Flags().String(flagData, "", "Hex-encoded key data.")
	_ = keyEncodeCmd.MarkFlagRequired(flagType)
	keyCmd.AddCommand(keyEncodeCmd)
	keyCmd.AddCommand(keyDecodeCmd)
	rootCmd.AddCommand(keyCmd)
}
