package cli

import (
	"consenc/config"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func GetHomeDir(cmd *cobra.Command) string {
	homeDirUnexp, err := cmd.Flags().GetString(FlagHome)
	if err != nil {
		panic(err)
	}
	homeDir := config.ExpandHomePath(homeDirUnexp)
	return homeDir
}

func InitHomeDir(cmd *cobra.Command) (string, error) {
	homeDir := GetHomeDir(cmd)
	exists, err := config.HomeDirExists(homeDir)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errors.New("home directory is already initialized")
	}
	if err := config.InitHomeDir(homeDir); err != nil {
		return "", err
	}
	return homeDir, nil
}

// LoadConfig reads the config file from the home directory, falling back to
// defaults when the home directory has not been initialized. Flags override
// file values.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	homeDir := GetHomeDir(cmd)
	exists, err := config.HomeDirExists(homeDir)
	if err != nil {
		return nil, err
	}

	cfg := new(config.Config)
	*cfg = config.DefaultConfig
	if exists {
		cfg, err = config.ReadConfigFile(homeDir)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed(FlagFormat) {
		cfg.Output.Format, _ = flags.GetString(FlagFormat)
	}
	if flags.Changed(FlagInputFormat) {
		cfg.Input.Format, _ = flags.GetString(FlagInputFormat)
	}
	if flags.Changed(FlagLogLevel) {
		cfg.LogLevel, _ = flags.GetString(FlagLogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}
