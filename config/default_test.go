package config

import (
	"bytes"
	"os"
	"path"
	"strings"
	"testing"

	"consenc/testutil/testfs"

	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultConfigFile(t *testing.T) {
	generatedCfg := GenerateDefaultConfigFile()
	cfg, err := ReadConfig(bytes.NewReader(generatedCfg))
	require.NoError(t, err)
	require.EqualValues(t, DefaultConfig, *cfg)
}

func TestReadConfig(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, cfg *Config)
		err   string
	}{
		{
			name:  "overrides",
			input: "log_level = \"debug\"\n[input]\nformat = \"hex\"\n[output]\nformat = \"json\"\n[tuning]\nworkers = 9\n",
			check: func(t *testing.T, cfg *Config) {
				require.Equal(t, "debug", cfg.LogLevel)
				require.Equal(t, InputFormatHex, cfg.Input.Format)
				require.Equal(t, OutputFormatJSON, cfg.Output.Format)
				require.Equal(t, 9, cfg.Tuning.Workers)
				require.Equal(t, DefaultConfig.Tuning.ReadChunkSize, cfg.Tuning.ReadChunkSize)
				require.Equal(t, DefaultConfig.Input.MaxBytes, cfg.Input.MaxBytes)
			},
		},
		{
			name:  "empty file uses defaults",
			input: "",
			check: func(t *testing.T, cfg *Config) {
				require.EqualValues(t, DefaultConfig, *cfg)
			},
		},
		{
			name:  "invalid input format",
			input: "[input]\nformat = \"base64\"\n",
			err:   "invalid input format",
		},
		{
			name:  "invalid output format",
			input: "[output]\nformat = \"yaml\"\n",
			err:   "invalid output format",
		},
		{
			name:  "negative workers",
			input: "[tuning]\nworkers = -1\n",
			err:   "must not be negative",
		},
		{
			name:  "malformed toml",
			input: "log_level = ",
			err:   "error decoding config file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ReadConfig(strings.NewReader(tt.input))
			if tt.err != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestInitHomeDir(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()
	home := path.Join(dir, "home")

	require.Error(t, EnsureHomeDir(home))
	require.NoError(t, InitHomeDir(home))
	require.NoError(t, EnsureHomeDir(home))

	stat, err := os.Stat(ExpandDBPath(home))
	require.NoError(t, err)
	require.True(t, stat.IsDir())

	cfg, err := ReadConfigFile(home)
	require.NoError(t, err)
	require.EqualValues(t, DefaultConfig, *cfg)
}

func TestEnsureHomeDir_File(t *testing.T) {
	f, done := testfs.NewTempFile(t)
	defer done()
	require.Error(t, EnsureHomeDir(f.Name()))
}
