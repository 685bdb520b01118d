package config

import (
	"io"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

const (
	InputFormatAuto   = "auto"
	InputFormatHex    = "hex"
	InputFormatBinary = "binary"

	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Input    InputConfig  `mapstructure:"input"`
	Output   OutputConfig `mapstructure:"output"`
	Tuning   TuningConfig `mapstructure:"tuning"`
}

type InputConfig struct {
	Format   string `mapstructure:"format"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type TuningConfig struct {
	ReadChunkSize int `mapstructure:"read_chunk_size"`
	Workers       int `mapstructure:"workers"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects values the CLI cannot act on. Zero numeric values are
// replaced with defaults.
func (c *Config) Validate() error {
	switch c.Input.Format {
	case InputFormatAuto, InputFormatHex, InputFormatBinary:
	case "":
		c.Input.Format = DefaultConfig.Input.Format
	default:
		return errors.Errorf("invalid input format %q", c.Input.Format)
	}
	switch c.Output.Format {
	case OutputFormatTable, OutputFormatJSON:
	case "":
		c.Output.Format = DefaultConfig.Output.Format
	default:
		return errors.Errorf("invalid output format %q", c.Output.Format)
	}
	if c.Input.MaxBytes < 0 || c.Tuning.ReadChunkSize < 0 || c.Tuning.Workers < 0 {
		return errors.New("numeric config values must not be negative")
	}
	if c.Input.MaxBytes == 0 {
		c.Input.MaxBytes = DefaultConfig.Input.MaxBytes
	}
	if c.Tuning.ReadChunkSize == 0 {
		c.Tuning.ReadChunkSize = DefaultConfig.Tuning.ReadChunkSize
	}
	if c.Tuning.Workers == 0 {
		c.Tuning.Workers = DefaultConfig.Tuning.Workers
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig.LogLevel
	}
	return nil
}
