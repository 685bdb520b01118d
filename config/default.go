package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"consenc/log"

	"github.com/pkg/errors"
)

const ConfigFile = "config.toml"

var DefaultConfig = Config{
	LogLevel: log.LevelInfo.String(),
	Input: InputConfig{
		Format:   InputFormatAuto,
		MaxBytes: 64 * 1024 * 1024,
	},
	Output: OutputConfig{
		Format: OutputFormatTable,
	},
	Tuning: TuningConfig{
		ReadChunkSize: 4096,
		Workers:       4,
	},
}

const defaultConfigTemplateText = `# consenc Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Configures how input files and stdin are read.
[input]
  # Sets how input is interpreted. Can be one of the following values:
  # - auto: hex if the input is entirely hex digits and whitespace, binary otherwise
  # - hex
  # - binary
  format = "{{.Input.Format}}"
  # Sets the largest input consenc will read from a single source.
  max_bytes = {{.Input.MaxBytes}}

# Configures how decoded records are printed.
[output]
  # Can be one of "table" or "json".
  format = "{{.Output.Format}}"

# Configures various internal tuning parameters. Unless directed otherwise
# or you know what you are doing, these values should be left as their
# defaults.
[tuning]
  # Sets the buffer size used when streaming maps from a file.
  read_chunk_size = {{.Tuning.ReadChunkSize}}
  # Sets how many input files are decoded concurrently.
  workers = {{.Tuning.Workers}}
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFile), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFile), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
