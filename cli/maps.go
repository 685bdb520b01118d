package cli

import (
	"bufio"
	"bytes"

	"consenc/config"
	"consenc/log"
	"consenc/psbt"
	"consenc/util"

	"github.com/pkg/errors"
)

var logger = log.WithModule("cli")

// SourceName labels path in output.
func SourceName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

// ReadMapsFile decodes every map in the named input, or stdin for an empty
// path. It returns the number of decoded bytes consumed.
func ReadMapsFile(path string, cfg *config.Config) ([][]psbt.Pair, uint64, error) {
	in, err := OpenInput(path)
	if err != nil {
		return nil, 0, err
	}
	defer in.Close()

	data, err := ReadInput(in, cfg.Input.Format, cfg.Input.MaxBytes)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "error reading %s", SourceName(path))
	}

	cr := util.NewCountingReader(bytes.NewReader(data))
	maps, err := psbt.DecodeMaps(bufio.NewReaderSize(cr, cfg.Tuning.ReadChunkSize))
	if err != nil {
		return nil, cr.Count(), errors.Wrapf(err, "error decoding %s", SourceName(path))
	}
	logger.Debug("decoded input", "source", SourceName(path), "maps", len(maps), "bytes", cr.Count())
	return maps, cr.Count(), nil
}
