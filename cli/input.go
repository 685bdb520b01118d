package cli

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"consenc/config"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// ReadInput reads at most maxBytes from r and decodes it according to format.
func ReadInput(r io.Reader, format string, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "error reading input")
	}
	if int64(len(data)) > maxBytes {
		return nil, errors.Errorf("input exceeds %d bytes", maxBytes)
	}
	return DecodeInput(data, format)
}

// DecodeInput interprets data as hex or raw bytes. In auto mode, data made up
// only of hex digits and whitespace is treated as hex.
func DecodeInput(data []byte, format string) ([]byte, error) {
	switch format {
	case config.InputFormatBinary:
		return data, nil
	case config.InputFormatHex:
		return decodeHex(data)
	case config.InputFormatAuto:
		if looksLikeHex(data) {
			return decodeHex(data)
		}
		return data, nil
	default:
		return nil, errors.Errorf("invalid input format %q", format)
	}
}

// ParseHexArg decodes a hex command-line argument. An optional 0x prefix is
// accepted.
func ParseHexArg(name string, arg string) ([]byte, error) {
	arg = strings.TrimPrefix(strings.TrimSpace(arg), "0x")
	b, err := hex.DecodeString(arg)
	if err != nil {
		return nil, errors.Wrapf(err, "%s must be hex", name)
	}
	return b, nil
}

// OpenInput returns the named file, or stdin when path is empty or "-".
// A terminal on stdin gets a prompt first.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(os.Stderr, "Paste or type hex-encoded records below.")
			fmt.Fprintln(os.Stderr, "When you are finished, press Ctrl+D.")
		}
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening input file")
	}
	return f, nil
}

func decodeHex(data []byte) ([]byte, error) {
	stripped := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)
	stripped = bytes.TrimPrefix(stripped, []byte("0x"))
	out := make([]byte, hex.DecodedLen(len(stripped)))
	if _, err := hex.Decode(out, stripped); err != nil {
		return nil, errors.Wrap(err, "error decoding hex input")
	}
	return out, nil
}

func looksLikeHex(data []byte) bool {
	var digits int
	for _, c := range bytes.TrimPrefix(bytes.TrimSpace(data), []byte("0x")) {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			digits++
		case unicode.IsSpace(rune(c)):
		default:
			return false
		}
	}
	return digits > 0 && digits%2 == 0
}
