package cwire

import (
	"bufio"
	"io"

	"consenc/log"

	"github.com/pkg/errors"
)

// readChunkSize bounds the scratch buffer DecodeFromRead uses per read.
const readChunkSize = 4096

var logger = log.WithModule("cwire")

// DecodeFromSlice decodes a value that must occupy all of b.
func DecodeFromSlice[T any](d Decoder[T], b []byte) (T, error) {
	var zero T
	n, _, err := d.PushBytes(b)
	if err != nil {
		return zero, err
	}
	v, err := d.End()
	if err != nil {
		return zero, err
	}
	if n < len(b) {
		return zero, &TrailingBytesError{Remaining: len(b) - n}
	}
	return v, nil
}

// DecodeFromRead decodes a value from a blocking reader. It never requests
// more bytes than the decoder's ReadLimit, so r is left positioned directly
// after the value.
func DecodeFromRead[T any](d Decoder[T], r io.Reader) (T, error) {
	var zero T
	buf := make([]byte, readChunkSize)
	for {
		limit := min(d.ReadLimit(), len(buf))
		if limit == 0 {
			return d.End()
		}

		n, rerr := io.ReadFull(r, buf[:limit])
		if n > 0 {
			consumed, needMore, err := d.PushBytes(buf[:n])
			if err != nil {
				return zero, err
			}
			if consumed < n {
				return zero, errors.Errorf("decoder consumed %d of %d bytes within its read limit", consumed, n)
			}
			if !needMore {
				return d.End()
			}
		}

		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			logger.Trace("input ended before decoder was satisfied", "read", n, "wanted", limit)
			return d.End()
		}
		if rerr != nil {
			return zero, errors.Wrap(rerr, "error reading input")
		}
	}
}

// DecodeFromBuffered decodes a value from a buffered reader, discarding
// exactly the bytes the decoder consumed.
func DecodeFromBuffered[T any](d Decoder[T], br *bufio.Reader) (T, error) {
	var zero T
	for {
		limit := min(d.ReadLimit(), br.Size())
		if limit == 0 {
			return d.End()
		}

		peeked, perr := br.Peek(limit)
		if len(peeked) > 0 {
			consumed, needMore, err := d.PushBytes(peeked)
			if _, derr := br.Discard(consumed); derr != nil {
				return zero, errors.Wrap(derr, "error discarding consumed input")
			}
			if err != nil {
				return zero, err
			}
			if !needMore {
				return d.End()
			}
		}

		if perr == io.EOF {
			return d.End()
		}
		if perr != nil {
			return zero, errors.Wrap(perr, "error reading input")
		}
	}
}

// WriteCompactSize writes the canonical compact size encoding of n to w.
func WriteCompactSize(w io.Writer, n uint64) error {
	var buf [9]byte
	_, err := w.Write(AppendCompactSize(buf[:0], n))
	return err
}

// ReadCompactSize reads exactly one canonical compact size from r.
func ReadCompactSize(r io.Reader) (uint64, error) {
	return DecodeFromRead[uint64](NewCompactSizeDecoder(), r)
}

// ReadByteVec reads a compact size prefixed byte string from r.
func ReadByteVec(r io.Reader) ([]byte, error) {
	return DecodeFromRead[[]byte](NewByteVecDecoder(), r)
}

// WriteByteVec writes b to w preceded by its compact size length.
func WriteByteVec(w io.Writer, b []byte) error {
	_, err := EncodeToWriter(w, NewPrefixedBytesEncoder(b))
	return err
}
