package cwire

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	compactSize16 = 0xfd
	compactSize32 = 0xfe
	compactSize64 = 0xff
)

// CompactSizeLen returns the length of the canonical compact size encoding
// of n.
func CompactSizeLen(n uint64) int {
	switch {
	case n < compactSize16:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// AppendCompactSize appends the canonical compact size encoding of n to dst.
func AppendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n < compactSize16:
		return append(dst, byte(n))
	case n <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(dst, compactSize16), uint16(n))
	case n <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(dst, compactSize32), uint32(n))
	default:
		return binary.LittleEndian.AppendUint64(append(dst, compactSize64), n)
	}
}

// encodedLen returns the total encoding length implied by a marker byte.
func encodedLen(marker byte) int {
	switch marker {
	case compactSize16:
		return 3
	case compactSize32:
		return 5
	case compactSize64:
		return 9
	default:
		return 1
	}
}

// parseCompactSize decodes a complete encoding whose length matches its
// marker, rejecting any value a shorter marker could have carried.
func parseCompactSize(b []byte) (uint64, error) {
	var v, floor uint64
	switch b[0] {
	case compactSize16:
		v, floor = uint64(binary.LittleEndian.Uint16(b[1:])), compactSize16
	case compactSize32:
		v, floor = uint64(binary.LittleEndian.Uint32(b[1:])), 0x10000
	case compactSize64:
		v, floor = binary.LittleEndian.Uint64(b[1:]), 0x100000000
	default:
		return uint64(b[0]), nil
	}
	if v < floor {
		return 0, errors.Wrapf(ErrNonMinimalCompactSize, "value %d encoded with marker %#x", v, b[0])
	}
	return v, nil
}

type CompactSizeEncoder struct {
	buf  [9]byte
	n    int
	done bool
}

func NewCompactSizeEncoder(v uint64) *CompactSizeEncoder {
	e := &CompactSizeEncoder{}
	e.n = len(AppendCompactSize(e.buf[:0], v))
	return e
}

func (e *CompactSizeEncoder) Chunk() []byte {
	if e.done {
		return nil
	}
	return e.buf[:e.n]
}

func (e *CompactSizeEncoder) Advance() bool {
	e.done = true
	return false
}

// CompactSizeDecoder decodes a single canonical compact size. The zero value
// is ready to use.
type CompactSizeDecoder struct {
	buf   [9]byte
	have  int
	need  int
	value uint64
	done  bool
	err   error
	ended bool
}

func NewCompactSizeDecoder() *CompactSizeDecoder {
	return &CompactSizeDecoder{}
}

func (d *CompactSizeDecoder) PushBytes(p []byte) (int, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}
	if d.done {
		return 0, false, nil
	}

	var consumed int
	if d.have == 0 {
		if len(p) == 0 {
			return 0, true, nil
		}
		d.buf[0] = p[0]
		d.have = 1
		d.need = encodedLen(p[0])
		consumed = 1
	}

	take := min(d.need-d.have, len(p)-consumed)
	copy(d.buf[d.have:], p[consumed:consumed+take])
	d.have += take
	consumed += take
	if d.have < d.need {
		return consumed, true, nil
	}

	d.done = true
	d.value, d.err = parseCompactSize(d.buf[:d.need])
	if d.err != nil {
		return consumed, false, d.err
	}
	return consumed, false, nil
}

func (d *CompactSizeDecoder) End() (uint64, error) {
	if d.ended {
		return 0, ErrDecoderFinished
	}
	d.ended = true
	if d.err != nil {
		return 0, d.err
	}
	if !d.done {
		if d.have == 0 {
			return 0, missing("compact size", 1)
		}
		return 0, missing("compact size", d.need-d.have)
	}
	return d.value, nil
}

func (d *CompactSizeDecoder) ReadLimit() int {
	if d.done || d.err != nil {
		return 0
	}
	if d.have == 0 {
		return 1
	}
	return d.need - d.have
}
