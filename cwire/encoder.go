package cwire

import (
	"io"

	"github.com/pkg/errors"
)

// Encoder produces a serialization one contiguous chunk at a time. Chunk
// returns the current chunk, which may be empty. Advance moves to the next
// chunk and reports whether there is one. Once Advance returns false, Chunk
// returns nil.
type Encoder interface {
	Chunk() []byte
	Advance() bool
}

// Encodable is implemented by values that can produce an Encoder for their
// consensus serialization.
type Encodable interface {
	Encoder() Encoder
}

// EncodeToVec drains e into a newly allocated buffer.
func EncodeToVec(e Encoder) []byte {
	var out []byte
	for {
		out = append(out, e.Chunk()...)
		if !e.Advance() {
			return out
		}
	}
}

// EncodeToWriter drains e into w, returning the number of bytes written.
func EncodeToWriter(w io.Writer, e Encoder) (int64, error) {
	var total int64
	for {
		chunk := e.Chunk()
		if len(chunk) > 0 {
			n, err := w.Write(chunk)
			total += int64(n)
			if err != nil {
				return total, errors.Wrap(err, "error writing encoded chunk")
			}
		}
		if !e.Advance() {
			return total, nil
		}
	}
}

// Chain concatenates the output of several encoders.
type Chain struct {
	encs []Encoder
	i    int
}

func NewEncoder2(a, b Encoder) *Chain {
	return &Chain{encs: []Encoder{a, b}}
}

func NewEncoder3(a, b, c Encoder) *Chain {
	return &Chain{encs: []Encoder{a, b, c}}
}

func NewEncoder4(a, b, c, d Encoder) *Chain {
	return &Chain{encs: []Encoder{a, b, c, d}}
}

// Concat chains any number of encoders, for list-shaped values such as
// the pairs of a map.
func Concat(encs ...Encoder) *Chain {
	return &Chain{encs: encs}
}

func (c *Chain) Chunk() []byte {
	if c.i >= len(c.encs) {
		return nil
	}
	return c.encs[c.i].Chunk()
}

func (c *Chain) Advance() bool {
	if c.i >= len(c.encs) {
		return false
	}
	if c.encs[c.i].Advance() {
		return true
	}
	c.i++
	return c.i < len(c.encs)
}
