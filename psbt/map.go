package psbt

import (
	"bufio"
	"io"

	"consenc/cwire"
	"consenc/log"

	"github.com/pkg/errors"
)

var logger = log.WithModule("psbt")

var mapTerminator = []byte{0x00}

// MapDecoder decodes the pairs of one map up to and including the zero-length
// key that terminates it. It does not check pairs for duplicate keys.
type MapDecoder struct {
	cur   *PairDecoder
	pairs []Pair
	done  bool
	err   error
	ended bool
}

func NewMapDecoder() *MapDecoder {
	return &MapDecoder{cur: NewPairDecoder()}
}

func (d *MapDecoder) PushBytes(p []byte) (int, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}
	if d.done {
		return 0, false, nil
	}

	var total int
	for {
		n, needMore, err := d.cur.PushBytes(p[total:])
		total += n
		if errors.Is(err, ErrNoMorePairs) {
			d.done = true
			return total, false, nil
		}
		if err != nil {
			d.err = errors.Wrapf(err, "pair %d", len(d.pairs))
			return total, false, d.err
		}
		if needMore {
			return total, true, nil
		}

		pair, err := d.cur.End()
		if err != nil {
			d.err = errors.Wrapf(err, "pair %d", len(d.pairs))
			return total, false, d.err
		}
		d.pairs = append(d.pairs, pair)
		d.cur = NewPairDecoder()
	}
}

func (d *MapDecoder) End() ([]Pair, error) {
	if d.ended {
		return nil, cwire.ErrDecoderFinished
	}
	d.ended = true
	if d.err != nil {
		return nil, d.err
	}
	if !d.done {
		_, err := d.cur.End()
		return nil, errors.Wrapf(err, "pair %d", len(d.pairs))
	}
	return d.pairs, nil
}

func (d *MapDecoder) ReadLimit() int {
	if d.err != nil || d.done {
		return 0
	}
	return d.cur.ReadLimit()
}

// MapEncoder serializes pairs in the given order followed by the map
// terminator.
func MapEncoder(pairs []Pair) cwire.Encoder {
	encs := make([]cwire.Encoder, 0, len(pairs)+1)
	for _, pair := range pairs {
		encs = append(encs, pair.Encoder())
	}
	encs = append(encs, cwire.NewBytesEncoder(mapTerminator))
	return cwire.Concat(encs...)
}

func EncodeMap(pairs []Pair) []byte {
	return cwire.EncodeToVec(MapEncoder(pairs))
}

// DecodeMap decodes one terminated map that must occupy all of b.
func DecodeMap(b []byte) ([]Pair, error) {
	return cwire.DecodeFromSlice[[]Pair](NewMapDecoder(), b)
}

// ReadMap reads one terminated map from r without reading past it.
func ReadMap(r io.Reader) ([]Pair, error) {
	pairs, err := cwire.DecodeFromRead[[]Pair](NewMapDecoder(), r)
	if err != nil {
		return nil, err
	}
	logger.Debug("read psbt map", "pairs", len(pairs))
	return pairs, nil
}

// DecodeMaps reads consecutive terminated maps until r is exhausted. Input
// ending inside a map is an error.
func DecodeMaps(r io.Reader) ([][]Pair, error) {
	br := bufio.NewReader(r)
	var maps [][]Pair
	for {
		if _, err := br.Peek(1); err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "error reading map stream")
		}

		pairs, err := cwire.DecodeFromBuffered[[]Pair](NewMapDecoder(), br)
		if err != nil {
			return nil, errors.Wrapf(err, "map %d", len(maps))
		}
		logger.Debug("decoded psbt map", "index", len(maps), "pairs", len(pairs))
		maps = append(maps, pairs)
	}
	return maps, nil
}
