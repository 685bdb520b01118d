package psbt

import (
	"bytes"
	"io"

	"consenc/crypto"
	"consenc/cwire"
)

// Pair is a PSBT key-value pair in raw form:
//
//	<keypair> := <key> <valuelen> <valuedata>
type Pair struct {
	Key   Key
	Value []byte
}

func (p Pair) Encoder() cwire.Encoder {
	return cwire.NewEncoder2(
		p.Key.Encoder(),
		cwire.NewPrefixedBytesEncoder(p.Value),
	)
}

func (p Pair) Serialize() []byte {
	return cwire.EncodeToVec(p.Encoder())
}

func (p Pair) Equal(other Pair) bool {
	return p.Key.Equal(other.Key) && bytes.Equal(p.Value, other.Value)
}

func (p Pair) Hash() crypto.Hash {
	return crypto.HashEncoder(p.Encoder())
}

type PairDecoder struct {
	inner *cwire.Decoder2[Key, []byte]
}

func NewPairDecoder() *PairDecoder {
	return &PairDecoder{
		inner: cwire.NewDecoder2[Key, []byte](
			NewKeyDecoder(),
			cwire.NewByteVecDecoder(),
		).Named("key", "value"),
	}
}

func (d *PairDecoder) PushBytes(p []byte) (int, bool, error) {
	return d.inner.PushBytes(p)
}

func (d *PairDecoder) End() (Pair, error) {
	out, err := d.inner.End()
	if err != nil {
		return Pair{}, err
	}
	return Pair{Key: out.First, Value: out.Second}, nil
}

func (d *PairDecoder) ReadLimit() int {
	return d.inner.ReadLimit()
}

// DecodePair decodes a pair that must occupy all of b.
func DecodePair(b []byte) (Pair, error) {
	return cwire.DecodeFromSlice[Pair](NewPairDecoder(), b)
}

// ReadPair reads one pair from r without reading past it. At the end of a map
// it returns an error matching ErrNoMorePairs.
func ReadPair(r io.Reader) (Pair, error) {
	return cwire.DecodeFromRead[Pair](NewPairDecoder(), r)
}
