package psbt

import (
	"consenc/cwire"

	"github.com/pkg/errors"
)

const (
	// ProprietaryKeyType is the key type reserved for application data.
	ProprietaryKeyType = 0xfc

	// MaxProprietaryKeyLen bounds the trailing key bytes of a proprietary
	// key. Any real key is far smaller.
	MaxProprietaryKeyLen = 1024
)

// Subtype is implemented by the numbering scheme an application uses for its
// proprietary keys. FromUint64 is called on the zero value of S.
type Subtype[S any] interface {
	comparable
	Uint64() uint64
	FromUint64(v uint64) S
}

// ProprietaryType is the default subtype numbering.
type ProprietaryType uint64

func (t ProprietaryType) Uint64() uint64 {
	return uint64(t)
}

func (ProprietaryType) FromUint64(v uint64) ProprietaryType {
	return ProprietaryType(v)
}

// ProprietaryKey is the structure carried in the key data of a key of type
// 0xfc:
//
//	<prefix: compact size prefixed bytes> <subtype: compact size> <key: bytes>
type ProprietaryKey[S Subtype[S]] struct {
	Prefix  []byte
	Subtype S
	Key     []byte
}

func (p ProprietaryKey[S]) Encoder() cwire.Encoder {
	return cwire.NewEncoder3(
		cwire.NewPrefixedBytesEncoder(p.Prefix),
		cwire.NewCompactSizeEncoder(p.Subtype.Uint64()),
		cwire.NewBytesEncoder(p.Key),
	)
}

func (p ProprietaryKey[S]) Serialize() []byte {
	return cwire.EncodeToVec(p.Encoder())
}

// ToKey builds the generic key for p. A Key longer than
// MaxProprietaryKeyLen encodes but will not decode.
func (p ProprietaryKey[S]) ToKey() Key {
	return Key{
		TypeValue: ProprietaryKeyType,
		KeyData:   p.Serialize(),
	}
}

type ProprietaryKeyDecoder[S Subtype[S]] struct {
	inner *cwire.Decoder3[[]byte, uint64, []byte]
}

func NewProprietaryKeyDecoder[S Subtype[S]]() *ProprietaryKeyDecoder[S] {
	return &ProprietaryKeyDecoder[S]{
		inner: cwire.NewDecoder3[[]byte, uint64, []byte](
			cwire.NewByteVecDecoder(),
			cwire.NewCompactSizeDecoder(),
			cwire.NewTailDecoder(MaxProprietaryKeyLen),
		).Named("prefix", "subtype", "key"),
	}
}

func (d *ProprietaryKeyDecoder[S]) PushBytes(p []byte) (int, bool, error) {
	return d.inner.PushBytes(p)
}

func (d *ProprietaryKeyDecoder[S]) End() (ProprietaryKey[S], error) {
	out, err := d.inner.End()
	if err != nil {
		return ProprietaryKey[S]{}, err
	}
	var zero S
	return ProprietaryKey[S]{
		Prefix:  out.First,
		Subtype: zero.FromUint64(out.Second),
		Key:     out.Third,
	}, nil
}

func (d *ProprietaryKeyDecoder[S]) ReadLimit() int {
	return d.inner.ReadLimit()
}

// ProprietaryKeyFromKey parses the key data of k, which must have type 0xfc.
func ProprietaryKeyFromKey[S Subtype[S]](k Key) (ProprietaryKey[S], error) {
	if k.TypeValue != ProprietaryKeyType {
		return ProprietaryKey[S]{}, errors.Wrapf(ErrInvalidProprietaryKey, "key type %#x", k.TypeValue)
	}
	pk, err := cwire.DecodeFromSlice[ProprietaryKey[S]](NewProprietaryKeyDecoder[S](), k.KeyData)
	if err != nil {
		return ProprietaryKey[S]{}, errors.Wrap(err, "error decoding proprietary key")
	}
	return pk, nil
}
