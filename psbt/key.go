package psbt

import (
	"bytes"
	"fmt"

	"consenc/crypto"
	"consenc/cwire"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

// Key is a PSBT key in raw form:
//
//	<key> := <keylen> <keytype> <keydata>
//
// keylen covers the compact size encoding of the type as well as the data.
type Key struct {
	TypeValue uint64
	KeyData   []byte
}

func (k Key) String() string {
	return fmt.Sprintf("type: %#x, key: %x", k.TypeValue, k.KeyData)
}

// Len returns the value written as keylen.
func (k Key) Len() uint64 {
	return uint64(len(k.KeyData)) + uint64(cwire.CompactSizeLen(k.TypeValue))
}

// Encoder always derives keylen from the current type and data.
func (k Key) Encoder() cwire.Encoder {
	return cwire.NewEncoder3(
		cwire.NewCompactSizeEncoder(k.Len()),
		cwire.NewCompactSizeEncoder(k.TypeValue),
		cwire.NewBytesEncoder(k.KeyData),
	)
}

func (k Key) Serialize() []byte {
	return cwire.EncodeToVec(k.Encoder())
}

func (k Key) Equal(other Key) bool {
	return k.TypeValue == other.TypeValue && bytes.Equal(k.KeyData, other.KeyData)
}

// Compare orders keys by type, then by key data.
func (k Key) Compare(other Key) int {
	switch {
	case k.TypeValue < other.TypeValue:
		return -1
	case k.TypeValue > other.TypeValue:
		return 1
	default:
		return bytes.Compare(k.KeyData, other.KeyData)
	}
}

func (k Key) Hash() crypto.Hash {
	return crypto.HashEncoder(k.Encoder())
}

// PubKey parses the key data as a serialized secp256k1 public key, as carried
// by key types such as partial signatures and BIP32 derivations.
func (k Key) PubKey() (*btcec.PublicKey, error) {
	pub, err := btcec.ParsePubKey(k.KeyData, btcec.S256())
	if err != nil {
		return nil, errors.Wrap(err, "key data is not a public key")
	}
	return pub, nil
}

const (
	keyStageLen = iota
	keyStageType
	keyStageData
	keyStageDone
)

var keyFieldNames = [...]string{"keylen", "type", "key_data"}

// KeyDecoder decodes a Key. A zero keylen completes the decoder and End
// returns ErrNoMorePairs.
type KeyDecoder struct {
	stage     int
	keyLen    cwire.CompactSizeDecoder
	typeValue cwire.CompactSizeDecoder
	data      *cwire.ArrayDecoder
	byteSize  uint64
	key       Key
	sentinel  bool
	err       error
	ended     bool
}

func NewKeyDecoder() *KeyDecoder {
	return &KeyDecoder{}
}

func (d *KeyDecoder) fail(err error) error {
	d.err = &cwire.FieldError{Index: d.stage, Name: keyFieldNames[d.stage], Err: err}
	return d.err
}

func (d *KeyDecoder) PushBytes(p []byte) (int, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}

	var total int
	for d.stage != keyStageDone {
		var n int
		var needMore bool
		var err error
		switch d.stage {
		case keyStageLen:
			n, needMore, err = d.keyLen.PushBytes(p[total:])
		case keyStageType:
			n, needMore, err = d.typeValue.PushBytes(p[total:])
		case keyStageData:
			n, needMore, err = d.data.PushBytes(p[total:])
		}
		total += n
		if err != nil {
			return total, false, d.fail(err)
		}
		if needMore {
			return total, true, nil
		}
		if err := d.advance(); err != nil {
			return total, false, err
		}
	}
	return total, false, nil
}

// advance collects the output of the finished stage and prepares the next.
func (d *KeyDecoder) advance() error {
	switch d.stage {
	case keyStageLen:
		byteSize, err := d.keyLen.End()
		if err != nil {
			return d.fail(err)
		}
		if byteSize == 0 {
			d.sentinel = true
			d.stage = keyStageDone
			return nil
		}
		d.byteSize = byteSize
		d.stage = keyStageType
	case keyStageType:
		typeValue, err := d.typeValue.End()
		if err != nil {
			return d.fail(err)
		}
		typeLen := uint64(cwire.CompactSizeLen(typeValue))
		if d.byteSize < typeLen {
			d.err = errors.Wrapf(ErrKeyLengthMismatch, "keylen %d, type %#x needs %d bytes", d.byteSize, typeValue, typeLen)
			return d.err
		}
		dataLen := d.byteSize - typeLen
		if dataLen > cwire.MaxVecSize {
			d.stage = keyStageData
			return d.fail(errors.Wrapf(cwire.ErrOversizedAllocation, "key data of %d bytes, max %d", dataLen, cwire.MaxVecSize))
		}
		d.key.TypeValue = typeValue
		d.data = cwire.NewArrayDecoder(int(dataLen))
		d.stage = keyStageData
	case keyStageData:
		data, err := d.data.End()
		if err != nil {
			return d.fail(err)
		}
		d.key.KeyData = data
		d.stage = keyStageDone
	}
	return nil
}

func (d *KeyDecoder) End() (Key, error) {
	if d.ended {
		return Key{}, cwire.ErrDecoderFinished
	}
	d.ended = true
	if d.err != nil {
		return Key{}, d.err
	}
	if d.sentinel {
		return Key{}, ErrNoMorePairs
	}

	var err error
	switch d.stage {
	case keyStageDone:
		return d.key, nil
	case keyStageLen:
		_, err = d.keyLen.End()
	case keyStageType:
		_, err = d.typeValue.End()
	case keyStageData:
		_, err = d.data.End()
	}
	return Key{}, d.fail(err)
}

func (d *KeyDecoder) ReadLimit() int {
	if d.err != nil {
		return 0
	}
	switch d.stage {
	case keyStageLen:
		return d.keyLen.ReadLimit()
	case keyStageType:
		return d.typeValue.ReadLimit()
	case keyStageData:
		return d.data.ReadLimit()
	default:
		return 0
	}
}

// DecodeKey decodes a key that must occupy all of b.
func DecodeKey(b []byte) (Key, error) {
	return cwire.DecodeFromSlice[Key](NewKeyDecoder(), b)
}
