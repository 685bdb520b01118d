package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"consenc/cwire"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

type Hash [32]byte

var ZeroHash Hash

type Hasher interface {
	Hash() Hash
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%x\"", h[:])), nil
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	var hashStr string
	if err := json.Unmarshal(b, &hashStr); err != nil {
		return err
	}
	hash, err := NewHashFromHex(hashStr)
	if err != nil {
		return err
	}
	*h = hash
	return nil
}

func Blake2B256(data ...[]byte) Hash {
	// never returns an error if key is nil
	h, _ := blake2b.New256(nil)
	for _, chunk := range data {
		h.Write(chunk)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HashEncoder hashes the serialization produced by e without buffering it.
func HashEncoder(e cwire.Encoder) Hash {
	h, _ := blake2b.New256(nil)
	for {
		h.Write(e.Chunk())
		if !e.Advance() {
			break
		}
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

func NewHashFromBytes(b []byte) (Hash, error) {
	if len(b) != 32 {
		return ZeroHash, errors.New("hash must be 32 bytes")
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

func NewHashFromHex(in string) (Hash, error) {
	b, err := hex.DecodeString(in)
	if err != nil {
		return ZeroHash, errors.Wrap(err, "invalid hash hex")
	}
	return NewHashFromBytes(b)
}
