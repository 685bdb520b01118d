package psbt

import "github.com/pkg/errors"

var (
	// ErrNoMorePairs is the zero-length key that terminates a map. It is a
	// control condition, not a parse failure.
	ErrNoMorePairs = errors.New("no more key-value pairs for this psbt map")

	ErrKeyLengthMismatch     = errors.New("psbt key length shorter than compact size encoding of type value")
	ErrInvalidProprietaryKey = errors.New("non-proprietary key type found when proprietary key was expected")
)
