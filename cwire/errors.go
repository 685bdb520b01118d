package cwire

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxVecSize is the largest variable-length allocation any decoder in this
// module will make. It is shared by every decode site.
const MaxVecSize = 4_000_000

var (
	ErrUnexpectedEOF         = errors.New("unexpected end of input")
	ErrNonMinimalCompactSize = errors.New("non-minimal compact size encoding")
	ErrOversizedAllocation   = errors.New("oversized vector allocation")
	ErrTrailingBytes         = errors.New("trailing bytes after decoded value")
	ErrDecoderFinished       = errors.New("decoder already finished")
)

// FieldError reports which field of a compound value failed to decode.
type FieldError struct {
	Index int
	Name  string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("field %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("field %d: %v", e.Index, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// TrailingBytesError is returned by DecodeFromSlice when a complete value was
// decoded but input remained.
type TrailingBytesError struct {
	Remaining int
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("%d trailing bytes after decoded value", e.Remaining)
}

func (e *TrailingBytesError) Is(target error) bool {
	return target == ErrTrailingBytes
}

func oversized(requested uint64) error {
	return errors.Wrapf(ErrOversizedAllocation, "requested %d bytes, max %d", requested, MaxVecSize)
}

func missing(what string, n int) error {
	return errors.Wrapf(ErrUnexpectedEOF, "%s: need %d more bytes", what, n)
}
