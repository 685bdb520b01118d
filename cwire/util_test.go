package cwire

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// pushChunked feeds data to d in pieces of the given size, requiring every
// piece to be consumed in full until the decoder is satisfied.
func pushChunked[T any](t *testing.T, d Decoder[T], data []byte, chunk int) (T, error) {
	remaining := data
	for len(remaining) > 0 {
		take := min(chunk, len(remaining))
		n, needMore, err := d.PushBytes(remaining[:take])
		if err != nil {
			var zero T
			return zero, err
		}
		if needMore {
			require.Equal(t, take, n, "decoder must consume each chunk while it needs more")
		}
		remaining = remaining[n:]
		if !needMore {
			require.Empty(t, remaining, "decoder finished before input ended")
			break
		}
	}
	return d.End()
}
