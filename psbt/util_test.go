package psbt

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func readHexFixture(t *testing.T, name string) []byte {
	data, err := os.ReadFile(fmt.Sprintf("testdata/%s", name))
	require.NoError(t, err)
	return mustHex(t, strings.Join(strings.Fields(string(data)), ""))
}

func requireKeysEqual(t *testing.T, expected, actual Key) {
	require.True(t, expected.Equal(actual), "expected %s, got %s", expected, actual)
}

// pushChunked feeds data to d in pieces of the given size.
func pushChunked[T any](t *testing.T, d interface {
	PushBytes([]byte) (int, bool, error)
	End() (T, error)
}, data []byte, chunk int) (T, error) {
	remaining := data
	for len(remaining) > 0 {
		take := chunk
		if take > len(remaining) {
			take = len(remaining)
		}
		n, needMore, err := d.PushBytes(remaining[:take])
		if err != nil {
			var zero T
			return zero, err
		}
		remaining = remaining[n:]
		if !needMore {
			require.Empty(t, remaining)
			break
		}
		require.Equal(t, take, n)
	}
	return d.End()
}
