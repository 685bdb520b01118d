package testfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func NewTempDir(t *testing.T) (string, func()) {
	dir, err := os.MkdirTemp("", "consenctest_")
	require.NoError(t, err)
	return dir, func() {
		require.NoError(t, os.RemoveAll(dir))
	}
}

func NewTempFile(t *testing.T) (*os.File, func()) {
	f, err := os.CreateTemp("", "consenctest_")
	require.NoError(t, err)
	return f, func() {
		require.NoError(t, f.Close())
		require.NoError(t, os.Remove(f.Name()))
	}
}

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir string, name string, data []byte) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0600))
	return p
}
