package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefixer(t *testing.T) {
	base := Prefixer("foo")

	tests := []struct {
		in  []byte
		out string
	}{
		{
			base("bar"),
			"foo/bar",
		},
		{
			base(),
			"foo",
		},
		{
			base(""),
			"foo/",
		},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, string(tt.in))
	}
}

func TestKeyFunc_Children(t *testing.T) {
	base := Prefixer("maps")
	r := base.Children("a")
	require.Equal(t, "maps/a/", string(r.Start))
	require.Equal(t, "maps/a0", string(r.Limit))

	r = base.Children()
	require.Equal(t, "maps/", string(r.Start))
}
