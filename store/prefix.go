package store

import (
	"strings"

	"github.com/syndtr/goleveldb/leveldb/util"
)

type KeyFunc func(parts ...string) []byte

// Prefixer builds keys of the form prefix/part/part.
func Prefixer(prefix string) KeyFunc {
	return func(parts ...string) []byte {
		k := strings.Join(append([]string{prefix}, parts...), "/")
		return []byte(k)
	}
}

// Children returns the range of keys nested below the key built from parts.
func (f KeyFunc) Children(parts ...string) *util.Range {
	return util.BytesPrefix(f(append(parts, "")...))
}
