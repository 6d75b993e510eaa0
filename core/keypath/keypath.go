package keypath

import (
	"strconv"
	"strings"
)

// Segment is a single step into a JSON document: either an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeyPath locates a value inside a decoded document. The zero value is the document root.
type KeyPath []Segment

// Root returns the empty path.
func Root() KeyPath {
	return nil
}

// Key returns a new path extended with an object key. The receiver is never modified.
func (p KeyPath) Key(key string) KeyPath {
	return p.with(Segment{Key: key})
}

// Index returns a new path extended with an array index.
func (p KeyPath) Index(i int) KeyPath {
	return p.with(Segment{Index: i, IsIndex: true})
}

func (p KeyPath) with(s Segment) KeyPath {
	out := make(KeyPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// String renders the path as mods[0].submods[1].files; the root renders as "$".
func (p KeyPath) String() string {
	if len(p) == 0 {
		return "$"
	}

	var b strings.Builder
	for i, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// MarshalText lets paths appear as plain strings in JSON reports and map keys.
func (p KeyPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
