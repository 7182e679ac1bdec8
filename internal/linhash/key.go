package linhash

import (
	"strings"

	"github.com/linrel/linrel/internal/value"
)

// Key is an immutable, order-sensitive composite of domain values.
// Tables build one from a tuple's key-attribute projection. Two keys are
// equal iff they have the same length and are pairwise value-equal in
// order; Hash is invariant under that equality.
type Key struct {
	vals []value.Value
}

func NewKey(vals ...value.Value) Key {
	owned := make([]value.Value, len(vals))
	copy(owned, vals)
	return Key{vals: owned}
}

func (k Key) Len() int { return len(k.vals) }

func (k Key) At(i int) value.Value { return k.vals[i] }

func (k Key) Equal(o Key) bool {
	if len(k.vals) != len(o.vals) {
		return false
	}
	for i := range k.vals {
		if !k.vals[i].Equal(o.vals[i]) {
			return false
		}
	}
	return true
}

func (k Key) Hash() uint32 {
	var h uint32
	for _, v := range k.vals {
		h = h*31 + v.Hash()
	}
	return h
}

func (k Key) String() string {
	parts := make([]string, len(k.vals))
	for i, v := range k.vals {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
