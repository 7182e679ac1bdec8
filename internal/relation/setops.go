package relation

import (
	"fmt"

	"github.com/linrel/linrel/internal/linhash"
	"github.com/linrel/linrel/internal/value"
)

// compatible checks that the two tables have the same arity with the
// same domain kind at every position. Attribute names may differ.
func (t *Table) compatible(other *Table) error {
	if t.Arity() != other.Arity() {
		return &SchemaMismatchError{Left: t.Name, Right: other.Name, Reason: "different arity"}
	}
	for i := 0; i < t.Arity(); i++ {
		if t.field(i).Kind != other.field(i).Kind {
			return &SchemaMismatchError{
				Left: t.Name, Right: other.Name,
				Reason: fmt.Sprintf("domains disagree at position %d", i),
			}
		}
	}
	return nil
}

// Union produces every tuple of t followed by the tuples of other whose
// key projection is not already present. Dedup is by key equality, not
// full-row equality: the result's index is seeded with t's rows, other's
// rows probe it at t's key positions and are inserted as they are
// accepted, so duplicates within other also collapse to the first
// occurrence. Operands must be compatible.
func (t *Table) Union(other *Table) (*Table, error) {
	if err := t.compatible(other); err != nil {
		return nil, err
	}

	out := t.deriveSameSchema()
	for _, tup := range t.tuples {
		out.append(tup)
	}
	for _, tup := range other.tuples {
		if _, ok := out.index.Get(out.KeyOf(tup)); ok {
			continue
		}
		out.append(tup)
	}
	return out, nil
}

// Minus keeps the tuples of t whose key projection is absent from
// other. Other's key set comes straight from its index when it has one;
// otherwise it is derived by projecting other's tuples onto t's key
// attribute names, matched by name in other's schema.
func (t *Table) Minus(other *Table) (*Table, error) {
	exclude := linhash.New[struct{}]()

	if other.index != nil {
		other.index.Range(func(k linhash.Key, _ Tuple) bool {
			exclude.Put(k, struct{}{})
			return true
		})
	} else {
		cols := make([]int, len(t.Key))
		for i, k := range t.Key {
			col, ok := other.cols[k]
			if !ok {
				return nil, &AttributeNotFoundError{Table: other.Name, Attribute: k}
			}
			cols[i] = col
		}
		for _, tup := range other.tuples {
			vals := make([]value.Value, len(cols))
			for i, c := range cols {
				vals[i] = tup[c]
			}
			exclude.Put(linhash.NewKey(vals...), struct{}{})
		}
	}

	out := t.deriveSameSchema()
	for _, tup := range t.tuples {
		if _, ok := exclude.Get(t.KeyOf(tup)); ok {
			continue
		}
		out.append(tup)
	}
	return out, nil
}
