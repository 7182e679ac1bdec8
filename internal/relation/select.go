package relation

import (
	"github.com/linrel/linrel/internal/linhash"
	"github.com/linrel/linrel/pkg"
)

// Select keeps the tuples for which the predicate returns true. The
// predicate is opaque, so this is always a full scan. Schema and key
// are preserved; kept rows are shared with the input.
func (t *Table) Select(predicate func(Tuple) bool) *Table {
	out := t.deriveSameSchema()
	for _, tup := range pkg.Filter(t.tuples, predicate) {
		out.append(tup)
	}
	return out
}

// SelectWhere keeps the tuples satisfying a condition string of the
// form "attr op literal" with op one of == != < <= > >=. The literal is
// coerced to the attribute's domain before comparing. A tuple whose
// evaluation fails (unparsable literal, unknown operator) is excluded
// and the problem reported; an unknown attribute aborts the operation.
// Full scan: the condition attribute need not be the key.
func (t *Table) SelectWhere(cond string) (*Table, error) {
	c, err := parseCondition(cond)
	if err != nil {
		return nil, err
	}
	col, ok := t.cols[c.attr]
	if !ok {
		return nil, &AttributeNotFoundError{Table: t.Name, Attribute: c.attr}
	}
	kind := t.field(col).Kind

	out := t.deriveSameSchema()
	for _, tup := range t.tuples {
		keep, err := satisfies(tup, col, c.attr, kind, c.op, c.operand)
		if err != nil {
			t.report("SelectWhere", err.Error())
			continue
		}
		if keep {
			out.append(tup)
		}
	}
	return out, nil
}

// SelectKey is the indexed point lookup: the result holds at most the
// one tuple stored under the given key. Without an index it degrades to
// a full scan comparing each tuple's key projection.
func (t *Table) SelectKey(key linhash.Key) *Table {
	out := t.deriveSameSchema()
	if t.index != nil {
		if tup, ok := t.index.Get(key); ok {
			out.append(tup)
		}
		return out
	}

	for _, tup := range t.tuples {
		if t.KeyOf(tup).Equal(key) {
			out.append(tup)
		}
	}
	return out
}
