// Package relation implements typed relational tables and the algebra
// over them: project, select (predicate, condition and key forms),
// union, minus and four join variants. Each table maintains a Linear
// Hashing index over its primary key; operators use it to accelerate
// point lookups, duplicate elimination, set difference and foreign-key
// joins, and fall back to nested-loop scans everywhere else.
//
// Operators never mutate their inputs: every operation builds a new
// table with a fresh index. Tables are not safe for concurrent
// mutation; writers must be serialized externally.
package relation

import (
	"fmt"

	"github.com/linrel/linrel/internal/linhash"
	"github.com/linrel/linrel/internal/value"
	"github.com/linrel/linrel/pkg"
)

// Field is one attribute of a table schema: a name and the kind of the
// values stored under it.
type Field struct {
	Name string
	Kind value.Kind
}

// Tuple is an ordered row, positionally aligned with the owning table's
// fields. Operators that leave rows unchanged share the underlying
// slice with their input.
type Tuple []value.Value

// Table is the tuple store plus its metadata and primary-key index.
type Table struct {
	Name   string
	Fields *pkg.InsertSortMap[string, *Field]
	Key    []string

	tuples  []Tuple
	index   *linhash.Map[Tuple]
	cols    pkg.Map[string, int]
	keyCols []int

	reg *Registry
}

// NewTable builds an empty table from finalized metadata: ordered
// fields, and the key attribute names (a non-empty subset of the
// fields, order significant for key construction).
func NewTable(reg *Registry, name string, fields []Field, key []string) (*Table, error) {
	t := &Table{
		Name:   name,
		Fields: pkg.NewInsertSortMap[string, *Field](),
		Key:    append([]string{}, key...),
		index:  linhash.New[Tuple](),
		cols:   pkg.Map[string, int]{},
		reg:    reg,
	}

	for i, f := range fields {
		f := f
		if t.cols.Has(f.Name) {
			return nil, &SchemaViolationError{Table: name, Reason: fmt.Sprintf("duplicate attribute %s", f.Name)}
		}
		t.Fields.Push(f.Name, &f)
		t.cols.Set(f.Name, i)
	}

	if len(key) == 0 {
		return nil, &SchemaViolationError{Table: name, Reason: "empty primary key"}
	}
	for _, k := range key {
		col, ok := t.cols[k]
		if !ok {
			return nil, &AttributeNotFoundError{Table: name, Attribute: k}
		}
		t.keyCols = append(t.keyCols, col)
	}

	return t, nil
}

// Arity returns the number of attributes.
func (t *Table) Arity() int { return t.Fields.Len() }

// Len returns the number of stored tuples.
func (t *Table) Len() int { return len(t.tuples) }

// Tuples returns the stored rows in insertion order. The slice is
// shared; callers must not mutate it.
func (t *Table) Tuples() []Tuple { return t.tuples }

// Attributes returns the attribute names in schema order.
func (t *Table) Attributes() []string { return t.Fields.Sorted }

// Col returns the column number of the named attribute.
func (t *Table) Col(name string) (int, bool) {
	col, ok := t.cols[name]
	return col, ok
}

func (t *Table) field(i int) *Field { return t.Fields.Get(t.Fields.Sorted[i]) }

// KeyOf projects a tuple onto the table's key attributes.
func (t *Table) KeyOf(tup Tuple) linhash.Key {
	vals := make([]value.Value, len(t.keyCols))
	for i, c := range t.keyCols {
		vals[i] = tup[c]
	}
	return linhash.NewKey(vals...)
}

// Add appends a tuple to the store and indexes it under its key
// projection. A duplicate key is a caller error and is not rejected:
// the index keeps the most recent tuple (last-write-wins) while both
// rows stay in the store.
func (t *Table) Add(tup Tuple) error {
	if len(tup) != t.Arity() {
		return &SchemaViolationError{
			Table:  t.Name,
			Reason: fmt.Sprintf("tuple arity %d, want %d", len(tup), t.Arity()),
		}
	}
	for i, v := range tup {
		if f := t.field(i); v.Kind() != f.Kind {
			return &SchemaViolationError{
				Table:  t.Name,
				Reason: fmt.Sprintf("attribute %s holds %s values, got %s", f.Name, f.Kind, v.Kind()),
			}
		}
	}

	t.append(tup)
	return nil
}

// append stores a tuple known to conform to the schema.
func (t *Table) append(tup Tuple) {
	t.tuples = append(t.tuples, tup)
	if t.index != nil {
		t.index.Put(t.KeyOf(tup), tup)
	}
}

// Index exposes the primary-key index, nil if the table has none.
func (t *Table) Index() *linhash.Map[Tuple] { return t.index }

// derive builds an empty table for an operator result: a generated
// unique name in this table's lineage, the given schema, and a fresh
// index.
func (t *Table) derive(fields []Field, key []string) *Table {
	out, err := NewTable(t.reg, t.reg.tempName(t.Name), fields, key)
	if err != nil {
		// Operator callers resolve attributes before deriving, so the
		// schema is known-good here.
		panic(err)
	}
	return out
}

// deriveSameSchema builds an empty result table sharing this table's
// fields and key.
func (t *Table) deriveSameSchema() *Table {
	fields := make([]Field, t.Arity())
	for i := range fields {
		fields[i] = *t.field(i)
	}
	return t.derive(fields, t.Key)
}

func (t *Table) report(source, message string) {
	t.reg.Reporter.Report(source, message)
}
