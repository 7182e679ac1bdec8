package relation

import (
	"fmt"

	"github.com/linrel/linrel/internal/linhash"
)

// joinFields concatenates the two schemas for a join result, renaming
// any of other's attribute names already taken on this side by
// appending "2" (repeatedly, in the degenerate case where the renamed
// name is taken too).
func (t *Table) joinFields(other *Table) []Field {
	fields := make([]Field, 0, t.Arity()+other.Arity())
	taken := map[string]bool{}
	for i := 0; i < t.Arity(); i++ {
		f := *t.field(i)
		fields = append(fields, f)
		taken[f.Name] = true
	}
	for i := 0; i < other.Arity(); i++ {
		f := *other.field(i)
		for taken[f.Name] {
			f.Name += "2"
		}
		fields = append(fields, f)
		taken[f.Name] = true
	}
	return fields
}

func concatTuples(t1, t2 Tuple) Tuple {
	combined := make(Tuple, 0, len(t1)+len(t2))
	combined = append(combined, t1...)
	return append(combined, t2...)
}

// Join is the equi-join on two equal-length attribute lists: a pair of
// rows joins when this row's attrs1 values equal other's attrs2 values
// position by position. Nested-loop, O(|t| * |other|). The result keeps
// this table's key.
func (t *Table) Join(attrs1, attrs2 []string, other *Table) (*Table, error) {
	if len(attrs1) != len(attrs2) {
		return nil, &SchemaMismatchError{
			Left: t.Name, Right: other.Name,
			Reason: fmt.Sprintf("join attribute lists differ in length: %d vs %d", len(attrs1), len(attrs2)),
		}
	}
	cols1, err := t.colsOf(attrs1)
	if err != nil {
		return nil, err
	}
	cols2, err := other.colsOf(attrs2)
	if err != nil {
		return nil, err
	}

	out := t.derive(t.joinFields(other), t.Key)
	for _, t1 := range t.tuples {
		for _, t2 := range other.tuples {
			if tuplesMatch(t1, t2, cols1, cols2) {
				out.append(concatTuples(t1, t2))
			}
		}
	}
	return out, nil
}

func (t *Table) colsOf(attrs []string) ([]int, error) {
	cols := make([]int, len(attrs))
	for i, a := range attrs {
		col, ok := t.cols[a]
		if !ok {
			return nil, &AttributeNotFoundError{Table: t.Name, Attribute: a}
		}
		cols[i] = col
	}
	return cols, nil
}

func tuplesMatch(t1, t2 Tuple, cols1, cols2 []int) bool {
	for i := range cols1 {
		if !t1[cols1[i]].Equal(t2[cols2[i]]) {
			return false
		}
	}
	return true
}

// JoinWhere is the theta-join: the condition "attr1 op attr2" compares
// one column of this table against one column of other under the
// natural ordering of the (assumed matching) domains. Same nested-loop
// structure and renaming rule as Join. A pair whose operator cannot be
// applied is excluded and reported.
func (t *Table) JoinWhere(cond string, other *Table) (*Table, error) {
	c, err := parseCondition(cond)
	if err != nil {
		return nil, err
	}
	col1, ok := t.cols[c.attr]
	if !ok {
		return nil, &AttributeNotFoundError{Table: t.Name, Attribute: c.attr}
	}
	col2, ok := other.cols[c.operand]
	if !ok {
		return nil, &AttributeNotFoundError{Table: other.Name, Attribute: c.operand}
	}

	out := t.derive(t.joinFields(other), t.Key)
	for _, t1 := range t.tuples {
		for _, t2 := range other.tuples {
			keep, err := c.op.eval(t1[col1].Compare(t2[col2]))
			if err != nil {
				t.report("JoinWhere", err.Error())
				continue
			}
			if keep {
				out.append(concatTuples(t1, t2))
			}
		}
	}
	return out, nil
}

// NaturalJoin equates every attribute name the two schemas share and
// keeps each shared column once, from this side. With no shared names
// it degenerates to the cartesian product. Nested-loop.
func (t *Table) NaturalJoin(other *Table) *Table {
	var cols1, cols2 []int
	var keep2 []int
	common := map[string]bool{}
	for _, name := range t.Attributes() {
		if col2, ok := other.cols[name]; ok {
			common[name] = true
			cols1 = append(cols1, t.cols[name])
			cols2 = append(cols2, col2)
		}
	}

	fields := make([]Field, 0, t.Arity()+other.Arity()-len(cols2))
	for i := 0; i < t.Arity(); i++ {
		fields = append(fields, *t.field(i))
	}
	for i := 0; i < other.Arity(); i++ {
		if f := other.field(i); !common[f.Name] {
			fields = append(fields, *f)
			keep2 = append(keep2, i)
		}
	}

	out := t.derive(fields, t.Key)
	for _, t1 := range t.tuples {
		for _, t2 := range other.tuples {
			if !tuplesMatch(t1, t2, cols1, cols2) {
				continue
			}
			combined := make(Tuple, 0, len(fields))
			combined = append(combined, t1...)
			for _, i := range keep2 {
				combined = append(combined, t2[i])
			}
			out.append(combined)
		}
	}
	return out
}

// JoinOn is the indexed equi-join equating a foreign key of this table
// with other's primary key, which must be a single attribute. Each row
// of this table probes other's index instead of scanning other; on a
// hit the pair concatenates with other's key column dropped (it equals
// the foreign key column already present). Falls back to a nested loop
// when other has no index.
func (t *Table) JoinOn(other *Table, fkey string) (*Table, error) {
	fkeyCol, ok := t.cols[fkey]
	if !ok {
		return nil, &AttributeNotFoundError{Table: t.Name, Attribute: fkey}
	}
	if len(other.Key) != 1 {
		return nil, &KeyArityError{Table: other.Name, Arity: len(other.Key)}
	}
	pkeyCol, ok := other.cols[other.Key[0]]
	if !ok {
		return nil, &AttributeNotFoundError{Table: other.Name, Attribute: other.Key[0]}
	}

	fields := make([]Field, 0, t.Arity()+other.Arity()-1)
	taken := map[string]bool{}
	for i := 0; i < t.Arity(); i++ {
		f := *t.field(i)
		fields = append(fields, f)
		taken[f.Name] = true
	}
	for i := 0; i < other.Arity(); i++ {
		if i == pkeyCol {
			continue
		}
		f := *other.field(i)
		for taken[f.Name] {
			f.Name += "2"
		}
		fields = append(fields, f)
		taken[f.Name] = true
	}

	out := t.derive(fields, t.Key)
	appendPair := func(t1, t2 Tuple) {
		combined := make(Tuple, 0, len(fields))
		combined = append(combined, t1...)
		for i, v := range t2 {
			if i != pkeyCol {
				combined = append(combined, v)
			}
		}
		out.append(combined)
	}

	for _, t1 := range t.tuples {
		if other.index != nil {
			if t2, ok := other.index.Get(linhash.NewKey(t1[fkeyCol])); ok {
				appendPair(t1, t2)
			}
			continue
		}
		for _, t2 := range other.tuples {
			if t2[pkeyCol].Equal(t1[fkeyCol]) {
				appendPair(t1, t2)
			}
		}
	}
	return out, nil
}
