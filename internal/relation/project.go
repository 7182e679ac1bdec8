package relation

import "fmt"

// Project restricts the schema to the named attributes, in the given
// order. The key carries over when every key attribute survives the
// projection; otherwise it degenerates to the projected attributes
// themselves. Output rows are deduplicated by their key projection
// through the result's index, keeping the first occurrence in original
// order, so a projection cannot manufacture duplicate key rows.
func (t *Table) Project(attrs []string) (*Table, error) {
	if len(attrs) == 0 {
		return nil, &SchemaViolationError{Table: t.Name, Reason: "projection needs at least one attribute"}
	}

	cols := make([]int, len(attrs))
	fields := make([]Field, len(attrs))
	seen := map[string]bool{}
	for i, a := range attrs {
		col, ok := t.cols[a]
		if !ok {
			return nil, &AttributeNotFoundError{Table: t.Name, Attribute: a}
		}
		if seen[a] {
			return nil, &SchemaViolationError{Table: t.Name, Reason: fmt.Sprintf("duplicate attribute %s in projection", a)}
		}
		seen[a] = true
		cols[i] = col
		fields[i] = *t.field(col)
	}

	key := attrs
	if containsAll(attrs, t.Key) {
		key = t.Key
	}

	out := t.derive(fields, key)
	for _, tup := range t.tuples {
		row := make(Tuple, len(cols))
		for i, c := range cols {
			row[i] = tup[c]
		}
		if _, ok := out.index.Get(out.KeyOf(row)); ok {
			continue
		}
		out.append(row)
	}
	return out, nil
}

func containsAll(haystack, needles []string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
