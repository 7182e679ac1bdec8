package conn

import (
	"fmt"

	"github.com/linrel/linrel/internal/linhash"
	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/internal/value"
	"github.com/linrel/linrel/pkg"
)

// valueFromJSON coerces a decoded JSON cell into the attribute's kind.
// JSON numbers always decode as float64, so integer domains go through
// NumToInt.
func valueFromJSON(kind value.Kind, cell any) (value.Value, error) {
	switch kind {
	case value.Int:
		switch cell.(type) {
		case float64, int:
			return value.NewInt(int64(pkg.NumToInt(cell))), nil
		}
	case value.Float:
		if f, ok := cell.(float64); ok {
			return value.NewFloat(f), nil
		}
	case value.String:
		if s, ok := cell.(string); ok {
			return value.NewString(s), nil
		}
	case value.Char:
		if s, ok := cell.(string); ok && len(s) > 0 {
			return value.NewChar([]rune(s)[0]), nil
		}
	}
	return value.Value{}, fmt.Errorf("cannot use %v (%T) as %s", cell, cell, kind)
}

func valueToJSON(v value.Value) any {
	switch v.Kind() {
	case value.Int:
		return v.AsInt()
	case value.Float:
		return v.AsFloat()
	default:
		return v.String()
	}
}

// tupleFromJSON builds a typed tuple for the table from raw JSON cells.
func tupleFromJSON(t *relation.Table, cells []any) (relation.Tuple, error) {
	if len(cells) != t.Arity() {
		return nil, fmt.Errorf("row arity %d, want %d", len(cells), t.Arity())
	}
	tup := make(relation.Tuple, len(cells))
	for i, name := range t.Attributes() {
		v, err := valueFromJSON(t.Fields.Get(name).Kind, cells[i])
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		tup[i] = v
	}
	return tup, nil
}

// keyFromJSON builds a composite key for the table's key attributes
// from raw JSON cells.
func keyFromJSON(t *relation.Table, cells []any) (linhash.Key, error) {
	if len(cells) != len(t.Key) {
		return linhash.Key{}, fmt.Errorf("key arity %d, want %d", len(cells), len(t.Key))
	}
	vals := make([]value.Value, len(cells))
	for i, name := range t.Key {
		v, err := valueFromJSON(t.Fields.Get(name).Kind, cells[i])
		if err != nil {
			return linhash.Key{}, fmt.Errorf("key attribute %s: %w", name, err)
		}
		vals[i] = v
	}
	return linhash.NewKey(vals...), nil
}

// tableData renders an operator result for the wire.
func tableData(t *relation.Table) TableData {
	rows := make([][]any, 0, t.Len())
	for _, tup := range t.Tuples() {
		row := make([]any, len(tup))
		for i, v := range tup {
			row[i] = valueToJSON(v)
		}
		rows = append(rows, row)
	}
	return TableData{Name: t.Name, Attributes: t.Attributes(), Key: t.Key, Rows: rows}
}
