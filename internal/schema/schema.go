// Package schema turns textual table declarations into the typed
// metadata the relation package consumes: ordered attribute names, a
// parallel domain list resolved to value kinds, and the key attribute
// subset. The engine itself only ever sees already-resolved kinds.
package schema

import (
	"bufio"
	"strings"

	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/internal/value"
	"github.com/pkg/errors"
)

// KindOf resolves a declared domain name to its value kind. The
// accepted names mirror the supported scalar domains: the integer
// domains collapse to Int, the real ones to Float.
func KindOf(domain string) (value.Kind, error) {
	switch domain {
	case "Integer", "Long", "Short", "Byte":
		return value.Int, nil
	case "Double", "Float":
		return value.Float, nil
	case "String":
		return value.String, nil
	case "Character":
		return value.Char, nil
	}
	return 0, errors.Errorf("unknown domain %q", domain)
}

// Fields pairs space-separated attribute names with space-separated
// domain names.
func Fields(attrs, domains string) ([]relation.Field, error) {
	names := strings.Fields(attrs)
	doms := strings.Fields(domains)
	if len(names) != len(doms) {
		return nil, errors.Errorf("%d attributes but %d domains", len(names), len(doms))
	}

	fields := make([]relation.Field, len(names))
	for i, name := range names {
		kind, err := KindOf(doms[i])
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %s", name)
		}
		fields[i] = relation.Field{Name: name, Kind: kind}
	}
	return fields, nil
}

// NewTable builds a table from raw string specifications, e.g.
//
//	NewTable(reg, "deposit", "bname accno cname balance",
//	         "String Integer String Double", "accno")
func NewTable(reg *relation.Registry, name, attrs, domains, key string) (*relation.Table, error) {
	fields, err := Fields(attrs, domains)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", name)
	}
	return relation.NewTable(reg, name, fields, strings.Fields(key))
}

// ParseDecl reads a multi-table declaration, one table per line in the
// form
//
//	name | attrs | domains | key
//
// Blank lines and // comments are skipped. Every parsed table is
// registered in reg.
func ParseDecl(reg *relation.Registry, decl string) ([]*relation.Table, error) {
	var tables []*relation.Table

	scanner := bufio.NewScanner(strings.NewReader(decl))
	line_idx := 0
	for scanner.Scan() {
		line_idx++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "//") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 4 {
			return nil, errors.Errorf("line %d: want 4 |-separated sections, got %d", line_idx, len(parts))
		}

		name := strings.TrimSpace(parts[0])
		table, err := NewTable(reg, name, parts[1], parts[2], parts[3])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line_idx)
		}
		reg.Add(table)
		tables = append(tables, table)
	}

	return tables, nil
}
