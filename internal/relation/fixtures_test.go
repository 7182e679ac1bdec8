package relation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/linrel/linrel/internal/linhash"
	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/internal/schema"
	"github.com/linrel/linrel/internal/value"
)

// recorder captures diagnostics instead of logging them.
type recorder struct {
	reports []string
}

func (r *recorder) Report(source, message string) {
	r.reports = append(r.reports, source+": "+message)
}

type bankDB struct {
	reg      *relation.Registry
	rec      *recorder
	branch   *relation.Table
	customer *relation.Table
	deposit  *relation.Table
	loan     *relation.Table
}

func str(s string) value.Value  { return value.NewString(s) }
func num(n int64) value.Value   { return value.NewInt(n) }
func flt(f float64) value.Value { return value.NewFloat(f) }

func key(vals ...value.Value) linhash.Key { return linhash.NewKey(vals...) }

// asErr is errors.As with the target typed, so tests read cleanly.
func asErr[T error](err error, target *T) bool { return errors.As(err, target) }

// bank builds the classic branch/customer/deposit/loan sample database.
func bank(t *testing.T) *bankDB {
	t.Helper()

	rec := &recorder{}
	reg := relation.NewRegistry(rec)
	db := &bankDB{reg: reg, rec: rec}

	db.branch = mustTable(t, reg, "branch", "bname assets bcity", "String Double String", "bname")
	db.customer = mustTable(t, reg, "customer", "cname street ccity", "String String String", "cname")
	db.deposit = mustTable(t, reg, "deposit", "bname accno cname balance", "String Integer String Double", "accno")
	db.loan = mustTable(t, reg, "loan", "bname loanno cname amount", "String Integer String Double", "loanno")

	addAll(t, db.branch,
		relation.Tuple{str("Main"), flt(15000000.0), str("Athens")},
		relation.Tuple{str("Lake"), flt(20000000.0), str("Gainesville")},
		relation.Tuple{str("Downtown"), flt(10000000.0), str("Winder")},
		relation.Tuple{str("Alps"), flt(11000000.0), str("Athens")},
	)
	addAll(t, db.customer,
		relation.Tuple{str("Peter"), str("Maple St"), str("Athens")},
		relation.Tuple{str("Paul"), str("Oak St"), str("Athens")},
		relation.Tuple{str("Mary"), str("Elm St"), str("Winder")},
		relation.Tuple{str("Joe"), str("Pine St"), str("Athens")},
	)
	addAll(t, db.deposit,
		relation.Tuple{str("Downtown"), num(901), str("Peter"), flt(1000.0)},
		relation.Tuple{str("Main"), num(902), str("Paul"), flt(2000.0)},
		relation.Tuple{str("Alps"), num(903), str("Paul"), flt(3000.0)},
		relation.Tuple{str("Lake"), num(904), str("Paul"), flt(1000.0)},
		relation.Tuple{str("Main"), num(905), str("Mary"), flt(1000.0)},
		relation.Tuple{str("Alps"), num(906), str("Mary"), flt(2000.0)},
		relation.Tuple{str("Lake"), num(907), str("Joe"), flt(1500.0)},
	)
	addAll(t, db.loan,
		relation.Tuple{str("Lake"), num(1001), str("Peter"), flt(1000.0)},
		relation.Tuple{str("Alps"), num(1002), str("Peter"), flt(2000.0)},
		relation.Tuple{str("Main"), num(1003), str("Paul"), flt(1000.0)},
		relation.Tuple{str("Alps"), num(1004), str("Paul"), flt(2000.0)},
		relation.Tuple{str("Main"), num(1005), str("Mary"), flt(1500.0)},
		relation.Tuple{str("Downtown"), num(1006), str("Mary"), flt(2000.0)},
	)

	return db
}

func mustTable(t *testing.T, reg *relation.Registry, name, attrs, domains, key string) *relation.Table {
	t.Helper()
	table, err := schema.NewTable(reg, name, attrs, domains, key)
	if err != nil {
		t.Fatal(err)
	}
	reg.Add(table)
	return table
}

func addAll(t *testing.T, table *relation.Table, rows ...relation.Tuple) {
	t.Helper()
	for _, row := range rows {
		if err := table.Add(row); err != nil {
			t.Fatal(err)
		}
	}
}

// colValues renders one column of a table as strings, in row order.
func colValues(t *testing.T, table *relation.Table, attr string) []string {
	t.Helper()
	col, ok := table.Col(attr)
	if !ok {
		t.Fatalf("no column %s in table %s", attr, table.Name)
	}
	vals := make([]string, 0, table.Len())
	for _, tup := range table.Tuples() {
		vals = append(vals, tup[col].String())
	}
	return vals
}

// rowSet renders the projection of every row onto attrs as a set of
// strings, for order-insensitive comparison.
func rowSet(t *testing.T, table *relation.Table, attrs ...string) map[string]bool {
	t.Helper()
	cols := make([]int, len(attrs))
	for i, a := range attrs {
		col, ok := table.Col(a)
		if !ok {
			t.Fatalf("no column %s in table %s", a, table.Name)
		}
		cols[i] = col
	}
	set := map[string]bool{}
	for _, tup := range table.Tuples() {
		row := ""
		for _, c := range cols {
			row += fmt.Sprintf("%s|", tup[c])
		}
		set[row] = true
	}
	return set
}
