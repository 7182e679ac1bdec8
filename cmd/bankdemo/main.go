// Command bankdemo builds a small bank database and runs a sequence of
// relational algebra queries against it, printing every result. It
// doubles as a worked example of the engine API.
package main

import (
	"fmt"
	"os"

	"github.com/linrel/linrel/internal/linhash"
	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/internal/schema"
	"github.com/linrel/linrel/internal/value"
	"github.com/linrel/linrel/pkg"
)

const bankDecl = `
// the bank database
branch   | bname assets bcity        | String Double String         | bname
customer | cname street ccity        | String String String         | cname
deposit  | bname accno cname balance | String Integer String Double | accno
loan     | bname loanno cname amount | String Integer String Double | loanno
`

func main() {
	reg := relation.NewRegistry(nil)
	if _, err := schema.ParseDecl(reg, bankDecl); err != nil {
		pkg.FatalLog(err)
	}

	branch := mustGet(reg, "branch")
	customer := mustGet(reg, "customer")
	deposit := mustGet(reg, "deposit")
	loan := mustGet(reg, "loan")

	addAll(branch, []relation.Tuple{
		{value.NewString("Main"), value.NewFloat(15000000.0), value.NewString("Athens")},
		{value.NewString("Lake"), value.NewFloat(20000000.0), value.NewString("Gainesville")},
		{value.NewString("Downtown"), value.NewFloat(10000000.0), value.NewString("Winder")},
		{value.NewString("Alps"), value.NewFloat(11000000.0), value.NewString("Athens")},
	})

	addAll(customer, []relation.Tuple{
		{value.NewString("Peter"), value.NewString("Maple St"), value.NewString("Athens")},
		{value.NewString("Paul"), value.NewString("Oak St"), value.NewString("Athens")},
		{value.NewString("Mary"), value.NewString("Elm St"), value.NewString("Winder")},
		{value.NewString("Joe"), value.NewString("Pine St"), value.NewString("Athens")},
	})

	addAll(deposit, []relation.Tuple{
		{value.NewString("Downtown"), value.NewInt(901), value.NewString("Peter"), value.NewFloat(1000.0)},
		{value.NewString("Main"), value.NewInt(902), value.NewString("Paul"), value.NewFloat(2000.0)},
		{value.NewString("Alps"), value.NewInt(903), value.NewString("Paul"), value.NewFloat(3000.0)},
		{value.NewString("Lake"), value.NewInt(904), value.NewString("Paul"), value.NewFloat(1000.0)},
		{value.NewString("Main"), value.NewInt(905), value.NewString("Mary"), value.NewFloat(1000.0)},
		{value.NewString("Alps"), value.NewInt(906), value.NewString("Mary"), value.NewFloat(2000.0)},
		{value.NewString("Lake"), value.NewInt(907), value.NewString("Joe"), value.NewFloat(1500.0)},
	})

	addAll(loan, []relation.Tuple{
		{value.NewString("Lake"), value.NewInt(1001), value.NewString("Peter"), value.NewFloat(1000.0)},
		{value.NewString("Alps"), value.NewInt(1002), value.NewString("Peter"), value.NewFloat(2000.0)},
		{value.NewString("Main"), value.NewInt(1003), value.NewString("Paul"), value.NewFloat(1000.0)},
		{value.NewString("Alps"), value.NewInt(1004), value.NewString("Paul"), value.NewFloat(2000.0)},
		{value.NewString("Main"), value.NewInt(1005), value.NewString("Mary"), value.NewFloat(1500.0)},
		{value.NewString("Downtown"), value.NewInt(1006), value.NewString("Mary"), value.NewFloat(2000.0)},
	})

	fmt.Println(" Bank database")
	branch.Show(os.Stdout)
	customer.Show(os.Stdout)
	deposit.Show(os.Stdout)
	loan.Show(os.Stdout)

	show := func(header string, t *relation.Table, err error) {
		fmt.Println("\n RA> " + header)
		if err != nil {
			fmt.Println("  error:", err)
			return
		}
		t.Show(os.Stdout)
	}

	res, err := deposit.Project([]string{"bname", "cname"})
	show(`deposit.Project("bname cname")`, res, err)

	bnameCol, _ := deposit.Col("bname")
	res = deposit.Select(func(t relation.Tuple) bool {
		return t[bnameCol].Equal(value.NewString("Alps"))
	})
	show(`deposit.Select(t -> t[bname] == "Alps")`, res, nil)

	res, err = deposit.SelectWhere("bname == 'Alps'")
	show(`deposit.SelectWhere("bname == 'Alps'")`, res, err)

	res = deposit.SelectKey(linhash.NewKey(value.NewInt(903)))
	show(`deposit.SelectKey(903)`, res, nil)

	res, err = deposit.Union(loan)
	show(`deposit.Union(loan)`, res, err)

	res, err = deposit.Minus(loan)
	show(`deposit.Minus(loan)`, res, err)

	res, err = deposit.Join([]string{"cname"}, []string{"cname"}, customer)
	show(`deposit.Join("cname", "cname", customer)`, res, err)

	res, err = deposit.JoinWhere("cname == cname", customer)
	show(`deposit.JoinWhere("cname == cname", customer)`, res, err)

	res = deposit.NaturalJoin(customer)
	show(`deposit.NaturalJoin(customer)`, res, nil)

	res, err = deposit.JoinOn(customer, "cname")
	show(`deposit.JoinOn(customer, "cname")`, res, err)
}

func mustGet(reg *relation.Registry, name string) *relation.Table {
	t, ok := reg.Get(name)
	if !ok {
		pkg.FatalLog("missing table", name)
	}
	return t
}

func addAll(t *relation.Table, rows []relation.Tuple) {
	for _, row := range rows {
		if err := t.Add(row); err != nil {
			pkg.FatalLog(err)
		}
	}
}
