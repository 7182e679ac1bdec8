package relation

import (
	"fmt"
	"io"
	"strings"
)

const cellWidth = 15

// Show writes the table in a bordered fixed-width layout, rows in
// insertion order.
func (t *Table) Show(w io.Writer) {
	border := "|-" + strings.Repeat(strings.Repeat("-", cellWidth), t.Arity()) + "-|"

	fmt.Fprintf(w, "\n Table %s\n", t.Name)
	fmt.Fprintln(w, border)
	fmt.Fprint(w, "| ")
	for _, a := range t.Attributes() {
		fmt.Fprintf(w, "%*s", cellWidth, a)
	}
	fmt.Fprintln(w, " |")
	fmt.Fprintln(w, border)
	for _, tup := range t.tuples {
		fmt.Fprint(w, "| ")
		for _, v := range tup {
			fmt.Fprintf(w, "%*s", cellWidth, v.String())
		}
		fmt.Fprintln(w, " |")
	}
	fmt.Fprintln(w, border)
}

func (t *Table) String() string {
	var sb strings.Builder
	t.Show(&sb)
	return sb.String()
}
