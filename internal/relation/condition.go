package relation

import (
	"fmt"
	"strings"

	"github.com/linrel/linrel/internal/value"
)

// Op is a comparison operator of the condition mini-language.
type Op string

const (
	OpEq Op = "=="
	OpNe Op = "!="
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="
)

// eval applies the operator to a three-way comparison result.
func (op Op) eval(cmp int) (bool, error) {
	switch op {
	case OpEq:
		return cmp == 0, nil
	case OpNe:
		return cmp != 0, nil
	case OpLt:
		return cmp < 0, nil
	case OpLe:
		return cmp <= 0, nil
	case OpGt:
		return cmp > 0, nil
	case OpGe:
		return cmp >= 0, nil
	}
	return false, &UnknownOperatorError{Op: string(op)}
}

// condition is a parsed three-token condition string. The mini-language
// is exactly "attr op operand" with whitespace separation; the operand
// is a literal for selects and an attribute of the right-hand table for
// theta-joins.
type condition struct {
	attr    string
	op      Op
	operand string
}

func parseCondition(s string) (condition, error) {
	tokens := strings.Fields(s)
	if len(tokens) != 3 {
		return condition{}, fmt.Errorf("condition %q: want exactly 3 tokens, got %d", s, len(tokens))
	}
	return condition{attr: tokens[0], op: Op(tokens[1]), operand: tokens[2]}, nil
}

// satisfies evaluates "tup[col] op literal" with the literal coerced to
// the attribute's kind. Coercion and operator failures are returned for
// the caller to report; each tuple is evaluated independently.
func satisfies(tup Tuple, col int, attr string, kind value.Kind, op Op, literal string) (bool, error) {
	operand, err := value.Parse(kind, literal)
	if err != nil {
		return false, &LiteralParseError{Attribute: attr, Kind: kind, Literal: literal}
	}
	return op.eval(tup[col].Compare(operand))
}
