package relation

import (
	"fmt"

	"github.com/linrel/linrel/internal/value"
)

// SchemaViolationError reports a tuple whose arity or per-position value
// kind disagrees with the table's domain list.
type SchemaViolationError struct {
	Table  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation on table %s: %s", e.Table, e.Reason)
}

// SchemaMismatchError reports incompatible operands of a set operation.
type SchemaMismatchError struct {
	Left   string
	Right  string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("tables %s and %s are incompatible: %s", e.Left, e.Right, e.Reason)
}

// AttributeNotFoundError reports an attribute name that is not part of
// the referenced table's schema.
type AttributeNotFoundError struct {
	Table     string
	Attribute string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("attribute %s not found in table %s", e.Attribute, e.Table)
}

// KeyArityError reports an indexed join against a table whose primary
// key is not a single attribute.
type KeyArityError struct {
	Table string
	Arity int
}

func (e *KeyArityError) Error() string {
	return fmt.Sprintf("indexed join requires a single-attribute key on table %s, got %d", e.Table, e.Arity)
}

// LiteralParseError reports a condition operand that cannot be coerced
// to the attribute's domain. It is per-tuple recoverable: the affected
// tuple is excluded and scanning continues.
type LiteralParseError struct {
	Attribute string
	Kind      value.Kind
	Literal   string
}

func (e *LiteralParseError) Error() string {
	return fmt.Sprintf("cannot coerce literal %q to %s domain of attribute %s", e.Literal, e.Kind, e.Attribute)
}

// UnknownOperatorError reports a condition operator outside the
// supported set. Per-tuple recoverable, like LiteralParseError.
type UnknownOperatorError struct {
	Op string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Op)
}
