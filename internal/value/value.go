package value

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variants a domain value can take. The schema loader
// collapses the declared domain names onto these tags (Integer, Long,
// Short and Byte all map to Int; Double and Float map to Float).
type Kind int

const (
	Int Kind = iota
	Float
	String
	Char
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Char:
		return "Char"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is an immutable tagged scalar with a total ordering and a hash
// consistent with equality. The zero Value is the Int 0.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func NewInt(v int64) Value     { return Value{kind: Int, i: v} }
func NewFloat(v float64) Value { return Value{kind: Float, f: v} }
func NewString(v string) Value { return Value{kind: String, s: v} }
func NewChar(v rune) Value     { return Value{kind: Char, i: int64(v)} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsInt() int64     { return v.i }
func (v Value) AsFloat() float64 { return v.f }
func (v Value) AsString() string { return v.s }
func (v Value) AsChar() rune     { return rune(v.i) }

// Compare returns -1, 0 or 1 following the natural ordering of the
// underlying scalar. Values of different kinds order by kind tag so the
// relation over all values stays total and deterministic.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case Int, Char:
		return compareOrdered(v.i, o.i)
	case Float:
		return compareOrdered(v.f, o.f)
	default:
		return strings.Compare(v.s, o.s)
	}
}

func compareOrdered[T int64 | float64](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (v Value) Equal(o Value) bool { return v.Compare(o) == 0 }

// Hash is fnv-32a over the kind tag and the value's representation.
// Equal values always hash equal.
func (v Value) Hash() uint32 {
	h := fnv.New32a()
	h.Write([]byte{byte(v.kind)})
	switch v.kind {
	case Int, Char:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(v.i))
		h.Write(buf[:])
	case Float:
		f := v.f
		if f == 0 {
			f = 0 // fold -0 and +0 into one representation
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	default:
		h.Write([]byte(v.s))
	}
	return h.Sum32()
}

func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Char:
		return string(rune(v.i))
	default:
		return v.s
	}
}

// Parse coerces a condition-string operand into the given kind. Numeric
// kinds parse from decimal text, Char takes the first character of the
// operand, anything else is kept as text. Surrounding quotes on text
// operands are stripped ('Alps' and Alps are the same operand).
func Parse(k Kind, literal string) (Value, error) {
	switch k {
	case Int:
		n, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("cannot parse %q as Int: %w", literal, err)
		}
		return NewInt(n), nil
	case Float:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Value{}, fmt.Errorf("cannot parse %q as Float: %w", literal, err)
		}
		return NewFloat(f), nil
	case Char:
		text := unquote(literal)
		if len(text) == 0 {
			return Value{}, fmt.Errorf("cannot parse empty operand as Char")
		}
		return NewChar([]rune(text)[0]), nil
	default:
		return NewString(unquote(literal)), nil
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
