package table

import (
	"strconv"
	"strings"
)

// Kind identifies the concrete type carried by a Cell.
type Kind uint8

// Cell kinds. Absent is the zero value so an uninitialized Cell reads as
// a missing value rather than an empty string or zero number.
const (
	KindAbsent Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

// String returns the kind name for logging and test failure messages.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Cell is a single tabular value. Source files mix text, numbers, booleans,
// and missing values freely within one column, so cells carry an explicit
// kind instead of relying on string parsing at every use site.
type Cell struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Absent returns the missing-value cell.
func Absent() Cell { return Cell{} }

// Int returns an integer cell.
func Int(v int64) Cell { return Cell{kind: KindInt, i: v} }

// Float returns a floating-point cell.
func Float(v float64) Cell { return Cell{kind: KindFloat, f: v} }

// String returns a text cell.
func String(v string) Cell { return Cell{kind: KindString, s: v} }

// Bool returns a boolean cell.
func Bool(v bool) Cell { return Cell{kind: KindBool, b: v} }

// Kind reports the cell's concrete type.
func (c Cell) Kind() Kind { return c.kind }

// IsAbsent reports whether the cell holds no value.
func (c Cell) IsAbsent() bool { return c.kind == KindAbsent }

// Int64 returns the integer payload. Zero for non-integer cells.
func (c Cell) Int64() int64 { return c.i }

// Float64 returns the floating-point payload. Zero for non-float cells.
func (c Cell) Float64() float64 { return c.f }

// Str returns the text payload. Empty for non-string cells.
func (c Cell) Str() string { return c.s }

// Boolean returns the boolean payload. False for non-bool cells.
func (c Cell) Boolean() bool { return c.b }

// Render returns the cell's canonical text form as written to output
// files: absent renders as the empty string, booleans as true/false,
// floats in their shortest exact representation.
func (c Cell) Render() string {
	switch c.kind {
	case KindAbsent:
		return ""
	case KindInt:
		return strconv.FormatInt(c.i, 10)
	case KindFloat:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case KindString:
		return c.s
	case KindBool:
		return strconv.FormatBool(c.b)
	default:
		return ""
	}
}

// Equal reports whether two cells have the same kind and payload.
func (c Cell) Equal(other Cell) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case KindAbsent:
		return true
	case KindInt:
		return c.i == other.i
	case KindFloat:
		return c.f == other.f
	case KindString:
		return c.s == other.s
	case KindBool:
		return c.b == other.b
	default:
		return false
	}
}

// IsBlank reports whether the cell is absent or holds only whitespace text.
func (c Cell) IsBlank() bool {
	if c.kind == KindAbsent {
		return true
	}
	return c.kind == KindString && strings.TrimSpace(c.s) == ""
}
