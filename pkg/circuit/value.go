package circuit

import (
	"fmt"
	"strings"
)

// Value is an optional wire value. The zero value is None (no value present).
type Value struct {
	F     float64
	Valid bool
}

// Some returns a present Value holding f.
func Some(f float64) Value { return Value{F: f, Valid: true} }

// None is the absent Value.
var None = Value{}

// Less reports whether v orders strictly below w. None orders below every
// present value, and present values order numerically. This is the comparison
// rule used by compare-swap gates.
func (v Value) Less(w Value) bool {
	if !v.Valid {
		return w.Valid
	}
	if !w.Valid {
		return false
	}
	return v.F < w.F
}

func (v Value) String() string {
	if !v.Valid {
		return "_"
	}
	return fmt.Sprintf("%g", v.F)
}

// FormatValues renders a vector as a space-separated string, with "_" for
// absent entries.
func FormatValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// at reads position i, treating out-of-range indices as None.
func at(vs []Value, i int) Value {
	if i < 0 || i >= len(vs) {
		return None
	}
	return vs[i]
}

// set writes position i, silently dropping out-of-range writes.
func set(vs []Value, i int, v Value) {
	if i >= 0 && i < len(vs) {
		vs[i] = v
	}
}
