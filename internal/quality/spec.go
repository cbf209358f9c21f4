package quality

import (
	"fmt"
	"strings"
)

// AcceptableSpec decides whether a single measured value is acceptable.
// Implementations are Set, Range, and Scalar; a measurement passes only
// when every one of its values is allowed.
type AcceptableSpec interface {
	Allows(v Value) bool
	Describe() string
}

// Set allows any value equal to one of its members.
type Set []Value

// Allows reports whether v equals any member of the set.
func (s Set) Allows(v Value) bool {
	for _, member := range s {
		if member.Equal(v) {
			return true
		}
	}
	return false
}

// Describe renders the set as a bracketed member list.
func (s Set) Describe() string {
	parts := make([]string, 0, len(s))
	for _, member := range s {
		parts = append(parts, member.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Range allows numeric values inside the closed interval [Lower, Upper].
// Non-numeric values always fail a range check.
type Range struct {
	Lower float64
	Upper float64
}

// Allows reports whether v is numeric and Lower <= v <= Upper.
func (r Range) Allows(v Value) bool {
	num, ok := v.Num()
	if !ok {
		return false
	}
	return num >= r.Lower && num <= r.Upper
}

// Describe renders the closed interval.
func (r Range) Describe() string {
	return fmt.Sprintf("[%s, %s]", Number(r.Lower), Number(r.Upper))
}

// Scalar requires every value to equal one exact target.
type Scalar struct {
	Value Value
}

// Allows reports whether v equals the required value.
func (s Scalar) Allows(v Value) bool {
	return s.Value.Equal(v)
}

// Describe renders the required value.
func (s Scalar) Describe() string {
	return s.Value.String()
}
