package quality

import "strconv"

// Value is one measured sample: either numeric or text. Validation error
// codes and tracked-eye labels are text; everything else is numeric.
type Value struct {
	num     float64
	text    string
	numeric bool
}

// Number wraps a numeric sample.
func Number(v float64) Value {
	return Value{num: v, numeric: true}
}

// Text wraps a string sample.
func Text(s string) Value {
	return Value{text: s}
}

// Numbers wraps a slice of numeric samples.
func Numbers(vs []float64) []Value {
	out := make([]Value, 0, len(vs))
	for _, v := range vs {
		out = append(out, Number(v))
	}
	return out
}

// Texts wraps a slice of string samples.
func Texts(ss []string) []Value {
	out := make([]Value, 0, len(ss))
	for _, s := range ss {
		out = append(out, Text(s))
	}
	return out
}

// Num returns the numeric sample and whether the value is numeric.
func (v Value) Num() (float64, bool) {
	return v.num, v.numeric
}

// Equal compares two values; numeric and text values never compare equal.
func (v Value) Equal(o Value) bool {
	if v.numeric != o.numeric {
		return false
	}
	if v.numeric {
		return v.num == o.num
	}
	return v.text == o.text
}

// String renders the value the way the report prints it.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}
