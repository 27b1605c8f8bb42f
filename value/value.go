package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the variant tag of a Value. The numeric kinds are ordered:
// KindUnset < KindInt < KindFloat < KindVector. Reductions over parameter
// lists (min, max, mean) rely on this order to pick the dominant kind
type Kind byte

const (
	KindUnset Kind = iota
	KindInt
	KindFloat
	KindVector
	KindString
)

var kindNames = [...]string{
	KindUnset:  "unset",
	KindInt:    "int",
	KindFloat:  "float",
	KindVector: "vector",
	KindString: "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsNumeric is true for int, float and vector
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat || k == KindVector
}

// Value is the datum every function consumes and produces.
// The zero Value is unset
type Value struct {
	kind Kind
	mode IntMode
	i    int64
	vec  Vec // a float is kept in vec.X
	str  string
}

var Unset = Value{}

func NewInt(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func NewIntMode(i int64, mode IntMode) Value {
	return Value{kind: KindInt, i: i, mode: mode}
}

func NewBool(b bool) Value {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

func NewFloat(f float64) Value {
	return Value{kind: KindFloat, vec: Vec{X: f}}
}

func NewVector(x, y, z float64) Value {
	return Value{kind: KindVector, vec: Vec{X: x, Y: y, Z: z}}
}

func NewVec(v Vec) Value {
	return Value{kind: KindVector, vec: v}
}

func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) Mode() IntMode { return v.mode }
func (v Value) IsUnset() bool { return v.kind == KindUnset }
func (v Value) IsInt() bool { return v.kind == KindInt }
func (v Value) IsFloat() bool { return v.kind == KindFloat }
func (v Value) IsVector() bool { return v.kind == KindVector }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsNumeric() bool { return v.kind.IsNumeric() }
func (v Value) IsScalar() bool { return v.kind == KindInt || v.kind == KindFloat }

// WithMode converts the value to int and tags it with the encoding mode
func (v Value) WithMode(m IntMode) Value {
	ret := v
	ret.ToInt()
	ret.mode = m
	return ret
}

// Int returns the value as integer. Floats are truncated, vectors use the x axis,
// strings and unset are 0
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat, KindVector:
		return floatToInt(v.vec.X)
	}
	return 0
}

// Float returns the value as float. Vectors use the x axis, strings and unset are 0
func (v Value) Float() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat, KindVector:
		return v.vec.X
	}
	return 0
}

// Vec returns the vector form. A scalar s becomes (s,0,0)
func (v Value) Vec() Vec {
	switch v.kind {
	case KindInt:
		return Vec{X: float64(v.i)}
	case KindFloat:
		return Vec{X: v.vec.X}
	case KindVector:
		return v.vec
	}
	return Vec{}
}

// Axis returns one axis of the vector form
func (v Value) Axis(a Axis) float64 {
	return v.Vec().At(a)
}

// Str returns the raw string of a string value and the generic text form of others
func (v Value) Str() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return FormatFloat(v.vec.X)
	case KindVector:
		return "v(" + FormatFloat(v.vec.X) + "," + FormatFloat(v.vec.Y) + "," + FormatFloat(v.vec.Z) + ")"
	}
	return ""
}

// String is the debugging form of the value
func (v Value) String() string {
	switch v.kind {
	case KindUnset:
		return "<unset>"
	case KindString:
		return strconv.Quote(v.str)
	case KindInt:
		if v.mode != IntNative {
			return v.Str() + ":" + v.mode.String()
		}
	}
	return v.Str()
}

// Bool is false for unset, zero numbers, the null vector and the empty string
func (v Value) Bool() bool {
	switch v.kind {
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.vec.X != 0
	case KindVector:
		return v.vec != Vec{}
	case KindString:
		return v.str != ""
	}
	return false
}

// ToInt converts the value in place
func (v *Value) ToInt() {
	if v.kind == KindInt {
		return
	}
	*v = NewInt(v.Int())
}

// ToFloat converts the value in place
func (v *Value) ToFloat() {
	if v.kind == KindFloat {
		return
	}
	*v = NewFloat(v.Float())
}

// ToVector converts the value in place, a scalar s becomes (s,0,0)
func (v *Value) ToVector() {
	if v.kind == KindVector {
		return
	}
	*v = NewVec(v.Vec())
}

// ToScalar converts a vector in place to the float of the given axis.
// Scalars are kept, strings and unset become 0.0
func (v *Value) ToScalar(a Axis) {
	switch v.kind {
	case KindInt, KindFloat:
		return
	case KindVector:
		*v = NewFloat(v.vec.At(a))
	default:
		*v = NewFloat(0)
	}
}

// Equal compares kind and content. The int encoding mode is part of the content
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i && v.mode == o.mode
	case KindFloat:
		return v.vec.X == o.vec.X
	case KindVector:
		return v.vec == o.vec
	case KindString:
		return v.str == o.str
	}
	return true
}

// FormatFloat is the shortest text form which parses back to the same float
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEn") {
		return s
	}
	return s + ".0"
}

func floatToInt(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
