package value

import "math"

// Axis selects one coordinate of a vector
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// Vec is a 3D vector. Y is the vertical axis, X and Z span the horizontal plane
type Vec struct {
	X, Y, Z float64
}

func (v Vec) At(a Axis) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return v.X
}

func (v *Vec) Set(a Axis, f float64) {
	switch a {
	case AxisY:
		v.Y = f
	case AxisZ:
		v.Z = f
	default:
		v.X = f
	}
}

// Splat returns (f,f,f)
func Splat(f float64) Vec {
	return Vec{X: f, Y: f, Z: f}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Mul multiplies axis by axis
func (v Vec) Mul(o Vec) Vec {
	return Vec{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec) Cross(o Vec) Vec {
	return Vec{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// HLen is the length of the projection to the X/Z plane
func (v Vec) HLen() float64 {
	return math.Hypot(v.X, v.Z)
}

// Unit returns the vector scaled to length 1, the null vector stays null
func (v Vec) Unit() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return v.Scale(1 / l)
}

// Map applies f to every axis
func (v Vec) Map(f func(float64) float64) Vec {
	return Vec{X: f(v.X), Y: f(v.Y), Z: f(v.Z)}
}

// Zip combines two vectors axis by axis
func (v Vec) Zip(o Vec, f func(a, b float64) float64) Vec {
	return Vec{X: f(v.X, o.X), Y: f(v.Y, o.Y), Z: f(v.Z, o.Z)}
}
