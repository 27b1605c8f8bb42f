// Package geom contains the pure geometry algorithms behind the vector functions.
// The horizontal plane is X/Z, Y points up
package geom

import (
	"math"

	"github.com/trackscript/easyfun/value"
)

type Vec = value.Vec

// MaxPolygonPoints is the maximum number of vertices of a containment test
const MaxPolygonPoints = 100

// Winding directions of a polygon
const (
	WindingCCW       = -1
	WindingUndefined = 0
	WindingCW        = 1
)

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

// SideOfLine tells on which side of the line a->b the point lies, using only X and Z:
// -1 left, 0 on the line, +1 right. Swapping a and b flips the sign
func SideOfLine(a, b, pt Vec) int {
	return sign((b.X-a.X)*(pt.Z-a.Z) - (b.Z-a.Z)*(pt.X-a.X))
}

// Winding returns the direction of the polygon in the X/Z plane
func Winding(poly []Vec) int {
	if len(poly) < 3 {
		return WindingUndefined
	}
	var area float64
	prev := poly[len(poly)-1]
	for _, p := range poly {
		area += prev.X*p.Z - p.X*prev.Z
		prev = p
	}
	return sign(area)
}

// PtInConvexPolygon tests the point against a convex polygon in the X/Z plane.
// Points on the border are inside. The winding of the polygon is returned too,
// a polygon with undefined winding contains nothing
func PtInConvexPolygon(pt Vec, poly []Vec) (bool, int) {
	w := Winding(poly)
	if w == WindingUndefined {
		return false, w
	}
	prev := poly[len(poly)-1]
	for _, p := range poly {
		if s := SideOfLine(prev, p, pt); s != 0 && s != w {
			return false, w
		}
		prev = p
	}
	return true, w
}

// Bezier2 is the quadratic Bezier curve from p1 to p2 with control point pa
func Bezier2(t, p1, pa, p2 float64) float64 {
	u := 1 - t
	return u*u*p1 + 2*u*t*pa + t*t*p2
}

// Bezier3 is the cubic Bezier curve from p1 to p2 with control points pa and pb
func Bezier3(t, p1, pa, pb, p2 float64) float64 {
	u := 1 - t
	return u*u*u*p1 + 3*u*u*t*pa + 3*u*t*t*pb + t*t*t*p2
}

// BezierVec evaluates every axis with its own parameter t.X, t.Y, t.Z.
// pb is ignored for the quadratic curve
func BezierVec(t, p1, pa, pb, p2 Vec, cubic bool) Vec {
	var ret Vec
	for a := value.AxisX; a <= value.AxisZ; a++ {
		var f float64
		if cubic {
			f = Bezier3(t.At(a), p1.At(a), pa.At(a), pb.At(a), p2.At(a))
		} else {
			f = Bezier2(t.At(a), p1.At(a), pa.At(a), p2.At(a))
		}
		ret.Set(a, f)
	}
	return ret
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// rotPlane returns the two axes spanning the rotation plane, in rotation order
func rotPlane(axis value.Axis) (value.Axis, value.Axis) {
	switch axis {
	case value.AxisX:
		return value.AxisY, value.AxisZ
	case value.AxisY:
		return value.AxisZ, value.AxisX
	}
	return value.AxisX, value.AxisY
}

// Rotate rotates pt around the axis through origin. The new position is reconstructed
// from angle and radius, so a point at the origin stays there
func Rotate(axis value.Axis, pt Vec, deg float64, origin Vec) Vec {
	a1, a2 := rotPlane(axis)
	d1 := pt.At(a1) - origin.At(a1)
	d2 := pt.At(a2) - origin.At(a2)
	r := math.Hypot(d1, d2)
	if r == 0 {
		return pt
	}
	angle := math.Atan2(d2, d1) + DegToRad(deg)
	ret := pt
	ret.Set(a1, origin.At(a1)+r*math.Cos(angle))
	ret.Set(a2, origin.At(a2)+r*math.Sin(angle))
	return ret
}

func XRot(pt Vec, deg float64, origin Vec) Vec {
	return Rotate(value.AxisX, pt, deg, origin)
}

func YRot(pt Vec, deg float64, origin Vec) Vec {
	return Rotate(value.AxisY, pt, deg, origin)
}

func ZRot(pt Vec, deg float64, origin Vec) Vec {
	return Rotate(value.AxisZ, pt, deg, origin)
}

// Rot applies the rotations around X, Y and Z in this order
func Rot(pt, deg, origin Vec) Vec {
	pt = XRot(pt, deg.X, origin)
	pt = YRot(pt, deg.Y, origin)
	return ZRot(pt, deg.Z, origin)
}

// HDir is the horizontal direction from 'from' to 'to' in degrees,
// 0 is +Z and 90 is +X
func HDir(from, to Vec) float64 {
	d := to.Sub(from)
	return RadToDeg(math.Atan2(d.X, d.Z))
}

const epsilon = 1e-12

// CalcNormals returns 3 perpendicular vectors of length scale:
// [0] points from p1 to p2, [1] is perpendicular to it towards the helper point,
// [2] completes the right-handed system. The helper defaults to a point above p1.
// False is returned if p1 and p2 are equal
func CalcNormals(p1, p2 Vec, helper *Vec, scale float64) ([3]Vec, bool) {
	var ret [3]Vec
	n0 := p2.Sub(p1).Unit()
	if n0 == (Vec{}) {
		return ret, false
	}
	candidates := []Vec{{Y: 1}, {X: 1}, {Z: 1}}
	if helper != nil {
		candidates = append([]Vec{helper.Sub(p1)}, candidates...)
	}
	var n1 Vec
	for _, h := range candidates {
		perp := h.Sub(n0.Scale(h.Dot(n0)))
		if perp.Len() > epsilon {
			n1 = perp.Unit()
			break
		}
	}
	n2 := n0.Cross(n1)
	ret[0] = n0.Scale(scale)
	ret[1] = n1.Scale(scale)
	ret[2] = n2.Scale(scale)
	return ret, true
}
