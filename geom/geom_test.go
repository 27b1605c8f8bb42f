package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trackscript/easyfun/value"
)

const delta = 1e-9

func requireVec(t *testing.T, exp, got Vec) {
	require.InDelta(t, exp.X, got.X, delta, "x of %+v", got)
	require.InDelta(t, exp.Y, got.Y, delta, "y of %+v", got)
	require.InDelta(t, exp.Z, got.Z, delta, "z of %+v", got)
}

func TestSideOfLine(t *testing.T) {
	a := Vec{}
	b := Vec{Z: 1}
	t.Run("left", func(t *testing.T) {
		require.EqualValues(t, -1, SideOfLine(a, b, Vec{X: 1}))
	})
	t.Run("swapped", func(t *testing.T) {
		require.EqualValues(t, 1, SideOfLine(b, a, Vec{X: 1}))
	})
	t.Run("on line", func(t *testing.T) {
		require.EqualValues(t, 0, SideOfLine(a, b, Vec{Y: 5, Z: 7}))
	})
	t.Run("other side", func(t *testing.T) {
		require.EqualValues(t, 1, SideOfLine(a, b, Vec{X: -1}))
	})
	t.Run("y ignored", func(t *testing.T) {
		require.EqualValues(t, -1, SideOfLine(Vec{Y: 100}, Vec{Y: -3, Z: 1}, Vec{X: 1, Y: 9}))
	})
}

func TestPtInConvexPolygon(t *testing.T) {
	square := []Vec{{X: 0, Z: 0}, {X: 1, Z: 0}, {X: 1, Z: 1}, {X: 0, Z: 1}}
	reversed := []Vec{square[3], square[2], square[1], square[0]}
	t.Run("inside", func(t *testing.T) {
		in, w := PtInConvexPolygon(Vec{X: 0.5, Z: 0.5}, square)
		require.True(t, in)
		require.EqualValues(t, WindingCW, w)
	})
	t.Run("inside reversed", func(t *testing.T) {
		in, w := PtInConvexPolygon(Vec{X: 0.5, Z: 0.5}, reversed)
		require.True(t, in)
		require.EqualValues(t, WindingCCW, w)
	})
	t.Run("border and corner", func(t *testing.T) {
		in, _ := PtInConvexPolygon(Vec{X: 1, Z: 0.5}, square)
		require.True(t, in)
		in, _ = PtInConvexPolygon(Vec{X: 0, Z: 0}, reversed)
		require.True(t, in)
	})
	t.Run("outside", func(t *testing.T) {
		in, _ := PtInConvexPolygon(Vec{X: 1.5, Z: 0.5}, square)
		require.False(t, in)
		in, _ = PtInConvexPolygon(Vec{X: -0.1, Z: 0.5}, reversed)
		require.False(t, in)
	})
	t.Run("degenerate", func(t *testing.T) {
		in, w := PtInConvexPolygon(Vec{}, []Vec{{}, {X: 1}, {X: 2}})
		require.False(t, in)
		require.EqualValues(t, WindingUndefined, w)
		in, w = PtInConvexPolygon(Vec{}, []Vec{{}, {X: 1}})
		require.False(t, in)
		require.EqualValues(t, WindingUndefined, w)
	})
}

func TestBezier(t *testing.T) {
	t.Run("quadratic ends", func(t *testing.T) {
		require.EqualValues(t, 3, Bezier2(0, 3, 10, -4))
		require.EqualValues(t, -4, Bezier2(1, 3, 10, -4))
		require.InDelta(t, 0.25*3+0.5*10+0.25*-4, Bezier2(0.5, 3, 10, -4), delta)
	})
	t.Run("cubic ends", func(t *testing.T) {
		require.EqualValues(t, 3, Bezier3(0, 3, 10, 20, -4))
		require.EqualValues(t, -4, Bezier3(1, 3, 10, 20, -4))
	})
	t.Run("vector", func(t *testing.T) {
		p1 := Vec{X: 1, Y: 2, Z: 3}
		pa := Vec{X: 5, Y: 5, Z: 5}
		p2 := Vec{X: -1, Y: 0, Z: 9}
		requireVec(t, p1, BezierVec(Vec{}, p1, pa, Vec{}, p2, false))
		requireVec(t, p2, BezierVec(value.Splat(1), p1, pa, Vec{}, p2, false))
		mixed := BezierVec(Vec{X: 0, Y: 1, Z: 0}, p1, pa, Vec{}, p2, false)
		requireVec(t, Vec{X: 1, Y: 0, Z: 3}, mixed)
	})
}

func TestRotate(t *testing.T) {
	t.Run("y rotation", func(t *testing.T) {
		requireVec(t, Vec{X: 1}, YRot(Vec{Z: 1}, 90, Vec{}))
	})
	t.Run("x rotation", func(t *testing.T) {
		requireVec(t, Vec{Z: 1}, XRot(Vec{Y: 1}, 90, Vec{}))
	})
	t.Run("z rotation", func(t *testing.T) {
		requireVec(t, Vec{Y: 1}, ZRot(Vec{X: 1}, 90, Vec{}))
	})
	t.Run("around origin", func(t *testing.T) {
		origin := Vec{X: 10, Y: 5, Z: 10}
		requireVec(t, Vec{X: 8, Y: 5, Z: 10}, YRot(Vec{X: 12, Y: 5, Z: 10}, 180, origin))
	})
	t.Run("point at origin", func(t *testing.T) {
		origin := Vec{X: 1, Y: 2, Z: 3}
		requireVec(t, origin, ZRot(origin, 45, origin))
	})
	t.Run("keeps radius", func(t *testing.T) {
		p := XRot(Vec{X: 4, Y: 3, Z: 4}, 33, Vec{})
		require.InDelta(t, 5, math.Hypot(p.Y, p.Z), delta)
		require.EqualValues(t, 4, p.X)
	})
	t.Run("rot", func(t *testing.T) {
		requireVec(t, Vec{Y: 1}, Rot(Vec{Z: 1}, Vec{X: -90}, Vec{}))
		requireVec(t, Vec{X: 1}, Rot(Vec{Z: 1}, Vec{Y: 90}, Vec{}))
	})
}

func TestHDir(t *testing.T) {
	require.InDelta(t, 0, HDir(Vec{}, Vec{Z: 5}), delta)
	require.InDelta(t, 90, HDir(Vec{}, Vec{X: 5, Y: 100}), delta)
	require.InDelta(t, -90, HDir(Vec{X: 5}, Vec{}), delta)
}

func TestCalcNormals(t *testing.T) {
	t.Run("default helper", func(t *testing.T) {
		n, ok := CalcNormals(Vec{}, Vec{X: 10}, nil, 1)
		require.True(t, ok)
		requireVec(t, Vec{X: 1}, n[0])
		requireVec(t, Vec{Y: 1}, n[1])
		requireVec(t, Vec{Z: 1}, n[2])
	})
	t.Run("perpendicular", func(t *testing.T) {
		h := Vec{X: 3, Y: -1, Z: 7}
		n, ok := CalcNormals(Vec{X: 1, Y: 2, Z: 3}, Vec{X: -4, Y: 8, Z: 1}, &h, 2)
		require.True(t, ok)
		for i := range n {
			require.InDelta(t, 2, n[i].Len(), delta)
			require.InDelta(t, 0, n[i].Dot(n[(i+1)%3]), delta)
		}
	})
	t.Run("vertical segment", func(t *testing.T) {
		n, ok := CalcNormals(Vec{}, Vec{Y: 1}, nil, 1)
		require.True(t, ok)
		requireVec(t, Vec{Y: 1}, n[0])
		requireVec(t, Vec{X: 1}, n[1])
	})
	t.Run("helper side", func(t *testing.T) {
		h := Vec{Z: -5}
		n, ok := CalcNormals(Vec{}, Vec{X: 1}, &h, 1)
		require.True(t, ok)
		requireVec(t, Vec{Z: -1}, n[1])
	})
	t.Run("equal points", func(t *testing.T) {
		_, ok := CalcNormals(Vec{X: 1}, Vec{X: 1}, nil, 1)
		require.False(t, ok)
	})
}
