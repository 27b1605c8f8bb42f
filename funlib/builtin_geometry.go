package funlib

import (
	"errors"
	"fmt"

	"github.com/trackscript/easyfun/geom"
	"github.com/trackscript/easyfun/value"
)

// ids of the distance family
const (
	distLen = iota
	distHLen
	dist3D
	distHorizontal
)

func registerGeometry(lib *Registry) {
	lib.RegisterTable([]FunDef{
		{"len", 1, 1, evalDistance, distLen, "float", "len(vec)", "Length of the vector."},
		{"hLen", 1, 1, evalDistance, distHLen, "float", "hLen(vec)", "Horizontal length of the vector, using x and z."},
		{"dist", 2, 2, evalDistance, dist3D, "float", "dist(p1,p2)", "Distance of 2 points."},
		{"hDist", 2, 2, evalDistance, distHorizontal, "float", "hDist(p1,p2)", "Horizontal distance of 2 points, using x and z."},
		{"unit", 1, 1, evalUnit, 0, "vector", "unit(vec)", "The vector scaled to length 1. The null vector stays null."},
		{"dot", 2, 2, evalDot, 0, "float", "dot(v1,v2)", "Dot product."},
		{"cross", 2, 2, evalCross, 0, "vector", "cross(v1,v2)", "Cross product."},
		{"hDir", 1, 2, evalHDir, 0, "float", "hDir([from,]to)",
			"Horizontal direction in degrees from 'from' (default the origin) to 'to'.\n0 is +z, 90 is +x."},
		{"xRot", 2, 3, evalAxisRot, int(value.AxisX), "vector", "xRot(pt,deg[,origin])",
			"Rotate the point around the x axis through origin."},
		{"yRot", 2, 3, evalAxisRot, int(value.AxisY), "vector", "yRot(pt,deg[,origin])",
			"Rotate the point around the y axis through origin."},
		{"zRot", 2, 3, evalAxisRot, int(value.AxisZ), "vector", "zRot(pt,deg[,origin])",
			"Rotate the point around the z axis through origin."},
		{"rot", 2, 3, evalRot, 0, "vector", "rot(pt,degvec[,origin])",
			"Rotate the point around the x, y and z axis through origin, in this order."},
		{"bezier", 4, 5, evalBezier, 0, "num", "bezier(t,p1,pa[,pb],p2)",
			"Quadratic (4 args) or cubic (5 args) Bezier curve from p1 to p2.\n" +
				"If any argument is a vector all points are vectors; a vector t holds one position per axis."},
		{"sideOfLine", 3, 3, evalSideOfLine, 0, "int", "sideOfLine(a,b,pt)",
			"-1, 0 or +1 for the side of pt relative to the line a->b in the x/z plane.\nSwapping a and b flips the sign."},
		{"ptInConvexPolygon", 4, geom.MaxPolygonPoints + 1, evalPtInConvexPolygon, 0, "int", "ptInConvexPolygon(pt,p1,p2,p3,...)",
			"1 if pt is inside the convex polygon in the x/z plane, borders included.\n" +
				"status() is the winding: -1 counter clockwise, +1 clockwise, 0 undefined."},
		{"ptInConvexTri", 4, MaxParams, evalPtInConvexN, 3, "int", "ptInConvexTri(p1,p2,p3,pt...)",
			"Number of points inside the triangle in the x/z plane, borders included.\nstatus() is the winding."},
		{"ptInConvexQuad", 5, MaxParams, evalPtInConvexN, 4, "int", "ptInConvexQuad(p1,p2,p3,p4,pt...)",
			"Number of points inside the convex quadrilateral in the x/z plane, borders included.\nstatus() is the winding."},
		{"calcNormals", 2, 4, evalCalcNormals, 0, "int", "calcNormals(p1,p2[,helper][,scale])",
			"Calculate 3 perpendicular vectors of length scale (default 1) for the segment p1->p2:\n" +
				"normal(0) points to p2, normal(1) towards helper (default above p1), normal(2) completes them.\n" +
				"Returns 3, or 0 if p1 and p2 are equal."},
		{"normal", 1, 1, evalNormal, 0, "vector", "normal(index)", "Vector 0, 1 or 2 of the last calcNormals()."},
	})
}

// vecArg converts the argument slot to a vector in place and returns it
func vecArg(par *CallParams, n int) value.Vec {
	a := par.Arg(n)
	if a.IsString() {
		*a = value.NewVec(value.Vec{})
	}
	a.ToVector()
	return a.Vec()
}

func evalDistance(par *CallParams) (value.Value, error) {
	switch par.ID() {
	case distLen:
		return value.NewFloat(vecArg(par, 0).Len()), nil
	case distHLen:
		return value.NewFloat(vecArg(par, 0).HLen()), nil
	case dist3D:
		return value.NewFloat(vecArg(par, 1).Sub(vecArg(par, 0)).Len()), nil
	case distHorizontal:
		return value.NewFloat(vecArg(par, 1).Sub(vecArg(par, 0)).HLen()), nil
	}
	return value.Unset, fmt.Errorf("wrong distance id %d", par.ID())
}

func evalUnit(par *CallParams) (value.Value, error) {
	return value.NewVec(vecArg(par, 0).Unit()), nil
}

func evalDot(par *CallParams) (value.Value, error) {
	return value.NewFloat(vecArg(par, 0).Dot(vecArg(par, 1))), nil
}

func evalCross(par *CallParams) (value.Value, error) {
	return value.NewVec(vecArg(par, 0).Cross(vecArg(par, 1))), nil
}

func evalHDir(par *CallParams) (value.Value, error) {
	if par.Arity() == 1 {
		return value.NewFloat(geom.HDir(value.Vec{}, vecArg(par, 0))), nil
	}
	return value.NewFloat(geom.HDir(vecArg(par, 0), vecArg(par, 1))), nil
}

func originArg(par *CallParams, n int) value.Vec {
	if par.Arity() > n {
		return vecArg(par, n)
	}
	return value.Vec{}
}

func evalAxisRot(par *CallParams) (value.Value, error) {
	pt := vecArg(par, 0)
	deg := numeric(*par.Arg(1)).Float()
	return value.NewVec(geom.Rotate(value.Axis(par.ID()), pt, deg, originArg(par, 2))), nil
}

func evalRot(par *CallParams) (value.Value, error) {
	pt := vecArg(par, 0)
	deg := vecArg(par, 1)
	return value.NewVec(geom.Rot(pt, deg, originArg(par, 2))), nil
}

func evalBezier(par *CallParams) (value.Value, error) {
	cubic := par.Arity() == 5
	args := par.Args()
	if dominant(args...) != value.KindVector {
		p := make([]float64, len(args))
		for i := range args {
			p[i] = numeric(args[i]).Float()
		}
		if cubic {
			return value.NewFloat(geom.Bezier3(p[0], p[1], p[2], p[3], p[4])), nil
		}
		return value.NewFloat(geom.Bezier2(p[0], p[1], p[2], p[3])), nil
	}

	t := numeric(*par.Arg(0))
	tv := broadcast(t)
	p1, pa, p2 := vecArg(par, 1), vecArg(par, 2), vecArg(par, par.Arity()-1)
	var pb value.Vec
	if cubic {
		pb = vecArg(par, 3)
	}
	return value.NewVec(geom.BezierVec(tv, p1, pa, pb, p2, cubic)), nil
}

func evalSideOfLine(par *CallParams) (value.Value, error) {
	return value.NewInt(int64(geom.SideOfLine(vecArg(par, 0), vecArg(par, 1), vecArg(par, 2)))), nil
}

func polygonArgs(par *CallParams, from, to int) []value.Vec {
	ret := make([]value.Vec, 0, to-from)
	for i := from; i < to; i++ {
		ret = append(ret, vecArg(par, i))
	}
	return ret
}

func evalPtInConvexPolygon(par *CallParams) (value.Value, error) {
	pt := vecArg(par, 0)
	poly := polygonArgs(par, 1, par.Arity())
	inside, winding := geom.PtInConvexPolygon(pt, poly)
	par.Context().SetStatus(value.NewInt(int64(winding)))
	return value.NewBool(inside), nil
}

// evalPtInConvexN tests the points following the first ID arguments against the
// polygon given by the first ID arguments
func evalPtInConvexN(par *CallParams) (value.Value, error) {
	corners := par.ID()
	poly := polygonArgs(par, 0, corners)
	winding := geom.Winding(poly)
	par.Context().SetStatus(value.NewInt(int64(winding)))

	var count int64
	for i := corners; i < par.Arity(); i++ {
		if inside, _ := geom.PtInConvexPolygon(vecArg(par, i), poly); inside {
			count++
		}
	}
	return value.NewInt(count), nil
}

func evalCalcNormals(par *CallParams) (value.Value, error) {
	p1, p2 := vecArg(par, 0), vecArg(par, 1)
	var helper *value.Vec
	scale := 1.0
	switch par.Arity() {
	case 3:
		if par.Arg(2).IsVector() {
			h := vecArg(par, 2)
			helper = &h
		} else {
			scale = numeric(*par.Arg(2)).Float()
		}
	case 4:
		h := vecArg(par, 2)
		helper = &h
		scale = numeric(*par.Arg(3)).Float()
	}
	normals, ok := geom.CalcNormals(p1, p2, helper, scale)
	par.Context().SetNormals(normals)
	if !ok {
		return value.NewInt(0), nil
	}
	return value.NewInt(int64(len(normals))), nil
}

var errNormalIndex = errors.New("normal index must be 0, 1 or 2")

func evalNormal(par *CallParams) (value.Value, error) {
	idx := par.Arg(0).Int()
	if idx < 0 || idx > 2 {
		return value.Unset, errNormalIndex
	}
	return value.NewVec(par.Context().Normals()[idx]), nil
}
