package funlib

import (
	"math"

	"github.com/trackscript/easyfun/geom"
	"github.com/trackscript/easyfun/value"
)

// ids of the float function family
const (
	fnSqrt = iota
	fnExp
	fnLn
	fnLog2
	fnLog10
	fnSin
	fnCos
	fnTan
	fnAsin
	fnAcos
	fnAtan
	fnFloor
	fnCeil
	fnRound
	fnTrunc
)

var floatFuncs = [...]func(float64) float64{
	fnSqrt:  math.Sqrt,
	fnExp:   math.Exp,
	fnLn:    math.Log,
	fnLog2:  math.Log2,
	fnLog10: math.Log10,
	fnSin:   func(deg float64) float64 { return math.Sin(geom.DegToRad(deg)) },
	fnCos:   func(deg float64) float64 { return math.Cos(geom.DegToRad(deg)) },
	fnTan:   func(deg float64) float64 { return math.Tan(geom.DegToRad(deg)) },
	fnAsin:  func(f float64) float64 { return geom.RadToDeg(math.Asin(f)) },
	fnAcos:  func(f float64) float64 { return geom.RadToDeg(math.Acos(f)) },
	fnAtan:  func(f float64) float64 { return geom.RadToDeg(math.Atan(f)) },
	fnFloor: math.Floor,
	fnCeil:  math.Ceil,
	fnRound: math.Round,
	fnTrunc: math.Trunc,
}

// reductions
const (
	reduceMin = iota
	reduceMax
	reduceMean
)

func registerMath(lib *Registry) {
	lib.RegisterTable([]FunDef{
		{"abs", 1, 1, evalAbs, 0, "num", "abs(num)", "Absolute value, for vectors per axis. abs(INT_MIN) is a float."},
		{"sign", 1, 1, evalSign, 0, "num", "sign(num)", "-1, 0 or +1 of the same type, for vectors per axis."},
		{"sqrt", 1, 1, evalFloatFunc, fnSqrt, "float", "sqrt(num)", "Square root, for vectors per axis."},
		{"exp", 1, 1, evalFloatFunc, fnExp, "float", "exp(num)", "e to the power of num."},
		{"ln", 1, 1, evalFloatFunc, fnLn, "float", "ln(num)", "Natural logarithm."},
		{"log2", 1, 1, evalFloatFunc, fnLog2, "float", "log2(num)", "Logarithm to base 2."},
		{"log10", 1, 1, evalFloatFunc, fnLog10, "float", "log10(num)", "Logarithm to base 10."},
		{"sin", 1, 1, evalFloatFunc, fnSin, "float", "sin(deg)", "Sine of an angle in degrees."},
		{"cos", 1, 1, evalFloatFunc, fnCos, "float", "cos(deg)", "Cosine of an angle in degrees."},
		{"tan", 1, 1, evalFloatFunc, fnTan, "float", "tan(deg)", "Tangent of an angle in degrees."},
		{"asin", 1, 1, evalFloatFunc, fnAsin, "float", "asin(num)", "Arc sine in degrees."},
		{"acos", 1, 1, evalFloatFunc, fnAcos, "float", "acos(num)", "Arc cosine in degrees."},
		{"atan", 1, 1, evalFloatFunc, fnAtan, "float", "atan(num)", "Arc tangent in degrees."},
		{"atan2", 2, 2, evalAtan2, 0, "float", "atan2(y,x)", "Angle of the point (x,y) in degrees."},
		{"floor", 1, 1, evalRounding, fnFloor, "num", "floor(num)", "Round down. Integers are kept."},
		{"ceil", 1, 1, evalRounding, fnCeil, "num", "ceil(num)", "Round up. Integers are kept."},
		{"round", 1, 1, evalRounding, fnRound, "num", "round(num)", "Round half away from zero. Integers are kept."},
		{"trunc", 1, 1, evalRounding, fnTrunc, "num", "trunc(num)", "Round towards zero. Integers are kept."},
		{"pow", 2, 2, evalPow, 0, "float", "pow(base,exp)", "base to the power of exp, for a vector base per axis."},
		{"clamp", 3, 3, evalClamp, 0, "num", "clamp(num,lo,hi)",
			"num limited to [lo,hi]. The result has the dominant type, vectors are clamped per axis."},
		{"min", 1, MaxParams, evalReduce, reduceMin, "num", "min(num...)",
			"Minimum of all arguments. The result has the dominant type of int, float and vector.\n" +
				"For vectors per axis, scalars count for every axis. Strings are ignored."},
		{"max", 1, MaxParams, evalReduce, reduceMax, "num", "max(num...)",
			"Maximum of all arguments. The result has the dominant type of int, float and vector.\n" +
				"For vectors per axis, scalars count for every axis. Strings are ignored."},
		{"mean", 1, MaxParams, evalReduce, reduceMean, "num", "mean(num...)",
			"Arithmetic mean of all arguments. The result has the dominant type of int, float and vector.\n" +
				"For vectors per axis, scalars count for every axis. Strings are ignored."},
	})
}

// numeric replaces a string by integer 0: arithmetic never parses strings
func numeric(v value.Value) value.Value {
	if v.IsString() {
		return value.NewInt(0)
	}
	return v
}

// dominant returns the highest kind of the order unset < int < float < vector.
// Strings do not take part
func dominant(args ...value.Value) value.Kind {
	ret := value.KindUnset
	for _, a := range args {
		if a.IsNumeric() && a.Kind() > ret {
			ret = a.Kind()
		}
	}
	return ret
}

// broadcast is the vector form used by per-axis reductions: a scalar counts for all axes
func broadcast(v value.Value) value.Vec {
	if v.IsVector() {
		return v.Vec()
	}
	return value.Splat(v.Float())
}

// negInt negates an integer. -INT_MIN does not fit an int and becomes a float
func negInt(i int64) value.Value {
	if i == math.MinInt64 {
		return value.NewFloat(-float64(i))
	}
	return value.NewInt(-i)
}

func evalAbs(par *CallParams) (value.Value, error) {
	v := numeric(*par.Arg(0))
	switch v.Kind() {
	case value.KindInt:
		if i := v.Int(); i < 0 {
			return negInt(i), nil
		}
		return v, nil
	case value.KindFloat:
		return value.NewFloat(math.Abs(v.Float())), nil
	case value.KindVector:
		return value.NewVec(v.Vec().Map(math.Abs)), nil
	}
	return v, nil
}

func signf(f float64) float64 {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

func evalSign(par *CallParams) (value.Value, error) {
	v := numeric(*par.Arg(0))
	switch v.Kind() {
	case value.KindInt:
		return value.NewInt(int64(signf(float64(v.Int())))), nil
	case value.KindFloat:
		return value.NewFloat(signf(v.Float())), nil
	case value.KindVector:
		return value.NewVec(v.Vec().Map(signf)), nil
	}
	return v, nil
}

func evalFloatFunc(par *CallParams) (value.Value, error) {
	f := floatFuncs[par.ID()]
	v := numeric(*par.Arg(0))
	switch v.Kind() {
	case value.KindUnset:
		return v, nil
	case value.KindVector:
		return value.NewVec(v.Vec().Map(f)), nil
	}
	return value.NewFloat(f(v.Float())), nil
}

func evalRounding(par *CallParams) (value.Value, error) {
	v := numeric(*par.Arg(0))
	if v.IsInt() || v.IsUnset() {
		return v, nil
	}
	return evalFloatFunc(par)
}

func evalAtan2(par *CallParams) (value.Value, error) {
	y := numeric(*par.Arg(0)).Float()
	x := numeric(*par.Arg(1)).Float()
	return value.NewFloat(geom.RadToDeg(math.Atan2(y, x))), nil
}

func evalPow(par *CallParams) (value.Value, error) {
	base := numeric(*par.Arg(0))
	exp := numeric(*par.Arg(1)).Float()
	if base.IsVector() {
		return value.NewVec(base.Vec().Map(func(f float64) float64 {
			return math.Pow(f, exp)
		})), nil
	}
	return value.NewFloat(math.Pow(base.Float(), exp)), nil
}

func evalClamp(par *CallParams) (value.Value, error) {
	v := numeric(*par.Arg(0))
	lo := numeric(*par.Arg(1))
	hi := numeric(*par.Arg(2))
	switch dominant(v, lo, hi) {
	case value.KindInt:
		i := v.Int()
		if i < lo.Int() {
			i = lo.Int()
		}
		if i > hi.Int() {
			i = hi.Int()
		}
		return value.NewInt(i), nil
	case value.KindFloat:
		return value.NewFloat(math.Min(math.Max(v.Float(), lo.Float()), hi.Float())), nil
	case value.KindVector:
		ret := broadcast(v).Zip(broadcast(lo), math.Max).Zip(broadcast(hi), math.Min)
		return value.NewVec(ret), nil
	}
	return value.Unset, nil
}

func evalReduce(par *CallParams) (value.Value, error) {
	args := par.Args()
	kind := dominant(args...)

	var count int
	var iret int64
	var fret float64
	var vret value.Vec
	for _, a := range args {
		if !a.IsNumeric() {
			continue
		}
		first := count == 0
		count++
		switch kind {
		case value.KindInt:
			i := a.Int()
			switch {
			case first:
				iret = i
			case par.ID() == reduceMin && i < iret, par.ID() == reduceMax && i > iret:
				iret = i
			case par.ID() == reduceMean:
				iret += i
			}
		case value.KindFloat:
			f := a.Float()
			switch {
			case first:
				fret = f
			case par.ID() == reduceMin:
				fret = math.Min(fret, f)
			case par.ID() == reduceMax:
				fret = math.Max(fret, f)
			default:
				fret += f
			}
		case value.KindVector:
			v := broadcast(a)
			switch {
			case first:
				vret = v
			case par.ID() == reduceMin:
				vret = vret.Zip(v, math.Min)
			case par.ID() == reduceMax:
				vret = vret.Zip(v, math.Max)
			default:
				vret = vret.Add(v)
			}
		}
	}

	switch kind {
	case value.KindInt:
		if par.ID() == reduceMean {
			iret /= int64(count)
		}
		return value.NewInt(iret), nil
	case value.KindFloat:
		if par.ID() == reduceMean {
			fret /= float64(count)
		}
		return value.NewFloat(fret), nil
	case value.KindVector:
		if par.ID() == reduceMean {
			vret = vret.Scale(1 / float64(count))
		}
		return value.NewVec(vret), nil
	}
	return value.Unset, nil
}
