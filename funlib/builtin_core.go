package funlib

import (
	"math"
	"sync"

	"github.com/trackscript/easyfun/value"
	"github.com/trackscript/easyfun/varmap"
)

func registerCore(lib *Registry) {
	lib.RegisterTable([]FunDef{
		{"v", 0, 3, evalV, 0, "vector", "v([x[,y[,z]]])",
			"Create a vector. v(s) is (s,0,0), a single vector argument is returned as is."},
		{"x", 1, MaxParams, evalAxis, int(value.AxisX), "scalar", "x(val...)",
			"The x axis of the first vector argument.\nWithout vectors the last argument converted to a scalar."},
		{"y", 1, MaxParams, evalAxis, int(value.AxisY), "scalar", "y(val...)",
			"The y axis of the first vector argument.\nWithout vectors the last argument converted to a scalar."},
		{"z", 1, MaxParams, evalAxis, int(value.AxisZ), "scalar", "z(val...)",
			"The z axis of the first vector argument.\nWithout vectors the last argument converted to a scalar."},
		{"int", 1, 1, evalConvert, int(value.KindInt), "int", "int(val)",
			"Convert to integer. Floats are truncated, vectors use the x axis."},
		{"float", 1, 1, evalConvert, int(value.KindFloat), "float", "float(val)",
			"Convert to float. Vectors use the x axis."},
		{"vector", 1, 1, evalConvert, int(value.KindVector), "vector", "vector(val)",
			"Convert to vector. A scalar s becomes (s,0,0)."},
		{"str", 1, 1, evalConvert, int(value.KindString), "string", "str(val)",
			"Convert to the text form."},
		{"be", 1, 2, evalIntMode, 1, "int", "be(val[,size])",
			"Integer tagged to be written big endian with size bytes, 1 to 8. Default size is 4."},
		{"le", 1, 2, evalIntMode, -1, "int", "le(val[,size])",
			"Integer tagged to be written little endian with size bytes, 1 to 8. Default size is 4."},
		{"select", 2, MaxParams, evalSelect, 0, "*", "select(index,val0,val1,...)",
			"Returns val<index>. The index is clamped to the valid range."},
		{"bool", 1, 1, evalBool, 0, "int", "bool(val)",
			"1 for a true value, 0 for unset, zero, null vector and empty string."},
		{"not", 1, 1, evalBool, 1, "int", "not(val)",
			"0 for a true value, 1 otherwise."},
	})
}

func evalV(par *CallParams) (value.Value, error) {
	if par.Arity() == 1 && par.Arg(0).IsVector() {
		return *par.Arg(0), nil
	}
	var v value.Vec
	for i := 0; i < par.Arity(); i++ {
		v.Set(value.Axis(i), par.Arg(i).Float())
	}
	return value.NewVec(v), nil
}

func evalAxis(par *CallParams) (value.Value, error) {
	axis := value.Axis(par.ID())
	for _, a := range par.Args() {
		if a.IsVector() {
			a.ToScalar(axis)
			return a, nil
		}
	}
	ret := *par.Arg(par.Arity() - 1)
	ret.ToScalar(axis)
	return ret, nil
}

func evalConvert(par *CallParams) (value.Value, error) {
	ret := *par.Arg(0)
	switch value.Kind(par.ID()) {
	case value.KindInt:
		ret.ToInt()
	case value.KindFloat:
		ret.ToFloat()
	case value.KindVector:
		ret.ToVector()
	case value.KindString:
		ret = value.NewString(ret.Str())
	}
	return ret, nil
}

const defaultIntModeSize = 4

func evalIntMode(par *CallParams) (value.Value, error) {
	size := defaultIntModeSize
	if par.Arity() > 1 {
		size = int(par.Arg(1).Int())
	}
	if size < 1 || size > value.MaxIntBytes {
		return value.Unset, errWrongSize(size)
	}
	mode := value.BigEndian(size)
	if par.ID() < 0 {
		mode = value.LittleEndian(size)
	}
	return par.Arg(0).WithMode(mode), nil
}

func evalSelect(par *CallParams) (value.Value, error) {
	idx := par.Arg(0).Int()
	n := int64(par.Arity() - 1)
	switch {
	case idx < 0:
		idx = 0
	case idx >= n:
		idx = n - 1
	}
	return *par.Arg(int(idx) + 1), nil
}

func evalBool(par *CallParams) (value.Value, error) {
	b := par.Arg(0).Bool()
	if par.ID() == 1 {
		b = !b
	}
	return value.NewBool(b), nil
}

var (
	constantsOnce sync.Once
	theConstants  *varmap.Map
)

// Constants returns the read-only global constants
func Constants() *varmap.Map {
	constantsOnce.Do(func() {
		theConstants = varmap.FromMap(map[string]value.Value{
			"PI":      value.NewFloat(math.Pi),
			"E":       value.NewFloat(math.E),
			"SQRT2":   value.NewFloat(math.Sqrt2),
			"DEG2RAD": value.NewFloat(math.Pi / 180),
			"RAD2DEG": value.NewFloat(180 / math.Pi),
			"INT_MIN": value.NewInt(math.MinInt64),
			"INT_MAX": value.NewInt(math.MaxInt64),
			"TRUE":    value.NewInt(1),
			"FALSE":   value.NewInt(0),
			"NULL":    value.NewVector(0, 0, 0),
		})
		theConstants.Freeze()
	})
	return theConstants
}
