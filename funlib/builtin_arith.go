package funlib

import (
	"errors"
	"math"
	"strings"

	"github.com/trackscript/easyfun/value"
)

// ids of the arithmetic family
const (
	opAdd = iota
	opSub
	opMul
	opDiv
	opMod
)

// ids of the comparison family
const (
	cmpEq = iota
	cmpNe
	cmpLt
	cmpLe
	cmpGt
	cmpGe
)

func registerArith(lib *Registry) {
	lib.RegisterTable([]FunDef{
		{"add", 1, MaxParams, evalArith, opAdd, "num", "add(num...)",
			"Sum of all arguments. The result has the dominant type, scalars count for every axis of a vector."},
		{"sub", 2, 2, evalArith, opSub, "num", "sub(a,b)", "a minus b."},
		{"mul", 1, MaxParams, evalArith, opMul, "num", "mul(num...)",
			"Product of all arguments, vectors are multiplied per axis."},
		{"div", 2, 2, evalArith, opDiv, "num", "div(a,b)",
			"a divided by b. Integer division truncates, an integer division by 0 is a warning."},
		{"mod", 2, 2, evalArith, opMod, "num", "mod(a,b)", "Remainder of a divided by b with the sign of a."},
		{"neg", 1, 1, evalNeg, 0, "num", "neg(num)", "Negated value. neg(INT_MIN) is a float."},
		{"eq", 2, 2, evalCompare, cmpEq, "int", "eq(a,b)",
			"1 if a equals b. Strings equal only strings, numbers compare by the dominant type,\nvectors per axis."},
		{"ne", 2, 2, evalCompare, cmpNe, "int", "ne(a,b)", "1 if a does not equal b."},
		{"lt", 2, 2, evalCompare, cmpLt, "int", "lt(a,b)", "1 if a < b. Vectors compare by length."},
		{"lte", 2, 2, evalCompare, cmpLe, "int", "lte(a,b)", "1 if a <= b. Vectors compare by length."},
		{"gt", 2, 2, evalCompare, cmpGt, "int", "gt(a,b)", "1 if a > b. Vectors compare by length."},
		{"gte", 2, 2, evalCompare, cmpGe, "int", "gte(a,b)", "1 if a >= b. Vectors compare by length."},
		{"and", 1, MaxParams, evalLogic, 0, "int", "and(val...)", "1 if all arguments are true."},
		{"or", 1, MaxParams, evalLogic, 1, "int", "or(val...)", "1 if any argument is true."},
	})
}

var errDivByZero = errors.New("integer division by zero")

func arithInt(op int, a, b int64) (int64, error) {
	switch op {
	case opAdd:
		return a + b, nil
	case opSub:
		return a - b, nil
	case opMul:
		return a * b, nil
	}
	if b == 0 {
		return 0, errDivByZero
	}
	if op == opDiv {
		return a / b, nil
	}
	return a % b, nil
}

func arithFloat(op int, a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		return a / b
	}
	return math.Mod(a, b)
}

func evalArith(par *CallParams) (value.Value, error) {
	args := par.Args()
	for k := range args {
		args[k] = numeric(args[k])
	}
	op := par.ID()
	switch dominant(args...) {
	case value.KindInt:
		ret := args[0].Int()
		for _, a := range args[1:] {
			var err error
			if ret, err = arithInt(op, ret, a.Int()); err != nil {
				return value.Unset, err
			}
		}
		return value.NewInt(ret), nil
	case value.KindFloat:
		ret := args[0].Float()
		for _, a := range args[1:] {
			ret = arithFloat(op, ret, a.Float())
		}
		return value.NewFloat(ret), nil
	case value.KindVector:
		ret := broadcast(args[0])
		for _, a := range args[1:] {
			ret = ret.Zip(broadcast(a), func(x, y float64) float64 {
				return arithFloat(op, x, y)
			})
		}
		return value.NewVec(ret), nil
	}
	return value.Unset, nil
}

func evalNeg(par *CallParams) (value.Value, error) {
	v := numeric(*par.Arg(0))
	switch v.Kind() {
	case value.KindInt:
		return negInt(v.Int()), nil
	case value.KindFloat:
		return value.NewFloat(-v.Float()), nil
	case value.KindVector:
		return value.NewVec(v.Vec().Scale(-1)), nil
	}
	return v, nil
}

// equal compares strings with strings and numbers by the dominant kind
func equal(a, b value.Value) bool {
	if a.IsString() || b.IsString() {
		return a.IsString() && b.IsString() && a.Str() == b.Str()
	}
	switch dominant(a, b) {
	case value.KindUnset:
		return a.IsUnset() && b.IsUnset()
	case value.KindInt:
		return a.Int() == b.Int()
	case value.KindFloat:
		return a.Float() == b.Float()
	}
	return broadcast(a) == broadcast(b)
}

// compare orders strings with strings and numbers by the dominant kind,
// vectors by length. It returns -1, 0 or +1
func compare(a, b value.Value) int {
	if a.IsString() && b.IsString() {
		return strings.Compare(a.Str(), b.Str())
	}
	a, b = numeric(a), numeric(b)
	var x, y float64
	switch dominant(a, b) {
	case value.KindInt:
		switch ai, bi := a.Int(), b.Int(); {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case value.KindVector:
		x, y = broadcast(a).Len(), broadcast(b).Len()
	default:
		x, y = a.Float(), b.Float()
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func evalCompare(par *CallParams) (value.Value, error) {
	a, b := *par.Arg(0), *par.Arg(1)
	var ret bool
	switch par.ID() {
	case cmpEq:
		ret = equal(a, b)
	case cmpNe:
		ret = !equal(a, b)
	case cmpLt:
		ret = compare(a, b) < 0
	case cmpLe:
		ret = compare(a, b) <= 0
	case cmpGt:
		ret = compare(a, b) > 0
	case cmpGe:
		ret = compare(a, b) >= 0
	}
	return value.NewBool(ret), nil
}

func evalLogic(par *CallParams) (value.Value, error) {
	isOr := par.ID() == 1
	for _, a := range par.Args() {
		if a.Bool() == isOr {
			return value.NewBool(isOr), nil
		}
	}
	return value.NewBool(!isOr), nil
}
