package funlib

import (
	"fmt"

	"github.com/trackscript/easyfun/value"
)

// kind predicates of the is*() family
const (
	isDef = iota
	isInt
	isFloat
	isScalar
	isVector
	isNumeric
	isString
)

func registerIntrospection(lib *Registry) {
	lib.RegisterTable([]FunDef{
		{"isDef", -1, 1, evalIsKind, isDef, "int", "isDef(name)",
			"1 if the variable is defined."},
		{"isInt", -1, 1, evalIsKind, isInt, "int", "isInt(name)",
			"1 if the variable is defined and an integer."},
		{"isFloat", -1, 1, evalIsKind, isFloat, "int", "isFloat(name)",
			"1 if the variable is defined and a float."},
		{"isScalar", -1, 1, evalIsKind, isScalar, "int", "isScalar(name)",
			"1 if the variable is defined and an integer or a float."},
		{"isVector", -1, 1, evalIsKind, isVector, "int", "isVector(name)",
			"1 if the variable is defined and a vector."},
		{"isNumeric", -1, 1, evalIsKind, isNumeric, "int", "isNumeric(name)",
			"1 if the variable is defined and an integer, a float or a vector."},
		{"isString", -1, 1, evalIsKind, isString, "int", "isString(name)",
			"1 if the variable is defined and a string."},
		{"type", -1, 1, evalType, 0, "string", "type(name)",
			"The type of the variable: unset, int, float, vector or string.\n'undef' if not defined."},
		{"var", -1, 2, evalVar, 0, "*", "var(name[,default])",
			"The value of the variable, or the default if not defined."},
		{"isMacro", -1, 1, evalIsMacro, 0, "int", "isMacro(name)",
			"1 if a macro with this name is visible."},
		{"isFunction", -1, 1, evalIsFunction, 0, "int", "isFunction(name)",
			"1 if a function or a function macro with this name is visible."},
		{"param", 0, 1, evalParam, 0, "*", "param([n])",
			"param() is the number of parameters of the current macro,\nparam(n) is parameter $n."},
		{"result", 0, 0, evalResult, 0, "*", "result()",
			"The value of the last expression."},
		{"status", 0, 0, evalStatus, 0, "*", "status()",
			"The side result of the last function which sets one,\ne.g. the winding of a containment test."},
	})
}

func nameArg(par *CallParams) string {
	return par.Arg(0).Str()
}

func evalIsKind(par *CallParams) (value.Value, error) {
	v, found := par.Context().Lookup(nameArg(par))
	if !found {
		return value.NewBool(false), nil
	}
	var ret bool
	switch par.ID() {
	case isDef:
		ret = true
	case isInt:
		ret = v.IsInt()
	case isFloat:
		ret = v.IsFloat()
	case isScalar:
		ret = v.IsScalar()
	case isVector:
		ret = v.IsVector()
	case isNumeric:
		ret = v.IsNumeric()
	case isString:
		ret = v.IsString()
	default:
		return value.Unset, fmt.Errorf("wrong predicate %d", par.ID())
	}
	return value.NewBool(ret), nil
}

func evalType(par *CallParams) (value.Value, error) {
	v, found := par.Context().Lookup(nameArg(par))
	if !found {
		return value.NewString("undef"), nil
	}
	return value.NewString(v.Kind().String()), nil
}

func evalVar(par *CallParams) (value.Value, error) {
	if v, found := par.Context().Lookup(nameArg(par)); found {
		return v, nil
	}
	return par.ArgOr(1, value.Unset), nil
}

func evalIsMacro(par *CallParams) (value.Value, error) {
	return value.NewBool(par.Context().FindMacro(nameArg(par)) != nil), nil
}

func evalIsFunction(par *CallParams) (value.Value, error) {
	ctx := par.Context()
	name := nameArg(par)
	if m := ctx.FindMacro(name); m != nil && m.IsFunction {
		return value.NewBool(true), nil
	}
	return value.NewBool(ctx.Library().Exists(name)), nil
}

func evalParam(par *CallParams) (value.Value, error) {
	scope := par.Context().Scope()
	if par.Arity() == 0 {
		return value.NewInt(int64(scope.NumParams())), nil
	}
	v, _ := scope.Param(int(par.Arg(0).Int()))
	return v, nil
}

func evalResult(par *CallParams) (value.Value, error) {
	return par.Context().Result(), nil
}

func evalStatus(par *CallParams) (value.Value, error) {
	return par.Context().Status(), nil
}
