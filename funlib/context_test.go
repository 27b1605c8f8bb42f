package funlib

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/trackscript/easyfun/value"
)

// scanFunc runs a macro with go code instead of script text
type scanFunc func(ctx *Context, m *Macro) error

func (fun scanFunc) ScanMacro(ctx *Context, m *Macro) error {
	return fun(ctx, m)
}

func TestDispatch(t *testing.T) {
	t.Run("arity", func(t *testing.T) {
		m := NewMetrics()
		ctx, logs := newTestContext(WithMetrics(m))
		for _, name := range []string{"v", "sideOfLine", "bezier", "left", "normal", "print", "isDef"} {
			d := ctx.Resolve(name)
			args := make([]value.Value, d.MaxParams+1)
			requireValue(t, value.Unset, ctx.Call(d, args))
			if d.MinParams > 0 {
				requireValue(t, value.Unset, ctx.Call(d, args[:d.MinParams-1]))
			}
		}
		require.EqualValues(t, 13, ctx.Diagnostics().Warnings())
		require.EqualValues(t, 13, logs.Len())
		require.EqualValues(t, 13, testutil.ToFloat64(m.arityErrors))
		require.EqualValues(t, 0, testutil.ToFloat64(m.calls.WithLabelValues("v")))
	})
	t.Run("diagnostic position", func(t *testing.T) {
		ctx, logs := newTestContext()
		ctx.SetPos("track.txt", 12)
		ctx.CallName("sideOfLine", i(1))
		lst := ctx.Diagnostics().List()
		require.EqualValues(t, 1, len(lst))
		require.EqualValues(t, SeverityWarning, lst[0].Severity)
		require.EqualValues(t, "track.txt", lst[0].File)
		require.EqualValues(t, 12, lst[0].Line)
		require.EqualValues(t, "sideOfLine", lst[0].Func)
		require.Contains(t, lst[0].String(), "track.txt:12: warning: sideOfLine(): ")
		entry := logs.All()[0]
		require.EqualValues(t, "track.txt", entry.ContextMap()["file"])
	})
	t.Run("undefined function", func(t *testing.T) {
		m := NewMetrics()
		ctx, logs := newTestContext(WithMetrics(m))
		ret := ctx.CallName("noSuchFunction", i(1), f(2), str("3"))
		requireValue(t, i(3), ret)
		require.EqualValues(t, 1, logs.FilterMessage("function not defined").Len())
		require.EqualValues(t, 1, testutil.ToFloat64(m.undefined))
	})
	t.Run("calls are counted", func(t *testing.T) {
		m := NewMetrics()
		ctx, _ := newTestContext(WithMetrics(m))
		ctx.CallName("v", i(1))
		ctx.CallName("v", i(1), i(2))
		require.EqualValues(t, 2, testutil.ToFloat64(m.calls.WithLabelValues("v")))
	})
	t.Run("panic and error", func(t *testing.T) {
		lib := Library().Clone()
		lib.Register("boom", 0, 0, false, func(_ *CallParams) (value.Value, error) {
			panic("boom")
		}, 0)
		lib.Register("fail", 0, 0, false, func(_ *CallParams) (value.Value, error) {
			return i(1), errors.New("failed")
		}, 0)
		lib.Freeze()
		ctx, logs := newTestContext(WithLibrary(lib))
		requireValue(t, value.Unset, ctx.CallName("boom"))
		requireValue(t, value.Unset, ctx.CallName("fail"))
		require.EqualValues(t, 1, logs.FilterMessage("boom").Len())
		require.EqualValues(t, 1, logs.FilterMessage("failed").Len())
		require.EqualValues(t, 2, ctx.Diagnostics().Warnings())
	})
	t.Run("shared diagnostics", func(t *testing.T) {
		ctx1, _ := newTestContext()
		ctx2 := NewContext(WithDiagnostics(ctx1.Diagnostics()))
		ctx1.CallName("noSuchFunction")
		ctx2.CallName("noSuchFunction")
		require.EqualValues(t, 2, ctx1.Diagnostics().Warnings())
		ctx1.Diagnostics().Reset()
		require.EqualValues(t, 0, ctx2.Diagnostics().Warnings())
		require.Empty(t, ctx2.Diagnostics().List())
	})
	t.Run("contexts are isolated", func(t *testing.T) {
		ctx1, _ := newTestContext()
		ctx2, _ := newTestContext()
		ctx1.CallName("ptInConvexPolygon", vec(0, 0, 0), vec(1, 0, 1), vec(1, 0, -1), vec(-1, 0, 0))
		requireValue(t, value.Unset, ctx2.Status())
		require.False(t, ctx1.Status().IsUnset())
	})
}

func TestVariables(t *testing.T) {
	ctx, _ := newTestContext()
	ctx.DefineGlobal("a", i(1))
	ctx.Define("b", f(2))

	v, found := ctx.Lookup("a")
	require.True(t, found)
	requireValue(t, i(1), v)
	v, found = ctx.Lookup("PI")
	require.True(t, found)
	require.True(t, v.IsFloat())
	_, found = ctx.Lookup("nope")
	require.False(t, found)

	// globals shadow constants
	ctx.DefineGlobal("PI", i(3))
	v, _ = ctx.Lookup("PI")
	requireValue(t, i(3), v)
	v, _ = Constants().Get("PI")
	require.True(t, v.IsFloat())
}

func TestMacroInvocation(t *testing.T) {
	t.Run("parameters and result", func(t *testing.T) {
		var states []InvocationState
		var numParams value.Value
		sc := scanFunc(func(ctx *Context, m *Macro) error {
			states = append(states, ctx.Scope().State())
			require.True(t, ctx.Scope().Macro == m)
			numParams = ctx.CallName("param")
			a, _ := ctx.Lookup("$1")
			b, _ := ctx.Lookup("$2")
			ctx.SetResult(value.NewInt(a.Int() + b.Int()))
			return nil
		})
		m := NewMetrics()
		ctx, _ := newTestContext(WithScanner(sc), WithMetrics(m))
		sum := &Macro{Name: "sum", IsFunction: true, File: "lib.txt", Line: 3}
		ctx.DefineMacro(sum)
		require.True(t, ctx.FindMacro("sum") == sum)

		d := ctx.Resolve("sum")
		require.True(t, d.IsMacro())
		require.EqualValues(t, 0, d.MinParams)
		require.EqualValues(t, MaxParams, d.MaxParams)

		ctx.SetResult(str("before"))
		ret := ctx.Call(d, []value.Value{i(2), i(3)})
		requireValue(t, i(5), ret)
		requireValue(t, i(2), numParams)
		require.EqualValues(t, []InvocationState{StateRunning}, states)

		// everything released
		require.EqualValues(t, 0, ctx.Depth())
		require.True(t, ctx.Scope() == ctx.Global())
		requireValue(t, str("before"), ctx.Result())
		_, found := ctx.Lookup("$1")
		require.False(t, found)
		require.EqualValues(t, 1, testutil.ToFloat64(m.macroCalls))
	})
	t.Run("arguments are copies", func(t *testing.T) {
		sc := scanFunc(func(ctx *Context, m *Macro) error {
			ctx.Define("$1", str("changed"))
			return nil
		})
		ctx, _ := newTestContext(WithScanner(sc))
		ctx.DefineMacro(&Macro{Name: "mod", IsFunction: true})
		args := []value.Value{i(1)}
		ctx.CallName("mod", args...)
		requireValue(t, i(1), args[0])
	})
	t.Run("caller parameters are not visible", func(t *testing.T) {
		var seen []bool
		var param2 value.Value
		sc := scanFunc(func(ctx *Context, m *Macro) error {
			if m.Name == "outer" {
				ctx.Define("local", i(5))
				ctx.SetResult(ctx.CallName("inner", i(9)))
				return nil
			}
			for _, name := range []string{"$1", "$2", "local", "g"} {
				seen = append(seen, ctx.IsDefined(name))
			}
			param2 = ctx.CallName("param", i(2))
			v, _ := ctx.Lookup("$1")
			ctx.SetResult(v)
			return nil
		})
		ctx, _ := newTestContext(WithScanner(sc))
		ctx.DefineGlobal("g", i(1))
		ctx.DefineMacro(&Macro{Name: "outer", IsFunction: true})
		ctx.DefineMacro(&Macro{Name: "inner", IsFunction: true})

		requireValue(t, i(9), ctx.CallName("outer", i(1), i(2)))
		require.EqualValues(t, []bool{true, false, false, true}, seen)
		requireValue(t, value.Unset, param2)
	})
	t.Run("unconditional recursion", func(t *testing.T) {
		maxDepth := 0
		sc := scanFunc(func(ctx *Context, m *Macro) error {
			if ctx.Depth() > maxDepth {
				maxDepth = ctx.Depth()
			}
			ctx.SetResult(ctx.CallName(m.Name))
			return nil
		})
		m := NewMetrics()
		ctx, logs := newTestContext(WithScanner(sc), WithMetrics(m))
		ctx.DefineMacro(&Macro{Name: "f", IsFunction: true})

		ret := ctx.CallName("f")
		requireValue(t, value.Unset, ret)
		require.EqualValues(t, DefaultMaxFunctionDepth, maxDepth)
		require.EqualValues(t, 1, ctx.Diagnostics().Warnings())
		require.Contains(t, logs.All()[0].Message, "maximum function depth")
		require.EqualValues(t, 1, testutil.ToFloat64(m.depthAborts))
		require.EqualValues(t, DefaultMaxFunctionDepth, testutil.ToFloat64(m.macroCalls))
		require.EqualValues(t, 0, ctx.Depth())
		require.True(t, ctx.Scope() == ctx.Global())
	})
	t.Run("custom depth", func(t *testing.T) {
		calls := 0
		sc := scanFunc(func(ctx *Context, m *Macro) error {
			calls++
			ctx.CallName(m.Name)
			return nil
		})
		ctx, _ := newTestContext(WithScanner(sc), WithMaxDepth(5))
		ctx.DefineMacro(&Macro{Name: "f", IsFunction: true})
		ctx.CallName("f")
		require.EqualValues(t, 5, calls)
	})
	t.Run("scope released on panic and error", func(t *testing.T) {
		sc := scanFunc(func(ctx *Context, m *Macro) error {
			if m.Name == "p" {
				panic("in macro")
			}
			return errors.New("scan failed")
		})
		ctx, logs := newTestContext(WithScanner(sc))
		ctx.DefineMacro(&Macro{Name: "p", IsFunction: true})
		ctx.DefineMacro(&Macro{Name: "e", IsFunction: true})
		requireValue(t, value.Unset, ctx.CallName("p", i(1)))
		requireValue(t, value.Unset, ctx.CallName("e", i(1)))
		require.EqualValues(t, 0, ctx.Depth())
		require.True(t, ctx.Scope() == ctx.Global())
		require.EqualValues(t, 1, logs.FilterMessage("in macro").Len())
		require.EqualValues(t, 1, logs.FilterMessage("scan failed").Len())
	})
	t.Run("no scanner", func(t *testing.T) {
		ctx, logs := newTestContext()
		ctx.DefineMacro(&Macro{Name: "f", IsFunction: true})
		requireValue(t, value.Unset, ctx.CallName("f"))
		require.EqualValues(t, 1, logs.Len())
	})
	t.Run("plain macro is not a function", func(t *testing.T) {
		ctx, logs := newTestContext()
		ctx.DefineMacro(&Macro{Name: "m"})
		requireValue(t, i(1), ctx.CallName("m", i(7)))
		require.EqualValues(t, 1, logs.FilterMessage("function not defined").Len())
		requireValue(t, i(1), ctx.CallName("isMacro", str("m")))
		requireValue(t, i(0), ctx.CallName("isFunction", str("m")))
		requireValue(t, i(1), ctx.CallName("isFunction", str("sin")))
	})
	t.Run("macros shadow natives", func(t *testing.T) {
		sc := scanFunc(func(ctx *Context, m *Macro) error {
			ctx.SetResult(str("macro"))
			return nil
		})
		ctx, _ := newTestContext(WithScanner(sc))
		ctx.DefineMacro(&Macro{Name: "sin", IsFunction: true})
		requireValue(t, str("macro"), ctx.CallName("sin", i(1)))
	})
	t.Run("macro defined inside a macro is local", func(t *testing.T) {
		sc := scanFunc(func(ctx *Context, m *Macro) error {
			if m.Name == "outer" {
				ctx.DefineMacro(&Macro{Name: "inner"})
				ctx.SetResult(ctx.CallName("isMacro", str("inner")))
			}
			return nil
		})
		ctx, _ := newTestContext(WithScanner(sc))
		ctx.DefineMacro(&Macro{Name: "outer", IsFunction: true})
		requireValue(t, i(1), ctx.CallName("outer"))
		require.Nil(t, ctx.FindMacro("inner"))
	})
}
