package funlib

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/trackscript/easyfun/value"
	"github.com/trackscript/easyfun/varmap"
)

// Macro is a user defined block of script text. A function macro can be called
// like a native function, its last expression value is the result
type Macro struct {
	Name       string
	Body       string
	File       string
	Line       int
	IsFunction bool
}

// Scanner runs the body of a macro in the given context.
// The value of the last expression must be left in ctx.SetResult
type Scanner interface {
	ScanMacro(ctx *Context, m *Macro) error
}

// InvocationState is the phase of a macro invocation
type InvocationState byte

const (
	StateIdle InvocationState = iota
	StateBound
	StateRunning
	StateDrained
)

func (s InvocationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBound:
		return "bound"
	case StateRunning:
		return "running"
	case StateDrained:
		return "drained"
	}
	return "?"
}

// Scope is one level of the scope chain. The root scope holds the script globals,
// every macro invocation pushes one holding $1..$N and $N
type Scope struct {
	Macro  *Macro
	Vars   *varmap.Map
	macros map[string]*Macro
	state  InvocationState
}

func newScope(m *Macro) *Scope {
	return &Scope{
		Macro:  m,
		Vars:   varmap.New(),
		macros: make(map[string]*Macro),
	}
}

func (s *Scope) State() InvocationState {
	return s.state
}

// NumParams is the value of $N, 0 for the root scope
func (s *Scope) NumParams() int {
	v, _ := s.Vars.Get("$N")
	return int(v.Int())
}

// Param returns $n
func (s *Scope) Param(n int) (value.Value, bool) {
	return s.Vars.Get("$" + strconv.Itoa(n))
}

func macroDescriptor(m *Macro) *Descriptor {
	return &Descriptor{
		Name:      m.Name,
		MinParams: 0,
		MaxParams: MaxParams,
		Macro:     m,
		Eval: func(par *CallParams) (value.Value, error) {
			return par.ctx.InvokeMacro(m, par.args)
		},
		ResultType: "*",
		Syntax:     m.Name + "(...)",
		Info:       fmt.Sprintf("macro defined at %s:%d", m.File, m.Line),
	}
}

// errDepth is returned when an invocation would exceed the depth limit
var errDepth = errors.New("maximum function depth exceeded")

// InvokeMacro runs the macro with the arguments bound to $1..$N.
// Exceeding the depth limit aborts only this invocation
func (ctx *Context) InvokeMacro(m *Macro, args []value.Value) (value.Value, error) {
	if ctx.depth >= ctx.opts.MaxDepth {
		ctx.metrics.depthAbort()
		return value.Unset, fmt.Errorf("%w: %d nested calls of '%s'", errDepth, ctx.opts.MaxDepth, m.Name)
	}
	if ctx.opts.Scanner == nil {
		return value.Unset, fmt.Errorf("no scanner to run macro '%s'", m.Name)
	}
	ctx.metrics.macroCall()

	scope := ctx.bind(m, args)
	saved := ctx.lastResult
	defer ctx.drain(scope, saved)

	scope.state = StateRunning
	ctx.lastResult = value.Unset
	if err := ctx.opts.Scanner.ScanMacro(ctx, m); err != nil {
		return value.Unset, err
	}
	return ctx.lastResult, nil
}

// bind pushes a new scope with the copies of the arguments
func (ctx *Context) bind(m *Macro, args []value.Value) *Scope {
	scope := newScope(m)
	for i, a := range args {
		scope.Vars.Set("$"+strconv.Itoa(i+1), a)
	}
	scope.Vars.Set("$N", value.NewInt(int64(len(args))))
	scope.state = StateBound

	ctx.scopes.PushBack(scope)
	ctx.depth++
	return scope
}

// drain removes the scope. It runs on every exit path of the invocation
func (ctx *Context) drain(scope *Scope, saved value.Value) {
	scope.state = StateDrained
	if ctx.scopes.Back() == scope {
		ctx.scopes.PopBack()
	}
	ctx.depth--
	ctx.lastResult = saved
	scope.state = StateIdle
}
