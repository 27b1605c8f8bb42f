package funlib

import (
	"fmt"

	"github.com/gammazero/deque"
	"github.com/trackscript/easyfun"
	"github.com/trackscript/easyfun/printf"
	"github.com/trackscript/easyfun/value"
	"github.com/trackscript/easyfun/varmap"
	"go.uber.org/zap"
)

// DefaultMaxFunctionDepth limits nested macro invocations
const DefaultMaxFunctionDepth = 100

type Options struct {
	MaxDepth int
	Format   printf.Options
	Logger   *zap.SugaredLogger
	Diag     *Diagnostics
	Metrics  *Metrics
	Scanner  Scanner
	Library  *Registry
}

type Option func(*Options)

func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithQuiet suppresses the warnings of print()
func WithQuiet(quiet bool) Option {
	return func(o *Options) {
		o.Format.Quiet = quiet
	}
}

func WithFormat(opts printf.Options) Option {
	return func(o *Options) {
		o.Format = opts
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithDiagnostics shares a diagnostics sink between contexts
func WithDiagnostics(diag *Diagnostics) Option {
	return func(o *Options) {
		o.Diag = diag
	}
}

func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithScanner sets the scanner which runs macro bodies
func WithScanner(s Scanner) Option {
	return func(o *Options) {
		o.Scanner = s
	}
}

// WithLibrary replaces the built-in function library
func WithLibrary(lib *Registry) Option {
	return func(o *Options) {
		o.Library = lib
	}
}

// Context is the state of one script evaluation: the scope chain, the source
// position and the result slots written by one function and read by another.
// A context is used by one goroutine at a time
type Context struct {
	opts    Options
	lib     *Registry
	consts  *varmap.Map
	scopes  *deque.Deque[*Scope]
	diag    *Diagnostics
	metrics *Metrics
	log     *zap.SugaredLogger

	File string
	Line int

	depth      int
	lastResult value.Value
	status     value.Value
	normals    [3]value.Vec
}

func NewContext(opt ...Option) *Context {
	opts := Options{
		MaxDepth: DefaultMaxFunctionDepth,
		Format:   printf.DefaultOptions(),
	}
	for _, o := range opt {
		o(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Diag == nil {
		opts.Diag = NewDiagnostics(opts.Logger)
	}
	if opts.Library == nil {
		opts.Library = Library()
	}
	ret := &Context{
		opts:    opts,
		lib:     opts.Library,
		consts:  Constants(),
		scopes:  deque.New[*Scope](),
		diag:    opts.Diag,
		metrics: opts.Metrics,
		log:     opts.Logger,
	}
	ret.scopes.PushBack(newScope(nil))
	return ret
}

func (ctx *Context) Library() *Registry {
	return ctx.lib
}

func (ctx *Context) Diagnostics() *Diagnostics {
	return ctx.diag
}

func (ctx *Context) Log() *zap.SugaredLogger {
	return ctx.log
}

func (ctx *Context) FormatOptions() *printf.Options {
	return &ctx.opts.Format
}

func (ctx *Context) SetScanner(s Scanner) {
	ctx.opts.Scanner = s
}

// SetPos sets the source position used by diagnostics
func (ctx *Context) SetPos(file string, line int) {
	ctx.File, ctx.Line = file, line
}

func (ctx *Context) report(sev Severity, fun string, format string, args ...interface{}) {
	ctx.diag.Report(Diagnostic{
		Severity: sev,
		File:     ctx.File,
		Line:     ctx.Line,
		Func:     fun,
		Msg:      fmt.Sprintf(format, args...),
	})
}

// Warnf reports a warning attributed to the function
func (ctx *Context) Warnf(fun string, format string, args ...interface{}) {
	ctx.metrics.warning()
	ctx.report(SeverityWarning, fun, format, args...)
}

func (ctx *Context) Errorf(fun string, format string, args ...interface{}) {
	ctx.report(SeverityError, fun, format, args...)
}

// Resolve finds the callable for a name: a function macro visible in the scope chain,
// then a native function. An unknown name resolves to a dummy which returns the
// number of its arguments, so that the script can go on
func (ctx *Context) Resolve(name string) *Descriptor {
	if m := ctx.FindMacro(name); m != nil && m.IsFunction {
		return macroDescriptor(m)
	}
	if d, found := ctx.lib.Lookup(name); found {
		return d
	}
	ctx.Warnf(name, "function not defined")
	ctx.metrics.undefinedCall()
	return &Descriptor{
		Name:      name,
		MinParams: 0,
		MaxParams: MaxParams,
		Eval:      evalEchoCount,
	}
}

func evalEchoCount(par *CallParams) (value.Value, error) {
	return value.NewInt(int64(par.Arity())), nil
}

// Call validates the argument count and runs the function.
// Errors and panics of the implementation are reported and yield Unset
func (ctx *Context) Call(d *Descriptor, args []value.Value) value.Value {
	if err := d.CheckArity(len(args)); err != nil {
		ctx.metrics.arityError()
		ctx.Warnf(d.Name, "%v", err)
		return value.Unset
	}
	ctx.metrics.call(d.Name)

	par := NewCallParams(ctx, d, args)
	var ret value.Value
	err := easyfun.CatchPanicOrError(func() error {
		var err error
		ret, err = d.Eval(par)
		return err
	})
	if err != nil {
		ctx.Warnf(d.Name, "%v", err)
		return value.Unset
	}
	return ret
}

// CallName resolves and calls in one step
func (ctx *Context) CallName(name string, args ...value.Value) value.Value {
	return ctx.Call(ctx.Resolve(name), args)
}

// Scope returns the innermost scope
func (ctx *Context) Scope() *Scope {
	return ctx.scopes.Back()
}

// Global returns the root scope
func (ctx *Context) Global() *Scope {
	return ctx.scopes.Front()
}

// Depth is the number of active macro invocations
func (ctx *Context) Depth() int {
	return ctx.depth
}

func (ctx *Context) MaxDepth() int {
	return ctx.opts.MaxDepth
}

// Lookup finds a variable in the innermost scope, then in the globals, then in the
// constants. Parameters and locals of the calling invocations are not visible
func (ctx *Context) Lookup(name string) (value.Value, bool) {
	if v, found := ctx.Scope().Vars.Get(name); found {
		return v, true
	}
	if ctx.scopes.Len() > 1 {
		if v, found := ctx.Global().Vars.Get(name); found {
			return v, true
		}
	}
	return ctx.consts.Get(name)
}

func (ctx *Context) IsDefined(name string) bool {
	_, found := ctx.Lookup(name)
	return found
}

// Define sets a variable in the innermost scope
func (ctx *Context) Define(name string, v value.Value) {
	ctx.Scope().Vars.Set(name, v)
}

// DefineGlobal sets a variable in the root scope
func (ctx *Context) DefineGlobal(name string, v value.Value) {
	ctx.Global().Vars.Set(name, v)
}

// DefineMacro makes the macro visible in the innermost scope
func (ctx *Context) DefineMacro(m *Macro) {
	ctx.Scope().macros[m.Name] = m
}

// FindMacro searches the scope chain from the innermost scope outwards
func (ctx *Context) FindMacro(name string) *Macro {
	for i := ctx.scopes.Len() - 1; i >= 0; i-- {
		if m, found := ctx.scopes.At(i).macros[name]; found {
			return m
		}
	}
	return nil
}

// Result is the value of the last evaluated expression
func (ctx *Context) Result() value.Value {
	return ctx.lastResult
}

func (ctx *Context) SetResult(v value.Value) {
	ctx.lastResult = v
}

// Status is the side result of the last function which sets one,
// e.g. the winding of the last containment test
func (ctx *Context) Status() value.Value {
	return ctx.status
}

func (ctx *Context) SetStatus(v value.Value) {
	ctx.status = v
}

// Normals are the vectors of the last calcNormals() call
func (ctx *Context) Normals() [3]value.Vec {
	return ctx.normals
}

func (ctx *Context) SetNormals(n [3]value.Vec) {
	ctx.normals = n
}
