package funlib

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/lunfardo314/unitrie/common"
	"github.com/trackscript/easyfun/value"
	"go.uber.org/atomic"
)

// MaxParams is the arity limit of variadic functions and function macros
const MaxParams = 1000

// EvalFunction is the native implementation of a function.
// A non-nil error is reported as warning and the call yields Unset
type EvalFunction func(par *CallParams) (value.Value, error)

// Descriptor is the registration record of a callable
type Descriptor struct {
	Name      string
	MinParams int
	MaxParams int
	// NameArg tells the caller to pass argument 0 unevaluated, as a string with the bare name
	NameArg bool
	Eval    EvalFunction
	// Macro is set for function macros wrapped by the dispatcher
	Macro *Macro
	// ID differentiates the names sharing one implementation
	ID int
	// documentation
	ResultType string
	Syntax     string
	Info       string
}

func (d *Descriptor) IsMacro() bool {
	return d.Macro != nil
}

// CheckArity validates the argument count against the declared bounds
func (d *Descriptor) CheckArity(argc int) error {
	if argc < d.MinParams || argc > d.MaxParams {
		switch {
		case d.MinParams == d.MaxParams:
			return fmt.Errorf("%s() expects %d parameters, got %d", d.Name, d.MinParams, argc)
		case d.MaxParams >= MaxParams:
			return fmt.Errorf("%s() expects at least %d parameters, got %d", d.Name, d.MinParams, argc)
		}
		return fmt.Errorf("%s() expects %d to %d parameters, got %d", d.Name, d.MinParams, d.MaxParams, argc)
	}
	return nil
}

// FunDef is one line of a registration table. A negative Min is the packed form of
// "argument 0 is a literal name": the real minimum is -Min
type FunDef struct {
	Name   string
	Min    int
	Max    int
	Eval   EvalFunction
	ID     int
	Result string
	Syntax string
	Info   string
}

// Registry is the name -> descriptor table. Once frozen it is read-only
type Registry struct {
	byName map[string]*Descriptor
	frozen atomic.Bool
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Descriptor),
	}
}

// Register adds a native function and returns its descriptor.
// Registering a name twice or into a frozen registry panics
func (r *Registry) Register(name string, minParams, maxParams int, nameArg bool, fn EvalFunction, id int) *Descriptor {
	return r.add(&Descriptor{
		Name:      name,
		MinParams: minParams,
		MaxParams: maxParams,
		NameArg:   nameArg,
		Eval:      fn,
		ID:        id,
	})
}

// RegisterTable registers a table of functions, unpacking the negative minimum
func (r *Registry) RegisterTable(defs []FunDef) {
	for i := range defs {
		def := &defs[i]
		minParams, nameArg := def.Min, false
		if minParams < 0 {
			minParams, nameArg = -minParams, true
		}
		r.add(&Descriptor{
			Name:       def.Name,
			MinParams:  minParams,
			MaxParams:  def.Max,
			NameArg:    nameArg,
			Eval:       def.Eval,
			ID:         def.ID,
			ResultType: def.Result,
			Syntax:     def.Syntax,
			Info:       def.Info,
		})
	}
}

func (r *Registry) add(d *Descriptor) *Descriptor {
	common.Assert(!r.frozen.Load(), "registry is frozen, can't register '%s'", d.Name)
	common.Assert(d.Name != "", "empty function name")
	common.Assert(d.Eval != nil, "function '%s' has no implementation", d.Name)
	common.Assert(0 <= d.MinParams && d.MinParams <= d.MaxParams && d.MaxParams <= MaxParams,
		"wrong arity bounds [%d,%d] of '%s'", d.MinParams, d.MaxParams, d.Name)
	common.Assert(!d.NameArg || d.MinParams >= 1, "'%s' takes a name argument, it needs at least 1 parameter", d.Name)
	if _, found := r.byName[d.Name]; found {
		panic("repeating function name '" + d.Name + "'")
	}
	if d.Syntax == "" {
		d.Syntax = d.Name + "(...)"
	}
	r.byName[d.Name] = d
	return d
}

func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, found := r.byName[name]
	return d, found
}

func (r *Registry) Exists(name string) bool {
	_, found := r.byName[name]
	return found
}

func (r *Registry) Len() int {
	return len(r.byName)
}

// Freeze makes the registry read-only
func (r *Registry) Freeze() {
	r.frozen.Store(true)
}

func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Clone returns an unfrozen copy which can be extended with more functions
func (r *Registry) Clone() *Registry {
	ret := NewRegistry()
	for name, d := range r.byName {
		cp := *d
		ret.byName[name] = &cp
	}
	return ret
}

// Functions returns all descriptors sorted by name
func (r *Registry) Functions() []*Descriptor {
	ret := make([]*Descriptor, 0, len(r.byName))
	for _, d := range r.byName {
		ret = append(ret, d)
	}
	sort.Slice(ret, func(i, j int) bool {
		return strings.ToLower(ret[i].Name) < strings.ToLower(ret[j].Name) ||
			(strings.EqualFold(ret[i].Name, ret[j].Name) && ret[i].Name < ret[j].Name)
	})
	return ret
}

// WriteDoc writes the function reference: result type, call syntax and description
func (r *Registry) WriteDoc(w io.Writer) error {
	for _, d := range r.Functions() {
		result := d.ResultType
		if result == "" {
			result = "*"
		}
		if _, err := fmt.Fprintf(w, "%-8s %s\n", result, d.Syntax); err != nil {
			return err
		}
		if d.Info == "" {
			continue
		}
		for _, line := range strings.Split(d.Info, "\n") {
			if _, err := fmt.Fprintf(w, "         %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

var (
	libraryOnce sync.Once
	theLibrary  *Registry
)

// Library returns the frozen registry of all built-in functions.
// It is created at first use
func Library() *Registry {
	libraryOnce.Do(func() {
		lib := NewRegistry()
		registerCore(lib)
		registerIntrospection(lib)
		registerMath(lib)
		registerGeometry(lib)
		registerStrings(lib)
		registerArith(lib)
		lib.Freeze()
		theLibrary = lib
	})
	return theLibrary
}
