package funlib

import (
	"github.com/trackscript/easyfun/value"
)

// CallParams is what a native function sees of its call
type CallParams struct {
	ctx  *Context
	desc *Descriptor
	args []value.Value
}

func NewCallParams(ctx *Context, desc *Descriptor, args []value.Value) *CallParams {
	return &CallParams{
		ctx:  ctx,
		desc: desc,
		args: args,
	}
}

func (par *CallParams) Arity() int {
	return len(par.args)
}

// Arg returns the slot of argument n. Functions may convert the slot in place
func (par *CallParams) Arg(n int) *value.Value {
	return &par.args[n]
}

// ArgOr returns argument n or the default if the call has fewer arguments
func (par *CallParams) ArgOr(n int, def value.Value) value.Value {
	if n < len(par.args) {
		return par.args[n]
	}
	return def
}

func (par *CallParams) Args() []value.Value {
	return par.args
}

func (par *CallParams) Context() *Context {
	return par.ctx
}

// ID is the discriminator of the called descriptor
func (par *CallParams) ID() int {
	return par.desc.ID
}

func (par *CallParams) Name() string {
	return par.desc.Name
}
