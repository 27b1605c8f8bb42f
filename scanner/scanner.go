package scanner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/trackscript/easyfun/funlib"
	"github.com/trackscript/easyfun/value"
	"go.uber.org/zap"
)

// Scanner is a line oriented host of the function engine. Every line is a directive,
// a comment or an expression whose value becomes the last result.
//
//	@def NAME = EXPR         define a variable in the current scope
//	@gdef NAME = EXPR        define a global variable
//	@function NAME ... @end  define a macro callable as NAME(args)
//	@macro NAME ... @end     define a plain macro, run with @call
//	@call NAME(args)         run a macro of either kind
//	@echo EXPR               write the value to the output
//	@if EXPR, @elif EXPR, @else, @endif
//	# comment
type Scanner struct {
	ctx *funlib.Context
	out io.Writer
	log *zap.SugaredLogger
	top *frame
}

// frame is the state of one text being scanned: a file, a macro body or the interactive input
type frame struct {
	file  string
	line  int
	block *block
	conds []*cond
}

// block collects the body of a macro definition up to the matching @end
type block struct {
	macro   *funlib.Macro
	body    []string
	nesting int
	discard bool
}

type cond struct {
	outer    bool
	active   bool
	taken    bool
	seenElse bool
}

// New makes the scanner the macro runner of the context
func New(ctx *funlib.Context, out io.Writer) *Scanner {
	ret := &Scanner{
		ctx: ctx,
		out: out,
		log: ctx.Log().Named("scanner"),
		top: &frame{file: "<input>"},
	}
	ctx.SetScanner(ret)
	return ret
}

func (s *Scanner) Context() *funlib.Context {
	return s.ctx
}

// Run scans a whole text. Errors on single lines are reported to the diagnostics and
// scanning goes on, an unterminated block or condition is returned as error
func (s *Scanner) Run(file, text string) error {
	f := &frame{file: file}
	for _, line := range splitLines(text) {
		s.scanLine(f, line)
	}
	return f.finish()
}

func (s *Scanner) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "can't read script")
	}
	return s.Run(path, string(data))
}

// ScanLine scans one line of the interactive input
func (s *Scanner) ScanLine(line string) {
	s.scanLine(s.top, line)
}

// Pending tells if the interactive input is inside a macro definition or a condition
func (s *Scanner) Pending() bool {
	return s.top.block != nil || len(s.top.conds) > 0
}

// Eval parses and evaluates one expression
func (s *Scanner) Eval(text string) (value.Value, error) {
	e, err := parseExpr(text)
	if err != nil {
		return value.Unset, err
	}
	return e.eval(s.ctx), nil
}

// ScanMacro runs the body of the macro. It implements funlib.Scanner
func (s *Scanner) ScanMacro(ctx *funlib.Context, m *funlib.Macro) error {
	if ctx != s.ctx {
		return fmt.Errorf("macro '%s' called from a foreign context", m.Name)
	}
	file, line := ctx.File, ctx.Line
	defer ctx.SetPos(file, line)

	s.log.Debugf("run macro '%s' at depth %d", m.Name, ctx.Depth())
	f := &frame{file: m.File, line: m.Line}
	for _, l := range splitLines(m.Body) {
		s.scanLine(f, l)
	}
	return f.finish()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n"), "\n")
}

func (f *frame) active() bool {
	return len(f.conds) == 0 || f.conds[len(f.conds)-1].active
}

func (f *frame) finish() error {
	if f.block != nil {
		return errors.Wrapf(fmt.Errorf("'@end' expected for '%s'", f.block.macro.Name),
			"%s:%d", f.file, f.block.macro.Line)
	}
	if len(f.conds) > 0 {
		return errors.Wrapf(fmt.Errorf("'@endif' expected"), "%s:%d", f.file, f.line)
	}
	return nil
}

// directive splits "@name rest" into its parts
func directive(line string) (string, string, bool) {
	if !strings.HasPrefix(line, "@") {
		return "", "", false
	}
	name, rest := line[1:], ""
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name, rest = name[:i], strings.TrimSpace(name[i:])
	}
	return name, rest, true
}

func (s *Scanner) scanLine(f *frame, raw string) {
	f.line++
	s.ctx.SetPos(f.file, f.line)
	line := strings.TrimSpace(raw)

	if f.block != nil {
		s.collect(f, raw, line)
		return
	}
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	name, rest, isDirective := directive(line)
	if isDirective {
		switch name {
		case "if", "elif", "else", "endif":
			if err := s.condition(f, name, rest); err != nil {
				s.ctx.Errorf("@"+name, "%v", err)
			}
			return
		case "function", "macro":
			s.openBlock(f, name == "function", rest)
			return
		}
	}
	if !f.active() {
		return
	}
	var err error
	if isDirective {
		err = s.directive(name, rest)
	} else {
		var v value.Value
		if v, err = s.Eval(line); err == nil {
			s.ctx.SetResult(v)
		}
	}
	if err != nil {
		s.ctx.Errorf("", "%v", err)
	}
}

func (s *Scanner) directive(name, rest string) error {
	switch name {
	case "def", "gdef":
		varName, text, found := strings.Cut(rest, "=")
		varName = strings.TrimSpace(varName)
		if !found || !isIdentifier(varName) {
			return fmt.Errorf("'@%s NAME = EXPR' expected", name)
		}
		v, err := s.Eval(text)
		if err != nil {
			return err
		}
		if name == "gdef" {
			s.ctx.DefineGlobal(varName, v)
		} else {
			s.ctx.Define(varName, v)
		}
	case "echo":
		v, err := s.Eval(rest)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.out, v.Str())
		return err
	case "call":
		return s.call(rest)
	case "end":
		return fmt.Errorf("'@end' without macro")
	default:
		return fmt.Errorf("unknown directive '@%s'", name)
	}
	return nil
}

// call runs a macro of either kind and keeps its result
func (s *Scanner) call(text string) error {
	e, err := parseExpr(text)
	if err != nil {
		return err
	}
	if e.kind == nodeLiteral {
		return fmt.Errorf("macro name expected: '%s'", text)
	}
	m := s.ctx.FindMacro(e.sym)
	if m == nil {
		return fmt.Errorf("macro '%s' not defined", e.sym)
	}
	args := make([]value.Value, len(e.params))
	for i, p := range e.params {
		args[i] = p.eval(s.ctx)
	}
	ret, err := s.ctx.InvokeMacro(m, args)
	if err != nil {
		s.ctx.Warnf(m.Name, "%v", err)
	}
	s.ctx.SetResult(ret)
	return nil
}

func (s *Scanner) openBlock(f *frame, isFunction bool, name string) {
	m := &funlib.Macro{
		Name:       name,
		File:       f.file,
		Line:       f.line,
		IsFunction: isFunction,
	}
	f.block = &block{macro: m, discard: !f.active()}
	if !isIdentifier(name) && !f.block.discard {
		s.ctx.Errorf("", "wrong macro name '%s'", name)
		f.block.discard = true
	}
}

// collect adds a line to the open macro body, nested definitions included
func (s *Scanner) collect(f *frame, raw, line string) {
	b := f.block
	if name, _, ok := directive(line); ok {
		switch name {
		case "function", "macro":
			b.nesting++
		case "end":
			if b.nesting == 0 {
				f.block = nil
				if !b.discard {
					b.macro.Body = strings.Join(b.body, "\n")
					s.ctx.DefineMacro(b.macro)
					s.log.Debugf("macro '%s' defined at %s:%d", b.macro.Name, b.macro.File, b.macro.Line)
				}
				return
			}
			b.nesting--
		}
	}
	b.body = append(b.body, raw)
}

func (s *Scanner) condition(f *frame, name, rest string) error {
	var top *cond
	if len(f.conds) > 0 {
		top = f.conds[len(f.conds)-1]
	} else if name != "if" {
		return fmt.Errorf("'@if' expected before '@%s'", name)
	}
	switch name {
	case "if":
		c := &cond{outer: f.active()}
		if c.outer {
			c.active = s.test(rest)
			c.taken = c.active
		}
		f.conds = append(f.conds, c)
	case "elif":
		if top.seenElse {
			return fmt.Errorf("'@elif' after '@else'")
		}
		top.active = false
		if top.outer && !top.taken {
			top.active = s.test(rest)
			top.taken = top.active
		}
	case "else":
		if top.seenElse {
			return fmt.Errorf("second '@else'")
		}
		top.seenElse = true
		top.active = top.outer && !top.taken
		top.taken = true
	case "endif":
		f.conds = f.conds[:len(f.conds)-1]
	}
	return nil
}

// test evaluates a condition, a wrong expression counts as false
func (s *Scanner) test(text string) bool {
	v, err := s.Eval(text)
	if err != nil {
		s.ctx.Errorf("@if", "%v", err)
		return false
	}
	return v.Bool()
}
