package scanner

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/trackscript/easyfun/funlib"
	"github.com/trackscript/easyfun/value"
)

type nodeKind byte

const (
	nodeLiteral nodeKind = iota
	nodeVariable
	nodeCall
)

// expr is a parsed call expression: a literal, a variable or a call with argument expressions
type expr struct {
	kind    nodeKind
	sym     string
	literal value.Value
	params  []*expr
}

// stripSpaces removes white space outside of quoted strings
func stripSpaces(s string) string {
	var buf strings.Builder
	inQuote, escaped := false, false
	for _, c := range []byte(s) {
		switch {
		case escaped:
			escaped = false
		case inQuote && c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case !inQuote && (c == ' ' || c == '\t' || c == '\r' || c == '\n'):
			continue
		}
		buf.WriteByte(c)
	}
	return buf.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range []byte(s) {
		switch {
		case c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func parseExpr(s string) (*expr, error) {
	return parseStripped(stripSpaces(s))
}

func parseStripped(s string) (*expr, error) {
	if s == "" {
		return nil, fmt.Errorf("empty expression")
	}
	if s[0] == '"' {
		v, ok := value.Parse(s)
		if !ok {
			return nil, fmt.Errorf("wrong string literal: '%s'", s)
		}
		return &expr{kind: nodeLiteral, literal: v}, nil
	}
	if isIdentifier(s) {
		return &expr{kind: nodeVariable, sym: s}, nil
	}
	name, rest, foundOpen := strings.Cut(s, "(")
	if foundOpen && isIdentifier(name) {
		spl, err := splitArgs(rest)
		if err != nil {
			return nil, err
		}
		ret := &expr{
			kind:   nodeCall,
			sym:    name,
			params: make([]*expr, 0, len(spl)),
		}
		for _, call := range spl {
			e, err := parseStripped(call)
			if err != nil {
				return nil, err
			}
			ret.params = append(ret.params, e)
		}
		return ret, nil
	}
	if v, ok := value.Parse(s); ok {
		return &expr{kind: nodeLiteral, literal: v}, nil
	}
	if strings.ContainsAny(s, "()") {
		return nil, fmt.Errorf("unexpected parenthesis: '%s'", s)
	}
	return nil, fmt.Errorf("can't parse '%s'", s)
}

// splitArgs expects a ','-delimited list of expressions which ends with ')'.
// Delimiters inside quoted strings do not count
func splitArgs(argsStr string) ([]string, error) {
	ret := make([]string, 0)
	var buf bytes.Buffer
	level := 0
	inQuote, escaped, comma := false, false, false
	for _, c := range []byte(argsStr) {
		if level < 0 {
			return nil, fmt.Errorf("unbalanced parenthesis: '%s'", argsStr)
		}
		if inQuote {
			buf.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
			buf.WriteByte(c)
		case ',':
			if level == 0 {
				ret = append(ret, buf.String())
				buf.Reset()
				comma = true
			} else {
				buf.WriteByte(c)
			}
		case '(':
			buf.WriteByte(c)
			level++
		case ')':
			level--
			if level >= 0 {
				buf.WriteByte(c)
			}
		default:
			buf.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unclosed '\"': '%s'", argsStr)
	}
	if level != -1 {
		return nil, fmt.Errorf("unclosed '(': '%s'", argsStr)
	}
	if buf.Len() > 0 {
		ret = append(ret, buf.String())
	} else if comma {
		return nil, fmt.Errorf("empty argument: '%s'", argsStr)
	}
	return ret, nil
}

// eval computes the expression in the context. Undefined variables are reported and
// yield Unset. A function taking a name gets a bare variable argument as its name
func (e *expr) eval(ctx *funlib.Context) value.Value {
	switch e.kind {
	case nodeLiteral:
		return e.literal
	case nodeVariable:
		if v, found := ctx.Lookup(e.sym); found {
			return v
		}
		ctx.Warnf("", "variable '%s' not defined", e.sym)
		return value.Unset
	}
	d := ctx.Resolve(e.sym)
	args := make([]value.Value, len(e.params))
	for i, p := range e.params {
		if i == 0 && d.NameArg && p.kind == nodeVariable {
			args[i] = value.NewString(p.sym)
			continue
		}
		args[i] = p.eval(ctx)
	}
	return ctx.Call(d, args)
}

func (e *expr) String() string {
	switch e.kind {
	case nodeLiteral:
		if e.literal.IsString() {
			return fmt.Sprintf("%q", e.literal.Str())
		}
		return e.literal.String()
	case nodeVariable:
		return e.sym
	}
	params := make([]string, len(e.params))
	for i, p := range e.params {
		params[i] = p.String()
	}
	return e.sym + "(" + strings.Join(params, ",") + ")"
}
