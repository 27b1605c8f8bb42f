// Package printf implements the format language of the print() function:
// a superset of C's printf which knows about vectors and strings of the value model.
//
// Directive syntax: %[N$][flags][width][.prec][modifiers]conversion
//
//	flags:     # 0 - space + > ' "
//	width:     digits or *
//	precision: digits or *
//	modifiers: v V n (l L j z t are accepted and ignored)
//	conversion: d i u b o x X e E f F g G a A h y s c q %
package printf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/trackscript/easyfun/value"
)

const (
	DefaultMaxFieldWidth = 1000
	DefaultHumanPrec     = 3
)

type Options struct {
	// GroupSep separates groups of 3 decimal digits with the ' flag
	GroupSep string
	// RadixSep separates digit groups of b, o, x and X with the ' flag
	RadixSep string
	// LowerDigits and UpperDigits are the digit alphabets of b, o, x and X
	LowerDigits string
	UpperDigits string
	// MaxFieldWidth limits width and precision
	MaxFieldWidth int
	// HumanPrec is the default precision of %h
	HumanPrec int
	// Quiet suppresses all warnings
	Quiet bool
}

func DefaultOptions() Options {
	return Options{
		GroupSep:      ",",
		RadixSep:      "_",
		LowerDigits:   "0123456789abcdef",
		UpperDigits:   "0123456789ABCDEF",
		MaxFieldWidth: DefaultMaxFieldWidth,
		HumanPrec:     DefaultHumanPrec,
	}
}

// Warning is a non-fatal problem found while formatting
type Warning struct {
	// Arg is the 1-based argument index, 0 if the warning is not about one argument
	Arg int
	Msg string
}

func (w Warning) Error() string {
	return w.Msg
}

// cursor tracks the argument accounting of one call
type cursor struct {
	next       int
	highest    int
	positional bool
}

type printer struct {
	opts     *Options
	buf      strings.Builder
	args     []value.Value
	cur      cursor
	quiet    bool
	warnings []Warning
}

type convSpec struct {
	alt, zero, minus, space, plus, signFirst, group, quote bool
	width                                                  int
	prec                                                   int
	precSet                                                bool
	vecForm, forceVec, exact                               bool
	conv                                                   byte
}

// Format interprets the format string with the argument list
func Format(opts *Options, format string, args []value.Value) (string, []Warning) {
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	p := &printer{
		opts:  opts,
		args:  args,
		quiet: opts.Quiet,
	}
	p.run(format)
	if !p.cur.positional && p.cur.highest < len(args) {
		unused := len(args) - p.cur.highest
		p.warnf(p.cur.highest+1, "%d of %d arguments not used", unused, len(args))
	}
	if p.quiet {
		return p.buf.String(), nil
	}
	return p.buf.String(), p.warnings
}

func (p *printer) warnf(arg int, format string, a ...interface{}) {
	p.warnings = append(p.warnings, Warning{Arg: arg, Msg: fmt.Sprintf(format, a...)})
}

// take returns the argument at the cursor and advances it
func (p *printer) take() (value.Value, bool) {
	idx := p.cur.next
	p.cur.next++
	if idx < 0 || idx >= len(p.args) {
		p.warnf(idx+1, "argument index %d out of range, %d supplied", idx+1, len(p.args))
		return value.Unset, false
	}
	if idx+1 > p.cur.highest {
		p.cur.highest = idx + 1
	}
	return p.args[idx], true
}

func (p *printer) clampWidth(n int) int {
	if n > p.opts.MaxFieldWidth {
		return p.opts.MaxFieldWidth
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// number parses decimal digits at position i
func number(format string, i int) (int, int) {
	n := 0
	for ; i < len(format) && isDigit(format[i]); i++ {
		if n < 1<<20 {
			n = n*10 + int(format[i]-'0')
		}
	}
	return n, i
}

func (p *printer) run(format string) {
	for i := 0; i < len(format); {
		pct := strings.IndexByte(format[i:], '%')
		if pct < 0 {
			p.buf.WriteString(format[i:])
			return
		}
		p.buf.WriteString(format[i : i+pct])
		i += pct
		i = p.directive(format, i)
	}
}

// directive handles the directive starting with '%' at position start
// and returns the position after it
func (p *printer) directive(format string, start int) int {
	i := start + 1
	if i >= len(format) {
		p.buf.WriteByte('%')
		return i
	}
	if format[i] == '%' {
		p.buf.WriteByte('%')
		return i + 1
	}
	var s convSpec

	// positional selector
	if n, j := number(format, i); j > i && j < len(format) && format[j] == '$' {
		p.cur.next = n - 1
		p.cur.positional = true
		i = j + 1
	}

	// flags
flags:
	for ; i < len(format); i++ {
		switch format[i] {
		case '#':
			s.alt = true
		case '0':
			s.zero = true
		case '-':
			s.minus = true
		case ' ':
			s.space = true
		case '+':
			s.plus = true
		case '>':
			s.signFirst = true
		case '\'':
			s.group = true
		case '"':
			s.quote = true
		default:
			break flags
		}
	}

	// width
	if i < len(format) && format[i] == '*' {
		i++
		if arg, ok := p.take(); ok {
			w := arg.Int()
			if w < 0 {
				s.minus = true
				w = -w
			}
			s.width = p.clampWidth(int(minInt64(w, int64(p.opts.MaxFieldWidth))))
		}
	} else {
		var w int
		w, i = number(format, i)
		s.width = p.clampWidth(w)
	}

	// precision
	if i < len(format) && format[i] == '.' {
		i++
		if i < len(format) && format[i] == '*' {
			i++
			if arg, ok := p.take(); ok && arg.Int() >= 0 {
				s.prec = p.clampWidth(int(minInt64(arg.Int(), int64(p.opts.MaxFieldWidth))))
				s.precSet = true
			}
		} else {
			var n int
			n, i = number(format, i)
			s.prec = p.clampWidth(n)
			s.precSet = true
		}
	}

	// modifiers
modifiers:
	for ; i < len(format); i++ {
		switch format[i] {
		case 'v':
			s.vecForm = true
		case 'V':
			s.forceVec = true
		case 'n':
			s.exact = true
		case 'l', 'L', 'j', 'z', 't':
		default:
			break modifiers
		}
	}

	if i >= len(format) {
		p.buf.WriteString(format[start:])
		p.warnf(0, "incomplete format directive %q", format[start:])
		return i
	}
	s.conv = format[i]
	i++

	switch s.conv {
	case 'd', 'i', 'u', 'b', 'o', 'x', 'X', 'c':
		arg, ok := p.take()
		if !ok || (s.exact && !arg.IsInt()) {
			return i
		}
		if s.conv == 'c' {
			p.formatChar(arg, &s)
		} else {
			p.formatInt(arg, &s)
		}
	case 'e', 'E', 'f', 'F', 'g', 'G', 'a', 'A', 'h':
		arg, ok := p.take()
		if !ok || (s.exact && !arg.IsFloat() && !arg.IsVector()) {
			return i
		}
		p.formatFloatArg(arg, &s)
	case 'y':
		arg, ok := p.take()
		if !ok {
			return i
		}
		p.formatGeneric(arg, &s)
	case 's':
		arg, ok := p.take()
		if !ok {
			return i
		}
		p.formatString(arg.Str(), &s)
	case 'q':
		p.quiet = true
	default:
		p.buf.WriteString(format[start:i])
		p.warnf(0, "unknown format conversion %q", format[start:i])
	}
	return i
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// pad writes sign, prefix and body aligned into the field width
func (p *printer) pad(sign, prefix, body string, s *convSpec, zeroOK bool) {
	p.buf.WriteString(padded(sign, prefix, body, s, zeroOK))
}

func padded(sign, prefix, body string, s *convSpec, zeroOK bool) string {
	n := utf8.RuneCountInString(sign) + utf8.RuneCountInString(prefix) + utf8.RuneCountInString(body)
	if s.width <= n {
		return sign + prefix + body
	}
	fill := s.width - n
	switch {
	case s.minus:
		return sign + prefix + body + strings.Repeat(" ", fill)
	case s.zero && zeroOK:
		return sign + prefix + strings.Repeat("0", fill) + body
	case s.signFirst:
		return sign + prefix + strings.Repeat(" ", fill) + body
	}
	return strings.Repeat(" ", fill) + sign + prefix + body
}

func (s *convSpec) signOf(neg bool) string {
	switch {
	case neg:
		return "-"
	case s.plus:
		return "+"
	case s.space:
		return " "
	}
	return ""
}

// group inserts sep between groups of size digits, counted from the right
func group(digits string, size int, sep string) string {
	if sep == "" || size <= 0 || len(digits) <= size {
		return digits
	}
	var b strings.Builder
	first := len(digits) % size
	if first == 0 {
		first = size
	}
	b.WriteString(digits[:first])
	for i := first; i < len(digits); i += size {
		b.WriteString(sep)
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}
