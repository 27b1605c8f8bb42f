package printf

import (
	"math"
	"strconv"
	"strings"

	"github.com/trackscript/easyfun/value"
)

func (p *printer) formatInt(arg value.Value, s *convSpec) {
	n := arg.Int()
	var u uint64
	var neg bool
	switch s.conv {
	case 'd', 'i':
		u = uint64(n)
		if n < 0 {
			neg = true
			u = -u
		}
	default:
		u = uint64(n)
	}

	var digits, prefix string
	switch s.conv {
	case 'd', 'i', 'u':
		digits = strconv.FormatUint(u, 10)
	case 'b':
		digits = p.radix(u, 2, p.opts.LowerDigits)
		if s.alt && u != 0 {
			prefix = "0b"
		}
	case 'o':
		digits = p.radix(u, 8, p.opts.LowerDigits)
	case 'x':
		digits = p.radix(u, 16, p.opts.LowerDigits)
		if s.alt && u != 0 {
			prefix = "0x"
		}
	case 'X':
		digits = p.radix(u, 16, p.opts.UpperDigits)
		if s.alt && u != 0 {
			prefix = "0X"
		}
	}

	if s.precSet {
		if s.prec == 0 && u == 0 {
			digits = ""
		} else if len(digits) < s.prec {
			digits = strings.Repeat("0", s.prec-len(digits)) + digits
		}
	}
	if s.conv == 'o' && s.alt && !strings.HasPrefix(digits, "0") {
		digits = "0" + digits
	}
	if s.group {
		switch s.conv {
		case 'd', 'i', 'u':
			digits = group(digits, 3, p.opts.GroupSep)
		case 'o':
			digits = group(digits, 3, p.opts.RadixSep)
		default:
			digits = group(digits, 4, p.opts.RadixSep)
		}
	}
	var sign string
	if s.conv == 'd' || s.conv == 'i' {
		sign = s.signOf(neg)
	}
	p.pad(sign, prefix, digits, s, !s.precSet)
}

// radix converts with the digit alphabet, falling back to strconv for short alphabets
func (p *printer) radix(u uint64, base uint64, alphabet string) string {
	if uint64(len(alphabet)) < base {
		return strconv.FormatUint(u, int(base))
	}
	if u == 0 {
		return alphabet[:1]
	}
	var tmp [64]byte
	i := len(tmp)
	for u > 0 {
		i--
		tmp[i] = alphabet[u%base]
		u /= base
	}
	return string(tmp[i:])
}

func (p *printer) formatChar(arg value.Value, s *convSpec) {
	var body string
	if arg.IsString() {
		body = arg.Str()
	} else {
		body = string(rune(arg.Int()))
	}
	if s.quote {
		body = Quote(body)
	}
	p.pad("", "", body, s, false)
}

// formatFloatArg formats a scalar or, axis by axis, a vector
func (p *printer) formatFloatArg(arg value.Value, s *convSpec) {
	if arg.IsVector() || s.forceVec {
		p.buf.WriteString(p.vectorText(arg.Vec(), s, s.vecForm))
		return
	}
	p.buf.WriteString(p.floatText(arg.Float(), s))
}

func (p *printer) vectorText(v value.Vec, s *convSpec, paren bool) string {
	var b strings.Builder
	if paren {
		b.WriteString("v(")
	}
	for a := value.AxisX; a <= value.AxisZ; a++ {
		if a > value.AxisX {
			b.WriteByte(',')
		}
		b.WriteString(p.floatText(v.At(a), s))
	}
	if paren {
		b.WriteByte(')')
	}
	return b.String()
}

// floatText formats one float including sign and padding
func (p *printer) floatText(f float64, s *convSpec) string {
	neg := math.Signbit(f) && !math.IsNaN(f)
	a := math.Abs(f)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		body := "inf"
		if math.IsNaN(f) {
			body = "nan"
		}
		if isUpperConv(s.conv) {
			body = strings.ToUpper(body)
		}
		return padded(s.signOf(neg), "", body, s, false)
	}

	prec := 6
	if s.precSet {
		prec = s.prec
	}
	var body string
	switch s.conv {
	case 'e', 'E':
		body = strconv.FormatFloat(a, 'e', prec, 64)
	case 'f', 'F':
		body = strconv.FormatFloat(a, 'f', prec, 64)
	case 'g', 'G':
		if prec == 0 {
			prec = 1
		}
		body = strconv.FormatFloat(a, 'g', prec, 64)
	case 'a', 'A':
		if !s.precSet {
			prec = -1
		}
		body = strconv.FormatFloat(a, 'x', prec, 64)
	default:
		if !s.precSet {
			prec = p.opts.HumanPrec
		}
		body = Human(a, prec)
	}
	if isUpperConv(s.conv) {
		body = strings.ToUpper(body)
	}
	if s.alt && prec == 0 && !strings.ContainsAny(body, ".eEpP") {
		body += "."
	}
	if s.group {
		body = groupFloat(body, p.opts.GroupSep)
	}
	return padded(s.signOf(neg), "", body, s, true)
}

func isUpperConv(c byte) bool {
	return c == 'E' || c == 'F' || c == 'G' || c == 'A'
}

// groupFloat groups the integer part of a fixed point number
func groupFloat(body, sep string) string {
	end := strings.IndexAny(body, ".eEpPx")
	if end < 0 {
		end = len(body)
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		return body
	}
	return group(body[:end], 3, sep) + body[end:]
}

// Human formats a non negative float compactly: fixed point with at most prec
// decimals for "normal" magnitudes, exponential otherwise. Trailing zeros are removed
func Human(a float64, prec int) string {
	if a == 0 {
		return "0"
	}
	if prec < 0 {
		prec = DefaultHumanPrec
	}
	abs := math.Abs(a)
	if abs < 1e9 && abs >= math.Pow(10, -float64(prec)) {
		return trimZeros(strconv.FormatFloat(a, 'f', prec, 64))
	}
	e := strconv.FormatFloat(a, 'e', prec, 64)
	mant, exp, _ := strings.Cut(e, "e")
	return trimZeros(mant) + "e" + exp
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatGeneric is %y: ints as decimal, floats and vectors in human form,
// strings quoted
func (p *printer) formatGeneric(arg value.Value, s *convSpec) {
	switch arg.Kind() {
	case value.KindInt:
		s.conv = 'd'
		p.formatInt(arg, s)
	case value.KindFloat:
		s.conv = 'h'
		p.buf.WriteString(p.floatText(arg.Float(), s))
	case value.KindVector:
		s.conv = 'h'
		p.buf.WriteString(p.vectorText(arg.Vec(), s, true))
	case value.KindString:
		s.quote = true
		p.formatString(arg.Str(), s)
	}
}

func (p *printer) formatString(str string, s *convSpec) {
	if s.precSet {
		str = truncateRunes(str, s.prec)
	}
	if s.quote {
		str = Quote(str)
	}
	p.pad("", "", str, s, false)
}

func truncateRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// Quote encloses the string in double quotes. Quotes, backslashes and control
// characters are escaped so that the result reads back with strconv.Unquote
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c == 0x7f {
				b.WriteString(`\x`)
				b.WriteByte("0123456789abcdef"[c>>4])
				b.WriteByte("0123456789abcdef"[c&15])
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
