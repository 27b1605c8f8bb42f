package value

import (
	"strconv"
	"strings"
)

// Parse recognizes the literal forms of all kinds:
// integers (decimal, 0x, 0b, 0o), floats, "quoted strings",
// vectors as v(x,y,z) or x,y,z with 1 to 3 components
func Parse(text string) (Value, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Unset, false
	}
	if s[0] == '"' {
		str, err := strconv.Unquote(s)
		if err != nil {
			return Unset, false
		}
		return NewString(str), true
	}
	if strings.HasPrefix(s, "v(") && strings.HasSuffix(s, ")") {
		return parseVector(s[2 : len(s)-1])
	}
	if strings.Contains(s, ",") {
		return parseVector(s)
	}
	if i, ok := ParseInt(s); ok {
		return NewInt(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NewFloat(f), true
	}
	return Unset, false
}

// ParseInt accepts decimal numbers and the 0x, 0b, 0o prefixed forms.
// A leading zero does not mean octal
func ParseInt(s string) (int64, bool) {
	digits := strings.TrimLeft(s, "+-")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			base = 0
		}
	}
	i, err := strconv.ParseInt(s, base, 64)
	if err == nil {
		return i, true
	}
	if base == 0 {
		// hexadecimal constants like 0xffffffffffffffff are accepted bitwise
		u, err := strconv.ParseUint(digits, 0, 64)
		if err == nil && len(digits) == len(s) {
			return int64(u), true
		}
	}
	return 0, false
}

func parseVector(s string) (Value, bool) {
	parts := strings.Split(s, ",")
	if len(parts) > 3 {
		return Unset, false
	}
	var v Vec
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return Unset, false
		}
		var f float64
		if n, ok := ParseInt(p); ok {
			f = float64(n)
		} else {
			var err error
			if f, err = strconv.ParseFloat(p, 64); err != nil {
				return Unset, false
			}
		}
		v.Set(Axis(i), f)
	}
	return NewVec(v), true
}
