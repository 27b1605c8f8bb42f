package funlib

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/trackscript/easyfun/printf"
	"github.com/trackscript/easyfun/value"
	"golang.org/x/crypto/blake2b"
)

// ids of the substring family
const (
	subLeft = iota
	subRight
	subMid
	subExtract
)

// ids of the case family
const (
	caseUpper = iota
	caseLower
	caseTrim
)

const defaultHashSize = 32

func registerStrings(lib *Registry) {
	lib.RegisterTable([]FunDef{
		{"left", 2, 2, evalSubstr, subLeft, "string", "left(str,n)",
			"The first n bytes. A negative n removes -n bytes from the end."},
		{"right", 2, 2, evalSubstr, subRight, "string", "right(str,n)",
			"The last n bytes. A negative n removes -n bytes from the beginning."},
		{"mid", 2, 3, evalSubstr, subMid, "string", "mid(str,pos[,n])",
			"n bytes (default all) starting at pos. pos counts from 0, a negative pos from the end."},
		{"extract", 3, 3, evalSubstr, subExtract, "string", "extract(str,begin,end)",
			"The bytes from begin up to but not including end.\nNegative positions count from the end, positions are clamped to the string."},
		{"strLen", 1, 1, evalStrLen, 0, "int", "strLen(str)", "Length in bytes."},
		{"upper", 1, 1, evalCase, caseUpper, "string", "upper(str)", "Upper case."},
		{"lower", 1, 1, evalCase, caseLower, "string", "lower(str)", "Lower case."},
		{"trim", 1, 1, evalCase, caseTrim, "string", "trim(str)", "Remove leading and trailing white space."},
		{"chr", 1, MaxParams, evalChr, 0, "string", "chr(code...)", "String of the unicode characters."},
		{"ord", 1, 2, evalOrd, 0, "int", "ord(str[,index])", "The byte at index (default 0), unset if out of range."},
		{"print", 1, MaxParams, evalPrint, 0, "string", "print(format,arg...)",
			"Format the arguments like C's sprintf, extended for vectors:\n" +
				"%[N$][flags][width][.prec][v|V|n]conv with flags # 0 - space + > ' \"\n" +
				"and conversions d i u b o x X c e E f F g G a A h y s q %."},
		{"scan", 1, 1, evalScan, int(value.KindUnset), "*", "scan(str)",
			"Parse the string as int, float, vector or quoted string. Unset if not parsable."},
		{"scanInt", 1, 1, evalScan, int(value.KindInt), "int", "scanInt(str)", "Parse the string as integer."},
		{"scanFloat", 1, 1, evalScan, int(value.KindFloat), "float", "scanFloat(str)", "Parse the string as float."},
		{"scanVector", 1, 1, evalScan, int(value.KindVector), "vector", "scanVector(str)", "Parse the string as vector."},
		{"hash", 1, 2, evalHash, 0, "string", "hash(str[,size])",
			"Hex encoded blake2b hash of the string, size bytes (1 to 64, default 32)."},
	})
}

// clampPos resolves a negative position relative to the end and clamps to [0,n]
func clampPos(pos int64, n int) int {
	if pos < 0 {
		pos += int64(n)
	}
	switch {
	case pos < 0:
		return 0
	case pos > int64(n):
		return n
	}
	return int(pos)
}

func evalSubstr(par *CallParams) (value.Value, error) {
	s := par.Arg(0).Str()
	n := len(s)
	var begin, end int
	switch par.ID() {
	case subLeft:
		begin, end = 0, clampPos(par.Arg(1).Int(), n)
	case subRight:
		cnt := par.Arg(1).Int()
		if cnt < 0 {
			begin, end = clampPos(-cnt, n), n
		} else {
			begin, end = n-clampPos(cnt, n), n
		}
	case subMid:
		begin = clampPos(par.Arg(1).Int(), n)
		end = n
		if par.Arity() > 2 {
			cnt := par.Arg(2).Int()
			if cnt < 0 {
				cnt = 0
			}
			if cnt < int64(n-begin) {
				end = begin + int(cnt)
			}
		}
	case subExtract:
		begin = clampPos(par.Arg(1).Int(), n)
		end = clampPos(par.Arg(2).Int(), n)
	default:
		return value.Unset, fmt.Errorf("wrong substring id %d", par.ID())
	}
	if end < begin {
		end = begin
	}
	return value.NewString(s[begin:end]), nil
}

func evalStrLen(par *CallParams) (value.Value, error) {
	return value.NewInt(int64(len(par.Arg(0).Str()))), nil
}

func evalCase(par *CallParams) (value.Value, error) {
	s := par.Arg(0).Str()
	switch par.ID() {
	case caseUpper:
		s = strings.ToUpper(s)
	case caseLower:
		s = strings.ToLower(s)
	default:
		s = strings.TrimSpace(s)
	}
	return value.NewString(s), nil
}

func evalChr(par *CallParams) (value.Value, error) {
	var b strings.Builder
	for _, a := range par.Args() {
		code := a.Int()
		if code < 0 || code > math.MaxInt32 {
			return value.Unset, fmt.Errorf("invalid character code %d", code)
		}
		r := rune(code)
		if !utf8.ValidRune(r) {
			return value.Unset, fmt.Errorf("invalid character code %d", a.Int())
		}
		b.WriteRune(r)
	}
	return value.NewString(b.String()), nil
}

func evalOrd(par *CallParams) (value.Value, error) {
	s := par.Arg(0).Str()
	idx := par.ArgOr(1, value.NewInt(0)).Int()
	if idx < 0 {
		idx += int64(len(s))
	}
	if idx < 0 || idx >= int64(len(s)) {
		return value.Unset, nil
	}
	return value.NewInt(int64(s[idx])), nil
}

func evalPrint(par *CallParams) (value.Value, error) {
	ctx := par.Context()
	ret, warnings := printf.Format(ctx.FormatOptions(), par.Arg(0).Str(), par.Args()[1:])
	for _, w := range warnings {
		ctx.Warnf(par.Name(), "%s", w.Msg)
	}
	return value.NewString(ret), nil
}

func evalScan(par *CallParams) (value.Value, error) {
	a := *par.Arg(0)
	var ret value.Value
	if a.IsString() {
		var ok bool
		if ret, ok = value.Parse(a.Str()); !ok {
			return value.Unset, nil
		}
	} else {
		ret = a
	}
	switch value.Kind(par.ID()) {
	case value.KindInt:
		if ret.IsString() {
			return value.Unset, nil
		}
		ret.ToInt()
	case value.KindFloat:
		if ret.IsString() {
			return value.Unset, nil
		}
		ret.ToFloat()
	case value.KindVector:
		if ret.IsString() {
			return value.Unset, nil
		}
		ret.ToVector()
	}
	return ret, nil
}

func errWrongSize(size int) error {
	return fmt.Errorf("size must be 1 to 8, got %d", size)
}

func evalHash(par *CallParams) (value.Value, error) {
	size := int64(defaultHashSize)
	if par.Arity() > 1 {
		size = par.Arg(1).Int()
	}
	if size < 1 || size > blake2b.Size {
		return value.Unset, fmt.Errorf("hash size must be 1 to %d, got %d", blake2b.Size, size)
	}
	h, err := blake2b.New(int(size), nil)
	if err != nil {
		return value.Unset, err
	}
	h.Write([]byte(par.Arg(0).Str()))
	return value.NewString(hex.EncodeToString(h.Sum(nil))), nil
}
