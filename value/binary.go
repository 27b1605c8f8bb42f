package value

import (
	"io"
	"math"

	"github.com/trackscript/easyfun"
)

// AppendBinary appends the serialized form of the value.
// Ints follow their encoding mode, native ints and floats are 8 bytes little endian,
// vectors are 3 floats, strings are the raw bytes and unset writes nothing
func (v Value) AppendBinary(buf []byte) []byte {
	switch v.kind {
	case KindInt:
		if v.mode.IsNative() {
			return easyfun.AppendIntegerN(buf, uint64(v.i), MaxIntBytes, false)
		}
		return easyfun.AppendIntegerN(buf, uint64(v.i), v.mode.Size(), v.mode.IsBigEndian())
	case KindFloat:
		return easyfun.AppendIntegerN(buf, math.Float64bits(v.vec.X), 8, false)
	case KindVector:
		buf = easyfun.AppendIntegerN(buf, math.Float64bits(v.vec.X), 8, false)
		buf = easyfun.AppendIntegerN(buf, math.Float64bits(v.vec.Y), 8, false)
		return easyfun.AppendIntegerN(buf, math.Float64bits(v.vec.Z), 8, false)
	case KindString:
		return append(buf, v.str...)
	}
	return buf
}

func (v Value) Bytes() []byte {
	return v.AppendBinary(nil)
}

// ReadInt reads an integer written by AppendBinary in the given mode
func ReadInt(r io.Reader, mode IntMode) (Value, error) {
	i, err := easyfun.ReadIntegerN(r, mode.Size(), mode.IsBigEndian())
	if err != nil {
		return Unset, err
	}
	return NewIntMode(i, mode), nil
}
