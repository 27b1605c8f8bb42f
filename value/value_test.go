package value

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOrder(t *testing.T) {
	require.True(t, KindUnset < KindInt)
	require.True(t, KindInt < KindFloat)
	require.True(t, KindFloat < KindVector)
	require.EqualValues(t, "vector", KindVector.String())
	require.False(t, KindString.IsNumeric())
}

func TestCoercion(t *testing.T) {
	t.Run("scalar to vector", func(t *testing.T) {
		v := NewInt(5)
		v.ToVector()
		require.True(t, v.IsVector())
		require.EqualValues(t, Vec{X: 5}, v.Vec())

		f := NewFloat(2.5)
		require.EqualValues(t, Vec{X: 2.5}, f.Vec())
	})
	t.Run("unset to vector", func(t *testing.T) {
		var v Value
		v.ToVector()
		require.EqualValues(t, Vec{}, v.Vec())
	})
	t.Run("vector to scalar", func(t *testing.T) {
		v := NewVector(1, 2, 3)
		require.EqualValues(t, 2, v.Axis(AxisY))
		v.ToScalar(AxisZ)
		require.True(t, v.IsFloat())
		require.EqualValues(t, 3, v.Float())
	})
	t.Run("scalar axis", func(t *testing.T) {
		v := NewInt(7)
		require.EqualValues(t, 7, v.Axis(AxisX))
		require.EqualValues(t, 0, v.Axis(AxisY))
	})
	t.Run("string is not numeric", func(t *testing.T) {
		v := NewString("12")
		require.EqualValues(t, 0, v.Int())
		require.EqualValues(t, 0, v.Float())
	})
	t.Run("float to int", func(t *testing.T) {
		require.EqualValues(t, -2, NewFloat(-2.9).Int())
		require.EqualValues(t, 0, NewFloat(math.NaN()).Int())
		require.EqualValues(t, int64(math.MaxInt64), NewFloat(1e300).Int())
	})
	t.Run("copies do not alias", func(t *testing.T) {
		a := NewVector(1, 2, 3)
		b := a
		b.ToScalar(AxisX)
		require.True(t, a.IsVector())
	})
}

func TestText(t *testing.T) {
	require.EqualValues(t, "12", NewInt(12).Str())
	require.EqualValues(t, "2.0", NewFloat(2).Str())
	require.EqualValues(t, "0.25", NewFloat(0.25).Str())
	require.EqualValues(t, "v(1.0,2.5,-3.0)", NewVector(1, 2.5, -3).Str())
	require.EqualValues(t, "", Unset.Str())
	require.EqualValues(t, "<unset>", Unset.String())
	require.EqualValues(t, `"a"`, NewString("a").String())
	require.EqualValues(t, "5:be2", NewIntMode(5, BigEndian(2)).String())
}

func TestBool(t *testing.T) {
	require.False(t, Unset.Bool())
	require.False(t, NewInt(0).Bool())
	require.True(t, NewFloat(0.1).Bool())
	require.False(t, NewVector(0, 0, 0).Bool())
	require.True(t, NewVector(0, 0, 1).Bool())
	require.True(t, NewString("x").Bool())
}

func TestIntMode(t *testing.T) {
	require.EqualValues(t, 8, IntNative.Size())
	require.EqualValues(t, 2, BigEndian(2).Size())
	require.True(t, BigEndian(2).IsBigEndian())
	require.EqualValues(t, 3, LittleEndian(3).Size())
	require.False(t, LittleEndian(3).IsBigEndian())
	require.EqualValues(t, 8, BigEndian(20).Size())
	require.EqualValues(t, 1, LittleEndian(0).Size())
	require.EqualValues(t, "le3", LittleEndian(3).String())

	v := NewFloat(3.7).WithMode(BigEndian(2))
	require.True(t, v.IsInt())
	require.EqualValues(t, 3, v.Int())
	require.EqualValues(t, BigEndian(2), v.Mode())
}

func TestBinary(t *testing.T) {
	require.EqualValues(t, []byte{0x12, 0x34}, NewIntMode(0x1234, BigEndian(2)).Bytes())
	require.EqualValues(t, []byte{0x34, 0x12, 0x00}, NewIntMode(0x1234, LittleEndian(3)).Bytes())
	require.EqualValues(t, 8, len(NewInt(1).Bytes()))
	require.EqualValues(t, 24, len(NewVector(1, 2, 3).Bytes()))
	require.EqualValues(t, []byte("abc"), NewString("abc").Bytes())
	require.EqualValues(t, 0, len(Unset.Bytes()))

	for _, mode := range []IntMode{IntNative, BigEndian(1), BigEndian(3), LittleEndian(2), LittleEndian(8)} {
		v := NewIntMode(-100, mode)
		back, err := ReadInt(bytes.NewReader(v.Bytes()), mode)
		require.NoError(t, err)
		require.True(t, v.Equal(back), mode.String())
	}
	_, err := ReadInt(bytes.NewReader([]byte{1}), BigEndian(2))
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	cases := []struct {
		text string
		want Value
		ok   bool
	}{
		{"12", NewInt(12), true},
		{" -7 ", NewInt(-7), true},
		{"010", NewInt(10), true},
		{"0x1f", NewInt(31), true},
		{"0b101", NewInt(5), true},
		{"0xffffffffffffffff", NewInt(-1), true},
		{"1.5", NewFloat(1.5), true},
		{"1e3", NewFloat(1000), true},
		{`"a,b"`, NewString("a,b"), true},
		{"v(1,2,3)", NewVector(1, 2, 3), true},
		{"1, 2", NewVector(1, 2, 0), true},
		{"v(0.5)", NewVector(0.5, 0, 0), true},
		{"1,2,3,4", Unset, false},
		{"abc", Unset, false},
		{"", Unset, false},
		{`"open`, Unset, false},
	}
	for _, c := range cases {
		got, ok := Parse(c.text)
		require.EqualValues(t, c.ok, ok, "text: %q", c.text)
		require.True(t, c.want.Equal(got), "text: %q got %s", c.text, got)
	}
}

func TestVec(t *testing.T) {
	a := Vec{1, 2, 3}
	b := Vec{4, 5, 6}
	require.EqualValues(t, Vec{5, 7, 9}, a.Add(b))
	require.EqualValues(t, Vec{3, 3, 3}, b.Sub(a))
	require.EqualValues(t, 32, a.Dot(b))
	require.EqualValues(t, Vec{-3, 6, -3}, a.Cross(b))
	require.InDelta(t, 1, Vec{3, 0, 4}.Unit().Len(), 1e-12)
	require.EqualValues(t, Vec{}, Vec{}.Unit())
	require.EqualValues(t, 5, Vec{3, 100, 4}.HLen())
	require.EqualValues(t, Splat(2), Vec{1, 1, 1}.Scale(2))
}
