package value

import "strconv"

// IntMode tells a serializer how to write an integer:
// 0 is native, +N is big endian with N bytes, -N is little endian with N bytes
type IntMode int8

const (
	IntNative   IntMode = 0
	MaxIntBytes         = 8
)

func BigEndian(size int) IntMode {
	return IntMode(clampSize(size))
}

func LittleEndian(size int) IntMode {
	return IntMode(-clampSize(size))
}

func clampSize(size int) int {
	if size < 1 {
		return 1
	}
	if size > MaxIntBytes {
		return MaxIntBytes
	}
	return size
}

func (m IntMode) IsNative() bool {
	return m == IntNative
}

func (m IntMode) IsBigEndian() bool {
	return m > 0
}

// Size in bytes. Native integers take 8 bytes
func (m IntMode) Size() int {
	switch {
	case m > 0:
		return int(m)
	case m < 0:
		return int(-m)
	}
	return MaxIntBytes
}

func (m IntMode) String() string {
	switch {
	case m > 0:
		return "be" + strconv.Itoa(m.Size())
	case m < 0:
		return "le" + strconv.Itoa(m.Size())
	}
	return "native"
}
