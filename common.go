package easyfun

import (
	"fmt"
	"io"
)

// AppendIntegerN appends the lowest 'size' bytes of val. Size must be 1..8
func AppendIntegerN(buf []byte, val uint64, size int, bigEndian bool) []byte {
	if size < 1 || size > 8 {
		panic(fmt.Sprintf("AppendIntegerN: wrong size %d", size))
	}
	if bigEndian {
		for i := size - 1; i >= 0; i-- {
			buf = append(buf, byte(val>>(8*uint(i))))
		}
		return buf
	}
	for i := 0; i < size; i++ {
		buf = append(buf, byte(val>>(8*uint(i))))
	}
	return buf
}

// ReadIntegerN reads 'size' bytes and sign-extends the result
func ReadIntegerN(r io.Reader, size int, bigEndian bool) (int64, error) {
	if size < 1 || size > 8 {
		return 0, fmt.Errorf("ReadIntegerN: wrong size %d", size)
	}
	var tmp [8]byte
	if _, err := io.ReadFull(r, tmp[:size]); err != nil {
		return 0, err
	}
	var u uint64
	for i := 0; i < size; i++ {
		var b byte
		if bigEndian {
			b = tmp[i]
		} else {
			b = tmp[size-1-i]
		}
		u = u<<8 | uint64(b)
	}
	shift := uint(64 - 8*size)
	return int64(u<<shift) >> shift, nil
}
