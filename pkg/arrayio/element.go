package arrayio

import (
	"encoding/binary"
	"unsafe"
)

// Element is the set of types an array file can hold.
type Element interface {
	~uint8 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// Width returns the on-disk size of one T in bytes.
func Width[T Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func putElement[T Element](b []byte, v T, width int) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}

func getElement[T Element](b []byte, width int) T {
	switch width {
	case 1:
		return T(b[0])
	case 4:
		return T(binary.LittleEndian.Uint32(b))
	default:
		return T(binary.LittleEndian.Uint64(b))
	}
}
