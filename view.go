package mmfile

import "unsafe"

// sizeOf returns sizeof(T) in bytes.
func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// typedView reinterprets a mapped byte region as a slice of whole T
// elements. A trailing partial element is excluded from the slice but
// stays reachable through the raw bytes.
func typedView[T any](data []byte) []T {
	n := len(data) / sizeOf[T]()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}
