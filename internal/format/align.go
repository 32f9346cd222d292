package format

// Rounding utilities shared by the allocator packages.

// CeilDiv returns n divided by d, rounded up.
//
// Example:
//
//	CeilDiv(0, 8) = 0
//	CeilDiv(1, 8) = 1
//	CeilDiv(8, 8) = 1
//	CeilDiv(9, 8) = 2
func CeilDiv(n, d int) int {
	return (n + d - 1) / d
}

// AlignUp returns n aligned up to the next multiple of align, which must be
// a power of two.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// IsPowerOfTwo reports whether n is a nonzero power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
