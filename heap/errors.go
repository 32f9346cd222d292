package heap

import "errors"

var (
	// ErrBadRequest indicates a request with a non-positive size or length.
	ErrBadRequest = errors.New("heap: request must have a positive size")

	// ErrNoSpace indicates that no contiguous run of free chunks is long
	// enough for the request.
	ErrNoSpace = errors.New("heap: no contiguous run of free chunks")

	// ErrBadRef indicates a ref that does not point into the heap's
	// address space.
	ErrBadRef = errors.New("heap: ref does not point into the heap")

	// ErrBadChecksum indicates an allocation header that failed its
	// checksum: corruption, a double free, or a ref never returned by
	// Alloc.
	ErrBadChecksum = errors.New("heap: allocation header failed its checksum")

	// ErrNotAllocated indicates a free of a chunk whose bitmap bit is
	// already clear - a double free detected at the bit level.
	ErrNotAllocated = errors.New("heap: chunk already free")
)
