// Package heap implements a chunk-granular heap allocator over lazily
// committed physical pages.
//
// # Overview
//
// A Heap manages a flat chunk address space derived from the total memory
// reported by a phys.Provider. Occupancy is tracked with one bit per chunk;
// physical pages are committed window by window, only when an allocation
// actually lands inside a window, and released again as soon as every chunk
// in a window is free. Every allocation carries a small header with an
// additive checksum, which Free verifies before trusting anything else.
//
// # Model
//
//   - Chunk: the allocation granularity, one machine word (8 bytes).
//   - Window: a page-sized span of the chunk address space (512 chunks for
//     the default geometry). The unit of physical commit and release.
//   - Run: a contiguous range of free chunks found by the first-fit scan.
//   - Header: 16 bytes immediately preceding every returned Ref, recording
//     the run's start chunk, its payload length in chunks, and a checksum
//     chosen so all header bytes sum to zero modulo 256.
//
// # Allocation strategy
//
// Alloc performs a plain first-fit, left-to-right scan over the bitmap with
// one shortcut: when the scan hits an occupied chunk whose whole bitmap byte
// is 0xFF, it skips past the byte. There is no free list, no size classes,
// and no coalescing bookkeeping - adjacent free ranges merge implicitly
// because nothing marks them apart. This keeps placement fully deterministic:
// the same request sequence always produces the same refs.
//
// # Usage Example
//
//	prov, err := phys.NewMem(64<<20, 4096)
//	if err != nil {
//	    return err
//	}
//	h, err := heap.New(prov)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := h.Alloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, release the block.
//	err = h.Free(ref)
//
// # Error handling
//
// Core operations return sentinel errors (ErrNoSpace, ErrBadChecksum,
// ErrNotAllocated, ...). The MustAlloc and MustFree wrappers panic instead,
// matching the behavior expected at a kernel panic boundary where exhaustion
// and corruption are unrecoverable. A failed operation does not roll back
// partial bookkeeping; callers treating errors as recoverable should confine
// that to ErrNoSpace and ErrBadRequest, which are detected before any state
// changes.
//
// # Thread safety
//
// A Heap is not thread-safe and none of its operations block or suspend.
// Callers must serialize all access externally.
package heap
