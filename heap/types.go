package heap

import "github.com/heapkit/heapkit/phys"

// Ref is the opaque handle for a live allocation: the address of the first
// payload byte, immediately past the allocation header.
type Ref = phys.Addr

// Stats holds allocator counters, for instrumentation and tests.
type Stats struct {
	AllocCalls      int   // Total Alloc() calls, including failed ones
	FreeCalls       int   // Total Free() calls, including failed ones
	BytesRequested  int64 // Sum of requested sizes across successful allocations
	ChunksAllocated int64 // Chunks marked occupied, headers included
	ChunksFreed     int64 // Chunks marked free, headers included
	PageCommits     int   // Windows lazily backed with a physical page
	PageReleases    int   // Windows whose backing was returned to the provider
}
