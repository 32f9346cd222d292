package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/internal/format"
	"github.com/heapkit/heapkit/phys"
)

// newTestHeap builds a heap over a slice-backed provider with the given
// number of pages of addressable memory. With the default geometry the
// bootstrap phase consumes one page (the bitmap and window table both fit),
// and page 0 stays reserved, so pages-2 windows can be backed concurrently.
func newTestHeap(t testing.TB, pages int) (*Heap, *phys.MemProvider) {
	t.Helper()

	prov, err := phys.NewMem(int64(pages)*format.PageSize, format.PageSize)
	require.NoError(t, err)

	h, err := New(prov)
	require.NoError(t, err)
	return h, prov
}

// liveRange returns the full chunk range [start, end) covered by the
// allocation at ref, header footprint included.
func liveRange(t testing.TB, h *Heap, ref Ref) (int, int) {
	t.Helper()

	hdr := h.prov.Bytes()[int(ref)-format.HeaderSize : ref]
	require.NoError(t, verifyHeader(hdr))
	start := int(headerStartChunk(hdr))
	return start, start + int(headerChunkCount(hdr)) + h.headerChunks
}

// occupiedChunks counts the set bits in the heap's bitmap.
func occupiedChunks(h *Heap) int {
	n := 0
	for c := 0; c < h.chunkCount; c++ {
		if h.bitmap.isSet(c) {
			n++
		}
	}
	return n
}

// backedWindows counts the windows currently holding a backing page.
func backedWindows(h *Heap) int {
	n := 0
	for w := 0; w < h.windows.windowCount(); w++ {
		if h.windows.backing(w) != 0 {
			n++
		}
	}
	return n
}
