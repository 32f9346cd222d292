package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/internal/format"
	"github.com/heapkit/heapkit/phys"
)

func newTestBootstrap(t *testing.T, pages int) (*bootstrap, *phys.MemProvider) {
	t.Helper()

	prov, err := phys.NewMem(int64(pages)*format.PageSize, format.PageSize)
	require.NoError(t, err)
	return newBootstrap(prov, format.PageSize), prov
}

func TestBootstrapRejectsBadRequests(t *testing.T) {
	bs, prov := newTestBootstrap(t, 4)

	for _, req := range [][2]int{{0, 1}, {1, 0}, {-1, 8}, {8, -1}} {
		_, err := bs.alloc(req[0], req[1])
		assert.ErrorIs(t, err, ErrBadRequest, "elemSize=%d length=%d", req[0], req[1])
	}
	assert.Zero(t, prov.OutstandingPages(), "failed requests must not acquire pages")
}

func TestBootstrapZeroFillsDirtyMemory(t *testing.T) {
	bs, prov := newTestBootstrap(t, 4)

	// Simulate stale physical memory.
	data := prov.Bytes()
	for i := range data {
		data[i] = 0xFF
	}

	span, err := bs.carve(1, 100)
	require.NoError(t, err)
	require.Len(t, span, 100)
	for i, v := range span {
		require.Zero(t, v, "byte %d", i)
	}
}

func TestBootstrapCursorAdvances(t *testing.T) {
	bs, _ := newTestBootstrap(t, 4)

	a, err := bs.alloc(8, 4)
	require.NoError(t, err)
	b, err := bs.alloc(1, 16)
	require.NoError(t, err)
	c, err := bs.alloc(2, 2)
	require.NoError(t, err)

	assert.Equal(t, a+32, b, "regions are adjacent")
	assert.Equal(t, b+16, c)
	assert.Equal(t, 3, bs.allocCount)
}

func TestBootstrapAcquiresCrossedPages(t *testing.T) {
	bs, prov := newTestBootstrap(t, 8)

	_, err := bs.alloc(1, 64)
	require.NoError(t, err)
	assert.Equal(t, 1, prov.OutstandingPages(), "first carve acquires the cursor page")

	// A span crossing into two further pages acquires both.
	_, err = bs.alloc(1, 2*format.PageSize)
	require.NoError(t, err)
	assert.Equal(t, 3, prov.OutstandingPages())
}

func TestBootstrapPropagatesExhaustion(t *testing.T) {
	bs, _ := newTestBootstrap(t, 2) // one usable page: page 0 is reserved

	_, err := bs.alloc(1, 16)
	require.NoError(t, err)

	_, err = bs.alloc(1, 2*format.PageSize)
	assert.ErrorIs(t, err, phys.ErrOutOfPages)
}
