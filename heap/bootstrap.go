package heap

import (
	"fmt"

	"github.com/heapkit/heapkit/phys"
)

// bootstrap is a one-shot bump allocator that carves permanently owned,
// zero-filled memory directly out of freshly acquired provider pages. New
// uses it to build the bitmap and the window table before the heap can
// allocate normally; nothing it hands out is ever reclaimed.
//
// The cursor only moves forward. Requests that cross into further pages
// acquire them on the spot and rely on the provider still handing out
// contiguous ascending addresses, which holds while no page has been
// released - true during heap initialization and never afterwards, which is
// why a bootstrap must not be used once normal allocation begins.
type bootstrap struct {
	prov     phys.Provider
	pageSize int

	// cursor is the next address to hand out; zero until the first call
	// acquires the initial page.
	cursor phys.Addr

	// allocCount tracks the number of successful carves.
	allocCount int
}

func newBootstrap(p phys.Provider, pageSize int) *bootstrap {
	return &bootstrap{prov: p, pageSize: pageSize}
}

// alloc returns the address of a zero-filled region of elemSize*length
// bytes.
func (bs *bootstrap) alloc(elemSize, length int) (phys.Addr, error) {
	if elemSize <= 0 || length <= 0 {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrBadRequest, length, elemSize)
	}

	if bs.cursor == 0 {
		addr, err := bs.prov.AcquirePage()
		if err != nil {
			return 0, err
		}
		bs.cursor = addr
	}

	result := bs.cursor
	size := elemSize * length

	// Acquire every additional page the span crosses into beyond those
	// already covered by the cursor's page.
	morePages := (int(bs.cursor)+size)/bs.pageSize - int(bs.cursor)/bs.pageSize
	for i := 0; i < morePages; i++ {
		if _, err := bs.prov.AcquirePage(); err != nil {
			return 0, err
		}
	}

	clear(bs.prov.Bytes()[result : int(result)+size])
	bs.cursor += phys.Addr(size)
	bs.allocCount++

	return result, nil
}

// carve is a convenience wrapper returning the allocated span as a slice.
func (bs *bootstrap) carve(elemSize, length int) ([]byte, error) {
	addr, err := bs.alloc(elemSize, length)
	if err != nil {
		return nil, err
	}
	return bs.prov.Bytes()[addr : int(addr)+elemSize*length], nil
}
