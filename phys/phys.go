// Package phys abstracts the physical page source that backs a heap.
//
// A Provider owns a flat addressable span of memory and hands out page-sized
// blocks of it on demand. Addresses are offsets into that span, which keeps
// the allocator's bookkeeping free of raw pointers: resolving an address is
// an index into Bytes(), not pointer arithmetic.
//
// Address 0 is reserved. The heap stores backing addresses in a table whose
// zero value means "unbacked", so a provider must never return a page at
// address 0. Both implementations in this package start their page space at
// the second page.
package phys

import "errors"

// Addr is an address in a provider's flat addressable space.
type Addr = uint32

var (
	// ErrOutOfPages indicates the provider has no page left to hand out.
	ErrOutOfPages = errors.New("phys: out of physical pages")

	// ErrBadPage indicates an address that is not a page previously
	// returned by AcquirePage and still outstanding.
	ErrBadPage = errors.New("phys: not an outstanding page of this provider")
)

// Provider is the physical page source consumed by the heap.
//
// Implementations are not thread-safe; the heap serializes all access.
type Provider interface {
	// TotalMemory reports the size in bytes of the addressable span.
	// The heap queries it once, at initialization.
	TotalMemory() int64

	// AcquirePage commits one page and returns its address. While no page
	// has been released yet, addresses come out in ascending, contiguous
	// order; the heap's bootstrap phase relies on this.
	AcquirePage() (Addr, error)

	// ReleasePage returns a previously acquired page to the provider.
	ReleasePage(addr Addr) error

	// Bytes exposes the full addressable span. Addresses returned by
	// AcquirePage index into this slice.
	Bytes() []byte
}

// pageBook tracks which pages of a span are outstanding. Pages are handed
// out ascending starting at pageSize (page 0 stays reserved); released pages
// are reused LIFO before the high-water mark advances.
type pageBook struct {
	pageSize int
	limit    Addr // end of the page space (exclusive)
	next     Addr // next never-acquired page
	freed    []Addr
	owned    map[Addr]struct{}
}

func newPageBook(total int64, pageSize int) pageBook {
	return pageBook{
		pageSize: pageSize,
		limit:    Addr(total),
		next:     Addr(pageSize),
		owned:    make(map[Addr]struct{}),
	}
}

func (pb *pageBook) acquire() (Addr, error) {
	if n := len(pb.freed); n > 0 {
		addr := pb.freed[n-1]
		pb.freed = pb.freed[:n-1]
		pb.owned[addr] = struct{}{}
		return addr, nil
	}
	if pb.next >= pb.limit {
		return 0, ErrOutOfPages
	}
	addr := pb.next
	pb.next += Addr(pb.pageSize)
	pb.owned[addr] = struct{}{}
	return addr, nil
}

func (pb *pageBook) release(addr Addr) error {
	if _, ok := pb.owned[addr]; !ok {
		return ErrBadPage
	}
	delete(pb.owned, addr)
	pb.freed = append(pb.freed, addr)
	return nil
}

// outstanding reports the number of acquired, not yet released pages.
func (pb *pageBook) outstanding() int {
	return len(pb.owned)
}
