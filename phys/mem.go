package phys

import (
	"fmt"

	"github.com/heapkit/heapkit/internal/format"
)

// MemProvider is a Provider backed by an ordinary heap-allocated byte slice.
// It is the default choice for tests and for embedding a heap inside a
// larger program.
type MemProvider struct {
	data []byte
	book pageBook
}

// NewMem creates a provider with total bytes of addressable memory.
// total must be a positive multiple of the page size.
func NewMem(total int64, pageSize int) (*MemProvider, error) {
	if err := checkGeometry(total, pageSize); err != nil {
		return nil, err
	}
	return &MemProvider{
		data: make([]byte, total),
		book: newPageBook(total, pageSize),
	}, nil
}

// TotalMemory reports the size of the addressable span.
func (p *MemProvider) TotalMemory() int64 { return int64(len(p.data)) }

// AcquirePage commits one page and returns its address.
func (p *MemProvider) AcquirePage() (Addr, error) { return p.book.acquire() }

// ReleasePage returns a previously acquired page. The page contents are left
// as-is: like real physical memory, a reused page may carry stale bytes.
func (p *MemProvider) ReleasePage(addr Addr) error { return p.book.release(addr) }

// Bytes exposes the full addressable span.
func (p *MemProvider) Bytes() []byte { return p.data }

// OutstandingPages reports the number of acquired, not yet released pages.
func (p *MemProvider) OutstandingPages() int { return p.book.outstanding() }

func checkGeometry(total int64, pageSize int) error {
	if pageSize <= 0 || !format.IsPowerOfTwo(pageSize) {
		return fmt.Errorf("phys: page size %d is not a power of two", pageSize)
	}
	if total <= 0 || total%int64(pageSize) != 0 {
		return fmt.Errorf("phys: total memory %d is not a positive multiple of the page size %d", total, pageSize)
	}
	return nil
}
