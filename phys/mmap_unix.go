//go:build unix

package phys

import (
	"golang.org/x/sys/unix"
)

// MmapProvider is a Provider backed by an anonymous memory mapping. Released
// pages are advised away with MADV_DONTNEED, so the kernel can drop their
// physical backing while the addressable span stays intact.
type MmapProvider struct {
	data []byte
	book pageBook
}

// NewMmap creates an anonymous-mapping provider with total bytes of
// addressable memory. total must be a positive multiple of the page size.
func NewMmap(total int64, pageSize int) (*MmapProvider, error) {
	if err := checkGeometry(total, pageSize); err != nil {
		return nil, err
	}
	data, err := unix.Mmap(-1, 0, int(total),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &MmapProvider{
		data: data,
		book: newPageBook(total, pageSize),
	}, nil
}

// TotalMemory reports the size of the addressable span.
func (p *MmapProvider) TotalMemory() int64 { return int64(len(p.data)) }

// AcquirePage commits one page and returns its address.
func (p *MmapProvider) AcquirePage() (Addr, error) { return p.book.acquire() }

// ReleasePage returns a previously acquired page and advises the kernel to
// drop its physical backing. The advice is best-effort: the address range
// stays mapped and reads back as zeroes after a drop.
func (p *MmapProvider) ReleasePage(addr Addr) error {
	if err := p.book.release(addr); err != nil {
		return err
	}
	span := p.data[addr : int(addr)+p.book.pageSize]
	// The mapping remains valid even if the advice fails.
	_ = unix.Madvise(span, unix.MADV_DONTNEED)
	return nil
}

// Bytes exposes the full addressable span.
func (p *MmapProvider) Bytes() []byte { return p.data }

// OutstandingPages reports the number of acquired, not yet released pages.
func (p *MmapProvider) OutstandingPages() int { return p.book.outstanding() }

// Close unmaps the span. The provider must not be used afterwards.
func (p *MmapProvider) Close() error {
	if p.data == nil {
		return nil
	}
	data := p.data
	p.data = nil
	return unix.Munmap(data)
}
