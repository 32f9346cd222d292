//go:build !unix

package phys

// MmapProvider falls back to a heap-allocated span on platforms without
// anonymous mmap support. Release advice is a no-op.
type MmapProvider struct {
	*MemProvider
}

// NewMmap creates the fallback provider. total must be a positive multiple
// of the page size.
func NewMmap(total int64, pageSize int) (*MmapProvider, error) {
	mp, err := NewMem(total, pageSize)
	if err != nil {
		return nil, err
	}
	return &MmapProvider{MemProvider: mp}, nil
}

// Close releases the span to the garbage collector.
func (p *MmapProvider) Close() error {
	p.MemProvider = nil
	return nil
}
