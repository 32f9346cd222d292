package heap

import (
	"github.com/heapkit/heapkit/internal/format"
	"github.com/heapkit/heapkit/phys"
)

// windowTable maps each page-sized window of the chunk address space to its
// backing page. The entry slice is a view into bootstrap-allocated provider
// memory: one little-endian address per window, zero meaning unbacked.
type windowTable struct {
	entries         []byte
	prov            phys.Provider
	chunkSize       int
	chunksPerWindow int
}

// windowCount returns the number of windows in the table.
func (w *windowTable) windowCount() int {
	return len(w.entries) / format.WindowEntrySize
}

// backing returns the backing address of a window, or zero if unbacked.
func (w *windowTable) backing(win int) phys.Addr {
	return format.ReadU32(w.entries, win*format.WindowEntrySize)
}

func (w *windowTable) setBacking(win int, addr phys.Addr) {
	format.PutU32(w.entries, win*format.WindowEntrySize, addr)
}

// ensureBacked guarantees the window has a committed page, acquiring one
// from the provider if needed. It reports whether a page was acquired by
// this call.
func (w *windowTable) ensureBacked(win int) (phys.Addr, bool, error) {
	if addr := w.backing(win); addr != 0 {
		return addr, false, nil
	}
	addr, err := w.prov.AcquirePage()
	if err != nil {
		return 0, false, err
	}
	w.setBacking(win, addr)
	return addr, true, nil
}

// release returns the window's backing page to the provider and marks the
// window unbacked. The caller must have confirmed that every chunk in the
// window is free.
func (w *windowTable) release(win int) (phys.Addr, error) {
	addr := w.backing(win)
	if addr == 0 {
		return 0, nil
	}
	if err := w.prov.ReleasePage(addr); err != nil {
		return 0, err
	}
	w.setBacking(win, 0)
	return addr, nil
}

// chunkAddr resolves the byte address of a chunk through its window's
// backing page. The window must be backed.
func (w *windowTable) chunkAddr(c int) phys.Addr {
	win := c / w.chunksPerWindow
	first := win * w.chunksPerWindow
	return w.backing(win) + phys.Addr((c-first)*w.chunkSize)
}
