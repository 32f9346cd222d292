package heap

import (
	"fmt"
	"log/slog"

	"github.com/heapkit/heapkit/internal/format"
	"github.com/heapkit/heapkit/phys"
)

// Heap is a chunk-granular allocator over a phys.Provider. All bookkeeping
// lives in provider memory carved out by the bootstrap allocator during New;
// the Heap itself holds only views and geometry.
//
// NOT thread-safe. Callers serialize all access.
type Heap struct {
	prov phys.Provider
	log  *slog.Logger

	chunkSize       int
	pageSize        int
	chunksPerWindow int
	headerChunks    int
	chunkCount      int

	bitmap  bitmap
	windows windowTable

	stats Stats
}

// New initializes a heap over the provider's memory. It queries the total
// memory once, derives the chunk count, and bootstraps the occupancy bitmap
// and the window backing table out of freshly acquired pages. Must complete
// before any Alloc or Free call.
func New(p phys.Provider, opts ...Option) (*Heap, error) {
	if p == nil {
		return nil, fmt.Errorf("heap: nil provider")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	total := p.TotalMemory()
	if total < int64(cfg.pageSize) {
		return nil, fmt.Errorf("heap: provider reports %d bytes, need at least one page of %d", total, cfg.pageSize)
	}
	if total%int64(cfg.pageSize) != 0 {
		return nil, fmt.Errorf("heap: provider memory %d is not a multiple of the page size %d", total, cfg.pageSize)
	}

	h := &Heap{
		prov:            p,
		log:             cfg.log,
		chunkSize:       cfg.chunkSize,
		pageSize:        cfg.pageSize,
		chunksPerWindow: cfg.pageSize / cfg.chunkSize,
		headerChunks:    format.HeaderSize / cfg.chunkSize,
		chunkCount:      int(total / int64(cfg.chunkSize)),
	}

	bs := newBootstrap(p, cfg.pageSize)
	bits, err := bs.carve(1, h.chunkCount/8)
	if err != nil {
		return nil, fmt.Errorf("heap: bootstrapping bitmap: %w", err)
	}
	entries, err := bs.carve(format.WindowEntrySize, h.chunkCount/h.chunksPerWindow)
	if err != nil {
		return nil, fmt.Errorf("heap: bootstrapping window table: %w", err)
	}

	h.bitmap = bitmap{bits: bits}
	h.windows = windowTable{
		entries:         entries,
		prov:            p,
		chunkSize:       h.chunkSize,
		chunksPerWindow: h.chunksPerWindow,
	}

	h.log.Debug("heap initialized",
		"chunks", h.chunkCount,
		"windows", h.windows.windowCount(),
		"bootstrapPages", bs.allocCount)
	return h, nil
}

// Alloc reserves a block of at least size usable bytes and returns its ref
// together with a view of the payload in the provider's addressable span.
//
// Placement is first-fit over the chunk bitmap; every window the chosen run
// touches is backed with a physical page before any of its chunks is marked
// occupied. Returns ErrBadRequest for non-positive sizes and ErrNoSpace when
// no sufficiently long run exists.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	h.stats.AllocCalls++
	if size <= 0 {
		return 0, nil, fmt.Errorf("%w: size %d", ErrBadRequest, size)
	}

	need := format.CeilDiv(size+format.HeaderSize, h.chunkSize)
	start := h.bitmap.findRun(need, h.chunkCount)
	if start < 0 {
		return 0, nil, fmt.Errorf("%w: %d chunks requested", ErrNoSpace, need)
	}

	for c := start; c < start+need; c++ {
		win := c / h.chunksPerWindow
		addr, acquired, err := h.windows.ensureBacked(win)
		if err != nil {
			return 0, nil, fmt.Errorf("heap: backing window %d: %w", win, err)
		}
		if acquired {
			h.stats.PageCommits++
			h.log.Debug("committed page", "window", win, "addr", addr)
		}
		h.bitmap.set(c)
	}

	base := h.windows.chunkAddr(start)
	buf := h.prov.Bytes()
	if int(base)+format.HeaderSize > len(buf) {
		return 0, nil, fmt.Errorf("%w: run base %#x leaves no room for a header", ErrBadRef, base)
	}
	writeHeader(buf[base:], uint32(start), uint32(format.CeilDiv(size, h.chunkSize)))

	ref := base + format.HeaderSize
	h.stats.BytesRequested += int64(size)
	h.stats.ChunksAllocated += int64(need)
	h.log.Debug("alloc", "size", size, "chunks", need, "startChunk", start, "ref", ref)

	end := int(ref) + size
	if end > len(buf) {
		// A run that crosses windows is linear in chunk space but its
		// tail bytes live on other windows' pages; the view can only
		// cover what the span itself holds.
		end = len(buf)
	}
	return ref, buf[ref:end], nil
}

// Free releases a block previously returned by Alloc. The header preceding
// ref must pass its checksum and every chunk of the recorded run must still
// be marked occupied; the run's bits are cleared and any window left fully
// free hands its backing page back to the provider.
func (h *Heap) Free(ref Ref) error {
	h.stats.FreeCalls++
	buf := h.prov.Bytes()
	if int(ref) < format.HeaderSize || int(ref) > len(buf) {
		return fmt.Errorf("%w: %#x", ErrBadRef, ref)
	}

	hdr := buf[int(ref)-format.HeaderSize : ref]
	if err := verifyHeader(hdr); err != nil {
		return fmt.Errorf("freeing %#x: %w", ref, err)
	}

	start := int(headerStartChunk(hdr))
	count := int(headerChunkCount(hdr)) + h.headerChunks
	if start+count > h.chunkCount {
		return fmt.Errorf("%w: header spans chunks %d-%d beyond %d", ErrBadRef, start, start+count, h.chunkCount)
	}

	for c := start; c < start+count; c++ {
		if !h.bitmap.isSet(c) {
			return fmt.Errorf("%w: chunk %d of run at %#x", ErrNotAllocated, c, ref)
		}
		h.bitmap.clear(c)
	}
	h.stats.ChunksFreed += int64(count)
	h.log.Debug("free", "ref", ref, "chunks", count, "startChunk", start)

	// Release every touched window whose chunk range is now entirely
	// clear. Windows are chunk-denominated: chunk / chunksPerWindow.
	bytesPerWindow := h.chunksPerWindow / 8
	firstWin := start / h.chunksPerWindow
	lastWin := (start + count - 1) / h.chunksPerWindow
	for win := firstWin; win <= lastWin; win++ {
		if !h.bitmap.rangeClear(win*bytesPerWindow, bytesPerWindow) {
			continue
		}
		addr, err := h.windows.release(win)
		if err != nil {
			return fmt.Errorf("heap: releasing window %d: %w", win, err)
		}
		if addr != 0 {
			h.stats.PageReleases++
			h.log.Debug("released page", "window", win, "addr", addr)
		}
	}
	return nil
}

// MustAlloc is Alloc with the fatal behavior expected at a kernel boundary:
// any failure, exhaustion included, panics.
func (h *Heap) MustAlloc(size int) (Ref, []byte) {
	ref, buf, err := h.Alloc(size)
	if err != nil {
		panic(err)
	}
	return ref, buf
}

// MustFree is Free with the fatal behavior expected at a kernel boundary:
// a bad checksum, a double free, or any other failure panics.
func (h *Heap) MustFree(ref Ref) {
	if err := h.Free(ref); err != nil {
		panic(err)
	}
}

// Stats returns a copy of the allocator counters.
func (h *Heap) Stats() Stats { return h.stats }

// Bytes exposes the provider's full addressable span. Refs index into it.
func (h *Heap) Bytes() []byte { return h.prov.Bytes() }

// ChunkCount returns the number of chunks in the managed address space.
func (h *Heap) ChunkCount() int { return h.chunkCount }

// ChunkSize returns the allocation granularity in bytes.
func (h *Heap) ChunkSize() int { return h.chunkSize }

// PageSize returns the physical page size in bytes.
func (h *Heap) PageSize() int { return h.pageSize }

func checkConfig(cfg config) error {
	if !format.IsPowerOfTwo(cfg.chunkSize) || format.HeaderSize%cfg.chunkSize != 0 {
		return fmt.Errorf("heap: chunk size %d must be a power of two dividing the header size %d",
			cfg.chunkSize, format.HeaderSize)
	}
	if cfg.pageSize <= 0 || cfg.pageSize%(cfg.chunkSize*8) != 0 {
		return fmt.Errorf("heap: page size %d must cover whole bitmap bytes of %d chunks",
			cfg.pageSize, cfg.chunkSize*8)
	}
	return nil
}
