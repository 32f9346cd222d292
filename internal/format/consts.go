// Package format houses the binary layout of the heap's on-page structures.
// The goal is to keep the layout constants and the little-endian codec in one
// place, independent from the public API, so the allocator packages can stay
// focused on bookkeeping.
package format

const (
	// ChunkSize is the default allocation granularity in bytes: one
	// machine word.
	ChunkSize = 8

	// PageSize is the default size in bytes of a physical page acquired
	// from the provider.
	PageSize = 4096

	// HeaderSize is the size of the allocation header that precedes every
	// returned block. It is an exact multiple of ChunkSize so the chunk
	// range set at allocation time and the range cleared at free time
	// always agree.
	HeaderSize = 16

	// Header field offsets within the header record.
	HeaderStartChunkOffset = 0x00 // 4 bytes
	HeaderChunkCountOffset = 0x04 // 4 bytes
	HeaderChecksumOffset   = 0x08 // 1 byte
	// 0x09 - 0x0F reserved, always zero

	// WindowEntrySize is the size of one window table entry: the backing
	// page address, or zero for an unbacked window.
	WindowEntrySize = 4
)
