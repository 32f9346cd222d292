package heap

import (
	"fmt"

	"github.com/heapkit/heapkit/internal/format"
)

// The allocation header is a 16-byte record written at the base of every
// run, immediately before the ref handed back to the caller:
//
//	0x00  startChunk  u32  first chunk of the run
//	0x04  chunkCount  u32  payload length in chunks, header excluded
//	0x08  checksum    u8   additive checksum, see below
//	0x09  reserved         always zero
//
// The checksum is the two's-complement negation of the sum of the other
// fifteen bytes, so that summing the whole record modulo 256 yields zero.
// Free recomputes the sum before trusting startChunk or chunkCount; a stale
// or scribbled header, or a ref that never came from Alloc, fails the check.

// writeHeader encodes a header into the 16 bytes at dst.
func writeHeader(dst []byte, startChunk, chunkCount uint32) {
	clear(dst[:format.HeaderSize])
	format.PutU32(dst, format.HeaderStartChunkOffset, startChunk)
	format.PutU32(dst, format.HeaderChunkCountOffset, chunkCount)
	dst[format.HeaderChecksumOffset] = headerChecksum(dst)
}

// headerChecksum computes the checksum byte for a header whose checksum
// field is currently zero.
func headerChecksum(b []byte) uint8 {
	var sum uint8
	for _, v := range b[:format.HeaderSize] {
		sum += v
	}
	return -sum
}

// verifyHeader checks that the 16 bytes at b sum to zero modulo 256.
func verifyHeader(b []byte) error {
	var sum uint8
	for _, v := range b[:format.HeaderSize] {
		sum += v
	}
	if sum != 0 {
		return fmt.Errorf("%w: byte sum %#02x", ErrBadChecksum, sum)
	}
	return nil
}

func headerStartChunk(b []byte) uint32 {
	return format.ReadU32(b, format.HeaderStartChunkOffset)
}

func headerChunkCount(b []byte) uint32 {
	return format.ReadU32(b, format.HeaderChunkCountOffset)
}
