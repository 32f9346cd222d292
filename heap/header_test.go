package heap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/internal/format"
)

func TestHeaderChecksumRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		var buf [format.HeaderSize]byte
		writeHeader(buf[:], rng.Uint32(), rng.Uint32())

		// Summing every header byte, stored checksum included, must
		// yield zero modulo 256.
		var sum uint8
		for _, v := range buf {
			sum += v
		}
		assert.Zero(t, sum)
		assert.NoError(t, verifyHeader(buf[:]))
	}
}

func TestHeaderFieldsSurviveEncoding(t *testing.T) {
	var buf [format.HeaderSize]byte
	writeHeader(buf[:], 1234, 56)

	assert.Equal(t, uint32(1234), headerStartChunk(buf[:]))
	assert.Equal(t, uint32(56), headerChunkCount(buf[:]))

	// Reserved bytes stay zero.
	for off := format.HeaderChecksumOffset + 1; off < format.HeaderSize; off++ {
		assert.Zero(t, buf[off], "offset %#x", off)
	}
}

func TestHeaderCorruptionDetected(t *testing.T) {
	for off := 0; off < format.HeaderSize; off++ {
		var buf [format.HeaderSize]byte
		writeHeader(buf[:], 77, 3)
		require.NoError(t, verifyHeader(buf[:]))

		buf[off] ^= 0x01
		assert.ErrorIs(t, verifyHeader(buf[:]), ErrBadChecksum, "flip at offset %#x", off)
	}
}

func TestHeaderStaleCopyStillValidates(t *testing.T) {
	// The checksum guards against corruption, not against replays: a
	// byte-for-byte copy of a valid header validates too. Free relies on
	// the bitmap to reject such double frees.
	var a, b [format.HeaderSize]byte
	writeHeader(a[:], 9, 2)
	copy(b[:], a[:])
	assert.NoError(t, verifyHeader(b[:]))
}
