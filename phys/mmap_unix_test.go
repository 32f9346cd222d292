//go:build unix

package phys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapAcquireReleaseClose(t *testing.T) {
	p, err := NewMmap(8*testPageSize, testPageSize)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, int64(8*testPageSize), p.TotalMemory())

	a, err := p.AcquirePage()
	require.NoError(t, err)
	assert.NotZero(t, a)

	p.Bytes()[a] = 0x5A
	require.NoError(t, p.ReleasePage(a))

	// After MADV_DONTNEED the span is still mapped and readable.
	_ = p.Bytes()[a]

	assert.ErrorIs(t, p.ReleasePage(a), ErrBadPage)
	require.NoError(t, p.Close())
	assert.NoError(t, p.Close(), "double close is a no-op")
}
