package heap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRandomAllocFreeHoldsInvariants performs a long random alloc/free
// sequence and validates after every step that
//
//   - no two live runs overlap,
//   - occupied chunks and backed windows stay consistent,
//   - the occupied chunk count matches the live runs exactly.
func TestRandomAllocFreeHoldsInvariants(t *testing.T) {
	h, _ := newTestHeap(t, 64)

	rng := rand.New(rand.NewSource(42)) // fixed seed for reproducibility
	live := make(map[Ref][2]int)        // ref -> [startChunk, endChunk)

	checkStep := func(step int) {
		require.NoError(t, h.CheckConsistency(), "step %d", step)

		total := 0
		ranges := make([][2]int, 0, len(live))
		for _, r := range live {
			ranges = append(ranges, r)
			total += r[1] - r[0]
		}
		require.Equal(t, total, occupiedChunks(h), "step %d: occupied chunks", step)

		for i := range ranges {
			for j := i + 1; j < len(ranges); j++ {
				a, b := ranges[i], ranges[j]
				require.True(t, a[1] <= b[0] || b[1] <= a[0],
					"step %d: runs %v and %v overlap", step, a, b)
			}
		}
	}

	for step := 0; step < 500; step++ {
		if len(live) < 40 && rng.Intn(2) == 0 {
			size := 1 + rng.Intn(1024)
			ref, _, err := h.Alloc(size)
			require.NoError(t, err, "step %d: alloc %d", step, size)
			start, end := liveRange(t, h, ref)
			live[ref] = [2]int{start, end}
		} else if len(live) > 0 {
			for ref := range live {
				require.NoError(t, h.Free(ref), "step %d: free %#x", step, ref)
				delete(live, ref)
				break
			}
		}
		checkStep(step)
	}

	for ref := range live {
		require.NoError(t, h.Free(ref))
	}
	require.Zero(t, occupiedChunks(h))
	require.Zero(t, backedWindows(h))
}
