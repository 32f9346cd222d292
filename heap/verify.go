package heap

import "fmt"

// ConsistencyError describes a broken invariant found by CheckConsistency.
type ConsistencyError struct {
	Kind    string
	Message string
	Window  int
}

func (e *ConsistencyError) Error() string {
	if e.Window >= 0 {
		return fmt.Sprintf("heap: %s in window %d: %s", e.Kind, e.Window, e.Message)
	}
	return fmt.Sprintf("heap: %s: %s", e.Kind, e.Message)
}

// CheckConsistency validates the bitmap/backing-table invariants:
//
//   - every occupied chunk lies inside a backed window;
//   - every backed window contains at least one occupied chunk, so no
//     backing page outlives the allocations that forced its commit.
//
// Returns the first violation found, or nil. Intended for tests and
// debugging; it walks the whole bitmap.
func (h *Heap) CheckConsistency() error {
	bytesPerWindow := h.chunksPerWindow / 8
	for win := 0; win < h.windows.windowCount(); win++ {
		occupied := !h.bitmap.rangeClear(win*bytesPerWindow, bytesPerWindow)
		backed := h.windows.backing(win) != 0
		switch {
		case occupied && !backed:
			return &ConsistencyError{
				Kind:    "unbacked occupancy",
				Message: "window has occupied chunks but no backing page",
				Window:  win,
			}
		case backed && !occupied:
			return &ConsistencyError{
				Kind:    "leaked backing",
				Message: "window is backed but every chunk in it is free",
				Window:  win,
			}
		}
	}
	return nil
}
