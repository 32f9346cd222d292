package heap

// bitmap tracks chunk occupancy, one bit per chunk. The bit slice is a view
// into bootstrap-allocated provider memory, not a Go allocation of its own.
type bitmap struct {
	bits []byte
}

func (b bitmap) isSet(i int) bool {
	return b.bits[i>>3]&(1<<(uint(i)&7)) != 0
}

func (b bitmap) set(i int) {
	b.bits[i>>3] |= 1 << (uint(i) & 7)
}

func (b bitmap) clear(i int) {
	b.bits[i>>3] &^= 1 << (uint(i) & 7)
}

// byteFull reports whether the bitmap byte containing chunk i is fully
// occupied.
func (b bitmap) byteFull(i int) bool {
	return b.bits[i>>3] == 0xFF
}

// rangeClear reports whether every bitmap byte in [firstByte, firstByte+n)
// is zero. Used to decide whether a window's backing page can be released.
func (b bitmap) rangeClear(firstByte, n int) bool {
	for _, v := range b.bits[firstByte : firstByte+n] {
		if v != 0 {
			return false
		}
	}
	return true
}

// findRun scans left to right for the first run of need clear bits below
// limit and returns its start chunk, or -1 if no such run exists.
//
// The scan restarts just past the occupied chunk that broke a candidate run,
// with one shortcut: when that chunk's whole bitmap byte is 0xFF the scan
// advances seven extra chunks, stepping a byte at a time through fully
// occupied regions, which a run can never overlap.
func (b bitmap) findRun(need, limit int) int {
	for s := 0; s+need < limit; s++ {
		found := true
		for i := 0; i < need; i++ {
			c := s + i
			if !b.isSet(c) {
				continue
			}
			found = false
			if b.byteFull(c) {
				s += 7
			} else {
				s = c
			}
			break
		}
		if found {
			return s
		}
	}
	return -1
}
