package ratelimit

import (
	"sort"
	"time"
)

// Prune returns the suffix of stamps that still falls inside the window ending
// at now. stamps must be in ascending order; the input slice is not modified.
func Prune(stamps []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	i := sort.Search(len(stamps), func(i int) bool {
		return stamps[i].After(cutoff)
	})
	return stamps[i:]
}

// Window is a sliding window of hit timestamps that never holds more than
// its capacity. Once full, the oldest stamp is dropped on each new hit, so
// the reported count saturates at capacity.
type Window struct {
	stamps   []time.Time
	capacity int
}

// NewWindow creates a window bounded to capacity stamps
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{stamps: make([]time.Time, 0, capacity), capacity: capacity}
}

// Hit records a hit at now and returns the number of hits inside the window
func (w *Window) Hit(now time.Time, window time.Duration) int {
	live := Prune(w.stamps, now, window)
	if len(live) == w.capacity {
		live = live[1:]
	}
	// compact into the front so the backing array never grows
	n := copy(w.stamps[:cap(w.stamps)], live)
	w.stamps = append(w.stamps[:n], now)
	return len(w.stamps)
}

// Len returns the number of stamps currently held
func (w *Window) Len() int {
	return len(w.stamps)
}
