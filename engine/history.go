package engine

import (
	"sync"

	"github.com/ftahirops/xinfo/model"
)

// History is a ring buffer of temperature readings, one slot per tick.
type History struct {
	buf  [][]model.DriveTemp
	head int
	size int
	cap  int
	mu   sync.RWMutex
}

// NewHistory creates a ring buffer with the given capacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buf: make([][]model.DriveTemp, capacity),
		cap: capacity,
	}
}

// Push records the temperatures of one snapshot.
func (h *History) Push(temps []model.DriveTemp) {
	cp := make([]model.DriveTemp, len(temps))
	copy(cp, temps)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.head] = cp
	h.head = (h.head + 1) % h.cap
	if h.size < h.cap {
		h.size++
	}
}

// Len returns the number of ticks stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Series returns the readings for one drive, oldest first. Ticks where the
// drive reported nothing are skipped. If several drives share the name the
// first reading of each tick wins.
func (h *History) Series(drive string) []int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []int
	for i := 0; i < h.size; i++ {
		idx := (h.head - h.size + i + h.cap) % h.cap
		for _, t := range h.buf[idx] {
			if t.Drive == drive {
				out = append(out, t.Temperature)
				break
			}
		}
	}
	return out
}
