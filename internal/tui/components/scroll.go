package components

import (
	"sync"

	"github.com/dtg01100/clickwheel/internal/menu"
)

// ScrollTracker remembers the focused row of each view so that returning to
// a view restores its cursor.
type ScrollTracker struct {
	mu        sync.Mutex
	positions map[menu.ViewID]int
}

// NewScrollTracker creates an empty tracker.
func NewScrollTracker() *ScrollTracker {
	return &ScrollTracker{positions: make(map[menu.ViewID]int)}
}

// Index returns the focused index for id, clamped to the option count.
// The option list can shrink between calls, for example after signing out.
func (t *ScrollTracker) Index(id menu.ViewID, options []menu.Option) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clamp(id, len(options))
}

// Up moves the focus of id one row up and returns the new index.
func (t *ScrollTracker) Up(id menu.ViewID, options []menu.Option) int {
	return t.move(id, len(options), -1)
}

// Down moves the focus of id one row down and returns the new index.
func (t *ScrollTracker) Down(id menu.ViewID, options []menu.Option) int {
	return t.move(id, len(options), 1)
}

// Reset forgets the position of id.
func (t *ScrollTracker) Reset(id menu.ViewID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.positions, id)
}

func (t *ScrollTracker) move(id menu.ViewID, n, delta int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.clamp(id, n) + delta
	if idx < 0 {
		idx = 0
	}
	if n > 0 && idx > n-1 {
		idx = n - 1
	}
	if n == 0 {
		idx = 0
	}
	t.positions[id] = idx
	return idx
}

// clamp must be called with mu held.
func (t *ScrollTracker) clamp(id menu.ViewID, n int) int {
	idx := t.positions[id]
	if n == 0 {
		idx = 0
	} else if idx > n-1 {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	t.positions[id] = idx
	return idx
}
