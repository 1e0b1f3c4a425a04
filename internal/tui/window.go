package tui

import (
	"sync"

	"github.com/dtg01100/clickwheel/internal/menu"
)

// WindowController decides whether the split menu pane is shown for the
// active view.
type WindowController struct {
	mu     sync.RWMutex
	hidden map[menu.ViewID]bool
	active menu.ViewID
}

// NewWindowController creates a controller with no registered views.
func NewWindowController() *WindowController {
	return &WindowController{hidden: make(map[menu.ViewID]bool)}
}

// HideMenuWhenActive registers id as a view that takes the full window.
func (w *WindowController) HideMenuWhenActive(id menu.ViewID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hidden[id] = true
}

// SetActive records the active view.
func (w *WindowController) SetActive(id menu.ViewID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = id
}

// Active returns the active view.
func (w *WindowController) Active() menu.ViewID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// MenuHidden reports whether the menu pane is hidden for the active view.
func (w *WindowController) MenuHidden() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.hidden[w.active]
}
