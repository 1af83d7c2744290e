// Package selection tracks the activity selected across the list and map
// views. Both views read and write one shared selection.
package selection

import "sync"

// Controller holds the currently selected activity id. The zero selection
// is "nothing selected".
type Controller struct {
	mu         sync.RWMutex
	selectedID string
}

// NewController creates a controller with no selection.
func NewController() *Controller {
	return &Controller{}
}

// Select sets the selected activity id. Selecting the current id again is
// a no-op on state; it returns whether the selection changed so callers
// can decide to re-trigger a fly-to anyway.
func (c *Controller) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selectedID == id {
		return false
	}
	c.selectedID = id
	return true
}

// Clear resets the selection.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = ""
}

// SelectedID returns the raw selected id, which may reference an activity
// that no longer exists. Prefer Selected for a defensive lookup.
func (c *Controller) SelectedID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedID
}

// Selected resolves the selection through the given lookup. An id that
// the lookup no longer knows is treated as no selection, not an error.
func (c *Controller) Selected(lookup func(id string) bool) (string, bool) {
	c.mu.RLock()
	id := c.selectedID
	c.mu.RUnlock()

	if id == "" || !lookup(id) {
		return "", false
	}
	return id, true
}
