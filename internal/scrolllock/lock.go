// Package scrolllock freezes a scroll container while an overlay is open and
// restores it when the overlay goes away, however that happens.
package scrolllock

import "sync"

// Scrollable is a container whose scrolling can be suspended.
type Scrollable interface {
	ScrollPosition() float64
	SetScrollPosition(pos float64)
	SetLocked(locked bool)
}

// Handle owns one lock. Release may be called from every exit path; only
// the first call has an effect.
type Handle struct {
	target Scrollable
	saved  float64
	once   sync.Once
}

// Acquire locks target and remembers its scroll position.
func Acquire(target Scrollable) *Handle {
	h := &Handle{target: target}
	if target != nil {
		h.saved = target.ScrollPosition()
		target.SetLocked(true)
	}
	return h
}

// Release unlocks the target and puts the scroll position back.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		if h.target == nil {
			return
		}
		h.target.SetLocked(false)
		h.target.SetScrollPosition(h.saved)
	})
}

// Saved returns the position that Release restores.
func (h *Handle) Saved() float64 {
	return h.saved
}
