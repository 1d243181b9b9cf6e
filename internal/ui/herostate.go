package ui

import (
	"time"

	"github.com/samber/lo"

	"github.com/depeter/tvhero/internal/motion"
)

// Presentation selects how a hero screen is shown.
type Presentation int

const (
	// PresentModal slides the hero up as a drawer over the screen below.
	PresentModal Presentation = iota
	// PresentPage shows the hero as a full page.
	PresentPage
)

func (p Presentation) String() string {
	if p == PresentPage {
		return "page"
	}
	return "modal"
}

// Drawer tracks the slide of a modal drawer. Offset is 0 when fully open and
// 1 when fully below the screen.
type Drawer struct {
	duration time.Duration
	openedAt time.Time
	closeAt  time.Time
	closing  bool
}

func NewDrawer(now time.Time, d time.Duration) *Drawer {
	return &Drawer{duration: d, openedAt: now}
}

// RequestClose starts the closing slide. Only the first request counts.
func (d *Drawer) RequestClose(now time.Time) bool {
	if d.closing {
		return false
	}
	d.closing = true
	d.closeAt = now
	return true
}

func (d *Drawer) Closing() bool {
	return d.closing
}

func (d *Drawer) Offset(now time.Time) float64 {
	if !d.closing {
		return d.openOffset(now)
	}
	from := d.openOffset(d.closeAt)
	return from + (1-from)*motion.Ease(d.progress(d.closeAt, now))
}

// Done reports whether the closing slide has finished.
func (d *Drawer) Done(now time.Time) bool {
	return d.closing && d.progress(d.closeAt, now) >= 1
}

func (d *Drawer) openOffset(now time.Time) float64 {
	return 1 - motion.AppleEaseOut(d.progress(d.openedAt, now))
}

func (d *Drawer) progress(start, now time.Time) float64 {
	if d.duration <= 0 {
		return 1
	}
	return lo.Clamp(float64(now.Sub(start))/float64(d.duration), 0, 1)
}
