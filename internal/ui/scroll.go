package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/samber/lo"
)

// ScrollState provides reusable vertical scroll tracking with spring animation.
// Embed this struct in screens that need scrollable content.
type ScrollState struct {
	ScrollY       float64
	TargetScrollY float64
	MaxScroll     float64

	// Overscroll lets a pull past the top stretch the content, springing back.
	Overscroll bool
	// Locked ignores input; set through SetLocked by a scroll lock.
	Locked bool

	velocity float64
	spring   harmonica.Spring
	ready    bool
}

// HandleMouseWheel updates the target scroll position from mouse wheel input.
func (s *ScrollState) HandleMouseWheel() {
	_, wy := MouseWheelDelta()
	s.ApplyWheel(wy)
}

// ApplyWheel applies a wheel delta in wheel units; positive scrolls up.
func (s *ScrollState) ApplyWheel(dy float64) {
	s.ScrollBy(-dy * ScrollWheelSpeed)
}

// ScrollBy moves the target by delta pixels. Moving past the top pulls the
// content down when overscroll is enabled.
func (s *ScrollState) ScrollBy(delta float64) {
	if s.Locked || delta == 0 {
		return
	}
	next := s.TargetScrollY + delta
	if next < 0 && s.Overscroll && s.ScrollY <= 0.5 {
		s.ScrollY = math.Max(s.ScrollY+next*0.5, -OverscrollLimit)
	}
	s.TargetScrollY = lo.Clamp(next, 0, math.Max(s.MaxScroll, 0))
}

// SetMaxScroll updates the scroll range after a layout pass.
func (s *ScrollState) SetMaxScroll(maxScroll float64) {
	s.MaxScroll = math.Max(maxScroll, 0)
	if s.TargetScrollY > s.MaxScroll {
		s.TargetScrollY = s.MaxScroll
	}
}

// Animate advances the spring one tick. Call this once per Update().
func (s *ScrollState) Animate() {
	if !s.ready {
		s.spring = harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0)
		s.ready = true
	}
	s.ScrollY, s.velocity = s.spring.Update(s.ScrollY, s.velocity, s.TargetScrollY)
	if math.Abs(s.ScrollY-s.TargetScrollY) < 0.05 && math.Abs(s.velocity) < 0.05 {
		s.ScrollY = s.TargetScrollY
		s.velocity = 0
	}
}

// Reset sets scroll position back to top.
func (s *ScrollState) Reset() {
	s.ScrollY = 0
	s.TargetScrollY = 0
	s.velocity = 0
}

// EnsureRowVisible scrolls to make the given row index visible in a grid layout.
// gridBaseY is the top of the grid area (without scroll offset applied).
// viewHeight is the visible viewport height.
func (s *ScrollState) EnsureRowVisible(row int, gridBaseY, viewHeight float64) {
	rowTop := gridBaseY + float64(row)*GridRowHeight
	rowBottom := rowTop + GridRowHeight

	// Scroll down if row is below viewport
	if rowBottom > viewHeight+s.TargetScrollY {
		s.TargetScrollY = rowBottom - viewHeight
	}
	// Scroll up if row is above viewport
	if rowTop < s.TargetScrollY+gridBaseY {
		s.TargetScrollY = rowTop - gridBaseY
		if s.TargetScrollY < 0 {
			s.TargetScrollY = 0
		}
	}
}

// ScrollPosition, SetScrollPosition and SetLocked let a scroll lock freeze
// this container and put it back afterwards.

func (s *ScrollState) ScrollPosition() float64 {
	return s.TargetScrollY
}

func (s *ScrollState) SetScrollPosition(pos float64) {
	s.ScrollY = pos
	s.TargetScrollY = pos
	s.velocity = 0
}

func (s *ScrollState) SetLocked(locked bool) {
	s.Locked = locked
}

// ScrollOffset reports the rendered offset, negative while overscrolled.
func (s *ScrollState) ScrollOffset() float64 {
	return s.ScrollY
}
