package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/depeter/tvhero/internal/scrolllock"
)

func settle(s *ScrollState) {
	for i := 0; i < 600; i++ {
		s.Animate()
	}
}

func TestScrollStateClampsTarget(t *testing.T) {
	s := &ScrollState{MaxScroll: 500}
	s.ApplyWheel(-3)
	assert.Equal(t, 180.0, s.TargetScrollY)

	s.ScrollBy(1000)
	assert.Equal(t, 500.0, s.TargetScrollY)

	s.ScrollBy(-2000)
	assert.Equal(t, 0.0, s.TargetScrollY)
}

func TestScrollStateSpringSettles(t *testing.T) {
	s := &ScrollState{MaxScroll: 500}
	s.ScrollBy(300)
	s.Animate()
	assert.Greater(t, s.ScrollY, 0.0)
	assert.Less(t, s.ScrollY, 300.0)

	settle(s)
	assert.Equal(t, 300.0, s.ScrollY)
}

func TestScrollStateOverscroll(t *testing.T) {
	s := &ScrollState{MaxScroll: 500, Overscroll: true}
	s.ScrollBy(-60)
	assert.Equal(t, -30.0, s.ScrollOffset())
	assert.Equal(t, 0.0, s.TargetScrollY)

	s.ScrollBy(-1000)
	assert.Equal(t, -float64(OverscrollLimit), s.ScrollOffset())

	settle(s)
	assert.Equal(t, 0.0, s.ScrollOffset(), "springs back to the top")

	plain := &ScrollState{MaxScroll: 500}
	plain.ScrollBy(-60)
	assert.Equal(t, 0.0, plain.ScrollOffset())
}

func TestScrollStateLockedIgnoresInput(t *testing.T) {
	s := &ScrollState{MaxScroll: 500}
	s.SetScrollPosition(120)

	h := scrolllock.Acquire(s)
	s.ScrollBy(200)
	assert.Equal(t, 120.0, s.TargetScrollY)

	s.SetScrollPosition(0)
	h.Release()
	assert.False(t, s.Locked)
	assert.Equal(t, 120.0, s.ScrollPosition(), "position restored on release")
}

func TestEnsureRowVisible(t *testing.T) {
	s := &ScrollState{MaxScroll: 5000}
	s.EnsureRowVisible(3, GridTop, 800)
	assert.Equal(t, float64(GridTop+4*GridRowHeight-800), s.TargetScrollY)

	s.EnsureRowVisible(0, GridTop, 800)
	assert.Equal(t, 0.0, s.TargetScrollY)
}

func TestSetMaxScrollPullsTargetIn(t *testing.T) {
	s := &ScrollState{MaxScroll: 500, TargetScrollY: 400}
	s.SetMaxScroll(200)
	assert.Equal(t, 200.0, s.TargetScrollY)
	s.SetMaxScroll(-10)
	assert.Equal(t, 0.0, s.MaxScroll)
}
