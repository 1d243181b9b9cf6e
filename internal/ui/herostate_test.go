package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDrawerOpensAndCloses(t *testing.T) {
	t0 := time.Unix(1000, 0)
	d := NewDrawer(t0, 300*time.Millisecond)

	assert.Equal(t, 1.0, d.Offset(t0))
	mid := d.Offset(t0.Add(150 * time.Millisecond))
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)
	assert.Equal(t, 0.0, d.Offset(t0.Add(300*time.Millisecond)))
	assert.False(t, d.Done(t0.Add(time.Hour)), "an open drawer is never done")

	closeAt := t0.Add(time.Second)
	assert.True(t, d.RequestClose(closeAt))
	assert.False(t, d.RequestClose(closeAt.Add(10*time.Millisecond)), "second close request is ignored")
	assert.True(t, d.Closing())

	assert.Equal(t, 0.0, d.Offset(closeAt))
	assert.False(t, d.Done(closeAt.Add(299*time.Millisecond)))
	assert.True(t, d.Done(closeAt.Add(300*time.Millisecond)))
	assert.Equal(t, 1.0, d.Offset(closeAt.Add(300*time.Millisecond)))
}

func TestDrawerCloseWhileOpening(t *testing.T) {
	t0 := time.Unix(1000, 0)
	d := NewDrawer(t0, 300*time.Millisecond)

	closeAt := t0.Add(50 * time.Millisecond)
	from := d.Offset(closeAt)
	d.RequestClose(closeAt)
	assert.InDelta(t, from, d.Offset(closeAt), 1e-9, "no jump when reversing")
	assert.GreaterOrEqual(t, d.Offset(closeAt.Add(100*time.Millisecond)), from)
}

func TestDrawerZeroDuration(t *testing.T) {
	t0 := time.Unix(1000, 0)
	d := NewDrawer(t0, 0)
	assert.Equal(t, 0.0, d.Offset(t0))
	d.RequestClose(t0)
	assert.True(t, d.Done(t0))
}

func TestPresentationString(t *testing.T) {
	assert.Equal(t, "modal", PresentModal.String())
	assert.Equal(t, "page", PresentPage.String())
}
