package parallax

import (
	"errors"
	"fmt"
	"math"
)

// AspectRatio selects how the hero height is derived.
type AspectRatio string

const (
	// AspectFixed uses the configured fixed height.
	AspectFixed AspectRatio = ""
	// AspectAuto follows the natural ratio of the loaded image.
	AspectAuto AspectRatio = "auto"
	Aspect1x1  AspectRatio = "1/1"
	Aspect4x3  AspectRatio = "4/3"
	Aspect16x9 AspectRatio = "16/9"
	Aspect3x4  AspectRatio = "3/4"
)

var ErrUnknownAspectRatio = errors.New("unknown aspect ratio")

// ratios holds height/width for the named modes.
var ratios = map[AspectRatio]float64{
	Aspect1x1:  1,
	Aspect4x3:  3.0 / 4.0,
	Aspect16x9: 9.0 / 16.0,
	Aspect3x4:  4.0 / 3.0,
}

// ParseAspectRatio validates a configured aspect ratio.
func ParseAspectRatio(s string) (AspectRatio, error) {
	a := AspectRatio(s)
	if a == AspectFixed || a == AspectAuto {
		return a, nil
	}
	if _, ok := ratios[a]; ok {
		return a, nil
	}
	return AspectFixed, fmt.Errorf("%w: %q", ErrUnknownAspectRatio, s)
}

// Sizer computes the hero height H from the container width.
type Sizer struct {
	fixed   int
	aspect  AspectRatio
	natural float64
	width   int
	height  int
}

// NewSizer starts at fixedHeight until a width is known.
func NewSizer(fixedHeight int, aspect AspectRatio) *Sizer {
	return &Sizer{fixed: fixedHeight, aspect: aspect, height: fixedHeight}
}

// Height returns the last computed hero height.
func (s *Sizer) Height() int {
	return s.height
}

// Aspect returns the configured mode.
func (s *Sizer) Aspect() AspectRatio {
	return s.aspect
}

// Resize recomputes H for a new container width. A zero width means the
// container is not laid out yet; the previous height is kept.
func (s *Sizer) Resize(width int) int {
	if width <= 0 {
		return s.height
	}
	s.width = width
	s.recompute()
	return s.height
}

// SetNaturalSize records the image's natural dimensions for auto mode.
func (s *Sizer) SetNaturalSize(w, h int) int {
	if w > 0 && h > 0 {
		s.natural = float64(h) / float64(w)
		s.recompute()
	}
	return s.height
}

// ClearNaturalSize forgets the image ratio, e.g. when the image changes.
func (s *Sizer) ClearNaturalSize() {
	s.natural = 0
	s.recompute()
}

func (s *Sizer) recompute() {
	switch {
	case s.aspect == AspectFixed:
		s.height = s.fixed
	case s.width <= 0:
		return
	case s.aspect == AspectAuto && s.natural > 0:
		s.height = int(math.Round(float64(s.width) * s.natural))
	case s.aspect == AspectAuto:
		s.height = s.fixed
	default:
		s.height = int(math.Round(float64(s.width) * ratios[s.aspect]))
	}
}
