package motion

import (
	"sync"
	"time"
)

// PhaseName identifies one stage of the reveal.
type PhaseName string

const (
	PhaseColor       PhaseName = "color"
	PhaseBlur        PhaseName = "blur"
	PhaseImage       PhaseName = "image"
	PhaseContent     PhaseName = "content"
	PhaseTitle       PhaseName = "title"
	PhaseButton      PhaseName = "button"
	PhaseDescription PhaseName = "description"
)

// AnimationPhase describes when a stage starts relative to mount.
// Start is only meaningful once Scheduled is set.
type AnimationPhase struct {
	Name      PhaseName
	Start     time.Duration
	Duration  time.Duration
	Scheduled bool
	Completed bool
}

// Layer is the resolved visual state of one element for a frame.
type Layer struct {
	Visible bool
	Opacity float64
	Scale   float64
	OffsetY float64
}

// Frame is everything the hero needs to draw at one instant.
type Frame struct {
	HasColor   bool
	BlurReady  bool
	ImageReady bool

	Blur        Layer
	Image       Layer
	Content     Layer
	Title       Layer
	Button      Layer
	Description Layer
}

// Sequencer turns readiness events into a deterministic per-frame schedule.
// Events carry the generation they were issued for; events from an earlier
// generation are dropped so a stale load can never advance a newer image.
type Sequencer struct {
	mu sync.Mutex

	clock      Clock
	timings    Timings
	extraction bool

	gen     uint64
	mountAt time.Time

	hasColor bool
	colorAt  time.Time
	failed   bool
	failedAt time.Time

	imageReady bool
	imageAt    time.Time
}

// NewSequencer starts a sequence at the clock's current time.
func NewSequencer(clock Clock, timings Timings, extractionEnabled bool) *Sequencer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Sequencer{
		clock:      clock,
		timings:    timings,
		extraction: extractionEnabled,
		gen:        1,
		mountAt:    clock.Now(),
	}
}

// Generation returns the id events must carry to be accepted.
func (s *Sequencer) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Timings returns the schedule in use.
func (s *Sequencer) Timings() Timings {
	return s.timings
}

// ExtractionEnabled reports whether the reveal waits for a color.
func (s *Sequencer) ExtractionEnabled() bool {
	return s.extraction
}

// Reset clears every readiness flag and replays the sequence from color.
// It returns the new generation.
func (s *Sequencer) Reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.mountAt = s.clock.Now()
	s.hasColor, s.colorAt = false, time.Time{}
	s.failed, s.failedAt = false, time.Time{}
	s.imageReady, s.imageAt = false, time.Time{}
	return s.gen
}

// ColorResolved records that the background color is known.
func (s *Sequencer) ColorResolved(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.hasColor || s.failed {
		return false
	}
	s.hasColor = true
	s.colorAt = s.clock.Now()
	return true
}

// ColorFailed records that no color will arrive for this generation. The
// image is then gated on its own load alone.
func (s *Sequencer) ColorFailed(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.hasColor || s.failed {
		return false
	}
	s.failed = true
	s.failedAt = s.clock.Now()
	return true
}

// ImageLoaded records that the full-resolution image finished loading.
func (s *Sequencer) ImageLoaded(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.imageReady {
		return false
	}
	s.imageReady = true
	s.imageAt = s.clock.Now()
	return true
}

// HasColor reports whether the current generation has a color.
func (s *Sequencer) HasColor() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasColor
}

// IsImageReady reports whether the current image has loaded.
func (s *Sequencer) IsImageReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageReady
}

// IsBlurReady reports whether the blur delay after the color has elapsed.
func (s *Sequencer) IsBlurReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.blurReadyAt()
	return ok && !s.clock.Now().Before(at)
}

// RevealAt returns when the hero image begins to fade in, if it is known.
func (s *Sequencer) RevealAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.gateAt()
	if !ok {
		return time.Time{}, false
	}
	return t.Add(s.timings.ImageDelay), true
}

func (s *Sequencer) blurReadyAt() (time.Time, bool) {
	if !s.hasColor {
		return time.Time{}, false
	}
	return s.colorAt.Add(s.timings.BlurDelay), true
}

// gateAt is the instant the hero image becomes visible. With extraction on
// it needs both blur-ready and image-ready.
func (s *Sequencer) gateAt() (time.Time, bool) {
	if !s.imageReady {
		return time.Time{}, false
	}
	if !s.extraction || s.failed {
		return s.imageAt, true
	}
	blurAt, ok := s.blurReadyAt()
	if !ok {
		return time.Time{}, false
	}
	if blurAt.After(s.imageAt) {
		return blurAt, true
	}
	return s.imageAt, true
}

// contentAnchor is the instant extended content and text delays count from.
// The flag reports whether content skips its own fade.
func (s *Sequencer) contentAnchor() (at time.Time, immediate, ok bool) {
	switch {
	case !s.extraction:
		return s.mountAt, true, true
	case s.failed:
		return s.failedAt, false, true
	}
	at, ok = s.blurReadyAt()
	return at, false, ok
}

// Frame resolves every layer at the clock's current time.
func (s *Sequencer) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	t := s.timings

	f := Frame{
		HasColor:   s.hasColor,
		ImageReady: s.imageReady,
		Image:      Layer{Scale: t.KenBurnsScale},
	}
	if f.Image.Scale == 0 {
		f.Image.Scale = 1
	}

	if at, ok := s.blurReadyAt(); ok && !now.Before(at) {
		f.BlurReady = true
		f.Blur = fade(now, at, t.BlurDuration, EaseOut, 0)
	}

	if at, ok := s.gateAt(); ok && !now.Before(at) {
		start := at.Add(t.ImageDelay)
		f.Image = fade(now, start, t.ImageDuration, AppleEaseOut, 0)
		f.Image.Visible = true
		if t.KenBurnsScale > 1 {
			kb := EaseOut(progress(now, start, t.KenBurnsDuration))
			f.Image.Scale = t.KenBurnsScale - (t.KenBurnsScale-1)*kb
		}
	}

	if anchor, immediate, ok := s.contentAnchor(); ok {
		if immediate {
			f.Content = Layer{Visible: true, Opacity: 1, Scale: 1}
		} else if !now.Before(anchor) {
			f.Content = fade(now, anchor.Add(t.ContentDelay), t.ContentDuration, Ease, t.ContentSlide)
			f.Content.Visible = true
		}
		f.Title = textLayer(now, anchor.Add(t.TitleDelay), t.TitleDuration, t.TitleSlide)
		f.Button = textLayer(now, anchor.Add(t.ButtonDelay), t.ButtonDuration, 0)
		f.Description = textLayer(now, anchor.Add(t.DescriptionDelay), t.DescriptionDuration, t.DescriptionSlide)
	}

	return f
}

// Phases reports the schedule of every stage for the current generation.
func (s *Sequencer) Phases() []AnimationPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	t := s.timings

	phase := func(name PhaseName, at time.Time, d time.Duration, ok bool) AnimationPhase {
		p := AnimationPhase{Name: name, Duration: d, Scheduled: ok}
		if ok {
			p.Start = at.Sub(s.mountAt)
			p.Completed = !now.Before(at.Add(d))
		}
		return p
	}

	blurAt, blurOK := s.blurReadyAt()
	gate, gateOK := s.gateAt()
	anchor, immediate, anchorOK := s.contentAnchor()
	contentAt, contentDur := anchor.Add(t.ContentDelay), t.ContentDuration
	if immediate {
		contentAt, contentDur = anchor, 0
	}

	return []AnimationPhase{
		phase(PhaseColor, s.colorAt, 0, s.hasColor),
		phase(PhaseBlur, blurAt, t.BlurDuration, blurOK),
		phase(PhaseImage, gate.Add(t.ImageDelay), t.ImageDuration, gateOK),
		phase(PhaseContent, contentAt, contentDur, anchorOK),
		phase(PhaseTitle, anchor.Add(t.TitleDelay), t.TitleDuration, anchorOK),
		phase(PhaseButton, anchor.Add(t.ButtonDelay), t.ButtonDuration, anchorOK),
		phase(PhaseDescription, anchor.Add(t.DescriptionDelay), t.DescriptionDuration, anchorOK),
	}
}

func progress(now, start time.Time, d time.Duration) float64 {
	if now.Before(start) {
		return 0
	}
	if d <= 0 {
		return 1
	}
	return clamp01(float64(now.Sub(start)) / float64(d))
}

func fade(now, start time.Time, d time.Duration, ease Easing, slide float64) Layer {
	p := ease(progress(now, start, d))
	return Layer{
		Visible: true,
		Opacity: p,
		Scale:   1,
		OffsetY: slide * (1 - p),
	}
}

func textLayer(now, start time.Time, d time.Duration, slide float64) Layer {
	if now.Before(start) {
		return Layer{Scale: 1, OffsetY: slide}
	}
	return fade(now, start, d, Ease, slide)
}
