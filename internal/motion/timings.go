// Package motion sequences the staged reveal of the hero view:
// color, blur, image with Ken Burns zoom, then extended content and text.
package motion

import "time"

// Timings holds the fixed durations and delays of the reveal.
type Timings struct {
	// BlurDelay separates color resolution from the blur layer fading in.
	BlurDelay    time.Duration
	BlurDuration time.Duration

	// ImageDelay is measured from the moment both blur and image are ready.
	ImageDelay       time.Duration
	ImageDuration    time.Duration
	KenBurnsDuration time.Duration
	KenBurnsScale    float64

	// ContentDelay is measured from blur-ready.
	ContentDelay    time.Duration
	ContentDuration time.Duration
	ContentSlide    float64

	// Text delays are measured from the content anchor (blur-ready, or mount
	// when extraction is off). With a cached color they land 2.5s, 2.6s and
	// 2.7s after mount.
	TitleDelay          time.Duration
	TitleDuration       time.Duration
	TitleSlide          float64
	ButtonDelay         time.Duration
	ButtonDuration      time.Duration
	DescriptionDelay    time.Duration
	DescriptionDuration time.Duration
	DescriptionSlide    float64

	// ReducedMotion drops zoom and slides; parallax translate is disabled too.
	ReducedMotion bool
}

// DefaultTimings returns the full cinematic schedule.
func DefaultTimings() Timings {
	return Timings{
		BlurDelay:    200 * time.Millisecond,
		BlurDuration: 300 * time.Millisecond,

		ImageDelay:       1000 * time.Millisecond,
		ImageDuration:    2000 * time.Millisecond,
		KenBurnsDuration: 10000 * time.Millisecond,
		KenBurnsScale:    1.25,

		ContentDelay:    400 * time.Millisecond,
		ContentDuration: 500 * time.Millisecond,
		ContentSlide:    15,

		TitleDelay:          2300 * time.Millisecond,
		TitleDuration:       700 * time.Millisecond,
		TitleSlide:          8,
		ButtonDelay:         2400 * time.Millisecond,
		ButtonDuration:      500 * time.Millisecond,
		DescriptionDelay:    2500 * time.Millisecond,
		DescriptionDuration: 500 * time.Millisecond,
		DescriptionSlide:    4,
	}
}

// ReducedTimings returns plain short fades with near-zero text delays.
func ReducedTimings() Timings {
	return Timings{
		BlurDelay:    200 * time.Millisecond,
		BlurDuration: 200 * time.Millisecond,

		ImageDuration: 200 * time.Millisecond,
		KenBurnsScale: 1,

		ContentDuration: 300 * time.Millisecond,

		TitleDelay:          100 * time.Millisecond,
		TitleDuration:       200 * time.Millisecond,
		ButtonDelay:         125 * time.Millisecond,
		ButtonDuration:      200 * time.Millisecond,
		DescriptionDelay:    150 * time.Millisecond,
		DescriptionDuration: 200 * time.Millisecond,

		ReducedMotion: true,
	}
}

// TimingsFor picks the schedule for the reduced-motion preference.
func TimingsFor(reducedMotion bool) Timings {
	if reducedMotion {
		return ReducedTimings()
	}
	return DefaultTimings()
}
