package tone

import "math"

// ReferencePitch is A4. Octave bands are expressed relative to it:
// band 4 plays the reference scale unshifted.
const ReferencePitch = 440.0

// Shape selects the primary oscillator waveform.
type Shape int

const (
	ShapePure Shape = iota // plain sine
	ShapeWarm              // triangle
	ShapeComplex           // sine with an octave harmonic layered on top
)

// degrees is the pentatonic offset table in semitones. Every mapped
// frequency lands on one of these, so no input can sound dissonant.
var degrees = [5]int{0, 2, 4, 7, 9}

// Params is the per-strike tone description handed to the synthesizer.
// Hue rides along for the companion ripple; it has no audio meaning.
type Params struct {
	Frequency       float64 // Hz, always on a scale degree in octave bands 3-5
	Shape           Shape
	FilterCutoff    float64 // Hz, lowpass cutoff for the primary voice
	HarmonicEnabled bool
	HarmonicGain    float64 // peak envelope level of the harmonic voice
	Hue             float64 // degrees, 330..390 (pink to gold)
}

// Map converts a pointer position on a width x height surface into tone
// parameters. Pure and total: any finite input yields a valid tone, out of
// range coordinates are clamped onto the surface.
func Map(x, y, width, height float64) Params {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	v := clamp01(1 - y/height) // 0 at bottom edge, 1 at top
	h := clamp01(x / width)

	octave := 3 + int(v*3)
	if octave > 5 {
		octave = 5
	}
	base := ReferencePitch * math.Pow(2, float64(octave-4))
	idx := int(v*5) % 5
	freq := base * math.Pow(2, float64(degrees[idx])/12)

	shape := ShapePure
	switch {
	case h < 0.3:
		shape = ShapePure
	case h < 0.6:
		shape = ShapeWarm
	default:
		shape = ShapeComplex
	}

	// The harmonic threshold (0.4) deliberately overlaps the shape bands:
	// a warm triangle between 0.4 and 0.6 still carries a harmonic.
	harmonic := shape == ShapeComplex
	if h > 0.4 {
		harmonic = true
	}

	return Params{
		Frequency:       freq,
		Shape:           shape,
		FilterCutoff:    1000 + v*4000,
		HarmonicEnabled: harmonic,
		HarmonicGain:    0.05 * h,
		Hue:             330 + v*60,
	}
}

// clamp01 pins to [0,1] and maps NaN to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
