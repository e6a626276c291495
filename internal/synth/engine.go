package synth

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"

	"github.com/lumenfield/chime/internal/reverb"
	"github.com/lumenfield/chime/internal/tone"
)

const twoPi = math.Pi * 2

// Params holds the fixed envelope and routing constants of the instrument.
type Params struct {
	MasterGain float64 // output level after the reverb bus
	FilterQ    float64 // resonance of the per-voice lowpass

	AttackSec  float64 // linear ramp 0 -> PeakLevel
	PeakLevel  float64
	DecaySec   float64 // exponential ramp down to DecayFloor
	DecayFloor float64
	StopSec    float64 // primary voice hard stop

	HarmonicDecaySec float64
	HarmonicStopSec  float64
}

func DefaultParams() Params {
	return Params{
		MasterGain:       0.15,
		FilterQ:          1.0,
		AttackSec:        0.01,
		PeakLevel:        0.3,
		DecaySec:         2.5,
		DecayFloor:       0.001,
		StopSec:          3.0,
		HarmonicDecaySec: 1.5,
		HarmonicStopSec:  2.5,
	}
}

// voice is one scheduled oscillator with its own envelope. Primary voices
// carry a lowpass filter; harmonic voices run unfiltered at double the
// mapped frequency. Voices are fire-and-forget: once past stopSample they
// deactivate themselves and are swap-removed by the render loop.
type voice struct {
	freq     float64
	phase    float64
	triangle bool

	filter *biquad.Section // nil for harmonic voices

	peak        float64
	env         float64
	attackStep  float64
	decayMul    float64
	startSample int64
	attackEnd   int64
	stopSample  int64
}

// Engine renders triggered notes into an interleaved stereo float32 stream.
// It implements the audio SampleSource contract: Process is pulled from the
// audio goroutine while Trigger arrives from the input thread, so the voice
// list is mutex-guarded. All scheduling is expressed in absolute sample
// time against the engine clock; nothing is awaited.
type Engine struct {
	mu         sync.Mutex
	sampleRate float64
	params     Params
	bus        *reverb.Bus
	voices     []voice
	clock      int64
	masterGain uint64 // float64 bits, read atomically on the audio path

	dry []float64
	wet []float64
}

// New creates an engine feeding the given reverb bus. The bus is the only
// shared resource; it must outlive the engine.
func New(sampleRate int, params Params, bus *reverb.Bus) *Engine {
	return &Engine{
		sampleRate: float64(sampleRate),
		params:     params,
		bus:        bus,
		masterGain: math.Float64bits(params.MasterGain),
	}
}

// Trigger schedules one strike. delaySeconds offsets the start from the
// current engine clock (0 = next rendered sample). Never fails: the mapper
// guarantees params are valid, and an unready graph is the caller's gate.
func (e *Engine) Trigger(p tone.Params, delaySeconds float64) {
	if delaySeconds < 0 {
		delaySeconds = 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	start := e.clock + int64(delaySeconds*e.sampleRate)

	cutoff := p.FilterCutoff
	if nyquist := e.sampleRate / 2; cutoff >= nyquist {
		cutoff = nyquist * 0.99
	}
	primary := e.newVoice(p.Frequency, e.params.PeakLevel, start,
		e.params.DecaySec, e.params.StopSec)
	primary.triangle = p.Shape == tone.ShapeWarm
	primary.filter = biquad.NewSection(design.Lowpass(cutoff, e.params.FilterQ, e.sampleRate))
	e.voices = append(e.voices, primary)

	if p.HarmonicEnabled && p.HarmonicGain > 0 {
		harm := e.newVoice(p.Frequency*2, p.HarmonicGain, start,
			e.params.HarmonicDecaySec, e.params.HarmonicStopSec)
		e.voices = append(e.voices, harm)
	}
}

func (e *Engine) newVoice(freq, peak float64, start int64, decaySec, stopSec float64) voice {
	attackSamples := e.params.AttackSec * e.sampleRate
	if attackSamples < 1 {
		attackSamples = 1
	}
	decaySamples := (decaySec - e.params.AttackSec) * e.sampleRate
	if decaySamples < 1 {
		decaySamples = 1
	}
	return voice{
		freq:        freq,
		peak:        peak,
		attackStep:  peak / attackSamples,
		decayMul:    math.Pow(e.params.DecayFloor/peak, 1/decaySamples),
		startSample: start,
		attackEnd:   start + int64(attackSamples),
		stopSample:  start + int64(stopSec*e.sampleRate),
	}
}

// Process renders len(dst)/2 frames of interleaved stereo. Dry voice output
// is convolved through the reverb bus, then scaled by the master gain; notes
// never bypass the bus.
func (e *Engine) Process(dst []float32) {
	frames := len(dst) / 2
	if frames == 0 {
		return
	}

	e.mu.Lock()
	if cap(e.dry) < frames {
		e.dry = make([]float64, frames)
		e.wet = make([]float64, frames)
	}
	dry := e.dry[:frames]
	wet := e.wet[:frames]

	for f := 0; f < frames; f++ {
		var sum float64
		for i := 0; i < len(e.voices); {
			v := &e.voices[i]
			if e.clock >= v.stopSample {
				// Self-terminating stop: drop the voice, swap in the tail.
				e.voices[i] = e.voices[len(e.voices)-1]
				e.voices = e.voices[:len(e.voices)-1]
				continue
			}
			if e.clock >= v.startSample {
				sum += v.render(e.clock, e.sampleRate)
			}
			i++
		}
		dry[f] = sum
		e.clock++
	}
	e.mu.Unlock()

	_ = e.bus.Process(wet, dry)

	gain := e.masterGainValue()
	for f := 0; f < frames; f++ {
		s := clamp(wet[f]*gain, -1, 1)
		dst[2*f] = float32(s)
		dst[2*f+1] = float32(s)
	}
}

// render advances the voice by one sample and returns its contribution.
func (v *voice) render(clock int64, sampleRate float64) float64 {
	if clock < v.attackEnd {
		v.env += v.attackStep
		if v.env > v.peak {
			v.env = v.peak
		}
	} else {
		v.env *= v.decayMul
	}

	v.phase += v.freq / sampleRate
	if v.phase >= 1 {
		v.phase -= 1
	}
	var s float64
	if v.triangle {
		s = 2*math.Abs(2*v.phase-1) - 1
	} else {
		s = math.Sin(twoPi * v.phase)
	}
	if v.filter != nil {
		s = v.filter.ProcessSample(s)
	}
	return s * v.env
}

// Silence cancels every scheduled voice immediately. Used on teardown; the
// reverb tail of already-rendered samples still rings out of the bus.
func (e *Engine) Silence() {
	e.mu.Lock()
	e.voices = e.voices[:0]
	e.mu.Unlock()
}

// ActiveVoices reports how many voices are still scheduled or sounding.
func (e *Engine) ActiveVoices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voices)
}

// SetMasterGain adjusts the output level. Lock-free, safe from any thread.
func (e *Engine) SetMasterGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	atomic.StoreUint64(&e.masterGain, math.Float64bits(gain))
}

// MasterGain returns the current output level.
func (e *Engine) MasterGain() float64 { return e.masterGainValue() }

func (e *Engine) masterGainValue() float64 {
	return math.Float64frombits(atomic.LoadUint64(&e.masterGain))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
