// Package chime is an ambient audio-visual instrument: a pointer strike at a
// 2D coordinate plays a pentatonic bell tone derived from the position and
// spawns an expanding, fading ring at the same point. No input can produce a
// dissonant note.
package chime

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lumenfield/chime/internal/audio"
	"github.com/lumenfield/chime/internal/gate"
	"github.com/lumenfield/chime/internal/reverb"
	"github.com/lumenfield/chime/internal/ripple"
	"github.com/lumenfield/chime/internal/synth"
	"github.com/lumenfield/chime/internal/tone"
)

const defaultSampleRate = 48000

type Option func(*config)

type config struct {
	sampleRate    int
	playableScene string
	scene         gate.SceneFunc
	provider      audio.Provider
	overlay       Overlay
	ambient       AmbientTexture
}

func defaultConfig() config {
	return config{
		sampleRate: defaultSampleRate,
		provider:   audio.DefaultProvider(),
		ambient:    noopAmbient{},
	}
}

// WithSampleRate sets the audio processing rate.
func WithSampleRate(rate int) Option {
	return func(cfg *config) {
		if rate > 0 {
			cfg.sampleRate = rate
		}
	}
}

// WithScene installs the scene query and names the only scene where strikes
// are accepted.
func WithScene(playable string, fn gate.SceneFunc) Option {
	return func(cfg *config) {
		cfg.playableScene = playable
		cfg.scene = fn
	}
}

// WithProvider swaps the audio context provider. Tests use this to count
// graph constructions or to simulate an unavailable device.
func WithProvider(p audio.Provider) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.provider = p
		}
	}
}

// WithOverlay attaches the dream-overlay collaborator. The instrument only
// forwards events; the overlay manages its own fade lifecycle.
func WithOverlay(o Overlay) Option {
	return func(cfg *config) { cfg.overlay = o }
}

// WithAmbientTexture attaches the ambient texture collaborator.
func WithAmbientTexture(a AmbientTexture) Option {
	return func(cfg *config) {
		if a != nil {
			cfg.ambient = a
		}
	}
}

// Instrument is the playable surface. All public methods are driven from the
// input and display callbacks; the audio graph is built lazily on the first
// accepted strike and at most once per session.
type Instrument struct {
	cfg  config
	gate *gate.Gate

	ripples *ripple.Controller

	viewW, viewH float64

	mu        sync.Mutex
	synth     *synth.Engine
	out       audio.Output
	ready     bool
	acquiring bool
	failed    bool
}

// NewInstrument builds an instrument with a 1x1 viewport; call SetViewport
// before the first strike.
func NewInstrument(opts ...Option) *Instrument {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Instrument{
		cfg:     cfg,
		gate:    gate.New(cfg.playableScene, cfg.scene),
		ripples: ripple.NewController(),
		viewW:   1,
		viewH:   1,
	}
}

// SetViewport re-derives the mapper's width/height inputs. Call on every
// surface resize.
func (in *Instrument) SetViewport(w, h float64) {
	if w > 0 {
		in.viewW = w
	}
	if h > 0 {
		in.viewH = h
	}
}

// RegisterRegion tags a rectangle of the surface as interactive; strikes
// inside it are ignored.
func (in *Instrument) RegisterRegion(x, y, w, h float64) {
	in.gate.RegisterRegion(gate.Region{X: x, Y: y, W: w, H: h})
}

// Strike plays the point (x, y): gate, map, synthesize, ripple. Rejected
// events have no side effects at all. When the audio graph is degraded or
// still being acquired the strike stays silent but the ripple still spawns.
func (in *Instrument) Strike(x, y float64) {
	if !in.gate.Accept(x, y) {
		return
	}
	p := tone.Map(x, y, in.viewW, in.viewH)
	if in.ensureReady() {
		in.mu.Lock()
		eng := in.synth
		in.mu.Unlock()
		eng.Trigger(p, 0)
	}
	in.ripples.Spawn(x, y, p.Hue)
}

// ensureReady builds the audio graph exactly once: acquire the shared
// context, build the reverb bus, wire synth -> reverb -> master -> output.
// Concurrent callers during acquisition drop out silently rather than build
// a second graph. Failure is permanent, silent degradation.
func (in *Instrument) ensureReady() bool {
	in.mu.Lock()
	if in.ready {
		in.mu.Unlock()
		return true
	}
	if in.failed || in.acquiring {
		in.mu.Unlock()
		return false
	}
	in.acquiring = true
	sampleRate := in.cfg.sampleRate
	in.mu.Unlock()

	ctx, err := in.cfg.provider.Acquire(sampleRate)
	if err != nil {
		return in.finishAcquire(nil, nil, false)
	}
	bus, err := reverb.NewBus(sampleRate)
	if err != nil {
		return in.finishAcquire(nil, nil, false)
	}
	eng := synth.New(sampleRate, synth.DefaultParams(), bus)
	out, err := ctx.NewOutput(eng)
	if err != nil {
		return in.finishAcquire(nil, nil, false)
	}
	out.Play()
	return in.finishAcquire(eng, out, true)
}

func (in *Instrument) finishAcquire(eng *synth.Engine, out audio.Output, ok bool) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.acquiring = false
	if !ok {
		in.failed = true
		return false
	}
	in.synth = eng
	in.out = out
	in.ready = true
	return true
}

// Available reports whether the audio capability is live. False before the
// first strike and forever after a failed acquisition.
func (in *Instrument) Available() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.ready
}

// SetMasterVolume scales the output level. 1.0 is the built-in default.
func (in *Instrument) SetMasterVolume(v float64) {
	in.mu.Lock()
	eng := in.synth
	in.mu.Unlock()
	if eng != nil {
		eng.SetMasterGain(synth.DefaultParams().MasterGain * v)
	}
}

// Step runs one animation tick. Call from the display refresh callback; it
// is free while no ripples are alive.
func (in *Instrument) Step() bool {
	return in.ripples.Step()
}

// Draw renders the live ripples onto dst.
func (in *Instrument) Draw(dst *ebiten.Image) {
	in.ripples.Draw(dst)
}

// Animating reports whether the render loop has work scheduled.
func (in *Instrument) Animating() bool {
	return in.ripples.State() == ripple.Running
}

// NotifyDream forwards a dream token to the overlay collaborator, if any.
func (in *Instrument) NotifyDream(token string) {
	if in.cfg.overlay != nil {
		in.cfg.overlay.Notify(token)
	}
}

// SetOverlayVisible toggles the overlay collaborator.
func (in *Instrument) SetOverlayVisible(visible bool) {
	if in.cfg.overlay != nil {
		in.cfg.overlay.SetVisible(visible)
	}
}

// SetAmbientState forwards a state change to the ambient texture when the
// capability is present.
func (in *Instrument) SetAmbientState(state string) {
	if in.cfg.ambient.Available() {
		in.cfg.ambient.SetState(state)
	}
}

// Teardown cancels every scheduled voice, stops the output, clears the
// particle collection and tears down the overlay. The instrument stays
// degraded afterwards.
func (in *Instrument) Teardown() {
	in.mu.Lock()
	eng, out := in.synth, in.out
	in.synth, in.out = nil, nil
	in.ready = false
	in.failed = true
	in.mu.Unlock()

	if eng != nil {
		eng.Silence()
	}
	if out != nil {
		_ = out.Stop()
	}
	in.ripples.Reset()
	if in.cfg.overlay != nil {
		in.cfg.overlay.Teardown()
	}
}
