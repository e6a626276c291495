// Package audio wraps the process-wide audio context and its single output
// destination. Multiple subsystems may acquire the context; only one is ever
// created, and acquisition failure is reported as an error the caller can
// degrade on rather than crash.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleSource produces interleaved stereo float32 frames on demand. Process
// runs on the audio goroutine; implementations keep work brief.
type SampleSource interface {
	Process(dst []float32)
}

// Provider yields the shared processing context. Acquire is idempotent:
// repeated calls return the same context, concurrent callers never build a
// second one.
type Provider interface {
	Acquire(sampleRate int) (Context, error)
}

// Context is the acquired processing context. NewOutput connects a source
// into the process-wide mix destination.
type Context interface {
	NewOutput(src SampleSource) (Output, error)
}

// Output is a playing connection into the destination node.
type Output interface {
	Play()
	Pause()
	Stop() error
}

// streamReader adapts a SampleSource to the byte stream the backend pulls:
// 32-bit little-endian float PCM, two channels.
type streamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8 // 2 channels x 4 bytes
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[i]))
	}
	return frames * 8, nil
}

func (r *streamReader) Close() error { return nil }

var _ io.ReadCloser = (*streamReader)(nil)

// The backend context is a true process singleton: the underlying driver
// only supports one context per process, so every provider instance shares
// these.
var (
	contextOnce sync.Once
	contextRate int
	context     *ebitaudio.Context
)

type ebitenProvider struct{}

// DefaultProvider returns the real backend provider.
func DefaultProvider() Provider { return ebitenProvider{} }

func (ebitenProvider) Acquire(sampleRate int) (Context, error) {
	contextOnce.Do(func() {
		contextRate = sampleRate
		context = ebitaudio.NewContext(sampleRate)
	})
	if contextRate != sampleRate {
		return nil, fmt.Errorf("audio: context already acquired at %d Hz (requested %d Hz)", contextRate, sampleRate)
	}
	return ebitenContext{ctx: context}, nil
}

type ebitenContext struct {
	ctx *ebitaudio.Context
}

func (c ebitenContext) NewOutput(src SampleSource) (Output, error) {
	pl, err := c.ctx.NewPlayerF32(&streamReader{source: src})
	if err != nil {
		return nil, fmt.Errorf("audio: output: %w", err)
	}
	return &ebitenOutput{player: pl}, nil
}

type ebitenOutput struct {
	player *ebitaudio.Player
}

func (o *ebitenOutput) Play()  { o.player.Play() }
func (o *ebitenOutput) Pause() { o.player.Pause() }

func (o *ebitenOutput) Stop() error {
	o.player.Pause()
	return o.player.Close()
}
