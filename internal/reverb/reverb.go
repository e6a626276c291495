package reverb

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-dsp/dsp/conv"
	"github.com/cwbudde/algo-dsp/dsp/signal"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// TailSeconds is the impulse response length. Energy is exactly zero
	// past the buffer end.
	TailSeconds = 3

	// WetLevel scales the whole impulse, bounding every sample to
	// [-WetLevel, WetLevel].
	WetLevel = 0.3

	// minBlockOrder/maxBlockOrder configure the partitioned convolver.
	// Latency = 2^minBlockOrder samples, ~1.3 ms at 48 kHz.
	minBlockOrder = 6
	maxBlockOrder = 13
)

// BuildImpulse synthesizes the stochastic decay kernel: white noise shaped
// by a cubic fade, sample(i) = uniform(-1,1) * (1 - i/length)^3 * WetLevel.
// Deterministic for a given seed; length is always sampleRate * TailSeconds.
func BuildImpulse(sampleRate int, seed int64) []float64 {
	length := sampleRate * TailSeconds
	gen := signal.NewGeneratorWithOptions(nil, signal.WithSeed(seed))
	noise, err := gen.WhiteNoise(1.0, length)
	if err != nil {
		// Only reachable with a non-positive sample rate.
		return nil
	}
	env := make([]float64, length)
	for i := range env {
		t := float64(i) / float64(length)
		d := 1 - t
		env[i] = d * d * d * WetLevel
	}
	vecmath.MulBlockInPlace(noise, env)
	return noise
}

// Bus is the shared decay path every note feeds into. The impulse is built
// once at construction and never mutated; Process streams the dry note mix
// through the convolver.
type Bus struct {
	conv       *conv.PartitionedConvolution
	impulseLen int
}

// NewBus builds the process-wide reverb bus for the given sample rate.
func NewBus(sampleRate int) (*Bus, error) {
	return NewBusSeeded(sampleRate, rand.Int63())
}

// NewBusSeeded is NewBus with a caller-controlled noise seed.
func NewBusSeeded(sampleRate int, seed int64) (*Bus, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("reverb: sample rate must be positive, got %d", sampleRate)
	}
	ir := BuildImpulse(sampleRate, seed)
	pc, err := conv.NewPartitionedConvolution(ir, minBlockOrder, maxBlockOrder)
	if err != nil {
		return nil, fmt.Errorf("reverb: convolver init: %w", err)
	}
	return &Bus{conv: pc, impulseLen: len(ir)}, nil
}

// Process convolves one block of the dry mix into dst. Slices must be the
// same length. Output trails the input by Latency samples.
func (b *Bus) Process(dst, src []float64) error {
	return b.conv.ProcessBlock(src, dst)
}

// Latency returns the convolver latency in samples.
func (b *Bus) Latency() int { return b.conv.Latency() }

// ImpulseLen returns the kernel length in samples.
func (b *Bus) ImpulseLen() int { return b.impulseLen }

// Reset clears convolver state. The impulse itself is immutable.
func (b *Bus) Reset() { b.conv.Reset() }
