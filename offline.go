package chime

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lumenfield/chime/internal/reverb"
	"github.com/lumenfield/chime/internal/synth"
	"github.com/lumenfield/chime/internal/tone"
)

// RenderStrike renders a single strike at (x, y) on a width x height surface
// through the full graph (mapper -> synth -> reverb bus -> master) without an
// audio device. Returns interleaved stereo float32 samples.
func RenderStrike(x, y, width, height float64, sampleRate int, seconds float64) ([]float32, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("chime: sample rate must be positive, got %d", sampleRate)
	}
	if seconds <= 0 {
		return nil, fmt.Errorf("chime: duration must be positive, got %f", seconds)
	}
	bus, err := reverb.NewBus(sampleRate)
	if err != nil {
		return nil, err
	}
	eng := synth.New(sampleRate, synth.DefaultParams(), bus)
	eng.Trigger(tone.Map(x, y, width, height), 0)

	frames := int(float64(sampleRate) * seconds)
	out := make([]float32, frames*2)
	eng.Process(out)
	return out, nil
}

// EncodeWAV wraps interleaved float32 samples in a 32-bit float WAV
// container (format tag 3).
func EncodeWAV(samples []float32, sampleRate, channels int) []byte {
	dataSize := len(samples) * 4
	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	writeU32(&buf, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeU32(&buf, 16)
	writeU16(&buf, 3) // IEEE float
	writeU16(&buf, uint16(channels))
	writeU32(&buf, uint32(sampleRate))
	writeU32(&buf, uint32(sampleRate*channels*4))
	writeU16(&buf, uint16(channels*4))
	writeU16(&buf, 32)

	buf.WriteString("data")
	writeU32(&buf, uint32(dataSize))
	for _, s := range samples {
		writeU32(&buf, math.Float32bits(s))
	}
	return buf.Bytes()
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
