package ripple

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const strokeWidth = 2

// Draw renders the controller's live ripples onto dst. It holds the
// collection lock for the duration of the pass so spawns from the input
// thread cannot tear the slice mid-iteration.
func (c *Controller) Draw(dst *ebiten.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sys.Draw(dst)
}

// Draw strokes every live ripple onto dst: an outer ring at the ripple's
// alpha and an inner ring at 60% radius with 30% of the alpha. Ring order
// does not matter, each particle is independent.
func (s *System) Draw(dst *ebiten.Image) {
	for i := range s.ripples {
		r := &s.ripples[i]
		vector.StrokeCircle(dst, float32(r.X), float32(r.Y), float32(r.Radius),
			strokeWidth, hueColor(r.Hue, r.Alpha), true)
		vector.StrokeCircle(dst, float32(r.X), float32(r.Y), float32(r.Radius*0.6),
			strokeWidth, hueColor(r.Hue, r.Alpha*0.3), true)
	}
}

// hueColor converts the mapper's hue (330..390 degrees) and an alpha into a
// fully saturated pastel stroke color.
func hueColor(hue, alpha float64) color.Color {
	c := colorful.Hsl(math.Mod(hue, 360), 1.0, 0.7)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(alpha*255 + 0.5),
	}
}
