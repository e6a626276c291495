package ripple

// Per-tick update constants. At a 60 Hz display a ripple lives
// InitialAlpha/AlphaStep = 100 ticks, a bit under two seconds.
const (
	RadiusStep   = 2.5
	AlphaStep    = 0.005
	InitialAlpha = 0.5
)

// Ripple is one expanding, fading ring. Radius grows and alpha shrinks by a
// fixed step each tick until alpha reaches zero.
type Ripple struct {
	X, Y   float64
	Radius float64
	Alpha  float64
	Hue    float64 // degrees, set by the tone mapper alongside the pitch
	Birth  int     // tick count at spawn
}

// System owns the ripple collection exclusively; nothing else reads or
// mutates it.
type System struct {
	ripples []Ripple
	ticks   int
}

// Spawn appends a fresh ring at the strike point.
func (s *System) Spawn(x, y, hue float64) {
	s.ripples = append(s.ripples, Ripple{
		X:     x,
		Y:     y,
		Alpha: InitialAlpha,
		Hue:   hue,
		Birth: s.ticks,
	})
}

// Tick advances every ripple one step and prunes the expired ones, rebuilding
// the collection in place rather than splicing mid-iteration. Steps are
// recomputed from each ripple's age so the lifetime is exact regardless of
// accumulated float error. Reports whether any ripples survive.
func (s *System) Tick() bool {
	s.ticks++
	alive := s.ripples[:0]
	for _, r := range s.ripples {
		age := float64(s.ticks - r.Birth)
		r.Radius = RadiusStep * age
		r.Alpha = InitialAlpha - AlphaStep*age
		if r.Alpha <= 0 {
			continue
		}
		alive = append(alive, r)
	}
	s.ripples = alive
	return len(s.ripples) > 0
}

// Len returns the number of live ripples.
func (s *System) Len() int { return len(s.ripples) }

// Ripples exposes the live collection for rendering. Callers must not
// retain the slice across ticks.
func (s *System) Ripples() []Ripple { return s.ripples }

// Clear drops every ripple. Used on teardown.
func (s *System) Clear() { s.ripples = s.ripples[:0] }
