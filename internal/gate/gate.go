package gate

// SceneFunc reports the currently active scene. Polled on every event; the
// gate never caches it.
type SceneFunc func() string

// Region is an opt-out capability tag attached to interactive surface areas
// (buttons, inputs, links) at construction time. Pointer events inside any
// registered region are swallowed before mapping or synthesis happens.
type Region struct {
	X, Y, W, H float64
}

func (r Region) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Gate filters raw pointer events. An event passes only when the active
// scene is the playable one and the point is outside every opt-out region.
type Gate struct {
	playable string
	scene    SceneFunc
	regions  []Region
}

// New creates a gate. A nil scene function disables the scene check, an
// empty playable name accepts every scene.
func New(playable string, scene SceneFunc) *Gate {
	return &Gate{playable: playable, scene: scene}
}

// RegisterRegion tags a rectangle as interactive.
func (g *Gate) RegisterRegion(r Region) {
	g.regions = append(g.regions, r)
}

// Accept decides whether a pointer event at (x, y) may play a note.
// Rejection has zero side effects.
func (g *Gate) Accept(x, y float64) bool {
	if g.playable != "" && g.scene != nil && g.scene() != g.playable {
		return false
	}
	for _, r := range g.regions {
		if r.contains(x, y) {
			return false
		}
	}
	return true
}
