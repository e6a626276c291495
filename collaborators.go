package chime

// Overlay receives discrete dream events as opaque tokens and manages its
// own fade-in/fade-out lifecycle. The instrument never inspects its state.
type Overlay interface {
	Notify(token string)
	SetVisible(visible bool)
	Teardown()
}

// AmbientTexture is a capability that may be entirely absent. SetState is
// only called while Available reports true.
type AmbientTexture interface {
	Available() bool
	SetState(state string)
}

// noopAmbient is the default when no texture collaborator is attached.
type noopAmbient struct{}

func (noopAmbient) Available() bool { return false }
func (noopAmbient) SetState(string) {}
