package gate

import "testing"

func TestAcceptsInPlayableScene(t *testing.T) {
	g := New("garden", func() string { return "garden" })
	if !g.Accept(100, 100) {
		t.Fatal("strike in playable scene should pass")
	}
}

func TestRejectsOtherScenes(t *testing.T) {
	scene := "menu"
	g := New("garden", func() string { return scene })
	if g.Accept(100, 100) {
		t.Fatal("strike outside the playable scene should be rejected")
	}
	scene = "garden"
	if !g.Accept(100, 100) {
		t.Fatal("gate must poll the scene on every event")
	}
}

func TestInteractiveRegionsSwallowEvents(t *testing.T) {
	g := New("", nil)
	g.RegisterRegion(Region{X: 10, Y: 10, W: 50, H: 20})

	if g.Accept(30, 15) {
		t.Fatal("point inside a tagged region should be rejected")
	}
	if !g.Accept(30, 45) {
		t.Fatal("point outside the region should pass")
	}
	// Edges: left/top inclusive, right/bottom exclusive.
	if g.Accept(10, 10) {
		t.Fatal("left/top edge is inclusive")
	}
	if !g.Accept(60, 15) {
		t.Fatal("right edge is exclusive, x=W should pass")
	}
	if g.Accept(59.99, 15) {
		t.Fatal("just inside the right edge should be rejected")
	}
	if !g.Accept(9.99, 15) {
		t.Fatal("left of region should pass")
	}
}

func TestUnconfiguredGateAcceptsEverything(t *testing.T) {
	g := New("", nil)
	if !g.Accept(-5, 99999) {
		t.Fatal("gate with no scene and no regions accepts all")
	}
}
