package ripple

import (
	"math"
	"testing"
)

func TestRippleLivesExactly100Ticks(t *testing.T) {
	var s System
	s.Spawn(10, 20, 340)

	ticks := int(math.Ceil(InitialAlpha / AlphaStep))
	for i := 1; i < ticks; i++ {
		if !s.Tick() {
			t.Fatalf("ripple expired early at tick %d", i)
		}
	}
	if s.Tick() {
		t.Fatalf("ripple should expire exactly on tick %d", ticks)
	}
	if s.Len() != 0 {
		t.Fatalf("expired ripple not pruned, %d left", s.Len())
	}
}

func TestTickAdvancesRadiusAndAlpha(t *testing.T) {
	var s System
	s.Spawn(0, 0, 350)
	s.Tick()
	r := s.Ripples()[0]
	if r.Radius != RadiusStep {
		t.Errorf("radius = %f, want %f", r.Radius, RadiusStep)
	}
	if math.Abs(r.Alpha-(InitialAlpha-AlphaStep)) > 1e-12 {
		t.Errorf("alpha = %f, want %f", r.Alpha, InitialAlpha-AlphaStep)
	}

	s.Tick()
	r = s.Ripples()[0]
	if r.Radius != 2*RadiusStep {
		t.Errorf("radius after 2 ticks = %f, want %f", r.Radius, 2*RadiusStep)
	}
}

func TestAlphaStrictlyDecreases(t *testing.T) {
	var s System
	s.Spawn(0, 0, 350)
	prev := InitialAlpha
	for s.Tick() {
		a := s.Ripples()[0].Alpha
		if a >= prev {
			t.Fatalf("alpha did not decrease: %f -> %f", prev, a)
		}
		prev = a
	}
}

func TestStaggeredSpawnsExpireIndependently(t *testing.T) {
	var s System
	s.Spawn(0, 0, 330)
	for i := 0; i < 50; i++ {
		s.Tick()
	}
	s.Spawn(1, 1, 390)
	if s.Len() != 2 {
		t.Fatalf("expected 2 live ripples, got %d", s.Len())
	}
	for i := 0; i < 50; i++ {
		s.Tick()
	}
	if s.Len() != 1 {
		t.Fatalf("older ripple should be gone, %d left", s.Len())
	}
	for i := 0; i < 50; i++ {
		s.Tick()
	}
	if s.Len() != 0 {
		t.Fatalf("all ripples should be gone, %d left", s.Len())
	}
}

func TestClearEmptiesCollection(t *testing.T) {
	var s System
	for i := 0; i < 10; i++ {
		s.Spawn(float64(i), 0, 340)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("clear left %d ripples", s.Len())
	}
}
