package core

import "testing"

func TestInputFrameAxis(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionRight)

	x, z := f.Axis()
	if x != 1 || z != -1 {
		t.Errorf("Axis() = (%v, %v), expected (1, -1)", x, z)
	}

	f.Set(ActionLeft)
	x, _ = f.Axis()
	if x != 0 {
		t.Errorf("Opposing keys should cancel, got x=%v", x)
	}
}

func TestHeldInputExpires(t *testing.T) {
	h := NewHeldInput(3)
	h.Press(ActionLeft)

	for tick := 0; tick < 3; tick++ {
		f := NewInputFrame()
		h.Apply(&f)
		if !f.Has(ActionLeft) {
			t.Fatalf("tick %d: held action should still be active", tick)
		}
	}

	f := NewInputFrame()
	h.Apply(&f)
	if f.Has(ActionLeft) {
		t.Error("held action should expire after its window")
	}
}

func TestHeldInputOppositeReleases(t *testing.T) {
	h := NewHeldInput(10)
	h.Press(ActionUp)
	h.Press(ActionDown)

	f := NewInputFrame()
	h.Apply(&f)
	if f.Has(ActionUp) {
		t.Error("pressing Down should release Up")
	}
	if !f.Has(ActionDown) {
		t.Error("Down should be held")
	}
}

func TestActionString(t *testing.T) {
	if ActionInteract.String() != "Interact" {
		t.Errorf("ActionInteract.String() = %q", ActionInteract.String())
	}
	if Action(999).String() != "Unknown" {
		t.Error("unknown actions should stringify as Unknown")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatal("same seed should produce the same sequence")
		}
	}

	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(6); v < 0 || v >= 6 {
			t.Fatalf("Intn(6) = %d, out of range", v)
		}
	}
}
