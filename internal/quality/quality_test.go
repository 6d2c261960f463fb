package quality

import "testing"

func TestSelect(t *testing.T) {
	if got := Select(false); got != High {
		t.Errorf("Select(false) = %v, want %v", got, High)
	}
	if got := Select(true); got != Low {
		t.Errorf("Select(true) = %v, want %v", got, Low)
	}
}

func TestProfileOrdering(t *testing.T) {
	if !(High.StepSize < Low.StepSize) {
		t.Errorf("high step %v should be smaller than low step %v", High.StepSize, Low.StepSize)
	}
	if !(High.Steps > Low.Steps) {
		t.Errorf("high steps %d should exceed low steps %d", High.Steps, Low.Steps)
	}
	if !(High.Segments > Low.Segments) {
		t.Errorf("high segments %d should exceed low segments %d", High.Segments, Low.Segments)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	start := Select(false)
	p := start
	for _, perf := range []bool{true, false} {
		p = Select(perf)
	}
	if p.StepSize != start.StepSize || p.Steps != start.Steps || p.Segments != start.Segments {
		t.Errorf("off→on→off = %v, want %v", p, start)
	}
}

func TestString(t *testing.T) {
	if got, want := Low.String(), "low(step=0.12 steps=140 segments=18)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
