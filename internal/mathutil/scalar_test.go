package mathutil

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name      string
		e0, e1, x float64
		want      float64
	}{
		{"below", 0, 1, -1, 0},
		{"above", 0, 1, 2, 1},
		{"mid", 0, 1, 0.5, 0.5},
		{"degenerate below", 1, 1, 0.5, 0},
		{"degenerate at edge", 1, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(tt.e0, tt.e1, tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.e0, tt.e1, tt.x, got, tt.want)
			}
		})
	}
}

func TestFract(t *testing.T) {
	if got := Fract(-0.25); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Fract(-0.25) = %v, want 0.75", got)
	}
	if got := Fract(3); got != 0 {
		t.Errorf("Fract(3) = %v, want 0", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := Normalize(mgl64.Vec3{}); got != (mgl64.Vec3{}) {
		t.Errorf("Normalize(0) = %v, want zero vector", got)
	}
	got := Normalize(mgl64.Vec3{3, 0, 4})
	if math.Abs(got.Len()-1) > 1e-12 {
		t.Errorf("len = %v, want 1", got.Len())
	}
}

func TestRotateAbout(t *testing.T) {
	got := RotateAbout(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, math.Pi/2)
	want := mgl64.Vec3{0, 0, -1}
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("RotateAbout = %v, want %v", got, want)
	}
}
