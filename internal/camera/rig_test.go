package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

// near compares with an absolute tolerance; mgl64's relative threshold
// never accepts rounding noise against an exact zero component.
func near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestClampDistance(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl64.Vec3
		want mgl64.Vec3
	}{
		{"too far", mgl64.Vec3{0, 0, 30}, mgl64.Vec3{0, 0, 15}},
		{"too near", mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 5, 0}},
		{"inside", mgl64.Vec3{3, 4, 6}, mgl64.Vec3{3, 4, 6}},
		{"origin", mgl64.Vec3{}, mgl64.Vec3{0, 0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			r.Position = tt.pos
			r.ClampDistance()
			if !near(r.Position, tt.want, eps) {
				t.Errorf("ClampDistance(%v) = %v, want %v", tt.pos, r.Position, tt.want)
			}
		})
	}
}

func TestClampDistanceExact(t *testing.T) {
	r := New()
	r.Position = mgl64.Vec3{0, 0, 30}
	r.ClampDistance()
	if r.Distance() != 15 {
		t.Errorf("distance = %v, want exactly 15", r.Distance())
	}
}

func TestInitializeAimsAtOrigin(t *testing.T) {
	r := New()
	if !near(r.Position, mgl64.Vec3{0, 1, 10}, eps) {
		t.Fatalf("initial position = %v", r.Position)
	}
	want := mgl64.Vec3{0, -1, -10}.Normalize()
	if !near(r.Forward, want, eps) {
		t.Errorf("forward = %v, want %v", r.Forward, want)
	}
	if math.Abs(r.Up.Dot(r.Forward)) > eps {
		t.Errorf("up not orthogonal to forward: %v", r.Up.Dot(r.Forward))
	}

	// The up vector is rolled 25° away from the untilted one.
	flat := tiltedUp(r.Forward, 0)
	got := mgl64.RadToDeg(math.Acos(r.Up.Dot(flat)))
	if math.Abs(got-25) > 1e-6 {
		t.Errorf("tilt = %v°, want 25°", got)
	}
}

func TestAdvanceOrbit(t *testing.T) {
	r := New()
	if r.AdvanceOrbit(1) {
		t.Fatal("orbit advanced while disabled")
	}

	r.Orbit = true
	if !r.AdvanceOrbit(0) {
		t.Fatal("orbit did not advance")
	}
	if !near(r.Position, mgl64.Vec3{0, 1, 9.5}, eps) {
		t.Errorf("orbit at t=0: %v", r.Position)
	}

	quarter := math.Pi / 2 / r.OrbitSpeed
	r.AdvanceOrbit(quarter)
	if !near(r.Position, mgl64.Vec3{9.5, 1, 0}, 1e-6) {
		t.Errorf("orbit at quarter turn: %v", r.Position)
	}
	if !near(r.Forward, r.Position.Mul(-1).Normalize(), eps) {
		t.Errorf("orbit did not re-aim: %v", r.Forward)
	}
}

func TestOrbitRadiusStaysInBand(t *testing.T) {
	r := New()
	r.Orbit = true
	for _, rad := range []float64{0.5, 9.5, 15, 40} {
		r.OrbitRadius = rad
		for _, tm := range []float64{0, 1.3, 7.7} {
			r.AdvanceOrbit(tm)
			if d := r.Distance(); d < r.MinDistance-eps || d > r.MaxDistance+eps {
				t.Errorf("radius %v t=%v: distance %v", rad, tm, d)
			}
		}
	}
}

func TestRotateKeepsDistance(t *testing.T) {
	r := New()
	before := r.Distance()
	r.Rotate(0.7, 0.3)
	if math.Abs(r.Distance()-before) > 1e-9 {
		t.Errorf("distance %v -> %v", before, r.Distance())
	}

	// Large pitch stops short of the pole.
	r.Rotate(0, 10)
	elev := math.Asin(r.Position[1] / r.Distance())
	if elev > maxElevation+1e-9 {
		t.Errorf("elevation %v beyond limit", elev)
	}
}

func TestZoomClamps(t *testing.T) {
	r := New()
	r.Zoom(100)
	if math.Abs(r.Distance()-15) > eps {
		t.Errorf("zoom out: distance %v", r.Distance())
	}
	r.Zoom(0.01)
	if math.Abs(r.Distance()-5) > eps {
		t.Errorf("zoom in: distance %v", r.Distance())
	}
	r.Zoom(0)
	if math.Abs(r.Distance()-5) > eps {
		t.Errorf("zero zoom moved the camera: %v", r.Distance())
	}
}

func TestObserveVelocity(t *testing.T) {
	r := New()
	r.Observe(1)
	if r.Velocity != (mgl64.Vec3{}) {
		t.Fatalf("velocity after first observation: %v", r.Velocity)
	}
	r.Position = r.Position.Add(mgl64.Vec3{1, 0, 0})
	r.Observe(1.5)
	if !near(r.Velocity, mgl64.Vec3{2, 0, 0}, eps) {
		t.Errorf("velocity = %v, want (2,0,0)", r.Velocity)
	}
}

func TestBasisOrthonormal(t *testing.T) {
	r := New()
	r.Rotate(1.1, -0.4)
	f, right, up := r.Basis()
	for _, v := range []mgl64.Vec3{f, right, up} {
		if math.Abs(v.Len()-1) > 1e-9 {
			t.Errorf("basis vector %v not unit", v)
		}
	}
	if math.Abs(f.Dot(right)) > 1e-9 || math.Abs(f.Dot(up)) > 1e-9 || math.Abs(right.Dot(up)) > 1e-9 {
		t.Errorf("basis not orthogonal: %v %v %v", f, right, up)
	}
}
