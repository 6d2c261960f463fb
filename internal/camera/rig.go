// Package camera holds the scene camera: position, aim, tilt, the automatic
// orbit and the distance clamp.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"kerr-renderer/internal/mathutil"
	"kerr-renderer/internal/params"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// maxElevation keeps pointer rotation away from the poles, where the
// look-at basis degenerates.
const maxElevation = 85 * math.Pi / 180

// Rig is the camera state. The zero value is not usable; call New.
type Rig struct {
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	Up       mgl64.Vec3
	// Velocity is the finite-difference velocity between the last two
	// Observe calls, in scene units per second.
	Velocity mgl64.Vec3

	MinDistance float64
	MaxDistance float64

	Orbit       bool
	OrbitRadius float64
	OrbitSpeed  float64
	OrbitHeight float64

	tilt     float64 // degrees
	lastPos  mgl64.Vec3
	lastTime float64
	observed bool
}

// New returns a rig at the initial scene camera, aimed at the origin.
func New() *Rig {
	r := &Rig{
		MinDistance: params.MinDistance,
		MaxDistance: params.MaxDistance,
		OrbitRadius: params.OrbitRadius,
		OrbitSpeed:  params.OrbitSpeed,
		OrbitHeight: params.OrbitHeight,
	}
	p := params.InitialCamera
	r.Initialize(mgl64.Vec3{p[0], p[1], p[2]}, true, params.TiltDegrees)
	return r
}

// Initialize places the camera at pos with its up vector rolled tiltDeg
// about the view axis. When lookAtOrigin is false the current forward
// vector is kept.
func (r *Rig) Initialize(pos mgl64.Vec3, lookAtOrigin bool, tiltDeg float64) {
	r.Position = pos
	r.tilt = tiltDeg
	if lookAtOrigin || r.Forward == (mgl64.Vec3{}) {
		r.aim()
	} else {
		r.Up = tiltedUp(r.Forward, r.tilt)
	}
	r.observed = false
	r.Velocity = mgl64.Vec3{}
}

func (r *Rig) aim() {
	f := mathutil.Normalize(r.Position.Mul(-1))
	if f == (mgl64.Vec3{}) {
		f = mgl64.Vec3{0, 0, -1}
	}
	r.Forward = f
	r.Up = tiltedUp(f, r.tilt)
}

// tiltedUp returns world up made orthogonal to f, rolled deg about f.
func tiltedUp(f mgl64.Vec3, deg float64) mgl64.Vec3 {
	ref := worldUp
	if math.Abs(f.Dot(ref)) > 0.999 {
		ref = mgl64.Vec3{0, 0, -1}
	}
	up := mathutil.Normalize(ref.Sub(f.Mul(f.Dot(ref))))
	return mathutil.RotateAbout(up, f, mgl64.DegToRad(deg))
}

// Distance is the camera's distance from the hole.
func (r *Rig) Distance() float64 {
	return r.Position.Len()
}

// ClampDistance scales the position into [MinDistance, MaxDistance]. A
// position at the origin moves to MinDistance along +Z.
func (r *Rig) ClampDistance() {
	d := r.Position.Len()
	switch {
	case d < 1e-9:
		r.Position = mgl64.Vec3{0, 0, r.MinDistance}
		r.aim()
	case d < r.MinDistance:
		r.Position = r.Position.Mul(r.MinDistance / d)
	case d > r.MaxDistance:
		r.Position = r.Position.Mul(r.MaxDistance / d)
	}
}

// orbitRadius limits the configured radius so the orbit path itself stays
// inside the distance band.
func (r *Rig) orbitRadius() float64 {
	h2 := r.OrbitHeight * r.OrbitHeight
	lo := math.Sqrt(math.Max(r.MinDistance*r.MinDistance-h2, 0))
	hi := math.Sqrt(math.Max(r.MaxDistance*r.MaxDistance-h2, 0))
	return mathutil.Clamp(r.OrbitRadius, lo, hi)
}

// AdvanceOrbit moves the camera along the automatic orbit for elapsed
// seconds since start and re-aims it. It reports whether the orbit is on.
func (r *Rig) AdvanceOrbit(elapsed float64) bool {
	if !r.Orbit {
		return false
	}
	a := elapsed * r.OrbitSpeed
	rad := r.orbitRadius()
	r.Position = mgl64.Vec3{math.Sin(a) * rad, r.OrbitHeight, math.Cos(a) * rad}
	r.aim()
	return true
}

// Rotate orbits the camera about the origin by yaw around world up and
// pitch around the camera's right axis, both in radians.
func (r *Rig) Rotate(dYaw, dPitch float64) {
	pos := mathutil.RotateAbout(r.Position, worldUp, dYaw)

	d := pos.Len()
	if d > 0 {
		elev := math.Asin(mathutil.Clamp(pos[1]/d, -1, 1))
		next := mathutil.Clamp(elev+dPitch, -maxElevation, maxElevation)
		_, right, _ := r.basisFor(pos)
		pos = mathutil.RotateAbout(pos, right, -(next - elev))
	}

	r.Position = pos
	r.aim()
	r.ClampDistance()
}

// Zoom scales the camera distance by factor and clamps it.
func (r *Rig) Zoom(factor float64) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	r.Position = r.Position.Mul(factor)
	r.ClampDistance()
}

// Basis returns the forward, right and up unit vectors.
func (r *Rig) Basis() (forward, right, up mgl64.Vec3) {
	right = mathutil.Normalize(r.Forward.Cross(r.Up))
	return r.Forward, right, r.Up
}

func (r *Rig) basisFor(pos mgl64.Vec3) (forward, right, up mgl64.Vec3) {
	forward = mathutil.Normalize(pos.Mul(-1))
	right = mathutil.Normalize(forward.Cross(worldUp))
	up = right.Cross(forward)
	return forward, right, up
}

// Observe records the position at time now (seconds) and updates Velocity.
func (r *Rig) Observe(now float64) {
	if r.observed && now > r.lastTime {
		r.Velocity = r.Position.Sub(r.lastPos).Mul(1 / (now - r.lastTime))
	}
	r.lastPos = r.Position
	r.lastTime = now
	r.observed = true
}
