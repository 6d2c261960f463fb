package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Normalize returns v scaled to unit length, or the zero vector when v is
// (nearly) zero. mgl64's Normalize divides by the length unguarded.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// MixVec3 linearly interpolates between a and b.
func MixVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// RotateAbout rotates v by angle (radians) around axis.
func RotateAbout(v, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	axis = Normalize(axis)
	if axis == (mgl64.Vec3{}) {
		return v
	}
	return mgl64.QuatRotate(angle, axis).Rotate(v)
}

// Finite reports whether every component of v is a finite number.
func Finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
