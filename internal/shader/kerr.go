package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Units: Schwarzschild radius Rs = 1, so the mass is M = 0.5.
const (
	Mass = 0.5

	// criticalImpact is the Schwarzschild shadow radius 3√3/2 Rs.
	criticalImpact = 2.598076211353316

	// maxOrbitalSpeed caps disk material strictly below light speed.
	maxOrbitalSpeed = 0.99
)

// HorizonRadius is the outer event horizon r+ = M(1+√(1-a*²)) in Rs units.
func HorizonRadius(spin float64) float64 {
	a2 := spin * spin
	if a2 > 1 {
		a2 = 1
	}
	return Mass * (1 + math.Sqrt(1-a2))
}

// ShadowImpact is the approximate impact parameter of the shadow edge. It
// shrinks with |a*| following the horizon.
func ShadowImpact(spin float64) float64 {
	return criticalImpact * (0.8 + 0.2*HorizonRadius(spin))
}

// ShadowAngle is the angular radius of the shadow seen from distance dist.
func ShadowAngle(dist, spin float64) float64 {
	if dist <= 0 {
		return 0
	}
	s := ShadowImpact(spin) / dist
	if s >= 1 {
		return math.Pi / 2
	}
	return math.Asin(s)
}

// KeplerOmega is the prograde circular orbit angular velocity
// Ω = √M / (r^1.5 + a*·M^1.5). The denominator is bounded away from zero.
func KeplerOmega(r, spin float64) float64 {
	if r <= 0 {
		return 0
	}
	den := math.Pow(r, 1.5) + spin*math.Pow(Mass, 1.5)
	if den < 1e-3 {
		den = 1e-3
	}
	return math.Sqrt(Mass) / den
}

// OrbitalSpeed is Ω·r capped below the speed of light.
func OrbitalSpeed(r, spin float64) float64 {
	v := math.Abs(KeplerOmega(r, spin) * r)
	if v > maxOrbitalSpeed {
		v = maxOrbitalSpeed
	}
	return v
}

// DopplerFactor is δ = 1/(γ(1 - β·n)) for an emitter moving with velocity
// beta (|beta| < 1) and n the unit vector from emitter to observer.
func DopplerFactor(beta, n mgl64.Vec3) float64 {
	b2 := beta.Dot(beta)
	if b2 >= 1 {
		b2 = 0.9999
	}
	gamma := 1 / math.Sqrt(1-b2)
	den := gamma * (1 - beta.Dot(n))
	if den < 1e-6 {
		den = 1e-6
	}
	return 1 / den
}

// GravitationalDimming is √(1 - Rs/r), zero at or inside r = Rs.
func GravitationalDimming(r float64) float64 {
	if r <= 1 {
		return 0
	}
	return math.Sqrt(1 - 1/r)
}

// accel is the bending acceleration of a photon at x moving along v:
// -1.5·|x×v|²·x/r⁵ plus a frame-dragging twist about +Y that falls off as
// a*/r³.
func accel(x, v mgl64.Vec3, spin float64) mgl64.Vec3 {
	r2 := x.Dot(x)
	r := math.Sqrt(r2)
	r3 := r2 * r
	r5 := r3 * r2
	h := x.Cross(v)
	a := x.Mul(-1.5 * h.Dot(h) / r5)

	if spin != 0 {
		omega := 2 * spin * Mass * Mass / r3
		twist := mgl64.Vec3{0, 1, 0}.Cross(v).Mul(omega)
		a = a.Add(twist)
	}
	return a
}
