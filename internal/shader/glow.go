package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"kerr-renderer/internal/raster"
)

var glowColor = raster.Color{R: 1.0, G: 0.62, B: 0.3}

// glow is the halo hugging the shadow edge for a primary ray along dir.
func (p *Program) glow(dir mgl64.Vec3) raster.Color {
	gi := p.Uniforms.GlowIntensity
	if gi <= 0 || p.d.centerDir == (mgl64.Vec3{}) {
		return raster.Color{}
	}
	alpha := p.d.shadowAngle
	theta := math.Acos(math.Max(-1, math.Min(1, dir.Dot(p.d.centerDir))))
	w := math.Max(0.25*alpha, 1e-3)
	return glowColor.Scale(gi * math.Exp(-math.Abs(theta-alpha)/w))
}

const (
	jetHalfAngle  = 0.12 // radians
	jetLength     = 12.0
	jetSpeed      = 0.6
	jetBrightness = 0.35
)

var jetColor = raster.Color{R: 0.55, G: 0.7, B: 1.0}

// jetEmission is the light a ray gathers over a step of length h at pos
// inside the polar jets. The jets launch along ±Y just above the horizon.
func (p *Program) jetEmission(pos, vel mgl64.Vec3, h float64) raster.Color {
	y := math.Abs(pos[1])
	base := 1.5 * p.d.horizon
	if y < base || y > jetLength {
		return raster.Color{}
	}
	rho := math.Hypot(pos[0], pos[2])
	cone := y * math.Tan(jetHalfAngle)
	if rho > cone {
		return raster.Color{}
	}

	density := math.Exp(-2*rho/cone) * (1 - y/jetLength)
	e := density * jetBrightness * h
	if p.Uniforms.Beaming {
		dir := mgl64.Vec3{0, math.Copysign(jetSpeed, pos[1]), 0}
		d := DopplerFactor(dir, vel.Mul(-1))
		e *= math.Min(d*d*d, maxBeaming)
	}
	c := jetColor.Scale(e)
	c.A = 0
	return c
}
