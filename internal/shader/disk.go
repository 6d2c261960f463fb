package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"kerr-renderer/internal/mathutil"
	"kerr-renderer/internal/raster"
)

const (
	// innerTemperature is the blackbody temperature at the inner edge.
	innerTemperature = 9000.0
	outerTemperature = 2500.0
	// referenceTemperature is the white point textures are shifted from.
	referenceTemperature = 6500.0

	// diskSpinRate scales Ω into texture rotation per unit of shader time.
	diskSpinRate = 8.0

	maxBeaming = 16.0

	// Edge fades start outside the band so crossings at either boundary
	// keep some coverage.
	innerFadeStart = -0.04
	innerFadeEnd   = 0.08
	outerFadeStart = 0.7
	outerFadeEnd   = 1.1
)

// shadeDisk returns the disk colour at a crossing, with alpha coverage.
func (p *Program) shadeDisk(t Trace) raster.Color {
	u := &p.Uniforms
	r := t.Radius
	width := math.Max(u.DiskWidth, 1e-6)
	s := mathutil.Clamp01((r - u.DiskInnerRadius) / width)

	// Prograde orbit about +Y.
	radial := mathutil.Normalize(t.Hit)
	tangent := mathutil.Normalize(mgl64.Vec3{0, 1, 0}.Cross(radial))
	beta := tangent.Mul(OrbitalSpeed(r, u.Spin))
	toObserver := t.Direction.Mul(-1)

	doppler := DopplerFactor(beta, toObserver)
	grav := GravitationalDimming(r)
	shift := grav
	if u.DopplerShift {
		shift *= doppler
	}

	var c raster.Color
	switch {
	case !u.UseDiskTexture:
		temp := innerTemperature * math.Pow(r/u.DiskInnerRadius, -0.75)
		c = Blackbody(temp * shift)
		c = c.Scale(math.Pow(u.DiskInnerRadius/r, 2))
		c.A = 1
	default:
		phi := math.Atan2(t.Hit[2], t.Hit[0])
		rot := KeplerOmega(r, u.Spin) * u.Time * diskSpinRate
		v := mathutil.Fract(phi/(2*math.Pi) - rot/(2*math.Pi))
		c = raster.SampleTexture(u.Textures.Disk, s, v, raster.WrapRepeat)
		if u.ThermalColormap {
			l := mathutil.Clamp01(c.Luminance())
			temp := mathutil.Mix(outerTemperature, innerTemperature, l)
			a := c.A
			c = Blackbody(temp * shift).Scale(l)
			c.A = a
		} else if u.DopplerShift {
			c = tint(c, doppler)
		}
	}

	intensity := grav * u.DiskIntensity
	if u.Beaming {
		intensity *= math.Min(doppler*doppler*doppler, maxBeaming)
	}
	c = c.Scale(intensity)

	c.A = mathutil.Clamp01(c.A * edgeAlpha(s))
	return c
}

// edgeAlpha is the soft inner and outer edge profile over the band
// coordinate s in [0, 1].
func edgeAlpha(s float64) float64 {
	return mathutil.Smoothstep(innerFadeStart, innerFadeEnd, s) *
		(1 - mathutil.Smoothstep(outerFadeStart, outerFadeEnd, s))
}

// tint recolours c as if its emitter's spectrum were shifted by factor.
func tint(c raster.Color, factor float64) raster.Color {
	ref := Blackbody(referenceTemperature)
	sh := Blackbody(referenceTemperature * factor)
	ratio := func(a, b float64) float64 {
		if b < 1e-6 {
			return 1
		}
		return math.Min(a/b, 3)
	}
	return raster.Color{
		R: c.R * ratio(sh.R, ref.R),
		G: c.G * ratio(sh.G, ref.G),
		B: c.B * ratio(sh.B, ref.B),
		A: c.A,
	}
}
