package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"kerr-renderer/internal/mathutil"
	"kerr-renderer/internal/raster"
)

// Shade returns the colour of pixel coordinate (fx, fy).
func (p *Program) Shade(fx, fy float64) raster.Color {
	o, d := p.Ray(fx, fy)
	return p.ShadeRay(o, d)
}

// ShadeRay returns the colour seen along an arbitrary primary ray.
func (p *Program) ShadeRay(origin, dir mgl64.Vec3) raster.Color {
	t := p.TraceRay(origin, dir)
	return p.compose(mathutil.Normalize(dir), t)
}

// Kernel adapts the program to raster.Dispatch, sampling pixel centres.
func (p *Program) Kernel() raster.Kernel {
	return func(x, y int) raster.Color {
		return p.Shade(float64(x)+0.5, float64(y)+0.5)
	}
}

func (p *Program) compose(primary mgl64.Vec3, t Trace) raster.Color {
	var r, g, b, cover float64

	switch t.Kind {
	case Horizon:
		cover = 1
	case Disk:
		disk := p.shadeDisk(t)
		bg := p.background(t.Direction)
		a := disk.A
		r = disk.R*a + bg.R*(1-a)
		g = disk.G*a + bg.G*(1-a)
		b = disk.B*a + bg.B*(1-a)
		cover = a + (1-a)*mathutil.Clamp01(bg.Luminance())
	default:
		bg := p.background(t.Direction)
		r, g, b = bg.R, bg.G, bg.B
		cover = mathutil.Clamp01(bg.Luminance())
	}

	extra := t.Jet.Add(p.glow(primary))
	r += extra.R
	g += extra.G
	b += extra.B

	out := raster.Color{R: finite(r), G: finite(g), B: finite(b), A: 1}
	if p.Uniforms.Transparent {
		out.A = mathutil.Clamp01(finite(cover + extra.Luminance()))
	}
	return out
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}
