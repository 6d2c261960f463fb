package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"kerr-renderer/internal/mathutil"
	"kerr-renderer/internal/raster"
)

const (
	starTiling     = 2.0
	starBrightness = 1.5
)

// Equirect maps a unit direction to panorama texture coordinates.
func Equirect(dir mgl64.Vec3) (u, v float64) {
	u = 0.5 + math.Atan2(dir[2], dir[0])/(2*math.Pi)
	v = 0.5 - math.Asin(mathutil.Clamp(dir[1], -1, 1))/math.Pi
	return u, v
}

// background is the sky seen along an escaped direction.
func (p *Program) background(dir mgl64.Vec3) raster.Color {
	u := &p.Uniforms
	su, sv := Equirect(dir)

	c := raster.SampleTexture(u.Textures.Background, su, sv, raster.WrapRepeat).
		Scale(u.BGIntensity)
	if u.ShowStars {
		s := raster.SampleTexture(u.Textures.Stars, su*starTiling, sv*starTiling, raster.WrapRepeat)
		c = c.Add(s.Scale(starBrightness * s.A))
	}
	c.A = 1
	return c
}
