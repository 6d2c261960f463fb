// Package postprocess holds the passes that run on a finished frame: bloom
// on the HDR buffer and supersample reduction of the encoded image.
package postprocess

import (
	"math"

	"kerr-renderer/internal/mathutil"
	"kerr-renderer/internal/raster"
)

// Levels is the depth of the bloom mip chain.
const Levels = 5

// knee is the width of the soft threshold ramp in luminance units.
const knee = 0.01

// levelFactors weight the mip levels from finest to coarsest before the
// radius mix.
var levelFactors = [Levels]float64{1.0, 0.8, 0.6, 0.4, 0.2}

// levelSigma is the Gaussian deviation of each level, in that level's
// pixels.
var levelSigma = [Levels]float64{1, 5.0 / 3, 7.0 / 3, 3, 11.0 / 3}

// Bloom adds a thresholded, multi-scale blur of the bright parts of an HDR
// frame back onto it. Scratch buffers are kept between frames and reused
// while the frame size is unchanged.
type Bloom struct {
	Enabled   bool
	Intensity float64
	Threshold float64
	Radius    float64
	Workers   int

	bright  *raster.FrameBuffer
	levels  [Levels]*raster.FrameBuffer
	scratch [Levels]*raster.FrameBuffer
	kernels [Levels][]float64
}

// NewBloom returns a bloom pass with the default settings.
func NewBloom() *Bloom {
	b := &Bloom{Enabled: true, Intensity: 1.5, Threshold: 0.3, Radius: 0.8}
	for i := range b.kernels {
		b.kernels[i] = GaussianKernel(levelSigma[i])
	}
	return b
}

// Configure updates the pass settings.
func (b *Bloom) Configure(enabled bool, intensity, threshold, radius float64) {
	b.Enabled = enabled
	b.Intensity = intensity
	b.Threshold = threshold
	b.Radius = radius
}

// Active reports whether Apply would change a frame.
func (b *Bloom) Active() bool {
	return b.Enabled && b.Intensity > 0
}

// LevelFactor is the weight of mip level i after the radius mix. Radius 0
// favours the fine levels, radius 1 the coarse ones. Radii past 1 can
// extrapolate below zero; such levels are dropped.
func LevelFactor(i int, radius float64) float64 {
	f := levelFactors[i]
	return math.Max(mathutil.Mix(f, 1.2-f, radius), 0)
}

// Apply blooms fb in place. A disabled pass leaves fb untouched.
func (b *Bloom) Apply(fb *raster.FrameBuffer) {
	if !b.Active() || fb.Width == 0 || fb.Height == 0 {
		return
	}
	b.allocate(fb.Width, fb.Height)

	b.extract(fb)
	src := b.bright
	for i := 0; i < Levels; i++ {
		halve(src, b.levels[i])
		blur(b.levels[i], b.scratch[i], b.kernels[i])
		src = b.levels[i]
	}

	var weights [Levels]float64
	for i := range weights {
		weights[i] = b.Intensity * LevelFactor(i, b.Radius)
	}

	w, h := float64(fb.Width), float64(fb.Height)
	raster.Dispatch(fb, b.Workers, func(x, y int) raster.Color {
		c := fb.At(x, y)
		u := (float64(x) + 0.5) / w
		v := (float64(y) + 0.5) / h
		for i, lvl := range b.levels {
			s := sampleBilinear(lvl, u, v)
			c.R += s.R * weights[i]
			c.G += s.G * weights[i]
			c.B += s.B * weights[i]
		}
		return c
	})
}

// Release drops the scratch buffers.
func (b *Bloom) Release() {
	b.bright = nil
	b.levels = [Levels]*raster.FrameBuffer{}
	b.scratch = [Levels]*raster.FrameBuffer{}
}

func (b *Bloom) allocate(w, h int) {
	if b.bright != nil && b.bright.Width == w && b.bright.Height == h {
		return
	}
	b.bright = raster.NewFrameBuffer(w, h)
	for i := 0; i < Levels; i++ {
		w, h = max(w/2, 1), max(h/2, 1)
		b.levels[i] = raster.NewFrameBuffer(w, h)
		b.scratch[i] = raster.NewFrameBuffer(w, h)
	}
}

// extract keeps pixels above the luminance threshold with a soft knee.
func (b *Bloom) extract(fb *raster.FrameBuffer) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			k := mathutil.Smoothstep(b.Threshold, b.Threshold+knee, c.Luminance())
			b.bright.Set(x, y, raster.Color{R: c.R * k, G: c.G * k, B: c.B * k, A: 1})
		}
	}
}

// GaussianKernel returns normalised weights of a 1D Gaussian with standard
// deviation sigma, 2·ceil(3σ)+1 taps wide.
func GaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	r := int(math.Ceil(sigma * 3))
	k := make([]float64, 2*r+1)
	twoSigma2 := 2 * sigma * sigma
	var sum float64
	for i := -r; i <= r; i++ {
		v := math.Exp(-float64(i*i) / twoSigma2)
		k[i+r] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// halve box-filters src into dst, which is about half its size.
func halve(src, dst *raster.FrameBuffer) {
	for y := 0; y < dst.Height; y++ {
		y0 := min(2*y, src.Height-1)
		y1 := min(2*y+1, src.Height-1)
		for x := 0; x < dst.Width; x++ {
			x0 := min(2*x, src.Width-1)
			x1 := min(2*x+1, src.Width-1)
			c := src.At(x0, y0).Add(src.At(x1, y0)).Add(src.At(x0, y1)).Add(src.At(x1, y1))
			dst.Set(x, y, raster.Color{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: 1})
		}
	}
}

// blur applies the separable kernel k to fb in place, using tmp for the
// horizontal pass. Edges clamp.
func blur(fb, tmp *raster.FrameBuffer, k []float64) {
	r := len(k) / 2
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			var acc raster.Color
			for i, w := range k {
				sx := mathutil.ClampInt(x+i-r, 0, fb.Width-1)
				acc = acc.Add(fb.At(sx, y).Scale(w))
			}
			acc.A = 1
			tmp.Set(x, y, acc)
		}
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			var acc raster.Color
			for i, w := range k {
				sy := mathutil.ClampInt(y+i-r, 0, fb.Height-1)
				acc = acc.Add(tmp.At(x, sy).Scale(w))
			}
			acc.A = 1
			fb.Set(x, y, acc)
		}
	}
}

// sampleBilinear reads fb at normalised coordinates with edge clamping.
func sampleBilinear(fb *raster.FrameBuffer, u, v float64) raster.Color {
	fx := u*float64(fb.Width) - 0.5
	fy := v*float64(fb.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	at := func(x, y int) raster.Color {
		return fb.At(mathutil.ClampInt(x, 0, fb.Width-1), mathutil.ClampInt(y, 0, fb.Height-1))
	}
	c00, c10 := at(x0, y0), at(x0+1, y0)
	c01, c11 := at(x0, y0+1), at(x0+1, y0+1)

	mix := func(a, b, c, d float64) float64 {
		return (a*(1-dx)+b*dx)*(1-dy) + (c*(1-dx)+d*dx)*dy
	}
	return raster.Color{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
	}
}
