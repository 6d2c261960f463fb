package postprocess

import (
	"image"
	"image/color"
	"math"
	"slices"
	"testing"

	"kerr-renderer/internal/raster"
)

func filled(w, h int, c raster.Color) *raster.FrameBuffer {
	fb := raster.NewFrameBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fb.Set(x, y, c)
		}
	}
	return fb
}

func TestBloomPassThrough(t *testing.T) {
	tests := []struct {
		name      string
		enabled   bool
		intensity float64
		threshold float64
		fill      raster.Color
	}{
		{"disabled", false, 1.5, 0.3, raster.Color{R: 4, G: 4, B: 4, A: 1}},
		{"zero intensity", true, 0, 0.3, raster.Color{R: 4, G: 4, B: 4, A: 1}},
		{"below threshold", true, 1.5, 0.3, raster.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := filled(32, 16, tt.fill)
			fb.Set(5, 5, raster.Color{R: 0.2, G: 0.05, B: 0, A: 0.5})
			want := slices.Clone(fb.Pix)

			b := NewBloom()
			b.Configure(tt.enabled, tt.intensity, tt.threshold, 0.8)
			b.Apply(fb)

			if !slices.Equal(fb.Pix, want) {
				t.Error("frame changed")
			}
		})
	}
}

func TestBloomSpreadsBrightPixel(t *testing.T) {
	fb := raster.NewFrameBuffer(64, 64)
	fb.Set(32, 32, raster.Color{R: 50, G: 50, B: 50, A: 1})

	b := NewBloom()
	b.Apply(fb)

	if c := fb.At(32, 32); c.R <= 50 {
		t.Errorf("centre = %v, want brighter than 50", c.R)
	}
	if c := fb.At(36, 32); c.R <= 0 {
		t.Errorf("neighbour = %v, want glow", c.R)
	}
	if c := fb.At(36, 32); c.A != 0 {
		t.Errorf("bloom touched alpha: %v", c.A)
	}
	for i, v := range fb.Pix {
		if math.IsNaN(float64(v)) || v < 0 {
			t.Fatalf("pix[%d] = %v", i, v)
		}
	}
}

func TestGaussianKernel(t *testing.T) {
	for _, sigma := range []float64{1, 5.0 / 3, 11.0 / 3} {
		k := GaussianKernel(sigma)
		if want := 2*int(math.Ceil(3*sigma)) + 1; len(k) != want {
			t.Errorf("sigma %v: %d taps, want %d", sigma, len(k), want)
		}
		var sum float64
		for i := range k {
			sum += k[i]
			if math.Abs(k[i]-k[len(k)-1-i]) > 1e-15 {
				t.Errorf("sigma %v: kernel not symmetric", sigma)
			}
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("sigma %v: sum %v", sigma, sum)
		}
	}
	if k := GaussianKernel(0); len(k) != 1 || k[0] != 1 {
		t.Errorf("GaussianKernel(0) = %v", k)
	}
}

func TestLevelFactor(t *testing.T) {
	tests := []struct {
		level  int
		radius float64
		want   float64
	}{
		{0, 0, 1.0},
		{0, 1, 0.2},
		{4, 0, 0.2},
		{4, 1, 1.0},
		{0, 0.8, 0.36},
	}
	for _, tt := range tests {
		if got := LevelFactor(tt.level, tt.radius); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("LevelFactor(%d, %v) = %v, want %v", tt.level, tt.radius, got, tt.want)
		}
	}
}

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	if got := Downsample(src, 16, 16); got != src {
		t.Error("upscale target should return the input")
	}

	dst := Downsample(src, 4, 2)
	if b := dst.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	if c := dst.NRGBAAt(1, 1); c.R < 250 || c.G > 5 || c.A != 255 {
		t.Errorf("pixel = %+v, want opaque red", c)
	}

	half := DownsampleBy(src, 2)
	if b := half.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("DownsampleBy bounds = %v", b)
	}
}

func TestDownsampleTransparent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	dst := Downsample(src, 2, 2)
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			t.Fatalf("alpha = %d, want 0", dst.Pix[i])
		}
	}
}
