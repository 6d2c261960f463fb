package raster

import (
	"image"
	"image/color"
	"math"
	"sync/atomic"
	"testing"
)

func TestDispatchCoversEveryPixel(t *testing.T) {
	for _, workers := range []int{1, 3, 16} {
		fb := NewFrameBuffer(7, 5)
		var calls atomic.Int64
		Dispatch(fb, workers, func(x, y int) Color {
			calls.Add(1)
			return Color{R: float64(x), G: float64(y), A: 1}
		})
		if calls.Load() != 35 {
			t.Errorf("workers=%d: %d kernel calls, want 35", workers, calls.Load())
		}
		for y := 0; y < 5; y++ {
			for x := 0; x < 7; x++ {
				c := fb.At(x, y)
				if c.R != float64(x) || c.G != float64(y) || c.A != 1 {
					t.Fatalf("workers=%d: pixel (%d,%d) = %+v", workers, x, y, c)
				}
			}
		}
	}
}

func TestSampleTextureNil(t *testing.T) {
	if got := SampleTexture(nil, 0.5, 0.5, WrapRepeat); got != (Color{}) {
		t.Errorf("nil sample = %+v, want zero", got)
	}
}

func TestSampleTextureBilinear(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})

	got := SampleTexture(tex, 0.5, 0, WrapClamp)
	if math.Abs(got.R-0.5) > 1e-9 || got.A != 1 {
		t.Errorf("midpoint = %+v, want R=0.5 A=1", got)
	}
	// Repeat wraps 1.25 onto 0.25.
	a := SampleTexture(tex, 1.25, 0, WrapRepeat)
	b := SampleTexture(tex, 0.25, 0, WrapRepeat)
	if a != b {
		t.Errorf("repeat wrap: %+v != %+v", a, b)
	}
	// Clamp pins out-of-range coordinates to the edge.
	if c := SampleTexture(tex, 7, 0, WrapClamp); math.Abs(c.R-1) > 1e-9 {
		t.Errorf("clamp right edge = %+v", c)
	}
}

func TestEncode(t *testing.T) {
	if Encode(0, 1) != 0 {
		t.Error("Encode(0) != 0")
	}
	if Encode(1000, 1) != 255 {
		t.Error("Encode(large) != 255")
	}
	if Encode(math.NaN(), 1) != 0 {
		t.Error("Encode(NaN) != 0")
	}
	if !(Encode(0.2, 1) < Encode(0.4, 1)) {
		t.Error("Encode is not monotonic")
	}
}

func TestToNRGBA(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	fb.Set(0, 0, Color{R: 5, G: 5, B: 5, A: 1})
	fb.Set(1, 0, Color{A: 0.5})
	img := ToNRGBA(fb, nil, 1)
	if img.Rect.Dx() != 2 || img.Rect.Dy() != 1 {
		t.Fatalf("bounds = %v", img.Rect)
	}
	if p := img.NRGBAAt(0, 0); p.A != 255 || p.R < 200 {
		t.Errorf("bright pixel = %v", p)
	}
	if p := img.NRGBAAt(1, 0); p.A != 128 || p.R != 0 {
		t.Errorf("half alpha pixel = %v", p)
	}
	if again := ToNRGBA(fb, img, 1); again != img {
		t.Error("correctly sized dst was reallocated")
	}
}
