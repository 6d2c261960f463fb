package raster

import "image"

// Wrap selects how texture coordinates outside [0, 1) are handled.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// SampleTexture performs bilinear filtering and returns linear RGB with
// straight alpha. A nil texture samples as transparent black.
// Accesses tex.Pix directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float64, wrap Wrap) Color {
	if tex == nil {
		return Color{}
	}
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return Color{}
	}

	u, v = wrapCoord(u, wrap), wrapCoord(v, wrap)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1, y1 := x0+1, y0+1
	if wrap == WrapRepeat {
		x1 %= w
		y1 %= h
	} else {
		x1 = min(x1, w-1)
		y1 = min(y1, h-1)
	}
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	// Four texels
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	lin := func(o int) float64 {
		return srgbToLinear[pix[i00+o]]*w00 + srgbToLinear[pix[i10+o]]*w10 +
			srgbToLinear[pix[i01+o]]*w01 + srgbToLinear[pix[i11+o]]*w11
	}
	fa := (float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11) / 255

	return Color{R: lin(0), G: lin(1), B: lin(2), A: fa}
}

func wrapCoord(c float64, wrap Wrap) float64 {
	if wrap == WrapClamp {
		if c < 0 {
			return 0
		}
		if c > 1 {
			return 1
		}
		return c
	}
	c = c - float64(int(c))
	if c < 0 {
		c += 1.0
	}
	if c >= 1 {
		c = 0
	}
	return c
}
