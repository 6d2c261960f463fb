package raster

import (
	"image"
	"math"
)

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// SRGBToLinear converts an 8-bit sRGB channel to linear light.
func SRGBToLinear(c uint8) float64 {
	return srgbToLinear[c]
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// Encode maps a linear HDR channel to 8-bit sRGB through the tonemap.
func Encode(x, exposure float64) uint8 {
	v := ACESTonemap(x * exposure)
	if v >= 1 {
		return 255
	}
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return uint8(math.Pow(v, 1/2.2)*255 + 0.5)
}

// ToNRGBA tonemaps fb into dst, allocating dst when nil or mis-sized.
func ToNRGBA(fb *FrameBuffer, dst *image.NRGBA, exposure float64) *image.NRGBA {
	if dst == nil || dst.Rect.Dx() != fb.Width || dst.Rect.Dy() != fb.Height {
		dst = image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	}
	for y := 0; y < fb.Height; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < fb.Width; x++ {
			si := (y*fb.Width + x) * 4
			di := x * 4
			row[di] = Encode(float64(fb.Pix[si]), exposure)
			row[di+1] = Encode(float64(fb.Pix[si+1]), exposure)
			row[di+2] = Encode(float64(fb.Pix[si+2]), exposure)
			a := fb.Pix[si+3]
			switch {
			case a >= 1:
				row[di+3] = 255
			case a <= 0:
				row[di+3] = 0
			default:
				row[di+3] = uint8(a*255 + 0.5)
			}
		}
	}
	return dst
}
