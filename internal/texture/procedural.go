package texture

import (
	"image"
	"math"
	"math/rand/v2"
)

// Generator builds a procedural stand-in for a texture asset.
type Generator func() *image.NRGBA

// Procedural maps asset names to generators used by cmd/texgen to populate
// an empty asset directory.
var Procedural = map[string]Generator{
	StarsName:                      func() *image.NRGBA { return StarNoise(1024, 512, 0.004, 7) },
	"milkyway.png":                 func() *image.NRGBA { return MilkyWay(2048, 1024, 11) },
	"accretion_disk_natural.png":   func() *image.NRGBA { return DiskColormap(DiskStyleNatural, 256, 512, 3) },
	"accretion_disk_red_white.png": func() *image.NRGBA { return DiskColormap(DiskStyleStripes, 256, 512, 3) },
	"accretion_disk_grid.png":      func() *image.NRGBA { return DiskColormap(DiskStyleGrid, 256, 512, 3) },
	"accretion_disk_thermal.png":   func() *image.NRGBA { return DiskColormap(DiskStyleThermal, 256, 512, 3) },
}

// StarNoise returns a black image sprinkled with stars. density is the
// fraction of lit texels.
func StarNoise(w, h int, density float64, seed uint64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	n := int(float64(w*h) * density)
	for k := 0; k < n; k++ {
		x, y := rng.IntN(w), rng.IntN(h)
		b := 0.35 + 0.65*math.Pow(rng.Float64(), 3)
		// Slight colour temperature spread.
		t := rng.Float64()
		r := b * (0.85 + 0.15*t)
		g := b * 0.92
		bl := b * (1.0 - 0.15*t)
		i := img.PixOffset(x, y)
		img.Pix[i] = to8(r)
		img.Pix[i+1] = to8(g)
		img.Pix[i+2] = to8(bl)
	}
	return img
}

// MilkyWay returns an equirectangular panorama with a dusty galactic band
// along the equator.
func MilkyWay(w, h int, seed uint64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed*31+1))
	// Low-frequency phase offsets give the band some structure.
	var phases [6]float64
	for i := range phases {
		phases[i] = rng.Float64() * 2 * math.Pi
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		lat := (float64(y)/float64(h-1) - 0.5) * math.Pi
		for x := 0; x < w; x++ {
			lon := float64(x) / float64(w) * 2 * math.Pi
			warp := 0.08*math.Sin(lon*2+phases[0]) + 0.04*math.Sin(lon*5+phases[1])
			d := (lat - warp) / 0.22
			band := math.Exp(-d * d)
			dust := 0.5 + 0.25*math.Sin(lon*9+phases[2]) + 0.25*math.Sin(lon*17+lat*11+phases[3])
			core := math.Exp(-math.Pow((lon-math.Pi)/0.9, 2)) * 0.6
			v := band * (0.35 + 0.45*dust + core)
			v += rng.Float64() * 0.02

			i := img.PixOffset(x, y)
			img.Pix[i] = to8(v * 0.95)
			img.Pix[i+1] = to8(v * 0.85)
			img.Pix[i+2] = to8(v * 0.75)
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Disk colormap styles.
const (
	DiskStyleNatural = "natural"
	DiskStyleStripes = "stripes"
	DiskStyleGrid    = "grid"
	DiskStyleThermal = "thermal"
)

// DiskColormap returns a polar colormap: x runs from the inner to the outer
// edge, y runs once around the disk.
func DiskColormap(style string, w, h int, seed uint64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed+101))
	var streaks [8]float64
	for i := range streaks {
		streaks[i] = rng.Float64() * 2 * math.Pi
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		phi := float64(y) / float64(h) * 2 * math.Pi
		for x := 0; x < w; x++ {
			u := float64(x) / float64(w-1)
			var r, g, b float64
			switch style {
			case DiskStyleStripes:
				s := 0.5 + 0.5*math.Cos(phi*12+u*18)
				r, g, b = 1, s, s
			case DiskStyleGrid:
				cu := int(u*8) % 2
				cv := int(phi/(2*math.Pi)*32) % 2
				if cu == cv {
					r, g, b = 1, 1, 1
				} else {
					r, g, b = 0.15, 0.15, 0.2
				}
			case DiskStyleThermal:
				// Luminance encodes temperature: hot inner edge.
				v := math.Pow(1-u, 1.5) * (0.8 + 0.2*math.Sin(phi*6+streaks[0]))
				r, g, b = v, v, v
			default:
				turb := 0.0
				for i, p := range streaks {
					turb += math.Sin(phi*float64(3+i*2)+u*float64(7+i)+p) / float64(i+1)
				}
				v := (1 - u) * (0.75 + 0.12*turb)
				r, g, b = v*1.0, v*0.72, v*0.42
			}
			edge := math.Min(u/0.05, 1) * math.Min((1-u)/0.2, 1)
			i := img.PixOffset(x, y)
			img.Pix[i] = to8(r)
			img.Pix[i+1] = to8(g)
			img.Pix[i+2] = to8(b)
			img.Pix[i+3] = to8(edge)
		}
	}
	return img
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
