package shader

import (
	"math"

	"kerr-renderer/internal/raster"
)

const (
	minTemperature = 1000.0
	maxTemperature = 40000.0
)

// Blackbody returns the linear-light chromaticity of a black body at kelvin
// degrees, normalised so the brightest channel is at most 1. Temperatures
// are clamped to [1000, 40000] K.
func Blackbody(kelvin float64) raster.Color {
	if math.IsNaN(kelvin) {
		kelvin = minTemperature
	}
	t := math.Min(math.Max(kelvin, minTemperature), maxTemperature) / 100

	var r, g, b float64
	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}
	switch {
	case t >= 66:
		b = 255
	case t <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	return raster.Color{
		R: toLinear(r),
		G: toLinear(g),
		B: toLinear(b),
		A: 1,
	}
}

func toLinear(v float64) float64 {
	v = math.Min(math.Max(v, 0), 255) / 255
	return math.Pow(v, 2.2)
}
