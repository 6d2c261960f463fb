package panel

import "kerr-renderer/internal/params"

// boolField reads the boolean parameter bound to key.
func boolField(p params.RenderParameters, key string) bool {
	switch key {
	case params.KeyDopplerShift:
		return p.DopplerShift
	case params.KeyBeaming:
		return p.Beaming
	case params.KeyJet:
		return p.Jet
	case params.KeyStars:
		return p.Stars
	case params.KeyMilkyWay:
		return p.MilkyWay
	case params.KeyOrbit:
		return p.Orbit
	case params.KeyBloomEnabled:
		return p.BloomEnabled
	case params.KeyPerformance:
		return p.Performance
	}
	return false
}

// floatField reads the numeric parameter bound to key.
func floatField(p params.RenderParameters, key string) float64 {
	switch key {
	case params.KeyDiskIntensity:
		return p.DiskIntensity
	case params.KeyDiskInnerRadius:
		return p.DiskInnerRadius
	case params.KeyDiskWidth:
		return p.DiskWidth
	case params.KeySpin:
		return p.Spin
	case params.KeyBloomIntensity:
		return p.BloomIntensity
	case params.KeyBloomThreshold:
		return p.BloomThreshold
	case params.KeyBloomRadius:
		return p.BloomRadius
	case params.KeyGlowIntensity:
		return p.GlowIntensity
	}
	return 0
}
