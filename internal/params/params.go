// Package params defines the render parameter set, its defaults and the
// values derived from it.
package params

import "kerr-renderer/internal/quality"

// Spin is kept strictly inside the extremal Kerr limit |a*| = 1.
const (
	SpinMin     = -0.998
	SpinMax     = 0.998
	SpinDefault = 0.9
)

// Background panorama intensity levels. The floor keeps the panorama term
// defined when the Milky Way is hidden.
const (
	BackgroundHigh  = 0.3
	BackgroundLow   = 0.38
	BackgroundFloor = 0.005
)

// Camera and orbit constants.
const (
	OrbitRadius = 9.5
	OrbitSpeed  = 0.2
	OrbitHeight = 1.0
	MinDistance = 5.0
	MaxDistance = 15.0
	FOV         = 60.0
	TiltDegrees = 25.0
	// TimeScale multiplies wall-clock seconds into the shader time uniform.
	TimeScale = 0.2
)

// InitialCamera is the camera position at scene start.
var InitialCamera = [3]float64{0, 1, 10}

// RenderParameters is the full live parameter set read every frame.
type RenderParameters struct {
	// Disk
	DiskIntensity   float64
	DiskInnerRadius float64
	DiskWidth       float64
	DiskTexture     string
	DopplerShift    bool
	Beaming         bool

	// Black hole
	Spin float64
	Jet  bool

	// Background
	Stars    bool
	MilkyWay bool

	// Camera
	Orbit       bool
	OrbitRadius float64
	OrbitSpeed  float64
	MinDistance float64
	MaxDistance float64

	// Bloom and glow
	BloomEnabled   bool
	BloomIntensity float64
	BloomThreshold float64
	BloomRadius    float64
	GlowIntensity  float64

	Performance bool
}

// Defaults returns the documented default of every parameter.
func Defaults() RenderParameters {
	return RenderParameters{
		DiskIntensity:   1.0,
		DiskInnerRadius: 2.45,
		DiskWidth:       4.0,
		DiskTexture:     DiskBlackbody,
		DopplerShift:    true,
		Beaming:         true,

		Spin: SpinDefault,
		Jet:  false,

		Stars:    true,
		MilkyWay: true,

		Orbit:       false,
		OrbitRadius: OrbitRadius,
		OrbitSpeed:  OrbitSpeed,
		MinDistance: MinDistance,
		MaxDistance: MaxDistance,

		BloomEnabled:   true,
		BloomIntensity: 1.5,
		BloomThreshold: 0.3,
		BloomRadius:    0.8,
		GlowIntensity:  0.0,

		Performance: true,
	}
}

// Source is the read side of the parameter store.
type Source interface {
	Bool(key string, def bool) bool
	Float(key string, def float64) float64
	String(key string, def string) string
}

// Load reads every parameter from src, falling back to Defaults for unset
// or malformed values, and clamps the result.
func Load(src Source) RenderParameters {
	d := Defaults()
	p := d

	p.DiskIntensity = src.Float(KeyDiskIntensity, d.DiskIntensity)
	p.DiskInnerRadius = src.Float(KeyDiskInnerRadius, d.DiskInnerRadius)
	p.DiskWidth = src.Float(KeyDiskWidth, d.DiskWidth)
	p.DiskTexture = src.String(KeyDiskTexture, d.DiskTexture)
	p.DopplerShift = src.Bool(KeyDopplerShift, d.DopplerShift)
	p.Beaming = src.Bool(KeyBeaming, d.Beaming)

	p.Spin = src.Float(KeySpin, d.Spin)
	p.Jet = src.Bool(KeyJet, d.Jet)

	p.Stars = src.Bool(KeyStars, d.Stars)
	p.MilkyWay = src.Bool(KeyMilkyWay, d.MilkyWay)
	p.Orbit = src.Bool(KeyOrbit, d.Orbit)

	p.BloomEnabled = src.Bool(KeyBloomEnabled, d.BloomEnabled)
	p.BloomIntensity = src.Float(KeyBloomIntensity, d.BloomIntensity)
	p.BloomThreshold = src.Float(KeyBloomThreshold, d.BloomThreshold)
	p.BloomRadius = src.Float(KeyBloomRadius, d.BloomRadius)
	p.GlowIntensity = src.Float(KeyGlowIntensity, d.GlowIntensity)

	p.Performance = src.Bool(KeyPerformance, d.Performance)

	return p.Clamp()
}

// Clamp forces every numeric field into its slider range and replaces an
// unknown colormap with the default.
func (p RenderParameters) Clamp() RenderParameters {
	p.DiskIntensity = Ranges[KeyDiskIntensity].Clamp(p.DiskIntensity)
	p.DiskInnerRadius = Ranges[KeyDiskInnerRadius].Clamp(p.DiskInnerRadius)
	p.DiskWidth = Ranges[KeyDiskWidth].Clamp(p.DiskWidth)
	p.Spin = Ranges[KeySpin].Clamp(p.Spin)
	p.BloomIntensity = Ranges[KeyBloomIntensity].Clamp(p.BloomIntensity)
	p.BloomThreshold = Ranges[KeyBloomThreshold].Clamp(p.BloomThreshold)
	p.BloomRadius = Ranges[KeyBloomRadius].Clamp(p.BloomRadius)
	p.GlowIntensity = Ranges[KeyGlowIntensity].Clamp(p.GlowIntensity)

	if !KnownDiskTexture(p.DiskTexture) {
		p.DiskTexture = Defaults().DiskTexture
	}
	if p.MinDistance <= 0 || p.MaxDistance < p.MinDistance {
		p.MinDistance, p.MaxDistance = MinDistance, MaxDistance
	}
	if p.OrbitRadius < p.MinDistance || p.OrbitRadius > p.MaxDistance {
		p.OrbitRadius = OrbitRadius
	}
	return p
}

// DiskVisible is false only for the "no_disk" colormap.
func (p RenderParameters) DiskVisible() bool {
	return p.DiskTexture != DiskHidden
}

// Blackbody reports whether the disk is shaded procedurally.
func (p RenderParameters) Blackbody() bool {
	return p.DiskTexture == DiskBlackbody
}

// Thermal reports whether the colormap encodes temperature.
func (p RenderParameters) Thermal() bool {
	return p.DiskTexture == DiskThermal
}

// DiskTextureName is the asset to load for the disk, or "" when the disk is
// hidden or procedural.
func (p RenderParameters) DiskTextureName() string {
	if !p.DiskVisible() || p.Blackbody() {
		return ""
	}
	return p.DiskTexture
}

// Quality returns the profile selected by the performance flag.
func (p RenderParameters) Quality() quality.Profile {
	return quality.Select(p.Performance)
}

// BackgroundIntensity is the two-level panorama weight: the profile's
// default when the Milky Way is visible, BackgroundFloor otherwise.
func (p RenderParameters) BackgroundIntensity() float64 {
	if !p.MilkyWay {
		return BackgroundFloor
	}
	if p.Performance {
		return BackgroundLow
	}
	return BackgroundHigh
}

// EffectiveGlow is GlowIntensity, with anything non-positive meaning off.
func (p RenderParameters) EffectiveGlow() float64 {
	if p.GlowIntensity > 0 {
		return p.GlowIntensity
	}
	return 0
}
