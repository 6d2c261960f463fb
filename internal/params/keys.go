package params

// Store keys. The settings store namespaces them on disk.
const (
	KeyDiskIntensity   = "diskIntensity"
	KeyDiskInnerRadius = "diskInnerRadius"
	KeyDiskWidth       = "diskWidth"
	KeyDiskTexture     = "diskTexture"
	KeyDopplerShift    = "dopplerShiftEnabled"
	KeyBeaming         = "beamingEnabled"
	KeySpin            = "blackHoleRotation"
	KeyJet             = "relativisticJet"
	KeyStars           = "starsEnabled"
	KeyMilkyWay        = "milkywayEnabled"
	KeyOrbit           = "orbitEnabled"
	KeyBloomEnabled    = "bloomEnabled"
	KeyBloomIntensity  = "bloomIntensity"
	KeyBloomThreshold  = "bloomThreshold"
	KeyBloomRadius     = "bloomRadius"
	KeyGlowIntensity   = "glowIntensity"
	KeyPerformance     = "performanceMode"
)

// Disk colormap identifiers.
const (
	DiskHidden           = "no_disk"
	DiskBlackbody        = "none"
	DiskNatural          = "accretion_disk_natural.png"
	DiskRedStripes       = "accretion_disk_red_white.png"
	DiskRedPurpleStripes = "accretion_disk_red_white_purple.png"
	DiskGrid             = "accretion_disk_grid.png"
	DiskGridLines        = "accretion_disk_gridlines.png"
	DiskThermal          = "accretion_disk_thermal.png"
	DiskArrows           = "accretion_disk_arrows.png"
	DiskChaotic          = "accretion_disk_chaotic.png"
	DiskYellow           = "accretion_disk_yellow.png"
	DiskBlue             = "accretion_disk_blue.png"
	DiskBright           = "accretion_disk_bright.png"
)

// Option is a selectable colormap with its display label.
type Option struct {
	Value string
	Label string
}

// DiskTextures lists the colormap choices in panel order.
var DiskTextures = []Option{
	{DiskHidden, "No Disk"},
	{DiskBlackbody, "No Texture (Blackbody)"},
	{DiskNatural, "Natural"},
	{DiskRedStripes, "Red stripes"},
	{DiskRedPurpleStripes, "Red-Purple stripes"},
	{DiskGrid, "Checkboard"},
	{DiskGridLines, "Grid lines"},
	{DiskThermal, "Thermal"},
	{DiskArrows, "Arrows"},
	{DiskChaotic, "Turbulence"},
	{DiskYellow, "Yellow"},
	{DiskBlue, "Blue"},
	{DiskBright, "Bright"},
}

// KnownDiskTexture reports whether id is one of DiskTextures.
func KnownDiskTexture(id string) bool {
	for _, o := range DiskTextures {
		if o.Value == id {
			return true
		}
	}
	return false
}

// Range is the slider domain of a numeric parameter.
type Range struct {
	Min, Max, Step float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Ranges holds the slider domain of every numeric key.
var Ranges = map[string]Range{
	KeyDiskIntensity:   {0.1, 2.0, 0.1},
	KeyDiskInnerRadius: {1.0, 6.0, 0.05},
	KeyDiskWidth:       {0.5, 10.0, 0.25},
	KeySpin:            {SpinMin, SpinMax, 0.05},
	KeyBloomIntensity:  {0, 2, 0.1},
	KeyBloomThreshold:  {0, 1, 0.1},
	KeyBloomRadius:     {0, 2, 0.1},
	KeyGlowIntensity:   {0, 3, 0.1},
}
