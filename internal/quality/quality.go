// Package quality holds the two render quality profiles.
package quality

import "fmt"

// Profile couples the constants that trade accuracy for speed. Step values
// are baked into a compiled shader program, so switching profile rebuilds
// the program rather than updating uniforms.
type Profile struct {
	StepSize float64 // integration step scale, smaller is more accurate
	Steps    int     // maximum integration steps per ray
	Segments int     // backdrop sphere tessellation
}

var (
	// High is used when performance mode is off.
	High = Profile{StepSize: 0.08, Steps: 350, Segments: 64}
	// Low is used when performance mode is on.
	Low = Profile{StepSize: 0.12, Steps: 140, Segments: 18}
)

// Select returns Low when performance mode is on and High otherwise.
func Select(performance bool) Profile {
	if performance {
		return Low
	}
	return High
}

// IsLow reports whether p is the low (performance) profile.
func (p Profile) IsLow() bool {
	return p == Low
}

func (p Profile) String() string {
	name := "high"
	if p.IsLow() {
		name = "low"
	}
	return fmt.Sprintf("%s(step=%.2f steps=%d segments=%d)", name, p.StepSize, p.Steps, p.Segments)
}

// Equal reports whether p and o would compile the same program.
func (p Profile) Equal(o Profile) bool {
	return p == o
}
