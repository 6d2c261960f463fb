package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"kerr-renderer/internal/mathutil"
	"kerr-renderer/internal/raster"
)

// Kind classifies how a ray terminated.
type Kind int

const (
	Escape Kind = iota
	Horizon
	Disk
)

func (k Kind) String() string {
	switch k {
	case Horizon:
		return "horizon"
	case Disk:
		return "disk"
	default:
		return "escape"
	}
}

// Trace is the outcome of integrating one ray.
type Trace struct {
	Kind Kind
	// Steps taken before termination.
	Steps int
	// Exhausted is set when the step budget ran out before the ray escaped.
	Exhausted bool
	// Radius is the disk crossing radius for Disk, otherwise the final r.
	Radius    float64
	MinRadius float64
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	// Hit is the interpolated disk crossing point (Disk only).
	Hit mgl64.Vec3
	// Jet is the volumetric emission gathered along the path.
	Jet raster.Color
}

// InDiskBand reports whether a crossing radius lies on the disk. Both edges
// belong to the disk.
func InDiskBand(r, inner, width float64) bool {
	return r >= inner && r <= inner+width
}

// Trace integrates the ray through pixel (fx, fy).
func (p *Program) Trace(fx, fy float64) Trace {
	o, d := p.Ray(fx, fy)
	return p.TraceRay(o, d)
}

// TraceRay integrates a ray from origin along dir until it falls through the
// horizon, hits the disk, escapes or exhausts the step budget.
func (p *Program) TraceRay(origin, dir mgl64.Vec3) Trace {
	u := &p.Uniforms
	pos := origin
	vel := mathutil.Normalize(dir)
	if vel == (mgl64.Vec3{}) {
		vel = p.d.fwd
	}

	disk := u.AccretionDisk
	jet := disk && u.Jet
	t := Trace{MinRadius: math.Inf(1)}

	for i := 0; i < p.Defines.NSteps; i++ {
		r := pos.Len()
		if r < t.MinRadius {
			t.MinRadius = r
		}
		if r < p.d.horizon {
			t.Kind = Horizon
			t.Steps = i
			t.Radius = r
			t.Position, t.Direction = pos, vel
			return t
		}
		if r > p.escapeRadius && pos.Dot(vel) > 0 {
			t.Kind = Escape
			t.Steps = i
			t.Radius = r
			t.Position, t.Direction = pos, vel
			return t
		}

		h := p.Defines.Step * math.Max(r, 1)
		prev := pos

		// Velocity Verlet; photons keep unit speed.
		vel = vel.Add(accel(pos, vel, u.Spin).Mul(h / 2))
		pos = pos.Add(vel.Mul(h))
		vel = vel.Add(accel(pos, vel, u.Spin).Mul(h / 2))
		vel = mathutil.Normalize(vel)
		if vel == (mgl64.Vec3{}) || !mathutil.Finite(pos) {
			// Only reachable deep inside the horizon.
			t.Kind = Horizon
			t.Steps = i + 1
			t.Position, t.Direction = prev, p.d.fwd
			return t
		}

		if jet {
			t.Jet = t.Jet.Add(p.jetEmission(pos, vel, h))
		}

		if disk && (prev[1] >= 0) != (pos[1] >= 0) {
			f := prev[1] / (prev[1] - pos[1])
			hit := mathutil.MixVec3(prev, pos, f)
			rc := math.Hypot(hit[0], hit[2])
			if InDiskBand(rc, u.DiskInnerRadius, u.DiskWidth) {
				t.Kind = Disk
				t.Steps = i + 1
				t.Radius = rc
				t.Hit = mgl64.Vec3{hit[0], 0, hit[2]}
				t.Position, t.Direction = pos, vel
				return t
			}
		}
	}

	t.Kind = Escape
	t.Exhausted = true
	t.Steps = p.Defines.NSteps
	t.Radius = pos.Len()
	t.Position, t.Direction = pos, vel
	return t
}
