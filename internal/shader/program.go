// Package shader is the per-pixel relativistic ray-marching kernel.
//
// A Program is compiled from Defines (constants that never change for its
// lifetime) and carries a Uniforms block that the binder rewrites between
// frames. Shade is a pure function of (pixel, uniforms): it reads the
// program but never writes it, so a frame can be shaded by many goroutines
// at once.
package shader

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"kerr-renderer/internal/mathutil"
	"kerr-renderer/internal/quality"
	"kerr-renderer/internal/texture"
)

// ErrInvalidDefines is returned by Compile for unusable constants.
var ErrInvalidDefines = errors.New("shader: invalid defines")

// BackdropRadius is the radius of the sphere the scene is drawn on.
const BackdropRadius = 20.0

// Defines are compile-time constants of a program.
type Defines struct {
	Step     float64 // base integration step
	NSteps   int     // step budget per ray
	Segments int     // backdrop sphere tessellation
}

// DefinesFor returns the defines of a quality profile.
func DefinesFor(p quality.Profile) Defines {
	return Defines{Step: p.StepSize, NSteps: p.Steps, Segments: p.Segments}
}

// Uniforms is the per-frame input of a program.
type Uniforms struct {
	Time       float64
	Resolution mgl64.Vec2
	FOV        float64 // vertical, degrees

	CamPos mgl64.Vec3
	CamDir mgl64.Vec3
	CamUp  mgl64.Vec3
	CamVel mgl64.Vec3 // scene units per second

	AccretionDisk    bool
	UseDiskTexture   bool
	ThermalColormap  bool
	LorentzTransform bool
	DopplerShift     bool
	Beaming          bool
	Jet              bool
	ShowStars        bool
	ShowMilkyWay     bool
	Transparent      bool

	Spin            float64
	DiskIntensity   float64
	DiskInnerRadius float64
	DiskWidth       float64
	BGIntensity     float64
	GlowIntensity   float64

	BloomEnabled   bool
	BloomIntensity float64
	BloomThreshold float64
	BloomRadius    float64

	Textures texture.Handles
}

// Program is a compiled kernel plus its uniform block.
type Program struct {
	Defines  Defines
	Uniforms Uniforms

	escapeRadius float64
	d            derived
}

// derived holds per-frame values computed once by Prepare.
type derived struct {
	fwd, right, up mgl64.Vec3
	tanHalf        float64
	beta           mgl64.Vec3
	horizon        float64
	shadowAngle    float64
	centerDir      mgl64.Vec3
}

// Compile validates d and returns a program with default uniforms.
func Compile(d Defines) (*Program, error) {
	if !(d.Step > 0) || math.IsInf(d.Step, 0) {
		return nil, fmt.Errorf("%w: step %v", ErrInvalidDefines, d.Step)
	}
	if d.NSteps <= 0 {
		return nil, fmt.Errorf("%w: nsteps %d", ErrInvalidDefines, d.NSteps)
	}
	if d.Segments < 3 {
		return nil, fmt.Errorf("%w: segments %d", ErrInvalidDefines, d.Segments)
	}

	p := &Program{
		Defines: d,
		Uniforms: Uniforms{
			Resolution:       mgl64.Vec2{1, 1},
			FOV:              60,
			CamPos:           mgl64.Vec3{0, 3, 10},
			CamDir:           mgl64.Vec3{0, 0, -1},
			CamUp:            mgl64.Vec3{0, 1, 0},
			AccretionDisk:    true,
			LorentzTransform: true,
			DiskIntensity:    1,
			DiskInnerRadius:  2.45,
			DiskWidth:        4,
		},
		// The polygonal backdrop's inscribed radius: rays past it have
		// left the mesh on every face.
		escapeRadius: BackdropRadius * math.Cos(math.Pi/float64(d.Segments)),
	}
	p.Prepare()
	return p, nil
}

// EscapeRadius is the radius beyond which an outbound ray has escaped.
func (p *Program) EscapeRadius() float64 {
	return p.escapeRadius
}

// Prepare recomputes the per-frame derived values from the uniforms. It must
// run after the uniforms change and before the frame is shaded.
func (p *Program) Prepare() {
	u := &p.Uniforms
	d := &p.d

	d.fwd = mathutil.Normalize(u.CamDir)
	if d.fwd == (mgl64.Vec3{}) {
		d.fwd = mgl64.Vec3{0, 0, -1}
	}
	d.right = mathutil.Normalize(d.fwd.Cross(u.CamUp))
	if d.right == (mgl64.Vec3{}) {
		d.right = mathutil.Normalize(d.fwd.Cross(mgl64.Vec3{0, 0, 1}))
		if d.right == (mgl64.Vec3{}) {
			d.right = mgl64.Vec3{1, 0, 0}
		}
	}
	d.up = d.right.Cross(d.fwd)

	fov := mathutil.Clamp(u.FOV, 1, 179)
	d.tanHalf = math.Tan(mgl64.DegToRad(fov) / 2)

	d.beta = mgl64.Vec3{}
	if u.LorentzTransform {
		d.beta = cameraBeta(u.CamVel)
	}

	d.horizon = HorizonRadius(u.Spin)
	d.centerDir = mathutil.Normalize(u.CamPos.Mul(-1))
	d.shadowAngle = ShadowAngle(u.CamPos.Len(), u.Spin)
}
