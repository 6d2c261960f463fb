// Package binder copies the live render parameters, camera state, time and
// texture handles into the shader program's uniform block once per frame,
// and owns the program across quality profile rebuilds.
package binder

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"kerr-renderer/internal/params"
	"kerr-renderer/internal/quality"
	"kerr-renderer/internal/shader"
	"kerr-renderer/internal/texture"
)

// ErrProgramLost is returned by every call after a failed rebuild.
var ErrProgramLost = errors.New("binder: shader program lost")

// Textures is the read side of a texture set.
type Textures interface {
	Snapshot() texture.Handles
}

// View is the camera state a frame is rendered from.
type View struct {
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	Up       mgl64.Vec3
	Velocity mgl64.Vec3
}

// FrameInput is everything Sync needs for one frame.
type FrameInput struct {
	Params      params.RenderParameters
	View        View
	Time        float64 // shader time, already scaled
	Width       int
	Height      int
	Transparent bool
}

// Binder owns one shader program and keeps its uniforms in step with the
// frame inputs.
type Binder struct {
	program  *shader.Program
	profile  quality.Profile
	textures Textures
	log      *zap.Logger
	lost     error

	// NeedsUpdate is set by Sync when any uniform other than time changed.
	NeedsUpdate bool
}

// New compiles a program for profile.
func New(profile quality.Profile, textures Textures, log *zap.Logger) (*Binder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	prog, err := shader.Compile(shader.DefinesFor(profile))
	if err != nil {
		return nil, fmt.Errorf("binder: compile %s: %w", profile, err)
	}
	log.Debug("shader program compiled", zap.Stringer("profile", profile))
	return &Binder{program: prog, profile: profile, textures: textures, log: log}, nil
}

// Program returns the current program.
func (b *Binder) Program() (*shader.Program, error) {
	if b.lost != nil {
		return nil, b.lost
	}
	return b.program, nil
}

// Profile returns the profile the current program was compiled with.
func (b *Binder) Profile() quality.Profile {
	return b.profile
}

// Sync writes in into the program's uniforms and prepares the program for
// shading. Time is written unconditionally; it reports whether anything
// else changed.
func (b *Binder) Sync(in FrameInput) (bool, error) {
	if b.lost != nil {
		return false, b.lost
	}

	u := &b.program.Uniforms
	next := uniformsFor(in)
	if b.textures != nil {
		next.Textures = b.textures.Snapshot()
	}

	next.Time = u.Time
	changed := next != *u
	next.Time = in.Time

	*u = next
	b.program.Prepare()
	b.NeedsUpdate = changed
	return changed, nil
}

// Rebuild tears the program down and compiles a fresh one for profile. The
// old uniforms are discarded; the next Sync fills every field. A failure
// loses the program for the rest of the session.
func (b *Binder) Rebuild(profile quality.Profile) error {
	if b.lost != nil {
		return b.lost
	}
	b.program = nil

	prog, err := shader.Compile(shader.DefinesFor(profile))
	if err != nil {
		b.lost = fmt.Errorf("%w: rebuild %s: %w", ErrProgramLost, profile, err)
		b.log.Error("shader rebuild failed", zap.Stringer("profile", profile), zap.Error(err))
		return b.lost
	}

	b.program = prog
	b.profile = profile
	b.NeedsUpdate = true
	b.log.Debug("shader program rebuilt", zap.Stringer("profile", profile))
	return nil
}

// Release drops the program. Later calls return ErrProgramLost.
func (b *Binder) Release() {
	b.program = nil
	if b.lost == nil {
		b.lost = ErrProgramLost
	}
}

func uniformsFor(in FrameInput) shader.Uniforms {
	p := in.Params
	disk := p.DiskVisible()
	return shader.Uniforms{
		Time:       in.Time,
		Resolution: mgl64.Vec2{float64(in.Width), float64(in.Height)},
		FOV:        params.FOV,

		CamPos: in.View.Position,
		CamDir: in.View.Forward,
		CamUp:  in.View.Up,
		CamVel: in.View.Velocity,

		AccretionDisk:    disk,
		UseDiskTexture:   disk && !p.Blackbody(),
		ThermalColormap:  p.Thermal(),
		LorentzTransform: true,
		DopplerShift:     p.DopplerShift,
		Beaming:          p.Beaming,
		Jet:              p.Jet,
		ShowStars:        p.Stars,
		ShowMilkyWay:     p.MilkyWay,
		Transparent:      in.Transparent,

		Spin:            p.Spin,
		DiskIntensity:   p.DiskIntensity,
		DiskInnerRadius: p.DiskInnerRadius,
		DiskWidth:       p.DiskWidth,
		BGIntensity:     p.BackgroundIntensity(),
		GlowIntensity:   p.EffectiveGlow(),

		BloomEnabled:   p.BloomEnabled,
		BloomIntensity: p.BloomIntensity,
		BloomThreshold: p.BloomThreshold,
		BloomRadius:    p.BloomRadius,
	}
}
