package binder

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"kerr-renderer/internal/params"
	"kerr-renderer/internal/quality"
	"kerr-renderer/internal/texture"
)

type fakeTextures struct {
	h texture.Handles
}

func (f *fakeTextures) Snapshot() texture.Handles { return f.h }

func input() FrameInput {
	return FrameInput{
		Params: params.Defaults(),
		View: View{
			Position: mgl64.Vec3{0, 1, 10},
			Forward:  mgl64.Vec3{0, -1, -10}.Normalize(),
			Up:       mgl64.Vec3{0, 1, 0},
		},
		Time:   0.5,
		Width:  64,
		Height: 32,
	}
}

func newBinder(t *testing.T, tex Textures) *Binder {
	t.Helper()
	b, err := New(quality.Low, tex, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestSyncTracksChanges(t *testing.T) {
	b := newBinder(t, nil)

	in := input()
	if changed, err := b.Sync(in); err != nil || !changed {
		t.Fatalf("first Sync = %v, %v; want true, nil", changed, err)
	}

	in.Time = 3
	changed, err := b.Sync(in)
	if err != nil || changed {
		t.Fatalf("time-only Sync = %v, %v; want false, nil", changed, err)
	}
	if b.NeedsUpdate {
		t.Error("NeedsUpdate set by a time-only change")
	}
	prog, _ := b.Program()
	if prog.Uniforms.Time != 3 {
		t.Errorf("time uniform = %v, want 3", prog.Uniforms.Time)
	}

	tests := []struct {
		name   string
		mutate func(*FrameInput)
	}{
		{"camera", func(in *FrameInput) { in.View.Position[0] = 1 }},
		{"resolution", func(in *FrameInput) { in.Width = 128 }},
		{"spin", func(in *FrameInput) { in.Params.Spin = 0.1 }},
		{"glow", func(in *FrameInput) { in.Params.GlowIntensity = 0.4 }},
		{"transparent", func(in *FrameInput) { in.Transparent = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBinder(t, nil)
			in := input()
			b.Sync(in)
			tt.mutate(&in)
			if changed, _ := b.Sync(in); !changed || !b.NeedsUpdate {
				t.Errorf("change not detected")
			}
		})
	}
}

func TestSyncMapsParameters(t *testing.T) {
	b := newBinder(t, nil)
	in := input()
	in.Params.DiskTexture = params.DiskHidden
	in.Params.MilkyWay = false
	in.Params.GlowIntensity = -1
	b.Sync(in)

	prog, _ := b.Program()
	u := prog.Uniforms
	if u.AccretionDisk || u.UseDiskTexture {
		t.Errorf("hidden disk: AccretionDisk=%v UseDiskTexture=%v", u.AccretionDisk, u.UseDiskTexture)
	}
	if u.BGIntensity != params.BackgroundFloor {
		t.Errorf("BGIntensity = %v, want floor", u.BGIntensity)
	}
	if u.GlowIntensity != 0 {
		t.Errorf("GlowIntensity = %v, want 0", u.GlowIntensity)
	}
	if u.Resolution != (mgl64.Vec2{64, 32}) {
		t.Errorf("Resolution = %v", u.Resolution)
	}
}

func TestSyncSnapshotsTextures(t *testing.T) {
	tex := &fakeTextures{}
	b := newBinder(t, tex)
	in := input()
	b.Sync(in)

	tex.h.Disk = image.NewNRGBA(image.Rect(0, 0, 2, 2))
	if changed, _ := b.Sync(in); !changed {
		t.Error("disk texture swap not detected")
	}
	prog, _ := b.Program()
	if prog.Uniforms.Textures.Disk != tex.h.Disk {
		t.Error("disk handle not bound")
	}
}

func TestRebuildDiscardsUniforms(t *testing.T) {
	b := newBinder(t, nil)
	in := input()
	in.Params.Spin = 0.5
	b.Sync(in)

	if err := b.Rebuild(quality.High); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	prog, err := b.Program()
	if err != nil {
		t.Fatal(err)
	}
	if prog.Defines.NSteps != quality.High.Steps {
		t.Errorf("NSteps = %d, want %d", prog.Defines.NSteps, quality.High.Steps)
	}
	if prog.Uniforms.Spin != 0 {
		t.Errorf("old uniforms survived rebuild: spin %v", prog.Uniforms.Spin)
	}
	if changed, _ := b.Sync(in); !changed {
		t.Error("first Sync after rebuild reported no change")
	}
	if b.Profile() != quality.High {
		t.Errorf("Profile = %v", b.Profile())
	}
}

func TestRebuildFailureLosesProgram(t *testing.T) {
	b := newBinder(t, nil)
	err := b.Rebuild(quality.Profile{StepSize: 0.1, Steps: 0, Segments: 8})
	if !errors.Is(err, ErrProgramLost) {
		t.Fatalf("Rebuild err = %v, want ErrProgramLost", err)
	}
	if _, err := b.Sync(input()); !errors.Is(err, ErrProgramLost) {
		t.Errorf("Sync after loss: %v", err)
	}
	if _, err := b.Program(); !errors.Is(err, ErrProgramLost) {
		t.Errorf("Program after loss: %v", err)
	}
	if err := b.Rebuild(quality.Low); !errors.Is(err, ErrProgramLost) {
		t.Errorf("Rebuild after loss: %v", err)
	}
}

func TestRelease(t *testing.T) {
	b := newBinder(t, nil)
	b.Release()
	if _, err := b.Program(); !errors.Is(err, ErrProgramLost) {
		t.Errorf("Program after Release: %v", err)
	}
}
