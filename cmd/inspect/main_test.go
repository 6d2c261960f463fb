package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"kerr-renderer/internal/binder"
	"kerr-renderer/internal/camera"
	"kerr-renderer/internal/params"
	"kerr-renderer/internal/quality"
)

func frameInput() binder.FrameInput {
	rig := camera.New()
	return binder.FrameInput{
		Params: params.Defaults(),
		View:   binder.View{Position: rig.Position, Forward: rig.Forward, Up: rig.Up},
		Width:  64,
		Height: 32,
	}
}

func TestReportWritesTrace(t *testing.T) {
	b, err := binder.New(quality.Low, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := report(&out, b, frameInput(), 32, 16); err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"Profile: ", "Horizon r+: ", "Result: ", "Colour (linear HDR): "} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestReportFailsOnLostProgram(t *testing.T) {
	b, err := binder.New(quality.Low, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	b.Rebuild(quality.Profile{StepSize: 0.1, Steps: 0, Segments: 8})

	var out bytes.Buffer
	err = report(&out, b, frameInput(), 32, 16)
	if !errors.Is(err, binder.ErrProgramLost) {
		t.Fatalf("report err = %v, want ErrProgramLost", err)
	}
	if out.Len() != 0 {
		t.Errorf("wrote output after a sync failure: %q", out.String())
	}
}
