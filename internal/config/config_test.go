package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"asset_dir": "/data/assets", "width": 320, "transparent": true, "fps": 24}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AssetDir != "/data/assets" || cfg.Width != 320 || !cfg.Transparent || cfg.FPS != 24 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{AssetDir: "a", Width: 100, Supersample: 3}
	cfg.Resolve(Flags{AssetDir: "b", Width: 200, Frames: 12, Debug: true})

	if cfg.AssetDir != "b" || cfg.Width != 200 || cfg.Frames != 12 || !cfg.Debug {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Supersample != 3 {
		t.Errorf("file value lost: supersample %d", cfg.Supersample)
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	tests := []struct {
		name      string
		got, want any
	}{
		{"width", cfg.Width, 640},
		{"height", cfg.Height, 360},
		{"supersample", cfg.Supersample, 1},
		{"workers", cfg.Workers, runtime.NumCPU()},
		{"exposure", cfg.Exposure, 1.0},
		{"frames", cfg.Frames, 1},
		{"fps", cfg.FPS, 30.0},
		{"render scale", cfg.RenderScale, 0.5},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if cfg.AssetDir == "" || cfg.OutputDir == "" || cfg.SettingsFile == "" {
		t.Errorf("paths not defaulted: %+v", cfg)
	}
}
