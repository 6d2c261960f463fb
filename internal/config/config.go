package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	AssetDir     string `json:"asset_dir"`
	OutputDir    string `json:"output_dir"`
	SettingsFile string `json:"settings_file"`

	// Render settings
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Exposure    float64 `json:"exposure"`
	Transparent bool    `json:"transparent"`

	// Sequence export
	Frames int     `json:"frames"`
	FPS    float64 `json:"fps"`

	// Viewer
	RenderScale float64 `json:"render_scale"`

	Debug bool `json:"debug"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.SettingsFile != "" {
		c.SettingsFile = flags.SettingsFile
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Debug {
		c.Debug = true
	}

	if c.AssetDir == "" {
		c.AssetDir = detectAssetDir()
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.SettingsFile == "" {
		c.SettingsFile = defaultSettingsFile()
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 360
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Exposure <= 0 {
		c.Exposure = 1
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.RenderScale <= 0 || c.RenderScale > 1 {
		c.RenderScale = 0.5
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir     string
	OutputDir    string
	SettingsFile string
	Width        int
	Height       int
	Workers      int
	Frames       int
	FPS          float64
	Debug        bool
}

func detectAssetDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if isDir(filepath.Join(base, "assets")) {
				return filepath.Join(base, "assets")
			}
		}
	}

	cwd, _ := os.Getwd()
	if isDir(filepath.Join(cwd, "assets")) {
		return filepath.Join(cwd, "assets")
	}
	return "assets"
}

func defaultSettingsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kerr-settings.json"
	}
	return filepath.Join(dir, "kerr-renderer", "settings.json")
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
