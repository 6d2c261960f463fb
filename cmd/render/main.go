package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"kerr-renderer/internal/batch"
	"kerr-renderer/internal/config"
	"kerr-renderer/internal/frame"
	"kerr-renderer/internal/logging"
	"kerr-renderer/internal/settings"
	"kerr-renderer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	frames := flag.Int("frames", 0, "Number of frames to render (default: 1)")
	fps := flag.Float64("fps", 0, "Frames per second of scene time (default: 30)")
	start := flag.Float64("start", 0, "Scene time of the first frame in seconds")
	width := flag.Int("width", 0, "Output width (default: 640)")
	height := flag.Int("height", 0, "Output height (default: 360)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	assetDir := flag.String("assets", "", "Texture directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	settingsFile := flag.String("settings", "", "Parameter file to read (never written)")
	debug := flag.Bool("debug", false, "Verbose logging")
	overrides := map[string]any{}
	flag.Func("set", "Override a parameter, key=value (repeatable)", func(s string) error {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return fmt.Errorf("want key=value, got %q", s)
		}
		overrides[k] = parseValue(v)
		return nil
	})

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		AssetDir:     *assetDir,
		OutputDir:    *outputDir,
		SettingsFile: *settingsFile,
		Width:        *width,
		Height:       *height,
		Workers:      *workers,
		Frames:       *frames,
		FPS:          *fps,
		Debug:        *debug,
	})

	log := logging.Must(cfg.Debug)
	defer log.Sync()

	// Parameters: a detached copy so overrides never touch the file.
	fileStore, err := settings.Open(cfg.SettingsFile, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	store := fileStore.Copy()
	for k, v := range overrides {
		if err := store.Set(k, v); err != nil {
			fmt.Fprintf(os.Stderr, "Error: -set %s: %v\n", k, err)
			os.Exit(1)
		}
	}

	// Build texture index
	texIndex := texture.BuildIndex(cfg.AssetDir)
	texCache := texture.NewCache(texIndex, log)
	textures := texture.NewSet(texture.NewFallback(texCache, log), log)
	fmt.Printf("Textures: %d indexed in %s\n", texIndex.Len(), cfg.AssetDir)

	ss := cfg.Supersample
	driver, err := frame.New(store, textures, frame.Options{
		Width:       cfg.Width * ss,
		Height:      cfg.Height * ss,
		Workers:     cfg.Workers,
		Exposure:    cfg.Exposure,
		Transparent: cfg.Transparent,
	}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer driver.Close()

	fmt.Printf("Kerr black hole renderer → WebP\n")
	fmt.Printf("Frames: %d at %.0f fps, %dx%d (x%d), Workers: %d\n",
		cfg.Frames, cfg.FPS, cfg.Width, cfg.Height, ss, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	t0 := time.Now()

	results, runErr := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Frames:      cfg.Frames,
		FPS:         cfg.FPS,
		Start:       *start,
		Supersample: ss,
		Workers:     cfg.Workers,
		Log:         log,
	}, driver)

	elapsed := time.Since(t0)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, cfg.Frames)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Image, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, cfg.FPS, cfg.Width, cfg.Height, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// parseValue reads a -set value as a bool, a number or a string.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
