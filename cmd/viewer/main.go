package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"kerr-renderer/internal/config"
	"kerr-renderer/internal/frame"
	"kerr-renderer/internal/logging"
	"kerr-renderer/internal/panel"
	"kerr-renderer/internal/settings"
	"kerr-renderer/internal/texture"
	"kerr-renderer/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	assetDir := flag.String("assets", "", "Texture directory (default: auto-detect)")
	settingsFile := flag.String("settings", "", "Parameter file (default: user config dir)")
	width := flag.Int("width", 0, "Window width (default: 640)")
	height := flag.Int("height", 0, "Window height (default: 360)")
	workers := flag.Int("workers", 0, "Number of shading goroutines (default: NumCPU)")
	debug := flag.Bool("debug", false, "Verbose logging")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		AssetDir:     *assetDir,
		SettingsFile: *settingsFile,
		Width:        *width,
		Height:       *height,
		Workers:      *workers,
		Debug:        *debug,
	})

	log := logging.Must(cfg.Debug)
	defer log.Sync()

	store, err := settings.Open(cfg.SettingsFile, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	texIndex := texture.BuildIndex(cfg.AssetDir)
	textures := texture.NewSet(texture.NewFallback(texture.NewCache(texIndex, log), log), log)
	log.Info("textures indexed", zap.Int("count", texIndex.Len()), zap.String("dir", cfg.AssetDir))

	w := max(int(float64(cfg.Width)*cfg.RenderScale), 1)
	h := max(int(float64(cfg.Height)*cfg.RenderScale), 1)
	driver, err := frame.New(store, textures, frame.Options{
		Width:         w,
		Height:        h,
		Workers:       cfg.Workers,
		Exposure:      cfg.Exposure,
		AsyncTextures: true,
	}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer driver.Close()

	game := viewer.New(driver, panel.New(store), viewer.Options{RenderScale: cfg.RenderScale}, log)
	if err := viewer.Run(game, "Kerr black hole", cfg.Width, cfg.Height); err != nil {
		log.Error("viewer stopped", zap.Error(err))
		os.Exit(1)
	}
}
