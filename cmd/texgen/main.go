package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"kerr-renderer/internal/texture"
)

func main() {
	outDir := flag.String("output", "assets", "Directory to write textures into")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names := make([]string, 0, len(texture.Procedural))
	for name := range texture.Procedural {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(*outDir, name)
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Printf("SKIP %s (exists)\n", path)
			continue
		}
		if err := writePNG(path, texture.Procedural[name]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK   %s\n", path)
	}
}

func writePNG(path string, gen texture.Generator) error {
	img := gen()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
