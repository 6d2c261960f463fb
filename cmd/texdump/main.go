package main

import (
	"fmt"
	"os"

	"kerr-renderer/internal/raster"
	"kerr-renderer/internal/texture"
)

func main() {
	dir := "assets"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	idx := texture.BuildIndex(dir)
	fmt.Printf("%s: %d textures indexed\n", dir, idx.Len())

	failed := 0
	for _, stem := range idx.Stems() {
		path, _ := idx.ResolvePath(stem)
		img, err := texture.LoadTexture(path)
		if err != nil {
			fmt.Printf("ERR %-36s %v\n", stem, err)
			failed++
			continue
		}

		// Mean colour in linear light, as the shader sees it.
		var sum raster.Color
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i := img.PixOffset(x, y)
				sum.R += raster.SRGBToLinear(img.Pix[i])
				sum.G += raster.SRGBToLinear(img.Pix[i+1])
				sum.B += raster.SRGBToLinear(img.Pix[i+2])
				sum.A += float64(img.Pix[i+3]) / 255
			}
		}
		n := float64(b.Dx() * b.Dy())
		fmt.Printf("OK  %-36s %5dx%-5d mean=(%.3f, %.3f, %.3f) alpha=%.2f  %s\n",
			stem, b.Dx(), b.Dy(), sum.R/n, sum.G/n, sum.B/n, sum.A/n, path)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
