package raster

import (
	"runtime"
	"sync"
)

// Kernel shades one pixel. It must not share mutable state between calls:
// Dispatch runs it concurrently for different pixels in any order.
type Kernel func(x, y int) Color

// Dispatch runs k for every pixel of fb using a worker pool fed with rows,
// and returns once every row is written.
func Dispatch(fb *FrameBuffer, workers int, k Kernel) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > fb.Height {
		workers = fb.Height
	}
	if workers <= 1 {
		for y := 0; y < fb.Height; y++ {
			shadeRow(fb, y, k)
		}
		return
	}

	rows := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				shadeRow(fb, y, k)
			}
		}()
	}

	for y := 0; y < fb.Height; y++ {
		rows <- y
	}
	close(rows)

	wg.Wait()
}

func shadeRow(fb *FrameBuffer, y int, k Kernel) {
	for x := 0; x < fb.Width; x++ {
		fb.Set(x, y, k(x, y))
	}
}
