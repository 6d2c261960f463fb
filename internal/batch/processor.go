package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"kerr-renderer/internal/postprocess"
)

// Renderer produces the frame at elapsed seconds. The returned image may be
// reused by the next call.
type Renderer interface {
	Tick(elapsed float64) (*image.NRGBA, error)
}

// Config holds the settings of a sequence export.
type Config struct {
	OutputDir   string
	Frames      int
	FPS         float64
	Start       float64 // seconds of scene time at frame 0
	Supersample int
	Workers     int // encoder goroutines
	Log         *zap.Logger
}

// Result holds the outcome of writing one frame.
type Result struct {
	Index   int
	Time    float64
	Image   string
	Success bool
	Error   string
}

type job struct {
	index int
	time  float64
	img   *image.NRGBA
}

// FrameName is the file name of frame i.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.webp", i)
}

// Run renders cfg.Frames frames at a fixed time step on the calling
// goroutine and encodes them on a worker pool. A render failure stops the
// sequence; frames already handed to the pool are still written.
func Run(cfg Config, r Renderer) ([]Result, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Frames <= 0 {
		return nil, nil
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("batch: invalid fps %v", cfg.FPS)
	}
	workers := max(cfg.Workers, 1)
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: create %s: %w", cfg.OutputDir, err)
	}

	total := cfg.Frames
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Encoder pool
	jobs := make(chan job, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = writeFrame(cfg, j)
				processed.Add(1)
			}
		}()
	}

	var renderErr error
	rendered := 0
	for i := 0; i < total; i++ {
		t := cfg.Start + float64(i)/cfg.FPS
		img, err := r.Tick(t)
		if err != nil {
			renderErr = fmt.Errorf("batch: render frame %d: %w", i, err)
			break
		}
		jobs <- job{index: i, time: t, img: cloneNRGBA(img)}
		rendered++
	}
	close(jobs)

	wg.Wait()
	close(done)

	results = results[:rendered]
	log.Info("sequence written",
		zap.Int("frames", rendered),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("dir", cfg.OutputDir))
	return results, renderErr
}

func writeFrame(cfg Config, j job) Result {
	res := Result{Index: j.index, Time: j.time, Image: FrameName(j.index)}

	img := postprocess.DownsampleBy(j.img, cfg.Supersample)

	if err := WriteWebP(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// WriteWebP encodes img losslessly to path.
func WriteWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}

	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("batch: WebP encode %s: %w", path, err)
	}
	return f.Close()
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
