package record

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"lowres3d/internal/present"
	"lowres3d/internal/raster"
	"lowres3d/internal/scene"
	"lowres3d/internal/screen"
)

// Config holds all shared resources for a recording run.
type Config struct {
	OutputDir string
	Format    string
	Scene     *scene.Scene
	Render    raster.Options // Width and Height are the logical frame size
	Fit       *screen.Fit
	Filter    present.Filter
	Workers   int

	// Progress is the interval between progress lines; zero disables them.
	Progress time.Duration
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index   int
	Path    string
	Stale   bool
	Success bool
	Error   string
}

// Run renders and encodes all frames using a worker pool.
func Run(cfg Config, frames []Frame) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
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
	}

	workers := max(cfg.Workers, 1)
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, f Frame) Result {
	res := Result{Index: f.Index, Stale: f.Stale}

	ext, err := Ext(cfg.Format)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	sc := cfg.Scene
	if sc != nil {
		sc = sc.At(f.Time)
	}
	img := raster.Render(sc, f.ViewProjection, cfg.Render)

	if cfg.Fit != nil {
		cw, ch := cfg.Fit.Canvas()
		img = present.Letterbox(img, cfg.Fit.Viewport(), cw, ch, cfg.Filter)
	}

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%05d%s", f.Index, ext))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	if err := writeFrame(outPath, img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Path = outPath
	res.Success = true
	return res
}

// writeFrame encodes img into a new file at path. The file is always closed,
// and a failed close is reported like a failed encode.
func writeFrame(path string, img image.Image, format string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, img, format); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("record: close %s: %w", path, err)
	}
	return nil
}
