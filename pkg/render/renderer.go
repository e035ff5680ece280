// Package render turns a scene into pixels: it generates camera rays,
// shades hits with the Phong model, accumulates jittered samples into a
// float RGB buffer, and presents that buffer on a terminal.
package render

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/glint/pkg/math3d"
	"github.com/taigrr/glint/pkg/scene"
)

const (
	DefaultSamples = 64  // Samples per pixel
	DefaultGamma   = 2.2 // Display gamma
	DefaultSeed    = 42
)

// Options controls the sampling loop.
type Options struct {
	Samples int // Samples per pixel, at least 1

	// Workers is the number of goroutines rows are spread over. 1 renders
	// on the calling goroutine; 0 or less uses one worker per CPU.
	Workers int

	Gamma float64 // Each channel is raised to 1/Gamma

	// GammaAfterAverage applies gamma once to the averaged linear color
	// instead of to every sample before summing.
	GammaAfterAverage bool

	Source SamplerSource // Jitter for each row; nil uses DefaultSeed
}

// DefaultOptions returns single-threaded, seeded, 64-sample settings.
func DefaultOptions() Options {
	return Options{
		Samples: DefaultSamples,
		Workers: 1,
		Gamma:   DefaultGamma,
		Source:  SeededSource(DefaultSeed),
	}
}

func (o Options) normalized() Options {
	if o.Samples < 1 {
		o.Samples = 1
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Gamma <= 0 {
		o.Gamma = DefaultGamma
	}
	if o.Source == nil {
		o.Source = SeededSource(DefaultSeed)
	}
	return o
}

// RenderStats summarizes one render call.
type RenderStats struct {
	Width, Height int
	Pixels        int           // Width * Height
	Samples       int           // Primary rays cast
	Hits          int           // Primary rays that hit a surface
	ShadowRays    int           // Visibility queries issued while shading
	Elapsed       time.Duration // Wall time of the render
}

// Coverage returns the fraction of primary rays that hit a surface.
func (s RenderStats) Coverage() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Samples)
}

// Renderer drives the per-pixel sampling loop.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer. Out-of-range options are replaced by
// their defaults.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts.normalized()}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render renders a single-threaded image with samplesPerPixel samples and
// DefaultSeed, so repeated calls return the same buffer. Callers that need a
// different seed or their own sampler should use
// NewRenderer(Options{Source: ...}) instead. See Renderer.Render for the
// buffer layout.
func Render(sc *scene.Scene, cam Camera, width, height, samplesPerPixel int, light math3d.Vec3) []float64 {
	opts := DefaultOptions()
	opts.Samples = samplesPerPixel
	buf, _ := NewRenderer(opts).Render(sc, cam, width, height, light)
	return buf
}

// Render returns a freshly allocated buffer of width*height*3 floats:
// row-major, RGB per pixel, values in [0,1]. Row 0 is the bottom of the
// image. Non-positive dimensions yield an empty buffer. Render never fails.
func (r *Renderer) Render(sc *scene.Scene, cam Camera, width, height int, light math3d.Vec3) ([]float64, RenderStats) {
	start := time.Now()
	stats := RenderStats{Width: width, Height: height}
	if width <= 0 || height <= 0 {
		stats.Elapsed = time.Since(start)
		return []float64{}, stats
	}

	buf := make([]float64, width*height*3)
	rows := make([]rowStats, height)

	renderRow := func(j int) {
		row := buf[j*width*3 : (j+1)*width*3]
		rows[j] = r.renderRow(sc, cam, light, j, width, height, row)
	}

	if r.opts.Workers == 1 {
		for j := range height {
			renderRow(j)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(r.opts.Workers)
		for j := range height {
			g.Go(func() error {
				renderRow(j)
				return nil
			})
		}
		_ = g.Wait()
	}

	stats.Pixels = width * height
	stats.Samples = stats.Pixels * r.opts.Samples
	for _, rs := range rows {
		stats.Hits += rs.hits
		stats.ShadowRays += rs.shadowRays
	}
	stats.Elapsed = time.Since(start)
	return buf, stats
}

type rowStats struct {
	hits       int
	shadowRays int
}

// renderRow fills row (3 floats per pixel) for image row j.
func (r *Renderer) renderRow(sc *scene.Scene, cam Camera, light math3d.Vec3, j, width, height int, row []float64) rowStats {
	var rs rowStats
	sampler := r.opts.Source(j)
	n := r.opts.Samples
	invGamma := 1 / r.opts.Gamma

	for i := range width {
		var sum math3d.Vec3
		for range n {
			uOffset := sampler.Float64()
			vOffset := sampler.Float64()
			ray := cam.GenerateRay(i, j, width, height, uOffset, vOffset)

			var color math3d.Vec3
			if hit, ok := sc.Intersect(ray); ok {
				color = Shade(hit, light, cam.Eye, sc)
				rs.hits++
				rs.shadowRays++
			}

			if !r.opts.GammaAfterAverage {
				color = color.Pow(invGamma)
			}
			sum = sum.Add(color)
		}

		avg := sum.Div(float64(n))
		if r.opts.GammaAfterAverage {
			avg = avg.Pow(invGamma)
		}

		row[i*3] = avg.X
		row[i*3+1] = avg.Y
		row[i*3+2] = avg.Z
	}

	return rs
}
