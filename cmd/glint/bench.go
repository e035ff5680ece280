package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/taigrr/glint/pkg/render"
)

// benchResult aggregates repeated renders of one scene.
type benchResult struct {
	Width, Height int
	Samples       int
	Runs          int
	Total         time.Duration
	Fastest       time.Duration
	Slowest       time.Duration
	Coverage      float64
}

func (b *benchResult) add(stats render.RenderStats) {
	if b.Runs == 0 || stats.Elapsed < b.Fastest {
		b.Fastest = stats.Elapsed
	}
	if stats.Elapsed > b.Slowest {
		b.Slowest = stats.Elapsed
	}
	b.Runs++
	b.Total += stats.Elapsed
	b.Coverage = stats.Coverage()
}

// Mean returns the average render time.
func (b benchResult) Mean() time.Duration {
	if b.Runs == 0 {
		return 0
	}
	return b.Total / time.Duration(b.Runs)
}

// SamplesPerSecond returns camera rays traced per second across all runs.
func (b benchResult) SamplesPerSecond() float64 {
	if b.Total <= 0 {
		return 0
	}
	rays := float64(b.Width * b.Height * b.Samples * b.Runs)
	return rays / b.Total.Seconds()
}

// writeSummary prints a one-line report, styled when w is a terminal.
func writeSummary(w io.Writer, b benchResult) {
	out := termenv.NewOutput(w)
	label := func(s string) string { return out.String(s).Faint().String() }
	value := func(s string) string { return out.String(s).Bold().Foreground(out.Color("6")).String() }

	fmt.Fprintf(w, "%s %s  %s %s  %s %s  %s %s  %s %s  %s %s\n",
		label("size"), value(fmt.Sprintf("%dx%d", b.Width, b.Height)),
		label("spp"), value(fmt.Sprint(b.Samples)),
		label("mean"), value(b.Mean().Round(time.Millisecond).String()),
		label("min"), value(b.Fastest.Round(time.Millisecond).String()),
		label("coverage"), value(fmt.Sprintf("%.1f%%", b.Coverage*100)),
		label("rays/s"), value(fmt.Sprintf("%.2fM", b.SamplesPerSecond()/1e6)),
	)
}

func newBenchCmd(logger func(io.Writer) *slog.Logger) *cobra.Command {
	var (
		flags         renderFlags
		scenePath     string
		width, height int
		repeat        int
	)

	cmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "Render headless and report timing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger(cmd.ErrOrStderr())
			if len(args) == 1 {
				scenePath = args[0]
			}

			if width <= 0 || height <= 0 {
				return fmt.Errorf("invalid size %dx%d", width, height)
			}
			if repeat <= 0 {
				return fmt.Errorf("invalid repeat count %d", repeat)
			}

			desc, err := loadDescription(scenePath)
			if err != nil {
				return err
			}
			cam, err := desc.RenderCamera()
			if err != nil {
				return fmt.Errorf("scene camera: %w", err)
			}

			r := render.NewRenderer(flags.options(cmd.Flags(), desc))
			opts := r.Options()
			log.Debug("bench start", "scene", scenePath, "width", width, "height", height,
				"samples", opts.Samples, "workers", opts.Workers)

			result := benchResult{Width: width, Height: height, Samples: opts.Samples}
			for i := range repeat {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				sc, err := desc.Build()
				if err != nil {
					return fmt.Errorf("build scene: %w", err)
				}
				_, stats := r.Render(sc, cam.FitAspect(width, height), width, height, desc.LightPosition())
				result.add(stats)
				log.Info("render", "run", i+1, "elapsed", stats.Elapsed,
					"hits", stats.Hits, "shadow_rays", stats.ShadowRays)
			}

			writeSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&width, "width", 480, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 480, "Image height in pixels")
	cmd.Flags().IntVarP(&repeat, "repeat", "r", 3, "Number of renders")
	return cmd
}
