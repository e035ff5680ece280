// glint - Terminal Phong Ray Caster
// Renders spheres and planes lit by a point light, with shadows and
// jittered supersampling, straight into your terminal.
//
// Controls (view):
//
//	A/D or Left/Right - Orbit the light around the scene
//	W/S or Up/Down    - Raise/lower the light
//	R                 - Reset the light
//	?                 - Toggle HUD overlay
//	Q/Esc             - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taigrr/glint/pkg/render"
	"github.com/taigrr/glint/pkg/scenefile"
)

var version = "dev"

// renderFlags are shared by every command that renders.
type renderFlags struct {
	samples           int
	workers           int
	seed              uint64
	gammaAfterAverage bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.samples, "samples", "n", render.DefaultSamples, "Samples per pixel (overrides the scene file)")
	fs.IntVarP(&f.workers, "workers", "j", 0, "Render goroutines (0 = one per CPU)")
	fs.Uint64Var(&f.seed, "seed", render.DefaultSeed, "Seed for the jitter sampler")
	fs.BoolVar(&f.gammaAfterAverage, "gamma-after-average", false, "Gamma correct the averaged pixel instead of each sample")
}

// options merges the flags with the scene's own sample count. An explicit
// --samples always wins.
func (f *renderFlags) options(fs *pflag.FlagSet, d scenefile.Description) render.Options {
	samples := f.samples
	if !fs.Changed("samples") && d.Samples > 0 {
		samples = d.Samples
	}
	return render.Options{
		Samples:           samples,
		Workers:           f.workers,
		Gamma:             render.DefaultGamma,
		GammaAfterAverage: f.gammaAfterAverage,
		Source:            render.SeededSource(f.seed),
	}
}

// loadDescription reads a scene file, or returns the built-in scene for an
// empty path.
func loadDescription(path string) (scenefile.Description, error) {
	if path == "" {
		return scenefile.Default(), nil
	}
	d, err := scenefile.Load(path)
	if err != nil {
		return scenefile.Description{}, fmt.Errorf("load scene: %w", err)
	}
	return d, nil
}

// newLogger returns a text logger writing to w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "glint",
		Short: "Terminal Phong ray caster",
		Long: "glint casts rays through a pinhole camera into a scene of spheres and planes,\n" +
			"shades hits with the Phong model and a shadow ray, and shows the result in the terminal.",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	logger := func(w io.Writer) *slog.Logger { return newLogger(w, verbose) }

	root.AddCommand(
		newViewCmd(logger),
		newBenchCmd(logger),
		newSceneCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}
