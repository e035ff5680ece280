package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/glint/pkg/render"
	"github.com/taigrr/glint/pkg/scenefile"
)

// viewer holds everything the terminal loop needs between frames. It has no
// terminal of its own so it can be driven from tests.
type viewer struct {
	desc    scenefile.Description
	name    string
	full    *render.Renderer
	preview *render.Renderer
	orbit   *LightOrbit
	log     *slog.Logger

	fb      *render.Framebuffer
	showHUD bool
	dirty   bool // full render needed
	last    render.RenderStats
	lastErr error
}

func newViewer(desc scenefile.Description, name string, full, preview render.Options, fps int, log *slog.Logger) *viewer {
	return &viewer{
		desc:    desc,
		name:    name,
		full:    render.NewRenderer(full),
		preview: render.NewRenderer(preview),
		orbit:   NewLightOrbit(desc.LightPosition(), orbitPivot(desc), fps),
		log:     log,
		fb:      render.NewFramebuffer(0, 0),
		showHUD: true,
		dirty:   true,
	}
}

// Resize rebuilds the framebuffer for a terminal of cols x rows cells. Each
// cell shows two pixels stacked vertically. The new buffer starts black
// until the next frame is blitted.
func (v *viewer) Resize(cols, rows int) {
	v.fb = render.NewFramebuffer(max(cols, 0), max(rows, 0)*2)
	v.fb.Clear(render.ColorBlack)
	v.dirty = true
}

// SetDescription swaps in a reloaded scene.
func (v *viewer) SetDescription(d scenefile.Description) {
	v.desc = d
	v.orbit.Rebase(d.LightPosition(), orbitPivot(d))
	v.dirty = true
}

// HandleKey applies a key press and reports whether the viewer should quit.
func (v *viewer) HandleKey(ev uv.KeyPressEvent) (quit bool) {
	switch {
	case ev.MatchString("q", "escape", "ctrl+c"):
		return true
	case ev.MatchString("a", "left"):
		v.orbit.Nudge(-1, 0)
	case ev.MatchString("d", "right"):
		v.orbit.Nudge(1, 0)
	case ev.MatchString("w", "up"):
		v.orbit.Nudge(0, 1)
	case ev.MatchString("s", "down"):
		v.orbit.Nudge(0, -1)
	case ev.MatchString("r"):
		v.orbit.Reset()
	case ev.MatchString("?"), ev.MatchString("shift+/"):
		v.showHUD = !v.showHUD
		v.dirty = true
	}
	return false
}

// Step advances the light and renders when something changed. While the
// light moves frames use the preview renderer; once it settles one full
// quality frame follows. It reports whether the framebuffer was redrawn.
func (v *viewer) Step() bool {
	moving := v.orbit.Update()
	switch {
	case moving:
		v.renderWith(v.preview)
		v.dirty = true
		return true
	case v.dirty:
		v.renderWith(v.full)
		v.dirty = false
		return true
	}
	return false
}

func (v *viewer) renderWith(r *render.Renderer) {
	w, h := v.fb.Width, v.fb.Height
	if w <= 0 || h <= 0 {
		return
	}

	err := v.renderFrame(r, w, h)
	if err != nil && (v.lastErr == nil || err.Error() != v.lastErr.Error()) {
		v.log.Warn("render frame", "err", err)
	}
	v.lastErr = err
}

func (v *viewer) renderFrame(r *render.Renderer, w, h int) error {
	cam, err := v.desc.RenderCamera()
	if err != nil {
		return fmt.Errorf("scene camera: %w", err)
	}
	// Scenes are rebuilt every frame; the description is the only state kept.
	sc, err := v.desc.Build()
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	buf, stats := r.Render(sc, cam.FitAspect(w, h), w, h, v.orbit.Position())
	v.fb.Blit(buf, w, h)
	v.last = stats
	v.log.Debug("frame", "width", w, "height", h, "samples", r.Options().Samples,
		"surfaces", sc.Len(), "elapsed", stats.Elapsed)
	return nil
}

// hudLine summarizes the last frame.
func (v *viewer) hudLine() string {
	return fmt.Sprintf(" %s  %dx%d  %d spp  %s ",
		v.name, v.last.Width, v.last.Height,
		v.last.Samples/max(v.last.Pixels, 1),
		v.last.Elapsed.Round(time.Millisecond))
}

// Draw implements uv.Drawable.
func (v *viewer) Draw(scr uv.Screen, area uv.Rectangle) {
	v.fb.Draw(scr, area)
	if !v.showHUD {
		return
	}
	DrawHUD(scr, area, v.hudLine(), v.lastErr)
}

// DrawHUD writes the status line at the top and the key hints at the bottom.
func DrawHUD(scr uv.Screen, area uv.Rectangle, status string, err error) {
	render.DrawText(scr, area.Min.X, area.Min.Y, status, render.ColorGreen, render.ColorBlack)
	if err != nil {
		render.DrawText(scr, area.Min.X, area.Min.Y+1, " "+err.Error()+" ", render.ColorRed, render.ColorBlack)
	}
	hint := " a/d w/s: move light  r: reset  ?: hud  q: quit "
	render.DrawText(scr, area.Min.X, area.Max.Y-1, hint, render.ColorYellow, render.ColorBlack)
}

type viewConfig struct {
	scenePath      string
	fps            int
	previewSamples int
	watch          bool
	logFile        string
}

func newViewCmd(logger func(io.Writer) *slog.Logger) *cobra.Command {
	var (
		flags renderFlags
		cfg   viewConfig
	)

	cmd := &cobra.Command{
		Use:   "view [scene]",
		Short: "Render a scene in the terminal",
		Long: "Renders the built-in scene, or a .toml/.gltf/.glb scene file, in the terminal.\n" +
			"The image is re-rendered whenever the terminal is resized or the light moves.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.scenePath = args[0]
			}
			if cfg.fps <= 0 {
				return fmt.Errorf("invalid fps %d", cfg.fps)
			}
			if cfg.watch && cfg.scenePath == "" {
				return fmt.Errorf("--watch needs a scene file")
			}

			logOut := io.Discard
			if cfg.logFile != "" {
				f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}

			desc, err := loadDescription(cfg.scenePath)
			if err != nil {
				return err
			}

			full := flags.options(cmd.Flags(), desc)
			preview := full
			preview.Samples = min(cfg.previewSamples, full.Samples)

			return runView(cmd.Context(), desc, cfg, full, preview, logger(logOut))
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&cfg.fps, "fps", 30, "Target FPS while the light moves")
	cmd.Flags().IntVar(&cfg.previewSamples, "preview-samples", 2, "Samples per pixel while the light moves")
	cmd.Flags().BoolVarP(&cfg.watch, "watch", "w", false, "Reload the scene file when it changes")
	cmd.Flags().StringVar(&cfg.logFile, "log-file", "", "Append logs to this file")
	return cmd
}

func runView(ctx context.Context, desc scenefile.Description, cfg viewConfig, full, preview render.Options, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	name := "default scene"
	if cfg.scenePath != "" {
		name = filepath.Base(cfg.scenePath)
	}
	v := newViewer(desc, name, full, preview, cfg.fps, log)

	reloads := make(chan scenefile.Description, 1)
	if cfg.watch {
		watcher, err := newSceneWatcher(cfg.scenePath, log)
		if err != nil {
			return err
		}
		defer watcher.Close()
		go watcher.Run(ctx, reloads)
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		log.Warn("resize terminal", "err", err)
	}
	v.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			log.Warn("shutdown terminal", "err", err)
		}
	}()

	log.Info("view start", "scene", name, "cols", width, "rows", height,
		"samples", full.Samples, "preview_samples", preview.Samples)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.fps))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				if err := term.Resize(width, height); err != nil {
					log.Warn("resize terminal", "err", err)
				}
				v.Resize(width, height)
				log.Debug("resize", "cols", width, "rows", height)
			case uv.KeyPressEvent:
				if v.HandleKey(ev) {
					return nil
				}
			}

		case d := <-reloads:
			v.SetDescription(d)
			log.Info("scene reloaded", "scene", name, "surfaces", len(d.Surfaces))

		case <-ticker.C:
			if !v.Step() {
				continue
			}
			term.Draw(v)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
