package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/glint/pkg/render"
	"github.com/taigrr/glint/pkg/scenefile"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestBenchCommand(t *testing.T) {
	stdout, stderr, err := execute(t, "bench", "--width", "8", "--height", "6", "--repeat", "2", "-n", "1", "-j", "1")
	require.NoError(t, err)

	assert.Contains(t, stdout, "8x6")
	assert.Contains(t, stdout, "rays/s")
	assert.Contains(t, stderr, "run=2")
}

func TestBenchCommandRejectsBadSize(t *testing.T) {
	_, _, err := execute(t, "bench", "--width", "0")
	assert.Error(t, err)

	_, _, err = execute(t, "bench", "--repeat", "0")
	assert.Error(t, err)
}

func TestSceneCommand(t *testing.T) {
	stdout, _, err := execute(t, "scene")
	require.NoError(t, err)

	d, err := scenefile.Parse(bytes.NewBufferString(stdout))
	require.NoError(t, err)
	assert.Equal(t, scenefile.Default(), d)
}

func TestRenderFlagsOptions(t *testing.T) {
	desc := scenefile.Default()
	desc.Samples = 9

	newCmd := func(args ...string) (*cobra.Command, *renderFlags) {
		var f renderFlags
		cmd := &cobra.Command{}
		f.register(cmd.Flags())
		require.NoError(t, cmd.Flags().Parse(args))
		return cmd, &f
	}

	cmd, f := newCmd()
	opts := f.options(cmd.Flags(), desc)
	assert.Equal(t, 9, opts.Samples, "scene sample count applies by default")
	assert.Equal(t, render.DefaultGamma, opts.Gamma)
	assert.False(t, opts.GammaAfterAverage)

	cmd, f = newCmd("--samples", "3", "--gamma-after-average", "--workers", "2")
	opts = f.options(cmd.Flags(), desc)
	assert.Equal(t, 3, opts.Samples, "explicit flag wins")
	assert.Equal(t, 2, opts.Workers)
	assert.True(t, opts.GammaAfterAverage)

	desc.Samples = 0
	cmd, f = newCmd()
	assert.Equal(t, render.DefaultSamples, f.options(cmd.Flags(), desc).Samples)
}

func TestBenchResult(t *testing.T) {
	var b benchResult
	assert.Zero(t, b.Mean())
	assert.Zero(t, b.SamplesPerSecond())

	b = benchResult{Width: 10, Height: 10, Samples: 4}
	b.add(render.RenderStats{Elapsed: 2 * time.Second, Samples: 400, Hits: 100})
	b.add(render.RenderStats{Elapsed: time.Second, Samples: 400, Hits: 100})

	assert.Equal(t, 1500*time.Millisecond, b.Mean())
	assert.Equal(t, time.Second, b.Fastest)
	assert.Equal(t, 2*time.Second, b.Slowest)
	assert.InDelta(t, 0.25, b.Coverage, 1e-12)
	assert.InDelta(t, 800.0/3, b.SamplesPerSecond(), 1e-9)
}
