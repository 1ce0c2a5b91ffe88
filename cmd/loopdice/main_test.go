package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/loopdice/internal/games/loop/core"
)

func TestResolveGameID(t *testing.T) {
	logger = newLogger(io.Discard, log.ErrorLevel)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		want string
	}{
		{"", "loop"},
		{"corrected", "loop"},
		{"classic", "loop_classic"},
		{"rigged", "loop_rigged"},
		{"loop_classic", "loop_classic"},
	}
	for _, tt := range tests {
		got, err := resolveGameID(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := resolveGameID("snake")
	assert.Error(t, err)
}

func TestVariantPreset(t *testing.T) {
	p, err := variantPreset("")
	require.NoError(t, err)
	assert.Empty(t, p)

	p, err = variantPreset("rigged")
	require.NoError(t, err)
	assert.Equal(t, string(core.VariantRigged), string(p))

	_, err = variantPreset("fair")
	assert.Error(t, err)
}

func TestSimulationRecord(t *testing.T) {
	rec := simulationRecord(core.SimulationReport{
		Variant:  core.VariantClassic,
		Strategy: core.StrategyClockwise,
		Rounds:   10,
		Stake:    100,
		Cost:     1000,
		Revenue:  1500,
		Net:      500,
		ROI:      0.5,
		Wins:     6,
		Losses:   4,
	}, 42)

	assert.Equal(t, "classic", rec.Variant)
	assert.Equal(t, "cw", rec.Strategy)
	assert.Equal(t, int64(42), rec.Seed)
	assert.Equal(t, 500, rec.Net)
	assert.InDelta(t, 0.5, rec.ROI, 1e-9)
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "23234", portOf(":23234"))
	assert.Equal(t, "2222", portOf("0.0.0.0:2222"))
	assert.Equal(t, "nonsense", portOf("nonsense"))
}

func TestRedirectLogRestoresStderrWhenFileUnavailable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	// A regular file where the log directory should be makes the open fail.
	require.NoError(t, os.WriteFile(filepath.Join(home, ".loopdice"), nil, 0o644))

	var during bytes.Buffer
	logger = newLogger(&during, log.InfoLevel)
	restore := redirectLogToFile()
	during.Reset()

	logger.Info("while playing")
	assert.Empty(t, during.String())

	stderr, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = stderr
	t.Cleanup(func() { os.Stderr = orig })

	restore()
	logger.Info("after playing")

	out, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	assert.Contains(t, string(out), "after playing")
}
