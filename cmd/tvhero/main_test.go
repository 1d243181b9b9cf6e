package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/tvhero/internal/config"
	"github.com/depeter/tvhero/internal/palette"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	cmd := newRootCmd()
	path := writeConfig(t, "[log]\nlevel = \"warn\"\n")
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--reduced-motion", "--log-level", "debug"}))

	opts := &options{configPath: path, reducedMotion: true, logLevel: "debug"}
	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.True(t, cfg.UI.ReducedMotion)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cmd := newRootCmd()
	path := writeConfig(t, "[hero]\naspect_ratio = \"21/9\"\n")

	_, err := loadConfig(cmd, &options{configPath: path})
	assert.ErrorIs(t, err, config.ErrUnknownAspectRatio)
}

func TestExtractColorFromLocalFile(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "art.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	c, err := extractColor(context.Background(), config.DefaultConfig(), path)
	require.NoError(t, err)
	assert.Equal(t, palette.CachedColor{R: 40, G: 80, B: 120, IsDark: true}, c)

	var out bytes.Buffer
	printColor(&out, c)
	assert.Equal(t, "rgb(40, 80, 120)\tdark=true\n", out.String())
}

func TestColorCommandRequiresOneArg(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"color"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
