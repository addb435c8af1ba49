package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/tilegate/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := config.Defaults()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 32.0, cfg.World.TileSize)
	assert.Equal(t, 30.0, cfg.Player.Acceleration)
	assert.Equal(t, 300.0, cfg.Player.MaxSpeed)
	assert.Equal(t, 10.0, cfg.Player.Deceleration)
	assert.Equal(t, "E", cfg.Controls.Interact)
	assert.Equal(t, 1, cfg.Levels.First)
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := config.Parse(`
[window]
title = "custom"

[player]
max_speed = 120.5

[controls]
left = ["Q"]

[logging]
format = "json"
`)
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width, "untouched keys keep defaults")
	assert.Equal(t, 120.5, cfg.Player.MaxSpeed)
	assert.Equal(t, 30.0, cfg.Player.Acceleration)
	assert.Equal(t, []string{"Q"}, cfg.Controls.Left)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := config.Parse(`
[world]
tile_sise = 16
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "world.tile_sise")
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := config.Parse(`
[window]
tps = 0

[world]
cell_size = -1

[logging]
format = "xml"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.tps")
	assert.Contains(t, err.Error(), "world.cell_size")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestParseSyntaxError(t *testing.T) {
	_, err := config.Parse(`[window`)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilegate.toml")
	require.NoError(t, os.WriteFile(path, []byte("[levels]\nfirst = 2\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Levels.First)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPadding(t *testing.T) {
	world := config.Defaults().World

	assert.Equal(t, 1, world.Padding(32))
	assert.Equal(t, 2, world.Padding(64))
	assert.Equal(t, 2, world.Padding(33))
	assert.Equal(t, 0, world.Padding(0))

	world.CellSize = 0
	assert.Equal(t, 32, world.Padding(32))
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := config.Load("tilegate.toml")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}
