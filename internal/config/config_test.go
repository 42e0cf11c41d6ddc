package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.GetScreenWidth())
	assert.Equal(t, 960, cfg.GetScreenHeight())
	assert.Equal(t, 60, cfg.Display.TicksPerSecond)
	assert.Equal(t, 10000, cfg.Raycast.MaxSteps)
	assert.Equal(t, 1, cfg.Raycast.Workers, "columns are cast sequentially by default")
	assert.True(t, cfg.Render.ShowMap)
	assert.False(t, cfg.Render.Fisheye)
	assert.False(t, cfg.Render.Textured)
	assert.True(t, cfg.UseMaze())
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
display:
  screen_width: 640
  screen_height: 480
world:
  map_file: "assets/maps/level.map"
camera:
  walk_speed: 0.2
render:
  textured: true
  ceiling_color: [1, 2, 3]
logging:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.GetScreenWidth())
	assert.Equal(t, 480, cfg.GetScreenHeight())
	assert.Equal(t, "assets/maps/level.map", cfg.World.MapFile)
	assert.False(t, cfg.UseMaze())
	assert.Equal(t, 0.2, cfg.Camera.WalkSpeed)
	assert.True(t, cfg.Render.Textured)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, RGB(cfg.Render.CeilingColor))
	assert.Equal(t, "debug", cfg.Logging.Level)

	// untouched keys keep their defaults
	assert.Equal(t, 0.66, cfg.Camera.PlaneLength)
	assert.Equal(t, 3.0, cfg.Camera.RotationSpeed)
	assert.Equal(t, 60, cfg.Display.TicksPerSecond)
	assert.Equal(t, 1.0, cfg.GetTileSize())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
display:
  screen_width: 0
camera:
  plane_length: 5
raycast:
  max_steps: -1
  workers: -2
render:
  floor_color: [0, 300, 0]
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "display.screen_width")
	assert.Contains(t, msg, "camera.plane_length")
	assert.Contains(t, msg, "raycast.max_steps")
	assert.Contains(t, msg, "raycast.workers")
	assert.Contains(t, msg, "render.floor_color")
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "display: [unterminated"))
	assert.Error(t, err)

	assert.Panics(t, func() {
		MustLoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}

func TestValidateMazeSize(t *testing.T) {
	cfg := Default()
	cfg.World.Maze.Columns = 2
	assert.Error(t, cfg.Validate())

	cfg.World.MapFile = "level.png"
	assert.NoError(t, cfg.Validate(), "maze size is ignored when a map file is set")
}
