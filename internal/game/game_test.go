package game

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/render"
	"raycaster/internal/world"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Display.ScreenWidth = 64
	cfg.Display.ScreenHeight = 48
	cfg.Camera.StartX, cfg.Camera.StartY = 1.5, 2.5
	cfg.Minimap.Scale = 2
	cfg.World.Maze = config.MazeConfig{Columns: 11, Rows: 9}
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, bank *graphics.Bank) *Game {
	t.Helper()
	g, err := NewGame(cfg, Options{Grid: loadRoom(t), Bank: bank, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func brickBank(t *testing.T) *graphics.Bank {
	t.Helper()
	var sources []graphics.TextureSource
	for _, w := range world.DefaultPalette().Walls() {
		sources = append(sources, graphics.TextureSource{Color: w.RGBA()})
	}
	bank, err := graphics.LoadBank(context.Background(), sources, 16)
	require.NoError(t, err)
	return bank
}

func TestNewGameRequiresGrid(t *testing.T) {
	_, err := NewGame(testConfig(), Options{Logger: zerolog.Nop()})
	assert.Error(t, err)
}

func TestGameStrategyToggles(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)
	assert.Equal(t, render.StrategyFor(false, false), g.Strategy())

	g.HandleCommand(CmdToggleTextures)
	assert.Equal(t, render.ShadingTextured, g.Strategy().Shading)
	g.HandleCommand(CmdToggleFisheye)
	assert.Equal(t, "textured/fisheye", g.Strategy().String())
	g.HandleCommand(CmdToggleFisheye)
	g.HandleCommand(CmdToggleTextures)
	assert.Equal(t, "flat/corrected", g.Strategy().String())

	show := g.ShowMap()
	g.HandleCommand(CmdToggleMap)
	assert.Equal(t, !show, g.ShowMap())

	assert.False(t, g.Quitting())
	g.HandleCommand(CmdQuit)
	assert.True(t, g.Quitting())
}

func TestGameTickFlat(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg, nil)
	g.Tick()

	require.Len(t, g.Hits(), cfg.GetScreenWidth())
	spans := g.Spans()
	require.Len(t, spans, cfg.GetScreenWidth(), "an enclosed room fills every column")
	for i, s := range spans {
		assert.Equal(t, i, s.Column)
		assert.Nil(t, s.Texture)
	}

	center := g.Hits()[32]
	assert.True(t, center.Valid)
	assert.InDelta(t, 3.5, center.Distance, 1e-9)
	assert.Equal(t, 5, center.CellX)

	m := g.Monitor().GetCurrentMetrics()
	assert.Equal(t, uint64(1), m.Ticks)
	assert.Equal(t, uint64(64), m.ColumnsCast)
	assert.Equal(t, uint64(0), m.SkippedColumns)

	// The list is rebuilt, not appended to.
	g.Tick()
	assert.Len(t, g.Spans(), cfg.GetScreenWidth())
}

func TestGameWorkersMatchSequential(t *testing.T) {
	cfg := testConfig()
	cfg.Raycast.Workers = 1
	seq := newTestGame(t, cfg, nil)

	cfg = testConfig()
	cfg.Raycast.Workers = 4
	par := newTestGame(t, cfg, nil)

	for _, g := range []*Game{seq, par} {
		g.HandleCommand(CmdRotateLeftPress)
		g.Tick()
		g.Tick()
	}
	assert.Equal(t, seq.Hits(), par.Hits())
	assert.Equal(t, seq.Spans(), par.Spans())
}

func TestGameTickTextured(t *testing.T) {
	cfg := testConfig()
	cfg.Render.Textured = true

	g := newTestGame(t, cfg, nil)
	g.Tick()
	assert.Empty(t, g.Spans(), "no bank means every textured column is skipped")
	assert.Equal(t, uint64(64), g.Monitor().GetCurrentMetrics().SkippedColumns)

	g = newTestGame(t, cfg, brickBank(t))
	g.Tick()
	require.Len(t, g.Spans(), cfg.GetScreenWidth())
	for _, s := range g.Spans() {
		assert.NotNil(t, s.Texture)
	}
}

func TestGameTraversalLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Raycast.MaxSteps = 1
	g := newTestGame(t, cfg, nil)

	g.Tick()
	for _, h := range g.Hits() {
		assert.False(t, h.Valid)
	}
	assert.Empty(t, g.Spans())
	assert.Equal(t, uint64(1), g.Monitor().GetCurrentMetrics().GuardTrips)

	// The renderer keeps going on the next tick.
	g.Tick()
	assert.Equal(t, uint64(2), g.Monitor().GetCurrentMetrics().Ticks)
}

func TestGameRender(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg, nil)
	g.Tick()

	fb := graphics.NewFrameBuffer(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	g.Render(fb)

	ceiling := graphics.Pack(config.RGB(cfg.Render.CeilingColor))
	floor := graphics.Pack(config.RGB(cfg.Render.FloorColor))
	red := graphics.Pack(world.DefaultPalette().DefaultWallColor())
	if e, ok := world.DefaultPalette().EntryByLetter("R"); ok {
		red = graphics.Pack(e.RGBA())
	}

	assert.Equal(t, ceiling, fb.At(32, 0))
	assert.Equal(t, floor, fb.At(32, 47))
	assert.Equal(t, red, fb.At(32, 24), "east wall straight ahead")
	assert.Equal(t, red, fb.At(0, 0), "map overlay shows the border")

	g.HandleCommand(CmdToggleMap)
	g.Render(fb)
	assert.Equal(t, ceiling, fb.At(0, 0))
	assert.Equal(t, uint64(2), g.Monitor().GetCurrentMetrics().Frames)
}

func TestGameMovementCommands(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)
	g.HandleCommand(CmdForwardPress)
	g.Tick()
	g.HandleCommand(CmdForwardRelease)
	g.Tick()
	assert.InDelta(t, 1.65, g.Camera().Position.X, 1e-5)

	before := g.Camera().PlaneLength()
	g.HandleCommand(CmdWidenFOV)
	assert.InDelta(t, before+0.05, g.Camera().PlaneLength(), 1e-5)
	g.HandleCommand(CmdNarrowFOV)
	assert.InDelta(t, before, g.Camera().PlaneLength(), 1e-5)

	g.HandleCommand(CmdRotateRightPress)
	g.Tick()
	g.HandleCommand(CmdRotateRightRelease)
	assert.Greater(t, g.Camera().Direction.Y, float32(0))
}

func TestGameRegenerateMaze(t *testing.T) {
	g := newTestGame(t, testConfig(), nil)
	g.Tick()
	g.Tick()
	require.Equal(t, uint64(2), g.Monitor().GetCurrentMetrics().Ticks)
	require.NoError(t, g.RegenerateMaze(42))
	assert.Zero(t, g.Monitor().GetCurrentMetrics().Ticks, "counters restart with the new board")
	assert.Zero(t, g.Monitor().GetCurrentMetrics().ColumnsCast)

	assert.Equal(t, int64(42), g.MazeSeed())
	assert.Equal(t, 11, g.Grid().Columns())
	assert.Equal(t, 9, g.Grid().Rows())
	assert.Equal(t, Vec32{X: 1.5, Y: 1.5}, g.Camera().Position)
	assert.True(t, g.Grid().Connected())

	g.Tick()
	for _, h := range g.Hits() {
		assert.True(t, h.Valid)
	}
	assert.Contains(t, g.HUD(), "flat/corrected")
}
