package game

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/monitoring"
	"raycaster/internal/raycast"
	"raycaster/internal/render"
	"raycaster/internal/threading"
	"raycaster/internal/world"
)

// Options bundles what NewGame needs besides the configuration.
type Options struct {
	Grid    *world.Grid
	Palette *world.Palette
	// Bank may be nil; textured mode then skips every column.
	Bank    *graphics.Bank
	Logger  zerolog.Logger
	Monitor *monitoring.PerformanceMonitor
}

// Game is the per-tick renderer state: the camera, the board it moves on,
// and the hits and spans of the last tick.
type Game struct {
	cfg     *config.Config
	grid    *world.Grid
	palette *world.Palette
	camera  *Camera

	caster    *raycast.Caster
	projector *render.Projector
	minimap   render.Minimap
	monitor   *monitoring.PerformanceMonitor
	// pool is nil when columns are cast on the calling goroutine.
	pool *threading.WorkerPool

	hits  []raycast.Hit
	spans []render.Span

	showMap  bool
	fisheye  bool
	textured bool
	quit     bool

	mazeSeed int64
	logger   zerolog.Logger
	// guardLog is sampled so a wedged ray does not flood the log every tick.
	guardLog zerolog.Logger
}

// NewGame wires the caster and projector around a grid.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if opts.Grid == nil {
		return nil, errors.New("game: nil grid")
	}
	camera, err := NewCamera(cfg.Camera)
	if err != nil {
		return nil, err
	}
	palette := opts.Palette
	if palette == nil {
		palette = world.DefaultPalette()
	}
	monitor := opts.Monitor
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor()
	}
	logger := opts.Logger.With().Str("component", "game").Logger()

	g := &Game{
		cfg:     cfg,
		grid:    opts.Grid,
		palette: palette,
		camera:  camera,
		caster:  raycast.NewCaster(opts.Grid, cfg.Raycast.MaxSteps),
		projector: render.NewProjector(render.ProjectorConfig{
			ScreenWidth:  cfg.GetScreenWidth(),
			ScreenHeight: cfg.GetScreenHeight(),
			PitchOffset:  cfg.Render.PitchOffset,
			VoidColor:    config.RGB(cfg.Render.VoidColor),
		}, opts.Bank, opts.Logger),
		minimap: render.Minimap{
			Scale:       cfg.Minimap.Scale,
			Offset:      image.Pt(cfg.Minimap.OffsetX, cfg.Minimap.OffsetY),
			EmptyColor:  config.RGB(cfg.Minimap.EmptyColor),
			PlayerColor: config.RGB(cfg.Minimap.PlayerColor),
			RayColor:    config.RGB(cfg.Minimap.RayColor),
			PlayerSize:  cfg.Minimap.PlayerSize,
		},
		monitor:  monitor,
		hits:     make([]raycast.Hit, 0, cfg.GetScreenWidth()),
		spans:    make([]render.Span, 0, cfg.GetScreenWidth()),
		showMap:  cfg.Render.ShowMap,
		fisheye:  cfg.Render.Fisheye,
		textured: cfg.Render.Textured,
		logger:   logger,
		guardLog: logger.Sample(&zerolog.BurstSampler{Burst: 1, Period: time.Second}),
	}
	if cfg.Raycast.Workers != 1 {
		g.pool = threading.NewWorkerPool(cfg.Raycast.Workers)
		g.pool.Start()
		logger.Debug().Int("workers", g.pool.NumWorkers()).Msg("Column worker pool started")
	}
	return g, nil
}

// Close stops the column worker pool.
func (g *Game) Close() {
	if g.pool != nil {
		g.pool.Stop()
	}
}

// runner hides a nil pool behind a nil interface.
func (g *Game) runner() raycast.Runner {
	if g.pool == nil {
		return nil
	}
	return g.pool
}

func (g *Game) Camera() *Camera { return g.camera }
func (g *Game) Grid() *world.Grid { return g.grid }
func (g *Game) Hits() []raycast.Hit { return g.hits }
func (g *Game) Spans() []render.Span { return g.spans }
func (g *Game) Monitor() *monitoring.PerformanceMonitor { return g.monitor }
func (g *Game) ShowMap() bool { return g.showMap }
func (g *Game) Quitting() bool { return g.quit }

// MazeSeed is the seed of the last generated maze, 0 for loaded maps.
func (g *Game) MazeSeed() int64 { return g.mazeSeed }

// Strategy is the shading and distance mode chosen by the current toggles.
func (g *Game) Strategy() render.Strategy {
	return render.StrategyFor(g.textured, g.fisheye)
}

// HandleCommand applies one input command. Commands only change state;
// the effect shows on the next Tick.
func (g *Game) HandleCommand(cmd Command) {
	c := g.camera
	switch cmd {
	case CmdForwardPress, CmdForwardRelease:
		c.SetForward(cmd == CmdForwardPress)
	case CmdBackwardPress, CmdBackwardRelease:
		c.SetBackward(cmd == CmdBackwardPress)
	case CmdRotateLeftPress, CmdRotateLeftRelease:
		c.SetRotateLeft(cmd == CmdRotateLeftPress)
	case CmdRotateRightPress, CmdRotateRightRelease:
		c.SetRotateRight(cmd == CmdRotateRightPress)
	case CmdWidenFOV:
		c.AdjustFOV(float32(g.cfg.Camera.FOVStep))
	case CmdNarrowFOV:
		c.AdjustFOV(-float32(g.cfg.Camera.FOVStep))
	case CmdToggleMap:
		g.showMap = !g.showMap
	case CmdToggleFisheye:
		g.fisheye = !g.fisheye
		g.logger.Info().Stringer("strategy", g.Strategy()).Msg("Distance mode changed")
	case CmdToggleTextures:
		g.textured = !g.textured
		g.logger.Info().Stringer("strategy", g.Strategy()).Msg("Shading changed")
	case CmdRegenerateMaze:
		if err := g.RegenerateMaze(0); err != nil {
			g.logger.Error().Err(err).Msg("Failed to regenerate maze")
		}
	case CmdQuit:
		g.quit = true
	default:
		g.logger.Debug().Stringer("command", cmd).Msg("Ignoring unknown command")
	}
}

// Tick advances one logic step: move the camera, cast every column, and
// rebuild the span list from scratch.
func (g *Game) Tick() {
	g.camera.Tick(g.grid)
	strategy := g.Strategy()
	width := g.cfg.GetScreenWidth()

	timer := g.monitor.StartRaycast()
	hits, err := g.caster.CastColumnsWith(g.runner(), g.camera.View(), width, strategy.Distance, g.hits)
	timer.EndRaycast(width)
	g.hits = hits
	if err != nil {
		g.reportCastError(err)
	}

	g.spans = g.projector.ProjectAll(g.hits, strategy.Shading, g.spans[:0])
	g.monitor.RecordSpans(len(g.spans))
	g.monitor.RecordSkippedColumns(width - len(g.spans))
}

func (g *Game) reportCastError(err error) {
	invalid := 0
	for _, h := range g.hits {
		if !h.Valid {
			invalid++
		}
	}
	if errors.Is(err, raycast.ErrTraversalLimit) {
		g.monitor.RecordGuardTrip()
		g.guardLog.Warn().Err(err).Int("columns", invalid).Msg("Ray traversal limit reached")
		return
	}
	g.guardLog.Debug().Err(err).Int("columns", invalid).Msg("Columns could not be cast")
}

// Render draws the last tick into fb: ceiling and floor, wall spans, then
// the optional map overlay.
func (g *Game) Render(fb *graphics.FrameBuffer) {
	frame := g.monitor.StartFrame()
	defer frame.EndFrame()

	render.DrawBackground(fb,
		graphics.Pack(config.RGB(g.cfg.Render.CeilingColor)),
		graphics.Pack(config.RGB(g.cfg.Render.FloorColor)),
		g.cfg.Render.PitchOffset)
	render.DrawSpans(fb, g.spans)
	if g.showMap {
		g.minimap.Draw(fb, g.grid, g.camera.View(), g.hits)
	}
}

// SetGrid swaps the board and restarts the performance counters. The
// camera keeps its position.
func (g *Game) SetGrid(grid *world.Grid) {
	if g.monitor.GetCurrentMetrics().Ticks > 0 {
		g.logger.Debug().Fields(g.monitor.GetDetailedStats()).Msg("Board replaced")
	}
	g.monitor.Reset()
	g.grid = grid
	g.caster.SetGrid(grid)
}

// RegenerateMaze replaces the board with a fresh maze using the configured
// size and puts the camera in the start cell. seed 0 picks a time based seed.
func (g *Game) RegenerateMaze(seed int64) error {
	maze, err := world.GenerateMaze(world.MazeOptions{
		Columns:  g.cfg.World.Maze.Columns,
		Rows:     g.cfg.World.Maze.Rows,
		TileSize: g.cfg.GetTileSize(),
		Seed:     seed,
		Palette:  g.palette,
	})
	if err != nil {
		return fmt.Errorf("regenerate maze: %w", err)
	}
	g.SetGrid(maze.Grid)
	g.mazeSeed = maze.Seed
	x, y := maze.StartPosition()
	g.camera.Reposition(float32(x), float32(y))
	g.logger.Info().Int64("seed", maze.Seed).
		Int("columns", maze.Grid.Columns()).Int("rows", maze.Grid.Rows()).
		Msg("Maze regenerated")
	return nil
}

// HUD is the one line status text drawn over the frame.
func (g *Game) HUD() string {
	m := g.monitor.GetCurrentMetrics()
	pos := g.camera.Position
	return fmt.Sprintf("TPS %.0f  FPS %.0f  %s  fov %.2f  pos %.2f,%.2f",
		m.TicksPerSecond, m.FramesPerSec, g.Strategy(), g.camera.PlaneLength(), pos.X, pos.Y)
}
