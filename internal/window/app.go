// Package window hosts the renderer in an ebiten window.
package window

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"raycaster/internal/config"
	"raycaster/internal/game"
	"raycaster/internal/game/keytracker"
	"raycaster/internal/graphics"
)

// alertInterval is how often performance alerts are checked and logged.
const alertInterval = 5 * time.Second

// Binding maps a group of keys to the commands sent on press and release.
type Binding struct {
	Keys    []ebiten.Key
	Press   game.Command
	Release game.Command
	// Sticky bindings only fire on press.
	Sticky  bool
	tracker keytracker.KeyStateTracker
}

// update feeds the combined key state and returns the command to send, if any.
func (b *Binding) update(pressed bool) (game.Command, bool) {
	switch b.tracker.Update(pressed) {
	case keytracker.Pressed:
		return b.Press, true
	case keytracker.Released:
		if b.Sticky {
			return 0, false
		}
		return b.Release, true
	}
	return 0, false
}

// DefaultBindings is the standard key map: arrows or WASD to move and turn.
func DefaultBindings() []*Binding {
	return []*Binding{
		{Keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, Press: game.CmdForwardPress, Release: game.CmdForwardRelease},
		{Keys: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, Press: game.CmdBackwardPress, Release: game.CmdBackwardRelease},
		{Keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, Press: game.CmdRotateLeftPress, Release: game.CmdRotateLeftRelease},
		{Keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, Press: game.CmdRotateRightPress, Release: game.CmdRotateRightRelease},
		{Keys: []ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd}, Press: game.CmdWidenFOV, Sticky: true},
		{Keys: []ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract}, Press: game.CmdNarrowFOV, Sticky: true},
		{Keys: []ebiten.Key{ebiten.KeyM}, Press: game.CmdToggleMap, Sticky: true},
		{Keys: []ebiten.Key{ebiten.KeyF}, Press: game.CmdToggleFisheye, Sticky: true},
		{Keys: []ebiten.Key{ebiten.KeyT}, Press: game.CmdToggleTextures, Sticky: true},
		{Keys: []ebiten.Key{ebiten.KeyR}, Press: game.CmdRegenerateMaze, Sticky: true},
		{Keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}, Press: game.CmdQuit, Sticky: true},
	}
}

// App implements ebiten.Game around a game.Game.
type App struct {
	cfg       *config.Config
	game      *game.Game
	bindings  []*Binding
	fb        *graphics.FrameBuffer
	logger    zerolog.Logger
	lastAlert time.Time
}

// NewApp creates the window adapter. The frame buffer has the configured
// resolution regardless of the window size.
func NewApp(cfg *config.Config, g *game.Game, logger zerolog.Logger) *App {
	return &App{
		cfg:       cfg,
		game:      g,
		bindings:  DefaultBindings(),
		fb:        graphics.NewFrameBuffer(cfg.GetScreenWidth(), cfg.GetScreenHeight()),
		logger:    logger.With().Str("component", "window").Logger(),
		lastAlert: time.Now(),
	}
}

// Update translates key edges into commands and runs one logic tick.
func (a *App) Update() error {
	for _, b := range a.bindings {
		if cmd, ok := b.update(anyPressed(b.Keys)); ok {
			a.game.HandleCommand(cmd)
		}
	}
	if a.game.Quitting() {
		return ebiten.Termination
	}
	a.game.Tick()
	a.checkPerformance()
	return nil
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (a *App) checkPerformance() {
	monitor := a.game.Monitor()
	monitor.Sample()
	if time.Since(a.lastAlert) < alertInterval {
		return
	}
	a.lastAlert = time.Now()
	for _, alert := range monitor.CheckPerformanceAlerts(a.cfg.Display.TicksPerSecond) {
		a.logger.Warn().Str("alert", alert.Type).
			Float64("value", alert.Value).Float64("threshold", alert.Threshold).
			Msg(alert.Message)
	}
}

// Draw renders the last tick into the frame buffer and blits it.
func (a *App) Draw(screen *ebiten.Image) {
	a.game.Render(a.fb)
	screen.WritePixels(a.fb.Bytes())
	if a.cfg.Display.ShowHUD {
		ebitenutil.DebugPrint(screen, a.game.HUD())
	}
}

// Layout returns the fixed rendering resolution.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.GetScreenWidth(), a.cfg.GetScreenHeight()
}

// Run opens the window and blocks until it is closed or the game quits.
func Run(cfg *config.Config, g *game.Game, logger zerolog.Logger) error {
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TicksPerSecond)

	app := NewApp(cfg, g, logger)
	app.logger.Info().
		Int("width", cfg.GetScreenWidth()).Int("height", cfg.GetScreenHeight()).
		Int("tps", cfg.Display.TicksPerSecond).
		Msg("Opening window")
	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
