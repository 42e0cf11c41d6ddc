package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"raycaster/internal/config"
	"raycaster/internal/game"
	"raycaster/internal/graphics"
	"raycaster/internal/logging"
	"raycaster/internal/monitoring"
	"raycaster/internal/window"
	"raycaster/internal/world"
)

func main() {
	v, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseFlags binds command line flags and RAYCASTER_* environment variables.
// Flags win over the environment.
func parseFlags(args []string) (*viper.Viper, error) {
	fs := pflag.NewFlagSet("raycaster", pflag.ContinueOnError)
	fs.String("config", "config.yaml", "path to the YAML configuration")
	fs.String("map", "", "map file to load (.png/.bmp/.gif/.jpg image or .map/.txt text)")
	fs.Bool("maze", false, "generate a maze even if a map file is configured")
	fs.Int64("seed", 0, "maze seed, 0 for time based")
	fs.String("palette", "", "palette file overriding world.palette_file")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error")
	fs.String("log-file", "", "also write logs to this file")
	fs.Bool("fisheye", false, "start with uncorrected distances")
	fs.Bool("textured", false, "start with textured walls")
	fs.String("snapshot", "", "render headless and write the frame to this PNG")
	fs.Int("ticks", 1, "logic ticks to run before a snapshot")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("RAYCASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

// loadConfig reads the config file and applies flag overrides. A missing
// default config file is not an error; a missing explicit one is.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	path := v.GetString("config")
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	} else if v.IsSet("config") {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if m := v.GetString("map"); m != "" {
		cfg.World.MapFile = m
	}
	if v.GetBool("maze") {
		cfg.World.MapFile = ""
	}
	if seed := v.GetInt64("seed"); seed != 0 {
		cfg.World.Maze.Seed = seed
	}
	if p := v.GetString("palette"); p != "" {
		cfg.World.PaletteFile = p
	}
	if lvl := v.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if f := v.GetString("log-file"); f != "" {
		cfg.Logging.File = f
	}
	if v.GetBool("fisheye") {
		cfg.Render.Fisheye = true
	}
	if v.GetBool("textured") {
		cfg.Render.Textured = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.Setup(logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		return err
	}
	defer closeLog()

	palette, err := loadPalette(cfg.World.PaletteFile, logger)
	if err != nil {
		return err
	}

	bank, err := loadTextures(palette, cfg.Render.TextureSize)
	if err != nil {
		return err
	}
	logger.Info().Int("textures", bank.Len()).Int("size", bank.TextureSize()).Msg("Texture bank loaded")

	g, err := buildGame(cfg, palette, bank, logger)
	if err != nil {
		return err
	}
	defer g.Close()

	if out := v.GetString("snapshot"); out != "" {
		return snapshot(g, cfg, out, v.GetInt("ticks"), logger)
	}
	return window.Run(cfg, g, logger)
}

// loadPalette falls back to the built-in palette when the file is absent.
func loadPalette(path string, logger zerolog.Logger) (*world.Palette, error) {
	if path == "" {
		return world.DefaultPalette(), nil
	}
	palette, err := world.LoadPalette(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn().Str("file", path).Msg("Palette file not found, using built-in palette")
		return world.DefaultPalette(), nil
	}
	if err != nil {
		return nil, err
	}
	return palette, nil
}

// textureSources lists one texture per palette wall. Walls without a
// texture path get a generated brick texture.
func textureSources(palette *world.Palette) []graphics.TextureSource {
	walls := palette.Walls()
	sources := make([]graphics.TextureSource, 0, len(walls))
	for _, w := range walls {
		sources = append(sources, graphics.TextureSource{Color: w.RGBA(), Path: w.Texture})
	}
	return sources
}

// loadTextures builds the bank for the palette. Any unreadable or
// undecodable texture file fails startup.
func loadTextures(palette *world.Palette, size int) (*graphics.Bank, error) {
	bank, err := graphics.LoadBank(context.Background(), textureSources(palette), size)
	if err != nil {
		return nil, fmt.Errorf("load textures: %w", err)
	}
	return bank, nil
}

// buildGame loads the configured map or generates a maze and places the
// camera on the map's start cell when it has one.
func buildGame(cfg *config.Config, palette *world.Palette, bank *graphics.Bank, logger zerolog.Logger) (*game.Game, error) {
	opts := game.Options{
		Palette: palette,
		Bank:    bank,
		Logger:  logger,
		Monitor: monitoring.NewPerformanceMonitor(),
	}

	if cfg.UseMaze() {
		// A placeholder board lets the game own maze generation.
		placeholder, err := world.NewGrid(1, 1, cfg.GetTileSize())
		if err != nil {
			return nil, err
		}
		opts.Grid = placeholder
		g, err := game.NewGame(cfg, opts)
		if err != nil {
			return nil, err
		}
		if err := g.RegenerateMaze(cfg.World.Maze.Seed); err != nil {
			g.Close()
			return nil, err
		}
		return g, nil
	}

	data, err := world.NewMapLoader(palette, cfg.GetTileSize()).LoadMap(cfg.World.MapFile)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("file", cfg.World.MapFile).
		Int("columns", data.Grid.Columns()).Int("rows", data.Grid.Rows()).
		Int("walls", data.Grid.Walls()).
		Msg("Map loaded")
	if !data.Grid.Connected() {
		logger.Warn().Str("file", cfg.World.MapFile).Msg("Map has unreachable open cells")
	}

	opts.Grid = data.Grid
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return nil, err
	}
	if x, y, ok := data.StartPosition(); ok {
		g.Camera().Reposition(float32(x), float32(y))
	}
	return g, nil
}

// snapshot runs ticks logic steps without a window and writes the frame.
func snapshot(g *game.Game, cfg *config.Config, path string, ticks int, logger zerolog.Logger) error {
	for i := 0; i < max(ticks, 1); i++ {
		g.Tick()
	}
	fb := graphics.NewFrameBuffer(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	g.Render(fb)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info().Str("file", path).
		Fields(g.Monitor().GetDetailedStats()).
		Stringer("strategy", g.Strategy()).
		Msg("Snapshot written")
	return nil
}
