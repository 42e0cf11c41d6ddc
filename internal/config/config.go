package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration values
type Config struct {
	Display DisplayConfig `yaml:"display"`
	World   WorldConfig   `yaml:"world"`
	Camera  CameraConfig  `yaml:"camera"`
	Raycast RaycastConfig `yaml:"raycast"`
	Render  RenderConfig  `yaml:"render"`
	Minimap MinimapConfig `yaml:"minimap"`
	Logging LoggingConfig `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth    int    `yaml:"screen_width"`
	ScreenHeight   int    `yaml:"screen_height"`
	WindowTitle    string `yaml:"window_title"`
	Resizable      bool   `yaml:"resizable"`
	TicksPerSecond int    `yaml:"ticks_per_second"`
	ShowHUD        bool   `yaml:"show_hud"`
}

type WorldConfig struct {
	TileSize    float64    `yaml:"tile_size"`
	MapFile     string     `yaml:"map_file"` // empty generates a maze
	PaletteFile string     `yaml:"palette_file"`
	Maze        MazeConfig `yaml:"maze"`
}

type MazeConfig struct {
	Columns int   `yaml:"columns"`
	Rows    int   `yaml:"rows"`
	Seed    int64 `yaml:"seed"` // 0 picks a time based seed
}

type CameraConfig struct {
	StartX        float64    `yaml:"start_x"`
	StartY        float64    `yaml:"start_y"`
	Direction     [2]float64 `yaml:"direction"`
	PlaneLength   float64    `yaml:"plane_length"`
	WalkSpeed     float64    `yaml:"walk_speed"`
	RotationSpeed float64    `yaml:"rotation_speed"` // degrees per tick
	FOVMin        float64    `yaml:"fov_min"`
	FOVMax        float64    `yaml:"fov_max"`
	FOVStep       float64    `yaml:"fov_step"`
}

type RaycastConfig struct {
	MaxSteps int `yaml:"max_steps"`
	// Workers casts columns on a pool: 0 uses every CPU, 1 casts on the
	// game goroutine.
	Workers int `yaml:"workers"`
}

type RenderConfig struct {
	PitchOffset  int    `yaml:"pitch_offset"`
	TextureSize  int    `yaml:"texture_size"`
	CeilingColor [3]int `yaml:"ceiling_color"`
	FloorColor   [3]int `yaml:"floor_color"`
	VoidColor    [3]int `yaml:"void_color"`
	ShowMap      bool   `yaml:"show_map"`
	Fisheye      bool   `yaml:"fisheye"`
	Textured     bool   `yaml:"textured"`
}

type MinimapConfig struct {
	Scale       int    `yaml:"scale"`
	OffsetX     int    `yaml:"offset_x"`
	OffsetY     int    `yaml:"offset_y"`
	PlayerSize  int    `yaml:"player_size"`
	EmptyColor  [3]int `yaml:"empty_color"`
	PlayerColor [3]int `yaml:"player_color"`
	RayColor    [3]int `yaml:"ray_color"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a configuration usable without any file.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:    1280,
			ScreenHeight:   960,
			WindowTitle:    "Raycaster",
			TicksPerSecond: 60,
			ShowHUD:        true,
		},
		World: WorldConfig{
			TileSize:    1,
			PaletteFile: "assets/palette.yaml",
			Maze:        MazeConfig{Columns: 21, Rows: 21},
		},
		Camera: CameraConfig{
			StartX:        2,
			StartY:        2,
			Direction:     [2]float64{1, 0},
			PlaneLength:   0.66,
			WalkSpeed:     0.15,
			RotationSpeed: 3,
			FOVMin:        0.3,
			FOVMax:        2.0,
			FOVStep:       0.05,
		},
		Raycast: RaycastConfig{MaxSteps: 10000, Workers: 1},
		Render: RenderConfig{
			TextureSize:  64,
			CeilingColor: [3]int{50, 50, 60},
			FloorColor:   [3]int{90, 90, 90},
			VoidColor:    [3]int{0, 0, 0},
			ShowMap:      true,
		},
		Minimap: MinimapConfig{
			Scale:       16,
			PlayerSize:  6,
			EmptyColor:  [3]int{30, 30, 30},
			PlayerColor: [3]int{255, 255, 255},
			RayColor:    [3]int{255, 255, 0},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads the configuration from a YAML file. Keys missing from
// the file keep their Default value.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate reports every out-of-range value.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Display.ScreenWidth > 0, "display.screen_width must be positive, got %d", c.Display.ScreenWidth)
	check(c.Display.ScreenHeight > 0, "display.screen_height must be positive, got %d", c.Display.ScreenHeight)
	check(c.Display.TicksPerSecond > 0, "display.ticks_per_second must be positive, got %d", c.Display.TicksPerSecond)
	check(c.World.TileSize > 0, "world.tile_size must be positive, got %v", c.World.TileSize)
	if c.World.MapFile == "" {
		check(c.World.Maze.Columns >= 3 && c.World.Maze.Rows >= 3,
			"world.maze must be at least 3x3, got %dx%d", c.World.Maze.Columns, c.World.Maze.Rows)
	}
	check(c.Camera.Direction != [2]float64{}, "camera.direction must be non-zero")
	check(c.Camera.WalkSpeed >= 0, "camera.walk_speed must not be negative")
	check(c.Camera.FOVMin > 0 && c.Camera.FOVMin <= c.Camera.FOVMax,
		"camera.fov_min/fov_max must satisfy 0 < min <= max, got %v/%v", c.Camera.FOVMin, c.Camera.FOVMax)
	check(c.Camera.PlaneLength >= c.Camera.FOVMin && c.Camera.PlaneLength <= c.Camera.FOVMax,
		"camera.plane_length %v outside [%v, %v]", c.Camera.PlaneLength, c.Camera.FOVMin, c.Camera.FOVMax)
	check(c.Raycast.MaxSteps > 0, "raycast.max_steps must be positive, got %d", c.Raycast.MaxSteps)
	check(c.Raycast.Workers >= 0, "raycast.workers must not be negative, got %d", c.Raycast.Workers)
	check(c.Render.TextureSize > 0, "render.texture_size must be positive, got %d", c.Render.TextureSize)
	check(c.Minimap.Scale >= 0, "minimap.scale must not be negative")

	for name, rgb := range map[string][3]int{
		"render.ceiling_color": c.Render.CeilingColor,
		"render.floor_color":   c.Render.FloorColor,
		"render.void_color":    c.Render.VoidColor,
		"minimap.empty_color":  c.Minimap.EmptyColor,
		"minimap.player_color": c.Minimap.PlayerColor,
		"minimap.ray_color":    c.Minimap.RayColor,
	} {
		for _, v := range rgb {
			if v < 0 || v > 255 {
				errs = append(errs, fmt.Errorf("%s component %d out of range", name, v))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() float64 {
	return c.World.TileSize
}

// UseMaze reports whether the world is generated instead of loaded.
func (c *Config) UseMaze() bool {
	return c.World.MapFile == ""
}

// RGB converts a config color triple to an opaque color.
func RGB(c [3]int) color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 255}
}
