package world

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// WallEntry describes one wall type recognized by map loaders and the texture bank.
type WallEntry struct {
	Name    string `yaml:"name"`
	Color   [3]int `yaml:"color"`
	Texture string `yaml:"texture"` // empty means a procedural texture is generated
	Letter  string `yaml:"letter"`
}

// RGBA returns the entry color with full alpha.
func (e WallEntry) RGBA() color.RGBA {
	return rgb(e.Color)
}

// MazeKeys picks the palette entries used by the maze generator.
type MazeKeys struct {
	Border string `yaml:"border"`
	Wall   string `yaml:"wall"`
}

// PaletteFile is the on-disk layout of a palette YAML file.
type PaletteFile struct {
	EmptyColor       [3]int               `yaml:"empty_color"`
	DefaultWallColor [3]int               `yaml:"default_wall_color"`
	Maze             MazeKeys             `yaml:"maze"`
	Walls            map[string]WallEntry `yaml:"walls"`
}

// Palette maps colors and letters to wall entries.
type Palette struct {
	empty       color.RGBA
	defaultWall color.RGBA
	maze        MazeKeys
	entries     map[string]WallEntry
	byColor     map[color.RGBA]string
	byLetter    map[string]string
}

// DefaultPalette carries the four fixed wall colors and their textures.
func DefaultPalette() *Palette {
	p, err := NewPalette(PaletteFile{
		EmptyColor:       [3]int{0, 0, 0},
		DefaultWallColor: [3]int{128, 128, 128},
		Maze:             MazeKeys{Border: "red", Wall: "blue"},
		Walls: map[string]WallEntry{
			"red":    {Name: "Red brick", Color: [3]int{255, 0, 0}, Texture: "assets/textures/red_tex.png", Letter: "R"},
			"green":  {Name: "Green stone", Color: [3]int{0, 255, 0}, Texture: "assets/textures/green_tex.png", Letter: "G"},
			"blue":   {Name: "Blue tile", Color: [3]int{0, 0, 255}, Texture: "assets/textures/blue_tex.png", Letter: "B"},
			"yellow": {Name: "Yellow plank", Color: [3]int{255, 255, 0}, Texture: "assets/textures/yellow_tex.png", Letter: "Y"},
		},
	})
	if err != nil {
		panic("default palette: " + err.Error())
	}
	return p
}

// NewPalette validates a palette description and builds its lookup tables.
func NewPalette(f PaletteFile) (*Palette, error) {
	p := &Palette{
		empty:       rgb(f.EmptyColor),
		defaultWall: rgb(f.DefaultWallColor),
		maze:        f.Maze,
		entries:     make(map[string]WallEntry, len(f.Walls)),
		byColor:     make(map[color.RGBA]string, len(f.Walls)),
		byLetter:    make(map[string]string, len(f.Walls)),
	}
	for _, key := range sortedKeys(f.Walls) {
		entry := f.Walls[key]
		c := entry.RGBA()
		if c == p.empty {
			return nil, fmt.Errorf("wall %q uses the empty color", key)
		}
		if other, dup := p.byColor[c]; dup {
			return nil, fmt.Errorf("walls %q and %q share color %v", other, key, entry.Color)
		}
		p.byColor[c] = key
		if entry.Letter != "" {
			if len(entry.Letter) != 1 || entry.Letter == "." || entry.Letter == "+" || entry.Letter == "#" {
				return nil, fmt.Errorf("wall %q has invalid letter %q", key, entry.Letter)
			}
			if other, dup := p.byLetter[entry.Letter]; dup {
				return nil, fmt.Errorf("walls %q and %q share letter %q", other, key, entry.Letter)
			}
			p.byLetter[entry.Letter] = key
		}
		p.entries[key] = entry
	}
	for _, key := range []string{f.Maze.Border, f.Maze.Wall} {
		if key == "" {
			continue
		}
		if _, ok := p.entries[key]; !ok {
			return nil, fmt.Errorf("maze references unknown wall %q", key)
		}
	}
	return p, nil
}

// LoadPalette reads a palette YAML file.
func LoadPalette(filename string) (*Palette, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}
	var f PaletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}
	p, err := NewPalette(f)
	if err != nil {
		return nil, fmt.Errorf("invalid palette %s: %w", filename, err)
	}
	return p, nil
}

func (p *Palette) EmptyColor() color.RGBA { return p.empty }
func (p *Palette) DefaultWallColor() color.RGBA { return p.defaultWall }

// Entry returns the wall entry stored under key.
func (p *Palette) Entry(key string) (WallEntry, bool) {
	e, ok := p.entries[key]
	return e, ok
}

// EntryByColor looks a wall up by exact color.
func (p *Palette) EntryByColor(c color.RGBA) (WallEntry, bool) {
	key, ok := p.byColor[c]
	if !ok {
		return WallEntry{}, false
	}
	return p.entries[key], true
}

// EntryByLetter looks a wall up by its text-map letter.
func (p *Palette) EntryByLetter(letter string) (WallEntry, bool) {
	key, ok := p.byLetter[letter]
	if !ok {
		return WallEntry{}, false
	}
	return p.entries[key], true
}

// Keys returns all wall keys in sorted order.
func (p *Palette) Keys() []string {
	return sortedKeys(p.entries)
}

// Walls returns all wall entries ordered by key.
func (p *Palette) Walls() []WallEntry {
	keys := p.Keys()
	out := make([]WallEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, p.entries[k])
	}
	return out
}

// MazeColors returns the border and interior wall colors for generated mazes.
func (p *Palette) MazeColors() (border, wall color.RGBA) {
	border, wall = p.defaultWall, p.defaultWall
	if e, ok := p.entries[p.maze.Border]; ok {
		border = e.RGBA()
	}
	if e, ok := p.entries[p.maze.Wall]; ok {
		wall = e.RGBA()
	}
	return border, wall
}

func rgb(c [3]int) color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 0xff}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
