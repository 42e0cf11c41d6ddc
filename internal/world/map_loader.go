package world

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// MapData is the result of loading a map from disk.
type MapData struct {
	Grid *Grid
	// StartX/StartY are the cell marked with '+' in text maps, -1 when unset.
	StartX   int
	StartY   int
	HasStart bool
}

// StartPosition returns the world coordinate of the center of the start cell.
func (m *MapData) StartPosition() (float64, float64, bool) {
	if !m.HasStart {
		return 0, 0, false
	}
	ts := m.Grid.TileSize()
	return (float64(m.StartX) + 0.5) * ts, (float64(m.StartY) + 0.5) * ts, true
}

// MapLoader builds grids from image or text map files.
type MapLoader struct {
	palette  *Palette
	tileSize float64
}

// NewMapLoader creates a map loader resolving colors and letters through palette.
func NewMapLoader(palette *Palette, tileSize float64) *MapLoader {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &MapLoader{palette: palette, tileSize: tileSize}
}

// LoadMap picks the loader by file extension: .map and .txt are text maps,
// anything else is decoded as an image.
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	switch strings.ToLower(filepath.Ext(mapPath)) {
	case ".map", ".txt":
		return ml.LoadTextMap(mapPath)
	default:
		return ml.LoadImageMap(mapPath)
	}
}

// LoadImageMap decodes an image where pixel (x, y) encodes tile (x, y).
func (ml *MapLoader) LoadImageMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode map image %s: %w", mapPath, err)
	}
	data, err := ml.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("map image %s (%s): %w", mapPath, format, err)
	}
	return data, nil
}

// FromImage converts an already decoded image into a grid. The empty color
// is walkable, palette colors become walls of that color and any other color
// becomes an opaque wall keeping the pixel color.
func (ml *MapLoader) FromImage(img image.Image) (*MapData, error) {
	b := img.Bounds()
	grid, err := NewGrid(b.Dx(), b.Dy(), ml.tileSize)
	if err != nil {
		return nil, err
	}
	empty := ml.palette.EmptyColor()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := Opaque(img.At(b.Min.X+x, b.Min.Y+y))
			t := Tile{Color: c}
			if c != empty {
				t.IsWall = true
				if e, ok := ml.palette.EntryByColor(c); ok {
					t.Color = e.RGBA()
				}
			}
			grid.setTile(grid.Index(x, y), t)
		}
	}
	return &MapData{Grid: grid, StartX: -1, StartY: -1}, nil
}

// LoadTextMap reads a text map: one character per tile, '.' empty, '+' the
// start cell, palette letters walls. Blank lines and lines starting with '#'
// are skipped.
func (ml *MapLoader) LoadTextMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()
	return ml.ReadTextMap(file)
}

// ReadTextMap parses text map content from r.
func (ml *MapLoader) ReadTextMap(r io.Reader) (*MapData, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("map file contains no valid map data")
	}

	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("line %d has inconsistent width: expected %d, got %d", i+1, width, len(line))
		}
	}

	grid, err := NewGrid(width, len(lines), ml.tileSize)
	if err != nil {
		return nil, err
	}
	data := &MapData{Grid: grid, StartX: -1, StartY: -1}
	empty := ml.palette.EmptyColor()

	for y, line := range lines {
		for x := 0; x < width; x++ {
			ch := line[x : x+1]
			t := Tile{Color: empty}
			switch ch {
			case ".", " ":
			case "+":
				if data.HasStart {
					return nil, fmt.Errorf("line %d: duplicate start marker (first at %d,%d)", y+1, data.StartX, data.StartY)
				}
				data.StartX, data.StartY, data.HasStart = x, y, true
			default:
				t.IsWall = true
				t.Color = ml.palette.DefaultWallColor()
				if e, ok := ml.palette.EntryByLetter(ch); ok {
					t.Color = e.RGBA()
				}
			}
			grid.setTile(grid.Index(x, y), t)
		}
	}
	return data, nil
}
