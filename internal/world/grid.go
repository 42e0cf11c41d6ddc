package world

import (
	"errors"
	"fmt"
	"image"
	"math"
)

var (
	// ErrOutOfBounds is returned by operations that require an in-range cell.
	ErrOutOfBounds = errors.New("world: cell out of bounds")
	// ErrGridTooSmall is returned when a grid or maze would have no interior.
	ErrGridTooSmall = errors.New("world: grid too small")
)

// Grid is a row-major board of tiles. It owns its tile storage; cameras and
// casters only borrow it.
type Grid struct {
	columns  int
	rows     int
	tileSize float64
	tiles    []Tile
}

// NewGrid builds a grid of empty tiles.
func NewGrid(columns, rows int, tileSize float64) (*Grid, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridTooSmall, columns, rows)
	}
	if tileSize <= 0 || math.IsNaN(tileSize) || math.IsInf(tileSize, 0) {
		return nil, fmt.Errorf("world: invalid tile size %v", tileSize)
	}
	g := &Grid{
		columns:  columns,
		rows:     rows,
		tileSize: tileSize,
		tiles:    make([]Tile, columns*rows),
	}
	for i := range g.tiles {
		col, row := g.Coords(i)
		g.tiles[i].Rect = image.Rect(col, row, col+1, row+1)
	}
	return g, nil
}

func (g *Grid) Columns() int { return g.columns }
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) TileSize() float64 { return g.tileSize }
func (g *Grid) Len() int { return len(g.tiles) }

// Index converts a cell coordinate to its board index. It does not bounds-check.
func (g *Grid) Index(col, row int) int {
	return row*g.columns + col
}

// Coords converts a board index back to a cell coordinate.
func (g *Grid) Coords(index int) (col, row int) {
	return index % g.columns, index / g.columns
}

// InBounds reports whether the cell lies on the board.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.columns && row >= 0 && row < g.rows
}

// Tile returns the tile containing the world coordinate, or false when the
// coordinate falls outside the board.
func (g *Grid) Tile(worldX, worldY float64) (*Tile, bool) {
	fx := math.Floor(worldX / g.tileSize)
	fy := math.Floor(worldY / g.tileSize)
	// NaN fails every comparison, so it lands here too.
	if !(fx >= 0 && fx < float64(g.columns) && fy >= 0 && fy < float64(g.rows)) {
		return nil, false
	}
	return g.TileAt(int(fx), int(fy))
}

// TileAt returns the tile at a cell coordinate, or false when off the board.
func (g *Grid) TileAt(col, row int) (*Tile, bool) {
	if !g.InBounds(col, row) {
		return nil, false
	}
	return g.TileByIndex(g.Index(col, row))
}

// TileByIndex returns the tile at a board index, or false when out of range.
func (g *Grid) TileByIndex(index int) (*Tile, bool) {
	if index < 0 || index >= len(g.tiles) {
		return nil, false
	}
	return &g.tiles[index], true
}

// IsWall treats cells off the board as solid.
func (g *Grid) IsWall(col, row int) bool {
	t, ok := g.TileAt(col, row)
	return !ok || t.IsWall
}

// Walls counts the wall tiles on the board.
func (g *Grid) Walls() int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].IsWall {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the board.
func (g *Grid) Clone() *Grid {
	c := *g
	c.tiles = append([]Tile(nil), g.tiles...)
	return &c
}

func (g *Grid) setTile(index int, t Tile) {
	t.Rect = g.tiles[index].Rect
	g.tiles[index] = t
}

func (g *Grid) setWall(index int, wall bool) {
	g.tiles[index].IsWall = wall
}
