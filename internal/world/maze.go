package world

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"
)

// MazeStart is the cell every generated maze is entered from.
const (
	MazeStartCol = 1
	MazeStartRow = 1
)

// MazeOptions controls maze generation.
type MazeOptions struct {
	Columns  int
	Rows     int
	TileSize float64
	// Seed 0 picks a time based seed; the seed actually used is reported back.
	Seed    int64
	Palette *Palette
}

// Maze is a hunt-and-kill generated board.
type Maze struct {
	Grid *Grid
	Seed int64
}

// StartPosition is the world coordinate of the center of the start cell.
func (m *Maze) StartPosition() (float64, float64) {
	ts := m.Grid.TileSize()
	return (MazeStartCol + 0.5) * ts, (MazeStartRow + 0.5) * ts
}

type mazeCarver struct {
	grid  *Grid
	rng   *rand.Rand
	empty color.RGBA
}

// GenerateMaze carves a perfect maze with the hunt-and-kill algorithm. Even
// dimensions are bumped to the next odd value; only odd cells are rooms.
func GenerateMaze(opts MazeOptions) (*Maze, error) {
	cols, rows := opts.Columns, opts.Rows
	if cols%2 == 0 {
		cols++
	}
	if rows%2 == 0 {
		rows++
	}
	if cols < 3 || rows < 3 {
		return nil, fmt.Errorf("%w: maze needs at least 3x3 cells, got %dx%d", ErrGridTooSmall, opts.Columns, opts.Rows)
	}
	palette := opts.Palette
	if palette == nil {
		palette = DefaultPalette()
	}
	tileSize := opts.TileSize
	if tileSize == 0 {
		tileSize = 1
	}
	grid, err := NewGrid(cols, rows, tileSize)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	border, wall := palette.MazeColors()
	for i := 0; i < grid.Len(); i++ {
		col, row := grid.Coords(i)
		c := wall
		if col == 0 || row == 0 || col == cols-1 || row == rows-1 {
			c = border
		}
		grid.setTile(i, Tile{IsWall: true, Color: c})
	}

	mc := &mazeCarver{grid: grid, rng: rand.New(rand.NewSource(seed)), empty: palette.EmptyColor()}
	mc.run(grid.Index(MazeStartCol, MazeStartRow))
	return &Maze{Grid: grid, Seed: seed}, nil
}

func (mc *mazeCarver) run(current int) {
	mc.carve(current)
	for {
		options := mc.filterNeighbors(current, true)
		if len(options) > 0 {
			next := options[mc.rng.Intn(len(options))]
			mc.connect(current, next)
			current = next
			continue
		}
		next, ok := mc.hunt()
		if !ok {
			return
		}
		current = next
	}
}

// hunt scans odd cells in row-major order for an uncarved room that touches
// a carved one, links the two and returns the new room.
func (mc *mazeCarver) hunt() (int, bool) {
	g := mc.grid
	for row := 1; row < g.rows-1; row += 2 {
		for col := 1; col < g.columns-1; col += 2 {
			idx := g.Index(col, row)
			if !g.tiles[idx].IsWall {
				continue
			}
			carved := mc.filterNeighbors(idx, false)
			if len(carved) == 0 {
				continue
			}
			mc.connect(carved[mc.rng.Intn(len(carved))], idx)
			return idx, true
		}
	}
	return 0, false
}

// filterNeighbors returns the room neighbors of index that are still walls
// (walls == true) or already carved (walls == false).
func (mc *mazeCarver) filterNeighbors(index int, walls bool) []int {
	var out []int
	for _, n := range mc.grid.NeighborIndices(index) {
		if mc.grid.tiles[n].IsWall == walls {
			out = append(out, n)
		}
	}
	return out
}

func (mc *mazeCarver) connect(from, to int) {
	mc.carve((from + to) / 2)
	mc.carve(to)
}

func (mc *mazeCarver) carve(index int) {
	mc.grid.tiles[index].IsWall = false
	mc.grid.tiles[index].Color = mc.empty
}

// NeighborIndices returns the room cells two steps north, east, south and
// west of index. Border cells are never returned and east/west neighbors
// never wrap onto another row.
func (g *Grid) NeighborIndices(index int) []int {
	if index < 0 || index >= len(g.tiles) {
		return nil
	}
	cols := g.columns
	col := index % cols
	out := make([]int, 0, 4)
	if n := index - 2*cols; n >= cols {
		out = append(out, n)
	}
	if col+2 <= cols-2 {
		out = append(out, index+2)
	}
	if s := index + 2*cols; s < len(g.tiles)-cols {
		out = append(out, s)
	}
	if col-2 >= 1 {
		out = append(out, index-2)
	}
	return out
}

// BoardComplete reports whether every odd interior cell has been carved.
func (g *Grid) BoardComplete() bool {
	for row := 1; row < g.rows-1; row += 2 {
		for col := 1; col < g.columns-1; col += 2 {
			if g.tiles[g.Index(col, row)].IsWall {
				return false
			}
		}
	}
	return true
}
