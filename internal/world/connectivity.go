package world

// Reachable flood-fills open cells 4-connected to (col, row) and returns
// their indices. A wall or off-board start yields nil.
func (g *Grid) Reachable(col, row int) []int {
	if g.IsWall(col, row) {
		return nil
	}
	seen := make([]bool, len(g.tiles))
	start := g.Index(col, row)
	seen[start] = true
	queue := []int{start}
	for i := 0; i < len(queue); i++ {
		c, r := g.Coords(queue[i])
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nc, nr := c+d[0], r+d[1]
			if g.IsWall(nc, nr) {
				continue
			}
			n := g.Index(nc, nr)
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return queue
}

// OpenCells counts non-wall tiles.
func (g *Grid) OpenCells() int {
	return len(g.tiles) - g.Walls()
}

// Connected reports whether every open cell is reachable from every other.
func (g *Grid) Connected() bool {
	for i := range g.tiles {
		if !g.tiles[i].IsWall {
			col, row := g.Coords(i)
			return len(g.Reachable(col, row)) == g.OpenCells()
		}
	}
	return true
}
