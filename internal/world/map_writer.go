package world

import (
	"bufio"
	"fmt"
	"io"
)

// unknownWallLetter marks walls whose color has no palette letter. Reading
// it back yields a default-color wall.
const unknownWallLetter = 'X'

// WriteTextMap writes g in the text map format read by ReadTextMap. The
// start cell is marked with '+' when it is in range and open.
func WriteTextMap(w io.Writer, g *Grid, palette *Palette, startCol, startRow int) error {
	if palette == nil {
		palette = DefaultPalette()
	}
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, g.Columns()+1)
	for row := 0; row < g.Rows(); row++ {
		line = line[:0]
		for col := 0; col < g.Columns(); col++ {
			tile, _ := g.TileAt(col, row)
			switch {
			case !tile.IsWall && col == startCol && row == startRow:
				line = append(line, '+')
			case !tile.IsWall:
				line = append(line, '.')
			default:
				ch := byte(unknownWallLetter)
				if e, ok := palette.EntryByColor(tile.Color); ok && e.Letter != "" {
					ch = e.Letter[0]
				}
				line = append(line, ch)
			}
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("write map row %d: %w", row, err)
		}
	}
	return bw.Flush()
}
