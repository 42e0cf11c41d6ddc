package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"raycaster/internal/world"
)

func main() {
	columns := pflag.Int("columns", 21, "maze columns")
	rows := pflag.Int("rows", 21, "maze rows")
	seed := pflag.Int64("seed", 0, "seed, 0 for time based")
	palettePath := pflag.String("palette", "", "palette file")
	out := pflag.String("out", "", "write the maze as a .map file instead of stdout")
	pflag.Parse()

	palette := world.DefaultPalette()
	if *palettePath != "" {
		p, err := world.LoadPalette(*palettePath)
		if err != nil {
			log.Fatalf("Failed to load palette: %v", err)
		}
		palette = p
	}

	maze, err := world.GenerateMaze(world.MazeOptions{
		Columns:  *columns,
		Rows:     *rows,
		TileSize: 1,
		Seed:     *seed,
		Palette:  palette,
	})
	if err != nil {
		log.Fatalf("Failed to generate maze: %v", err)
	}
	g := maze.Grid

	fmt.Println("Maze Dump")
	fmt.Println("=========")
	fmt.Printf("Seed: %d\n", maze.Seed)
	fmt.Printf("Size: %dx%d (%d walls)\n", g.Columns(), g.Rows(), g.Walls())

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
		fmt.Fprintf(f, "# maze seed %d\n", maze.Seed)
	} else {
		fmt.Println()
	}
	if err := world.WriteTextMap(w, g, palette, world.MazeStartCol, world.MazeStartRow); err != nil {
		log.Fatalf("Failed to write maze: %v", err)
	}

	open := g.OpenCells()
	reachable := len(g.Reachable(world.MazeStartCol, world.MazeStartRow))
	fmt.Println("\nConnectivity:")
	fmt.Printf("Open cells: %d\n", open)
	fmt.Printf("Reachable from start: %d\n", reachable)
	fmt.Printf("Connected: %v\n", g.Connected())
	fmt.Printf("Board complete: %v\n", g.BoardComplete())
	if reachable != open {
		os.Exit(1)
	}
}
