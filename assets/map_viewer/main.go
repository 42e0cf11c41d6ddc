package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"raycaster/internal/config"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type mapInfo struct {
	Key  string
	Data *world.MapData
	Seed int64
	Err  error
}

type viewer struct {
	cfg         *config.Config
	palette     *world.Palette
	maps        []mapInfo
	mapIndex    int
	legendLines []string
	sidebarTab  int
	lastErr     string
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	ensureRuntimeCWD()

	cfg := config.Default()
	if _, err := os.Stat("config.yaml"); err == nil {
		cfg = config.MustLoadConfig("config.yaml")
	}

	palette := world.DefaultPalette()
	if p, err := world.LoadPalette(cfg.World.PaletteFile); err == nil {
		palette = p
	} else {
		log.Printf("Warning: Failed to load palette: %v", err)
	}

	maps, err := loadMaps(cfg, palette)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	v := &viewer{
		cfg:         cfg,
		palette:     palette,
		maps:        maps,
		legendLines: buildLegendLines(palette),
		sidebarTab:  tabInfo,
	}
	if len(maps) == 0 {
		v.lastErr = "no maps loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycaster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if len(v.maps) > 0 {
			v.mapIndex = (v.mapIndex + 1) % len(v.maps)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if len(v.maps) > 0 {
			v.mapIndex--
			if v.mapIndex < 0 {
				v.mapIndex = len(v.maps) - 1
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && len(v.maps) > 0 && v.maps[v.mapIndex].Key == "maze" {
		v.maps[v.mapIndex] = generateMaze(v.cfg, v.palette, 0)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		msg := v.lastErr
		if msg == "" {
			msg = "no maps loaded"
		}
		ebitenutil.DebugPrintAt(screen, msg, 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Key, m.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	mapAreaX := padding
	mapAreaY := padding
	sidebarX := mapAreaX + mapAreaW + padding
	sidebarY := padding

	drawMapPanel(screen, m, mapAreaX, mapAreaY, mapAreaW, mapAreaH)
	drawSidebar(screen, m, sidebarX, sidebarY, sidebarWidth, mapAreaH, v.sidebarTab, v.legendLines)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawMapPanel(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	if m.Data == nil || m.Data.Grid == nil {
		ebitenutil.DebugPrintAt(screen, "map data missing", x+12, y+12)
		return
	}
	grid := m.Data.Grid

	tileSize := w / grid.Columns()
	if alt := h / grid.Rows(); alt < tileSize {
		tileSize = alt
	}
	if tileSize < 2 {
		tileSize = 2
	}

	originX := x + (w-grid.Columns()*tileSize)/2
	originY := y + (h-grid.Rows()*tileSize)/2
	floorColor := color.RGBA{40, 40, 50, 255}

	for i := 0; i < grid.Len(); i++ {
		tile, _ := grid.TileByIndex(i)
		cellColor := floorColor
		if tile.IsWall {
			cellColor = tile.Color
		}
		drawX := originX + tile.Rect.Min.X*tileSize
		drawY := originY + tile.Rect.Min.Y*tileSize
		vector.DrawFilledRect(screen, float32(drawX), float32(drawY), float32(tileSize), float32(tileSize), cellColor, false)
	}

	drawOverlays(screen, m, originX, originY, tileSize)
	drawMapHeader(screen, m, x, y)
}

func drawMapHeader(screen *ebiten.Image, m mapInfo, x, y int) {
	ebitenutil.DebugPrintAt(screen, m.Key, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, R to reroll the maze, Esc to quit", x+12, y+24)
}

func drawOverlays(screen *ebiten.Image, m mapInfo, originX, originY, tileSize int) {
	if !m.Data.HasStart {
		return
	}
	drawTileMarkerCircle(screen, originX, originY, tileSize, m.Data.StartX, m.Data.StartY, color.RGBA{50, 200, 255, 255}, true)

	// Open cells the start cannot reach.
	grid := m.Data.Grid
	reached := make(map[int]bool)
	for _, idx := range grid.Reachable(m.Data.StartX, m.Data.StartY) {
		reached[idx] = true
	}
	for i := 0; i < grid.Len(); i++ {
		tile, _ := grid.TileByIndex(i)
		if !tile.IsWall && !reached[i] {
			col, row := grid.Coords(i)
			drawTileMarkerRect(screen, originX, originY, tileSize, col, row, color.RGBA{230, 80, 80, 255})
		}
	}
}

func drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int, tab int, legendLines []string) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	if tab == tabLegend {
		for _, line := range legendLines {
			ebitenutil.DebugPrintAt(screen, line, x+10, row)
			row += 14
		}
		return
	}

	if m.Data == nil {
		return
	}
	grid := m.Data.Grid
	stats := []string{
		fmt.Sprintf("Tiles: %dx%d", grid.Columns(), grid.Rows()),
		fmt.Sprintf("Walls: %d", grid.Walls()),
		fmt.Sprintf("Open: %d", grid.OpenCells()),
		fmt.Sprintf("Connected: %v", grid.Connected()),
	}
	if m.Seed != 0 {
		stats = append(stats, fmt.Sprintf("Seed: %d", m.Seed))
	}
	for _, line := range stats {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}

	row += 8
	ebitenutil.DebugPrintAt(screen, "Markers:", x+12, row)
	row += 16
	ebitenutil.DebugPrintAt(screen, "Cyan: start  Red: unreachable", x+12, row)
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

func drawTileMarkerCircle(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, clr color.RGBA, stroke bool) {
	if tileSize < 2 {
		return
	}
	centerX := float32(originX + tx*tileSize + tileSize/2)
	centerY := float32(originY + ty*tileSize + tileSize/2)
	radius := float32(tileSize) * 0.35
	vector.DrawFilledCircle(screen, centerX, centerY, radius, clr, true)
	if stroke {
		vector.StrokeCircle(screen, centerX, centerY, radius, 1, color.RGBA{255, 255, 255, 255}, true)
	}
}

func drawTileMarkerRect(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, clr color.RGBA) {
	size := tileSize / 3
	if size < 2 {
		size = 2
	}
	drawX := originX + tx*tileSize + (tileSize-size)/2
	drawY := originY + ty*tileSize + (tileSize-size)/2
	vector.DrawFilledRect(screen, float32(drawX), float32(drawY), float32(size), float32(size), clr, false)
}

func generateMaze(cfg *config.Config, palette *world.Palette, seed int64) mapInfo {
	maze, err := world.GenerateMaze(world.MazeOptions{
		Columns:  cfg.World.Maze.Columns,
		Rows:     cfg.World.Maze.Rows,
		TileSize: 1,
		Seed:     seed,
		Palette:  palette,
	})
	if err != nil {
		return mapInfo{Key: "maze", Err: err}
	}
	return mapInfo{
		Key:  "maze",
		Seed: maze.Seed,
		Data: &world.MapData{
			Grid:     maze.Grid,
			StartX:   world.MazeStartCol,
			StartY:   world.MazeStartRow,
			HasStart: true,
		},
	}
}

// loadMaps reads every map under assets/maps and appends a generated maze.
func loadMaps(cfg *config.Config, palette *world.Palette) ([]mapInfo, error) {
	var paths []string
	for _, pattern := range []string{"*.map", "*.txt", "*.png", "*.bmp", "*.gif"} {
		found, err := filepath.Glob(filepath.Join("assets", "maps", pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list maps: %w", err)
		}
		paths = append(paths, found...)
	}
	sort.Strings(paths)

	loader := world.NewMapLoader(palette, 1)
	var maps []mapInfo
	for _, path := range paths {
		data, err := loader.LoadMap(path)
		maps = append(maps, mapInfo{
			Key:  filepath.Base(path),
			Data: data,
			Err:  err,
		})
	}
	maps = append(maps, generateMaze(cfg, palette, cfg.World.Maze.Seed))
	return maps, nil
}

func buildLegendLines(palette *world.Palette) []string {
	var lines []string
	lines = append(lines, "Walls (letter -> key/name)")
	lines = append(lines, "--------------------------")
	for _, key := range palette.Keys() {
		entry, _ := palette.Entry(key)
		letter := entry.Letter
		if letter == "" {
			letter = " "
		}
		lines = append(lines, fmt.Sprintf("%s -> %s (%s)", letter, key, entry.Name))
	}

	lines = append(lines, "")
	lines = append(lines, "Notes")
	lines = append(lines, "-----")
	lines = append(lines, ". = empty")
	lines = append(lines, "+ = start position")
	lines = append(lines, "other letters = default wall")
	return lines
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
