// Package raycast marches rays through a world.Grid with a grid DDA and
// reports the first wall each ray hits.
package raycast

import (
	"errors"
	"fmt"
	"math"

	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

// DefaultMaxSteps bounds a single traversal.
const DefaultMaxSteps = 10000

// stepInfinity stands in for the step length of an axis the ray never crosses.
const stepInfinity = 1e30

var (
	// ErrTraversalLimit is returned when a ray takes more steps than the
	// caster allows without hitting anything.
	ErrTraversalLimit = errors.New("raycast: traversal step limit reached")
	// ErrDegenerateRay is returned for zero or non-finite ray, camera
	// direction or origin.
	ErrDegenerateRay = errors.New("raycast: degenerate ray")
)

// Vec is the double precision vector used for all ray math.
type Vec = mathutil.Vec2[float64]

// Mode selects which distance a hit reports.
type Mode int

const (
	// ModeCorrected reports the perpendicular distance to the camera plane.
	// Steps are |1/component| along the ray parameter, which needs no
	// cosine correction.
	ModeCorrected Mode = iota
	// ModeFisheye reports the raw Euclidean ray length. Steps are
	// sqrt(1+(other/this)^2).
	ModeFisheye
)

func (m Mode) String() string {
	switch m {
	case ModeCorrected:
		return "corrected"
	case ModeFisheye:
		return "fisheye"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Side is the grid axis crossed last before the hit.
type Side int

const (
	SideX Side = iota // crossed a vertical grid line, hit an east or west face
	SideY             // crossed a horizontal grid line, hit a north or south face
)

func (s Side) String() string {
	if s == SideX {
		return "x"
	}
	return "y"
}

// View is the camera state a frame is cast from, in world units.
type View struct {
	Position  Vec
	Direction Vec
	Plane     Vec
}

// CameraX maps a screen column to [-1, 1).
func CameraX(column, width int) float64 {
	return 2*float64(column)/float64(width) - 1
}

// RayDirection is direction + plane * cameraX for the column.
func (v View) RayDirection(column, width int) Vec {
	return v.Direction.Add(v.Plane.Scale(CameraX(column, width)))
}

// Hit describes where a ray stopped. Distances are in tile units.
type Hit struct {
	Column int
	// Valid is false when the column could not be cast.
	Valid bool
	// Tile is nil when the ray left the grid; callers treat that as solid.
	Tile         *world.Tile
	CellX, CellY int
	Side         Side
	// Distance is the value selected by the mode: Perpendicular for
	// ModeCorrected, Euclidean for ModeFisheye.
	Distance      float64
	Perpendicular float64
	Euclidean     float64
	// CosAngle is the cosine of the angle between the ray and the camera direction.
	CosAngle float64
	// RayParam is t in origin + t*RayDir at the hit.
	RayParam float64
	// Origin is the camera position in tile units.
	Origin Vec
	RayDir Vec
	Steps  int
	Mode   Mode
}

// OutOfBounds reports whether the ray left the grid.
func (h Hit) OutOfBounds() bool {
	return h.Tile == nil
}

// Caster borrows a grid and casts rays against it.
type Caster struct {
	grid     *world.Grid
	maxSteps int
}

// NewCaster creates a caster. maxSteps <= 0 selects DefaultMaxSteps.
func NewCaster(grid *world.Grid, maxSteps int) *Caster {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Caster{grid: grid, maxSteps: maxSteps}
}

// SetGrid swaps the board rays are cast against.
func (c *Caster) SetGrid(grid *world.Grid) {
	c.grid = grid
}

func (c *Caster) Grid() *world.Grid { return c.grid }
func (c *Caster) MaxSteps() int { return c.maxSteps }

// Cast marches rayDir from the view position until it steps into a wall or
// off the grid.
func (c *Caster) Cast(view View, rayDir Vec, mode Mode) (Hit, error) {
	if !rayDir.IsFinite() || !view.Position.IsFinite() || !view.Direction.IsFinite() {
		return Hit{}, ErrDegenerateRay
	}
	rayLen := rayDir.Length()
	dirLen := view.Direction.Length()
	if rayLen == 0 || dirLen == 0 {
		return Hit{}, ErrDegenerateRay
	}

	tileSize := c.grid.TileSize()
	origin := view.Position.Scale(1 / tileSize)
	cellX := int(math.Floor(origin.X))
	cellY := int(math.Floor(origin.Y))

	deltaX, deltaY := stepLengths(rayDir, mode)

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if rayDir.X < 0 {
		stepX = -1
		sideDistX = (origin.X - float64(cellX)) * deltaX
	} else {
		stepX = 1
		sideDistX = (float64(cellX) + 1 - origin.X) * deltaX
	}
	if rayDir.Y < 0 {
		stepY = -1
		sideDistY = (origin.Y - float64(cellY)) * deltaY
	} else {
		stepY = 1
		sideDistY = (float64(cellY) + 1 - origin.Y) * deltaY
	}

	var (
		tile  *world.Tile
		side  Side
		steps int
	)
	for {
		if steps >= c.maxSteps {
			return Hit{}, fmt.Errorf("%w: %d steps from (%.3f, %.3f)", ErrTraversalLimit, steps, origin.X, origin.Y)
		}
		steps++
		if sideDistX < sideDistY {
			sideDistX += deltaX
			cellX += stepX
			side = SideX
		} else {
			sideDistY += deltaY
			cellY += stepY
			side = SideY
		}
		t, ok := c.grid.TileAt(cellX, cellY)
		if !ok {
			// off the board: solid, no tile
			break
		}
		if t.IsWall {
			tile = t
			break
		}
	}

	// step back one crossing on the hit axis
	var travelled float64
	if side == SideX {
		travelled = sideDistX - deltaX
	} else {
		travelled = sideDistY - deltaY
	}

	var param, euclidean float64
	switch mode {
	case ModeFisheye:
		euclidean = travelled
		param = travelled / rayLen
	default:
		param = travelled
		euclidean = travelled * rayLen
	}

	cos := rayDir.Dot(view.Direction) / (rayLen * dirLen)
	cos = math.Max(-1, math.Min(1, cos))
	perpendicular := euclidean * cos

	hit := Hit{
		Valid:         true,
		Tile:          tile,
		CellX:         cellX,
		CellY:         cellY,
		Side:          side,
		Perpendicular: perpendicular,
		Euclidean:     euclidean,
		CosAngle:      cos,
		RayParam:      param,
		Origin:        origin,
		RayDir:        rayDir,
		Steps:         steps,
		Mode:          mode,
	}
	if mode == ModeFisheye {
		hit.Distance = euclidean
	} else {
		hit.Distance = perpendicular
	}
	return hit, nil
}

// stepLengths returns how far the ray travels, in the mode's measure,
// between two crossings of each axis.
func stepLengths(rayDir Vec, mode Mode) (float64, float64) {
	deltaX, deltaY := stepInfinity, stepInfinity
	switch mode {
	case ModeFisheye:
		if rayDir.X != 0 {
			r := rayDir.Y / rayDir.X
			deltaX = math.Sqrt(1 + r*r)
		}
		if rayDir.Y != 0 {
			r := rayDir.X / rayDir.Y
			deltaY = math.Sqrt(1 + r*r)
		}
	default:
		if rayDir.X != 0 {
			deltaX = math.Abs(1 / rayDir.X)
		}
		if rayDir.Y != 0 {
			deltaY = math.Abs(1 / rayDir.Y)
		}
	}
	return deltaX, deltaY
}

// CastColumn casts the ray for one screen column.
func (c *Caster) CastColumn(view View, column, width int, mode Mode) (Hit, error) {
	hit, err := c.Cast(view, view.RayDirection(column, width), mode)
	hit.Column = column
	if err != nil {
		return hit, fmt.Errorf("column %d: %w", column, err)
	}
	return hit, nil
}

// CastColumns casts columns 0..width-1 in order into dst, reusing its
// storage. Columns that fail are marked invalid and their errors joined.
func (c *Caster) CastColumns(view View, width int, mode Mode, dst []Hit) ([]Hit, error) {
	if cap(dst) < width {
		dst = make([]Hit, width)
	}
	dst = dst[:width]
	var errs []error
	for x := 0; x < width; x++ {
		hit, err := c.CastColumn(view, x, width, mode)
		if err != nil {
			errs = append(errs, err)
		}
		dst[x] = hit
	}
	return dst, errors.Join(errs...)
}

// Runner calls fn for every index in [start, end), possibly concurrently,
// and returns when all calls are done.
type Runner interface {
	ParallelFor(start, end int, fn func(int))
}

// CastColumnsWith is CastColumns with the columns spread over runner. The
// result is identical to CastColumns; a nil runner casts sequentially.
func (c *Caster) CastColumnsWith(runner Runner, view View, width int, mode Mode, dst []Hit) ([]Hit, error) {
	if runner == nil {
		return c.CastColumns(view, width, mode, dst)
	}
	if cap(dst) < width {
		dst = make([]Hit, width)
	}
	dst = dst[:width]
	errs := make([]error, width)
	runner.ParallelFor(0, width, func(x int) {
		dst[x], errs[x] = c.CastColumn(view, x, width, mode)
	})
	return dst, errors.Join(errs...)
}
