package game

import (
	"fmt"

	"raycaster/internal/config"
	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
	"raycaster/internal/world"
)

// Vec32 is the single precision vector the camera integrates with.
type Vec32 = mathutil.Vec2[float32]

// Camera is the player: a position plus a view direction and a view plane
// whose length sets the horizontal field of view.
type Camera struct {
	Position  Vec32
	Velocity  Vec32
	Direction Vec32
	Plane     Vec32

	WalkSpeed     float32
	RotationSpeed float32 // degrees per tick

	fovMin, fovMax float32

	forward, backward bool
	left, right       bool
	// moveSign and turnSign follow the most recently pressed key that is
	// still held: +1 forward/right, -1 backward/left, 0 idle.
	moveSign int
	turnSign int
}

// NewCamera builds a camera from config. The direction is normalized and
// the plane is laid perpendicular to it, pointing to the camera's right.
func NewCamera(cfg config.CameraConfig) (*Camera, error) {
	dir, err := mathutil.V2(float32(cfg.Direction[0]), float32(cfg.Direction[1])).Normalize()
	if err != nil {
		return nil, fmt.Errorf("camera direction: %w", err)
	}
	c := &Camera{
		Position:      mathutil.V2(float32(cfg.StartX), float32(cfg.StartY)),
		Direction:     dir,
		WalkSpeed:     float32(cfg.WalkSpeed),
		RotationSpeed: float32(cfg.RotationSpeed),
		fovMin:        float32(cfg.FOVMin),
		fovMax:        float32(cfg.FOVMax),
	}
	c.Plane = mathutil.V2(-dir.Y, dir.X).Scale(c.clampPlane(float32(cfg.PlaneLength)))
	return c, nil
}

// Moving reports whether a movement key is held.
func (c *Camera) Moving() bool { return c.moveSign != 0 }

// Rotating reports whether a rotation key is held.
func (c *Camera) Rotating() bool { return c.turnSign != 0 }

// SetForward records a forward key press or release.
func (c *Camera) SetForward(pressed bool) {
	c.forward = pressed
	c.moveSign = pick(pressed, +1, c.backward, -1)
	c.updateVelocity()
}

// SetBackward records a backward key press or release.
func (c *Camera) SetBackward(pressed bool) {
	c.backward = pressed
	c.moveSign = pick(pressed, -1, c.forward, +1)
	c.updateVelocity()
}

// SetRotateLeft records a rotate-left key press or release.
func (c *Camera) SetRotateLeft(pressed bool) {
	c.left = pressed
	c.turnSign = pick(pressed, -1, c.right, +1)
}

// SetRotateRight records a rotate-right key press or release.
func (c *Camera) SetRotateRight(pressed bool) {
	c.right = pressed
	c.turnSign = pick(pressed, +1, c.left, -1)
}

// pick returns own when the key was just pressed, otherwise falls back to
// the opposite key if it is still held.
func pick(pressed bool, own int, otherHeld bool, other int) int {
	switch {
	case pressed:
		return own
	case otherHeld:
		return other
	default:
		return 0
	}
}

// Stop releases every held key.
func (c *Camera) Stop() {
	c.forward, c.backward, c.left, c.right = false, false, false, false
	c.moveSign, c.turnSign = 0, 0
	c.Velocity = Vec32{}
}

func (c *Camera) updateVelocity() {
	c.Velocity = c.Direction.Scale(c.WalkSpeed * float32(c.moveSign))
}

// Tick advances one fixed logic step: rotate, re-aim the velocity, then
// move unless the destination tile is missing or a wall.
func (c *Camera) Tick(grid *world.Grid) {
	if c.turnSign != 0 {
		c.rotate(float64(c.RotationSpeed) * float64(c.turnSign))
		if c.moveSign != 0 {
			c.updateVelocity()
		}
	}
	if c.moveSign != 0 {
		c.TryMove(grid, c.Velocity)
	}
}

// rotate turns direction and plane as points anchored at the position.
func (c *Camera) rotate(degrees float64) {
	dirPoint := c.Position.Add(c.Direction)
	planePoint := dirPoint.Add(c.Plane)
	dirPoint = dirPoint.RotateAround(c.Position, degrees)
	planePoint = planePoint.RotateAround(c.Position, degrees)
	c.Direction = dirPoint.Sub(c.Position)
	c.Plane = planePoint.Sub(dirPoint)
}

// TryMove commits position += delta only when the destination tile exists
// and is not a wall. It reports whether the move happened.
func (c *Camera) TryMove(grid *world.Grid, delta Vec32) bool {
	next := c.Position.Add(delta)
	tile, ok := grid.Tile(float64(next.X), float64(next.Y))
	if !ok || tile.IsWall {
		return false
	}
	c.Position = next
	return true
}

// PlaneLength is the current view plane length.
func (c *Camera) PlaneLength() float32 {
	return c.Plane.Length()
}

// AdjustFOV scales the plane by delta, clamped to the configured range.
// The direction is left untouched.
func (c *Camera) AdjustFOV(delta float32) {
	target := c.clampPlane(c.PlaneLength() + delta)
	if p, err := c.Plane.SetLength(target); err == nil {
		c.Plane = p
	}
}

func (c *Camera) clampPlane(l float32) float32 {
	if l < c.fovMin {
		return c.fovMin
	}
	if l > c.fovMax {
		return c.fovMax
	}
	return l
}

// Reposition moves the camera without a collision check.
func (c *Camera) Reposition(x, y float32) {
	c.Position = mathutil.V2(x, y)
}

// View converts the camera state for the caster.
func (c *Camera) View() raycast.View {
	return raycast.View{
		Position:  mathutil.ConvertVec2[float64](c.Position),
		Direction: mathutil.ConvertVec2[float64](c.Direction),
		Plane:     mathutil.ConvertVec2[float64](c.Plane),
	}
}
