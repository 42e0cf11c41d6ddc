package mathutil

import (
	"errors"
	"math"
)

// ErrZeroLength is returned when a zero vector would have to be normalized.
var ErrZeroLength = errors.New("mathutil: zero-length vector")

// Float is the set of element types a Vec2 can carry.
type Float interface {
	~float32 | ~float64
}

// Vec2 is a plain 2D vector. The camera keeps float32 state, ray math runs in float64.
type Vec2[T Float] struct {
	X, Y T
}

// V2 is shorthand for building a Vec2.
func V2[T Float](x, y T) Vec2[T] {
	return Vec2[T]{X: x, Y: y}
}

// ConvertVec2 changes the element precision of v.
func ConvertVec2[U, T Float](v Vec2[T]) Vec2[U] {
	return Vec2[U]{X: U(v.X), Y: U(v.Y)}
}

func (v Vec2[T]) Add(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2[T]) Sub(o Vec2[T]) Vec2[T] {
	return Vec2[T]{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2[T]) Scale(s T) Vec2[T] {
	return Vec2[T]{X: v.X * s, Y: v.Y * s}
}

func (v Vec2[T]) Dot(o Vec2[T]) T {
	return v.X*o.X + v.Y*o.Y
}

// Length is computed in float64 regardless of T.
func (v Vec2[T]) Length() T {
	return T(math.Hypot(float64(v.X), float64(v.Y)))
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec2[T]) IsFinite() bool {
	x, y := float64(v.X), float64(v.Y)
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

// Normalize returns the unit vector pointing along v.
func (v Vec2[T]) Normalize() (Vec2[T], error) {
	l := math.Hypot(float64(v.X), float64(v.Y))
	if l == 0 {
		return v, ErrZeroLength
	}
	return Vec2[T]{X: T(float64(v.X) / l), Y: T(float64(v.Y) / l)}, nil
}

// SetLength rescales v to the given length, keeping its direction.
func (v Vec2[T]) SetLength(length T) (Vec2[T], error) {
	n, err := v.Normalize()
	if err != nil {
		return v, err
	}
	return n.Scale(length), nil
}

// RotateAround rotates v about pivot by degrees. Positive angles turn
// counter-clockwise in a Y-up frame, which is clockwise on screen.
func (v Vec2[T]) RotateAround(pivot Vec2[T], degrees float64) Vec2[T] {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := float64(v.X - pivot.X)
	dy := float64(v.Y - pivot.Y)
	return Vec2[T]{
		X: pivot.X + T(dx*cos-dy*sin),
		Y: pivot.Y + T(dx*sin+dy*cos),
	}
}

// Rotate rotates v about the origin.
func (v Vec2[T]) Rotate(degrees float64) Vec2[T] {
	return v.RotateAround(Vec2[T]{}, degrees)
}
