// Package render turns ray hits into wall spans and draws them, together
// with the top-down map overlay, into a graphics.FrameBuffer.
package render

import "raycaster/internal/raycast"

// Shading selects how a wall span is colored.
type Shading int

const (
	ShadingFlat Shading = iota
	ShadingTextured
)

func (s Shading) String() string {
	if s == ShadingTextured {
		return "textured"
	}
	return "flat"
}

// Strategy is decided once per frame and handed to the caster and projector.
type Strategy struct {
	Shading  Shading
	Distance raycast.Mode
}

// StrategyFor maps the runtime toggles to a strategy.
func StrategyFor(textured, fisheye bool) Strategy {
	s := Strategy{Shading: ShadingFlat, Distance: raycast.ModeCorrected}
	if textured {
		s.Shading = ShadingTextured
	}
	if fisheye {
		s.Distance = raycast.ModeFisheye
	}
	return s
}

func (s Strategy) String() string {
	return s.Shading.String() + "/" + s.Distance.String()
}
