package render

import (
	"image/color"

	"github.com/rs/zerolog"

	"raycaster/internal/graphics"
	"raycaster/internal/raycast"
)

// ProjectorConfig holds the screen geometry the projector maps hits onto.
type ProjectorConfig struct {
	ScreenWidth  int
	ScreenHeight int
	// PitchOffset shifts the horizon down (positive) or up in pixels.
	PitchOffset int
	// VoidColor is used for flat spans of rays that left the grid.
	VoidColor color.RGBA
}

// Projector converts hits into wall spans.
type Projector struct {
	cfg    ProjectorConfig
	bank   *graphics.Bank
	logger zerolog.Logger
	warned map[color.RGBA]struct{}
}

// NewProjector creates a projector. bank may be nil, in which case every
// textured column is skipped.
func NewProjector(cfg ProjectorConfig, bank *graphics.Bank, logger zerolog.Logger) *Projector {
	return &Projector{
		cfg:    cfg,
		bank:   bank,
		logger: logger.With().Str("component", "projector").Logger(),
		warned: make(map[color.RGBA]struct{}),
	}
}

func (p *Projector) Config() ProjectorConfig { return p.cfg }

// Project maps one hit to a span. It reports false when the column shows no
// wall: invalid hits, non-positive distances, and textured hits whose color
// has no texture.
func (p *Projector) Project(hit raycast.Hit, shading Shading) (Span, bool) {
	if !hit.Valid {
		return Span{}, false
	}
	h := p.cfg.ScreenHeight
	lineHeight, ok := LineHeight(h, hit.Distance)
	if !ok {
		return Span{}, false
	}
	start, end := DrawRange(lineHeight, h, p.cfg.PitchOffset)
	span := Span{Column: hit.Column, Start: start, End: end}

	if shading == ShadingFlat {
		c := p.cfg.VoidColor
		if hit.Tile != nil {
			c = hit.Tile.Color
		}
		if hit.Side == raycast.SideY {
			c = graphics.HalveRGBA(c)
		}
		span.Color = graphics.Pack(c)
		return span, true
	}

	if hit.Tile == nil {
		return Span{}, false
	}
	tex, ok := p.texture(hit.Tile.Color)
	if !ok {
		return Span{}, false
	}
	size := tex.Size()
	span.Texture = tex
	span.TexX = TexX(WallX(hit), size, hit.Side, hit.RayDir)
	span.TexStep = float64(size) / float64(lineHeight)
	span.TexPos = TexStart(start, lineHeight, h, p.cfg.PitchOffset, span.TexStep)
	span.Darken = hit.Side == raycast.SideY
	return span, true
}

// ProjectAll rebuilds the span list for a frame, reusing dst's storage.
func (p *Projector) ProjectAll(hits []raycast.Hit, shading Shading, dst []Span) []Span {
	dst = dst[:0]
	for _, hit := range hits {
		if span, ok := p.Project(hit, shading); ok {
			dst = append(dst, span)
		}
	}
	return dst
}

func (p *Projector) texture(c color.RGBA) (*graphics.Texture, bool) {
	if p.bank != nil {
		if tex, ok := p.bank.ByColor(c); ok {
			return tex, true
		}
	}
	if _, seen := p.warned[c]; !seen {
		p.warned[c] = struct{}{}
		p.logger.Warn().
			Uints8("rgba", []uint8{c.R, c.G, c.B, c.A}).
			Msg("No texture for wall color, skipping columns")
	}
	return nil, false
}
