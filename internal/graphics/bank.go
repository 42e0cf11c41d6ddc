package graphics

import (
	"context"
	"fmt"
	"image/color"

	"golang.org/x/sync/errgroup"
)

// TextureSource tells LoadBank where the texture for a wall color comes
// from. An empty Path generates a brick texture in that color.
type TextureSource struct {
	Color color.RGBA
	Path  string
}

// Bank maps wall colors to textures by exact match.
type Bank struct {
	size     int
	textures map[color.RGBA]*Texture
}

// NewBank creates an empty bank for textures of the given edge length.
func NewBank(size int) *Bank {
	return &Bank{size: size, textures: make(map[color.RGBA]*Texture)}
}

// Add registers t for color c, replacing any previous texture.
func (b *Bank) Add(c color.RGBA, t *Texture) error {
	if t.Size() != b.size {
		return fmt.Errorf("graphics: texture for %v is %dpx, bank expects %dpx", c, t.Size(), b.size)
	}
	b.textures[c] = t
	return nil
}

// ByColor returns the texture registered for exactly c.
func (b *Bank) ByColor(c color.RGBA) (*Texture, bool) {
	t, ok := b.textures[c]
	return t, ok
}

func (b *Bank) Len() int { return len(b.textures) }
func (b *Bank) TextureSize() int { return b.size }

// LoadBank loads every source concurrently. The first failure cancels the
// remaining loads and is returned.
func LoadBank(ctx context.Context, sources []TextureSource, size int) (*Bank, error) {
	if size <= 0 {
		return nil, ErrTextureSize
	}
	loaded := make([]*Texture, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var (
				t   *Texture
				err error
			)
			if src.Path == "" {
				t, err = BrickTexture(src.Color, size)
			} else {
				t, err = LoadTexture(src.Path, size)
			}
			if err != nil {
				return err
			}
			loaded[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bank := NewBank(size)
	for i, src := range sources {
		if err := bank.Add(src.Color, loaded[i]); err != nil {
			return nil, err
		}
	}
	return bank, nil
}
