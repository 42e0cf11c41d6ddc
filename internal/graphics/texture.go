package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// DefaultTextureSize is the edge length wall textures are normalized to.
const DefaultTextureSize = 64

var ErrTextureSize = errors.New("graphics: texture size must be positive")

// Texture is an immutable square ARGB pixel buffer. It is shared read-only
// by every column sampling it during a frame.
type Texture struct {
	size int
	pix  []uint32
}

// Size is the edge length in pixels.
func (t *Texture) Size() int { return t.size }

// At samples the texel at (x, y), wrapping coordinates into range.
func (t *Texture) At(x, y int) uint32 {
	x %= t.size
	if x < 0 {
		x += t.size
	}
	y %= t.size
	if y < 0 {
		y += t.size
	}
	return t.pix[y*t.size+x]
}

// NewTexture converts img to a size x size texture, nearest-neighbor
// scaling when the source dimensions differ.
func NewTexture(img image.Image, size int) (*Texture, error) {
	if size <= 0 {
		return nil, ErrTextureSize
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("graphics: empty texture image")
	}
	src := img
	if b.Dx() != size || b.Dy() != size {
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		src = dst
		b = dst.Bounds()
	}
	t := &Texture{size: size, pix: make([]uint32, size*size)}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			t.pix[y*size+x] = Pack(c)
		}
	}
	return t, nil
}

// LoadTexture decodes an image file into a texture.
func LoadTexture(path string, size int) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return NewTexture(img, size)
}

// BrickTexture generates a brick pattern tinted with base: mortar every
// size/8 rows and staggered vertical joints.
func BrickTexture(base color.RGBA, size int) (*Texture, error) {
	if size <= 0 {
		return nil, ErrTextureSize
	}
	course := size / 8
	if course < 2 {
		course = 2
	}
	brick := course * 2
	brickPix := Pack(color.RGBA{R: base.R, G: base.G, B: base.B, A: 0xff})
	mortar := Pack(color.RGBA{
		R: uint8(uint16(base.R) * 7 / 10),
		G: uint8(uint16(base.G) * 7 / 10),
		B: uint8(uint16(base.B) * 7 / 10),
		A: 0xff,
	})

	t := &Texture{size: size, pix: make([]uint32, size*size)}
	for y := 0; y < size; y++ {
		row := y / course
		offset := 0
		if row%2 == 1 {
			offset = brick / 2
		}
		for x := 0; x < size; x++ {
			p := brickPix
			if y%course == 0 || (x+offset)%brick == 0 {
				p = mortar
			}
			t.pix[y*size+x] = p
		}
	}
	return t, nil
}
