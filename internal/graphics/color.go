package graphics

import "image/color"

// Pixels are packed as 0xAARRGGBB.

// Pack converts a color to a packed ARGB pixel.
func Pack(c color.RGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack converts a packed ARGB pixel back to a color.
func Unpack(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
}

// Darken halves every color channel of a packed pixel in one mask
// operation, keeping alpha.
func Darken(p uint32) uint32 {
	return (p>>1)&0x7F7F7F | p&0xFF000000
}

// HalveRGBA halves each color channel, keeping alpha.
func HalveRGBA(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}
