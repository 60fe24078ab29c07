package spritefile

import (
	"image"
)

// Bitmap is one decoded sprite. It is not modified after decoding; accessors
// hand out copies of the palette and pixel data.
type Bitmap struct {
	name          string
	header        Header
	mode          Mode
	model         ColorModel
	width, height int
	palette       Palette
	rgba          []byte
}

// Name returns the sprite's name.
func (b *Bitmap) Name() string { return b.name }

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.height }

// BPP returns the stored bits per pixel.
func (b *Bitmap) BPP() int { return b.mode.BPP() }

// Log2BPP returns the base-2 logarithm of BPP.
func (b *Bitmap) Log2BPP() int { return b.mode.Log2BPP() }

// DPIX returns the horizontal resolution in dots per inch.
func (b *Bitmap) DPIX() int { return b.mode.DPIX }

// DPIY returns the vertical resolution in dots per inch.
func (b *Bitmap) DPIY() int { return b.mode.DPIY }

// ColorModel is ModelRGB or ModelCMYK as declared by the mode, or ModelRGBA
// when a mask was applied.
func (b *Bitmap) ColorModel() ColorModel { return b.model }

// Mode returns the resolved mode word.
func (b *Bitmap) Mode() Mode { return b.mode }

// Header returns the entry header the sprite was decoded from.
func (b *Bitmap) Header() Header { return b.header }

// HasMask reports whether a mask plane was composited into the pixels.
func (b *Bitmap) HasMask() bool { return b.header.HasMask() }

// Palette returns a copy of the stored palette, expanded to 256 entries for
// 8bpp sprites where applicable. It is nil when the sprite stores none.
func (b *Bitmap) Palette() Palette { return b.palette.clone() }

// RGBA returns a copy of the pixels, four bytes per pixel in R, G, B, A
// order, rows top to bottom. Transparent pixels have their color zeroed.
func (b *Bitmap) RGBA() []byte {
	return append([]byte(nil), b.rgba...)
}

// Image returns the pixels as a new *image.NRGBA.
func (b *Bitmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.rgba)
	return img
}
