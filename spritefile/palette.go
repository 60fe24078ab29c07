package spritefile

import (
	"image/color"

	"github.com/golang/glog"
)

// RGB is a color triple as stored in palette records.
type RGB struct {
	R, G, B uint8
}

// PaletteEntry holds the two colors stored per palette slot. Only Primary is
// used when decoding; Secondary is the "flash" alternate.
type PaletteEntry struct {
	Primary, Secondary RGB
}

// Palette is a sprite's color table, indexed by stored pixel value.
type Palette []PaletteEntry

// paletteRecordSize is the size of one stored entry: a pad byte and three
// color bytes for each of the two colors.
const paletteRecordSize = 8

// ColorPalette returns the primary colors as an opaque color.Palette.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, e := range p {
		cp[i] = color.NRGBA{e.Primary.R, e.Primary.G, e.Primary.B, 0xff}
	}
	return cp
}

func (p Palette) clone() Palette {
	if p == nil {
		return nil
	}
	return append(Palette(nil), p...)
}

// Default colors for sprites without a stored palette. 1bpp uses
// 255*(1-v) and 8bpp uses vidcColor instead of a table.
var (
	greyPalette = [4]RGB{
		{0xff, 0xff, 0xff}, {0xbb, 0xbb, 0xbb},
		{0x77, 0x77, 0x77}, {0x00, 0x00, 0x00},
	}
	desktopPalette = [16]RGB{
		{0xff, 0xff, 0xff}, {0xdd, 0xdd, 0xdd},
		{0xbb, 0xbb, 0xbb}, {0x99, 0x99, 0x99},
		{0x77, 0x77, 0x77}, {0x55, 0x55, 0x55},
		{0x33, 0x33, 0x33}, {0x00, 0x00, 0x00},
		{0x00, 0x44, 0x99}, {0xee, 0xee, 0x00},
		{0x00, 0xcc, 0x00}, {0xdd, 0x00, 0x00},
		{0xee, 0xee, 0xbb}, {0x55, 0x88, 0x00},
		{0xff, 0xbb, 0x00}, {0x00, 0xbb, 0xff},
	}
)

// scale4 stretches a 4-bit channel to 8 bits.
func scale4(v uint32) uint8 { return uint8(v * 255 / 15) }

// scale5 stretches a 5-bit channel to 8 bits.
func scale5(v uint32) uint8 { return uint8(v * 255 / 31) }

// vidcColor is the fixed 256 color palette used by 8bpp sprites that carry
// no palette of their own.
func vidcColor(v uint32) RGB {
	r := (v&0x10)>>1 | v&7
	g := (v&0x40)>>3 | (v&0x20)>>3 | v&3
	b := (v&0x80)>>4 | (v&8)>>1 | v&3
	return RGB{scale4(r), scale4(g), scale4(b)}
}

// readPalette reads the 8 byte records between the end of an entry's header
// and its image data. A nil palette means none was stored.
func (d *decoder) readPalette(start, end int64) (Palette, error) {
	var pal Palette
	var rec [paletteRecordSize]byte
	for off := start; off < end; off += paletteRecordSize {
		if err := d.src.readAt(rec[:], off); err != nil {
			return nil, err
		}
		pal = append(pal, PaletteEntry{
			Primary:   RGB{rec[1], rec[2], rec[3]},
			Secondary: RGB{rec[5], rec[6], rec[7]},
		})
	}
	return pal, nil
}

// ExpandPalette completes a 16 or 64 entry palette of an 8bpp sprite to 256
// entries. The extra entries combine the high bits of the index with the top
// four bits of the corresponding source color. Palettes of any other length
// are returned unchanged.
//
// The result is a new slice; p is never modified.
func ExpandPalette(p Palette) Palette {
	n := len(p)
	if n != 16 && n != 64 {
		return p.clone()
	}

	out := make(Palette, n, 256)
	copy(out, p)
	for j := n; j < 256; j += n {
		for i := 0; i < n; i++ {
			src := p[i].Primary
			k := uint32(j + i)
			r := (k&0x10)>>1 | uint32(src.R>>4)
			g := (k&0x40)>>3 | (k&0x20)>>3 | uint32(src.G>>4)
			b := (k&0x80)>>4 | uint32(src.B>>4)
			c := RGB{scale4(r), scale4(g), scale4(b)}
			out = append(out, PaletteEntry{Primary: c, Secondary: c})
		}
	}
	glog.V(3).Infof("expanded %d entry palette to %d entries", n, len(out))
	return out
}
