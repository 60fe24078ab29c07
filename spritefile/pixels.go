package spritefile

import (
	"github.com/pkg/errors"
)

// colorFunc turns one pixel field into four bytes of output, R, G, B, A.
type colorFunc func(v uint32, dst []byte) error

// colorFuncFor picks the field conversion for a sprite once, before its rows
// are walked. tail is how many bytes of a field the conversion looks at:
// 32bpp RGB ignores the fourth byte, so a row may end without it.
func colorFuncFor(d Depth, pal Palette) (conv colorFunc, tail int, err error) {
	conv, err = colorFuncForDepth(d, pal)
	tail = fieldBytes(d)
	if d == Depth32 {
		tail = 3
	}
	return conv, tail, err
}

func colorFuncForDepth(d Depth, pal Palette) (colorFunc, error) {
	switch d {
	case Depth32:
		return direct32, nil
	case Depth16:
		return direct16, nil
	case Depth8:
		if pal == nil {
			return vidc8, nil
		}
		return paletted(pal), nil
	case Depth4:
		if pal == nil {
			return fixed(desktopPalette[:]), nil
		}
		return paletted(pal), nil
	case Depth2:
		if pal == nil {
			return fixed(greyPalette[:]), nil
		}
		return paletted(pal), nil
	case Depth1:
		if pal == nil {
			return mono, nil
		}
		return paletted(pal), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedMode, "no pixel conversion for %d bpp", d.bits())
}

func put(dst []byte, c RGB) {
	dst[0], dst[1], dst[2], dst[3] = c.R, c.G, c.B, 0xff
}

func direct32(v uint32, dst []byte) error {
	put(dst, RGB{uint8(v), uint8(v >> 8), uint8(v >> 16)})
	return nil
}

func direct16(v uint32, dst []byte) error {
	put(dst, RGB{scale5(v & 0x1f), scale5((v >> 5) & 0x1f), scale5((v >> 10) & 0x1f)})
	return nil
}

func vidc8(v uint32, dst []byte) error {
	put(dst, vidcColor(v))
	return nil
}

func mono(v uint32, dst []byte) error {
	c := uint8(255 * (1 - v))
	put(dst, RGB{c, c, c})
	return nil
}

func fixed(table []RGB) colorFunc {
	return func(v uint32, dst []byte) error {
		put(dst, table[v])
		return nil
	}
}

func paletted(pal Palette) colorFunc {
	return func(v uint32, dst []byte) error {
		if int(v) >= len(pal) {
			return errors.Wrapf(ErrTruncatedData, "palette index %d beyond %d entries", v, len(pal))
		}
		put(dst, pal[v].Primary)
		return nil
	}
}

// unpackPixels walks the image plane of s and fills s.rgba.
func (d *decoder) unpackPixels(s *Bitmap) error {
	if s.mode.Model == ModelCMYK {
		return d.unpackCMYK(s)
	}
	conv, tail, err := colorFuncFor(s.mode.Depth, s.palette)
	if err != nil {
		return err
	}

	dep := s.mode.Depth
	stride := int64(s.header.HWords) * 32
	base := s.header.ImagePtr*8 + int64(s.header.FirstBit)

	s.rgba = make([]byte, s.width*s.height*4)
	var row plane
	for y := 0; y < s.height; y++ {
		if err := d.src.readRow(&row, base+int64(y)*stride, s.width, dep, tail); err != nil {
			return errors.Wrapf(err, "image row %d", y)
		}
		out := s.rgba[y*s.width*4:]
		for x := 0; x < s.width; x++ {
			if err := conv(row.field(x, dep), out[x*4:x*4+4]); err != nil {
				return errors.Wrapf(err, "pixel (%d,%d)", x, y)
			}
		}
	}
	return nil
}

// unpackCMYK copies four bytes per pixel verbatim, read contiguously from the
// image pointer. first_bit and row padding are not applied, which keeps the
// output byte-identical to existing CMYK tools.
//
// TODO: convert CMYK to RGB once there are reference renders to check
// against.
func (d *decoder) unpackCMYK(s *Bitmap) error {
	s.rgba = make([]byte, s.width*s.height*4)
	if err := d.src.readAt(s.rgba, s.header.ImagePtr); err != nil {
		return errors.Wrap(err, "cmyk pixels")
	}
	return nil
}
