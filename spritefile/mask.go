package spritefile

import (
	"github.com/pkg/errors"
)

// maskAlpha converts a mask field to an alpha value. Wider masks are
// thresholded: only the all-ones value is opaque.
func maskAlpha(d Depth, v uint32) uint8 {
	if d == Depth1 {
		return uint8(v * 0xff)
	}
	if v == 1<<uint(d.bits())-1 {
		return 0xff
	}
	return 0
}

// applyMask walks the mask plane of s, writes alpha into s.rgba and zeroes
// the color of every transparent pixel.
func (d *decoder) applyMask(s *Bitmap) error {
	dep := s.mode.Depth.maskDepth()
	if !dep.valid() {
		return errors.Wrapf(ErrUnsupportedMode, "no mask conversion for %d bpp", s.mode.Depth.bits())
	}

	bits := int64(dep.bits()) * int64(s.width)
	stride := (bits + 31) / 32 * 32
	base := s.header.MaskPtr*8 + int64(s.header.FirstBit)

	var row plane
	for y := 0; y < s.height; y++ {
		if err := d.src.readRow(&row, base+int64(y)*stride, s.width, dep, fieldBytes(dep)); err != nil {
			return errors.Wrapf(err, "mask row %d", y)
		}
		px := s.rgba[y*s.width*4:]
		for x := 0; x < s.width; x++ {
			a := maskAlpha(dep, row.field(x, dep))
			p := px[x*4 : x*4+4]
			if a == 0 {
				p[0], p[1], p[2] = 0, 0, 0
			}
			p[3] = a
		}
	}
	s.model = ModelRGBA
	return nil
}
