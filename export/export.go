// Package export encodes decoded sprites into interchange image formats.
package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// Format is a supported output format, named by its usual file extension.
type Format string

const (
	PNG Format = "png"
	GIF Format = "gif"
	BMP Format = "bmp"
)

// ErrUnknownFormat is returned for extensions other than png, gif and bmp.
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat accepts a bare format name ("png") or an extension (".png").
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PNG, GIF, BMP:
		return f, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// FormatForPath picks the format from a file name's extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType is the MIME type for f.
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case GIF:
		return gif.Encode(w, Paletted(img), nil)
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", string(f))
}

// Paletted reduces img to at most 255 colors plus a transparent entry at
// index 0. Pixels with zero alpha map to that entry.
func Paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, 255), opaque(img))

	dst := image.NewPaletted(b, append(color.Palette{color.Transparent}, pal...))
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// opaque returns img's visible pixels only, so the quantizer does not spend
// palette entries on the zeroed colors of transparent ones.
func opaque(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	var last color.NRGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A != 0 {
				c.A = 0xff
				last = c
			} else {
				c = last
				c.A = 0xff
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
