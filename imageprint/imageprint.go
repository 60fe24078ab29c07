// Package imageprint draws decoded sprites on a terminal.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"os"

	"github.com/andybons/gogif"
	"github.com/gookit/color"
)

// Style selects how a pixel is turned into terminal output.
type Style int

const (
	TrueColor Style = iota // 24 bit background escapes.
	Color256               // gookit/color, which downgrades to the terminal's palette.
	NoColor                // Plain characters only.
)

// Printer writes images to W, two character cells per pixel.
type Printer struct {
	W      io.Writer
	Style  Style
	Blanks bool // Colored blanks instead of ASCII shading.
}

// Stdout is the printer used by the package-level functions.
var Stdout = &Printer{W: os.Stdout}

// shadeChars picks ASCII art for a pixel by brightness.
func shadeChars(r, g, b uint32) string {
	a := ((r + g + b) / 3) >> 8
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func (p *Printer) pixel(col ic.Color) {
	// Images here are non-premultiplied; reading NRGBA keeps the stored
	// color of half-transparent CMYK passthrough pixels intact.
	c := ic.NRGBAModel.Convert(col).(ic.NRGBA)
	if c.A == 0 {
		fmt.Fprint(p.W, "\x1b[0m  ")
		return
	}
	r, g, b := uint32(c.R)<<8, uint32(c.G)<<8, uint32(c.B)<<8
	cells := "  "
	if !p.Blanks {
		cells = shadeChars(r, g, b)
	}

	switch p.Style {
	case NoColor:
		fmt.Fprint(p.W, cells)
	case Color256:
		fmt.Fprint(p.W, color.RGB(c.R, c.G, c.B, true).Sprintf("%s", cells))
	default:
		fmt.Fprintf(p.W, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", c.R, c.G, c.B, cells)
	}
}

// Print draws img row by row.
func (p *Printer) Print(img image.Image) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.pixel(img.At(x, y))
		}
		if p.Style != NoColor {
			fmt.Fprint(p.W, "\x1b[0m")
		}
		fmt.Fprint(p.W, "\n")
	}
}

// fallback prints img as 24 bit colored blanks, for terminals without a
// graphics protocol.
func (p *Printer) fallback(img image.Image) {
	(&Printer{W: p.W, Style: TrueColor, Blanks: true}).Print(img)
}

// sixelImage reduces img to the 64 colors sixel output is drawn with.
func sixelImage(img image.Image) *image.Paletted {
	pal := image.NewPaletted(img.Bounds(), nil)
	quantizer := gogif.MedianCutQuantizer{NumColor: 64}
	quantizer.Quantize(pal, img.Bounds(), img, image.Point{})
	return pal
}

// PrintITerm draws img inline using iTerm2's escape sequence.
//
// https://www.iterm2.com/documentation-images.html
func (p *Printer) PrintITerm(img image.Image, fn string) error {
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	enc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(enc, img); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	sz := img.Bounds().Size()
	_, err := fmt.Fprintf(p.W, "\n\033]1337;File=name=%s;inline=1;size=%d;width=%dpx;height=%dpx:%s\a\n", name, b.Len(), sz.X, sz.Y, b.String())
	return err
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(i image.Image, blanks bool) {
	(&Printer{W: Stdout.W, Style: TrueColor, Blanks: blanks}).Print(i)
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(i image.Image, blanks bool) {
	(&Printer{W: Stdout.W, Style: Color256, Blanks: blanks}).Print(i)
}

// PrintNoColor draws an image without using color escape sequences. Only makes sense with blanks=false.
func PrintNoColor(i image.Image, blanks bool) {
	(&Printer{W: Stdout.W, Style: NoColor, Blanks: blanks}).Print(i)
}

// PrintITerm draws an image using iTerm2's escape sequences, if the terminal
// looks like it supports them.
func PrintITerm(i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	Stdout.PrintITerm(i, fn)
}

// PrintRasTerm draws an image using the RasTerm library. This enables
// drawing in kitty and in sixel-capable terminals.
func PrintRasTerm(i image.Image) {
	Stdout.RasTerm(i)
}
