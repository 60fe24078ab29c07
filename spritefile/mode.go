package spritefile

import (
	"github.com/pkg/errors"
)

// ColorModel names the layout of a decoded sprite's pixels.
type ColorModel int

const (
	ModelRGB ColorModel = iota
	ModelCMYK
	ModelRGBA // RGB with a mask applied.
)

func (m ColorModel) String() string {
	switch m {
	case ModelRGB:
		return "RGB"
	case ModelCMYK:
		return "CMYK"
	case ModelRGBA:
		return "RGBA"
	default:
		return "ColorModel(?)"
	}
}

// legacyDPI is the resolution of the old screen modes before scaling.
const legacyDPI = 90

type legacyMode struct {
	log2bpp        int
	xScale, yScale int
}

// legacyModes is indexed by the low six bits of an old-style mode word.
var legacyModes = [...]legacyMode{
	{0, 1, 2}, {1, 2, 2}, {2, 3, 2}, {1, 1, 2},
	{0, 2, 2}, {1, 3, 2}, {1, 2, 2}, {2, 2, 2},
	{1, 1, 2}, {2, 2, 2}, {3, 3, 2}, {1, 1, 2},
	{2, 1, 2}, {3, 2, 2}, {2, 1, 2}, {3, 1, 2},
	{2, 1, 2}, {2, 1, 2}, {0, 1, 1}, {1, 1, 1},
	{2, 1, 1}, {3, 1, 1}, {2, 0, 1}, {0, 1, 1},
	{3, 1, 2}, {0, 1, 1}, {1, 1, 1}, {2, 1, 1},
	{3, 1, 1}, {0, 1, 1}, {1, 1, 1}, {2, 1, 1},
	{3, 1, 1}, {0, 1, 2}, {1, 1, 2}, {2, 1, 2},
	{3, 1, 2}, {0, 1, 2}, {1, 1, 2}, {2, 1, 2},
	{3, 1, 2}, {0, 1, 2}, {1, 1, 2}, {2, 1, 2},
	{0, 1, 2}, {1, 1, 2}, {2, 1, 2}, {3, 2, 2},
	{2, 2, 1}, {3, 2, 1},
}

// extendedDepths maps the top five bits of a new-style mode word to log2bpp.
// Index 0 is unused; 0 in those bits selects a legacy mode.
var extendedDepths = [...]Depth{0, Depth1, Depth2, Depth4, Depth8, Depth16, Depth32, Depth32}

// Mode is a resolved mode word.
type Mode struct {
	Word   uint32
	Legacy bool
	Index  int // Legacy mode number; only meaningful when Legacy is set.

	Depth      Depth
	DPIX, DPIY int
	Model      ColorModel
}

// BPP returns the number of bits per pixel.
func (m Mode) BPP() int { return m.Depth.bits() }

// Log2BPP returns the base-2 logarithm of BPP.
func (m Mode) Log2BPP() int { return int(m.Depth) }

// ResolveMode decodes a mode word into bit depth, resolution and color model.
func ResolveMode(word uint32) (Mode, error) {
	code := word >> 27
	if code == 0 {
		idx := int(word & 0x3f)
		if idx >= len(legacyModes) {
			return Mode{}, errors.Wrapf(ErrUnsupportedMode, "unknown mode number %d", idx)
		}
		lm := legacyModes[idx]
		return Mode{
			Word:   word,
			Legacy: true,
			Index:  idx,
			Depth:  Depth(lm.log2bpp),
			DPIX:   scaledDPI(lm.xScale),
			DPIY:   scaledDPI(lm.yScale),
			Model:  ModelRGB,
		}, nil
	}

	if int(code) >= len(extendedDepths) {
		return Mode{}, errors.Wrapf(ErrUnsupportedMode, "unknown number of bits per pixel (type %d)", code)
	}
	model := ModelRGB
	if code == 7 {
		model = ModelCMYK
	}
	return Mode{
		Word:  word,
		Depth: extendedDepths[code],
		DPIX:  int((word >> 1) & 0x1fff),
		DPIY:  int((word >> 14) & 0x1fff),
		Model: model,
	}, nil
}

// scaledDPI divides the legacy resolution by a mode's scale factor. Mode 22
// declares a horizontal factor of 0, which yields 0 rather than a panic.
func scaledDPI(scale int) int {
	if scale == 0 {
		return 0
	}
	return legacyDPI / scale
}
