package spritefile

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/spriteview/go-spritefile/spritefile/spritetest"
	"github.com/spriteview/go-spritefile/ttesting"
)

func TestResolveLegacyMode(t *testing.T) {
	for _, tc := range []struct {
		word         uint32
		bpp, log2bpp int
		dpiX, dpiY   int
	}{
		{0, 1, 0, 90, 45},
		{12, 4, 2, 90, 45},
		{15, 8, 3, 90, 45},
		{21, 8, 3, 90, 90},
		{22, 4, 2, 0, 90},
		{28, 8, 3, 90, 90},
		{49, 8, 3, 45, 90},
		// Bits above the low six are ignored for old-style modes.
		{0x100 | 28, 8, 3, 90, 90},
	} {
		t.Run(fmt.Sprintf("mode%d", tc.word), func(t *testing.T) {
			m, err := ResolveMode(tc.word)
			if err != nil {
				t.Fatalf("failed to resolve mode: %s", err)
			}
			if !m.Legacy {
				t.Errorf("got extended mode; want legacy")
			}
			ttesting.AssertEqualInt(t, "bpp", m.BPP(), tc.bpp)
			ttesting.AssertEqualInt(t, "log2bpp", m.Log2BPP(), tc.log2bpp)
			ttesting.AssertEqualInt(t, "dpi x", m.DPIX, tc.dpiX)
			ttesting.AssertEqualInt(t, "dpi y", m.DPIY, tc.dpiY)
			ttesting.AssertEqualString(t, "model", m.Model.String(), "RGB")
		})
	}
}

func TestResolveLegacyModeUnknown(t *testing.T) {
	for _, word := range []uint32{50, 63} {
		if _, err := ResolveMode(word); !errors.Is(err, ErrUnsupportedMode) {
			t.Errorf("mode %d: got %v; want ErrUnsupportedMode", word, err)
		}
	}
}

func TestResolveExtendedMode(t *testing.T) {
	for _, tc := range []struct {
		code    uint32
		bpp     int
		log2bpp int
		model   ColorModel
	}{
		{spritetest.Type1bpp, 1, 0, ModelRGB},
		{spritetest.Type2bpp, 2, 1, ModelRGB},
		{spritetest.Type4bpp, 4, 2, ModelRGB},
		{spritetest.Type8bpp, 8, 3, ModelRGB},
		{spritetest.Type16bpp, 16, 4, ModelRGB},
		{spritetest.Type32bpp, 32, 5, ModelRGB},
		{spritetest.TypeCMYK, 32, 5, ModelCMYK},
	} {
		t.Run(fmt.Sprintf("type%d", tc.code), func(t *testing.T) {
			m, err := ResolveMode(spritetest.ExtendedMode(tc.code, 180, 8191))
			if err != nil {
				t.Fatalf("failed to resolve mode: %s", err)
			}
			ttesting.AssertEqualInt(t, "bpp", m.BPP(), tc.bpp)
			ttesting.AssertEqualInt(t, "log2bpp", m.Log2BPP(), tc.log2bpp)
			ttesting.AssertEqualInt(t, "dpi x", m.DPIX, 180)
			ttesting.AssertEqualInt(t, "dpi y", m.DPIY, 8191)
			ttesting.AssertEqualString(t, "model", m.Model.String(), tc.model.String())
		})
	}
}

func TestResolveExtendedModeUnknown(t *testing.T) {
	for _, code := range []uint32{8, 15, 31} {
		if _, err := ResolveMode(code << 27); !errors.Is(err, ErrUnsupportedMode) {
			t.Errorf("type %d: got %v; want ErrUnsupportedMode", code, err)
		}
	}
}

func TestLegacyTableIsComplete(t *testing.T) {
	ttesting.AssertEqualInt(t, "legacy modes", len(legacyModes), 50)
	for i, m := range legacyModes {
		if m.log2bpp < 0 || m.log2bpp > 3 {
			t.Errorf("mode %d: log2bpp %d out of range", i, m.log2bpp)
		}
	}
}
