// Package ttesting holds assertion helpers shared by the package tests.
//
// Each helper runs as its own subtest so a failing check is reported by name
// without stopping the checks that follow it.
package ttesting

import (
	"bytes"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

// AssertPixel checks the RGBA pixel at (x, y) of a buffer with the given
// row width in pixels.
func AssertPixel(t *testing.T, name string, rgba []byte, width, x, y int, want [4]byte) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		i := (y*width + x) * 4
		if i+4 > len(rgba) {
			t.Fatalf("pixel (%d,%d) outside %d byte buffer", x, y, len(rgba))
		}
		if got := rgba[i : i+4]; !bytes.Equal(got, want[:]) {
			t.Errorf("pixel (%d,%d): got %v; want %v", x, y, got, want)
		}
	})
}

// AssertAlphaBinary checks that every alpha byte is either 0 or 255 and that
// every transparent pixel has its color zeroed.
func AssertAlphaBinary(t *testing.T, name string, rgba []byte) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		for i := 0; i+3 < len(rgba); i += 4 {
			switch rgba[i+3] {
			case 0:
				if rgba[i] != 0 || rgba[i+1] != 0 || rgba[i+2] != 0 {
					t.Errorf("pixel %d: transparent but color %v", i/4, rgba[i:i+3])
				}
			case 0xff:
			default:
				t.Errorf("pixel %d: got alpha %d; want 0 or 255", i/4, rgba[i+3])
			}
		}
	})
}
