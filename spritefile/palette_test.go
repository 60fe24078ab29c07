package spritefile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/bradfitz/iter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greys(n int) Palette {
	p := make(Palette, n)
	for i := range iter.N(n) {
		v := uint8(i * 255 / (n - 1))
		p[i] = PaletteEntry{Primary: RGB{v, v, v}, Secondary: RGB{255 - v, 0, 0}}
	}
	return p
}

func TestExpandPalette16(t *testing.T) {
	src := greys(16)
	src[0].Primary = RGB{0xf0, 0x00, 0x00}

	out := ExpandPalette(src)
	require.Len(t, out, 256)
	assert.Equal(t, src, out[:16], "first 16 entries must be preserved")

	// j=16, i=0: red gains bit 3 from the index, keeps the source's top nibble.
	assert.Equal(t, RGB{255, 0, 0}, out[16].Primary)
	assert.Equal(t, out[16].Primary, out[16].Secondary)

	// j=240, i=15 with a white source: every channel saturates.
	assert.Equal(t, RGB{255, 255, 255}, out[255].Primary)

	// j=32, i=1: index 33 sets green bit 2 only.
	s := src[1].Primary
	want := RGB{scale4(uint32(s.R >> 4)), scale4(4 | uint32(s.G>>4)), scale4(uint32(s.B >> 4))}
	assert.Equal(t, want, out[33].Primary)
}

func TestExpandPaletteDeterministic(t *testing.T) {
	raw := make([]byte, 16*paletteRecordSize)
	for i := range iter.N(len(raw)) {
		raw[i] = byte(i*37 + 11)
	}
	decode := func() Palette {
		var p Palette
		for i := 0; i < len(raw); i += paletteRecordSize {
			r := raw[i:]
			p = append(p, PaletteEntry{RGB{r[1], r[2], r[3]}, RGB{r[5], r[6], r[7]}})
		}
		return ExpandPalette(p)
	}

	a, b := decode(), decode()
	var ab, bb bytes.Buffer
	require.NoError(t, binary.Write(&ab, binary.LittleEndian, a))
	require.NoError(t, binary.Write(&bb, binary.LittleEndian, b))
	assert.Equal(t, ab.Bytes(), bb.Bytes())
}

func TestExpandPalette64(t *testing.T) {
	src := greys(64)
	out := ExpandPalette(src)
	require.Len(t, out, 256)

	// j=64, i=0: 0x40 lands in green bit 3 of the expanded color.
	assert.Equal(t, RGB{0, 8 * 17, 0}, out[64].Primary)
	// j=192, i=63: index 255.
	assert.Equal(t, RGB{255, 255, 255}, out[255].Primary)
}

func TestExpandPaletteOtherSizes(t *testing.T) {
	for _, n := range []int{2, 4, 32, 255, 256} {
		src := greys(n)
		out := ExpandPalette(src)
		assert.Len(t, out, n, "palette of %d entries", n)
	}
	assert.Nil(t, ExpandPalette(nil))
}

func TestExpandPaletteDoesNotAlias(t *testing.T) {
	src := greys(16)
	out := ExpandPalette(src)
	out[0].Primary = RGB{1, 2, 3}
	assert.NotEqual(t, RGB{1, 2, 3}, src[0].Primary)
}

func TestVIDCColor(t *testing.T) {
	assert.Equal(t, RGB{0, 0, 0}, vidcColor(0x00))
	assert.Equal(t, RGB{255, 255, 255}, vidcColor(0xff))
	assert.Equal(t, RGB{136, 0, 0}, vidcColor(0x10))
	assert.Equal(t, RGB{0, 136, 0}, vidcColor(0x40))
	assert.Equal(t, RGB{0, 0, 136}, vidcColor(0x80))
	// The low two bits feed all three channels.
	assert.Equal(t, RGB{51, 51, 51}, vidcColor(0x03))
}

func TestColorPalette(t *testing.T) {
	cp := greys(4).ColorPalette()
	require.Len(t, cp, 4)
	r, g, b, a := cp[3].RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}
