package spritefile

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneFieldsLSBFirst(t *testing.T) {
	src := source{r: bytes.NewReader([]byte{0xb4, 0x1e, 0xff, 0x7f, 0x0a, 0x14, 0x1e, 0x28}), size: 8}
	var p plane

	require.NoError(t, src.readRow(&p, 0, 8, Depth1, fieldBytes(Depth1)))
	var got []uint32
	for x := 0; x < 8; x++ {
		got = append(got, p.field(x, Depth1))
	}
	assert.Equal(t, []uint32{0, 0, 1, 0, 1, 1, 0, 1}, got)

	require.NoError(t, src.readRow(&p, 0, 4, Depth2, fieldBytes(Depth2)))
	got = got[:0]
	for x := 0; x < 4; x++ {
		got = append(got, p.field(x, Depth2))
	}
	assert.Equal(t, []uint32{0, 1, 3, 2}, got)

	require.NoError(t, src.readRow(&p, 8, 2, Depth4, fieldBytes(Depth4)))
	assert.Equal(t, uint32(0xe), p.field(0, Depth4))
	assert.Equal(t, uint32(0x1), p.field(1, Depth4))

	require.NoError(t, src.readRow(&p, 16, 1, Depth16, fieldBytes(Depth16)))
	assert.Equal(t, uint32(0x7fff), p.field(0, Depth16))

	require.NoError(t, src.readRow(&p, 32, 1, Depth32, fieldBytes(Depth32)))
	assert.Equal(t, uint32(0x281e140a), p.field(0, Depth32))
}

func TestPlaneRowOffset(t *testing.T) {
	// A row starting mid-byte reads sub-byte fields shifted out of the
	// byte holding their first bit.
	src := source{r: bytes.NewReader([]byte{0x00, 0x50}), size: 2}
	var p plane
	require.NoError(t, src.readRow(&p, 12, 2, Depth2, fieldBytes(Depth2)))
	assert.Equal(t, uint32(1), p.field(0, Depth2))
	assert.Equal(t, uint32(1), p.field(1, Depth2))
}

func TestReadRowTruncated(t *testing.T) {
	src := source{r: bytes.NewReader([]byte{1, 2, 3}), size: 3}
	var p plane
	err := src.readRow(&p, 0, 1, Depth32, fieldBytes(Depth32))
	assert.True(t, errors.Is(err, ErrTruncatedData), "got %v", err)

	err = src.readRow(&p, 0, 25, Depth1, fieldBytes(Depth1))
	assert.True(t, errors.Is(err, ErrTruncatedData), "got %v", err)

	assert.NoError(t, src.readRow(&p, 0, 24, Depth1, fieldBytes(Depth1)))
}

func TestReadRowShortTail(t *testing.T) {
	// A 32bpp RGB row may end three bytes into its last field.
	src := source{r: bytes.NewReader([]byte{10, 20, 30}), size: 3}
	p := plane{buf: []byte{0xee, 0xee, 0xee, 0xee}}
	require.NoError(t, src.readRow(&p, 0, 1, Depth32, 3))
	assert.Equal(t, uint32(0x001e140a), p.field(0, Depth32))

	err := src.readRow(&p, 0, 1, Depth32, 4)
	assert.True(t, errors.Is(err, ErrTruncatedData), "got %v", err)
}

func TestMaskDepth(t *testing.T) {
	assert.Equal(t, Depth1, Depth32.maskDepth())
	assert.Equal(t, Depth1, Depth16.maskDepth())
	assert.Equal(t, Depth8, Depth8.maskDepth())
	assert.Equal(t, Depth2, Depth2.maskDepth())
}

func TestMaskAlpha(t *testing.T) {
	for _, tc := range []struct {
		d    Depth
		v    uint32
		want uint8
	}{
		{Depth1, 0, 0}, {Depth1, 1, 255},
		{Depth2, 3, 255}, {Depth2, 2, 0},
		{Depth4, 15, 255}, {Depth4, 14, 0},
		{Depth8, 255, 255}, {Depth8, 254, 0}, {Depth8, 1, 0},
	} {
		assert.Equal(t, tc.want, maskAlpha(tc.d, tc.v), "%d bpp mask value %d", tc.d.Bits(), tc.v)
	}
}
