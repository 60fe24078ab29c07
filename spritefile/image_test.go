package spritefile_test

import (
	"bytes"
	"image/color"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spriteview/go-spritefile/spritefile"
	"github.com/spriteview/go-spritefile/spritefile/spritetest"
)

// onlyReader hides everything but Read, forcing the buffering path.
type onlyReader struct{ io.Reader }

func twoSprites() []byte {
	return spritetest.Build(
		spritetest.Sprite{
			Name: "wide", HWords: 1, VLines: 3, LastBit: 31,
			Mode:  spritetest.ExtendedMode(spritetest.Type8bpp, 90, 90),
			Image: spritetest.Words(0x01020304, 0x05060708, 0x090a0b0c),
		},
		spritetest.Sprite{
			Name: "dot", HWords: 1, VLines: 1, LastBit: 31,
			Mode:  spritetest.ExtendedMode(spritetest.Type32bpp, 90, 90),
			Image: spritetest.Words(0x00ffffff),
		},
	)
}

func TestDecodeConfig(t *testing.T) {
	for name, r := range map[string]io.Reader{
		"seeker": bytes.NewReader(twoSprites()),
		"reader": onlyReader{bytes.NewReader(twoSprites())},
	} {
		cfg, err := spritefile.DecodeConfig(r)
		require.NoError(t, err, name)
		assert.Equal(t, 4, cfg.Width, name)
		assert.Equal(t, 3, cfg.Height, name)
		assert.Equal(t, color.NRGBAModel, cfg.ColorModel, name)
	}
}

func TestDecodeImageFirstOnly(t *testing.T) {
	img, err := spritefile.DecodeImage(onlyReader{bytes.NewReader(twoSprites())})
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestDecodeImageEmpty(t *testing.T) {
	_, err := spritefile.DecodeImage(bytes.NewReader(spritetest.Build()))
	assert.True(t, errors.Is(err, spritefile.ErrNotFound), "got %v", err)

	_, err = spritefile.DecodeConfig(bytes.NewReader([]byte{1, 2}))
	assert.True(t, errors.Is(err, spritefile.ErrMalformedContainer), "got %v", err)
}
