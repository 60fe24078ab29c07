package spritefile_test

import (
	"fmt"

	"github.com/spriteview/go-spritefile/spritefile"
	"github.com/spriteview/go-spritefile/spritefile/spritetest"
)

// ExampleDecodeBytes decodes an in-memory sprite file and lists its sprites.
func ExampleDecodeBytes() {
	raw := spritetest.Build(
		spritetest.Sprite{
			Name: "pointer", HWords: 1, VLines: 2, LastBit: 31,
			Mode:  spritetest.ExtendedMode(spritetest.Type4bpp, 90, 90),
			Image: spritetest.Words(0x76543210, 0xfedcba98),
			Mask:  spritetest.Words(0xffffffff, 0x0000ffff),
		},
		spritetest.Sprite{
			Name: "icon", HWords: 1, VLines: 1, LastBit: 31,
			Mode:  spritetest.ExtendedMode(spritetest.Type32bpp, 180, 180),
			Image: []byte{10, 20, 30, 0},
		},
	)

	c, err := spritefile.DecodeBytes(raw)
	if err != nil {
		fmt.Printf("failed to decode sprite file: %s", err)
		return
	}
	for _, name := range c.Names() {
		b, _ := c.Get(name)
		fmt.Printf("%s: %dx%d %dbpp %dx%d dpi %s\n", name, b.Width(), b.Height(), b.BPP(), b.DPIX(), b.DPIY(), b.ColorModel())
	}
	// Output:
	// icon: 1x1 32bpp 180x180 dpi RGB
	// pointer: 8x2 4bpp 90x90 dpi RGBA
}
