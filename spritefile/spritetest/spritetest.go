// Package spritetest builds small sprite files in memory for tests.
package spritetest

import (
	"bytes"
	"encoding/binary"
)

// Entry is a palette slot: primary and secondary (flash) colors.
type Entry struct {
	Primary, Secondary [3]byte
}

// Sprite describes one directory entry. Sizes are given as stored values
// plus one, i.e. HWords and VLines are actual counts.
type Sprite struct {
	Name     string
	HWords   int
	VLines   int
	FirstBit int
	LastBit  int
	Mode     uint32
	Palette  []Entry
	Image    []byte
	Mask     []byte // nil means no mask: the mask pointer equals the image pointer.

	// Trailer is appended after the mask and counted in the entry size.
	Trailer []byte
}

// ExtendedMode returns a new-style mode word for the given type code (1-7)
// and resolution.
func ExtendedMode(code uint32, dpiX, dpiY int) uint32 {
	return code<<27 | uint32(dpiY&0x1fff)<<14 | uint32(dpiX&0x1fff)<<1 | 1
}

// Mode type codes for ExtendedMode.
const (
	Type1bpp  = 1
	Type2bpp  = 2
	Type4bpp  = 3
	Type8bpp  = 4
	Type16bpp = 5
	Type32bpp = 6
	TypeCMYK  = 7
)

// headerSize matches the fixed entry header of the format.
const headerSize = 44

// Encode encodes a single directory entry.
func (s Sprite) Encode() []byte {
	imageRel := headerSize + 8*len(s.Palette)
	maskRel := imageRel
	if s.Mask != nil {
		maskRel = imageRel + len(s.Image)
	}
	size := imageRel + len(s.Image) + len(s.Mask) + len(s.Trailer)

	buf := &bytes.Buffer{}
	var name [12]byte
	copy(name[:], s.Name)
	binary.Write(buf, binary.LittleEndian, struct {
		Next         uint32
		Name         [12]byte
		HWordsMinus1 uint32
		VLinesMinus1 uint32
		FirstBit     uint32
		LastBit      uint32
		ImageRel     uint32
		MaskRel      uint32
		Mode         uint32
	}{
		Next:         uint32(size),
		Name:         name,
		HWordsMinus1: uint32(s.HWords - 1),
		VLinesMinus1: uint32(s.VLines - 1),
		FirstBit:     uint32(s.FirstBit),
		LastBit:      uint32(s.LastBit),
		ImageRel:     uint32(imageRel),
		MaskRel:      uint32(maskRel),
		Mode:         s.Mode,
	})
	for _, e := range s.Palette {
		buf.WriteByte(0)
		buf.Write(e.Primary[:])
		buf.WriteByte(0)
		buf.Write(e.Secondary[:])
	}
	buf.Write(s.Image)
	buf.Write(s.Mask)
	buf.Write(s.Trailer)
	return buf.Bytes()
}

// Build encodes a complete container holding sprites in order.
func Build(sprites ...Sprite) []byte {
	body := &bytes.Buffer{}
	for _, s := range sprites {
		body.Write(s.Encode())
	}
	return Raw(uint32(len(sprites)), 12+4, uint32(12+body.Len()+4), body.Bytes())
}

// Raw encodes a container header with the given (biased) field values
// followed by body. It is meant for building malformed files.
func Raw(count, firstBiased, freeBiased uint32, body []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, [3]uint32{count, firstBiased, freeBiased})
	buf.Write(body)
	return buf.Bytes()
}

// Words packs little-endian 32-bit words, the unit rows are padded to.
func Words(ws ...uint32) []byte {
	b := make([]byte, 4*len(ws))
	for i, w := range ws {
		binary.LittleEndian.PutUint32(b[i*4:], w)
	}
	return b
}
