package spritefile

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// entryHeaderSize is the size of the fixed part of a directory entry.
const entryHeaderSize = 44

// nameSize is the size of the NUL-padded name field.
const nameSize = 12

// entryHeader mirrors the fixed part of a directory entry.
type entryHeader struct {
	Next         uint32
	Name         [nameSize]byte
	HWordsMinus1 uint32
	VLinesMinus1 uint32
	FirstBit     uint32
	LastBit      uint32
	ImageRel     uint32
	MaskRel      uint32
	Mode         uint32
}

// Header is the decoded fixed header of one sprite, with pointers made
// absolute.
type Header struct {
	Offset   int64  // Start of the entry.
	Next     uint32 // Distance to the following entry.
	HWords   int    // Row width in 32-bit words.
	VLines   int    // Number of rows.
	FirstBit int    // First used bit in each row's first word.
	LastBit  int    // Last used bit in each row's last word.
	ImagePtr int64
	MaskPtr  int64
	Mode     uint32
}

// HasMask reports whether the entry carries a mask plane.
func (h Header) HasMask() bool { return h.MaskPtr != h.ImagePtr }

// spriteName truncates a name field at its first NUL.
func spriteName(b [nameSize]byte) string {
	if i := bytes.IndexByte(b[:], 0); i >= 0 {
		return string(b[:i])
	}
	return string(b[:])
}

// readHeader decodes the fixed header at off.
func (d *decoder) readHeader(off int64) (string, Header, error) {
	var raw entryHeader
	if off < 0 || off+entryHeaderSize > d.src.size {
		return "", Header{}, errors.Wrapf(ErrTruncatedData, "entry header at %d extends past end of source (%d bytes)", off, d.src.size)
	}
	if err := binary.Read(io.NewSectionReader(d.src.r, off, entryHeaderSize), binary.LittleEndian, &raw); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return "", Header{}, errors.Wrapf(ErrTruncatedData, "could not read entry header at %d", off)
		}
		return "", Header{}, errors.Wrapf(err, "could not read entry header at %d", off)
	}

	h := Header{
		Offset:   off,
		Next:     raw.Next,
		HWords:   int(raw.HWordsMinus1) + 1,
		VLines:   int(raw.VLinesMinus1) + 1,
		FirstBit: int(raw.FirstBit),
		LastBit:  int(raw.LastBit),
		ImagePtr: off + int64(raw.ImageRel),
		MaskPtr:  off + int64(raw.MaskRel),
		Mode:     raw.Mode,
	}
	name := spriteName(raw.Name)
	glog.V(2).Infof("entry at %d: %q %+v", off, name, h)

	if name == "" {
		return name, h, errors.Wrap(ErrMalformedContainer, "empty sprite name")
	}
	if raw.HWordsMinus1 >= 1<<24 || raw.VLinesMinus1 >= 1<<24 {
		return name, h, errors.Wrapf(ErrMalformedContainer, "implausible size %dx%d words", h.HWords, h.VLines)
	}
	if h.FirstBit > 31 || h.LastBit > 31 || (h.HWords == 1 && h.FirstBit > h.LastBit) {
		return name, h, errors.Wrapf(ErrMalformedContainer, "bad bit range %d..%d", h.FirstBit, h.LastBit)
	}
	return name, h, nil
}

// dimensions computes a sprite's size in pixels.
func dimensions(h Header, d Depth) (width, height int, err error) {
	l := uint(d)
	width = h.HWords*(32>>l) - h.FirstBit>>l - (31-h.LastBit)>>l
	height = h.VLines
	if width < 1 || height < 1 {
		return 0, 0, errors.Wrapf(ErrMalformedContainer, "empty sprite: %dx%d pixels", width, height)
	}
	return width, height, nil
}
