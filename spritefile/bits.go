package spritefile

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Depth is one of the supported bit depths, stored as log2 of the bits per
// pixel.
type Depth uint8

const (
	Depth1 Depth = iota
	Depth2
	Depth4
	Depth8
	Depth16
	Depth32
)

func (d Depth) bits() int { return 1 << d }

// Bits returns the number of bits per pixel.
func (d Depth) Bits() int { return d.bits() }

func (d Depth) valid() bool { return d <= Depth32 }

// maskDepth is the depth of the mask plane that accompanies pixels of depth
// d. Direct-color sprites carry a one bit mask.
func (d Depth) maskDepth() Depth {
	if d >= Depth16 {
		return Depth1
	}
	return d
}

// source gives bounds-checked positioned reads over the container.
type source struct {
	r    io.ReaderAt
	size int64
}

func (s *source) readAt(buf []byte, off int64) error {
	if off < 0 || off+int64(len(buf)) > s.size {
		return errors.Wrapf(ErrTruncatedData, "need %d bytes at offset %d, source has %d", len(buf), off, s.size)
	}
	n, err := s.r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrTruncatedData, "short read of %d bytes at offset %d: got %d", len(buf), off, n)
	}
	return errors.Wrapf(err, "could not read %d bytes at offset %d", len(buf), off)
}

func (s *source) uint32At(off int64) (uint32, error) {
	var b [4]byte
	if err := s.readAt(b[:], off); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// plane is one row's worth of bytes from a bit-packed pixel or mask plane.
//
// bit is the absolute bit offset of the row's first field; buf starts at
// byte bit>>3.
type plane struct {
	buf []byte
	bit int64
}

// readRow loads the bytes holding width fields of depth d, starting at the
// absolute bit offset bit. Only the first tail bytes of the last field have
// to exist in the source; the rest of that field reads as zero.
func (s *source) readRow(p *plane, bit int64, width int, d Depth, tail int) error {
	first := bit >> 3
	last := (bit+int64(width-1)*int64(d.bits()))>>3 + int64(fieldBytes(d))
	n := int(last - first)
	if cap(p.buf) < n {
		p.buf = make([]byte, n)
	}
	p.buf = p.buf[:n]
	p.bit = bit
	short := fieldBytes(d) - tail
	for i := n - short; i < n; i++ {
		p.buf[i] = 0
	}
	return s.readAt(p.buf[:n-short], first)
}

// fieldBytes is the number of whole bytes a field of depth d is read from.
func fieldBytes(d Depth) int {
	if d <= Depth8 {
		return 1
	}
	return d.bits() / 8
}

// field extracts the x'th field of depth d from the row.
//
// Fields narrower than a byte are shifted out of the byte holding their first
// bit. Fields of a byte or wider are read from whole bytes, ignoring any
// sub-byte misalignment of the row start.
func (p *plane) field(x int, d Depth) uint32 {
	bit := p.bit + int64(x)*int64(d.bits())
	i := int(bit>>3 - p.bit>>3)
	switch d {
	case Depth1, Depth2, Depth4:
		return uint32(p.buf[i]>>uint(bit&7)) & (1<<uint(d.bits()) - 1)
	case Depth8:
		return uint32(p.buf[i])
	case Depth16:
		return uint32(binary.LittleEndian.Uint16(p.buf[i:]))
	default:
		return binary.LittleEndian.Uint32(p.buf[i:])
	}
}
