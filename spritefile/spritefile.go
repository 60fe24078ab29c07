package spritefile

// This file contains the container directory walk and the per-entry
// pipeline. Individual stages live in header.go, palette.go, pixels.go and
// mask.go.

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Offsets in the container header are stored biased by this amount.
const offsetBias = 4

// containerHeaderSize is the size of the count, first and free fields.
const containerHeaderSize = 12

// Container maps sprite names to decoded bitmaps. A Container is built by
// Decode and not modified afterwards.
type Container struct {
	count   int // As declared by the file.
	order   []string
	sprites map[string]*Bitmap
}

// Len returns the number of distinct sprite names.
func (c *Container) Len() int { return len(c.order) }

// DeclaredCount returns the sprite count stored in the container header.
func (c *Container) DeclaredCount() int { return c.count }

// Names returns the sprite names in lexicographic order.
func (c *Container) Names() []string {
	names := append([]string(nil), c.order...)
	sort.Strings(names)
	return names
}

// Get returns the sprite called name, or ErrNotFound.
func (c *Container) Get(name string) (*Bitmap, error) {
	if b, ok := c.sprites[name]; ok {
		return b, nil
	}
	return nil, errors.Wrapf(ErrNotFound, "%q", name)
}

// Each calls fn for every sprite in the order they appear in the file, and
// stops at the first error, which it returns.
func (c *Container) Each(fn func(*Bitmap) error) error {
	for _, name := range c.order {
		if err := fn(c.sprites[name]); err != nil {
			return err
		}
	}
	return nil
}

// add stores b. A repeated name replaces the earlier sprite but keeps its
// position.
func (c *Container) add(b *Bitmap) {
	if _, ok := c.sprites[b.name]; !ok {
		c.order = append(c.order, b.name)
	}
	c.sprites[b.name] = b
}

type decoder struct {
	src source
}

// Decode reads every sprite of the container in r, which holds size bytes.
//
// Decoding stops at the first entry that cannot be decoded; the returned
// error is then an *EntryError.
func Decode(r io.ReaderAt, size int64) (*Container, error) {
	d := decoder{src: source{r: r, size: size}}
	return d.decodeContainer()
}

// DecodeBytes decodes a container held in memory.
func DecodeBytes(b []byte) (*Container, error) {
	return Decode(bytes.NewReader(b), int64(len(b)))
}

// DecodeFile opens and decodes the container at path.
func DecodeFile(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open sprite file")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "could not stat sprite file")
	}
	return Decode(f, st.Size())
}

// readerAtSeeker is satisfied by *os.File and *bytes.Reader.
type readerAtSeeker interface {
	io.ReaderAt
	io.Seeker
}

// DecodeReader decodes a container from r, finding its size by seeking to
// the end. r's position is restored afterwards.
func DecodeReader(r readerAtSeeker) (*Container, error) {
	size, err := sizeOf(r)
	if err != nil {
		return nil, err
	}
	return Decode(r, size)
}

// sizeOf seeks to the end of r to find its size and then back again.
func sizeOf(r io.Seeker) (int64, error) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.Wrap(err, "could not find current position")
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.Wrap(err, "could not find size")
	}
	if _, err := r.Seek(cur, io.SeekStart); err != nil {
		return 0, errors.Wrap(err, "could not restore position")
	}
	return size, nil
}

// directory reads and checks the container header, returning the declared
// count and the unbiased offsets of the first entry and of free space.
func (d *decoder) directory() (count int, first, free int64, err error) {
	var head [3]uint32
	for i := range head {
		v, err := d.src.uint32At(int64(i) * 4)
		if err != nil {
			return 0, 0, 0, errors.Wrapf(ErrMalformedContainer, "could not read container header: %v", err)
		}
		head[i] = v
	}
	count = int(head[0])
	first = int64(head[1]) - offsetBias
	free = int64(head[2]) - offsetBias

	switch {
	case first < containerHeaderSize:
		return 0, 0, 0, errors.Wrapf(ErrMalformedContainer, "first sprite offset %d overlaps container header", first)
	case free < first:
		return 0, 0, 0, errors.Wrapf(ErrMalformedContainer, "free offset %d before first sprite offset %d", free, first)
	case free > d.src.size:
		return 0, 0, 0, errors.Wrapf(ErrMalformedContainer, "free offset %d beyond end of source (%d bytes)", free, d.src.size)
	}
	return count, first, free, nil
}

func (d *decoder) decodeContainer() (*Container, error) {
	count, first, free, err := d.directory()
	if err != nil {
		return nil, err
	}

	c := &Container{
		count:   count,
		sprites: make(map[string]*Bitmap),
	}
	for off := first; off < free; {
		b, err := d.decodeEntry(off, free)
		if err != nil {
			return nil, err
		}
		c.add(b)
		off += int64(b.header.Next)
	}

	if c.Len() != c.count {
		glog.V(1).Infof("sprite file declares %d sprites, decoded %d", c.count, c.Len())
	}
	glog.V(1).Infof("decoded %d sprites from %d..%d", c.Len(), first, free)
	return c, nil
}

// decodeEntry runs the header, palette, pixel and mask stages for the entry
// at off. free bounds the entry's declared extent.
func (d *decoder) decodeEntry(off, free int64) (*Bitmap, error) {
	name, h, err := d.readHeader(off)
	if err != nil {
		return nil, &EntryError{Offset: off, Name: name, Err: err}
	}
	b, err := d.decodeSprite(name, h, free)
	if err != nil {
		return nil, &EntryError{Offset: off, Name: name, Err: err}
	}
	return b, nil
}

func (d *decoder) decodeSprite(name string, h Header, free int64) (*Bitmap, error) {
	if h.Next == 0 {
		return nil, errors.Wrap(ErrMalformedContainer, "zero sized entry")
	}
	if h.Offset+int64(h.Next) > free {
		return nil, errors.Wrapf(ErrMalformedContainer, "entry of %d bytes crosses free offset %d", h.Next, free)
	}

	mode, err := ResolveMode(h.Mode)
	if err != nil {
		return nil, err
	}
	width, height, err := dimensions(h, mode.Depth)
	if err != nil {
		return nil, err
	}
	if int64(h.HWords)*4*int64(h.VLines) > d.src.size {
		return nil, errors.Wrapf(ErrTruncatedData, "%d rows of %d words do not fit in %d bytes", h.VLines, h.HWords, d.src.size)
	}

	pal, err := d.readPalette(h.Offset+entryHeaderSize, h.ImagePtr)
	if err != nil {
		return nil, errors.Wrap(err, "palette")
	}
	if mode.Depth == Depth8 && pal != nil && len(pal) < 256 {
		pal = ExpandPalette(pal)
	}

	b := &Bitmap{
		name:    name,
		header:  h,
		mode:    mode,
		model:   mode.Model,
		width:   width,
		height:  height,
		palette: pal,
	}
	if err := d.unpackPixels(b); err != nil {
		return nil, err
	}
	if h.HasMask() {
		if err := d.applyMask(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}
