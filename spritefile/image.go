package spritefile

// This file lets a sprite file be used like a single-image format, modeled
// after image/gif: Decode and DecodeConfig look at the first sprite only.
// There is no magic number, so the format is not registered with
// image.RegisterFormat.

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

func decoderFor(r io.Reader) (*decoder, error) {
	if rs, ok := r.(readerAtSeeker); ok {
		size, err := sizeOf(rs)
		if err != nil {
			return nil, err
		}
		return &decoder{src: source{r: rs, size: size}}, nil
	}
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read sprite file")
	}
	return &decoder{src: source{r: bytes.NewReader(b), size: int64(len(b))}}, nil
}

// firstEntry returns the offset of the first entry, or ErrNotFound for an
// empty container.
func (d *decoder) firstEntry() (first, free int64, err error) {
	_, first, free, err = d.directory()
	if err != nil {
		return 0, 0, err
	}
	if first == free {
		return 0, 0, errors.Wrap(ErrNotFound, "sprite file holds no sprites")
	}
	return first, free, nil
}

// DecodeConfig returns the dimensions of the first sprite without unpacking
// its pixels. The color model is always color.NRGBAModel, matching Image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d, err := decoderFor(r)
	if err != nil {
		return image.Config{}, err
	}
	first, _, err := d.firstEntry()
	if err != nil {
		return image.Config{}, err
	}

	name, h, err := d.readHeader(first)
	if err != nil {
		return image.Config{}, &EntryError{Offset: first, Name: name, Err: err}
	}
	mode, err := ResolveMode(h.Mode)
	if err != nil {
		return image.Config{}, &EntryError{Offset: first, Name: name, Err: err}
	}
	w, ht, err := dimensions(h, mode.Depth)
	if err != nil {
		return image.Config{}, &EntryError{Offset: first, Name: name, Err: err}
	}
	return image.Config{Width: w, Height: ht, ColorModel: color.NRGBAModel}, nil
}

// DecodeImage returns the first sprite of a sprite file. Unlike Decode, the
// remaining entries are not read, so damage after the first sprite goes
// unnoticed.
func DecodeImage(r io.Reader) (image.Image, error) {
	d, err := decoderFor(r)
	if err != nil {
		return nil, err
	}
	first, free, err := d.firstEntry()
	if err != nil {
		return nil, err
	}
	b, err := d.decodeEntry(first, free)
	if err != nil {
		return nil, err
	}
	return b.Image(), nil
}
