package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spriteview/go-spritefile/export"
	"github.com/spriteview/go-spritefile/spritefile"
)

func describe(s *spritefile.Bitmap) string {
	extra := ""
	if s.Palette() != nil {
		extra += " palette"
	}
	if s.HasMask() {
		extra += " mask"
	}
	return fmt.Sprintf("%-12s %4dx%-4d %2dbpp %3dx%-3d dpi %-4s%s", s.Name(), s.Width(), s.Height(), s.BPP(), s.DPIX(), s.DPIY(), s.ColorModel(), extra)
}

func listSprites(w io.Writer, c *spritefile.Container) {
	c.Each(func(s *spritefile.Bitmap) error {
		_, err := fmt.Fprintln(w, describe(s))
		return err
	})
}

func exportSprite(path string, s *spritefile.Bitmap) error {
	f, err := export.FormatForPath(path)
	if err != nil {
		return err
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Encode(w, s.Image(), f); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
