//go:build !windows

package imageprint

import (
	"fmt"
	"image"

	"github.com/BourgeoisBear/rasterm"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// RasTerm draws img with the best graphics protocol the terminal offers:
// kitty, then iTerm2 inline images, then sixels. Other terminals get
// colored blanks.
func (p *Printer) RasTerm(img image.Image) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(p.W, img)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(p.W, img)
	default:
		if capable, serr := rasterm.IsSixelCapable(); !capable || serr != nil {
			p.fallback(img)
			return nil
		}
		err = rasterm.Settings{}.SixelWriteImage(p.W, sixelImage(img))
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(p.W, "\n")
	return err
}
