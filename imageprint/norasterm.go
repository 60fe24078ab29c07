//go:build windows

package imageprint

import (
	"flag"
	"image"
)

var (
	forceITerm = flag.Bool("force_iterm", false, "value to force iterm detection to take (implementation variant: no rasterm)")
)

func isTermItermWez() bool {
	return *forceITerm
}

// RasTerm draws img as colored blanks; rasterm is not used on windows.
func (p *Printer) RasTerm(img image.Image) error {
	p.fallback(img)
	return nil
}
