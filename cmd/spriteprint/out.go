package main

import (
	"image"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"github.com/spriteview/go-spritefile/imageprint"
)

func out(img image.Image) {
	if *downsize {
		termSize, err := getTermSize()
		if err == nil {
			if (termSize.XPixel != 0 && termSize.YPixel != 0) && (*rasterm || *iterm) {
				// Graphics protocols draw real pixels, so fit to the pixel size.
				img = resize.Thumbnail(termSize.XPixel/2, termSize.YPixel/2, img, resize.Lanczos3)
			} else {
				// Two cells per pixel horizontally.
				img = resize.Thumbnail(termSize.Cols/2, termSize.Rows, img, resize.Lanczos3)
			}
		}
	}

	switch {
	case *rasterm:
		if err := imageprint.Stdout.RasTerm(img); err != nil {
			glog.Errorf("drawing sprite: %v", err)
		}
	case !*col:
		imageprint.PrintNoColor(img, *blanks)
	case *iterm:
		imageprint.PrintITerm(img, "sprite.png")
	case *col256:
		imageprint.Print256Color(img, *blanks)
	default:
		imageprint.Print24bit(img, *blanks)
	}
}
