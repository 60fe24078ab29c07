// Command spriteprint lists, prints and exports sprites from a sprite file.
package main

import (
	"flag"
	"fmt"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"github.com/spriteview/go-spritefile/paths"
	"github.com/spriteview/go-spritefile/spritefile"
)

var (
	spriteName = flag.String("sprite", "", "name of the sprite to print")
	all        = flag.Bool("all", false, "print every sprite in the file")
	list       = flag.Bool("list", false, "list sprite names with dimensions, depth and resolution")
	outPath    = flag.String("out", "", "write the selected sprite to this file instead of the terminal; format from extension (.png, .gif, .bmp)")
	col256     = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm      = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm    = flag.Bool("rasterm", false, "whether to print with kitty, iterm or sixel escapes via rasterm")
	col        = flag.Bool("col", true, "whether to use color at all")
	blanks     = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize   = flag.Bool("downsize", false, "whether to shrink sprites to fit the terminal")
	banner     = flag.Bool("banner", false, "print a banner with the file name first")

	spriteFilePath string
)

func open(path string) (*spritefile.Container, error) {
	f, err := paths.NoFindOpen(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spritefile.DecodeReader(f)
}

func main() {
	paths.SetupFilePathFlag("Sprites", "spritefile", &spriteFilePath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if flag.NArg() > 0 {
		if err := summarize(os.Stdout, flag.Args()); err != nil {
			glog.Errorf("summarizing: %v", err)
			os.Exit(1)
		}
		return
	}

	if spriteFilePath == "" {
		glog.Errorf("no sprite file: pass -spritefile or put one named Sprites in %v", paths.Dirs())
		os.Exit(2)
	}
	c, err := open(spriteFilePath)
	if err != nil {
		glog.Errorf("could not decode %s: %v", spriteFilePath, err)
		os.Exit(1)
	}

	if *banner {
		figure.NewFigure("spriteprint", "", true).Print()
		fmt.Printf("%s: %d sprites\n", spriteFilePath, c.Len())
	}

	if *list {
		listSprites(os.Stdout, c)
	}

	if *spriteName != "" {
		s, err := c.Get(*spriteName)
		if err != nil {
			glog.Errorf("%v", err)
			os.Exit(1)
		}
		if *outPath != "" {
			if err := exportSprite(*outPath, s); err != nil {
				glog.Errorf("exporting %q: %v", s.Name(), err)
				os.Exit(1)
			}
			return
		}
		out(s.Image())
	}

	if *all {
		c.Each(func(s *spritefile.Bitmap) error {
			fmt.Println(s.Name())
			out(s.Image())
			return nil
		})
	}
}
