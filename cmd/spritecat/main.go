// Command spritecat maintains a searchable catalog of sprite files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/golang/glog"
	"github.com/urfave/cli/v2"

	"github.com/spriteview/go-spritefile/catalog"
)

const defaultDB = "spritecat.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func openCatalog(c *cli.Context) (*catalog.Catalog, error) {
	if c.Bool("verbose") {
		flag.Set("v", "1")
	}
	return catalog.Open(c.String("db"))
}

func printEntries(w io.Writer, entries []catalog.Entry, withPath bool) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	for _, e := range entries {
		if withPath {
			fmt.Fprintf(tw, "%s\t", e.Path)
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%dbpp\t%dx%d dpi\t%s\n", e.Name, e.Width, e.Height, e.BPP, e.DPIX, e.DPIY, e.Model)
	}
	return tw.Flush()
}

func scanAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cat, err := openCatalog(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cat.Close()

	if n := c.Int("workers"); n > 0 {
		catalog.Workers = n
	}
	for _, dir := range c.Args().Slice() {
		stats, err := cat.Scan(context.Background(), dir)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Printf("%s: %d added, %d unchanged, %d failed\n", dir, stats.Added, stats.Skipped, stats.Failed)
	}
	return nil
}

func findAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cat, err := openCatalog(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cat.Close()

	entries, err := cat.Find(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return printEntries(os.Stdout, entries, true)
}

func listAction(c *cli.Context) error {
	cat, err := openCatalog(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer cat.Close()

	if c.NArg() < 1 {
		files, err := cat.Files()
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	}

	path, err := filepath.Abs(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	entries, err := cat.Sprites(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if len(entries) == 0 {
		return cli.NewExitError(fmt.Sprintf("%s is not catalogued; run scan first", path), 1)
	}
	return printEntries(os.Stdout, entries, false)
}

func main() {
	flag.Set("logtostderr", "true")
	flag.CommandLine.Parse(nil)

	app := cli.NewApp()

	app.Name = "spritecat"
	app.Usage = "Sprite file catalog"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		glog.Exit(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SPRITECAT_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "scan",
			Usage:     "Scan directories and record the sprite files in them",
			ArgsUsage: "DIRECTORY...",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: catalog.Workers,
					Usage: "number of files decoded at once",
				},
			},
			Action: scanAction,
		},
		{
			Name:      "find",
			Usage:     "Find sprites by name; % and _ are wildcards",
			ArgsUsage: "PATTERN",
			Action:    findAction,
		},
		{
			Name:      "list",
			Usage:     "List catalogued files, or the sprites of one file",
			ArgsUsage: "[FILE]",
			Action:    listAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		glog.Exit(err)
	}
}
