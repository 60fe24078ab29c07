package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// summarize decodes every file concurrently and prints one line per file in
// argument order. A file that fails to decode is reported and fails the run.
func summarize(w io.Writer, files []string) error {
	lines := make([]string, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	sem := make(chan struct{}, 4)
	var mu sync.Mutex
	failed := 0

	for i, fn := range files {
		i, fn := i, fn
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			c, err := open(fn)
			if err != nil {
				glog.Errorf("%s: %v", fn, err)
				mu.Lock()
				failed++
				mu.Unlock()
				lines[i] = fmt.Sprintf("%s: error: %v", fn, err)
				return nil
			}
			lines[i] = fmt.Sprintf("%s: %d sprites (%d declared)", fn, c.Len(), c.DeclaredCount())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(files))
	}
	return nil
}
