package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/spriteview/go-spritefile/spritefile"
)

// Workers is the number of files decoded at once by Scan.
var Workers = 4

// maxFileSize bounds the files Scan will decode.
const maxFileSize = 64 << (10 * 2)

// Stats counts what a Scan did.
type Stats struct {
	Added   int64 // Decoded and recorded.
	Skipped int64 // Already recorded with the same mtime.
	Failed  int64 // Could not be decoded; any old record was removed.
}

// isSpriteFile matches the names sprite files are stored under: a .spr
// extension, a ,ff9 filetype suffix, or no extension at all.
func isSpriteFile(name string) bool {
	if strings.HasSuffix(strings.ToLower(name), ",ff9") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".spr", "":
		return true
	}
	return false
}

func findFiles(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				if file == base {
					return err
				}
				// Unreadable entries are skipped; the rest of the tree still scans.
				glog.Warningf("catalog: skipping %s: %v", file, err)
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Hidden files and directories belong to other tools.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || info.Size() > maxFileSize || !isSpriteFile(info.Name()) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}
			return nil
		})
	}()
	return out, errc
}

func (c *Catalog) fileWorker(ctx context.Context, in <-chan string, stats *Stats) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			info, err := os.Stat(file)
			if err != nil {
				errc <- err
				return
			}
			ok, err := c.upToDate(file, info.ModTime())
			if err != nil {
				errc <- err
				return
			}
			if ok {
				atomic.AddInt64(&stats.Skipped, 1)
				continue
			}

			ct, err := spritefile.DecodeFile(file)
			if err != nil {
				glog.Warningf("catalog: skipping %s: %v", file, err)
				atomic.AddInt64(&stats.Failed, 1)
				if err := c.Remove(file); err != nil {
					errc <- err
					return
				}
				continue
			}
			if err := c.Add(file, info.ModTime(), ct); err != nil {
				errc <- err
				return
			}
			glog.V(1).Infof("catalog: %s: %d sprites", file, ct.Len())
			atomic.AddInt64(&stats.Added, 1)
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and records every sprite file under it. Files whose mtime
// matches the catalog are not decoded again. Files that fail to decode are
// logged and counted, not returned as errors.
func (c *Catalog) Scan(ctx context.Context, path string) (Stats, error) {
	var stats Stats
	dir, err := filepath.Abs(path)
	if err != nil {
		return stats, err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	files, errc := findFiles(ctx, dir)
	errcList := []<-chan error{errc}
	for i := 0; i < Workers; i++ {
		errcList = append(errcList, c.fileWorker(ctx, files, &stats))
	}

	err = waitForPipeline(errcList...)
	return stats, err
}
