// Package paths locates sprite files on disk or over HTTP.
package paths

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ReadSeekCloser is what Open hands back for both local and remote files.
// Both *os.File and the in-memory copy of a fetched URL satisfy it.
type ReadSeekCloser interface {
	io.ReadCloser
	io.ReaderAt
	io.Seeker
}

// EnvPath names a list of extra directories, separated like $PATH, searched
// before the defaults.
const EnvPath = "SPRITEFILE_PATH"

// Dirs returns the directories Find looks in, in order: $SPRITEFILE_PATH,
// the working directory, then $HOME/.spritefiles.
func Dirs() []string {
	var dirs []string
	if env := os.Getenv(EnvPath); env != "" {
		dirs = append(dirs, filepath.SplitList(env)...)
	}
	dirs = append(dirs, ".")
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".spritefiles"))
	}
	return dirs
}

func isURL(fileName string) bool {
	return strings.HasPrefix(fileName, "http://") || strings.HasPrefix(fileName, "https://")
}

// Find locates the passed sprite file name and returns an absolute or
// relative path to find it at, or "" if nothing matches. URLs are returned
// unchanged.
func Find(fileName string) string {
	if isURL(fileName) {
		return fileName
	}
	if filepath.IsAbs(fileName) {
		if _, err := os.Stat(fileName); err == nil {
			return fileName
		}
		return ""
	}
	for _, dir := range Dirs() {
		path := filepath.Join(dir, fileName)
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			glog.V(2).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error wrapping os.ErrNotExist
// is returned.
func Open(fileName string) (ReadSeekCloser, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %v", fileName, Dirs())
	}
	return NoFindOpen(path)
}

// NoFindOpen opens the path as given: a local file, or an http(s) URL
// fetched into memory.
func NoFindOpen(fileName string) (ReadSeekCloser, error) {
	if isURL(fileName) {
		return openHTTP(fileName)
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q)", fileName)
	}
	return f, nil
}

// SetupFilePathFlag registers a string flag named flagName whose default is
// wherever Find locates fileName, or "" when it is nowhere to be found.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	usage := fmt.Sprintf("path or http(s) URL of the sprite file (default search for %q in %v)", fileName, Dirs())
	flag.StringVar(flagPtr, flagName, Find(fileName), usage)
}
