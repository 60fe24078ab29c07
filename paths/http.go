package paths

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	cache     map[string]*bytes.Buffer
	cacheLock sync.Mutex
)

// openHTTP fetches the URL once per process and serves later opens from the
// in-memory copy.
func openHTTP(url string) (ReadSeekCloser, error) {
	cacheLock.Lock()
	defer cacheLock.Unlock()

	if cache == nil {
		cache = make(map[string]*bytes.Buffer)
	}
	if buf, ok := cache[url]; ok {
		glog.V(2).Infof("paths: %q served from cache", url)
		return &bytesReaderWithDummyClose{bytes.NewReader(buf.Bytes())}, nil
	}

	glog.V(1).Infof("paths: fetching %q", url)
	response, err := http.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q)", url)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		e := os.ErrInvalid
		if response.StatusCode == http.StatusNotFound {
			e = os.ErrNotExist
		}
		return nil, errors.Wrapf(e, "paths.NoFindOpen(%q): http response.StatusCode=%v, want 200", url, response.StatusCode)
	}

	// TODO: use ranged reads once the decoder can work from a lazy source.
	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, response.Body); err != nil {
		return nil, errors.Wrap(err, "copying response to seekable buffer")
	}
	cache[url] = buf
	return &bytesReaderWithDummyClose{bytes.NewReader(buf.Bytes())}, nil
}

type bytesReaderWithDummyClose struct {
	*bytes.Reader
}

func (bytesReaderWithDummyClose) Close() error {
	return nil
}
