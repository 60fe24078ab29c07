// Package web serves the sprites of one sprite file over HTTP.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"
	"golang.org/x/sync/singleflight"

	"github.com/spriteview/go-spritefile/export"
	"github.com/spriteview/go-spritefile/spritefile"
)

// generation is part of every ETag; bump it when the way images are
// generated changes.
const generation = 1

const (
	defaultThumbSize = 128
	maxThumbSize     = 1024
	indexThumbSize   = 64
)

// loaded is one decode of the sprite file. A newer decode replaces it
// wholesale; requests already holding it keep using it.
type loaded struct {
	c     *spritefile.Container
	mtime time.Time
	size  int64
}

// Handler serves the sprites in the file at path, decoding it again whenever
// its modification time or size changes.
type Handler struct {
	path string

	mu  sync.Mutex
	cur *loaded

	group singleflight.Group
}

// NewHandler constructs a web handler for the sprite file at path. The file
// is decoded on first use.
func NewHandler(path string) *Handler {
	return &Handler{path: path}
}

// container returns the current decode of the file, decoding it when it has
// changed on disk. Concurrent callers share one decode.
func (h *Handler) container() (*loaded, error) {
	st, err := os.Stat(h.path)
	if err != nil {
		return nil, errors.Wrap(err, "could not stat sprite file")
	}

	h.mu.Lock()
	cur := h.cur
	h.mu.Unlock()
	if cur != nil && cur.mtime.Equal(st.ModTime()) && cur.size == st.Size() {
		return cur, nil
	}

	v, err, _ := h.group.Do(h.path, func() (interface{}, error) {
		tr := trace.New("web.decode", h.path)
		defer tr.Finish()
		glog.V(1).Infof("web: decoding %s (mtime %v)", h.path, st.ModTime())
		c, err := spritefile.DecodeFile(h.path)
		if err != nil {
			tr.LazyPrintf("decode failed: %v", err)
			tr.SetError()
			return nil, err
		}
		tr.LazyPrintf("%d sprites", c.Len())
		l := &loaded{c: c, mtime: st.ModTime(), size: st.Size()}
		h.mu.Lock()
		h.cur = l
		h.mu.Unlock()
		return l, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*loaded), nil
}

// sprite looks up the sprite named in the route, writing an error response
// and returning nil if it cannot.
func (h *Handler) sprite(w http.ResponseWriter, r *http.Request) (*loaded, *spritefile.Bitmap) {
	l, err := h.container()
	if err != nil {
		glog.Errorf("web: loading %s: %v", h.path, err)
		http.Error(w, "failed to decode sprite file", http.StatusInternalServerError)
		return nil, nil
	}
	s, err := l.c.Get(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, nil
	}
	return l, s
}

// notModified sets caching headers and answers 304 when the client already
// holds etag.
func notModified(w http.ResponseWriter, r *http.Request, l *loaded, etag string) bool {
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", l.mtime.UTC().Format(http.TimeFormat))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (h *Handler) spriteHandler(w http.ResponseWriter, r *http.Request) {
	l, s := h.sprite(w, r)
	if s == nil {
		return
	}
	f, err := export.ParseFormat(mux.Vars(r)["ext"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mime := f.ContentType()
	etag := fmt.Sprintf(`W/"sprite:%d:%d:%s:%s"`, generation, l.mtime.UnixNano(), s.Name(), mime)
	if notModified(w, r, l, etag) {
		return
	}

	buf := &bytes.Buffer{}
	if err := export.Encode(buf, s.Image(), f); err != nil {
		glog.Errorf("web: encoding %q as %s: %v", s.Name(), f, err)
		http.Error(w, "failed to encode sprite", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func thumbnail(s *spritefile.Bitmap, size int) image.Image {
	return resize.Thumbnail(uint(size), uint(size), s.Image(), resize.Lanczos3)
}

func (h *Handler) thumbHandler(w http.ResponseWriter, r *http.Request) {
	size := defaultThumbSize
	if sz := r.URL.Query().Get("size"); sz != "" {
		n, err := strconv.Atoi(sz)
		if err != nil || n <= 0 || n > maxThumbSize {
			http.Error(w, fmt.Sprintf("size must be between 1 and %d", maxThumbSize), http.StatusBadRequest)
			return
		}
		size = n
	}

	l, s := h.sprite(w, r)
	if s == nil {
		return
	}

	mime := export.PNG.ContentType()
	etag := fmt.Sprintf(`W/"thumb:%d:%d:%s:%d:%s"`, generation, l.mtime.UnixNano(), s.Name(), size, mime)
	if notModified(w, r, l, etag) {
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, thumbnail(s, size)); err != nil {
		glog.Errorf("web: writing thumbnail %s: %v", mux.Vars(r)["name"], err)
	}
}

// SpriteInfo is one element of /sprites.json.
type SpriteInfo struct {
	Name       string `json:"name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BPP        int    `json:"bpp"`
	DPIX       int    `json:"dpi_x"`
	DPIY       int    `json:"dpi_y"`
	Model      string `json:"model"`
	HasPalette bool   `json:"has_palette"`
	HasMask    bool   `json:"has_mask"`
}

func info(s *spritefile.Bitmap) SpriteInfo {
	return SpriteInfo{
		Name:       s.Name(),
		Width:      s.Width(),
		Height:     s.Height(),
		BPP:        s.BPP(),
		DPIX:       s.DPIX(),
		DPIY:       s.DPIY(),
		Model:      s.ColorModel().String(),
		HasPalette: s.Palette() != nil,
		HasMask:    s.HasMask(),
	}
}

func (h *Handler) listHandler(w http.ResponseWriter, r *http.Request) {
	l, err := h.container()
	if err != nil {
		glog.Errorf("web: loading %s: %v", h.path, err)
		http.Error(w, "failed to decode sprite file", http.StatusInternalServerError)
		return
	}
	list := []SpriteInfo{}
	l.c.Each(func(s *spritefile.Bitmap) error {
		list = append(list, info(s))
		return nil
	})
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		glog.Errorf("web: writing sprite list: %v", err)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><title>{{.Path}}</title></head>
<body>
<h1>{{.Path}}</h1>
<table>
{{range .Sprites}}<tr>
<td><a href="sprite/{{.Info.Name}}.png"><img src="{{.Thumb}}" alt="{{.Info.Name}}"></a></td>
<td>{{.Info.Name}}</td><td>{{.Info.Width}}x{{.Info.Height}}</td><td>{{.Info.BPP}}bpp</td>
<td>{{.Info.DPIX}}x{{.Info.DPIY}} dpi</td><td>{{.Info.Model}}</td>
</tr>
{{end}}</table>
</body></html>
`))

type indexEntry struct {
	Info  SpriteInfo
	Thumb template.URL
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	l, err := h.container()
	if err != nil {
		glog.Errorf("web: loading %s: %v", h.path, err)
		http.Error(w, "failed to decode sprite file", http.StatusInternalServerError)
		return
	}

	var page struct {
		Path    string
		Sprites []indexEntry
	}
	page.Path = h.path
	err = l.c.Each(func(s *spritefile.Bitmap) error {
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, thumbnail(s, indexThumbSize)); err != nil {
			return err
		}
		page.Sprites = append(page.Sprites, indexEntry{
			Info:  info(s),
			Thumb: template.URL(dataurl.New(buf.Bytes(), "image/png").String()),
		})
		return nil
	})
	if err != nil {
		glog.Errorf("web: building index: %v", err)
		http.Error(w, "failed to render thumbnails", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		glog.Errorf("web: rendering index: %v", err)
	}
}

// RegisterRoutes adds the handler's routes to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/sprites.json", h.listHandler)
	r.HandleFunc("/sprite/{name}.{ext:(?:png|gif|bmp)}", h.spriteHandler)
	r.HandleFunc("/thumb/{name}.png", h.thumbHandler)
}
