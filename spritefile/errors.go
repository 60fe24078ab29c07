package spritefile

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedContainer is returned when the directory offsets or an
	// entry's declared extent are inconsistent.
	ErrMalformedContainer = errors.New("spritefile: malformed container")
	// ErrUnsupportedMode is returned for mode words that name an unknown
	// legacy mode or an invalid bit depth.
	ErrUnsupportedMode = errors.New("spritefile: unsupported mode")
	// ErrTruncatedData is returned when a header, palette record, pixel or
	// mask field lies beyond the end of the source.
	ErrTruncatedData = errors.New("spritefile: truncated data")
	// ErrNotFound is returned by Container.Get for unknown names.
	ErrNotFound = errors.New("spritefile: sprite not found")
)

// EntryError describes the failure to decode a single directory entry.
//
// Any entry failure aborts the whole container load.
type EntryError struct {
	Offset int64  // Byte offset of the entry within the source.
	Name   string // Sprite name, if the header got far enough to read it.
	Err    error
}

func (e *EntryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("spritefile: entry %q at offset %d: %v", e.Name, e.Offset, e.Err)
	}
	return fmt.Sprintf("spritefile: entry at offset %d: %v", e.Offset, e.Err)
}

// Unwrap allows errors.Is to match the sentinel behind an entry failure.
func (e *EntryError) Unwrap() error { return e.Err }

// Cause implements the causer interface used by github.com/pkg/errors.
func (e *EntryError) Cause() error { return e.Err }
