// Package spritefile implements a reader for sprite files: containers that
// bundle several named bitmaps, each with its own bit depth, palette,
// resolution and optional transparency mask.
//
// Pixel and mask planes are stored as little-endian bit fields packed into
// 32-bit words, so a sprite's first pixel need not start on a byte boundary.
// The decoder turns every sprite into a plain RGBA buffer that callers can
// hand to image encoders or to a display layer without knowing the layout.
//
// There is no encoder; files are read only.
package spritefile
