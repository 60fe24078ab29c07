package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spriteview/go-spritefile/catalog"
)

func TestPrintEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	err := printEntries(buf, []catalog.Entry{
		{Path: "/a,ff9", Name: "dot", Width: 1, Height: 1, BPP: 32, DPIX: 90, DPIY: 90, Model: "RGB"},
		{Path: "/b.spr", Name: "pointer", Width: 8, Height: 2, BPP: 4, DPIX: 90, DPIY: 45, Model: "RGBA"},
	}, true)
	assert.NoError(t, err)
	assert.Equal(t,
		"/a,ff9 dot     1x1 32bpp 90x90 dpi RGB\n"+
			"/b.spr pointer 8x2 4bpp  90x45 dpi RGBA\n",
		buf.String())
}
