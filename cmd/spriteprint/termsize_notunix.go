//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package main

import (
	"golang.org/x/crypto/ssh/terminal"
)

type termSize struct {
	Rows, Cols     uint
	XPixel, YPixel uint
}

func getTermSize() (termSize, error) {
	w, h, err := terminal.GetSize(0)
	if err != nil {
		return termSize{}, err
	}
	return termSize{Rows: uint(h), Cols: uint(w)}, nil
}
