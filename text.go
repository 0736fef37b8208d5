// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"image"
	"io"
	"strings"
)

// TextBorder is the width in modules of the quiet zone drawn around
// text renderings.
const TextBorder = 4

// EncodeUTF8 writes the code to w as UTF-8 text, two rows of modules
// per line using half block characters.  Light modules are drawn and
// dark ones left blank, which suits a terminal with a dark background.
func (c *Code) EncodeUTF8(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	img, err := c.Image()
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	r := img.Bounds().Inset(-TextBorder)
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			n := 0
			if isBlack(img, x, y) {
				n = 2
			}
			// the row below the last one is quiet zone
			if y+1 < r.Max.Y && isBlack(img, x, y+1) {
				n++
			}
			b.WriteString([4]string{"█", "▀", "▄", " "}[n])
		}
		b.WriteByte('\n')
	}
	return b.Flush()
}

// String returns the code as rendered by EncodeUTF8.
func (c *Code) String() string {
	var b strings.Builder
	if err := c.EncodeUTF8(&b); err != nil {
		return ""
	}
	return b.String()
}

// EncodeASCII writes the code to w as ASCII text, each module as two
// characters: "##" for dark and two spaces for light.
func (c *Code) EncodeASCII(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	img, err := c.Image()
	if err != nil {
		return err
	}
	_, err = w.Write(ascii(img, TextBorder))
	return err
}

func ascii(img *image.Gray, bord int) []byte {
	r := img.Bounds().Inset(-bord)
	b := make([]byte, (r.Dx()*2+1)*r.Dy())
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			var p byte = ' '
			if isBlack(img, x, y) {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	return b
}
