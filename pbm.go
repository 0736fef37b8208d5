// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"image"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm, one pixel per module.
func (c *Code) EncodePBM(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	img, err := c.Image()
	if err != nil {
		return err
	}
	return encodePBM(w, img)
}

func encodePBM(w io.Writer, img *image.Gray) error {
	b := bufio.NewWriter(w)
	r := img.Bounds()
	if _, err := b.WriteString("P4\n" + strconv.Itoa(r.Dx()) + " " +
		strconv.Itoa(r.Dy()) + "\n"); err != nil {
		return err
	}
	row := make([]byte, (r.Dx()+7)/8)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		pbmRow(row, img, y)
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmRow packs row y of img into row, most significant bit first,
// 1 for black.  Padding bits at the end are 0.
func pbmRow(row []byte, img *image.Gray, y int) {
	clear(row)
	r := img.Bounds()
	for x := 0; x < r.Dx(); x++ {
		if isBlack(img, r.Min.X+x, y) {
			row[x>>3] |= 0x80 >> (x & 7)
		}
	}
}
