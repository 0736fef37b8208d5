// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

// EncodePNG writes a grayscale PNG image displaying the code to w, one
// pixel per module.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	img, err := c.Image()
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// PNG returns a PNG image displaying the code, or nil on error.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodeBMP writes a BMP image displaying the code to w, one pixel per
// module.  The image is stored as 8 bit gray.
func (c *Code) EncodeBMP(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	img, err := c.Image()
	if err != nil {
		return err
	}
	return bmp.Encode(w, img)
}
