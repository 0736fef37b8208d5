// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr builds QR code scaffolds: a module grid of the requested
version with the three finder patterns in place, rasterized to a
grayscale image and written as BMP, PNG, PBM or text.

Data encoding, error correction, timing and alignment patterns, format
information and masking are not implemented.  Text given to EncodeText
is converted to the requested character set and kept in Code.Payload,
but is not drawn.
*/
package qr // import "github.com/unixdj/qrgen"

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"

	"github.com/unixdj/qrgen/coding"
)

var (
	ErrArgs    = errors.New("qr: invalid arguments")
	ErrCharset = errors.New("qr: invalid charset")
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
// The level is recorded in Code but does not affect the grid.
type Level int

const (
	L Level = iota // 7% recoverable
	M              // 15% recoverable
	Q              // 25% recoverable
	H              // 30% recoverable
)

func (l Level) String() string { return coding.Level(l).String() }

// A Charset selects the byte encoding of the payload.
type Charset int

const (
	UTF8     Charset = iota // text as is
	Latin1                  // ISO 8859-1
	ShiftJIS                // Shift JIS
)

var charsetNames = [...]string{"utf-8", "latin-1", "shift-jis"}

func (cs Charset) String() string {
	if UTF8 <= cs && cs <= ShiftJIS {
		return charsetNames[cs]
	}
	return fmt.Sprintf("charset(%d)", int(cs))
}

// ParseCharset parses a charset name as returned by Charset.String.
// Case, "-" and "_" are ignored, so "UTF8" and "shift_jis" are
// accepted.
func ParseCharset(s string) (Charset, error) {
	norm := func(s string) string {
		return strings.NewReplacer("-", "", "_", "").Replace(
			strings.ToLower(s))
	}
	for i, name := range charsetNames {
		if norm(s) == norm(name) {
			return Charset(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrCharset, s)
}

func (cs Charset) encoding() (encoding.Encoding, error) {
	switch cs {
	case UTF8:
		return encoding.Nop, nil
	case Latin1:
		return charmap.ISO8859_1, nil
	case ShiftJIS:
		return japanese.ShiftJIS, nil
	}
	return nil, ErrCharset
}

// Bytes returns text converted from UTF-8 to cs.
func (cs Charset) Bytes(text string) ([]byte, error) {
	enc, err := cs.encoding()
	if err != nil {
		return nil, err
	}
	b, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("qr: text not representable in %s: %w",
			cs, err)
	}
	return b, nil
}

// A Code is a QR code scaffold: the module grid with finder patterns
// placed, and the parameters it was made with.
type Code struct {
	*coding.Matrix
	Level   Level  // error correction level, recorded only
	Payload []byte // message bytes, not drawn
}

// Encode returns a Code of the given version and level with the finder
// patterns placed.
func Encode(version coding.Version, level Level) (*Code, error) {
	if !coding.Level(level).IsValid() {
		return nil, coding.ErrLevel
	}
	m, err := coding.NewMatrix(version)
	if err != nil {
		return nil, err
	}
	if err := coding.PlaceFinders(m); err != nil {
		return nil, err
	}
	return &Code{Matrix: m, Level: level}, nil
}

// EncodeText is like Encode, additionally converting text to cs and
// storing it in the Payload of the returned Code.
func EncodeText(text string, cs Charset, version coding.Version,
	level Level) (*Code, error) {
	p, err := cs.Bytes(text)
	if err != nil {
		return nil, err
	}
	c, err := Encode(version, level)
	if err != nil {
		return nil, err
	}
	c.Payload = p
	return c, nil
}

var (
	white = color.Gray{0xFF}
	black = color.Gray{0x00}
)

// Rasterize returns an image of m with one pixel per module, white for
// Light modules and black for Dark ones.
func Rasterize(m *coding.Matrix) (*image.Gray, error) {
	if m == nil {
		return nil, ErrArgs
	}
	w, h := m.Dimensions()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			mod, err := m.At(x, y)
			if err != nil {
				return nil, err
			}
			img.SetGray(x, y, coding.Select(mod, white, black))
		}
	}
	return img, nil
}

// Image returns the rasterized code, as Rasterize does.
func (c *Code) Image() (*image.Gray, error) {
	if c == nil {
		return nil, ErrArgs
	}
	return Rasterize(c.Matrix)
}

// isBlack reports whether the pixel at (x, y) of img is black.
// Pixels outside img are white.
func isBlack(img *image.Gray, x, y int) bool {
	return image.Pt(x, y).In(img.Rect) && img.GrayAt(x, y).Y < 0x80
}
