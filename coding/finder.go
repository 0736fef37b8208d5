// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// Finder pattern at the top left corner, with its separator:
//
//	█▀▀▀▀▀█
//	█ ███ █    A 7x7 box: dark ring, light ring, dark 3x3 centre,
//	█ ▀▀▀ █    and a light separator towards the inside of the code.
//	▀▀▀▀▀▀▀    Only the light parts are drawn, the matrix starts dark.
//
// Rings are given relative to the top left corner and reflected for
// the other two.  The bottom right corner has no finder pattern.

// A Point is a pair of module coordinates.
type Point struct{ X, Y int }

// A Ring is a list of corner-relative points drawn Light.
type Ring []Point

// Corner identifies a corner of the matrix holding a finder pattern.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
)

// Corners lists the corners holding finder patterns.
var Corners = [...]Corner{TopLeft, TopRight, BottomLeft}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	}
	return "corner(" + strconv.Itoa(int(c)) + ")"
}

// Reflect maps the corner-relative point p into a w×h matrix.
func (c Corner) Reflect(p Point, w, h int) Point {
	switch c {
	case TopRight:
		p.X = w - 1 - p.X
	case BottomLeft:
		p.Y = h - 1 - p.Y
	}
	return p
}

// square returns the outline of the square with corners (lo,lo) and
// (hi,hi), each point once.
func square(lo, hi int) Ring {
	r := make(Ring, 0, 4*(hi-lo))
	for i := lo; i <= hi; i++ {
		r = append(r, Point{i, lo}, Point{i, hi})
	}
	for i := lo + 1; i < hi; i++ {
		r = append(r, Point{lo, i}, Point{hi, i})
	}
	return r
}

// edge returns the right and bottom edges of the square with corners
// (0,0) and (n,n), each point once.
func edge(n int) Ring {
	r := make(Ring, 0, 2*n+1)
	for i := 0; i < n; i++ {
		r = append(r, Point{i, n}, Point{n, i})
	}
	return append(r, Point{n, n})
}

var (
	// InnerRing is the light ring between the outer dark ring and
	// the dark centre: columns 1-5 on rows 1 and 5, rows 2-4 on
	// columns 1 and 5.
	InnerRing = square(1, 5)

	// Separator is the light border of the finder pattern facing
	// the inside: row 7 and column 7, from 0 to 7 inclusive.
	Separator = edge(7)

	// FinderRings lists the rings of a finder pattern in drawing
	// order.
	FinderRings = [...]Ring{InnerRing, Separator}
)

// PlaceRing draws ring Light at corner c of m.  It stops at the first
// point outside m and returns the error from SetLight.
func PlaceRing(m *Matrix, ring Ring, c Corner) error {
	w, h := m.Dimensions()
	for _, p := range ring {
		p = c.Reflect(p, w, h)
		if err := m.SetLight(p.X, p.Y); err != nil {
			return err
		}
	}
	return nil
}

// PlaceFinders draws the finder patterns at the top left, top right
// and bottom left corners of m.  It only ever sets modules Light, so
// placing twice is the same as placing once.  Any matrix of a valid
// version is large enough; an error means the geometry is broken.
func PlaceFinders(m *Matrix) error {
	for _, c := range Corners {
		for _, r := range FinderRings {
			if err := PlaceRing(m, r, c); err != nil {
				return err
			}
		}
	}
	return nil
}
