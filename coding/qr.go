// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements the low-level QR grid: versions, modules,
// the module matrix and finder pattern placement.
package coding // import "github.com/unixdj/qrgen/coding"

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrBounds  = errors.New("qr: coordinates out of bounds")
)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side,
// that is 21 for version 1, growing by 4 for each version.
type Version int

// Code versions.
const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// IsValid reports whether v is between MinVersion and MaxVersion.
func (v Version) IsValid() bool { return MinVersion <= v && v <= MaxVersion }

// Size returns the number of modules on a side of a QR code of
// version v.  The result is meaningless for invalid versions.
func (v Version) Size() int { return 21 + 4*int(v-1) }

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
//
// The level is carried along with a code but nothing in this package
// reads it: no error correction codewords are generated.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if l.IsValid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is one of L, M, Q and H.
func (l Level) IsValid() bool { return L <= l && l <= H }

// Percent returns the approximate share of codewords, in percent,
// that can be restored at level l, or 0 for an invalid level.
func (l Level) Percent() int {
	if !l.IsValid() {
		return 0
	}
	return [...]int{7, 15, 25, 30}[l]
}

// ParseLevel parses a level name, one of "l", "m", "q", "h" in either
// case.
func ParseLevel(s string) (Level, error) {
	if len(s) == 1 {
		switch s[0] | 0x20 {
		case 'l':
			return L, nil
		case 'm':
			return M, nil
		case 'q':
			return Q, nil
		case 'h':
			return H, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrLevel, s)
}

// A Module is the state of one cell of the grid.
// The zero value is Dark.
type Module byte

const (
	Dark Module = iota
	Light
)

func (m Module) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Select returns light if m is Light and dark otherwise.
func Select[T any](m Module, light, dark T) T {
	if m == Light {
		return light
	}
	return dark
}

// BoundsError represents an access outside the grid.
type BoundsError struct {
	X, Y          int // requested coordinates
	Width, Height int // grid dimensions
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("qr: coordinates (%d,%d) out of bounds for %dx%d grid",
		e.X, e.Y, e.Width, e.Height)
}

// Is makes errors.Is(err, ErrBounds) report true for a *BoundsError.
func (e *BoundsError) Is(target error) bool { return target == ErrBounds }
