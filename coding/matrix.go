// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Matrix is a square grid of modules for a given QR version.
//
// Modules are stored column by column: the module at (x, y) lives at
// index y + x*height.  All access goes through At, SetLight and
// SetDark, which reject coordinates outside the grid.
type Matrix struct {
	version Version
	width   int
	height  int
	mod     []Module
}

// NewMatrix returns a Matrix for version v with every module Dark.
func NewMatrix(v Version) (*Matrix, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	siz := v.Size()
	return &Matrix{
		version: v,
		width:   siz,
		height:  siz,
		mod:     make([]Module, siz*siz),
	}, nil
}

// Version returns the version m was created for.
func (m *Matrix) Version() Version { return m.version }

// Dimensions returns the width and height of m in modules.
func (m *Matrix) Dimensions() (w, h int) { return m.width, m.height }

// index returns the storage index of (x, y), or a *BoundsError.
func (m *Matrix) index(x, y int) (int, error) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0, &BoundsError{x, y, m.width, m.height}
	}
	return y + x*m.height, nil
}

// At returns the module at (x, y).
func (m *Matrix) At(x, y int) (Module, error) {
	i, err := m.index(x, y)
	if err != nil {
		return Dark, err
	}
	return m.mod[i], nil
}

func (m *Matrix) set(x, y int, v Module) error {
	i, err := m.index(x, y)
	if err != nil {
		return err
	}
	m.mod[i] = v
	return nil
}

// SetLight sets the module at (x, y) to Light.
func (m *Matrix) SetLight(x, y int) error { return m.set(x, y, Light) }

// SetDark sets the module at (x, y) to Dark.
func (m *Matrix) SetDark(x, y int) error { return m.set(x, y, Dark) }

// Clear sets every module to Dark.
func (m *Matrix) Clear() { clear(m.mod) }

// Black reports whether the module at (x, y) is dark.  Unlike At, it
// accepts any coordinates and reports false outside the grid, so
// callers drawing a quiet zone can read past the edges.
func (m *Matrix) Black(x, y int) bool {
	return 0 <= x && x < m.width && 0 <= y && y < m.height &&
		m.mod[y+x*m.height] == Dark
}
