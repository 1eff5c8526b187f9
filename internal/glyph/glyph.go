/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package glyph holds fixed-size monochrome bitmap fonts used by the text
// primitive. A Table is immutable once built and safe to share between
// goroutines.
package glyph

import (
	"fmt"
	"unicode"
)

// Glyph is a monochrome stencil of Width x Height bits.
type Glyph struct {
	width, height int
	bits          []bool
}

// Width returns the glyph width in cells.
func (g Glyph) Width() int { return g.width }

// Height returns the glyph height in cells.
func (g Glyph) Height() int { return g.height }

// Set reports whether the cell at (x, y) is inked. Cells outside the glyph are unset.
func (g Glyph) Set(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.bits[y*g.width+x]
}

// Blank reports whether the glyph has no inked cell.
func (g Glyph) Blank() bool {
	for _, b := range g.bits {
		if b {
			return false
		}
	}
	return true
}

// Parse builds a glyph from rows of '1' and '0' characters. All rows must
// have the same length.
func Parse(rows []string) (Glyph, error) {
	if len(rows) == 0 {
		return Glyph{}, fmt.Errorf("glyph has no rows")
	}
	w := len(rows[0])
	g := Glyph{width: w, height: len(rows), bits: make([]bool, w*len(rows))}
	for y, row := range rows {
		if len(row) != w {
			return Glyph{}, fmt.Errorf("row %d has width %d, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			switch row[x] {
			case '1':
				g.bits[y*w+x] = true
			case '0':
			default:
				return Glyph{}, fmt.Errorf("row %d: invalid cell %q", y, row[x])
			}
		}
	}
	return g, nil
}

func blank(w, h int) Glyph {
	return Glyph{width: w, height: h, bits: make([]bool, w*h)}
}

// Table maps runes to glyphs of a single cell size.
type Table struct {
	name          string
	width, height int
	glyphs        map[rune]Glyph
	fallback      Glyph
}

// NewTable builds a table from rune -> row strings. Every glyph must be
// exactly width x height. Keys are stored upper-cased.
func NewTable(name string, width, height int, rows map[rune][]string) (*Table, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("glyph table %q: invalid cell size %dx%d", name, width, height)
	}
	t := &Table{name: name, width: width, height: height, glyphs: make(map[rune]Glyph, len(rows))}
	for r, rs := range rows {
		up := unicode.ToUpper(r)
		if _, dup := rows[up]; dup && up != r {
			continue // the upper-case entry wins
		}
		g, err := Parse(rs)
		if err != nil {
			return nil, fmt.Errorf("glyph table %q, rune %q: %w", name, r, err)
		}
		if g.width != width || g.height != height {
			return nil, fmt.Errorf("glyph table %q, rune %q: size %dx%d, want %dx%d", name, r, g.width, g.height, width, height)
		}
		t.glyphs[up] = g
	}
	t.fallback = blank(width, height)
	if sp, ok := t.glyphs[' ']; ok {
		t.fallback = sp
	}
	return t, nil
}

// Name returns the table name, e.g. "5x7".
func (t *Table) Name() string { return t.name }

// CellWidth is the width shared by every glyph.
func (t *Table) CellWidth() int { return t.width }

// CellHeight is the height shared by every glyph.
func (t *Table) CellHeight() int { return t.height }

// Len returns the number of mapped runes.
func (t *Table) Len() int { return len(t.glyphs) }

// Lookup returns the glyph for r, matching case-insensitively. Unknown runes
// yield the space glyph (or a blank cell if the table has no space).
func (t *Table) Lookup(r rune) Glyph {
	if g, ok := t.glyphs[unicode.ToUpper(r)]; ok {
		return g
	}
	return t.fallback
}

// Has reports whether r maps to its own glyph.
func (t *Table) Has(r rune) bool {
	_, ok := t.glyphs[unicode.ToUpper(r)]
	return ok
}
