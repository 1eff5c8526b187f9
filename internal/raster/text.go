/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import "brandgen/internal/glyph"

// TextDrawer stamps single-line, monospaced bitmap text using an immutable
// glyph table. It holds no mutable state and may be shared.
type TextDrawer struct {
	table *glyph.Table
}

// NewTextDrawer binds a drawer to a glyph table. A nil table selects the
// built-in 5x7 table.
func NewTextDrawer(table *glyph.Table) *TextDrawer {
	if table == nil {
		table = glyph.Default5x7()
	}
	return &TextDrawer{table: table}
}

// Advance is the horizontal distance one rune moves the cursor.
func (d *TextDrawer) Advance(scale, letterSpacing int) int {
	return d.table.CellWidth()*scale + letterSpacing*scale
}

// Measure returns the total advance of text, including the trailing letter
// spacing, or 0 for a non-positive scale.
func (d *TextDrawer) Measure(text string, scale, letterSpacing int) int {
	if scale <= 0 {
		return 0
	}
	n := 0
	for range text {
		n++
	}
	return n * d.Advance(scale, letterSpacing)
}

// Draw stamps text with its top-left corner at (x, y). Each inked glyph
// cell becomes a scale x scale block of c. It returns the cursor position
// after the last rune. A non-positive scale draws nothing.
func (d *TextDrawer) Draw(fb *Framebuffer, text string, x, y int, c Color, scale, letterSpacing int) int {
	if scale <= 0 {
		return x
	}
	cursor := x
	adv := d.Advance(scale, letterSpacing)
	for _, r := range text {
		g := d.table.Lookup(r)
		for gy := 0; gy < g.Height(); gy++ {
			for gx := 0; gx < g.Width(); gx++ {
				if g.Set(gx, gy) {
					fb.stampBlock(cursor+gx*scale, y+gy*scale, scale, c)
				}
			}
		}
		cursor += adv
	}
	return cursor
}

func (fb *Framebuffer) stampBlock(x, y, size int, c Color) {
	for sy := 0; sy < size; sy++ {
		for sx := 0; sx < size; sx++ {
			fb.Blend(x+sx, y+sy, c)
		}
	}
}
