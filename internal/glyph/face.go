/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glyph

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Names of the tables ByName can resolve.
const (
	Name5x7       = "5x7"
	NameBasic7x13 = "basic7x13"
)

// FromFace rasterises the given runes of a fixed-pitch face into a table.
// Cells are one advance wide and ascent+descent tall; mask values at or
// above half coverage count as inked. Runes the face does not provide are
// skipped.
func FromFace(name string, face font.Face, runes []rune) (*Table, error) {
	if face == nil {
		return nil, fmt.Errorf("glyph table %q: nil face", name)
	}
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, fmt.Errorf("glyph table %q: face has no advance for 'M'", name)
	}
	m := face.Metrics()
	w := adv.Round()
	asc := m.Ascent.Round()
	h := asc + m.Descent.Round()

	rows := make(map[rune][]string, len(runes))
	dot := fixed.P(0, asc)
	for _, r := range runes {
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok || mask == nil {
			continue
		}
		rows[r] = sampleMask(w, h, dr, mask, maskp)
	}
	return NewTable(name, w, h, rows)
}

func sampleMask(w, h int, dr image.Rectangle, mask image.Image, maskp image.Point) []string {
	out := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; x++ {
			p := image.Pt(x, y)
			if !p.In(dr) {
				sb.WriteByte('0')
				continue
			}
			mp := maskp.Add(p.Sub(dr.Min))
			_, _, _, a := mask.At(mp.X, mp.Y).RGBA()
			if a >= 0x8000 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		out[y] = sb.String()
	}
	return out
}

// Basic7x13 returns a table built from x/image's basicfont.Face7x13 for
// printable ASCII.
func Basic7x13() (*Table, error) {
	runes := make([]rune, 0, '~'-' '+1)
	for r := ' '; r <= '~'; r++ {
		runes = append(runes, r)
	}
	return FromFace(NameBasic7x13, basicfont.Face7x13, runes)
}

// ByName resolves a table name as used in config and scene documents.
// The empty name selects the 5x7 table.
func ByName(name string) (*Table, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Name5x7:
		return Default5x7(), nil
	case NameBasic7x13:
		return Basic7x13()
	default:
		return nil, fmt.Errorf("unknown glyph table %q", name)
	}
}
