/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"brandgen/internal/glyph"
	"brandgen/internal/raster"
)

// Render draws s into a new framebuffer. Operations run in document order,
// so later ones composite over earlier ones. A nil table selects the
// built-in 5x7 glyphs.
func Render(s *Scene, table *glyph.Table) *raster.Framebuffer {
	fb := raster.FillVerticalGradient(s.Width, s.Height, s.Background.Top.Color(), s.Background.Bottom.Color())
	td := raster.NewTextDrawer(table)
	for _, op := range s.Ops {
		switch {
		case op.Glow != nil:
			g := op.Glow
			intensity := DefaultIntensity
			if g.Intensity != nil {
				intensity = *g.Intensity
			}
			fb.DrawGlow(g.CX, g.CY, g.Radius, g.Color.Color(), intensity)
		case op.Rect != nil:
			r := op.Rect
			fb.FillRoundedRect(r.X1, r.Y1, r.X2, r.Y2, r.Radius, r.Color.Color())
		case op.Text != nil:
			drawText(fb, td, op.Text)
		}
	}
	return fb
}

func drawText(fb *raster.Framebuffer, td *raster.TextDrawer, t *TextOp) {
	scale := t.Scale
	if scale == 0 {
		scale = DefaultTextScale
	}
	spacing := DefaultLetterSpacing
	if t.Spacing != nil {
		spacing = *t.Spacing
	}
	x := t.X
	if t.Align == AlignCenter || t.Align == AlignRight {
		// visible width excludes the spacing after the last rune
		w := td.Measure(t.Text, scale, spacing)
		if w > 0 {
			w -= spacing * scale
		}
		if t.Align == AlignCenter {
			x -= w / 2
		} else {
			x -= w
		}
	}
	td.Draw(fb, t.Text, x, t.Y, t.Color.Color(), scale, spacing)
}
