/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package raster implements a float RGBA framebuffer and the drawing
// primitives that composite into it: vertical gradients, radial glows,
// rounded rectangles and bitmap text. Every primitive clips to the
// framebuffer and never fails.
package raster

import (
	"image"
	"image/color"
)

// Framebuffer is a width x height grid of colors in row-major order with
// the origin at the top left. It is not safe for concurrent use; give each
// goroutine its own framebuffer.
type Framebuffer struct {
	width, height int
	pix           []Color
}

// NewFramebuffer allocates a transparent framebuffer. Negative dimensions
// are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Framebuffer{width: width, height: height, pix: make([]Color, width*height)}
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Len returns the number of stored pixels.
func (fb *Framebuffer) Len() int { return len(fb.pix) }

func (fb *Framebuffer) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.width && y < fb.height
}

// Pixel returns the stored color at (x, y) and whether the point is inside.
func (fb *Framebuffer) Pixel(x, y int) (Color, bool) {
	if !fb.in(x, y) {
		return Color{}, false
	}
	return fb.pix[y*fb.width+x], true
}

// Row returns the stored colors of row y, or nil when y is out of range.
// The slice aliases the framebuffer and must not be retained across draws.
func (fb *Framebuffer) Row(y int) []Color {
	if y < 0 || y >= fb.height {
		return nil
	}
	return fb.pix[y*fb.width : (y+1)*fb.width]
}

// Fill overwrites every pixel with c.
func (fb *Framebuffer) Fill(c Color) {
	for i := range fb.pix {
		fb.pix[i] = c
	}
}

// Clone returns an independent copy.
func (fb *Framebuffer) Clone() *Framebuffer {
	out := &Framebuffer{width: fb.width, height: fb.height, pix: make([]Color, len(fb.pix))}
	copy(out.pix, fb.pix)
	return out
}

// Equal reports whether both framebuffers have the same size and pixels.
func (fb *Framebuffer) Equal(o *Framebuffer) bool {
	if fb.width != o.width || fb.height != o.height || len(fb.pix) != len(o.pix) {
		return false
	}
	for i := range fb.pix {
		if fb.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Blend composites c over the pixel at (x, y) with the "over" operator.
// Points outside the framebuffer are ignored.
func (fb *Framebuffer) Blend(x, y int, c Color) {
	if !fb.in(x, y) {
		return
	}
	p := &fb.pix[y*fb.width+x]
	sa := clampAlpha(c.A) / 255
	da := p.A / 255
	outA := sa + da*(1-sa)
	if outA == 0 {
		*p = Color{}
		return
	}
	k := da * (1 - sa)
	*p = Color{
		R: (c.R*sa + p.R*k) / outA,
		G: (c.G*sa + p.G*k) / outA,
		B: (c.B*sa + p.B*k) / outA,
		A: outA * 255,
	}
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.width, fb.height) }

// At implements image.Image using the same rounding as the PNG encoder.
func (fb *Framebuffer) At(x, y int) color.Color {
	c, ok := fb.Pixel(x, y)
	if !ok {
		return color.NRGBA{}
	}
	return color.NRGBA{R: ToByte(c.R), G: ToByte(c.G), B: ToByte(c.B), A: ToByte(c.A)}
}

// clampAlpha keeps source opacity within [0,255]; NaN is treated as transparent.
func clampAlpha(a float64) float64 {
	switch {
	case a > 0 && a <= 255:
		return a
	case a > 255:
		return 255
	}
	return 0
}
