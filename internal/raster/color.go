/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import "math"

// Color is a straight (non-premultiplied) color with channels in the 0-255
// domain. Values are kept as float64 so repeated blends do not accumulate
// rounding error.
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b, A: 255} }

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a float64) Color { return Color{R: r, G: g, B: b, A: a} }

// Transparent is fully transparent black.
var Transparent = Color{}

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lerp interpolates the color channels between c and o; alpha is taken from c.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R*(1-t) + o.R*t,
		G: c.G*(1-t) + o.G*t,
		B: c.B*(1-t) + o.B*t,
		A: c.A,
	}
}

// ToByte rounds a channel value half-to-even and clamps it to [0,255].
// NaN maps to 0.
func ToByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	r := math.RoundToEven(v)
	switch {
	case r <= 0:
		return 0
	case r >= 255:
		return 255
	}
	return uint8(r)
}
