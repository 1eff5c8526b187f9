/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import "math"

// FillVerticalGradient returns a new opaque framebuffer whose rows
// interpolate the RGB channels from top (row 0) to bottom (last row).
// A single-row framebuffer takes the top color.
func FillVerticalGradient(width, height int, top, bottom Color) *Framebuffer {
	fb := NewFramebuffer(width, height)
	for y := 0; y < fb.height; y++ {
		t := 0.0
		if fb.height > 1 {
			t = float64(y) / float64(fb.height-1)
		}
		c := top.Lerp(bottom, t).WithAlpha(255)
		row := fb.Row(y)
		for x := range row {
			row[x] = c
		}
	}
	return fb
}

// DrawGlow blends a soft disc centred on (cx, cy). Opacity falls off
// quadratically from c.A*intensity at the centre to zero at radius.
// A non-positive radius draws nothing.
func (fb *Framebuffer) DrawGlow(cx, cy, radius float64, c Color, intensity float64) {
	if !(radius > 0) || math.IsInf(radius, 0) || !finite(cx) || !finite(cy) {
		return
	}
	x0 := clampCoord(math.Floor(cx-radius-1), fb.width)
	x1 := clampCoord(math.Ceil(cx+radius+1), fb.width)
	y0 := clampCoord(math.Floor(cy-radius-1), fb.height)
	y1 := clampCoord(math.Ceil(cy+radius+1), fb.height)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if d > radius {
				continue
			}
			f := 1 - d/radius
			fb.Blend(x, y, c.WithAlpha(c.A*f*f*intensity))
		}
	}
}

// FillRoundedRect blends c into the half-open rectangle [x1,x2) x [y1,y2)
// with quarter-circle corners of the given radius. A non-positive radius
// yields square corners.
func (fb *Framebuffer) FillRoundedRect(x1, y1, x2, y2 int, radius float64, c Color) {
	r2 := radius * radius
	for y := max(y1, 0); y < min(y2, fb.height); y++ {
		dy := edgeDistance(y, y1, y2)
		for x := max(x1, 0); x < min(x2, fb.width); x++ {
			dx := edgeDistance(x, x1, x2)
			if dx < radius && dy < radius {
				cx, cy := radius-dx, radius-dy
				if cx*cx+cy*cy > r2 {
					continue
				}
			}
			fb.Blend(x, y, c)
		}
	}
}

// edgeDistance is the distance of v to the nearer edge of [lo, hi), computed
// in float64 so extreme bounds cannot overflow.
func edgeDistance(v, lo, hi int) float64 {
	return math.Min(float64(v)-float64(lo), float64(hi)-float64(v)-1)
}

// clampCoord converts v to a pixel index in [0, n-1] without overflowing
// int for very large inputs. For n == 0 it returns -1 so loops do nothing.
func clampCoord(v float64, n int) int {
	switch {
	case n <= 0:
		return -1
	case v <= 0:
		return 0
	case v >= float64(n-1):
		return n - 1
	}
	return int(v)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
