/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"testing"

	"brandgen/internal/glyph"
)

func TestTextDrawStampsScaledBlocks(t *testing.T) {
	fb := NewFramebuffer(40, 20)
	td := NewTextDrawer(glyph.Default5x7())
	white := RGB(255, 255, 255)
	end := td.Draw(fb, "a", 1, 2, white, 2, 1)
	if end != 1+5*2+1*2 {
		t.Fatalf("cursor after one rune = %d, want %d", end, 13)
	}
	// 'A' row 0 is 01110: column 0 empty, columns 1..3 inked
	inked := func(x, y int) bool {
		c, _ := fb.Pixel(x, y)
		return c.A > 0
	}
	if inked(1, 2) || inked(2, 3) {
		t.Fatalf("blank cell (0,0) must not be stamped")
	}
	for _, p := range [][2]int{{3, 2}, {4, 2}, {3, 3}, {4, 3}, {7, 3}, {8, 3}} {
		if !inked(p[0], p[1]) {
			t.Fatalf("expected ink at %v", p)
		}
	}
	// row 3 of 'A' is 11111 -> y in [8,10), x in [1,11)
	for x := 1; x < 11; x++ {
		if !inked(x, 8) || !inked(x, 9) {
			t.Fatalf("crossbar missing at x=%d", x)
		}
	}
	if inked(11, 8) {
		t.Fatalf("ink beyond glyph width")
	}
}

func TestTextUnknownRunesAdvanceAsSpace(t *testing.T) {
	fb := NewFramebuffer(30, 10)
	ref := fb.Clone()
	td := NewTextDrawer(nil)
	end := td.Draw(fb, "•• ", 0, 0, RGB(255, 0, 0), 1, 1)
	if end != 3*6 {
		t.Fatalf("cursor = %d, want 18", end)
	}
	if !fb.Equal(ref) {
		t.Fatalf("unknown runes must render as blank space")
	}
}

func TestTextNonPositiveScaleIsNoop(t *testing.T) {
	fb := NewFramebuffer(30, 10)
	ref := fb.Clone()
	td := NewTextDrawer(nil)
	if end := td.Draw(fb, "HI", 4, 0, RGB(255, 0, 0), 0, 1); end != 4 {
		t.Fatalf("cursor moved with zero scale: %d", end)
	}
	if !fb.Equal(ref) {
		t.Fatalf("zero scale must draw nothing")
	}
}

func TestTextMeasure(t *testing.T) {
	td := NewTextDrawer(glyph.Default5x7())
	if got := td.Measure("WOLT", 6, 1); got != 4*(5*6+6) {
		t.Fatalf("Measure = %d", got)
	}
	if got := td.Measure("", 3, 1); got != 0 {
		t.Fatalf("Measure(\"\") = %d", got)
	}
	if got := td.Measure("AB", 0, 1); got != 0 {
		t.Fatalf("Measure with zero scale = %d", got)
	}
}

func TestTextSemiTransparentOverlapBlendsOncePerCell(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.Fill(RGB(0, 0, 0))
	td := NewTextDrawer(glyph.Default5x7())
	td.Draw(fb, "-", 0, 0, RGBA(255, 255, 255, 128), 1, 0)
	c, _ := fb.Pixel(2, 3)
	if !approx(c.R, 128) {
		t.Fatalf("hyphen cell = %+v, want R=128", c)
	}
}
