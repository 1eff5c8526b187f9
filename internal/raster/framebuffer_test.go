/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"image/color"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func approxColor(a, b Color) bool {
	return approx(a.R, b.R) && approx(a.G, b.G) && approx(a.B, b.B) && approx(a.A, b.A)
}

func TestNewFramebufferClampsNegative(t *testing.T) {
	fb := NewFramebuffer(-3, 4)
	if fb.Width() != 0 || fb.Height() != 4 || fb.Len() != 0 {
		t.Fatalf("unexpected size %dx%d len %d", fb.Width(), fb.Height(), fb.Len())
	}
}

func TestBlendOpaqueReplaces(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Fill(RGBA(10, 20, 30, 77))
	src := RGB(200, 100, 50)
	fb.Blend(1, 1, src)
	got, _ := fb.Pixel(1, 1)
	if !approxColor(got, src) {
		t.Fatalf("opaque blend = %+v, want %+v", got, src)
	}
}

func TestBlendTransparentIsNoop(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	dst := RGBA(10, 20, 30, 200)
	fb.Fill(dst)
	fb.Blend(0, 0, RGBA(255, 255, 255, 0))
	got, _ := fb.Pixel(0, 0)
	if !approxColor(got, dst) {
		t.Fatalf("transparent blend changed pixel: %+v", got)
	}
}

func TestBlendBothTransparentResetsPixel(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Fill(RGBA(90, 90, 90, 0))
	fb.Blend(0, 0, RGBA(255, 0, 0, 0))
	got, _ := fb.Pixel(0, 0)
	if got != (Color{}) {
		t.Fatalf("expected transparent black, got %+v", got)
	}
}

func TestBlendHalfWhiteTwiceOverBlack(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Fill(RGB(0, 0, 0))
	half := RGBA(255, 255, 255, 128)
	sa := 128.0 / 255.0

	fb.Blend(0, 0, half)
	first := 255 * sa
	got, _ := fb.Pixel(0, 0)
	if !approxColor(got, Color{first, first, first, 255}) {
		t.Fatalf("first blend = %+v, want %v", got, first)
	}

	fb.Blend(0, 0, half)
	second := 255*sa + first*(1-sa)
	got, _ = fb.Pixel(0, 0)
	if !approxColor(got, Color{second, second, second, 255}) {
		t.Fatalf("second blend = %+v, want %v", got, second)
	}
	if !(second > first && second < 255) {
		t.Fatalf("expected monotone convergence toward white: %v -> %v", first, second)
	}
}

func TestBlendOntoTransparentKeepsSourceColor(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Blend(0, 0, RGBA(40, 80, 120, 100))
	got, _ := fb.Pixel(0, 0)
	if !approxColor(got, RGBA(40, 80, 120, 100)) {
		t.Fatalf("blend onto transparent = %+v", got)
	}
}

func TestBlendClampsAlpha(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Fill(RGB(0, 0, 0))
	fb.Blend(0, 0, RGBA(255, 255, 255, 400))
	got, _ := fb.Pixel(0, 0)
	if !approxColor(got, RGB(255, 255, 255)) {
		t.Fatalf("over-opaque source should act opaque: %+v", got)
	}
	fb.Blend(0, 0, RGBA(0, 0, 0, math.NaN()))
	got, _ = fb.Pixel(0, 0)
	if !approxColor(got, RGB(255, 255, 255)) {
		t.Fatalf("NaN alpha should be ignored: %+v", got)
	}
}

func TestBlendOutOfBoundsIgnored(t *testing.T) {
	fb := FillVerticalGradient(3, 3, RGB(1, 2, 3), RGB(4, 5, 6))
	ref := fb.Clone()
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		fb.Blend(p[0], p[1], RGB(255, 255, 255))
	}
	if !fb.Equal(ref) {
		t.Fatalf("out-of-bounds blend modified the framebuffer")
	}
}

func TestAtRoundsLikeEncoder(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Fill(Color{R: 0.5, G: 1.5, B: 254.6, A: 300})
	got := fb.At(0, 0).(color.NRGBA)
	want := color.NRGBA{R: 0, G: 2, B: 255, A: 255}
	if got != want {
		t.Fatalf("At = %+v, want %+v", got, want)
	}
	if fb.At(5, 5) != (color.NRGBA{}) {
		t.Fatalf("At outside bounds must be zero")
	}
}

func TestToByte(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{-5, 0}, {0, 0}, {0.5, 0}, {1.5, 2}, {2.5, 2}, {127.49, 127}, {254.5, 254}, {255.4, 255}, {1e9, 255}, {math.NaN(), 0},
	}
	for _, c := range cases {
		if got := ToByte(c.in); got != c.want {
			t.Fatalf("ToByte(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRowAliasesAndBounds(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	row := fb.Row(1)
	if len(row) != 3 {
		t.Fatalf("row len = %d", len(row))
	}
	row[2] = RGB(9, 9, 9)
	if c, _ := fb.Pixel(2, 1); c != RGB(9, 9, 9) {
		t.Fatalf("Row must alias pixel storage")
	}
	if fb.Row(2) != nil || fb.Row(-1) != nil {
		t.Fatalf("out-of-range rows must be nil")
	}
}
