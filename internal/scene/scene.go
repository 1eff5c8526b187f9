/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene describes artwork as data: a canvas with a gradient
// background and an ordered list of glow, rounded-rectangle and text
// operations. Scenes are loaded from YAML, JSON or TOML documents, checked
// against an embedded JSON schema and rendered onto a raster.Framebuffer.
package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"brandgen/internal/raster"
)

// Defaults applied to omitted optional fields.
const (
	DefaultTextScale     = 4
	DefaultLetterSpacing = 1
	DefaultIntensity     = 1.0
)

// Text alignment relative to TextOp.X.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Scene is one output image.
type Scene struct {
	Name       string     `yaml:"name" json:"name" toml:"name"`
	Width      int        `yaml:"width" json:"width" toml:"width"`
	Height     int        `yaml:"height" json:"height" toml:"height"`
	Output     string     `yaml:"output,omitempty" json:"output,omitempty" toml:"output,omitempty"`
	Font       string     `yaml:"font,omitempty" json:"font,omitempty" toml:"font,omitempty"`
	Background Background `yaml:"background" json:"background" toml:"background"`
	Ops        []Op       `yaml:"ops" json:"ops" toml:"ops"`
}

// Background is the vertical gradient every scene starts from.
type Background struct {
	Top    ColorSpec `yaml:"top" json:"top" toml:"top"`
	Bottom ColorSpec `yaml:"bottom" json:"bottom" toml:"bottom"`
}

// Op carries exactly one drawing operation.
type Op struct {
	Glow *GlowOp `yaml:"glow,omitempty" json:"glow,omitempty" toml:"glow,omitempty"`
	Rect *RectOp `yaml:"rect,omitempty" json:"rect,omitempty" toml:"rect,omitempty"`
	Text *TextOp `yaml:"text,omitempty" json:"text,omitempty" toml:"text,omitempty"`
}

// GlowOp is a soft radial glow.
type GlowOp struct {
	CX        float64   `yaml:"cx" json:"cx" toml:"cx"`
	CY        float64   `yaml:"cy" json:"cy" toml:"cy"`
	Radius    float64   `yaml:"radius" json:"radius" toml:"radius"`
	Color     ColorSpec `yaml:"color" json:"color" toml:"color"`
	Intensity *float64  `yaml:"intensity,omitempty" json:"intensity,omitempty" toml:"intensity,omitempty"`
}

// RectOp is a rounded rectangle over [X1,X2) x [Y1,Y2).
type RectOp struct {
	X1     int       `yaml:"x1" json:"x1" toml:"x1"`
	Y1     int       `yaml:"y1" json:"y1" toml:"y1"`
	X2     int       `yaml:"x2" json:"x2" toml:"x2"`
	Y2     int       `yaml:"y2" json:"y2" toml:"y2"`
	Radius float64   `yaml:"radius,omitempty" json:"radius,omitempty" toml:"radius,omitempty"`
	Color  ColorSpec `yaml:"color" json:"color" toml:"color"`
}

// TextOp is a single line of bitmap text.
type TextOp struct {
	Text    string    `yaml:"text" json:"text" toml:"text"`
	X       int       `yaml:"x" json:"x" toml:"x"`
	Y       int       `yaml:"y" json:"y" toml:"y"`
	Color   ColorSpec `yaml:"color" json:"color" toml:"color"`
	Scale   int       `yaml:"scale,omitempty" json:"scale,omitempty" toml:"scale,omitempty"`
	Spacing *int      `yaml:"spacing,omitempty" json:"spacing,omitempty" toml:"spacing,omitempty"`
	Align   string    `yaml:"align,omitempty" json:"align,omitempty" toml:"align,omitempty"`
}

// ColorSpec is [r, g, b] or [r, g, b, a]; alpha defaults to 255.
type ColorSpec []float64

// Color converts c; missing channels read as 0.
func (c ColorSpec) Color() raster.Color {
	var ch [4]float64
	ch[3] = 255
	copy(ch[:], c)
	return raster.RGBA(ch[0], ch[1], ch[2], ch[3])
}

// Kind names the operation held by o, or "" when none is set.
func (o Op) Kind() string {
	switch {
	case o.Glow != nil:
		return "glow"
	case o.Rect != nil:
		return "rect"
	case o.Text != nil:
		return "text"
	}
	return ""
}

// OutputName is the file name the scene renders to.
func (s *Scene) OutputName() string {
	if s.Output != "" {
		return s.Output
	}
	return s.Name + ".png"
}

// normalize fills defaults so equivalent documents compare and hash alike.
func (s *Scene) normalize() {
	for i := range s.Ops {
		switch op := s.Ops[i]; {
		case op.Glow != nil:
			if op.Glow.Intensity == nil {
				v := DefaultIntensity
				op.Glow.Intensity = &v
			}
		case op.Text != nil:
			if op.Text.Scale == 0 {
				op.Text.Scale = DefaultTextScale
			}
			if op.Text.Spacing == nil {
				v := DefaultLetterSpacing
				op.Text.Spacing = &v
			}
			if op.Text.Align == "" {
				op.Text.Align = AlignLeft
			}
		}
	}
}

// Digest is a hex SHA-256 over the canonical JSON form of the scene.
func (s *Scene) Digest() string {
	b, _ := json.Marshal(s) // plain data, cannot fail
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
