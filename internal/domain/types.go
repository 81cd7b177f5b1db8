/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines the drawing model consumed by the renderer: primitive value
// types and the closed set of draw commands. All geometry is in canvas pixel
// space with the origin at the top-left corner, x growing right and y down.

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Color is a non-premultiplied 8-bit RGBA colour. A = 0 is fully transparent.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// DefaultColor returns opaque black.
func DefaultColor() Color { return Black }

// RGBA returns a pointer to a new colour, convenient for optional fills.
func RGBA(r, g, b, a uint8) *Color {
	return &Color{R: r, G: g, B: b, A: a}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex reads "#rrggbb" or "#rrggbbaa". Six digits imply opaque alpha.
func ParseHex(s string) (Color, error) {
	h, ok := strings.CutPrefix(s, "#")
	if !ok || (len(h) != 6 && len(h) != 8) {
		return Color{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Stroke describes an outline. A nil Color means no outline is drawn even
// though a width is present; an invisible outline is expressed with A = 0.
type Stroke struct {
	Color *Color
	Width float64
}

// DefaultStrokeWidth is the width of DefaultStroke.
const DefaultStrokeWidth = 2.0

// DefaultStroke returns an opaque black outline of width 2.
func DefaultStroke() Stroke {
	c := DefaultColor()
	return Stroke{Color: &c, Width: DefaultStrokeWidth}
}

// Solid returns a stroke of the given colour and width.
func Solid(c Color, width float64) *Stroke {
	return &Stroke{Color: &c, Width: width}
}

// DrawCommand is one of Circle, Line, Rectangle, Polygon or Text. The set is
// closed: the marker method is unexported, so consumers can switch over the
// five variants and treat anything else as a programming error.
type DrawCommand interface {
	drawCommand()
}

// Circle is centred on Position.
type Circle struct {
	Position Point
	Radius   float64
	Fill     *Color
	Stroke   *Stroke
}

// Line has no interior and therefore no fill.
type Line struct {
	Start  Point
	End    Point
	Stroke *Stroke
}

// Rectangle is anchored at its top-left corner.
type Rectangle struct {
	Position Point
	Width    float64
	Height   float64
	Fill     *Color
	Stroke   *Stroke
}

// Polygon is implicitly closed. An empty point list draws nothing.
type Polygon struct {
	Points []Point
	Fill   *Color
	Stroke *Stroke
}

// Text is accepted by the renderer but not rasterized.
type Text struct {
	Position Point
	Content  string
	FontSize float32
	Color    *Color
}

func (Circle) drawCommand()    {}
func (Line) drawCommand()      {}
func (Rectangle) drawCommand() {}
func (Polygon) drawCommand()   {}
func (Text) drawCommand()      {}

// Kind names the variant of cmd. It panics on a type outside the closed set.
func Kind(cmd DrawCommand) string {
	switch cmd.(type) {
	case Circle:
		return "circle"
	case Line:
		return "line"
	case Rectangle:
		return "rectangle"
	case Polygon:
		return "polygon"
	case Text:
		return "text"
	default:
		panic(fmt.Sprintf("domain: unknown draw command %T", cmd))
	}
}
