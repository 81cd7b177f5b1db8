/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene reads and writes scene documents: a canvas size plus an
// ordered list of draw commands, stored as JSON, YAML or TOML. Every format
// is normalised to JSON and checked against one embedded JSON schema before
// it is decoded.
package scene

import (
	"bytes"
	"encoding/json"
	"fmt"

	"vecraster/internal/domain"
)

// Command types as they appear in the "type" field.
const (
	TypeCircle    = "circle"
	TypeLine      = "line"
	TypeRectangle = "rectangle"
	TypePolygon   = "polygon"
	TypeText      = "text"
)

// Document is a renderable scene.
type Document struct {
	Name   string `json:"name,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Output string `json:"output,omitempty"`
	// Background is accepted for compatibility; the canvas is always cleared
	// to white.
	Background *Color    `json:"background,omitempty"`
	Commands   []Command `json:"commands"`
}

// Command is the flat wire form of a draw command. Which fields apply
// depends on Type.
type Command struct {
	Type     string         `json:"type"`
	Position *domain.Point  `json:"position,omitempty"`
	Radius   float64        `json:"radius,omitempty"`
	Start    *domain.Point  `json:"start,omitempty"`
	End      *domain.Point  `json:"end,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Points   []domain.Point `json:"points,omitempty"`
	Fill     *Color         `json:"fill,omitempty"`
	Stroke   *Stroke        `json:"stroke,omitempty"`
	Content  string         `json:"content,omitempty"`
	FontSize float32        `json:"font_size,omitempty"`
	Color    *Color         `json:"color,omitempty"`
}

// Stroke mirrors domain.Stroke. An absent colour means no outline; an
// absent width means domain.DefaultStrokeWidth.
type Stroke struct {
	Color *Color   `json:"color,omitempty"`
	Width *float64 `json:"width,omitempty"`
}

// Color is written as "#rrggbbaa" and read from either a hex string or an
// {r,g,b,a} object whose alpha defaults to 255.
type Color domain.Color

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(domain.Color(c).String())
}

func (c *Color) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := domain.ParseHex(s)
		if err != nil {
			return err
		}
		*c = Color(v)
		return nil
	}
	var obj struct {
		R, G, B uint8
		A       *uint8
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("colour: %w", err)
	}
	*c = Color{R: obj.R, G: obj.G, B: obj.B, A: 255}
	if obj.A != nil {
		c.A = *obj.A
	}
	return nil
}

func (c *Color) domain() *domain.Color {
	if c == nil {
		return nil
	}
	v := domain.Color(*c)
	return &v
}

func fromDomainColor(c *domain.Color) *Color {
	if c == nil {
		return nil
	}
	v := Color(*c)
	return &v
}

func (s *Stroke) domain() *domain.Stroke {
	if s == nil {
		return nil
	}
	out := &domain.Stroke{Color: s.Color.domain(), Width: domain.DefaultStrokeWidth}
	if s.Width != nil {
		out.Width = *s.Width
	}
	return out
}

func fromDomainStroke(s *domain.Stroke) *Stroke {
	if s == nil {
		return nil
	}
	w := s.Width
	return &Stroke{Color: fromDomainColor(s.Color), Width: &w}
}

func point(p *domain.Point) domain.Point {
	if p == nil {
		return domain.Point{}
	}
	return *p
}

// DrawCommand converts the wire form into a domain command.
func (c Command) DrawCommand() (domain.DrawCommand, error) {
	switch c.Type {
	case TypeCircle:
		return domain.Circle{Position: point(c.Position), Radius: c.Radius, Fill: c.Fill.domain(), Stroke: c.Stroke.domain()}, nil
	case TypeLine:
		return domain.Line{Start: point(c.Start), End: point(c.End), Stroke: c.Stroke.domain()}, nil
	case TypeRectangle:
		return domain.Rectangle{Position: point(c.Position), Width: c.Width, Height: c.Height, Fill: c.Fill.domain(), Stroke: c.Stroke.domain()}, nil
	case TypePolygon:
		pts := append([]domain.Point(nil), c.Points...)
		return domain.Polygon{Points: pts, Fill: c.Fill.domain(), Stroke: c.Stroke.domain()}, nil
	case TypeText:
		return domain.Text{Position: point(c.Position), Content: c.Content, FontSize: c.FontSize, Color: c.Color.domain()}, nil
	default:
		return nil, fmt.Errorf("%w: unknown command type %q", ErrInvalid, c.Type)
	}
}

// DrawCommands converts every command of the document, in order.
func (d *Document) DrawCommands() ([]domain.DrawCommand, error) {
	out := make([]domain.DrawCommand, 0, len(d.Commands))
	for i, c := range d.Commands {
		cmd, err := c.DrawCommand()
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		out = append(out, cmd)
	}
	return out, nil
}

// FromCommand builds the wire form of a domain command.
func FromCommand(cmd domain.DrawCommand) Command {
	switch v := cmd.(type) {
	case domain.Circle:
		p := v.Position
		return Command{Type: TypeCircle, Position: &p, Radius: v.Radius, Fill: fromDomainColor(v.Fill), Stroke: fromDomainStroke(v.Stroke)}
	case domain.Line:
		s, e := v.Start, v.End
		return Command{Type: TypeLine, Start: &s, End: &e, Stroke: fromDomainStroke(v.Stroke)}
	case domain.Rectangle:
		p := v.Position
		return Command{Type: TypeRectangle, Position: &p, Width: v.Width, Height: v.Height, Fill: fromDomainColor(v.Fill), Stroke: fromDomainStroke(v.Stroke)}
	case domain.Polygon:
		return Command{Type: TypePolygon, Points: v.Points, Fill: fromDomainColor(v.Fill), Stroke: fromDomainStroke(v.Stroke)}
	case domain.Text:
		p := v.Position
		return Command{Type: TypeText, Position: &p, Content: v.Content, FontSize: v.FontSize, Color: fromDomainColor(v.Color)}
	default:
		panic(fmt.Sprintf("scene: unknown draw command %T", cmd))
	}
}

// FromCommands wraps domain commands into a document.
func FromCommands(width, height int, cmds []domain.DrawCommand) *Document {
	d := &Document{Width: width, Height: height, Commands: make([]Command, 0, len(cmds))}
	for _, c := range cmds {
		d.Commands = append(d.Commands, FromCommand(c))
	}
	return d
}
