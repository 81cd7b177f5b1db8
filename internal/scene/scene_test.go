/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"vecraster/internal/domain"
)

const sampleJSON = `{
  "width": 64,
  "height": 32,
  "commands": [
    {"type": "circle", "position": {"x": 10, "y": 10}, "radius": 5, "fill": {"r": 255, "g": 0, "b": 0}},
    {"type": "line", "start": {"x": 0, "y": 0}, "end": {"x": 63, "y": 31}, "stroke": {"color": "#0000ff"}},
    {"type": "rectangle", "position": {"x": 1, "y": 2}, "width": 3, "height": 4, "stroke": {"width": 5}},
    {"type": "polygon", "points": [], "fill": "#00ff0080"},
    {"type": "text", "position": {"x": 4, "y": 20}, "content": "hi", "font_size": 12}
  ]
}`

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(sampleJSON), JSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cmds, err := doc.DrawCommands()
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	want := []domain.DrawCommand{
		domain.Circle{Position: domain.Pt(10, 10), Radius: 5, Fill: domain.RGBA(255, 0, 0, 255)},
		domain.Line{Start: domain.Pt(0, 0), End: domain.Pt(63, 31), Stroke: domain.Solid(domain.Color{B: 255, A: 255}, 2)},
		// Width without colour: present but invisible.
		domain.Rectangle{Position: domain.Pt(1, 2), Width: 3, Height: 4, Stroke: &domain.Stroke{Width: 5}},
		domain.Polygon{Fill: domain.RGBA(0, 255, 0, 128)},
		domain.Text{Position: domain.Pt(4, 20), Content: "hi", FontSize: 12},
	}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
	if doc.Width != 64 || doc.Height != 32 {
		t.Fatalf("size = %dx%d", doc.Width, doc.Height)
	}
}

func TestParseYAML(t *testing.T) {
	src := `
width: 20
height: 10
commands:
  - type: rectangle
    position: {x: 0, y: 0}
    width: 20
    height: 10
    fill: "#ff0000"
    stroke:
      color: {r: 0, g: 0, b: 0, a: 128}
      width: 1.5
`
	doc, err := Parse([]byte(src), YAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cmds, err := doc.DrawCommands()
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	want := []domain.DrawCommand{domain.Rectangle{
		Position: domain.Pt(0, 0), Width: 20, Height: 10,
		Fill:   domain.RGBA(255, 0, 0, 255),
		Stroke: domain.Solid(domain.Color{A: 128}, 1.5),
	}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOML(t *testing.T) {
	src := `
width = 8
height = 8

[[commands]]
type = "polygon"
fill = "#123456"

  [[commands.points]]
  x = 0
  y = 0

  [[commands.points]]
  x = 8
  y = 0

  [[commands.points]]
  x = 4.5
  y = 8
`
	doc, err := Parse([]byte(src), TOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cmds, err := doc.DrawCommands()
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	want := []domain.DrawCommand{domain.Polygon{
		Points: []domain.Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 4.5, Y: 8}},
		Fill:   domain.RGBA(0x12, 0x34, 0x56, 255),
	}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaRejects(t *testing.T) {
	cases := map[string]string{
		"unknown type":     `{"width": 1, "height": 1, "commands": [{"type": "ellipse"}]}`,
		"missing commands": `{"width": 1, "height": 1}`,
		"zero width":       `{"width": 0, "height": 1, "commands": []}`,
		"fractional size":  `{"width": 1.5, "height": 1, "commands": []}`,
		"bad hex":          `{"width": 1, "height": 1, "commands": [{"type": "circle", "position": {"x": 0, "y": 0}, "fill": "red"}]}`,
		"channel range":    `{"width": 1, "height": 1, "commands": [{"type": "circle", "position": {"x": 0, "y": 0}, "fill": {"r": 300, "g": 0, "b": 0}}]}`,
		"negative radius":  `{"width": 1, "height": 1, "commands": [{"type": "circle", "position": {"x": 0, "y": 0}, "radius": -1}]}`,
		"negative stroke":  `{"width": 1, "height": 1, "commands": [{"type": "line", "start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 1}, "stroke": {"width": -2}}]}`,
		"foreign field":    `{"width": 1, "height": 1, "commands": [{"type": "line", "start": {"x": 0, "y": 0}, "end": {"x": 1, "y": 1}, "fill": "#000000"}]}`,
		"missing point":    `{"width": 1, "height": 1, "commands": [{"type": "line", "start": {"x": 0, "y": 0}}]}`,
		"malformed":        `{"width": 1,`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), JSON)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidationErrorListsProblems(t *testing.T) {
	err := Validate([]byte(`{"width": 0, "height": 0, "commands": []}`))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if len(ve.Problems) < 2 {
		t.Fatalf("expected a problem per field, got %v", ve.Problems)
	}
	if !strings.Contains(err.Error(), "width") {
		t.Fatalf("message lacks field name: %v", err)
	}
}

func TestRoundTripAllFormats(t *testing.T) {
	demo := Demo()
	want, err := demo.DrawCommands()
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	for _, f := range []Format{JSON, YAML, TOML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(demo, f)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			back, err := Parse(data, f)
			if err != nil {
				t.Fatalf("Parse: %v\n%s", err, data)
			}
			got, err := back.DrawCommands()
			if err != nil {
				t.Fatalf("Commands: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
			if back.Width != 500 || back.Height != 250 || back.Name != "demo" {
				t.Fatalf("header lost: %+v", back)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Name != "sample" || len(doc.Commands) != 5 {
		t.Fatalf("unexpected doc: %+v", doc)
	}
	if _, err := Load(filepath.Join(dir, "scene.xml")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("xml err = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestCommandsRejectsUnknownType(t *testing.T) {
	doc := &Document{Width: 1, Height: 1, Commands: []Command{{Type: "star"}}}
	if _, err := doc.DrawCommands(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v", err)
	}
}

func TestColorForms(t *testing.T) {
	var c Color
	if err := c.UnmarshalJSON([]byte(`{"r": 1, "g": 2, "b": 3}`)); err != nil {
		t.Fatal(err)
	}
	if c != (Color{1, 2, 3, 255}) {
		t.Fatalf("object colour = %v", c)
	}
	if err := c.UnmarshalJSON([]byte(`"#01020300"`)); err != nil {
		t.Fatal(err)
	}
	if c != (Color{1, 2, 3, 0}) {
		t.Fatalf("hex colour = %v", c)
	}
	b, _ := c.MarshalJSON()
	if string(b) != `"#01020300"` {
		t.Fatalf("MarshalJSON = %s", b)
	}
}

func TestSchemaIsValidJSON(t *testing.T) {
	if _, err := compiledSchema(); err != nil {
		t.Fatalf("schema does not compile: %v", err)
	}
	if len(Schema()) == 0 {
		t.Fatalf("empty schema")
	}
}
