/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"vecraster/internal/domain"
)

func TestBuild_Line(t *testing.T) {
	p, err := Build(domain.Line{Start: domain.Pt(1, 2), End: domain.Pt(3, 4)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []PathCmd{
		{Op: MoveTo, Pts: [3]domain.Point{{X: 1, Y: 2}}},
		{Op: LineTo, Pts: [3]domain.Point{{X: 3, Y: 4}}},
	}
	if diff := cmp.Diff(want, p.Cmds); diff != "" {
		t.Fatalf("line path mismatch (-want +got):\n%s", diff)
	}
	if p.Closed() {
		t.Fatalf("line must stay open")
	}
}

func TestBuild_Rectangle(t *testing.T) {
	p, err := Build(domain.Rectangle{Position: domain.Pt(2, 3), Width: 10, Height: 5})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := p.String(), "M2,3 L12,3 L12,8 L2,8 Z"; got != want {
		t.Fatalf("rect path = %q, want %q", got, want)
	}
}

func TestBuild_Polygon(t *testing.T) {
	tri := domain.Polygon{Points: []domain.Point{{X: 350, Y: 150}, {X: 400, Y: 50}, {X: 450, Y: 150}}}
	p, err := Build(tri)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := p.String(), "M350,150 L400,50 L450,150 Z"; got != want {
		t.Fatalf("polygon path = %q, want %q", got, want)
	}
}

func TestBuild_EmptyPolygonIsNoOp(t *testing.T) {
	p, err := Build(domain.Polygon{Fill: domain.RGBA(255, 0, 0, 255)})
	if err != nil || p != nil {
		t.Fatalf("Build(empty polygon) = %v, %v; want nil, nil", p, err)
	}
}

func TestBuild_TextHasNoGeometry(t *testing.T) {
	p, err := Build(domain.Text{Content: "hello"})
	if err != nil || p != nil {
		t.Fatalf("Build(text) = %v, %v; want nil, nil", p, err)
	}
}

func TestBuild_SinglePointPolygonIsNoOp(t *testing.T) {
	p, err := Build(domain.Polygon{Points: []domain.Point{{X: 1, Y: 1}}, Fill: domain.RGBA(255, 0, 0, 255)})
	if err != nil || p != nil {
		t.Fatalf("Build(single point polygon) = %v, %v; want nil, nil", p, err)
	}
}

func TestBuild_FarAwayLineIsNoOp(t *testing.T) {
	p, err := Build(domain.Line{Start: domain.Pt(1e12, 0), End: domain.Pt(2e12, 5)})
	if err != nil || p != nil {
		t.Fatalf("Build(far line) = %v, %v; want nil, nil", p, err)
	}
}

func TestBuild_NonFiniteCircleFails(t *testing.T) {
	_, err := Build(domain.Circle{Position: domain.Pt(math.NaN(), 0), Radius: 4})
	if !errors.Is(err, ErrPathConstruction) {
		t.Fatalf("err = %v, want ErrPathConstruction", err)
	}
}

func TestCirclePath_CardinalPointsOnPath(t *testing.T) {
	cx, cy, r := 100.0, 80.0, 50.0
	p := CirclePath(domain.Pt(cx, cy), r)

	// Segment end points, in drawing order.
	var ends []domain.Point
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			ends = append(ends, c.Pts[0])
		case CubicTo:
			ends = append(ends, c.Pts[2])
		}
	}
	want := []domain.Point{
		{X: cx - r, Y: cy},
		{X: cx, Y: cy - r},
		{X: cx + r, Y: cy},
		{X: cx, Y: cy + r},
		{X: cx - r, Y: cy},
	}
	if diff := cmp.Diff(want, ends); diff != "" {
		t.Fatalf("cardinal points mismatch (-want +got):\n%s", diff)
	}
	if !p.Closed() {
		t.Fatalf("circle must be closed")
	}
}

func TestCirclePath_ControlHandles(t *testing.T) {
	p := CirclePath(domain.Pt(0, 0), 10)
	kr := Kappa * 10
	// First quadrant: left -> top. Handles are vertical at the start and
	// horizontal at the end, each k*r long.
	c := p.Cmds[1]
	if c.Op != CubicTo {
		t.Fatalf("expected cubic, got %v", c.Op)
	}
	if c.Pts[0] != domain.Pt(-10, -kr) || c.Pts[1] != domain.Pt(-kr, -10) {
		t.Fatalf("unexpected handles: %+v", c.Pts)
	}
	if Kappa != 0.5522847498 {
		t.Fatalf("kappa changed: %v", Kappa)
	}
}

func TestCirclePath_Bounds(t *testing.T) {
	b := CirclePath(domain.Pt(20, 30), 5).Bounds()
	if b != (Rect{X: 15, Y: 25, W: 10, H: 10}) {
		t.Fatalf("circle bounds = %+v", b)
	}
}
