/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"fmt"

	"vecraster/internal/domain"
)

// Kappa places the control points of a quarter-circle cubic so the curve
// deviates from the true arc by at most ~0.027% of the radius.
const Kappa = 0.5522847498

// Build converts a draw command into its outline. A nil path with a nil error
// means there is nothing to draw: a polygon with fewer than two points, a
// text command, or geometry clipped away entirely.
func Build(cmd domain.DrawCommand) (*Path, error) {
	var p *Path
	switch c := cmd.(type) {
	case domain.Circle:
		p = CirclePath(c.Position, c.Radius)
	case domain.Line:
		p = LinePath(c.Start, c.End)
	case domain.Rectangle:
		p = RectPath(c.Position, c.Width, c.Height)
	case domain.Polygon:
		// A single point encloses nothing and has no length to stroke.
		if len(c.Points) < 2 {
			return nil, nil
		}
		p = PolygonPath(c.Points)
	case domain.Text:
		return nil, nil
	default:
		panic(fmt.Sprintf("vector: unknown draw command %T", cmd))
	}
	if err := p.Finish(); err != nil {
		return nil, fmt.Errorf("%s: %w", domain.Kind(cmd), err)
	}
	if p.Len() == 0 {
		return nil, nil
	}
	return p, nil
}

// LinePath is a single open segment.
func LinePath(start, end domain.Point) *Path {
	var p Path
	p.MoveTo(start.X, start.Y)
	p.LineTo(end.X, end.Y)
	return &p
}

// RectPath traces the corners clockwise from the top-left and closes.
func RectPath(pos domain.Point, w, h float64) *Path {
	var p Path
	p.MoveTo(pos.X, pos.Y)
	p.LineTo(pos.X+w, pos.Y)
	p.LineTo(pos.X+w, pos.Y+h)
	p.LineTo(pos.X, pos.Y+h)
	p.Close()
	return &p
}

// PolygonPath connects pts in order and closes. pts must not be empty.
func PolygonPath(pts []domain.Point) *Path {
	var p Path
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
	return &p
}

// CirclePath approximates the circle with four cubic arcs, one per quadrant,
// starting at the leftmost point and passing through the top, right and
// bottom cardinal points.
func CirclePath(center domain.Point, r float64) *Path {
	cx, cy := center.X, center.Y
	kr := Kappa * r

	var p Path
	p.MoveTo(cx-r, cy)
	p.CubicTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	p.CubicTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
	p.CubicTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
	p.CubicTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
	p.Close()
	return &p
}
