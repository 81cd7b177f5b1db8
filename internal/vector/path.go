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
	"fmt"
	"math"

	"vecraster/internal/domain"
)

// Path commands and shapes.

type PathOp uint8

const (
	MoveTo  PathOp = iota
	LineTo         // (x, y)
	CubicTo        // cubic bezier (c1, c2, end)
	Close
)

func (op PathOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CubicTo:
		return "C"
	case Close:
		return "Z"
	default:
		return fmt.Sprintf("PathOp(%d)", uint8(op))
	}
}

// PathCmd is one segment. MoveTo and LineTo use Pts[0]; CubicTo uses all three
// (two control points then the end point); Close uses none.
type PathCmd struct {
	Op  PathOp
	Pts [3]domain.Point
}

type Path struct{ Cmds []PathCmd }

// ErrPathConstruction reports geometry the rasterizer cannot accept.
var ErrPathConstruction = errors.New("path construction failed")

// MaxCoord bounds the absolute value of any coordinate handed to the
// rasterizer. It works in 26.6 fixed point; the headroom leaves room for
// stroke offsets. Geometry beyond it is clipped by Finish.
const MaxCoord = 1 << 24

func (p *Path) MoveTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Pts: [3]domain.Point{{X: x, Y: y}}})
}
func (p *Path) LineTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Pts: [3]domain.Point{{X: x, Y: y}}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Pts: [3]domain.Point{{X: cx1, Y: cy1}, {X: cx2, Y: cy2}, {X: x, Y: y}}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.Cmds) }

// Closed reports whether the last command closes the contour.
func (p *Path) Closed() bool {
	return len(p.Cmds) > 0 && p.Cmds[len(p.Cmds)-1].Op == Close
}

// Points returns every point the path references, control points included,
// in command order.
func (p *Path) Points() []domain.Point {
	var pts []domain.Point
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			pts = append(pts, c.Pts[0])
		case CubicTo:
			pts = append(pts, c.Pts[:]...)
		}
	}
	return pts
}

// Finish prepares the path for rasterization. An empty path or a lone MoveTo
// fails, as does any non-finite coordinate. Finite coordinates beyond
// MaxCoord are clipped (see clip), which may leave the path without commands.
func (p *Path) Finish() error {
	if len(p.Cmds) == 0 || (len(p.Cmds) == 1 && p.Cmds[0].Op == MoveTo) {
		return fmt.Errorf("%w: empty path", ErrPathConstruction)
	}
	inRange := true
	for _, pt := range p.Points() {
		if !finite(pt.X) || !finite(pt.Y) {
			return fmt.Errorf("%w: coordinate (%g, %g) is not finite", ErrPathConstruction, pt.X, pt.Y)
		}
		if math.Abs(pt.X) > MaxCoord || math.Abs(pt.Y) > MaxCoord {
			inRange = false
		}
	}
	if !inRange {
		p.clip()
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Bounds returns an axis-aligned bounding box of the path using the control
// points. That over-approximates curves slightly, which is fine for damage
// rectangles and tests.
func (p *Path) Bounds() Rect {
	pts := p.Points()
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, pt := range pts[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// String renders the path in SVG path syntax; handy in test failures.
func (p *Path) String() string {
	s := ""
	for i, c := range p.Cmds {
		if i > 0 {
			s += " "
		}
		switch c.Op {
		case MoveTo, LineTo:
			s += fmt.Sprintf("%s%g,%g", c.Op, c.Pts[0].X, c.Pts[0].Y)
		case CubicTo:
			s += fmt.Sprintf("C%g,%g %g,%g %g,%g", c.Pts[0].X, c.Pts[0].Y, c.Pts[1].X, c.Pts[1].Y, c.Pts[2].X, c.Pts[2].Y)
		case Close:
			s += "Z"
		}
	}
	return s
}
