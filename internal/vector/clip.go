/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"

	"vecraster/internal/domain"
)

// clip restricts the path to the square [-MaxCoord, MaxCoord]. Closed
// straight-edged contours are clipped as polygons, so the fill inside the
// square is unchanged; open ones are cut segment by segment. Contours with
// curves have their points clamped, which only bends geometry that lies far
// outside any canvas.
func (p *Path) clip() {
	for _, c := range p.Cmds {
		if c.Op == CubicTo {
			p.clamp()
			return
		}
	}
	var out Path
	for _, ct := range contours(p.Cmds) {
		if ct.closed {
			poly := clipPolygon(ct.pts)
			if len(poly) < 2 {
				continue
			}
			out.MoveTo(poly[0].X, poly[0].Y)
			for _, pt := range poly[1:] {
				out.LineTo(pt.X, pt.Y)
			}
			out.Close()
			continue
		}
		var last domain.Point
		open := false
		for i := 1; i < len(ct.pts); i++ {
			a, b, ok := clipSegment(ct.pts[i-1], ct.pts[i])
			if !ok {
				open = false
				continue
			}
			if !open || a != last {
				out.MoveTo(a.X, a.Y)
			}
			out.LineTo(b.X, b.Y)
			last, open = b, true
		}
	}
	p.Cmds = out.Cmds
}

func (p *Path) clamp() {
	for i := range p.Cmds {
		for j := range p.Cmds[i].Pts {
			pt := &p.Cmds[i].Pts[j]
			pt.X = math.Max(-MaxCoord, math.Min(MaxCoord, pt.X))
			pt.Y = math.Max(-MaxCoord, math.Min(MaxCoord, pt.Y))
		}
	}
}

type contour struct {
	pts    []domain.Point
	closed bool
}

// contours splits straight-edged commands at each MoveTo.
func contours(cmds []PathCmd) []contour {
	var out []contour
	for _, c := range cmds {
		switch c.Op {
		case MoveTo:
			out = append(out, contour{pts: []domain.Point{c.Pts[0]}})
		case LineTo:
			if len(out) == 0 {
				out = append(out, contour{})
			}
			out[len(out)-1].pts = append(out[len(out)-1].pts, c.Pts[0])
		case Close:
			if len(out) > 0 {
				out[len(out)-1].closed = true
			}
		}
	}
	return out
}

// clipPolygon is Sutherland-Hodgman against the four sides of the square.
func clipPolygon(pts []domain.Point) []domain.Point {
	for axis := 0; axis < 2; axis++ {
		for _, sign := range []float64{1, -1} {
			pts = clipSide(pts, axis, sign)
			if len(pts) == 0 {
				return nil
			}
		}
	}
	return pts
}

func coord(p domain.Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// clipSide keeps the part of the polygon where sign*coord <= MaxCoord.
func clipSide(in []domain.Point, axis int, sign float64) []domain.Point {
	inside := func(p domain.Point) bool { return sign*coord(p, axis) <= MaxCoord }
	bound := sign * MaxCoord
	cross := func(a, b domain.Point) domain.Point {
		ca, cb := coord(a, axis), coord(b, axis)
		t := (bound - ca) / (cb - ca)
		q := domain.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
		if axis == 0 {
			q.X = bound
		} else {
			q.Y = bound
		}
		return q
	}
	var out []domain.Point
	for i, cur := range in {
		prev := in[(i+len(in)-1)%len(in)]
		switch {
		case inside(cur):
			if !inside(prev) {
				out = append(out, cross(prev, cur))
			}
			out = append(out, cur)
		case inside(prev):
			out = append(out, cross(prev, cur))
		}
	}
	return out
}

// clipSegment is Liang-Barsky against the square.
func clipSegment(a, b domain.Point) (domain.Point, domain.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, a.X + MaxCoord},
		{dx, MaxCoord - a.X},
		{-dy, a.Y + MaxCoord},
		{dy, MaxCoord - a.Y},
	} {
		pp, q := e[0], e[1]
		if pp == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / pp
		if pp < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return domain.Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, domain.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}
