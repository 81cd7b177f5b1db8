/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package raster owns the pixel buffer of a single render pass and composites
// draw commands onto it with anti-aliased, non-zero winding fills and strokes.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"vecraster/internal/domain"
	"vecraster/internal/vector"
)

// State is the lifecycle position of a Canvas. It only moves forward.
type State uint8

const (
	Created State = iota
	Compositing
	Finalized
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Compositing:
		return "compositing"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// MaxPixels caps the canvas area (width*height) at 1 GiB of RGBA8 data.
const MaxPixels = 1 << 28

var (
	ErrAllocation = errors.New("canvas allocation failed")
	ErrFinalized  = errors.New("canvas is finalized")
)

// Background is the fixed canvas clear colour.
var Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Stats counts what Apply did, per outcome.
type Stats struct {
	Commands int // every Apply call that succeeded
	Fills    int
	Strokes  int
	Text     int // text commands skipped with a diagnostic
	Empty    int // commands without geometry, e.g. empty polygons
	Culled   int // commands entirely outside the canvas
}

// Canvas is a width x height RGBA8 buffer. It is not safe for concurrent use:
// one render pass owns it exclusively.
type Canvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	stroker *rasterx.Stroker
	state   State
	stats   Stats
	log     *slog.Logger
}

// NewCanvas allocates a canvas cleared to opaque white. A nil logger falls
// back to slog.Default.
func NewCanvas(w, h int, l *slog.Logger) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrAllocation, w, h)
	}
	if int64(w)*int64(h) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, w, h, MaxPixels)
	}
	if l == nil {
		l = slog.Default()
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Canvas{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(w, h, scanner),
		stroker: rasterx.NewStroker(w, h, scanner),
		log:     l,
	}, nil
}

func (c *Canvas) Width() int   { return c.img.Bounds().Dx() }
func (c *Canvas) Height() int  { return c.img.Bounds().Dy() }
func (c *Canvas) State() State { return c.state }
func (c *Canvas) Stats() Stats { return c.stats }

func (c *Canvas) bounds() vector.Rect {
	return vector.Rect{W: float64(c.Width()), H: float64(c.Height())}
}

// Apply composites one command on top of the current pixels: the fill first,
// then the stroke of the same outline. Text commands only log a diagnostic.
func (c *Canvas) Apply(cmd domain.DrawCommand) error {
	if c.state == Finalized {
		return ErrFinalized
	}
	c.state = Compositing

	var (
		fill   *domain.Color
		stroke *domain.Stroke
	)
	switch v := cmd.(type) {
	case domain.Circle:
		fill, stroke = v.Fill, v.Stroke
	case domain.Line:
		stroke = v.Stroke
	case domain.Rectangle:
		fill, stroke = v.Fill, v.Stroke
	case domain.Polygon:
		fill, stroke = v.Fill, v.Stroke
	case domain.Text:
		c.log.Warn("text rendering not implemented",
			slog.String("content", v.Content),
			slog.Float64("x", v.Position.X),
			slog.Float64("y", v.Position.Y))
		c.stats.Text++
		c.stats.Commands++
		return nil
	default:
		panic(fmt.Sprintf("raster: unknown draw command %T", cmd))
	}

	path, err := vector.Build(cmd)
	if err != nil {
		return err
	}
	if path == nil {
		c.stats.Empty++
		c.stats.Commands++
		return nil
	}
	// Resolve the stroke before touching pixels so a bad stroke leaves the
	// command without any partial fill.
	strokePaint, style, doStroke, err := vector.ResolveStroke(stroke)
	if err != nil {
		return fmt.Errorf("%s: %w", domain.Kind(cmd), err)
	}
	// One pixel of anti-aliasing spill, plus whatever the stroke adds.
	reach := 1.0
	if doStroke {
		reach += style.Reach()
	}
	if path.Bounds().Inset(-reach, -reach).Intersect(c.bounds()).Empty() {
		c.stats.Culled++
		c.stats.Commands++
		return nil
	}
	if paint, ok := vector.ResolveFill(fill); ok {
		c.fill(path, paint)
	}
	if doStroke {
		c.stroke(path, strokePaint, style)
	}
	c.log.Debug("composited",
		slog.String("shape", domain.Kind(cmd)),
		slog.Bool("fill", fill != nil),
		slog.Bool("stroke", doStroke),
		slog.Any("bounds", path.Bounds()))
	c.stats.Commands++
	return nil
}

// Finalize ends compositing and hands out the pixel buffer. The canvas
// rejects further commands afterwards.
func (c *Canvas) Finalize() *image.RGBA {
	c.state = Finalized
	return c.img
}

func (c *Canvas) fill(p *vector.Path, paint vector.Paint) {
	c.filler.Clear()
	c.filler.SetWinding(true)
	c.filler.SetColor(toNRGBA(paint.Color))
	addPath(c.filler, p)
	c.filler.Draw()
	c.filler.Clear()
	c.stats.Fills++
}

func (c *Canvas) stroke(p *vector.Path, paint vector.Paint, st vector.StrokeStyle) {
	c.stroker.Clear()
	// Butt caps and miter joins; FlatGap bevels joins past the miter limit.
	c.stroker.SetStroke(toFixed(st.Width), toFixed(st.MiterLim), rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.Miter)
	c.stroker.SetColor(toNRGBA(paint.Color))
	addPath(c.stroker, p)
	c.stroker.Draw()
	c.stroker.Clear()
	c.stats.Strokes++
}

// addPath replays p into a rasterx adder. Open paths are stopped without
// closing so strokes receive end caps.
func addPath(a rasterx.Adder, p *vector.Path) {
	closed := false
	for _, cmd := range p.Cmds {
		switch cmd.Op {
		case vector.MoveTo:
			a.Start(toFixedP(cmd.Pts[0]))
			closed = false
		case vector.LineTo:
			a.Line(toFixedP(cmd.Pts[0]))
		case vector.CubicTo:
			a.CubeBezier(toFixedP(cmd.Pts[0]), toFixedP(cmd.Pts[1]), toFixedP(cmd.Pts[2]))
		case vector.Close:
			a.Stop(true)
			closed = true
		}
	}
	if !closed {
		a.Stop(false)
	}
}

func toNRGBA(c domain.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func toFixedP(p domain.Point) fixed.Point26_6 { return rasterx.ToFixedP(p.X, p.Y) }
