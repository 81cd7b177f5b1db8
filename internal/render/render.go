/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render is the entry point of vecraster: it owns one canvas per call,
// applies the draw commands in order and hands the finished buffer to an
// output sink. Every failure aborts the whole call and nothing is written.
package render

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"vecraster/internal/domain"
	"vecraster/internal/export"
	applog "vecraster/internal/log"
	"vecraster/internal/raster"
	"vecraster/internal/vector"
)

// Renderer renders command lists onto a fixed-size canvas and writes the
// result to Dest. It holds no state between calls and is safe to use from
// several goroutines with independent command lists.
type Renderer struct {
	Width  int
	Height int
	Dest   string

	sink export.Sink
	log  *slog.Logger
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithSink fixes the output encoding instead of deriving it from Dest.
func WithSink(s export.Sink) Option { return func(r *Renderer) { r.sink = s } }

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option { return func(r *Renderer) { r.log = l } }

// New returns a renderer for a width x height canvas written to dest.
func New(width, height int, dest string, opts ...Option) *Renderer {
	r := &Renderer{Width: width, Height: height, Dest: dest}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = applog.WithComponent("render")
	}
	return r
}

// Result summarizes a successful render.
type Result struct {
	Width    int
	Height   int
	Output   string
	Format   export.Format
	Commands int
	Drawn    int // commands that produced geometry
	Text     int // text commands skipped
	Empty    int // commands without geometry
	Elapsed  time.Duration
}

// Render composites commands and writes the image to r.Dest.
func (r *Renderer) Render(ctx context.Context, commands []domain.DrawCommand) (*Result, error) {
	start := time.Now()
	sink := r.sink
	if sink == nil {
		s, err := export.SinkFor(r.Dest)
		if err != nil {
			return nil, &Error{Kind: OutputEncodingFailed, Index: -1, Err: err}
		}
		sink = s
	}

	img, stats, err := r.composite(ctx, commands)
	if err != nil {
		return nil, err
	}
	if err := export.WriteFile(r.Dest, img, sink); err != nil {
		r.log.ErrorContext(ctx, "output failed", slog.String("dest", r.Dest), slog.Any("err", err))
		return nil, &Error{Kind: OutputEncodingFailed, Index: -1, Err: err}
	}

	res := &Result{
		Width:    r.Width,
		Height:   r.Height,
		Output:   r.Dest,
		Format:   sink.Format(),
		Commands: stats.Commands,
		Drawn:    stats.Commands - stats.Text - stats.Empty,
		Text:     stats.Text,
		Empty:    stats.Empty,
		Elapsed:  time.Since(start),
	}
	r.log.InfoContext(ctx, "render complete",
		slog.String("dest", res.Output),
		slog.String("format", string(res.Format)),
		slog.Int("commands", res.Commands),
		slog.Duration("elapsed", res.Elapsed))
	return res, nil
}

// RenderImage composites commands and returns the finalized buffer without
// writing anything.
func (r *Renderer) RenderImage(ctx context.Context, commands []domain.DrawCommand) (*image.RGBA, error) {
	img, _, err := r.composite(ctx, commands)
	return img, err
}

func (r *Renderer) composite(ctx context.Context, commands []domain.DrawCommand) (*image.RGBA, raster.Stats, error) {
	c, err := raster.NewCanvas(r.Width, r.Height, r.log)
	if err != nil {
		return nil, raster.Stats{}, &Error{Kind: CanvasAllocationFailed, Index: -1, Err: err}
	}
	r.log.DebugContext(ctx, "canvas allocated", slog.Int("width", r.Width), slog.Int("height", r.Height), slog.Int("commands", len(commands)))
	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return nil, raster.Stats{}, &Error{Kind: Aborted, Index: i, Shape: domain.Kind(cmd), Err: err}
		}
		if err := c.Apply(cmd); err != nil {
			e := &Error{Kind: PathConstructionFailed, Index: i, Shape: domain.Kind(cmd), Err: err}
			if errors.Is(err, vector.ErrStrokeConstruction) {
				e.Kind = StrokeConstructionFailed
			}
			r.log.ErrorContext(ctx, "render aborted", slog.Int("index", i), slog.String("shape", e.Shape), slog.Any("err", err))
			return nil, raster.Stats{}, e
		}
	}
	return c.Finalize(), c.Stats(), nil
}
