/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Styles and paint definitions.

import (
	"errors"
	"fmt"
	"math"

	"vecraster/internal/domain"
)

// Paint is a resolved solid colour. The rasterizer always fills with
// anti-aliasing and the non-zero winding rule.
type Paint struct {
	Color domain.Color
}

// StrokeStyle is the geometry of an outline: width in pixels and the miter
// limit. Caps are butt and joins are mitered.
type StrokeStyle struct {
	Width    float64
	MiterLim float64
}

// Reach is how far the stroke can paint beyond the outline, miter spikes
// included.
func (s StrokeStyle) Reach() float64 { return s.Width / 2 * math.Max(s.MiterLim, 1) }

// HairlineWidth is used for strokes of width zero.
const HairlineWidth = 1.0

const defaultMiterLimit = 4

// ErrStrokeConstruction reports a stroke width the rasterizer cannot use.
var ErrStrokeConstruction = errors.New("stroke construction failed")

func newPaint(c domain.Color) Paint {
	return Paint{Color: c}
}

// ResolveFill returns the paint for an optional fill. ok is false when the
// fill should be skipped.
func ResolveFill(fill *domain.Color) (p Paint, ok bool) {
	if fill == nil {
		return Paint{}, false
	}
	return newPaint(*fill), true
}

// ResolveStroke returns paint and geometry for an optional stroke. Only the
// presence of a colour enables stroking; a width without a colour does not.
func ResolveStroke(s *domain.Stroke) (Paint, StrokeStyle, bool, error) {
	if s == nil || s.Color == nil {
		return Paint{}, StrokeStyle{}, false, nil
	}
	w := s.Width
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return Paint{}, StrokeStyle{}, false, fmt.Errorf("%w: width %g", ErrStrokeConstruction, w)
	}
	// Wider strokes already cover any canvas the rasterizer can address.
	w = math.Min(w, MaxCoord)
	if w == 0 {
		w = HairlineWidth
	}
	st := StrokeStyle{Width: w, MiterLim: defaultMiterLimit}
	return newPaint(*s.Color), st, true, nil
}
