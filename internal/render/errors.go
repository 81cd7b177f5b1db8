/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"errors"
	"fmt"
)

// Kind classifies why a render call failed.
type Kind uint8

const (
	CanvasAllocationFailed Kind = iota + 1
	PathConstructionFailed
	StrokeConstructionFailed
	OutputEncodingFailed
	Aborted
)

func (k Kind) String() string {
	switch k {
	case CanvasAllocationFailed:
		return "canvas allocation failed"
	case PathConstructionFailed:
		return "path construction failed"
	case StrokeConstructionFailed:
		return "stroke construction failed"
	case OutputEncodingFailed:
		return "output encoding failed"
	case Aborted:
		return "render aborted"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Sentinels for errors.Is. Each matches every *Error of the same Kind.
var (
	ErrCanvasAllocation   = &Error{Kind: CanvasAllocationFailed, Index: -1}
	ErrPathConstruction   = &Error{Kind: PathConstructionFailed, Index: -1}
	ErrStrokeConstruction = &Error{Kind: StrokeConstructionFailed, Index: -1}
	ErrOutputEncoding     = &Error{Kind: OutputEncodingFailed, Index: -1}
	ErrAborted            = &Error{Kind: Aborted, Index: -1}
)

// Error is the single failure a render call reports. Index and Shape locate
// the offending command; Index is -1 when no command was involved.
type Error struct {
	Kind  Kind
	Index int
	Shape string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s at command %d (%s)", msg, e.Index, e.Shape)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by Kind, so the package sentinels work with
// errors.Is regardless of index or cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf reports the Kind of err, or zero when err is not a render error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
