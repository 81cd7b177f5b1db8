/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export turns a finalized canvas into a file on disk. Each output
// format is a Sink; WriteFile encodes in memory first so a failed encode never
// leaves a partial artefact at the destination.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// ErrUnknownFormat is returned when no sink matches a name or extension.
var ErrUnknownFormat = errors.New("unknown output format")

// Sink encodes an image in one format.
type Sink interface {
	Format() Format
	// Ext is the canonical file extension including the dot.
	Ext() string
	Encode(w io.Writer, img image.Image) error
}

var extensions = map[string]Format{
	".png":  PNG,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".pdf":  PDF,
}

// ForFormat returns the default sink for a format name such as "png" or "PDF".
func ForFormat(name string) (Sink, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case PNG:
		return PNGSink{}, nil
	case BMP:
		return BMPSink{}, nil
	case TIFF, "tif":
		return TIFFSink{}, nil
	case PDF:
		return PDFSink{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// SinkFor picks a sink from the extension of path.
func SinkFor(path string) (Sink, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: extension %q of %s", ErrUnknownFormat, ext, path)
	}
	return ForFormat(string(f))
}

// Formats lists the supported format names in sorted order.
func Formats() []string {
	seen := map[Format]bool{}
	var out []string
	for _, f := range extensions {
		if !seen[f] {
			seen[f] = true
			out = append(out, string(f))
		}
	}
	sort.Strings(out)
	return out
}

// WithExt replaces the extension of path with the sink's one.
func WithExt(path string, s Sink) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + s.Ext()
}
