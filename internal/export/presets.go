/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"strings"
)

// PresetName represents a named bundle of output formats.
type PresetName string

const (
	PresetWeb     PresetName = "web"
	PresetPrint   PresetName = "print"
	PresetArchive PresetName = "archive"
)

// printDPI maps canvas pixels to a 300 dpi page in print PDFs.
const printDPI = 300

// PresetSinks returns the sinks a preset writes, in write order.
func PresetSinks(p PresetName, title string) ([]Sink, error) {
	switch PresetName(strings.ToLower(string(p))) {
	case PresetWeb:
		return []Sink{PNGSink{}}, nil
	case PresetPrint:
		return []Sink{PDFSink{DPI: printDPI, Title: title}, PNGSink{}}, nil
	case PresetArchive:
		return []Sink{TIFFSink{}, PNGSink{}}, nil
	default:
		return nil, fmt.Errorf("%w: preset %q", ErrUnknownFormat, p)
	}
}

// WriteBatch writes img once per sink next to base, swapping the extension
// for each format. It returns the written paths. The first failure stops the
// batch; files already written stay in place.
func WriteBatch(base string, img image.Image, sinks []Sink) ([]string, error) {
	out := make([]string, 0, len(sinks))
	for _, s := range sinks {
		p := WithExt(base, s)
		if err := WriteFile(p, img, s); err != nil {
			return out, fmt.Errorf("%s: %w", s.Format(), err)
		}
		out = append(out, p)
	}
	return out, nil
}
