/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// pdfEpoch pins the document dates so identical images produce
// identical files.
var pdfEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// PDFSink wraps the image in a single-page PDF. The page is sized in points
// so that one pixel maps to 72/DPI points; DPI <= 0 means 72 (1px = 1pt).
type PDFSink struct {
	DPI   float64
	Title string
}

func (PDFSink) Format() Format { return PDF }
func (PDFSink) Ext() string    { return ".pdf" }

func (s PDFSink) Encode(w io.Writer, img image.Image) error {
	dpi := s.DPI
	if dpi <= 0 {
		dpi = 72
	}
	b := img.Bounds()
	scale := 72.0 / dpi
	pw := float64(b.Dx()) * scale
	ph := float64(b.Dy()) * scale

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("embed png: %w", err)
	}

	// Use points for 1:1 mapping from canvas pixels to page units
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCreator("vecraster", false)
	if s.Title != "" {
		pdf.SetTitle(s.Title, true)
	}
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &buf)
	pdf.ImageOptions("canvas", 0, 0, pw, ph, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
