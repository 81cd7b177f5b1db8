/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// PNGSink writes lossless PNG. Level zero means png.DefaultCompression.
type PNGSink struct {
	Level png.CompressionLevel
}

func (PNGSink) Format() Format { return PNG }
func (PNGSink) Ext() string    { return ".png" }

func (s PNGSink) Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: s.Level}
	return enc.Encode(w, img)
}

// BMPSink writes uncompressed 32-bit BMP.
type BMPSink struct{}

func (BMPSink) Format() Format { return BMP }
func (BMPSink) Ext() string    { return ".bmp" }

func (BMPSink) Encode(w io.Writer, img image.Image) error { return bmp.Encode(w, img) }

// TIFFSink writes deflate-compressed TIFF with a horizontal predictor.
type TIFFSink struct{}

func (TIFFSink) Format() Format { return TIFF }
func (TIFFSink) Ext() string    { return ".tiff" }

func (TIFFSink) Encode(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
