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
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"

	"brandgen/internal/raster"
)

// ErrInvalidDimensions is returned when a framebuffer cannot form a valid image.
var ErrInvalidDimensions = errors.New("invalid dimensions: width and height must be positive")

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	bitDepth8         = 8
	colorTypeRGBAlpha = 6
	filterNone        = 0
	bytesPerPixel     = 4
)

// CompressionLevel selects the deflate effort. The zero value is the
// default level.
type CompressionLevel int

const (
	DefaultCompression CompressionLevel = 0
	NoCompression      CompressionLevel = -1
	BestSpeed          CompressionLevel = -2
	BestCompression    CompressionLevel = -3
)

func (l CompressionLevel) zlibLevel() int {
	switch l {
	case NoCompression:
		return zlib.NoCompression
	case BestSpeed:
		return zlib.BestSpeed
	case BestCompression:
		return zlib.BestCompression
	default:
		return zlib.DefaultCompression
	}
}

// PNGEncoder writes framebuffers as 8-bit truecolor+alpha PNG files with a
// single IDAT chunk and no row filtering.
type PNGEncoder struct {
	CompressionLevel CompressionLevel
}

// EncodePNG encodes fb at the default compression level.
func EncodePNG(fb *raster.Framebuffer) ([]byte, error) {
	var buf bytes.Buffer
	if err := (&PNGEncoder{}).Encode(&buf, fb); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode validates fb and writes the complete PNG stream to w. Nothing is
// written when validation fails.
func (e *PNGEncoder) Encode(w io.Writer, fb *raster.Framebuffer) error {
	if err := checkDimensions(fb); err != nil {
		return err
	}
	idat, err := e.compress(scanlines(fb))
	if err != nil {
		return fmt.Errorf("compress image data: %w", err)
	}

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(fb.Width()))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(fb.Height()))
	ihdr[8] = bitDepth8
	ihdr[9] = colorTypeRGBAlpha
	// compression, filter and interlace methods stay 0

	cw := &chunkWriter{w: w}
	cw.raw(pngSignature)
	cw.chunk("IHDR", ihdr[:])
	cw.chunk("IDAT", idat)
	cw.chunk("IEND", nil)
	return cw.err
}

func checkDimensions(fb *raster.Framebuffer) error {
	if fb == nil {
		return fmt.Errorf("%w: nil framebuffer", ErrInvalidDimensions)
	}
	w, h := fb.Width(), fb.Height()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, w, h)
	}
	if w > math.MaxInt32 || h > math.MaxInt32 {
		return fmt.Errorf("%w: %dx%d exceeds the format limit", ErrInvalidDimensions, w, h)
	}
	if fb.Len() != w*h {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidDimensions, fb.Len(), w, h)
	}
	return nil
}

// scanlines serialises every row as a filter-type byte followed by RGBA bytes.
func scanlines(fb *raster.Framebuffer) []byte {
	stride := 1 + fb.Width()*bytesPerPixel
	raw := make([]byte, 0, stride*fb.Height())
	for y := 0; y < fb.Height(); y++ {
		raw = append(raw, filterNone)
		for _, c := range fb.Row(y) {
			raw = append(raw, raster.ToByte(c.R), raster.ToByte(c.G), raster.ToByte(c.B), raster.ToByte(c.A))
		}
	}
	return raw
}

func (e *PNGEncoder) compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, e.CompressionLevel.zlibLevel())
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// chunkWriter emits length | type | payload | crc32(type+payload) records
// and remembers the first write error.
type chunkWriter struct {
	w   io.Writer
	err error
}

func (cw *chunkWriter) raw(b []byte) {
	if cw.err != nil {
		return
	}
	_, cw.err = cw.w.Write(b)
}

func (cw *chunkWriter) chunk(tag string, payload []byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(payload)))
	copy(hdr[4:8], tag)

	crc := crc32.NewIEEE()
	_, _ = crc.Write(hdr[4:8])
	_, _ = crc.Write(payload)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())

	cw.raw(hdr[:])
	cw.raw(payload)
	cw.raw(sum[:])
}
