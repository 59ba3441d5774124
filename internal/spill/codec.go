// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package spill reads and writes runs of OSM objects in the compact
// length-prefixed wire format the sorter spills to disk between the run
// and merge phases.
package spill

import (
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"
)

// Compression selects the codec run files are written with.
type Compression int32

const (
	// RAW leaves runs uncompressed.
	RAW Compression = iota

	// ZLIB compresses runs with zlib.
	ZLIB

	// LZMA compresses runs with LZMA.
	LZMA

	// LZ4 compresses runs with LZ4.
	LZ4

	// ZSTD compresses runs with Zstandard.
	ZSTD
)

// DefaultCompression is the codec used when none is configured.
const DefaultCompression = ZLIB

// ErrUnknownCompression is returned for a Compression value outside the
// supported set.
var ErrUnknownCompression = errors.New("spill: unknown compression type")

func (c Compression) String() string {
	switch c {
	case RAW:
		return "raw"
	case ZLIB:
		return "zlib"
	case LZMA:
		return "lzma"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseCompression converts a codec name, as printed by String, back into a
// Compression.
func ParseCompression(s string) (Compression, error) {
	for _, c := range []Compression{RAW, ZLIB, LZMA, LZ4, ZSTD} {
		if c.String() == s {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

type nopCloserWriter struct {
	io.Writer
}

func (nopCloserWriter) Close() error { return nil }

// newPacker wraps w with the codec's compressing writer. Closing the
// returned writer flushes the codec but not w.
func newPacker(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case RAW:
		return nopCloserWriter{w}, nil
	case ZLIB:
		return zlib.NewWriter(w), nil
	case LZMA:
		return lzma.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	case ZSTD:
		return zstd.NewWriter(w)
	default:
		return nil, ErrUnknownCompression
	}
}

// newUnpacker wraps r with the codec's decompressing reader. The returned
// release func frees codec resources and must be called when reading stops.
func newUnpacker(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case RAW:
		return r, func() {}, nil
	case ZLIB:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, nil, err
		}

		return zr, func() { _ = zr.Close() }, nil
	case LZMA:
		lr, err := lzma.NewReader(r)
		if err != nil {
			return nil, nil, err
		}

		return lr, func() {}, nil
	case LZ4:
		return lz4.NewReader(r), func() {}, nil
	case ZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}

		return zr.IOReadCloser(), zr.Close, nil
	default:
		return nil, nil, ErrUnknownCompression
	}
}
