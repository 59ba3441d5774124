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

package spill

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"m4o.io/osmsort/internal/core"
	"m4o.io/osmsort/model"
)

const readBufferSize = 64 * 1024

// ErrBadMagic is returned when a file is not a spill run file.
var ErrBadMagic = errors.New("spill: bad magic, not a spill run file")

// Reader streams objects back from a spill stream in write order. Readers
// are not safe for concurrent use.
type Reader struct {
	closer  io.Closer // underlying file, when owned
	rdr     *bufio.Reader
	buf     *core.PooledBuffer
	release func()
}

// NewReader reads a spill stream from r, detecting the codec from the
// stream header. The caller remains responsible for closing r.
func NewReader(r io.Reader) (*Reader, error) {
	hdr := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("spill: cannot read run header: %w", err)
	}

	if string(hdr[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}

	unp, release, err := newUnpacker(r, Compression(hdr[len(magic)]))
	if err != nil {
		return nil, err
	}

	return &Reader{
		rdr:     bufio.NewReaderSize(unp, readBufferSize),
		buf:     core.NewPooledBuffer(),
		release: release,
	}, nil
}

// Open opens the spill file at path, detecting the codec from its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spill: cannot open run file: %w", err)
	}

	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	r.closer = f

	return r, nil
}

// Next returns the next object in the run, or io.EOF after the last one.
func (r *Reader) Next() (model.Object, error) {
	size, err := binary.ReadUvarint(r.rdr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("spill: cannot read record size: %w", err)
	}

	r.buf.Reset()

	if _, err = io.CopyN(r.buf, r.rdr, int64(size)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, fmt.Errorf("spill: cannot read record: %w", err)
	}

	return DecodeObject(r.buf.Bytes())
}

// Close releases the codec, and closes the underlying file when the reader
// owns one.
func (r *Reader) Close() error {
	r.release()
	_ = r.buf.Close()

	if r.closer != nil {
		if err := r.closer.Close(); err != nil {
			return fmt.Errorf("spill: cannot close run file: %w", err)
		}
	}

	return nil
}
