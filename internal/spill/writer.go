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
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/osmsort/model"
)

// magic identifies spill run files; it is followed by one byte naming the
// compression codec the rest of the file is packed with.
const magic = "OSR1"

// Writer writes one run of objects to a spill stream. Writers are not safe
// for concurrent use.
type Writer struct {
	closer io.Closer // underlying file, when owned
	pkr    io.WriteCloser

	buf  []byte
	size []byte

	n int64
}

// NewWriter starts a spill stream on w, packed with the given codec. The
// caller remains responsible for closing w.
func NewWriter(w io.Writer, c Compression) (*Writer, error) {
	hdr := append([]byte(magic), byte(c))
	if _, err := w.Write(hdr); err != nil {
		return nil, fmt.Errorf("spill: cannot write run header: %w", err)
	}

	pkr, err := newPacker(w, c)
	if err != nil {
		return nil, err
	}

	return &Writer{pkr: pkr}, nil
}

// Create opens a new spill file at path, packed with the given codec.
func Create(path string, c Compression) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("spill: cannot create run file: %w", err)
	}

	w, err := NewWriter(f, c)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	w.closer = f

	return w, nil
}

// Write appends one length-prefixed record to the run.
func (w *Writer) Write(o model.Object) error {
	w.buf = AppendObject(w.buf[:0], o)
	w.size = protowire.AppendVarint(w.size[:0], uint64(len(w.buf)))

	if _, err := w.pkr.Write(w.size); err != nil {
		return fmt.Errorf("spill: cannot write record size: %w", err)
	}

	if _, err := w.pkr.Write(w.buf); err != nil {
		return fmt.Errorf("spill: cannot write record: %w", err)
	}

	w.n++

	return nil
}

// Len returns the number of objects written so far.
func (w *Writer) Len() int64 { return w.n }

// Close flushes the codec, and closes the underlying file when the writer
// owns one.
func (w *Writer) Close() error {
	err := w.pkr.Close()

	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}

	if err != nil {
		return fmt.Errorf("spill: cannot close run: %w", err)
	}

	return nil
}
