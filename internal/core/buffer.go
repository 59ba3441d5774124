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

// Package core provides small runtime helpers shared by the spill readers
// and writers.
package core

import (
	"bytes"
	"sync"
)

var pool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// PooledBuffer is a bytes.Buffer drawn from a process-wide pool so hot
// read loops do not allocate one per record. Close returns the buffer to
// the pool; the PooledBuffer must not be used afterwards.
type PooledBuffer struct {
	*bytes.Buffer
}

// NewPooledBuffer draws a reset buffer from the pool.
func NewPooledBuffer() *PooledBuffer {
	b, _ := pool.Get().(*bytes.Buffer)
	b.Reset()

	return &PooledBuffer{Buffer: b}
}

// Close returns the underlying buffer to the pool.
func (b *PooledBuffer) Close() error {
	pool.Put(b.Buffer)
	b.Buffer = nil

	return nil
}
