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

// Package osmsort sorts, merges, and deduplicates arbitrarily large streams
// of OpenStreetMap objects. Input is split into runs that are sorted in
// memory and spilled to compressed temporary files, then merged back with a
// k-way merge driven by the comparison kernels in package compare.
package osmsort

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/destel/rill"

	"m4o.io/osmsort/internal/spill"
	"m4o.io/osmsort/model"
)

// ErrInvalidRunSize is returned when a sorter is configured with a
// non-positive run size.
var ErrInvalidRunSize = fmt.Errorf("osmsort: run size must be positive")

// Sorter sorts object streams under a configured ordering. A Sorter is
// stateless between Sort calls and may be reused.
type Sorter struct {
	cfg sorterOptions
}

// NewSorter returns a new sorter, configured with options.
func NewSorter(opts ...SorterOption) (*Sorter, error) {
	cfg := defaultSorterConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.maxPerRun < 1 {
		return nil, ErrInvalidRunSize
	}

	if cfg.nCPU < 1 {
		cfg.nCPU = 1
	}

	if err := initializeTempStore(&cfg); err != nil {
		return nil, err
	}

	return &Sorter{cfg: cfg}, nil
}

// Ordering returns the ordering the sorter was configured with.
func (s *Sorter) Ordering() Ordering { return s.cfg.ordering }

// Sort consumes in until it is closed and emits the objects in sorted order.
// A failure surfaces as the stream's final element carrying the error.
// Cancelling ctx abandons the sort; the output channel is always closed.
func (s *Sorter) Sort(ctx context.Context, in <-chan model.Object) <-chan rill.Try[model.Object] {
	out := make(chan rill.Try[model.Object])

	go func() {
		defer close(out)

		paths, err := s.spillRuns(ctx, in)

		defer s.cleanup(paths)

		if err != nil {
			out <- rill.Try[model.Object]{Error: err}

			return
		}

		if err = s.mergeRuns(ctx, paths, out); err != nil {
			out <- rill.Try[model.Object]{Error: err}
		}
	}()

	return out
}

// spillRuns batches the input into runs, sorts the runs concurrently, and
// spills each to its own file in the store. It returns the run file paths.
func (s *Sorter) spillRuns(ctx context.Context, in <-chan model.Object) ([]string, error) {
	// the store may have been cleaned up by a previous Sort
	if err := os.MkdirAll(s.cfg.store, 0o750); err != nil {
		return nil, fmt.Errorf("cannot create run store: %w", err)
	}

	runs := make(chan rill.Try[[]model.Object])

	go func() {
		defer close(runs)

		run := make([]model.Object, 0, s.cfg.maxPerRun)

		for {
			select {
			case <-ctx.Done():
				runs <- rill.Try[[]model.Object]{Error: ctx.Err()}

				return
			case o, ok := <-in:
				if !ok {
					if len(run) > 0 {
						runs <- rill.Try[[]model.Object]{Value: run}
					}

					return
				}

				run = append(run, o)

				if len(run) == s.cfg.maxPerRun {
					runs <- rill.Try[[]model.Object]{Value: run}
					run = make([]model.Object, 0, s.cfg.maxPerRun)
				}
			}
		}
	}()

	cmp := s.cfg.ordering.Compare()

	var seq atomic.Int64

	spilled := rill.OrderedMap(runs, int(s.cfg.nCPU), func(run []model.Object) (string, error) {
		sort.Slice(run, func(i, j int) bool { return cmp(run[i], run[j]) < 0 })

		path := filepath.Join(s.cfg.store, fmt.Sprintf("run-%06d.spill", seq.Add(1)))

		return path, s.spill(path, run)
	})

	return rill.ToSlice(spilled)
}

// spill writes one sorted run to path.
func (s *Sorter) spill(path string, run []model.Object) error {
	w, err := spill.Create(path, s.cfg.compression)
	if err != nil {
		return err
	}

	for _, o := range run {
		if err = w.Write(o); err != nil {
			_ = w.Close()

			return err
		}
	}

	return w.Close()
}

// cleanup removes the spilled runs, and the store itself when the sorter
// created it.
func (s *Sorter) cleanup(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("unable to remove spilled run", "path", path, "error", err)
		}
	}

	if s.cfg.ownsStore {
		if err := os.RemoveAll(s.cfg.store); err != nil {
			slog.Warn("unable to remove run store", "path", s.cfg.store, "error", err)
		}
	}
}
