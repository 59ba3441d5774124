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

package osmsort

import (
	"container/heap"
	"context"
	"errors"
	"io"

	"github.com/destel/rill"

	"m4o.io/osmsort/internal/spill"
	"m4o.io/osmsort/model"
)

// mergeSource is one spilled run participating in the k-way merge, holding
// the run's current head object.
type mergeSource struct {
	obj model.Object
	rdr *spill.Reader
	idx int
}

type mergeHeap struct {
	cmp   func(a, b model.Object) int
	items []*mergeSource
}

func (h *mergeHeap) Len() int { return len(h.items) }

func (h *mergeHeap) Less(i, j int) bool {
	if c := h.cmp(h.items[i].obj, h.items[j].obj); c != 0 {
		return c < 0
	}

	// order-equivalent heads resolve by run index, keeping the merge stable
	return h.items[i].idx < h.items[j].idx
}

func (h *mergeHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *mergeHeap) Push(x any) {
	h.items = append(h.items, x.(*mergeSource))
}

func (h *mergeHeap) Pop() any {
	last := len(h.items) - 1
	src := h.items[last]
	h.items[last] = nil
	h.items = h.items[:last]

	return src
}

// mergeRuns streams the spilled runs through a k-way merge, emitting the
// globally sorted sequence on out.
func (s *Sorter) mergeRuns(ctx context.Context, paths []string, out chan<- rill.Try[model.Object]) error {
	readers := make([]*spill.Reader, 0, len(paths))

	defer func() {
		for _, r := range readers {
			_ = r.Close()
		}
	}()

	h := &mergeHeap{cmp: s.cfg.ordering.Compare()}

	for i, path := range paths {
		r, err := spill.Open(path)
		if err != nil {
			return err
		}

		readers = append(readers, r)

		o, err := r.Next()
		if errors.Is(err, io.EOF) {
			continue
		}

		if err != nil {
			return err
		}

		h.items = append(h.items, &mergeSource{obj: o, rdr: r, idx: i})
	}

	heap.Init(h)

	for h.Len() > 0 {
		src := h.items[0]

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- rill.Try[model.Object]{Value: src.obj}:
		}

		o, err := src.rdr.Next()

		switch {
		case errors.Is(err, io.EOF):
			heap.Pop(h)
		case err != nil:
			return err
		default:
			src.obj = o
			heap.Fix(h, 0)
		}
	}

	return nil
}
