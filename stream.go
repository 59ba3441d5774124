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
	"context"
	"errors"
	"io"

	"github.com/destel/rill"

	"m4o.io/osmsort/compare"
	"m4o.io/osmsort/model"
)

// ObjectSource yields objects one at a time, returning io.EOF once the
// source is exhausted.
type ObjectSource interface {
	Next() (model.Object, error)
}

// Feed drains src into the returned object channel, which is closed once the
// source is exhausted, fails, or ctx is cancelled. The error channel is
// closed after the object channel and yields the failure, or nil when the
// source was fully drained. The caller must consume the object channel.
func Feed(ctx context.Context, src ObjectSource) (<-chan model.Object, <-chan error) {
	out := make(chan model.Object)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(out)

		for {
			o, err := src.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				errc <- err

				return
			}

			select {
			case <-ctx.Done():
				errc <- ctx.Err()

				return
			case out <- o:
			}
		}
	}()

	return out, errc
}

// filterAdjacent forwards the stream, dropping every object for which
// drop(prev, cur) holds, where prev is the last forwarded object. Errors
// pass through untouched.
func filterAdjacent(
	in <-chan rill.Try[model.Object],
	drop func(prev, cur model.Object) bool,
) <-chan rill.Try[model.Object] {
	out := make(chan rill.Try[model.Object])

	go func() {
		defer close(out)

		var prev model.Object

		for t := range in {
			if t.Error != nil {
				out <- t

				continue
			}

			if prev != nil && drop(prev, t.Value) {
				continue
			}

			prev = t.Value
			out <- t
		}
	}()

	return out
}

// Dedup drops exact duplicate edits from a stream sorted under any of the
// orderings, keeping the first occurrence of each (type, ID, version).
func Dedup(in <-chan rill.Try[model.Object]) <-chan rill.Try[model.Object] {
	return filterAdjacent(in, compare.EqualTypeIDVersion)
}

// Latest keeps only the first object of every (type, ID) group. The input
// must be sorted under TypeIDReverseVersion, so that the first object of
// each group is the element's latest version; the result is the current
// state extracted from a full edit history in a single pass.
func Latest(in <-chan rill.Try[model.Object]) <-chan rill.Try[model.Object] {
	return filterAdjacent(in, compare.EqualTypeID)
}
