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

	"m4o.io/osmsort/model"
)

// Stats summarizes a scanned object stream.
type Stats struct {
	Nodes     int64
	Ways      int64
	Relations int64

	// Sorted reports whether the stream was sorted under the ordering it
	// was checked against.
	Sorted bool

	// BoundingBox covers all scanned nodes; nil when the stream has none.
	BoundingBox *model.BoundingBox
}

// Total returns the number of scanned objects.
func (st Stats) Total() int64 {
	return st.Nodes + st.Ways + st.Relations
}

// Check scans a stream until it is closed, tallying objects per element
// type and verifying that the stream is sorted under the given ordering.
func Check(ctx context.Context, in <-chan model.Object, ordering Ordering) (Stats, error) {
	less := ordering.Less()
	stats := Stats{Sorted: true}

	var prev model.Object

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case o, ok := <-in:
			if !ok {
				return stats, nil
			}

			switch v := o.(type) {
			case model.Node:
				stats.Nodes++

				if stats.BoundingBox == nil {
					stats.BoundingBox = model.InitialBoundingBox()
				}

				stats.BoundingBox.ExpandWithLatLng(v.Lat, v.Lon)
			case model.Way:
				stats.Ways++
			case model.Relation:
				stats.Relations++
			}

			if prev != nil && less(o, prev) {
				stats.Sorted = false
			}

			prev = o
		}
	}
}
