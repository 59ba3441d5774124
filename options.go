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
	"fmt"
	"os"
	"runtime"

	"m4o.io/osmsort/compare"
	"m4o.io/osmsort/internal/spill"
	"m4o.io/osmsort/model"
)

// DefaultMaxPerRun is the default number of objects sorted in memory before
// a run is spilled to disk.
const DefaultMaxPerRun = 250_000

// DefaultNCpu provides the default number of CPUs used for sorting runs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// Ordering selects the comparison kernel used for sorting and merging.
type Ordering int

const (
	// TypeIDVersion orders by type, ID, version, then timestamp: the
	// canonical chronological order for full-history streams.
	TypeIDVersion Ordering = iota

	// TypeIDVersionNoTimestamp orders by type, ID, and version only, so
	// untrusted or missing timestamps cannot perturb the sort.
	TypeIDVersionNoTimestamp

	// TypeIDReverseVersion orders by type and ID with the highest version
	// of each element first; the order used for latest-version extraction.
	TypeIDReverseVersion
)

func (o Ordering) String() string {
	switch o {
	case TypeIDVersion:
		return "type-id-version"
	case TypeIDVersionNoTimestamp:
		return "type-id-version-no-timestamp"
	case TypeIDReverseVersion:
		return "type-id-reverse-version"
	default:
		return "unknown"
	}
}

// ParseOrdering converts an ordering name, as printed by String, back into
// an Ordering.
func ParseOrdering(s string) (Ordering, error) {
	for _, o := range []Ordering{TypeIDVersion, TypeIDVersionNoTimestamp, TypeIDReverseVersion} {
		if o.String() == s {
			return o, nil
		}
	}

	return 0, fmt.Errorf("unknown ordering %q", s)
}

// Compare returns the ordering's three-way comparison kernel.
func (o Ordering) Compare() func(a, b model.Object) int {
	switch o {
	case TypeIDVersion:
		return compare.CompareTypeIDVersion
	case TypeIDVersionNoTimestamp:
		return compare.CompareTypeIDVersionNoTimestamp
	case TypeIDReverseVersion:
		return compare.CompareTypeIDReverseVersion
	default:
		panic(fmt.Sprintf("osmsort: unknown ordering %d", o))
	}
}

// Less returns the ordering's strict less-than predicate.
func (o Ordering) Less() func(a, b model.Object) bool {
	cmp := o.Compare()

	return func(a, b model.Object) bool { return cmp(a, b) < 0 }
}

// sorterOptions provides optional configuration parameters for Sorter
// construction.
type sorterOptions struct {
	ordering    Ordering
	compression spill.Compression
	maxPerRun   int    // objects sorted in memory per spilled run
	nCPU        uint16 // the number of CPUs to use for sorting runs
	store       string // where spilled runs are kept
	ownsStore   bool   // the store was created by us and is removed after use
}

// SorterOption configures how we set up the sorter.
type SorterOption func(*sorterOptions)

// WithOrdering selects the ordering streams are sorted under. The default
// is TypeIDVersion.
func WithOrdering(o Ordering) SorterOption {
	return func(opts *sorterOptions) {
		opts.ordering = o
	}
}

// WithCompression specifies the compression codec used for spilled runs.
// The default is ZLIB.
func WithCompression(c spill.Compression) SorterOption {
	return func(opts *sorterOptions) {
		opts.compression = c
	}
}

// WithMaxPerRun lets you set how many objects are sorted in memory before a
// run is spilled to disk.
func WithMaxPerRun(n int) SorterOption {
	return func(opts *sorterOptions) {
		opts.maxPerRun = n
	}
}

// WithNCpus lets you set the number of CPUs to use for sorting runs.
func WithNCpus(n uint16) SorterOption {
	return func(opts *sorterOptions) {
		opts.nCPU = n
	}
}

// WithStorePath lets you specify where spilled runs are temporarily stored.
func WithStorePath(path string) SorterOption {
	return func(opts *sorterOptions) {
		opts.store = path
	}
}

// defaultSorterConfig provides a default configuration for sorters.
var defaultSorterConfig = sorterOptions{
	ordering:    TypeIDVersion,
	compression: spill.DefaultCompression,
	maxPerRun:   DefaultMaxPerRun,
	nCPU:        DefaultNCpu(),
}

// initializeTempStore creates the temporary directory spilled runs are kept
// in, unless the caller supplied one.
func initializeTempStore(o *sorterOptions) error {
	if o.store != "" {
		return nil
	}

	tmpdir, err := os.MkdirTemp("", "osmsort")
	if err != nil {
		return fmt.Errorf("cannot create temporary directory: %w", err)
	}

	o.store = tmpdir
	o.ownsStore = true

	return nil
}
