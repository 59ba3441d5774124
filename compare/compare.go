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

// Package compare provides the equality and ordering predicates used to
// sort, merge, and deduplicate streams of OSM objects.
//
// Every predicate is a pure function of its two arguments: stateless,
// allocation-free, and safe for concurrent use from any number of
// goroutines. They are meant to be handed to sort and merge kernels that
// invoke them an unbounded number of times, so none of them may retain its
// arguments beyond the call.
//
// All orderings share the same (type, ID) prefix and differ only in how
// version and timestamp are folded in. The boolean Less forms each have a
// three-way Compare twin suitable for merge heaps and slices.SortFunc.
//
// Passing a nil Object to any predicate is a programming error, not a
// recoverable condition, and panics.
package compare

import (
	"time"

	"golang.org/x/exp/constraints"

	"m4o.io/osmsort/model"
)

func cmp[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}

// cmpBool orders false before true.
func cmpBool(a, b bool) int {
	switch {
	case !a && b:
		return -1
	case a && !b:
		return +1
	default:
		return 0
	}
}

func cmpTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return +1
	default:
		return 0
	}
}

// CompareID is the three-way form of IDLess.
func CompareID(a, b model.ID) int {
	// magnitudes are computed on every call so the math.MinInt64 domain
	// violation traps even when an earlier key decides
	am, bm := a.Positive(), b.Positive()

	if c := cmpBool(a > 0, b > 0); c != 0 {
		return c
	}

	return cmp(am, bm)
}

// IDLess orders element IDs so that 0 sorts first, then negative IDs in
// ascending order of magnitude, then positive IDs in ascending order of
// magnitude: 0, -1, -2, ..., 1, 2, ...
//
// math.MinInt64 is outside the valid ID domain; it has no magnitude and
// makes IDLess panic.
func IDLess(a, b model.ID) bool {
	return CompareID(a, b) < 0
}

// EqualTypeIDVersion reports whether a and b are the same edit of the same
// element: equal type, ID, and version, matching the object model's native
// equality. Use it for exact-duplicate detection in a stream.
func EqualTypeIDVersion(a, b model.Object) bool {
	return model.Equal(a, b)
}

// EqualTypeID reports whether a and b are edits of the same logical element,
// ignoring the version entirely. Use it to collapse the edit history of an
// element.
func EqualTypeID(a, b model.Object) bool {
	return a.Type() == b.Type() &&
		a.GetID() == b.GetID()
}

// CompareTypeIDVersion is the three-way form of TypeIDVersionLess. It is the
// object model's native ordering.
func CompareTypeIDVersion(a, b model.Object) int {
	return model.Compare(a, b)
}

// TypeIDVersionLess orders objects by type, then ID as IDLess, then version
// ascending, then timestamp ascending as the final tie-break. This is the
// canonical chronological order for full-history streams, with the lowest
// version of every element first.
func TypeIDVersionLess(a, b model.Object) bool {
	return model.Compare(a, b) < 0
}

// CompareTypeIDVersionNoTimestamp is the three-way form of
// TypeIDVersionNoTimestampLess.
func CompareTypeIDVersionNoTimestamp(a, b model.Object) int {
	am, bm := a.PositiveID(), b.PositiveID()

	if c := cmp(a.Type(), b.Type()); c != 0 {
		return c
	}

	if c := cmpBool(a.GetID() > 0, b.GetID() > 0); c != 0 {
		return c
	}

	if c := cmp(am, bm); c != 0 {
		return c
	}

	return cmp(model.VersionOf(a), model.VersionOf(b))
}

// TypeIDVersionNoTimestampLess orders objects by type, ID, and version only.
// Two objects that differ only in their timestamps are order-equivalent:
// neither is less than the other. Use it where timestamps are untrusted, or
// absent for part of the input, and must not perturb an otherwise stable
// merge.
func TypeIDVersionNoTimestampLess(a, b model.Object) bool {
	return CompareTypeIDVersionNoTimestamp(a, b) < 0
}

// CompareTypeIDReverseVersion is the three-way form of
// TypeIDReverseVersionLess.
func CompareTypeIDReverseVersion(a, b model.Object) int {
	am, bm := a.PositiveID(), b.PositiveID()

	if c := cmp(a.Type(), b.Type()); c != 0 {
		return c
	}

	if c := cmpBool(a.GetID() > 0, b.GetID() > 0); c != 0 {
		return c
	}

	if c := cmp(am, bm); c != 0 {
		return c
	}

	// version descending
	if c := cmp(model.VersionOf(b), model.VersionOf(a)); c != 0 {
		return c
	}

	at, bt := model.TimestampOf(a), model.TimestampOf(b)
	if at.IsZero() || bt.IsZero() {
		// The timestamp key only discriminates when both sides carry a
		// valid timestamp.
		return 0
	}

	// timestamp descending
	return cmpTime(bt, at)
}

// TypeIDReverseVersionLess orders objects by type and ID as IDLess, but with
// higher versions of the same element first, breaking any remaining tie by
// later timestamp first when both sides carry one. Sorting a full history
// with it brings the latest version of every element to the front of its
// (type, ID) group, so current state falls out by keeping the first object
// of each group.
func TypeIDReverseVersionLess(a, b model.Object) bool {
	return CompareTypeIDReverseVersion(a, b) < 0
}
