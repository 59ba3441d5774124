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

package model

// Equal is the native equality of elements: two objects are equal when they
// are the same edit, i.e. their type, ID, and version all match. Timestamp
// and payload are ignored.
func Equal(a, b Object) bool {
	return a.Type() == b.Type() &&
		a.GetID() == b.GetID() &&
		VersionOf(a) == VersionOf(b)
}

// Compare is the native total order of elements. Objects are ordered by
// type, then by ID with zero first, negative IDs next, and positive IDs
// last, each group in ascending order of magnitude, then by version, and
// finally by timestamp. It returns a negative value when a sorts before b,
// zero when the two are order-equivalent, and a positive value otherwise.
func Compare(a, b Object) int {
	// magnitudes are computed on every call so an out-of-domain ID traps
	// even when an earlier key decides
	am, bm := a.PositiveID(), b.PositiveID()

	if c := int(a.Type()) - int(b.Type()); c != 0 {
		return c
	}

	aid, bid := a.GetID(), b.GetID()

	if aid > 0 != (bid > 0) {
		if bid > 0 {
			return -1
		}

		return +1
	}

	if am != bm {
		if am < bm {
			return -1
		}

		return +1
	}

	av, bv := VersionOf(a), VersionOf(b)
	if av != bv {
		if av < bv {
			return -1
		}

		return +1
	}

	at, bt := TimestampOf(a), TimestampOf(b)

	switch {
	case at.Before(bt):
		return -1
	case bt.Before(at):
		return +1
	default:
		return 0
	}
}

// Less is the native strict ordering of elements; see Compare.
func Less(a, b Object) bool {
	return Compare(a, b) < 0
}
