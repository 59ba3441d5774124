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

package compare_test

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmsort/compare"
	"m4o.io/osmsort/model"
)

var epoch = time.Date(2020, 5, 17, 12, 0, 0, 0, time.UTC)

func node(id model.ID, version model.Version, ts time.Time) model.Node {
	return model.Node{ID: id, Info: &model.Info{Version: version, Timestamp: ts}}
}

func way(id model.ID, version model.Version, ts time.Time) model.Way {
	return model.Way{ID: id, Info: &model.Info{Version: version, Timestamp: ts}}
}

func TestIDLessSequence(t *testing.T) {
	ids := []model.ID{-2, 0, -1, 3, 1}

	sort.Slice(ids, func(i, j int) bool { return compare.IDLess(ids[i], ids[j]) })

	assert.Equal(t, []model.ID{0, -1, -2, 1, 3}, ids)
}

// The trap must fire no matter which side carries the bad ID and even when
// the sign-rank key alone would decide.
func TestIDLessPanicsOnMinInt64(t *testing.T) {
	assert.Panics(t, func() { compare.IDLess(math.MinInt64, 1) })
	assert.Panics(t, func() { compare.IDLess(1, math.MinInt64) })
	assert.Panics(t, func() { compare.IDLess(math.MinInt64, -1) })
	assert.Panics(t, func() { compare.CompareID(math.MinInt64, math.MinInt64) })
}

func TestOrderingsPanicOnMinInt64(t *testing.T) {
	bad := node(math.MinInt64, 1, epoch)
	other := way(1, 1, epoch) // the type key alone would decide

	assert.Panics(t, func() { compare.TypeIDVersionLess(bad, other) })
	assert.Panics(t, func() { compare.TypeIDVersionNoTimestampLess(bad, other) })
	assert.Panics(t, func() { compare.TypeIDReverseVersionLess(other, bad) })
}

func TestEqualTypeIDVersion(t *testing.T) {
	a := node(17, 2, epoch)

	assert.True(t, compare.EqualTypeIDVersion(a, node(17, 2, epoch.Add(time.Hour))))
	assert.False(t, compare.EqualTypeIDVersion(a, node(17, 3, epoch)))
	assert.False(t, compare.EqualTypeIDVersion(a, node(18, 2, epoch)))
	assert.False(t, compare.EqualTypeIDVersion(a, way(17, 2, epoch)))
}

// EqualTypeIDVersion implies EqualTypeID, but not the other way around.
func TestEqualityConsistency(t *testing.T) {
	a := node(17, 2, epoch)
	b := node(17, 5, epoch.Add(time.Hour))

	assert.True(t, compare.EqualTypeID(a, b))
	assert.False(t, compare.EqualTypeIDVersion(a, b))

	c := node(17, 2, epoch.Add(time.Hour))
	assert.True(t, compare.EqualTypeIDVersion(a, c))
	assert.True(t, compare.EqualTypeID(a, c))
}

func TestTypeIDVersionLessUsesTimestampAsTieBreak(t *testing.T) {
	a := node(17, 2, epoch)
	b := node(17, 2, epoch.Add(time.Second))

	assert.True(t, compare.TypeIDVersionLess(a, b))
	assert.False(t, compare.TypeIDVersionLess(b, a))
}

func TestNoTimestampLessIgnoresTimestamp(t *testing.T) {
	a := node(17, 2, epoch)
	b := node(17, 2, epoch.Add(time.Hour))

	// order-equivalent: neither strictly less than the other
	assert.False(t, compare.TypeIDVersionNoTimestampLess(a, b))
	assert.False(t, compare.TypeIDVersionNoTimestampLess(b, a))

	// but versions still discriminate
	assert.True(t, compare.TypeIDVersionNoTimestampLess(a, node(17, 3, epoch)))
}

func TestReverseVersionGrouping(t *testing.T) {
	objects := []model.Object{
		node(17, 1, epoch),
		node(17, 3, epoch.Add(2*time.Hour)),
		node(17, 2, epoch.Add(time.Hour)),
	}

	sort.Slice(objects, func(i, j int) bool {
		return compare.TypeIDReverseVersionLess(objects[i], objects[j])
	})

	require.Len(t, objects, 3)
	assert.Equal(t, model.Version(3), model.VersionOf(objects[0]))
	assert.Equal(t, model.Version(2), model.VersionOf(objects[1]))
	assert.Equal(t, model.Version(1), model.VersionOf(objects[2]))
}

func TestReverseVersionTimestampDescending(t *testing.T) {
	a := node(17, 2, epoch)
	b := node(17, 2, epoch.Add(time.Second))

	// same version, later timestamp first
	assert.True(t, compare.TypeIDReverseVersionLess(b, a))
	assert.False(t, compare.TypeIDReverseVersionLess(a, b))
}

func TestReverseVersionInvalidTimestampIsNotDiscriminating(t *testing.T) {
	withTS := node(17, 2, epoch)
	withoutTS := node(17, 2, time.Time{})

	assert.False(t, compare.TypeIDReverseVersionLess(withTS, withoutTS))
	assert.False(t, compare.TypeIDReverseVersionLess(withoutTS, withTS))

	// prior keys still decide
	assert.True(t, compare.TypeIDReverseVersionLess(node(17, 3, time.Time{}), withTS))
}

// All three orderings share the (type, ID) prefix, so for objects differing
// in type or ID they must agree on direction.
func TestPrefixAgreement(t *testing.T) {
	pairs := [][2]model.Object{
		{node(0, 1, epoch), node(-1, 9, epoch)},
		{node(-1, 1, epoch), node(-2, 9, epoch)},
		{node(-2, 1, epoch), node(1, 9, epoch)},
		{node(1, 1, epoch), node(3, 9, epoch)},
		{node(99, 9, epoch), way(1, 1, epoch)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]

		assert.True(t, compare.TypeIDVersionLess(a, b))
		assert.True(t, compare.TypeIDVersionNoTimestampLess(a, b))
		assert.True(t, compare.TypeIDReverseVersionLess(a, b))

		assert.False(t, compare.TypeIDVersionLess(b, a))
		assert.False(t, compare.TypeIDVersionNoTimestampLess(b, a))
		assert.False(t, compare.TypeIDReverseVersionLess(b, a))
	}
}

func TestCompareTwinsAgreeWithLess(t *testing.T) {
	a := node(17, 2, epoch)
	b := node(17, 3, epoch)

	assert.Negative(t, compare.CompareTypeIDVersion(a, b))
	assert.Negative(t, compare.CompareTypeIDVersionNoTimestamp(a, b))
	assert.Positive(t, compare.CompareTypeIDReverseVersion(a, b))
	assert.Zero(t, compare.CompareTypeIDVersion(a, a))
	assert.Negative(t, compare.CompareID(-1, -2))
}
