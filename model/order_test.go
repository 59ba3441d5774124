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

package model_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmsort/model"
)

func node(id model.ID, version model.Version, ts time.Time) model.Node {
	return model.Node{ID: id, Info: &model.Info{Version: version, Timestamp: ts}}
}

func TestIDPositive(t *testing.T) {
	assert.Equal(t, uint64(0), model.ID(0).Positive())
	assert.Equal(t, uint64(42), model.ID(42).Positive())
	assert.Equal(t, uint64(42), model.ID(-42).Positive())
	assert.Equal(t, uint64(math.MaxInt64), model.ID(math.MinInt64+1).Positive())

	assert.Panics(t, func() { model.ID(math.MinInt64).Positive() })
}

func TestElementTypeString(t *testing.T) {
	assert.Equal(t, "node", model.NODE.String())
	assert.Equal(t, "way", model.WAY.String())
	assert.Equal(t, "relation", model.RELATION.String())
}

func TestEqual(t *testing.T) {
	ts := time.Date(2020, 5, 17, 12, 0, 0, 0, time.UTC)

	a := node(17, 2, ts)
	b := node(17, 2, ts.Add(time.Hour)) // same edit, different timestamp
	c := node(17, 3, ts)

	assert.True(t, model.Equal(a, b))
	assert.False(t, model.Equal(a, c))
	assert.False(t, model.Equal(a, model.Way{ID: 17, Info: &model.Info{Version: 2}}))
}

func TestCompare(t *testing.T) {
	ts := time.Date(2020, 5, 17, 12, 0, 0, 0, time.UTC)

	// type before everything else
	assert.Negative(t, model.Compare(node(99, 9, ts), model.Way{ID: 1}))

	// zero first, negatives by magnitude, then positives by magnitude
	assert.Negative(t, model.Compare(node(0, 1, ts), node(-1, 1, ts)))
	assert.Negative(t, model.Compare(node(-1, 1, ts), node(-2, 1, ts)))
	assert.Negative(t, model.Compare(node(-2, 1, ts), node(1, 1, ts)))
	assert.Negative(t, model.Compare(node(1, 1, ts), node(3, 1, ts)))

	// version ascending
	assert.Negative(t, model.Compare(node(5, 1, ts), node(5, 2, ts)))

	// timestamp is the final tie-break
	assert.Negative(t, model.Compare(node(5, 1, ts), node(5, 1, ts.Add(time.Second))))
	assert.Zero(t, model.Compare(node(5, 1, ts), node(5, 1, ts)))
}

func TestCompareTrapsOutOfDomainID(t *testing.T) {
	bad := model.Node{ID: math.MinInt64}
	other := model.Way{ID: 1} // the type key alone would decide

	assert.Panics(t, func() { model.Compare(bad, other) })
	assert.Panics(t, func() { model.Less(other, bad) })
}

func TestMissingInfoIsDefensive(t *testing.T) {
	bare := model.Node{ID: 5}

	assert.Equal(t, model.Version(0), model.VersionOf(bare))
	assert.True(t, model.TimestampOf(bare).IsZero())

	// an object without metadata sorts before any versioned edit of the
	// same element
	assert.Negative(t, model.Compare(bare, node(5, 1, time.Now())))
}
