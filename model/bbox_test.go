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
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmsort/model"
)

func TestInitialBoundingBox(t *testing.T) {
	initial := model.InitialBoundingBox()
	assert.Equal(t, initial.Top, model.MinLat)
	assert.Equal(t, initial.Bottom, model.MaxLat)
	assert.Equal(t, initial.Right, model.MinLon)
	assert.Equal(t, initial.Left, model.MaxLon)
}

func TestBoundingBox_EqualWithin(t *testing.T) {
	bbox1 := &model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437}
	bbox2 := &model.BoundingBox{
		Top:    bbox1.Top + model.Degrees(model.E7),
		Left:   bbox1.Left + model.Degrees(model.E7),
		Bottom: bbox1.Bottom + model.Degrees(model.E7),
		Right:  bbox1.Right + model.Degrees(model.E7),
	}

	assert.True(t, bbox1.EqualWithin(bbox2, model.E6))
	assert.False(t, bbox1.EqualWithin(bbox2, model.E9))
}

func TestBoundingBox_Contains(t *testing.T) {
	bbox := &model.BoundingBox{Top: 51.69344, Left: -0.511482, Bottom: 51.28554, Right: 0.335437}

	assert.True(t, bbox.Contains(51.5, 0.1))
	assert.False(t, bbox.Contains(51.5, 1.0))
	assert.False(t, bbox.Contains(52.0, 0.1))
}

func TestBoundingBox_ExpandWithLatLng(t *testing.T) {
	bbox := model.InitialBoundingBox()

	bbox.ExpandWithLatLng(51.5, 0.1)
	bbox.ExpandWithLatLng(51.0, -0.5)

	assert.Equal(t, model.Degrees(51.5), bbox.Top)
	assert.Equal(t, model.Degrees(51.0), bbox.Bottom)
	assert.Equal(t, model.Degrees(-0.5), bbox.Left)
	assert.Equal(t, model.Degrees(0.1), bbox.Right)
	assert.True(t, bbox.Contains(51.25, 0.0))
}
