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

func TestDegreesE9(t *testing.T) {
	d := model.Degrees(53.123456789)

	assert.Equal(t, int64(53123456789), d.E9())
	assert.True(t, model.FromE9(d.E9()).EqualWithin(d, model.E9))

	n := model.Degrees(-0.5)
	assert.Equal(t, int64(-500000000), n.E9())
	assert.Equal(t, n, model.FromE9(n.E9()))
}

func TestDegreesParse(t *testing.T) {
	d, err := model.ParseDegrees("53.123450")
	if err != nil {
		t.Error(err)
	}

	assert.True(t, model.Degrees(53.123450).EqualWithin(d, model.E6))

	_, err = model.ParseDegrees("abc")
	if err == nil {
		t.Error("Parsing should have failed")
	}
}

func TestDegreesEqualWithin(t *testing.T) {
	assert.True(t, model.Degrees(53.1234504).EqualWithin(model.Degrees(53.1234504), model.E7))
	assert.False(t, model.Degrees(53.123450).EqualWithin(model.Degrees(53.123455), model.E6))
}

func TestDegreesString(t *testing.T) {
	assert.Equal(t, "-0.511482", model.Degrees(-0.511482).String())
}
