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

import (
	"math"
	"strconv"

	"github.com/golang/geo/s1"
)

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Epsilon is an enumeration of precisions that can be used when comparing Degrees.
type Epsilon float64

// Degrees units and limits.
const (
	Degree Degrees = 1
	Radian         = (180 / math.Pi) * Degree

	MinLat Degrees = -90
	MaxLat Degrees = 90
	MinLon Degrees = -180
	MaxLon Degrees = 180

	E6 Epsilon = 1e-6
	E7 Epsilon = 1e-7
	E9 Epsilon = 1e-9

	// Nano is the fixed-point scale coordinates are carried at in spill
	// files, in nanodegrees, the highest resolution of the PBF format.
	Nano = 1_000_000_000

	half = 0.5
)

// Angle returns the equivalent s1.Angle.
func (d Degrees) Angle() s1.Angle { return s1.Angle(float64(d) * float64(s1.Degree)) }

func (d Degrees) String() string { return ftoa(float64(d)) }

// EqualWithin checks if two degrees are within a specific epsilon.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return round(float64(d)/float64(eps)) == round(float64(o)/float64(eps))
}

// E9 returns the angle in nanodegrees.
func (d Degrees) E9() int64 { return round(float64(d * Nano)) }

// FromE9 converts nanodegrees back to Degrees.
func FromE9(nano int64) Degrees { return Degrees(nano) / Nano }

// round returns the value rounded to nearest as an int64.
func round(val float64) int64 {
	if val < 0 {
		return int64(val - half)
	}

	return int64(val + half)
}

// ParseDegrees converts a string to a Degrees instance.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}

// ftoa renders a float without trailing zeros.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
