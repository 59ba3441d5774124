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

package cli

import (
	"github.com/spf13/pflag"

	"m4o.io/osmsort"
)

// -- osmsort.Ordering Value
type orderingValue struct {
	value *osmsort.Ordering
}

// NewOrderingValue creates a cobra Value object for an osmsort.Ordering.
func NewOrderingValue(def osmsort.Ordering, p *osmsort.Ordering) pflag.Value {
	ov := &orderingValue{value: p}
	*ov.value = def

	return ov
}

func (o *orderingValue) Set(val string) error {
	ord, err := osmsort.ParseOrdering(val)
	if err != nil {
		return err
	}

	*o.value = ord

	return nil
}

func (o *orderingValue) Type() string {
	return "ordering"
}

func (o *orderingValue) String() string {
	return o.value.String()
}
