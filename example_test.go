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

package osmsort_test

import (
	"context"
	"fmt"
	"log"

	"m4o.io/osmsort"
	"m4o.io/osmsort/model"
)

func Example() {
	// a shuffled fragment of an edit history
	edits := []model.Object{
		model.Node{ID: 1, Info: &model.Info{Version: 2}},
		model.Node{ID: -2, Info: &model.Info{Version: 1}},
		model.Node{ID: 1, Info: &model.Info{Version: 1}},
		model.Node{ID: 0, Info: &model.Info{Version: 1}},
		model.Node{ID: -2, Info: &model.Info{Version: 2}},
	}

	s, err := osmsort.NewSorter(osmsort.WithOrdering(osmsort.TypeIDReverseVersion))
	if err != nil {
		log.Fatal(err)
	}

	in := make(chan model.Object)

	go func() {
		defer close(in)

		for _, o := range edits {
			in <- o
		}
	}()

	// keep only the latest version of every element
	for current := range osmsort.Latest(s.Sort(context.Background(), in)) {
		if current.Error != nil {
			log.Fatal(current.Error)
		}

		o := current.Value
		fmt.Printf("%s %d v%d\n", o.Type(), o.GetID(), model.VersionOf(o))
	}

	// Output:
	// node 0 v1
	// node -2 v2
	// node 1 v2
}
