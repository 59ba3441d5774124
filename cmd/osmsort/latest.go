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

package main

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(latestCmd)
	addStreamFlags(latestCmd)
}

var latestCmd = &cobra.Command{
	Use:   "latest [<stream file>]",
	Short: "Extract the latest version of every element",
	Long: `Sort a full edit history so the highest version of every element
comes first in its group, then keep only that version. The result is the
current state of the data.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runSort(args, true)
	},
}
