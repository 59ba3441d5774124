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
	"context"
	"encoding/json"
	"fmt"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"m4o.io/osmsort"
	"m4o.io/osmsort/cmd/osmsort/cli"
	"m4o.io/osmsort/internal/spill"
)

var (
	checkOrdering osmsort.Ordering
	checkJSON     bool
)

func init() {
	RootCmd.AddCommand(checkCmd)

	flags := checkCmd.Flags()
	flags.VarP(cli.NewOrderingValue(osmsort.TypeIDVersion, &checkOrdering), "ordering", "r",
		"ordering to check against")
	flags.BoolVarP(&checkJSON, "json", "j", false, "format statistics in JSON")
}

var checkCmd = &cobra.Command{
	Use:   "check [<stream file>]",
	Short: "Verify a stream is sorted and print its statistics",
	Long:  "Verify a stream is sorted under an ordering and print per-type statistics",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ord := checkOrdering

		var path string
		if len(args) == 1 {
			path = args[0]
		}

		in, err := cli.OpenInput(path)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open input stream")
		}

		rdr, err := spill.NewReader(in)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot read input stream")
		}

		ctx := context.Background()

		objects, readErrs := osmsort.Feed(ctx, rdr)

		stats, err := osmsort.Check(ctx, objects, ord)
		if err != nil {
			log.Fatal().Err(err).Msg("check failed")
		}

		if err = <-readErrs; err != nil {
			log.Fatal().Err(err).Msg("cannot read input stream")
		}

		if err = rdr.Close(); err != nil {
			log.Fatal().Err(err).Msg("cannot close input stream")
		}

		if err = in.Close(); err != nil {
			log.Fatal().Err(err).Msg("cannot close input stream")
		}

		if checkJSON {
			renderJSON(stats, ord)
		} else {
			renderTxt(stats, ord)
		}
	},
}

func renderJSON(stats osmsort.Stats, ord osmsort.Ordering) {
	report := struct {
		osmsort.Stats

		Ordering string
	}{Stats: stats, Ordering: ord.String()}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if err := enc.Encode(report); err != nil {
		log.Fatal().Err(err).Msg("cannot render statistics")
	}
}

func renderTxt(stats osmsort.Stats, ord osmsort.Ordering) {
	fmt.Printf("ordering:  %s\n", ord)
	fmt.Printf("sorted:    %t\n", stats.Sorted)
	fmt.Printf("nodes:     %s\n", humanize.Comma(stats.Nodes))
	fmt.Printf("ways:      %s\n", humanize.Comma(stats.Ways))
	fmt.Printf("relations: %s\n", humanize.Comma(stats.Relations))
	fmt.Printf("total:     %s\n", humanize.Comma(stats.Total()))

	if stats.BoundingBox != nil {
		fmt.Printf("bbox:      %s\n", stats.BoundingBox)
	}
}
