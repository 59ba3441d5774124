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
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"m4o.io/osmsort"
	"m4o.io/osmsort/cmd/osmsort/cli"
	"m4o.io/osmsort/internal/spill"
)

var (
	ordering    osmsort.Ordering
	unique      bool
	output      string
	compression string
	cpu         uint16
	runSize     int
)

func init() {
	RootCmd.AddCommand(sortCmd)

	flags := sortCmd.Flags()
	flags.VarP(cli.NewOrderingValue(osmsort.TypeIDVersion, &ordering), "ordering", "r",
		"ordering to sort under")
	flags.BoolVarP(&unique, "unique", "u", false, "drop exact duplicate edits")
	addStreamFlags(sortCmd)
}

// addStreamFlags registers the flags shared by the stream-rewriting
// subcommands.
func addStreamFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output stream file (default stdout)")
	flags.StringVarP(&compression, "compression", "z", spill.DefaultCompression.String(),
		"codec for the output stream and spilled runs")
	flags.Uint16VarP(&cpu, "max-cpu", "m", osmsort.DefaultNCpu(),
		"maximum number of CPUs to use for sorting runs")
	flags.IntVar(&runSize, "run-size", osmsort.DefaultMaxPerRun,
		"objects sorted in memory per spilled run")
}

var sortCmd = &cobra.Command{
	Use:   "sort [<stream file>]",
	Short: "Sort a stream of OSM objects",
	Long:  "Sort a stream of OSM objects under one of the supported orderings",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runSort(args, false)
	},
}

// runSort is the shared driver behind the sort and latest subcommands.
func runSort(args []string, latest bool) {
	ord := ordering
	if latest {
		ord = osmsort.TypeIDReverseVersion
	}

	codec, err := spill.ParseCompression(compression)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid compression")
	}

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

	out := os.Stdout

	if output != "" {
		if out, err = os.Create(output); err != nil {
			log.Fatal().Err(err).Msg("cannot create output stream")
		}
	}

	w, err := spill.NewWriter(out, codec)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot write output stream")
	}

	s, err := osmsort.NewSorter(
		osmsort.WithOrdering(ord),
		osmsort.WithCompression(codec),
		osmsort.WithNCpus(cpu),
		osmsort.WithMaxPerRun(runSize),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot configure sorter")
	}

	start := time.Now()
	ctx := context.Background()

	objects, readErrs := osmsort.Feed(ctx, rdr)

	stream := s.Sort(ctx, objects)

	if unique {
		stream = osmsort.Dedup(stream)
	}

	if latest {
		stream = osmsort.Latest(stream)
	}

	for tr := range stream {
		if tr.Error != nil {
			log.Fatal().Err(tr.Error).Msg("sort failed")
		}

		if err = w.Write(tr.Value); err != nil {
			log.Fatal().Err(err).Msg("cannot write output stream")
		}
	}

	if err = <-readErrs; err != nil {
		log.Fatal().Err(err).Msg("cannot read input stream")
	}

	if err = w.Close(); err != nil {
		log.Fatal().Err(err).Msg("cannot close output stream")
	}

	if err = rdr.Close(); err != nil {
		log.Fatal().Err(err).Msg("cannot close input stream")
	}

	if err = in.Close(); err != nil {
		log.Fatal().Err(err).Msg("cannot close input stream")
	}

	if out != os.Stdout {
		if err = out.Close(); err != nil {
			log.Fatal().Err(err).Msg("cannot close output stream")
		}
	}

	log.Info().
		Str("ordering", ord.String()).
		Str("objects", humanize.Comma(w.Len())).
		Dur("elapsed", time.Since(start)).
		Msg("sorted")
}
