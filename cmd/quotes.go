// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"

	"github.com/penny-vault/mvmsim/engine"
	"github.com/penny-vault/mvmsim/filter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	quotesTicks       int
	quotesSector      string
	quotesPerformance string
	quotesSort        string
)

func init() {
	quotesCmd.Flags().IntVar(&quotesTicks, "ticks", 0, "Number of ticks to run before printing")
	quotesCmd.Flags().StringVar(&quotesSector, "sector", "", "Only show quotes in this sector; `all` shows every sector")
	quotesCmd.Flags().StringVar(&quotesPerformance, "performance", "", "Only show quotes that are one of: `up`, `down`, or `flat`")
	quotesCmd.Flags().StringVar(&quotesSort, "sort", "", "Sort descending by one of: `percent_change`, `volume`, `market_cap`, or `index_weight`")

	rootCmd.AddCommand(quotesCmd)
}

// runTicks advances e n times
func runTicks(ctx context.Context, e *engine.Engine, n int) {
	for ii := 0; ii < n; ii++ {
		e.Tick(ctx)
	}
	if n > 0 {
		log.Info().Int("NumTicks", n).Msg("advanced market")
	}
}

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Print the current session quotes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		q, err := filter.ParseQuery(quotesSector, quotesPerformance, quotesSort)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid query")
		}

		ctx := context.Background()
		e, err := buildEngine(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize engine")
		}

		runTicks(ctx, e, quotesTicks)

		quotes, err := e.Query(q)
		if err != nil {
			log.Fatal().Err(err).Msg("query failed")
		}
		printQuotes(quotes)
	},
}
