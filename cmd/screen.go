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

	"github.com/penny-vault/mvmsim/filter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var screenTicks int

func init() {
	screenCmd.Flags().IntVar(&screenTicks, "ticks", 0, "Number of ticks to run before screening")
	screenCmd.Flags().String("min-market-cap", "", "Minimum market capitalization")
	screenCmd.Flags().String("min-dividend-yield", "", "Minimum dividend yield in percent")
	screenCmd.Flags().String("min-percent-change", "", "Minimum percent change of the session")
	screenCmd.Flags().String("sectors", "", "Comma separated list of sectors to include")

	rootCmd.AddCommand(screenCmd)
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Print the quotes that satisfy every threshold",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := map[string]string{
			"min-market-cap":     filter.KeyMinMarketCap,
			"min-dividend-yield": filter.KeyMinDividendYield,
			"min-percent-change": filter.KeyMinPercentChange,
			"sectors":            filter.KeySectors,
		}

		params := make(map[string]string)
		for flag, key := range flags {
			if val, _ := cmd.Flags().GetString(flag); val != "" {
				params[key] = val
			}
		}

		criteria, err := filter.ParseCriteria(params)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid screen")
		}

		ctx := context.Background()
		e, err := buildEngine(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize engine")
		}

		runTicks(ctx, e, screenTicks)

		quotes, err := e.Screen(criteria)
		if err != nil {
			log.Fatal().Err(err).Msg("screen failed")
		}
		printQuotes(quotes)
	},
}
