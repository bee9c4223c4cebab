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
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/penny-vault/mvmsim/history"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	historyPlot   bool
	historyHeight int
	historyIndex  bool
	historySMA    int
)

func init() {
	historyCmd.Flags().BoolVar(&historyPlot, "plot", false, "Draw the price series as an ASCII chart instead of a table")
	historyCmd.Flags().IntVar(&historyHeight, "height", 15, "Height of the chart in lines")
	historyCmd.Flags().BoolVar(&historyIndex, "index", false, "Show the market index instead of prices")
	historyCmd.Flags().IntVar(&historySMA, "sma", 0, "Add a simple moving average of the index over this many days")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [symbol]",
	Short: "Print the generated price history",
	Long: `Print the generated price history of one symbol or, without a symbol,
the mean price of every sector. --index prints the market index instead.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := buildEngine(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize engine")
		}

		series := e.History()

		if historyIndex {
			if historySMA < 0 {
				log.Fatal().Int("SMA", historySMA).Msg("sma must not be negative")
			}
			report := series.IndexReport(series.Interval(), historySMA)
			if historyPlot {
				plotIndex(report)
				return
			}
			printIndex(report)
			return
		}

		if len(args) == 0 {
			df := series.SectorFrame()
			if historyPlot {
				for _, name := range df.ColNames {
					vals, err := df.Column(name)
					if err != nil {
						log.Fatal().Err(err).Str("Sector", name).Msg("could not read sector column")
					}
					fmt.Println(asciigraph.Plot(vals, asciigraph.Height(historyHeight), asciigraph.Caption(name)))
					fmt.Println()
				}
				return
			}
			fmt.Println(df.Table())
			return
		}

		df, err := series.Frame(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("Symbol", args[0]).Msg("could not build price frame")
		}

		if historyPlot {
			prices, err := df.Column(history.PriceCol)
			if err != nil {
				log.Fatal().Err(err).Msg("could not read price column")
			}
			if len(prices) == 0 {
				fmt.Println("<NO DATA>")
				return
			}
			caption := fmt.Sprintf("%s %s to %s", args[0], df.Start().Format("2006-01-02"), df.End().Format("2006-01-02"))
			fmt.Println(asciigraph.Plot(prices, asciigraph.Height(historyHeight), asciigraph.Caption(caption)))
			return
		}

		fmt.Println(df.Table())
	},
}

func plotIndex(report history.IndexReport) {
	if len(report.Points) == 0 {
		fmt.Println("<NO DATA>")
		return
	}

	levels := make([]float64, len(report.Points))
	for idx, pt := range report.Points {
		levels[idx] = pt.Level
	}
	caption := fmt.Sprintf("index %s to %s", report.Begin.Format("2006-01-02"), report.End.Format("2006-01-02"))
	fmt.Println(asciigraph.Plot(levels, asciigraph.Height(historyHeight), asciigraph.Caption(caption)))
}
