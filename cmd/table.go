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
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/mvmsim/history"
	"github.com/penny-vault/mvmsim/macro"
	"github.com/penny-vault/mvmsim/sector"
	"github.com/penny-vault/mvmsim/snapshot"
)

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func printQuotes(quotes []snapshot.Quote) {
	table := newTable("Symbol", "Sector", "Price", "Change", "% Change", "Open", "High", "Low", "Volume", "Market Cap", "Yield")
	for _, q := range quotes {
		table.Append([]string{
			q.Symbol,
			q.Sector,
			fmt.Sprintf("%.2f", q.Price),
			fmt.Sprintf("%+.2f", q.AbsoluteChange),
			fmt.Sprintf("%+.2f%%", q.PercentChange),
			fmt.Sprintf("%.2f", q.Open),
			fmt.Sprintf("%.2f", q.High),
			fmt.Sprintf("%.2f", q.Low),
			fmt.Sprintf("%.0f", q.Volume),
			fmt.Sprintf("%.0f", q.MarketCap),
			fmt.Sprintf("%.2f%%", q.DividendYield),
		})
	}
	table.SetFooter([]string{"Num Rows", fmt.Sprintf("%d", len(quotes)), "", "", "", "", "", "", "", "", ""})
	table.Render()
}

func printSectors(summaries []sector.Summary) {
	table := newTable("Sector", "Entities", "Index Weight", "Market Cap", "Volume", "Performance", "Derived")
	for _, s := range summaries {
		table.Append([]string{
			s.Sector,
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.2f", s.IndexWeight),
			fmt.Sprintf("%.0f", s.MarketCap),
			fmt.Sprintf("%.0f", s.Volume),
			fmt.Sprintf("%+.2f%%", s.MeanPerformance),
			fmt.Sprintf("%+.2f%%", s.DerivedPerformance),
		})
	}
	table.Render()
}

func printMacro(observations []macro.Observation) {
	table := newTable("Month", "Inflation", "GDP Growth", "Policy Rate", "USD", "EUR", "Reserves", "Public Debt")
	for _, obs := range observations {
		table.Append([]string{
			obs.Date.Format("2006-01"),
			fmt.Sprintf("%.2f%%", obs.Inflation),
			fmt.Sprintf("%.2f%%", obs.GDPGrowth),
			fmt.Sprintf("%.2f%%", obs.PolicyRate),
			fmt.Sprintf("%.2f", obs.USDRate),
			fmt.Sprintf("%.2f", obs.EURRate),
			fmt.Sprintf("%.2f", obs.Reserves),
			fmt.Sprintf("%.2f%%", obs.PublicDebt),
		})
	}
	table.Render()
}

func printTrade(observations []macro.TradeObservation) {
	table := newTable("Quarter", "Exports", "Imports", "Balance", "Vanilla", "Coffee", "Shrimp")
	for _, obs := range observations {
		table.Append([]string{
			obs.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", obs.Exports),
			fmt.Sprintf("%.2f", obs.Imports),
			fmt.Sprintf("%+.2f", obs.Balance),
			fmt.Sprintf("%.2f", obs.VanillaExports),
			fmt.Sprintf("%.2f", obs.CoffeeExports),
			fmt.Sprintf("%.2f", obs.ShrimpExports),
		})
	}
	table.Render()
}

func printIndex(report history.IndexReport) {
	header := []string{"Date", "Index"}
	if report.Lookback > 0 {
		header = append(header, fmt.Sprintf("SMA %d", report.Lookback))
	}
	table := newTable(header...)
	for _, pt := range report.Points {
		row := []string{pt.Date.Format("2006-01-02"), fmt.Sprintf("%.2f", pt.Level)}
		if report.Lookback > 0 {
			if pt.SMA == nil {
				row = append(row, "")
			} else {
				row = append(row, fmt.Sprintf("%.2f", *pt.SMA))
			}
		}
		table.Append(row)
	}
	footer := make([]string, len(header))
	footer[0] = "High / Low"
	footer[1] = fmt.Sprintf("%.2f / %.2f", report.High, report.Low)
	table.SetFooter(footer)
	table.Render()
}
