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

// Package sector rolls catalog attributes and live quotes up into per-sector
// summaries.
package sector

import (
	"fmt"
	"strings"

	"github.com/penny-vault/mvmsim/catalog"
	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/rng"
	"github.com/penny-vault/mvmsim/snapshot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mode selects how MeanPerformance is computed
type Mode int

const (
	// ModeDecoupled assigns every sector a random performance in [-3, 6]
	// once, independent of its constituents' quotes
	ModeDecoupled Mode = iota

	// ModeDerived uses the mean percent change of the sector's quotes
	ModeDerived
)

// Summary is the rollup of one sector
type Summary struct {
	Sector             string  `json:"sector"`
	IndexWeight        float64 `json:"indexWeight"`
	MarketCap          float64 `json:"marketCap"`
	Count              int     `json:"count"`
	Volume             float64 `json:"volume"`
	MeanPerformance    float64 `json:"meanPerformance"`
	DerivedPerformance float64 `json:"derivedPerformance"`
}

// Aggregator computes sector summaries. Aggregate is pure; the only random
// draws happen in New.
type Aggregator struct {
	catalog     *catalog.Catalog
	mode        Mode
	performance map[string]float64
}

// ParseMode converts a configuration value into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "decoupled", "random":
		return ModeDecoupled, nil
	case "derived":
		return ModeDerived, nil
	default:
		return ModeDecoupled, fmt.Errorf("%w: unknown sector mode %q", data.ErrConfiguration, s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeDerived:
		return "derived"
	default:
		return "decoupled"
	}
}

// New creates an aggregator over cat. In ModeDecoupled one performance is
// drawn per sector in sorted sector order; ModeDerived draws nothing.
func New(cat *catalog.Catalog, src rng.Source, mode Mode) *Aggregator {
	agg := &Aggregator{
		catalog:     cat,
		mode:        mode,
		performance: make(map[string]float64),
	}

	if mode == ModeDecoupled {
		for _, sector := range cat.Sectors() {
			agg.performance[sector] = src.Uniform(-3, 6)
		}
	}

	return agg
}

// Mode returns the performance mode of the aggregator
func (agg *Aggregator) Mode() Mode {
	return agg.mode
}

// Aggregate groups the catalog by sector and sums index weight, market cap and
// live volume. Quotes missing from quotes contribute no volume or performance.
// The result is sorted by sector name.
func (agg *Aggregator) Aggregate(quotes map[string]snapshot.Quote) []Summary {
	sectors := agg.catalog.Sectors()
	res := make([]Summary, 0, len(sectors))

	for _, sector := range sectors {
		var weights, caps, volumes, changes []float64
		count := 0
		for _, entity := range agg.catalog.All() {
			if entity.Sector != sector {
				continue
			}
			count++
			weights = append(weights, entity.IndexWeight)
			caps = append(caps, entity.MarketCap)
			if q, ok := quotes[entity.Symbol]; ok {
				volumes = append(volumes, q.Volume)
				changes = append(changes, q.PercentChange)
			}
		}

		summary := Summary{
			Sector:      sector,
			IndexWeight: floats.Sum(weights),
			MarketCap:   floats.Sum(caps),
			Count:       count,
			Volume:      floats.Sum(volumes),
		}
		if len(changes) > 0 {
			summary.DerivedPerformance = stat.Mean(changes, nil)
		}

		switch agg.mode {
		case ModeDerived:
			summary.MeanPerformance = summary.DerivedPerformance
		default:
			summary.MeanPerformance = agg.performance[sector]
		}

		res = append(res, summary)
	}

	return res
}
