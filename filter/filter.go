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

// Package filter implements the read-only filter, sort and screen operations
// over a set of quotes. Every function returns a new slice and leaves its
// input untouched.
package filter

import (
	"fmt"
	"strings"

	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/snapshot"
	"golang.org/x/exp/slices"
)

// AllSectors matches every sector
const AllSectors = "all"

// Performance is a bucket of the session percent change
type Performance int

const (
	PerformanceAll Performance = iota
	PerformanceUp
	PerformanceDown
	PerformanceFlat
)

// SortKey names the quote field to order by, descending
type SortKey string

const (
	SortNone          SortKey = ""
	SortPercentChange SortKey = "percent_change"
	SortVolume        SortKey = "volume"
	SortMarketCap     SortKey = "market_cap"
	SortIndexWeight   SortKey = "index_weight"
)

// Query filters quotes by sector and performance bucket, then sorts them
type Query struct {
	Sector      string
	Performance Performance
	Sort        SortKey
}

func (p Performance) String() string {
	switch p {
	case PerformanceUp:
		return "up"
	case PerformanceDown:
		return "down"
	case PerformanceFlat:
		return "flat"
	default:
		return "all"
	}
}

// Matches reports whether a percent change falls in the bucket
func (p Performance) Matches(percentChange float64) bool {
	switch p {
	case PerformanceUp:
		return percentChange > 0
	case PerformanceDown:
		return percentChange < 0
	case PerformanceFlat:
		return percentChange == 0
	default:
		return true
	}
}

// Apply returns the quotes matching q in the order requested by q.Sort. With
// SortNone the input order is kept.
func Apply(quotes []snapshot.Quote, q Query) ([]snapshot.Quote, error) {
	res := make([]snapshot.Quote, 0, len(quotes))
	for _, quote := range quotes {
		if !matchesSector(quote.Sector, q.Sector) {
			continue
		}
		if !q.Performance.Matches(quote.PercentChange) {
			continue
		}
		res = append(res, quote)
	}

	return Sort(res, q.Sort)
}

// Sort returns a copy of quotes ordered by key, descending. Ties keep their
// input order.
func Sort(quotes []snapshot.Quote, key SortKey) ([]snapshot.Quote, error) {
	res := make([]snapshot.Quote, len(quotes))
	copy(res, quotes)

	if key == SortNone {
		return res, nil
	}

	if !key.valid() {
		return nil, fmt.Errorf("%w: unknown sort key %q", data.ErrInvalidQuery, key)
	}

	slices.SortStableFunc(res, func(a, b snapshot.Quote) bool {
		return value(a, key) > value(b, key)
	})
	return res, nil
}

// Extremes returns the n highest and n lowest quotes by key. Both slices
// start at their extreme; lowest[0] has the smallest value.
func Extremes(quotes []snapshot.Quote, key SortKey, n int) (highest, lowest []snapshot.Quote, err error) {
	sorted, err := Sort(quotes, key)
	if err != nil {
		return nil, nil, err
	}

	if len(sorted) < n {
		n = len(sorted)
	}
	highest = sorted[:n]
	lowest = make([]snapshot.Quote, 0, n)
	for idx := len(sorted) - 1; idx >= len(sorted)-n; idx-- {
		lowest = append(lowest, sorted[idx])
	}
	return highest, lowest, nil
}

func (key SortKey) valid() bool {
	switch key {
	case SortNone, SortPercentChange, SortVolume, SortMarketCap, SortIndexWeight:
		return true
	default:
		return false
	}
}

func value(q snapshot.Quote, key SortKey) float64 {
	switch key {
	case SortPercentChange:
		return q.PercentChange
	case SortVolume:
		return q.Volume
	case SortMarketCap:
		return q.MarketCap
	case SortIndexWeight:
		return q.IndexWeight
	default:
		return 0
	}
}

func matchesSector(sector, want string) bool {
	if want == "" || strings.EqualFold(want, AllSectors) {
		return true
	}
	return sector == want
}
