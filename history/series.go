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

package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/dataframe"
	"github.com/rs/zerolog/log"
)

const (
	PriceCol     = "price"
	VolumeCol    = "volume"
	MarketCapCol = "market_cap"
)

// Series is an immutable historical series. It is safe to share between
// goroutines.
type Series struct {
	interval     data.Interval
	dates        []time.Time
	symbols      []string
	observations []Observation
}

func newSeries(iv data.Interval, dates []time.Time, observations []Observation, symbols []string) *Series {
	return &Series{
		interval:     iv,
		dates:        dates,
		symbols:      symbols,
		observations: observations,
	}
}

// Observations returns a copy of every observation, date major
func (s *Series) Observations() []Observation {
	res := make([]Observation, len(s.observations))
	copy(res, s.observations)
	return res
}

// Len returns the number of observations
func (s *Series) Len() int {
	return len(s.observations)
}

// Interval returns the range the series was generated for
func (s *Series) Interval() data.Interval {
	return s.interval
}

// Dates returns a copy of the generated dates in order
func (s *Series) Dates() []time.Time {
	res := make([]time.Time, len(s.dates))
	copy(res, s.dates)
	return res
}

// Symbols returns the symbols present in the series in catalog order
func (s *Series) Symbols() []string {
	res := make([]string, len(s.symbols))
	copy(res, s.symbols)
	return res
}

// Last returns the most recent observation of symbol
func (s *Series) Last(symbol string) (Observation, error) {
	for idx := len(s.observations) - 1; idx >= 0; idx-- {
		if s.observations[idx].Symbol == symbol {
			return s.observations[idx], nil
		}
	}
	return Observation{}, fmt.Errorf("%w: %s", data.ErrUnknownSymbol, symbol)
}

// Between returns the observations dated on or between begin and end
func (s *Series) Between(begin, end time.Time) []Observation {
	iv := data.Interval{Begin: begin, End: end}
	if iv.Valid() != nil {
		return []Observation{}
	}

	// observations are date major so the matching rows are contiguous
	first := sort.Search(len(s.observations), func(i int) bool {
		return !s.observations[i].Date.Before(begin)
	})
	last := sort.Search(len(s.observations), func(i int) bool {
		return s.observations[i].Date.After(end)
	})

	res := make([]Observation, last-first)
	copy(res, s.observations[first:last])
	return res
}

// Frame returns the price, volume and market cap of symbol indexed by date
func (s *Series) Frame(symbol string) (*dataframe.DataFrame[time.Time], error) {
	df := dataframe.New[time.Time](PriceCol, VolumeCol, MarketCapCol)
	for _, obs := range s.observations {
		if obs.Symbol != symbol {
			continue
		}
		if err := df.InsertRow(obs.Date, obs.Price, obs.Volume, obs.MarketCap); err != nil {
			log.Error().Err(err).Str("Symbol", symbol).Msg("could not build frame")
			return nil, err
		}
	}

	if df.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", data.ErrUnknownSymbol, symbol)
	}
	return df, nil
}

// SectorFrame returns the mean price of each sector on each date. Columns are
// sector names sorted alphabetically.
func (s *Series) SectorFrame() *dataframe.DataFrame[time.Time] {
	sectors := make([]string, 0)
	sectorIdx := make(map[string]int)
	for _, obs := range s.observations {
		if _, ok := sectorIdx[obs.Sector]; !ok {
			sectorIdx[obs.Sector] = 0
			sectors = append(sectors, obs.Sector)
		}
	}
	sort.Strings(sectors)
	for idx, sector := range sectors {
		sectorIdx[sector] = idx
	}

	df := dataframe.New[time.Time](sectors...)
	sums := make([]float64, len(sectors))
	counts := make([]float64, len(sectors))

	flush := func(dt time.Time) {
		row := make([]float64, len(sectors))
		for idx := range sums {
			if counts[idx] > 0 {
				row[idx] = sums[idx] / counts[idx]
			}
			sums[idx] = 0
			counts[idx] = 0
		}
		if err := df.InsertRow(dt, row...); err != nil {
			log.Warn().Err(err).Time("Date", dt).Msg("skipping sector row")
		}
	}

	for idx, obs := range s.observations {
		col := sectorIdx[obs.Sector]
		sums[col] += obs.Price
		counts[col]++
		if idx == len(s.observations)-1 || !s.observations[idx+1].Date.Equal(obs.Date) {
			flush(obs.Date)
		}
	}

	return df
}
