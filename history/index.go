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
	"math"
	"time"

	"github.com/penny-vault/mvmsim/common"
	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/dataframe"
	"github.com/rs/zerolog/log"
)

const IndexCol = "index"

// IndexPoint is the market index on one date
type IndexPoint struct {
	Date  time.Time `json:"date"`
	Level float64   `json:"level"`
	SMA   *float64  `json:"sma,omitempty"`
}

// IndexReport is the market index over a date range along with its range
// statistics. Begin and End are clamped to the generated series.
type IndexReport struct {
	Begin    time.Time    `json:"begin"`
	End      time.Time    `json:"end"`
	Lookback int          `json:"lookback,omitempty"`
	High     float64      `json:"high"`
	Low      float64      `json:"low"`
	Mean     float64      `json:"mean"`
	Last     float64      `json:"last"`
	Points   []IndexPoint `json:"points"`
}

// IndexFrame returns the market index on each date: the mean price of every
// entity listed that day times 100
func (s *Series) IndexFrame() *dataframe.DataFrame[time.Time] {
	df := dataframe.New[time.Time](IndexCol)
	sum := 0.0
	count := 0.0
	for idx, obs := range s.observations {
		sum += obs.Price
		count++
		if idx == len(s.observations)-1 || !s.observations[idx+1].Date.Equal(obs.Date) {
			if err := df.InsertRow(obs.Date, sum/count); err != nil {
				log.Warn().Err(err).Time("Date", obs.Date).Msg("skipping index row")
			}
			sum = 0
			count = 0
		}
	}
	return df.MulScalar(100)
}

// IndexReport returns the index on the dates of iv that fall inside the
// series. A positive lookback adds a simple moving average computed over the
// whole series so the first points of iv are not left warming up.
func (s *Series) IndexReport(iv data.Interval, lookback int) IndexReport {
	res := IndexReport{
		Begin:    iv.Begin,
		End:      iv.End,
		Lookback: lookback,
		Points:   []IndexPoint{},
	}

	if !s.interval.Overlaps(iv) {
		log.Debug().Object("Requested", iv).Object("Series", s.interval).Msg("index range outside series")
		return res
	}

	res.Begin = common.MaxTime(iv.Begin, s.interval.Begin)
	res.End = common.MinTime(iv.End, s.interval.End)

	full := s.IndexFrame()
	df := full.Trim(res.Begin, res.End)
	if df.Len() == 0 {
		return res
	}

	res.High = df.Max(IndexCol)
	res.Low = df.Min(IndexCol)
	res.Mean = df.Mean(IndexCol)
	res.Last = df.Last().Vals[0][0]

	var sma map[time.Time]float64
	if lookback > 0 {
		sma = full.SMA(lookback).AsMap(IndexCol)
	}

	for idx, dt := range df.Index {
		pt := IndexPoint{
			Date:  dt,
			Level: df.Vals[0][idx],
		}
		if avg, ok := sma[dt]; ok && !math.IsNaN(avg) {
			pt.SMA = &avg
		}
		res.Points = append(res.Points, pt)
	}

	return res
}
