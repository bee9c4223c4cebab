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

package engine

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/penny-vault/mvmsim/filter"
	"github.com/penny-vault/mvmsim/macro"
	"github.com/penny-vault/mvmsim/snapshot"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// number of quotes listed as top gainers and losers
const topN = 3

// Summary is the headline view of the market
type Summary struct {
	Tick        int                `json:"tick"`
	LastTick    time.Time          `json:"lastTick"`
	IndexLevel  float64            `json:"indexLevel"`
	MeanChange  float64            `json:"meanChange"`
	TotalVolume float64            `json:"totalVolume"`
	Advancers   int                `json:"advancers"`
	Decliners   int                `json:"decliners"`
	Unchanged   int                `json:"unchanged"`
	TopGainers  []snapshot.Quote   `json:"topGainers"`
	TopLosers   []snapshot.Quote   `json:"topLosers"`
	Macro       *macro.Observation `json:"macro,omitempty"`
}

// Summary computes the headline metrics of the current quotes. The index
// level is the mean price times 100.
func (e *Engine) Summary() Summary {
	e.mu.RLock()
	quotes := e.book.List()
	res := Summary{
		Tick:     e.ticks,
		LastTick: e.lastTick,
	}
	e.mu.RUnlock()

	prices := make([]float64, len(quotes))
	changes := make([]float64, len(quotes))
	volumes := make([]float64, len(quotes))
	for idx, q := range quotes {
		prices[idx] = q.Price
		changes[idx] = q.PercentChange
		volumes[idx] = q.Volume
		switch {
		case filter.PerformanceUp.Matches(q.PercentChange):
			res.Advancers++
		case filter.PerformanceDown.Matches(q.PercentChange):
			res.Decliners++
		default:
			res.Unchanged++
		}
	}

	if len(quotes) > 0 {
		res.IndexLevel = stat.Mean(prices, nil) * 100
		res.MeanChange = stat.Mean(changes, nil)
		res.TotalVolume = floats.Sum(volumes)
	}

	if latest, ok := e.macro.Latest(); ok {
		res.Macro = &latest
	}

	gainers, losers, err := filter.Extremes(quotes, filter.SortPercentChange, topN)
	if err != nil {
		log.Error().Err(err).Msg("could not rank quotes for summary")
		res.TopGainers = []snapshot.Quote{}
		res.TopLosers = []snapshot.Quote{}
		return res
	}
	res.TopGainers = gainers
	res.TopLosers = losers

	return res
}

// Version returns a 16-byte blake3 digest, hex encoded, of the engine id, the
// tick count and every quote. It changes whenever a tick changes a quote.
func (e *Engine) Version() (string, error) {
	e.mu.RLock()
	quotes := e.book.List()
	ticks := e.ticks
	e.mu.RUnlock()

	h := blake3.New()

	if _, err := h.Write([]byte(e.id.String())); err != nil {
		log.Error().Stack().Err(err).Msg("could not write engine id to blake3 hasher")
		return "", err
	}

	if _, err := h.Write([]byte(fmt.Sprintf("%d", ticks))); err != nil {
		log.Error().Stack().Err(err).Msg("could not write tick count to blake3 hasher")
		return "", err
	}

	encoded, err := json.Marshal(quotes)
	if err != nil {
		log.Error().Stack().Err(err).Msg("could not serialize quotes")
		return "", err
	}

	if _, err := h.Write(encoded); err != nil {
		log.Error().Stack().Err(err).Msg("could not write quotes to blake3 hasher")
		return "", err
	}

	digest := h.Digest()
	buf := make([]byte, 16)
	n, err := digest.Read(buf)
	if err != nil {
		return "", err
	}
	if n != 16 {
		return "", ErrGenerateHash
	}

	return hex.EncodeToString(buf), nil
}
