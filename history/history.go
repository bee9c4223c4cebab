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

// Package history generates the multi-year daily price and volume series for
// every entity in a catalog. Prices follow a shock-and-recovery regime keyed on
// the calendar year of the requested range.
package history

import (
	"context"
	"time"

	"github.com/penny-vault/mvmsim/catalog"
	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/observability/opentelemetry"
	"github.com/penny-vault/mvmsim/rng"
	"github.com/penny-vault/mvmsim/tradecron"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Observation is the price and volume of one entity on one day
type Observation struct {
	Date      time.Time `json:"date"`
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Sector    string    `json:"sector"`
	MarketCap float64   `json:"marketCap"`
}

// Regime is the range of the price multiplier applied during a period
type Regime struct {
	Min float64
	Max float64
}

var (
	ShockRegime    = Regime{Min: 0.3, Max: 0.6}
	ReboundRegime  = Regime{Min: 0.6, Max: 0.9}
	RecoveryRegime = Regime{Min: 0.9, Max: 1.2}
	GrowthRegime   = Regime{Min: 1.0, Max: 1.4}
)

// Generator builds historical series. It holds no state between calls other
// than its random source.
type Generator struct {
	catalog  *catalog.Catalog
	source   rng.Source
	calendar *tradecron.TradeCron
}

// Option configures a Generator
type Option func(*Generator)

// WithCalendar restricts generated dates to the trading days of tc
func WithCalendar(tc *tradecron.TradeCron) Option {
	return func(g *Generator) {
		g.calendar = tc
	}
}

// New creates a generator for every entity in cat drawing from src
func New(cat *catalog.Catalog, src rng.Source, opts ...Option) *Generator {
	g := &Generator{
		catalog: cat,
		source:  src,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RegimeFor returns the regime in effect on dt for a range that starts in
// firstYear: the first half of the first year is the shock, the second half
// the rebound, the following year the recovery and every later year growth.
func RegimeFor(dt time.Time, firstYear int) Regime {
	switch {
	case dt.Year() <= firstYear && dt.Month() <= time.June:
		return ShockRegime
	case dt.Year() <= firstYear:
		return ReboundRegime
	case dt.Year() == firstYear+1:
		return RecoveryRegime
	default:
		return GrowthRegime
	}
}

// Generate produces one observation per (date, entity) over iv ordered date
// major, entity minor. An inverted interval is a configuration error and no
// observations are produced.
func (g *Generator) Generate(ctx context.Context, iv data.Interval) (*Series, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "history.Generate")
	defer span.End()

	if err := iv.Valid(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid interval")
		log.Error().Err(err).Object("Interval", iv).Msg("cannot generate historical series")
		return nil, err
	}

	dates := g.dates(iv)
	entities := g.catalog.All()
	observations := make([]Observation, 0, len(dates)*len(entities))
	firstYear := iv.Begin.Year()

	for _, dt := range dates {
		regime := RegimeFor(dt, firstYear)
		for _, entity := range entities {
			base := entity.MarketCap / 1e6 * g.source.Uniform(0.1, 0.3)
			multiplier := g.source.Uniform(regime.Min, regime.Max)
			volatility := g.source.Uniform(0.92, 1.08)
			price := base * multiplier * volatility * g.source.Uniform(0.95, 1.05)
			volume := entity.AverageVolume * g.source.Uniform(0.3, 3.0)

			observations = append(observations, Observation{
				Date:      dt,
				Symbol:    entity.Symbol,
				Price:     price,
				Volume:    volume,
				Sector:    entity.Sector,
				MarketCap: entity.MarketCap * g.source.Uniform(0.9, 1.1),
			})
		}
	}

	span.SetAttributes(
		attribute.Int("dates", len(dates)),
		attribute.Int("observations", len(observations)),
	)

	log.Debug().Object("Interval", iv).Int("NumDates", len(dates)).Int("NumObservations", len(observations)).Msg("generated historical series")

	return newSeries(iv, dates, observations, g.catalog.Symbols()), nil
}

func (g *Generator) dates(iv data.Interval) []time.Time {
	days := data.Days(iv)
	if g.calendar == nil {
		return days
	}

	res := make([]time.Time, 0, len(days))
	for _, dt := range days {
		if g.calendar.IsTradeDay(dt) {
			res = append(res, dt)
		}
	}
	return res
}
