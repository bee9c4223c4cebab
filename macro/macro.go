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

// Package macro generates the monthly macroeconomic indicators and the
// quarterly trade balance. Every field is drawn independently per period; no
// correlation between fields is modeled.
package macro

import (
	"context"
	"time"

	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/observability/opentelemetry"
	"github.com/penny-vault/mvmsim/rng"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Observation is one month of macroeconomic indicators
type Observation struct {
	Date       time.Time `json:"date"`
	Inflation  float64   `json:"inflation"`
	GDPGrowth  float64   `json:"gdpGrowth"`
	PolicyRate float64   `json:"policyRate"`
	USDRate    float64   `json:"usdRate"`
	EURRate    float64   `json:"eurRate"`
	Reserves   float64   `json:"reserves"`
	PublicDebt float64   `json:"publicDebt"`
}

// TradeObservation is one quarter of foreign trade, in millions of USD
type TradeObservation struct {
	Date           time.Time `json:"date"`
	Exports        float64   `json:"exports"`
	Imports        float64   `json:"imports"`
	Balance        float64   `json:"balance"`
	VanillaExports float64   `json:"vanillaExports"`
	CoffeeExports  float64   `json:"coffeeExports"`
	ShrimpExports  float64   `json:"shrimpExports"`
}

// Series is an immutable monthly series
type Series struct {
	observations []Observation
}

// TradeSeries is an immutable quarterly series
type TradeSeries struct {
	observations []TradeObservation
}

// Generate draws one observation per month end in iv
func Generate(ctx context.Context, iv data.Interval, src rng.Source) (*Series, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "macro.Generate")
	defer span.End()

	if err := iv.Valid(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid interval")
		log.Error().Err(err).Object("Interval", iv).Msg("cannot generate macro series")
		return nil, err
	}

	months := data.MonthEnds(iv)
	observations := make([]Observation, 0, len(months))
	for _, dt := range months {
		observations = append(observations, Observation{
			Date:       dt,
			Inflation:  src.Uniform(5, 12),
			GDPGrowth:  src.Uniform(-8, 8),
			PolicyRate: src.Uniform(8, 12),
			USDRate:    src.Uniform(3800, 4500),
			EURRate:    src.Uniform(4200, 5000),
			Reserves:   src.Uniform(800, 1500),
			PublicDebt: src.Uniform(35, 45),
		})
	}

	span.SetAttributes(attribute.Int("months", len(observations)))
	return &Series{observations: observations}, nil
}

// GenerateTrade draws one trade observation per quarter end in iv
func GenerateTrade(ctx context.Context, iv data.Interval, src rng.Source) (*TradeSeries, error) {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "macro.GenerateTrade")
	defer span.End()

	if err := iv.Valid(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid interval")
		return nil, err
	}

	quarters := data.QuarterEnds(iv)
	observations := make([]TradeObservation, 0, len(quarters))
	for _, dt := range quarters {
		observations = append(observations, TradeObservation{
			Date:           dt,
			Exports:        src.Uniform(200, 400),
			Imports:        src.Uniform(500, 700),
			Balance:        src.Uniform(-300, -100),
			VanillaExports: src.Uniform(50, 100),
			CoffeeExports:  src.Uniform(20, 50),
			ShrimpExports:  src.Uniform(60, 120),
		})
	}

	span.SetAttributes(attribute.Int("quarters", len(observations)))
	return &TradeSeries{observations: observations}, nil
}

// Observations returns a copy of the series in date order
func (s *Series) Observations() []Observation {
	res := make([]Observation, len(s.observations))
	copy(res, s.observations)
	return res
}

// Latest returns the most recent observation; ok is false for an empty series
func (s *Series) Latest() (obs Observation, ok bool) {
	if len(s.observations) == 0 {
		return Observation{}, false
	}
	return s.observations[len(s.observations)-1], true
}

func (s *Series) Len() int {
	return len(s.observations)
}

// Observations returns a copy of the series in date order
func (s *TradeSeries) Observations() []TradeObservation {
	res := make([]TradeObservation, len(s.observations))
	copy(res, s.observations)
	return res
}

// Latest returns the most recent observation; ok is false for an empty series
func (s *TradeSeries) Latest() (obs TradeObservation, ok bool) {
	if len(s.observations) == 0 {
		return TradeObservation{}, false
	}
	return s.observations[len(s.observations)-1], true
}

func (s *TradeSeries) Len() int {
	return len(s.observations)
}
