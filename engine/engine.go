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

// Package engine owns one simulated market: the catalog, its historical and
// macro series, the live quote book and the sector aggregator. Callers create
// an Engine with New, drive it with Tick on their own schedule and read it
// through copy-returning accessors.
//
// Tick takes an exclusive lock; every reader takes a shared lock and gets a
// copy, so readers always observe a consistent book. Historical and macro
// series are immutable and are handed out without copying the underlying data.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/penny-vault/mvmsim/catalog"
	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/filter"
	"github.com/penny-vault/mvmsim/history"
	"github.com/penny-vault/mvmsim/macro"
	"github.com/penny-vault/mvmsim/observability/opentelemetry"
	"github.com/penny-vault/mvmsim/rng"
	"github.com/penny-vault/mvmsim/sector"
	"github.com/penny-vault/mvmsim/snapshot"
	"github.com/penny-vault/mvmsim/tradecron"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultTickProbability is the chance that a quote moves on a tick
	DefaultTickProbability = 0.4

	// MaxTickChange bounds the per-tick price change fraction
	MaxTickChange = 0.04
)

// Config describes the market to simulate
type Config struct {
	// Catalog of listed entities; nil selects catalog.Default()
	Catalog *catalog.Catalog

	// Interval of the historical and macro series
	Interval data.Interval

	// Source drives every generator. When nil a source is built from Seed,
	// or from the wall clock when Seed is nil as well.
	Source rng.Source
	Seed   *uint64

	// TickSource drives Tick; nil shares Source
	TickSource rng.Source

	SectorMode sector.Mode

	// TickProbability of a quote moving on a tick; 0 selects the default
	TickProbability float64

	// Calendar restricts historical dates to trading days when set
	Calendar *tradecron.TradeCron

	// Now returns the current time; nil selects time.Now
	Now func() time.Time
}

// TickResult describes the outcome of one Tick
type TickResult struct {
	Tick     int       `json:"tick"`
	At       time.Time `json:"at"`
	Selected []string  `json:"selected"`
}

// Engine is a running simulation. The zero value is not usable; use New.
type Engine struct {
	id          uuid.UUID
	catalog     *catalog.Catalog
	tickSource  rng.Source
	probability float64
	now         func() time.Time

	history    *history.Series
	macro      *macro.Series
	trade      *macro.TradeSeries
	aggregator *sector.Aggregator

	mu       sync.RWMutex
	book     *snapshot.Book
	ticks    int
	lastTick time.Time
}

// New initializes a simulation: it generates the historical series, derives
// the session quotes, sets up sector aggregation and generates the macro and
// trade series. Malformed configuration is reported as data.ErrConfiguration
// and no engine is returned.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "engine.New")
	defer span.End()

	fail := func(err error) (*Engine, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "engine initialization failed")
		log.Error().Err(err).Msg("could not initialize engine")
		return nil, err
	}

	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Catalog.Len() == 0 {
		return fail(fmt.Errorf("%w: catalog is empty", data.ErrConfiguration))
	}

	if err := cfg.Interval.Valid(); err != nil {
		return fail(err)
	}

	if cfg.TickProbability == 0 {
		cfg.TickProbability = DefaultTickProbability
	}
	if cfg.TickProbability < 0 || cfg.TickProbability > 1 {
		return fail(fmt.Errorf("%w: tick probability %f not in [0, 1]", data.ErrConfiguration, cfg.TickProbability))
	}

	if cfg.Source == nil {
		if cfg.Seed != nil {
			cfg.Source = rng.New(*cfg.Seed)
		} else {
			log.Info().Msg("no seed configured; using an unseeded random source")
			cfg.Source = rng.NewUnseeded()
		}
	}
	if cfg.TickSource == nil {
		cfg.TickSource = cfg.Source
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	opts := make([]history.Option, 0, 1)
	if cfg.Calendar != nil {
		opts = append(opts, history.WithCalendar(cfg.Calendar))
	}

	series, err := history.New(cfg.Catalog, cfg.Source, opts...).Generate(ctx, cfg.Interval)
	if err != nil {
		return fail(err)
	}

	book, err := snapshot.Derive(series, cfg.Catalog, cfg.Source)
	if err != nil {
		return fail(fmt.Errorf("%w: %s", data.ErrConfiguration, err))
	}

	aggregator := sector.New(cfg.Catalog, cfg.Source, cfg.SectorMode)

	macroSeries, err := macro.Generate(ctx, cfg.Interval, cfg.Source)
	if err != nil {
		return fail(err)
	}

	tradeSeries, err := macro.GenerateTrade(ctx, cfg.Interval, cfg.Source)
	if err != nil {
		return fail(err)
	}

	e := &Engine{
		id:          uuid.New(),
		catalog:     cfg.Catalog,
		tickSource:  cfg.TickSource,
		probability: cfg.TickProbability,
		now:         cfg.Now,
		history:     series,
		macro:       macroSeries,
		trade:       tradeSeries,
		aggregator:  aggregator,
		book:        book,
	}

	span.SetAttributes(
		attribute.String("engine.id", e.id.String()),
		attribute.Int("entities", cfg.Catalog.Len()),
	)

	log.Info().
		Str("EngineID", e.id.String()).
		Object("Interval", cfg.Interval).
		Int("NumEntities", cfg.Catalog.Len()).
		Int("NumObservations", series.Len()).
		Int("NumMonths", macroSeries.Len()).
		Str("SectorMode", cfg.SectorMode.String()).
		Msg("initialized market engine")

	return e, nil
}

// ID uniquely identifies this engine instance
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Entities returns the catalog keyed by symbol
func (e *Engine) Entities() map[string]catalog.Entity {
	return e.catalog.Map()
}

// Catalog returns the engine's catalog
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// History returns the immutable historical series
func (e *Engine) History() *history.Series {
	return e.history
}

// Macro returns the immutable monthly macro series
func (e *Engine) Macro() *macro.Series {
	return e.macro
}

// Trade returns the immutable quarterly trade series
func (e *Engine) Trade() *macro.TradeSeries {
	return e.trade
}

// Quotes returns a copy of the current quotes keyed by symbol
func (e *Engine) Quotes() map[string]snapshot.Quote {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.Map()
}

// QuoteList returns a copy of the current quotes in catalog order
func (e *Engine) QuoteList() []snapshot.Quote {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.List()
}

// Quote returns a copy of the current quote of symbol
func (e *Engine) Quote(symbol string) (snapshot.Quote, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	q, ok := e.book.Get(symbol)
	if !ok {
		return snapshot.Quote{}, fmt.Errorf("%w: %s", data.ErrUnknownSymbol, symbol)
	}
	return q, nil
}

// Sectors returns the sector summaries computed from the current quotes
func (e *Engine) Sectors() []sector.Summary {
	return e.aggregator.Aggregate(e.Quotes())
}

// TickCount returns the number of ticks applied so far
func (e *Engine) TickCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ticks
}

// Query filters and sorts a consistent copy of the current quotes
func (e *Engine) Query(q filter.Query) ([]snapshot.Quote, error) {
	return filter.Apply(e.QuoteList(), q)
}

// Screen applies the conjunctive criteria c to a consistent copy of the
// current quotes
func (e *Engine) Screen(c filter.Criteria) ([]snapshot.Quote, error) {
	return filter.Screen(e.QuoteList(), c)
}

// Tick advances the simulation by one step. For every entity in catalog order
// one unit draw decides whether the quote moves; a moving quote then draws a
// change in [-4%, 4%] applied to its live price and a volume factor in
// [0.8, 1.3]. Quotes that are not selected are left untouched. Tick never
// blocks beyond the update itself and never sleeps.
func (e *Engine) Tick(ctx context.Context) TickResult {
	_, span := otel.Tracer(opentelemetry.Name).Start(ctx, "engine.Tick")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	selected := make([]string, 0, e.book.Len())
	for _, symbol := range e.book.Symbols() {
		if e.tickSource.Float64() >= e.probability {
			continue
		}

		change := e.tickSource.Uniform(-MaxTickChange, MaxTickChange)
		volumeFactor := e.tickSource.Uniform(0.8, 1.3)

		q, _ := e.book.Ref(symbol)
		q.Move(change, volumeFactor)
		if err := q.Check(); err != nil {
			// Move clamps the price and widens the bounds; reaching this is a bug
			log.Error().Err(err).Object("Quote", *q).Msg("quote invariant violated after tick")
		}

		selected = append(selected, symbol)
	}

	e.ticks++
	e.lastTick = e.now()

	span.SetAttributes(
		attribute.Int("tick", e.ticks),
		attribute.Int("selected", len(selected)),
	)

	log.Debug().Int("Tick", e.ticks).Strs("Selected", selected).Msg("applied tick")

	return TickResult{
		Tick:     e.ticks,
		At:       e.lastTick,
		Selected: selected,
	}
}
