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

package snapshot

import (
	"fmt"

	"github.com/penny-vault/mvmsim/catalog"
	"github.com/penny-vault/mvmsim/history"
	"github.com/penny-vault/mvmsim/rng"
	"github.com/rs/zerolog/log"
)

// Book is the set of current quotes keyed by symbol, kept in catalog order.
// A Book is not safe for concurrent use; the engine guards it.
type Book struct {
	symbols []string
	quotes  map[string]*Quote
}

// NewBook builds a book from quotes in the given order
func NewBook(quotes ...Quote) *Book {
	b := &Book{
		symbols: make([]string, 0, len(quotes)),
		quotes:  make(map[string]*Quote, len(quotes)),
	}
	for _, q := range quotes {
		q := q
		if _, ok := b.quotes[q.Symbol]; !ok {
			b.symbols = append(b.symbols, q.Symbol)
		}
		b.quotes[q.Symbol] = &q
	}
	return b
}

// Derive builds the current session from the last historical price of every
// entity in cat. For each entity it draws, in order, the session change in
// [-8%, 8%], a volume factor in [0.5, 2.0], then open, high and low relative
// to the previous close. High and low are widened to include the price and
// the open; the price itself is never moved.
func Derive(series *history.Series, cat *catalog.Catalog, src rng.Source) (*Book, error) {
	quotes := make([]Quote, 0, cat.Len())
	for _, entity := range cat.All() {
		last, err := series.Last(entity.Symbol)
		if err != nil {
			log.Error().Err(err).Str("Symbol", entity.Symbol).Msg("no historical price to derive quote from")
			return nil, fmt.Errorf("derive %s: %w", entity.Symbol, err)
		}

		prevClose := last.Price
		change := src.Uniform(-0.08, 0.08)
		volumeFactor := src.Uniform(0.5, 2.0)

		q := Quote{
			Symbol:        entity.Symbol,
			Name:          entity.Name,
			Sector:        entity.Sector,
			PreviousClose: prevClose,
			Price:         floorPrice(prevClose + prevClose*change),
			Volume:        entity.AverageVolume * volumeFactor,
			MarketCap:     entity.MarketCap,
			DividendYield: entity.DividendYield,
			IndexWeight:   entity.IndexWeight,
			Open:          prevClose * src.Uniform(0.95, 1.05),
			High:          prevClose * src.Uniform(1.02, 1.08),
			Low:           prevClose * src.Uniform(0.92, 0.98),
		}
		q.PercentChange = (q.Price - prevClose) / prevClose * 100
		q.AbsoluteChange = q.Price - q.Open

		if q.Price > q.High || q.Price < q.Low {
			log.Debug().Object("Quote", q).Msg("session price outside drawn bounds; widening")
		}
		q.widen()
		if q.Open > q.High {
			q.High = q.Open
		}
		if q.Open < q.Low {
			q.Low = q.Open
		}

		quotes = append(quotes, q)
	}

	return NewBook(quotes...), nil
}

// Get returns a copy of the quote for symbol
func (b *Book) Get(symbol string) (Quote, bool) {
	q, ok := b.quotes[symbol]
	if !ok {
		return Quote{}, false
	}
	return *q, true
}

// Ref returns the stored quote for in place mutation
func (b *Book) Ref(symbol string) (*Quote, bool) {
	q, ok := b.quotes[symbol]
	return q, ok
}

// Len returns the number of quotes
func (b *Book) Len() int {
	return len(b.symbols)
}

// Symbols returns the symbols in catalog order
func (b *Book) Symbols() []string {
	res := make([]string, len(b.symbols))
	copy(res, b.symbols)
	return res
}

// List returns a copy of every quote in catalog order
func (b *Book) List() []Quote {
	res := make([]Quote, 0, len(b.symbols))
	for _, sym := range b.symbols {
		res = append(res, *b.quotes[sym])
	}
	return res
}

// Map returns a symbol keyed copy of every quote
func (b *Book) Map() map[string]Quote {
	res := make(map[string]Quote, len(b.symbols))
	for _, sym := range b.symbols {
		res[sym] = *b.quotes[sym]
	}
	return res
}

// Clone returns a deep copy of the book
func (b *Book) Clone() *Book {
	return NewBook(b.List()...)
}
