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

// Package snapshot holds the current session quotes. A Book is derived once
// from the tail of a historical series and afterwards only changes through
// Quote.Move.
package snapshot

import (
	"fmt"
	"math"

	"github.com/penny-vault/mvmsim/data"
	"github.com/rs/zerolog"
)

// MinPrice is the floor applied to every quote price
const MinPrice = 0.01

// Quote is the live session state of one entity. After every mutation
// Low <= Price <= High, Price >= MinPrice and AbsoluteChange == Price - Open.
type Quote struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Sector         string  `json:"sector"`
	Price          float64 `json:"price"`
	PreviousClose  float64 `json:"previousClose"`
	PercentChange  float64 `json:"percentChange"`
	AbsoluteChange float64 `json:"absoluteChange"`
	Volume         float64 `json:"volume"`
	MarketCap      float64 `json:"marketCap"`
	DividendYield  float64 `json:"dividendYield"`
	IndexWeight    float64 `json:"indexWeight"`
	Open           float64 `json:"open"`
	High           float64 `json:"high"`
	Low            float64 `json:"low"`
}

// Move applies change (a fraction, e.g. 0.02 for +2%) to the live price and
// scales volume by volumeFactor. PercentChange is measured against the price
// before this move, not against the open.
func (q *Quote) Move(change, volumeFactor float64) {
	pre := q.Price
	q.Price = floorPrice(pre * (1 + change))
	q.PercentChange = (q.Price - pre) / pre * 100
	q.AbsoluteChange = q.Price - q.Open
	q.widen()
	q.Volume *= volumeFactor
}

// Check reports the first violated invariant, if any
func (q *Quote) Check() error {
	switch {
	case math.IsNaN(q.Price) || q.Price <= 0:
		return fmt.Errorf("%w: %s price %f is not positive", data.ErrInvariantViolation, q.Symbol, q.Price)
	case q.High < q.Low:
		return fmt.Errorf("%w: %s high %f below low %f", data.ErrInvariantViolation, q.Symbol, q.High, q.Low)
	case q.Price > q.High || q.Price < q.Low:
		return fmt.Errorf("%w: %s price %f outside [%f, %f]", data.ErrInvariantViolation, q.Symbol, q.Price, q.Low, q.High)
	case q.AbsoluteChange != q.Price-q.Open:
		return fmt.Errorf("%w: %s absolute change out of date", data.ErrInvariantViolation, q.Symbol)
	}
	return nil
}

// MarshalZerologObject implement the log marshaller interface for zerolog
func (q Quote) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Symbol", q.Symbol).
		Float64("Price", q.Price).
		Float64("PercentChange", q.PercentChange).
		Float64("Open", q.Open).
		Float64("High", q.High).
		Float64("Low", q.Low).
		Float64("Volume", q.Volume)
}

// widen extends the session bounds so they include the current price
func (q *Quote) widen() {
	if q.Price > q.High {
		q.High = q.Price
	}
	if q.Price < q.Low {
		q.Low = q.Price
	}
}

func floorPrice(price float64) float64 {
	if math.IsNaN(price) || price < MinPrice {
		return MinPrice
	}
	return price
}
