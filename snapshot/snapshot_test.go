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

package snapshot_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/mvmsim/catalog"
	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/history"
	"github.com/penny-vault/mvmsim/rng"
	"github.com/penny-vault/mvmsim/snapshot"
)

func oneEntity() *catalog.Catalog {
	cat, err := catalog.New(catalog.Entity{
		Symbol:        "TELMA",
		Name:          "Telma Madagascar",
		Sector:        "Telecommunications",
		MarketCap:     280e6,
		DividendYield: 3.8,
		IndexWeight:   22.5,
		AverageVolume: 85000,
	})
	Expect(err).NotTo(HaveOccurred())
	return cat
}

func buildSeries(cat *catalog.Catalog) *history.Series {
	iv := data.Interval{
		Begin: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	series, err := history.New(cat, rng.New(3)).Generate(context.Background(), iv)
	Expect(err).NotTo(HaveOccurred())
	return series
}

var _ = Describe("Snapshot", func() {
	Describe("deriving the session", func() {
		var (
			cat       *catalog.Catalog
			series    *history.Series
			prevClose float64
		)

		BeforeEach(func() {
			cat = oneEntity()
			series = buildSeries(cat)
			last, err := series.Last("TELMA")
			Expect(err).NotTo(HaveOccurred())
			prevClose = last.Price
		})

		It("starts from the last historical price", func() {
			// change 0, volume 1.25x, open 1.0, high 1.05, low 0.95
			book, err := snapshot.Derive(series, cat, rng.NewScripted(0.5))
			Expect(err).NotTo(HaveOccurred())
			q, ok := book.Get("TELMA")
			Expect(ok).To(BeTrue())
			Expect(q.PreviousClose).To(Equal(prevClose))
			Expect(q.Price).To(BeNumerically("~", prevClose, 1e-9))
			Expect(q.Volume).To(BeNumerically("~", 85000*1.25, 1e-6))
			Expect(q.High).To(BeNumerically("~", prevClose*1.05, 1e-9))
			Expect(q.Low).To(BeNumerically("~", prevClose*0.95, 1e-9))
			Expect(q.MarketCap).To(Equal(280e6))
			Expect(q.DividendYield).To(Equal(3.8))
			Expect(q.IndexWeight).To(Equal(22.5))
			Expect(q.AbsoluteChange).To(Equal(q.Price - q.Open))
			Expect(q.Check()).To(Succeed())
		})

		It("widens the high when the drawn price is above it", func() {
			// change +8%, volume, open 1.0, high 1.02, low 0.98
			book, err := snapshot.Derive(series, cat, rng.NewScripted(1.0, 0.5, 0.5, 0.0, 1.0))
			Expect(err).NotTo(HaveOccurred())
			q, _ := book.Get("TELMA")
			Expect(q.Price).To(BeNumerically("~", prevClose*1.08, 1e-9))
			Expect(q.High).To(Equal(q.Price))
			Expect(q.Low).To(BeNumerically("~", prevClose*0.98, 1e-9))
			Expect(q.PercentChange).To(BeNumerically("~", 8, 1e-9))
			Expect(q.Check()).To(Succeed())
		})

		It("widens the low when the drawn price is below it", func() {
			book, err := snapshot.Derive(series, cat, rng.NewScripted(0.0, 0.5, 0.5, 1.0, 1.0))
			Expect(err).NotTo(HaveOccurred())
			q, _ := book.Get("TELMA")
			Expect(q.Price).To(BeNumerically("~", prevClose*0.92, 1e-9))
			Expect(q.Low).To(Equal(q.Price))
			Expect(q.High).To(BeNumerically("~", prevClose*1.08, 1e-9))
			Expect(q.Check()).To(Succeed())
		})

		It("keeps the open inside the session bounds", func() {
			book, err := snapshot.Derive(series, cat, rng.NewScripted(0.5, 0.5, 1.0, 0.0, 0.5))
			Expect(err).NotTo(HaveOccurred())
			q, _ := book.Get("TELMA")
			Expect(q.Open).To(BeNumerically("~", prevClose*1.05, 1e-9))
			Expect(q.High).To(Equal(q.Open))
		})

		It("holds every invariant for seeded draws", func() {
			full := catalog.Default()
			fullSeries := buildSeries(full)
			for seed := uint64(0); seed < 50; seed++ {
				book, err := snapshot.Derive(fullSeries, full, rng.New(seed))
				Expect(err).NotTo(HaveOccurred())
				Expect(book.Symbols()).To(Equal(full.Symbols()))
				for _, q := range book.List() {
					Expect(q.Check()).To(Succeed())
				}
			}
		})

		It("fails when the series lacks a catalog symbol", func() {
			other, err := catalog.New(catalog.Entity{Symbol: "OTHER", MarketCap: 1, AverageVolume: 1})
			Expect(err).NotTo(HaveOccurred())
			_, err = snapshot.Derive(series, other, rng.New(1))
			Expect(errors.Is(err, data.ErrUnknownSymbol)).To(BeTrue())
		})
	})

	Describe("moving a quote", func() {
		var q snapshot.Quote

		BeforeEach(func() {
			q = snapshot.Quote{
				Symbol: "X",
				Price:  100,
				Open:   100,
				High:   101,
				Low:    99,
				Volume: 1000,
			}
		})

		It("compounds on the live price", func() {
			q.Move(0.02, 1.1)
			Expect(q.Price).To(BeNumerically("~", 102, 1e-9))
			Expect(q.PercentChange).To(BeNumerically("~", 2, 1e-9))
			Expect(q.AbsoluteChange).To(Equal(q.Price - q.Open))
			Expect(q.High).To(Equal(q.Price))
			Expect(q.Low).To(Equal(99.0))
			Expect(q.Volume).To(BeNumerically("~", 1100, 1e-9))

			q.Move(0.02, 1)
			Expect(q.Price).To(BeNumerically("~", 104.04, 1e-9))
			// relative to the pre-move price, not the open
			Expect(q.PercentChange).To(BeNumerically("~", 2, 1e-9))
			Expect(q.AbsoluteChange).To(BeNumerically("~", 4.04, 1e-9))
		})

		It("extends the low and never shrinks the high", func() {
			q.Move(-0.04, 1)
			Expect(q.Low).To(Equal(q.Price))
			Expect(q.High).To(Equal(101.0))
			Expect(q.Check()).To(Succeed())
		})

		It("reports a zero change as flat", func() {
			q.Move(0, 1)
			Expect(q.PercentChange).To(Equal(0.0))
			Expect(q.Price).To(Equal(100.0))
		})

		It("floors the price at a positive minimum", func() {
			q.Move(-2, 1)
			Expect(q.Price).To(Equal(snapshot.MinPrice))
			Expect(q.Low).To(Equal(snapshot.MinPrice))
			Expect(q.Check()).To(Succeed())

			q.Move(-0.5, 1)
			Expect(q.Price).To(Equal(snapshot.MinPrice))
			Expect(q.PercentChange).To(Equal(0.0))
		})
	})

	Describe("checking invariants", func() {
		It("flags a price outside the bounds", func() {
			q := snapshot.Quote{Symbol: "X", Price: 10, High: 9, Low: 8}
			Expect(errors.Is(q.Check(), data.ErrInvariantViolation)).To(BeTrue())
		})

		It("flags a non-positive price", func() {
			q := snapshot.Quote{Symbol: "X", Price: 0}
			Expect(errors.Is(q.Check(), data.ErrInvariantViolation)).To(BeTrue())
		})
	})

	Describe("a book", func() {
		It("returns copies", func() {
			book := snapshot.NewBook(snapshot.Quote{Symbol: "A", Price: 1}, snapshot.Quote{Symbol: "B", Price: 2})
			list := book.List()
			list[0].Price = 99
			m := book.Map()
			Expect(m["A"].Price).To(Equal(1.0))

			clone := book.Clone()
			ref, ok := clone.Ref("A")
			Expect(ok).To(BeTrue())
			ref.Price = 5
			orig, _ := book.Get("A")
			Expect(orig.Price).To(Equal(1.0))
			Expect(book.Symbols()).To(Equal([]string{"A", "B"}))
			Expect(book.Len()).To(Equal(2))
		})
	})
})
