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

package history_test

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
	"github.com/penny-vault/mvmsim/tradecron"
)

func twoEntities() *catalog.Catalog {
	cat, err := catalog.New(
		catalog.Entity{Symbol: "AAA", Sector: "Finance", MarketCap: 100e6, AverageVolume: 1000, IndexWeight: 10},
		catalog.Entity{Symbol: "BBB", Sector: "Mining", MarketCap: 50e6, AverageVolume: 500, IndexWeight: 5},
	)
	Expect(err).NotTo(HaveOccurred())
	return cat
}

func day(year int, month time.Month, dd int) time.Time {
	return time.Date(year, month, dd, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("Historical series", func() {
	var (
		ctx context.Context
		cat *catalog.Catalog
	)

	BeforeEach(func() {
		ctx = context.Background()
		cat = twoEntities()
	})

	Context("with two entities over three days", func() {
		var series *history.Series

		BeforeEach(func() {
			var err error
			gen := history.New(cat, rng.New(1))
			series, err = gen.Generate(ctx, data.Interval{Begin: day(2020, 1, 1), End: day(2020, 1, 3)})
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces one observation per date and entity", func() {
			Expect(series.Len()).To(Equal(6))
			Expect(series.Dates()).To(HaveLen(3))
		})

		It("has positive prices and volumes", func() {
			for _, obs := range series.Observations() {
				Expect(obs.Price).To(BeNumerically(">", 0))
				Expect(obs.Volume).To(BeNumerically(">", 0))
			}
		})

		It("orders observations date major, entity minor", func() {
			obs := series.Observations()
			Expect(obs[0].Symbol).To(Equal("AAA"))
			Expect(obs[1].Symbol).To(Equal("BBB"))
			Expect(obs[0].Date).To(Equal(obs[1].Date))
			Expect(obs[2].Date).To(Equal(day(2020, 1, 2)))
			Expect(obs[5].Date).To(Equal(day(2020, 1, 3)))
		})

		It("copies the sector from the catalog", func() {
			obs := series.Observations()
			Expect(obs[1].Sector).To(Equal("Mining"))
		})

		It("returns the most recent observation of a symbol", func() {
			last, err := series.Last("BBB")
			Expect(err).NotTo(HaveOccurred())
			Expect(last.Date).To(Equal(day(2020, 1, 3)))
			Expect(last).To(Equal(series.Observations()[5]))
		})

		It("reports unknown symbols", func() {
			_, err := series.Last("ZZZ")
			Expect(errors.Is(err, data.ErrUnknownSymbol)).To(BeTrue())
			_, err = series.Frame("ZZZ")
			Expect(errors.Is(err, data.ErrUnknownSymbol)).To(BeTrue())
		})

		It("builds a per-symbol frame", func() {
			df, err := series.Frame("AAA")
			Expect(err).NotTo(HaveOccurred())
			Expect(df.Len()).To(Equal(3))
			Expect(df.ColNames).To(Equal([]string{history.PriceCol, history.VolumeCol, history.MarketCapCol}))
			Expect(df.Start()).To(Equal(day(2020, 1, 1)))
		})

		It("builds a sector frame of mean prices", func() {
			df := series.SectorFrame()
			Expect(df.Len()).To(Equal(3))
			Expect(df.ColNames).To(Equal([]string{"Finance", "Mining"}))
			obs := series.Observations()
			Expect(df.Vals[1][0]).To(Equal(obs[1].Price))
		})

		It("selects observations between two dates", func() {
			obs := series.Between(day(2020, 1, 2), day(2020, 1, 2))
			Expect(obs).To(HaveLen(2))
			Expect(series.Between(day(2020, 1, 3), day(2020, 1, 1))).To(BeEmpty())
			Expect(series.Between(day(2019, 1, 1), day(2021, 1, 1))).To(HaveLen(6))
		})
	})

	Context("with a scripted source", func() {
		It("multiplies base, regime, volatility and jitter", func() {
			gen := history.New(cat, rng.NewScripted(0.5))
			series, err := gen.Generate(ctx, data.Interval{Begin: day(2020, 1, 1), End: day(2020, 1, 1)})
			Expect(err).NotTo(HaveOccurred())
			obs := series.Observations()
			// 100e6 / 1e6 * 0.2 * 0.45 * 1.0 * 1.0
			Expect(obs[0].Price).To(BeNumerically("~", 9.0, 1e-9))
			Expect(obs[0].Volume).To(BeNumerically("~", 1000*1.65, 1e-9))
			Expect(obs[0].MarketCap).To(BeNumerically("~", 100e6, 1e-3))
		})

		It("consumes six draws per observation", func() {
			src := rng.NewScripted(0.5)
			gen := history.New(cat, src)
			_, err := gen.Generate(ctx, data.Interval{Begin: day(2020, 1, 1), End: day(2020, 1, 2)})
			Expect(err).NotTo(HaveOccurred())
			Expect(src.Draws()).To(Equal(4 * 6))
		})
	})

	Context("with a market index", func() {
		var series *history.Series

		BeforeEach(func() {
			// only the base draw varies: 0.5 on the first day, 0 on the second
			// and 1 on the third
			script := make([]float64, 0, 36)
			for _, base := range []float64{0.5, 0, 1} {
				for range []string{"AAA", "BBB"} {
					script = append(script, base, 0.5, 0.5, 0.5, 0.5, 0.5)
				}
			}
			var err error
			series, err = history.New(cat, rng.NewScripted(script...)).Generate(ctx, data.Interval{Begin: day(2020, 1, 1), End: day(2020, 1, 3)})
			Expect(err).NotTo(HaveOccurred())
		})

		It("is the mean price times 100 on each date", func() {
			// AAA 9.00, 4.50, 13.50 and BBB 4.50, 2.25, 6.75
			df := series.IndexFrame()
			Expect(df.ColNames).To(Equal([]string{history.IndexCol}))
			Expect(df.Index).To(Equal([]time.Time{day(2020, 1, 1), day(2020, 1, 2), day(2020, 1, 3)}))
			Expect(df.Vals[0][0]).To(BeNumerically("~", 675.0, 1e-9))
			Expect(df.Vals[0][1]).To(BeNumerically("~", 337.5, 1e-9))
			Expect(df.Vals[0][2]).To(BeNumerically("~", 1012.5, 1e-9))
		})

		It("reports range statistics and a moving average", func() {
			report := series.IndexReport(data.Interval{Begin: day(2020, 1, 2), End: day(2020, 1, 3)}, 2)
			Expect(report.Points).To(HaveLen(2))
			Expect(report.High).To(BeNumerically("~", 1012.5, 1e-9))
			Expect(report.Low).To(BeNumerically("~", 337.5, 1e-9))
			Expect(report.Mean).To(BeNumerically("~", 675.0, 1e-9))
			Expect(report.Last).To(BeNumerically("~", 1012.5, 1e-9))

			// the average reaches back before the requested range
			Expect(report.Points[0].SMA).NotTo(BeNil())
			Expect(*report.Points[0].SMA).To(BeNumerically("~", 506.25, 1e-9))
			Expect(*report.Points[1].SMA).To(BeNumerically("~", 675.0, 1e-9))
		})

		It("leaves the moving average off while it warms up", func() {
			report := series.IndexReport(series.Interval(), 2)
			Expect(report.Points).To(HaveLen(3))
			Expect(report.Points[0].SMA).To(BeNil())
			Expect(report.Points[2].SMA).NotTo(BeNil())
		})

		It("clamps the range to the series", func() {
			report := series.IndexReport(data.Interval{Begin: day(2019, 12, 1), End: day(2020, 1, 1)}, 0)
			Expect(report.Begin).To(Equal(day(2020, 1, 1)))
			Expect(report.End).To(Equal(day(2020, 1, 1)))
			Expect(report.Points).To(HaveLen(1))
			Expect(report.Points[0].SMA).To(BeNil())
		})

		It("is empty outside the series", func() {
			report := series.IndexReport(data.Interval{Begin: day(2021, 1, 1), End: day(2021, 2, 1)}, 0)
			Expect(report.Points).To(BeEmpty())
			Expect(report.High).To(Equal(0.0))
		})
	})

	Context("with seeded sources", func() {
		It("is reproducible and re-runnable", func() {
			iv := data.Interval{Begin: day(2020, 1, 1), End: day(2020, 2, 1)}
			a, err := history.New(cat, rng.New(9)).Generate(ctx, iv)
			Expect(err).NotTo(HaveOccurred())
			b, err := history.New(cat, rng.New(9)).Generate(ctx, iv)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Observations()).To(Equal(b.Observations()))

			gen := history.New(cat, rng.New(9))
			first, _ := gen.Generate(ctx, iv)
			second, _ := gen.Generate(ctx, iv)
			Expect(second.Len()).To(Equal(first.Len()))
			Expect(second.Observations()).NotTo(Equal(first.Observations()))
		})
	})

	Context("with an inverted range", func() {
		It("returns a configuration error and no series", func() {
			gen := history.New(cat, rng.New(1))
			series, err := gen.Generate(ctx, data.Interval{Begin: day(2021, 1, 1), End: day(2020, 1, 1)})
			Expect(series).To(BeNil())
			Expect(errors.Is(err, data.ErrConfiguration)).To(BeTrue())
			Expect(errors.Is(err, data.ErrBeginAfterEnd)).To(BeTrue())
		})
	})

	Context("with a trading calendar", func() {
		It("skips weekends", func() {
			tc, err := tradecron.New("@open * * *", tradecron.RegularHours, tradecron.WithLocation(time.UTC))
			Expect(err).NotTo(HaveOccurred())
			gen := history.New(cat, rng.New(1), history.WithCalendar(tc))
			// Monday through Sunday
			series, err := gen.Generate(ctx, data.Interval{Begin: day(2022, 1, 3), End: day(2022, 1, 9)})
			Expect(err).NotTo(HaveOccurred())
			Expect(series.Dates()).To(HaveLen(5))
			Expect(series.Len()).To(Equal(10))
			for _, dt := range series.Dates() {
				Expect(dt.Weekday()).NotTo(Equal(time.Saturday))
				Expect(dt.Weekday()).NotTo(Equal(time.Sunday))
			}
		})
	})

	DescribeTable("regime by calendar period",
		func(dt time.Time, expected history.Regime) {
			Expect(history.RegimeFor(dt, 2020)).To(Equal(expected))
		},
		Entry("first half of the first year", day(2020, 6, 30), history.ShockRegime),
		Entry("second half of the first year", day(2020, 7, 1), history.ReboundRegime),
		Entry("second year", day(2021, 3, 1), history.RecoveryRegime),
		Entry("later years", day(2024, 1, 1), history.GrowthRegime),
	)
})
