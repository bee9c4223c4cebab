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

package filter_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/filter"
	"github.com/penny-vault/mvmsim/snapshot"
)

func symbols(quotes []snapshot.Quote) []string {
	res := make([]string, len(quotes))
	for idx, q := range quotes {
		res[idx] = q.Symbol
	}
	return res
}

func book() []snapshot.Quote {
	return []snapshot.Quote{
		{Symbol: "AIRMAD", Sector: "Transport", MarketCap: 120e6, DividendYield: 2.1, IndexWeight: 15.2, Volume: 100, PercentChange: 1.5},
		{Symbol: "TELMA", Sector: "Telecommunications", MarketCap: 280e6, DividendYield: 3.8, IndexWeight: 22.5, Volume: 300, PercentChange: -0.5},
		{Symbol: "BOA", Sector: "Finance", MarketCap: 150e6, DividendYield: 5.1, IndexWeight: 18.4, Volume: 200, PercentChange: 0},
		{Symbol: "BFV", Sector: "Finance", MarketCap: 135e6, DividendYield: 4.8, IndexWeight: 16.1, Volume: 50, PercentChange: 3.2},
	}
}

var _ = Describe("Filter", func() {
	var quotes []snapshot.Quote

	BeforeEach(func() {
		quotes = book()
	})

	Describe("querying", func() {
		It("keeps input order without filters", func() {
			res, err := filter.Apply(quotes, filter.Query{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(quotes))
		})

		It("is idempotent", func() {
			a, err := filter.Apply(quotes, filter.Query{})
			Expect(err).NotTo(HaveOccurred())
			b, err := filter.Apply(quotes, filter.Query{})
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})

		It("does not alias the input", func() {
			res, _ := filter.Apply(quotes, filter.Query{Sort: filter.SortVolume})
			res[0].Price = 99
			Expect(quotes[1].Price).To(Equal(0.0))
		})

		It("filters by exact sector", func() {
			res, err := filter.Apply(quotes, filter.Query{Sector: "Finance"})
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols(res)).To(Equal([]string{"BOA", "BFV"}))

			res, err = filter.Apply(quotes, filter.Query{Sector: "finance"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(BeEmpty())
		})

		It("treats all as every sector", func() {
			res, err := filter.Apply(quotes, filter.Query{Sector: "All"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(4))
		})

		DescribeTable("performance buckets",
			func(perf filter.Performance, expected []string) {
				res, err := filter.Apply(quotes, filter.Query{Performance: perf})
				Expect(err).NotTo(HaveOccurred())
				Expect(symbols(res)).To(Equal(expected))
			},
			Entry("up", filter.PerformanceUp, []string{"AIRMAD", "BFV"}),
			Entry("down", filter.PerformanceDown, []string{"TELMA"}),
			Entry("flat", filter.PerformanceFlat, []string{"BOA"}),
			Entry("all", filter.PerformanceAll, []string{"AIRMAD", "TELMA", "BOA", "BFV"}),
		)

		It("combines sector and performance", func() {
			res, err := filter.Apply(quotes, filter.Query{Sector: "Finance", Performance: filter.PerformanceUp, Sort: filter.SortMarketCap})
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols(res)).To(Equal([]string{"BFV"}))
		})
	})

	Describe("extremes", func() {
		It("returns the highest and lowest movers", func() {
			highest, lowest, err := filter.Extremes(quotes, filter.SortPercentChange, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols(highest)).To(Equal([]string{"BFV", "AIRMAD"}))
			Expect(symbols(lowest)).To(Equal([]string{"TELMA", "BOA"}))
		})

		It("caps n at the number of quotes", func() {
			highest, lowest, err := filter.Extremes(quotes[:1], filter.SortPercentChange, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(highest).To(HaveLen(1))
			Expect(lowest).To(HaveLen(1))
		})

		It("reports an unknown key instead of ranking", func() {
			highest, lowest, err := filter.Extremes(quotes, filter.SortKey("nope"), 2)
			Expect(errors.Is(err, data.ErrInvalidQuery)).To(BeTrue())
			Expect(highest).To(BeNil())
			Expect(lowest).To(BeNil())
		})
	})

	Describe("sorting", func() {
		It("orders volumes descending", func() {
			three := []snapshot.Quote{{Symbol: "A", Volume: 100}, {Symbol: "B", Volume: 300}, {Symbol: "C", Volume: 200}}
			res, err := filter.Sort(three, filter.SortVolume)
			Expect(err).NotTo(HaveOccurred())
			Expect(res[0].Volume).To(Equal(300.0))
			Expect(res[1].Volume).To(Equal(200.0))
			Expect(res[2].Volume).To(Equal(100.0))
			Expect(three[0].Symbol).To(Equal("A"))
		})

		DescribeTable("by key",
			func(key filter.SortKey, expected []string) {
				res, err := filter.Sort(quotes, key)
				Expect(err).NotTo(HaveOccurred())
				Expect(symbols(res)).To(Equal(expected))
			},
			Entry("percent change", filter.SortPercentChange, []string{"BFV", "AIRMAD", "BOA", "TELMA"}),
			Entry("market cap", filter.SortMarketCap, []string{"TELMA", "BOA", "BFV", "AIRMAD"}),
			Entry("index weight", filter.SortIndexWeight, []string{"TELMA", "BOA", "BFV", "AIRMAD"}),
			Entry("none", filter.SortNone, []string{"AIRMAD", "TELMA", "BOA", "BFV"}),
		)

		It("keeps ties in input order", func() {
			tied := []snapshot.Quote{{Symbol: "A", Volume: 1}, {Symbol: "B", Volume: 1}, {Symbol: "C", Volume: 2}}
			res, err := filter.Sort(tied, filter.SortVolume)
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols(res)).To(Equal([]string{"C", "A", "B"}))
		})

		It("rejects an unknown key", func() {
			_, err := filter.Sort(quotes, filter.SortKey("price"))
			Expect(errors.Is(err, data.ErrInvalidQuery)).To(BeTrue())
		})
	})

	Describe("screening", func() {
		It("includes TELMA above 200M cap and 3% yield", func() {
			res, err := filter.Screen(quotes, filter.Criteria{MinMarketCap: filter.Float(200e6), MinDividendYield: filter.Float(3.0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols(res)).To(ContainElement("TELMA"))
		})

		It("excludes TELMA above 300M cap", func() {
			res, err := filter.Screen(quotes, filter.Criteria{MinMarketCap: filter.Float(300e6)})
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols(res)).NotTo(ContainElement("TELMA"))
		})

		It("is the intersection of its predicates", func() {
			capOnly, err := filter.Screen(quotes, filter.Criteria{MinMarketCap: filter.Float(130e6)})
			Expect(err).NotTo(HaveOccurred())
			divOnly, err := filter.Screen(quotes, filter.Criteria{MinDividendYield: filter.Float(4.0)})
			Expect(err).NotTo(HaveOccurred())
			both, err := filter.Screen(quotes, filter.Criteria{MinMarketCap: filter.Float(130e6), MinDividendYield: filter.Float(4.0)})
			Expect(err).NotTo(HaveOccurred())

			intersection := make([]string, 0)
			for _, a := range symbols(capOnly) {
				for _, b := range symbols(divOnly) {
					if a == b {
						intersection = append(intersection, a)
					}
				}
			}
			Expect(symbols(both)).To(Equal(intersection))
			Expect(intersection).To(Equal([]string{"BOA", "BFV"}))
		})

		It("restricts to the selected sectors", func() {
			res, err := filter.Screen(quotes, filter.Criteria{Sectors: []string{"Transport", "Telecommunications"}, MinPercentChange: filter.Float(0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(symbols(res)).To(Equal([]string{"AIRMAD"}))
		})

		It("returns everything for empty criteria", func() {
			res, err := filter.Screen(quotes, filter.Criteria{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(4))
		})

		It("rejects a negative market cap threshold", func() {
			_, err := filter.Screen(quotes, filter.Criteria{MinMarketCap: filter.Float(-1)})
			Expect(errors.Is(err, data.ErrInvalidQuery)).To(BeTrue())
		})
	})

	Describe("parsing", func() {
		DescribeTable("queries",
			func(sector, perf, sort string, fails bool) {
				q, err := filter.ParseQuery(sector, perf, sort)
				if fails {
					Expect(errors.Is(err, data.ErrInvalidQuery)).To(BeTrue())
					return
				}
				Expect(err).NotTo(HaveOccurred())
				Expect(q.Sector).To(Equal(sector))
			},
			Entry("empty", "", "", "", false),
			Entry("full", "Finance", "up", "volume", false),
			Entry("flat", "all", "FLAT", "market_cap", false),
			Entry("bad bucket", "", "sideways", "", true),
			Entry("bad sort", "", "", "price", true),
		)

		DescribeTable("thresholds",
			func(raw string, fails bool) {
				_, err := filter.ParseCriteria(map[string]string{filter.KeyMinDividendYield: raw})
				if fails {
					Expect(errors.Is(err, data.ErrInvalidQuery)).To(BeTrue())
				} else {
					Expect(err).NotTo(HaveOccurred())
				}
			},
			Entry("number", "3.5", false),
			Entry("exponent", "2e1", false),
			Entry("blank", "", false),
			Entry("text", "three", true),
			Entry("not a number", "NaN", true),
			Entry("infinite", "Inf", true),
			Entry("overflow", "1e400", true),
			Entry("negative", "-1", true),
		)

		It("parses every screen field", func() {
			c, err := filter.ParseCriteria(map[string]string{
				filter.KeyMinMarketCap:     "200e6",
				filter.KeyMinDividendYield: "3",
				filter.KeyMinPercentChange: "-2.5",
				filter.KeySectors:          "Finance, Mining,,",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(*c.MinMarketCap).To(Equal(200e6))
			Expect(*c.MinDividendYield).To(Equal(3.0))
			Expect(*c.MinPercentChange).To(Equal(-2.5))
			Expect(c.Sectors).To(Equal([]string{"Finance", "Mining"}))
		})

		It("leaves blank thresholds unset", func() {
			v, err := filter.ParseThreshold(filter.KeyMinMarketCap, "  ")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNil())
		})

		It("rejects unknown fields", func() {
			_, err := filter.ParseCriteria(map[string]string{"max_price": "3"})
			Expect(errors.Is(err, data.ErrInvalidQuery)).To(BeTrue())
		})
	})
})
