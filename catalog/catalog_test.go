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

package catalog_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/mvmsim/catalog"
	"github.com/penny-vault/mvmsim/data"
)

const twoEntityCatalog = `
[[entity]]
symbol = "AAA"
name = "Alpha"
sector = "Finance"
index_weight = 10.0
market_cap = 100e6
dividend_yield = 2.5
average_volume = 1000.0

[[entity]]
symbol = "BBB"
name = "Beta"
sector = "Mining"
index_weight = 5.5
market_cap = 50e6
dividend_yield = 1.0
average_volume = 500.0
`

const integerCatalog = `
[[entity]]
symbol = "TELMA"
name = "Telma"
sector = "Telecommunications"
index_weight = 22
market_cap = 280000000
dividend_yield = 3.8
average_volume = 85000
`

var _ = Describe("Catalog", func() {
	Context("with the default catalog", func() {
		var cat *catalog.Catalog

		BeforeEach(func() {
			cat = catalog.Default()
		})

		It("has ten entities in definition order", func() {
			Expect(cat.Len()).To(Equal(10))
			Expect(cat.Symbols()[0]).To(Equal("AIRMAD"))
			Expect(cat.Symbols()[9]).To(Equal("AGRIKOR"))
		})

		It("is deterministic", func() {
			Expect(catalog.Default().All()).To(Equal(cat.All()))
		})

		It("keeps TELMA's attributes", func() {
			telma, ok := cat.Get("TELMA")
			Expect(ok).To(BeTrue())
			Expect(telma.MarketCap).To(Equal(280e6))
			Expect(telma.DividendYield).To(Equal(3.8))
			Expect(telma.IndexWeight).To(Equal(22.5))
		})

		It("lists distinct sectors sorted by name", func() {
			sectors := cat.Sectors()
			Expect(sectors).To(HaveLen(9))
			Expect(sectors[0]).To(Equal("Agriculture"))
			Expect(sectors).To(ContainElement("Finance"))
		})

		It("sums index weight without normalizing", func() {
			Expect(cat.TotalIndexWeight()).To(BeNumerically("~", 122.0, 1e-9))
		})

		It("returns copies from Map", func() {
			m := cat.Map()
			e := m["BOA"]
			e.MarketCap = 1
			m["BOA"] = e
			boa, _ := cat.Get("BOA")
			Expect(boa.MarketCap).To(Equal(150e6))
		})

		It("reports unknown symbols", func() {
			_, ok := cat.Get("NOPE")
			Expect(ok).To(BeFalse())
		})
	})

	Context("when building a catalog", func() {
		It("rejects duplicate symbols", func() {
			e := catalog.Entity{Symbol: "X", MarketCap: 1, AverageVolume: 1}
			_, err := catalog.New(e, e)
			Expect(errors.Is(err, data.ErrConfiguration)).To(BeTrue())
		})

		It("rejects a non-positive market cap", func() {
			_, err := catalog.New(catalog.Entity{Symbol: "X", MarketCap: 0, AverageVolume: 1})
			Expect(errors.Is(err, data.ErrConfiguration)).To(BeTrue())
		})

		It("parses a TOML catalog", func() {
			cat, err := catalog.Parse([]byte(twoEntityCatalog))
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.Symbols()).To(Equal([]string{"AAA", "BBB"}))
			b, _ := cat.Get("BBB")
			Expect(b.MarketCap).To(Equal(50e6))
			Expect(b.IndexWeight).To(Equal(5.5))
		})

		It("accepts whole numbers for numeric fields", func() {
			cat, err := catalog.Parse([]byte(integerCatalog))
			Expect(err).NotTo(HaveOccurred())
			telma, ok := cat.Get("TELMA")
			Expect(ok).To(BeTrue())
			Expect(telma.MarketCap).To(Equal(280e6))
			Expect(telma.AverageVolume).To(Equal(85000.0))
			Expect(telma.IndexWeight).To(Equal(22.0))
			Expect(telma.DividendYield).To(Equal(3.8))
		})

		It("rejects a numeric field written as text", func() {
			_, err := catalog.Parse([]byte("[[entity]]\nsymbol = \"X\"\nmarket_cap = \"lots\"\naverage_volume = 1\n"))
			Expect(errors.Is(err, data.ErrConfiguration)).To(BeTrue())
		})

		It("rejects an empty TOML catalog", func() {
			_, err := catalog.Parse([]byte(""))
			Expect(errors.Is(err, data.ErrConfiguration)).To(BeTrue())
		})

		It("loads a catalog from disk", func() {
			dir, err := os.MkdirTemp("", "catalog")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
			fn := filepath.Join(dir, "catalog.toml")
			Expect(os.WriteFile(fn, []byte(twoEntityCatalog), 0600)).To(Succeed())
			cat, err := catalog.Load(fn)
			Expect(err).NotTo(HaveOccurred())
			Expect(cat.Len()).To(Equal(2))
		})

		It("reports a missing file as a configuration error", func() {
			_, err := catalog.Load("/does/not/exist.toml")
			Expect(errors.Is(err, data.ErrConfiguration)).To(BeTrue())
		})
	})
})
