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

package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/penny-vault/mvmsim/data"
	"github.com/rs/zerolog/log"
)

// Catalog holds entities in definition order
type Catalog struct {
	entities []Entity
	bySymbol map[string]int
}

type catalogFile struct {
	Entities []entityRecord `toml:"entity"`
}

// entityRecord is an [[entity]] table as written in a catalog file. Numeric
// fields accept TOML integers and floats.
type entityRecord struct {
	Symbol        string      `toml:"symbol"`
	Name          string      `toml:"name"`
	Sector        string      `toml:"sector"`
	SubSector     string      `toml:"sub_sector"`
	Country       string      `toml:"country"`
	Color         string      `toml:"color"`
	IndexWeight   interface{} `toml:"index_weight"`
	MarketCap     interface{} `toml:"market_cap"`
	DividendYield interface{} `toml:"dividend_yield"`
	AverageVolume interface{} `toml:"average_volume"`
	Description   string      `toml:"description"`
}

func (r entityRecord) entity() (Entity, error) {
	e := Entity{
		Symbol:      r.Symbol,
		Name:        r.Name,
		Sector:      r.Sector,
		SubSector:   r.SubSector,
		Country:     r.Country,
		Color:       r.Color,
		Description: r.Description,
	}

	fields := []struct {
		name string
		raw  interface{}
		dst  *float64
	}{
		{"index_weight", r.IndexWeight, &e.IndexWeight},
		{"market_cap", r.MarketCap, &e.MarketCap},
		{"dividend_yield", r.DividendYield, &e.DividendYield},
		{"average_volume", r.AverageVolume, &e.AverageVolume},
	}

	for _, f := range fields {
		switch v := f.raw.(type) {
		case nil:
		case int64:
			*f.dst = float64(v)
		case float64:
			*f.dst = v
		default:
			return Entity{}, fmt.Errorf("%w: %s.%s must be a number, got %v", data.ErrConfiguration, r.Symbol, f.name, f.raw)
		}
	}

	return e, nil
}

// New builds a catalog from the given entities. Symbols must be unique and
// non-empty; market cap and average volume must be positive.
func New(entities ...Entity) (*Catalog, error) {
	cat := &Catalog{
		entities: make([]Entity, 0, len(entities)),
		bySymbol: make(map[string]int, len(entities)),
	}

	for _, e := range entities {
		if e.Symbol == "" {
			return nil, fmt.Errorf("%w: entity %q has no symbol", data.ErrConfiguration, e.Name)
		}
		if _, ok := cat.bySymbol[e.Symbol]; ok {
			return nil, fmt.Errorf("%w: duplicate symbol %s", data.ErrConfiguration, e.Symbol)
		}
		if e.MarketCap <= 0 || e.AverageVolume <= 0 {
			return nil, fmt.Errorf("%w: %s must have a positive market cap and average volume", data.ErrConfiguration, e.Symbol)
		}
		cat.bySymbol[e.Symbol] = len(cat.entities)
		cat.entities = append(cat.entities, e)
	}

	return cat, nil
}

// Parse reads a catalog from a TOML document made of [[entity]] tables
func Parse(doc []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("%w: could not parse catalog: %s", data.ErrConfiguration, err)
	}
	if len(f.Entities) == 0 {
		return nil, fmt.Errorf("%w: catalog defines no entities", data.ErrConfiguration)
	}

	entities := make([]Entity, 0, len(f.Entities))
	for _, rec := range f.Entities {
		e, err := rec.entity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return New(entities...)
}

// Load reads a TOML catalog file from disk
func Load(fn string) (*Catalog, error) {
	doc, err := os.ReadFile(fn)
	if err != nil {
		log.Error().Err(err).Str("File", fn).Msg("failed to read catalog file")
		return nil, fmt.Errorf("%w: %s", data.ErrConfiguration, err)
	}

	cat, err := Parse(doc)
	if err != nil {
		log.Error().Err(err).Str("File", fn).Msg("failed to parse catalog file")
		return nil, err
	}

	log.Info().Str("File", fn).Int("NumEntities", cat.Len()).Msg("loaded entity catalog")
	return cat, nil
}

// All returns a copy of every entity in definition order
func (cat *Catalog) All() []Entity {
	res := make([]Entity, len(cat.entities))
	copy(res, cat.entities)
	return res
}

// Get returns the entity for symbol
func (cat *Catalog) Get(symbol string) (Entity, bool) {
	idx, ok := cat.bySymbol[symbol]
	if !ok {
		return Entity{}, false
	}
	return cat.entities[idx], true
}

// Len returns the number of entities
func (cat *Catalog) Len() int {
	return len(cat.entities)
}

// Map returns a symbol keyed copy of the catalog
func (cat *Catalog) Map() map[string]Entity {
	res := make(map[string]Entity, len(cat.entities))
	for _, e := range cat.entities {
		res[e.Symbol] = e
	}
	return res
}

// Symbols returns symbols in definition order
func (cat *Catalog) Symbols() []string {
	res := make([]string, len(cat.entities))
	for idx, e := range cat.entities {
		res[idx] = e.Symbol
	}
	return res
}

// Sectors returns the distinct sectors sorted by name
func (cat *Catalog) Sectors() []string {
	seen := make(map[string]bool)
	res := make([]string, 0, len(cat.entities))
	for _, e := range cat.entities {
		if !seen[e.Sector] {
			seen[e.Sector] = true
			res = append(res, e.Sector)
		}
	}
	sort.Strings(res)
	return res
}

// TotalIndexWeight sums the index weight of every entity
func (cat *Catalog) TotalIndexWeight() float64 {
	total := 0.0
	for _, e := range cat.entities {
		total += e.IndexWeight
	}
	return total
}
