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

// Package catalog is the static registry of listed companies and their fixed
// attributes. A Catalog is built once at startup and never mutated.
package catalog

// Entity is a listed company
type Entity struct {
	Symbol        string  `json:"symbol" toml:"symbol"`
	Name          string  `json:"name" toml:"name"`
	Sector        string  `json:"sector" toml:"sector"`
	SubSector     string  `json:"subSector" toml:"sub_sector"`
	Country       string  `json:"country" toml:"country"`
	Color         string  `json:"color" toml:"color"`
	IndexWeight   float64 `json:"indexWeight" toml:"index_weight"`
	MarketCap     float64 `json:"marketCap" toml:"market_cap"`
	DividendYield float64 `json:"dividendYield" toml:"dividend_yield"`
	AverageVolume float64 `json:"averageVolume" toml:"average_volume"`
	Description   string  `json:"description" toml:"description"`
}
