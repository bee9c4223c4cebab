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

// Default returns the built-in ten company catalog
func Default() *Catalog {
	cat, err := New(defaultEntities...)
	if err != nil {
		// the built-in definition is static; failing here is a programming error
		panic(err)
	}
	return cat
}

var defaultEntities = []Entity{
	{
		Symbol:        "AIRMAD",
		Name:          "Air Madagascar",
		Sector:        "Transport",
		SubSector:     "Aviation",
		Country:       "Madagascar",
		Color:         "#FF6B00",
		IndexWeight:   15.2,
		MarketCap:     120e6,
		DividendYield: 2.1,
		AverageVolume: 45000,
		Description:   "National airline",
	},
	{
		Symbol:        "TELMA",
		Name:          "Telma Madagascar",
		Sector:        "Telecommunications",
		SubSector:     "Telecom",
		Country:       "Madagascar",
		Color:         "#0066CC",
		IndexWeight:   22.5,
		MarketCap:     280e6,
		DividendYield: 3.8,
		AverageVolume: 85000,
		Description:   "Telecommunications leader",
	},
	{
		Symbol:        "HVM",
		Name:          "Habitation à Vendre Madagascar",
		Sector:        "Real Estate",
		SubSector:     "Property development",
		Country:       "Madagascar",
		Color:         "#8B4513",
		IndexWeight:   8.7,
		MarketCap:     45e6,
		DividendYield: 4.2,
		AverageVolume: 25000,
		Description:   "Property developer",
	},
	{
		Symbol:        "STAR",
		Name:          "Brasserie Star Madagascar",
		Sector:        "Consumer",
		SubSector:     "Beverages",
		Country:       "Madagascar",
		Color:         "#FFCC00",
		IndexWeight:   12.3,
		MarketCap:     95e6,
		DividendYield: 2.8,
		AverageVolume: 55000,
		Description:   "Leading brewery",
	},
	{
		Symbol:        "SHERATON",
		Name:          "Sheraton Madagascar",
		Sector:        "Tourism",
		SubSector:     "Hospitality",
		Country:       "Madagascar",
		Color:         "#004B87",
		IndexWeight:   6.8,
		MarketCap:     65e6,
		DividendYield: 1.9,
		AverageVolume: 32000,
		Description:   "International hotel chain",
	},
	{
		Symbol:        "BOA",
		Name:          "Bank of Africa Madagascar",
		Sector:        "Finance",
		SubSector:     "Banking",
		Country:       "Madagascar",
		Color:         "#660099",
		IndexWeight:   18.4,
		MarketCap:     150e6,
		DividendYield: 5.1,
		AverageVolume: 68000,
		Description:   "Major banking institution",
	},
	{
		Symbol:        "BFV",
		Name:          "BFV-SG Madagascar",
		Sector:        "Finance",
		SubSector:     "Banking",
		Country:       "Madagascar",
		Color:         "#EF4135",
		IndexWeight:   16.1,
		MarketCap:     135e6,
		DividendYield: 4.8,
		AverageVolume: 62000,
		Description:   "Commercial bank",
	},
	{
		Symbol:        "MCL",
		Name:          "Madagascar Consolidated Mining",
		Sector:        "Mining",
		SubSector:     "Extraction",
		Country:       "Madagascar",
		Color:         "#FF69B4",
		IndexWeight:   9.5,
		MarketCap:     75e6,
		DividendYield: 3.2,
		AverageVolume: 38000,
		Description:   "Mining company",
	},
	{
		Symbol:        "SOTRAMA",
		Name:          "Sotrama Motors",
		Sector:        "Industry",
		SubSector:     "Automotive",
		Country:       "Madagascar",
		Color:         "#00A3E0",
		IndexWeight:   5.3,
		MarketCap:     35e6,
		DividendYield: 2.4,
		AverageVolume: 18000,
		Description:   "Local vehicle manufacturer",
	},
	{
		Symbol:        "AGRIKOR",
		Name:          "Agrikor Madagascar",
		Sector:        "Agriculture",
		SubSector:     "Agribusiness",
		Country:       "Madagascar",
		Color:         "#28a745",
		IndexWeight:   7.2,
		MarketCap:     55e6,
		DividendYield: 3.5,
		AverageVolume: 29000,
		Description:   "Agro-industrial company",
	},
}
