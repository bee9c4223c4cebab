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

package filter

import (
	"fmt"
	"math"

	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/snapshot"
	"golang.org/x/exp/slices"
)

// Criteria is a conjunctive screen. A nil threshold or an empty sector set
// places no constraint on that field.
type Criteria struct {
	MinMarketCap     *float64 `json:"minMarketCap,omitempty"`
	MinDividendYield *float64 `json:"minDividendYield,omitempty"`
	MinPercentChange *float64 `json:"minPercentChange,omitempty"`
	Sectors          []string `json:"sectors,omitempty"`
}

// Float returns a pointer to v for building Criteria literals
func Float(v float64) *float64 {
	return &v
}

// Validate rejects non-finite thresholds and negative market cap or dividend
// yield thresholds
func (c Criteria) Validate() error {
	checks := []struct {
		name        string
		val         *float64
		nonNegative bool
	}{
		{"min_market_cap", c.MinMarketCap, true},
		{"min_dividend_yield", c.MinDividendYield, true},
		{"min_percent_change", c.MinPercentChange, false},
	}

	for _, check := range checks {
		if check.val == nil {
			continue
		}
		v := *check.val
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", data.ErrInvalidQuery, check.name)
		}
		if check.nonNegative && v < 0 {
			return fmt.Errorf("%w: %s must not be negative", data.ErrInvalidQuery, check.name)
		}
	}

	return nil
}

// Screen returns the quotes satisfying every predicate of c, in input order
func Screen(quotes []snapshot.Quote, c Criteria) ([]snapshot.Quote, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res := make([]snapshot.Quote, 0, len(quotes))
	for _, q := range quotes {
		if c.MinMarketCap != nil && q.MarketCap < *c.MinMarketCap {
			continue
		}
		if c.MinDividendYield != nil && q.DividendYield < *c.MinDividendYield {
			continue
		}
		if c.MinPercentChange != nil && q.PercentChange < *c.MinPercentChange {
			continue
		}
		if len(c.Sectors) > 0 && !slices.Contains(c.Sectors, q.Sector) {
			continue
		}
		res = append(res, q)
	}

	return res, nil
}
