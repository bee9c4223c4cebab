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
	"strconv"
	"strings"

	"github.com/penny-vault/mvmsim/data"
	"github.com/rs/zerolog/log"
)

const (
	KeyMinMarketCap     = "min_market_cap"
	KeyMinDividendYield = "min_dividend_yield"
	KeyMinPercentChange = "min_percent_change"
	KeySectors          = "sectors"
)

// ParsePerformance converts all, up, down or flat into a Performance
func ParsePerformance(s string) (Performance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return PerformanceAll, nil
	case "up":
		return PerformanceUp, nil
	case "down":
		return PerformanceDown, nil
	case "flat":
		return PerformanceFlat, nil
	default:
		return PerformanceAll, fmt.Errorf("%w: unknown performance bucket %q", data.ErrInvalidQuery, s)
	}
}

// ParseSortKey validates the name of a sort key
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !key.valid() {
		return SortNone, fmt.Errorf("%w: unknown sort key %q", data.ErrInvalidQuery, s)
	}
	return key, nil
}

// ParseQuery builds a Query from presentation input
func ParseQuery(sector, performance, sort string) (Query, error) {
	perf, err := ParsePerformance(performance)
	if err != nil {
		return Query{}, err
	}

	key, err := ParseSortKey(sort)
	if err != nil {
		return Query{}, err
	}

	return Query{
		Sector:      strings.TrimSpace(sector),
		Performance: perf,
		Sort:        key,
	}, nil
}

// ParseThreshold parses a numeric threshold. An empty value means no
// threshold; anything that is not a finite number is an ErrInvalidQuery.
func ParseThreshold(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Debug().Str("Field", field).Str("Value", raw).Msg("rejecting non-numeric threshold")
		return nil, fmt.Errorf("%w: %s is not a number: %q", data.ErrInvalidQuery, field, raw)
	}

	return &v, nil
}

// ParseCriteria builds screen Criteria from key/value input. Sectors are a
// comma separated list. Unknown keys are rejected.
func ParseCriteria(params map[string]string) (Criteria, error) {
	var c Criteria
	var err error

	for key, raw := range params {
		switch key {
		case KeyMinMarketCap:
			c.MinMarketCap, err = ParseThreshold(key, raw)
		case KeyMinDividendYield:
			c.MinDividendYield, err = ParseThreshold(key, raw)
		case KeyMinPercentChange:
			c.MinPercentChange, err = ParseThreshold(key, raw)
		case KeySectors:
			c.Sectors = splitList(raw)
		default:
			err = fmt.Errorf("%w: unknown screen field %q", data.ErrInvalidQuery, key)
		}

		if err != nil {
			return Criteria{}, err
		}
	}

	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

func splitList(raw string) []string {
	res := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}
