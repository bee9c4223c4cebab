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

package handler

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/history"
	"github.com/rs/zerolog/log"
)

const maxHistoryPage = 1000

var rangeRegex = regexp.MustCompile(`((\w+)=)?(\d+)-(\d+)`)

func parseRange(r string) (int, int, error) {
	if r == "" {
		return 100, 0, nil
	}

	res := rangeRegex.FindStringSubmatch(r)

	if res == nil {
		return 10, 0, fiber.ErrRequestedRangeNotSatisfiable
	}

	if len(res) == 5 && res[2] != "items" {
		return 10, 0, fiber.ErrRequestedRangeNotSatisfiable
	}

	begin, err := strconv.ParseInt(res[3], 10, 32)
	if err != nil {
		log.Error().Err(err).Msg("could not parse limit")
		return 10, 0, fiber.ErrRequestedRangeNotSatisfiable
	}

	end, err := strconv.ParseInt(res[4], 10, 32)
	if err != nil {
		log.Error().Err(err).Msg("could not parse offset")
		return 10, 0, fiber.ErrRequestedRangeNotSatisfiable
	}

	if end < begin {
		log.Error().Int64("Begin", begin).Int64("End", end).Msg("range error: end < begin")
		return 10, 0, fiber.ErrRequestedRangeNotSatisfiable
	}

	limit := int(end - begin + 1)
	offset := int(begin)

	return limit, offset, nil
}

func parseDate(field, val string, def time.Time) (time.Time, error) {
	if val == "" {
		return def, nil
	}
	dt, err := time.ParseInLocation("2006-01-02", val, def.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD: %q", data.ErrInvalidQuery, field, val)
	}
	return dt, nil
}

// ListEntities returns the catalog keyed by symbol
func (api *API) ListEntities(c *fiber.Ctx) error {
	return c.JSON(api.engine.Entities())
}

// GetEntity returns one catalog entry
func (api *API) GetEntity(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	entity, ok := api.engine.Catalog().Get(symbol)
	if !ok {
		return respondError(c, fmt.Errorf("%w: %s", data.ErrUnknownSymbol, symbol))
	}
	return c.JSON(entity)
}

// ListHistory returns historical observations between the start and end
// query parameters, optionally for one symbol. Results are paged with a
// `Range: items=0-99` header.
func (api *API) ListHistory(c *fiber.Ctx) error {
	limit, offset, err := parseRange(c.Get("range"))
	if limit > maxHistoryPage || err != nil {
		log.Error().Int("Limit", limit).Msg("range header error")
		return fiber.ErrRequestedRangeNotSatisfiable
	}

	series := api.engine.History()
	iv := series.Interval()

	begin, err := parseDate("start", c.Query("start"), iv.Begin)
	if err != nil {
		return respondError(c, err)
	}
	end, err := parseDate("end", c.Query("end"), iv.End)
	if err != nil {
		return respondError(c, err)
	}
	if _, err := data.NewInterval(begin, end); err != nil {
		return respondError(c, fmt.Errorf("%w: %s", data.ErrInvalidQuery, err))
	}

	symbol := c.Query("symbol")
	if symbol != "" {
		if _, ok := api.engine.Catalog().Get(symbol); !ok {
			return respondError(c, fmt.Errorf("%w: %s", data.ErrUnknownSymbol, symbol))
		}
	}

	matches := make([]history.Observation, 0)
	for _, obs := range series.Between(begin, end) {
		if symbol == "" || obs.Symbol == symbol {
			matches = append(matches, obs)
		}
	}

	total := len(matches)
	if offset > total {
		offset = total
	}
	last := offset + limit
	if last > total {
		last = total
	}

	if last > offset {
		c.Set(fiber.HeaderContentRange, fmt.Sprintf("items %d-%d/%d", offset, last-1, total))
	} else {
		c.Set(fiber.HeaderContentRange, fmt.Sprintf("items */%d", total))
	}
	return c.JSON(matches[offset:last])
}

// IndexHistory returns the market index between the start and end query
// parameters. `sma=N` adds an N day simple moving average.
func (api *API) IndexHistory(c *fiber.Ctx) error {
	series := api.engine.History()
	iv := series.Interval()

	begin, err := parseDate("start", c.Query("start"), iv.Begin)
	if err != nil {
		return respondError(c, err)
	}
	end, err := parseDate("end", c.Query("end"), iv.End)
	if err != nil {
		return respondError(c, err)
	}
	requested, err := data.NewInterval(begin, end)
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %s", data.ErrInvalidQuery, err))
	}

	lookback := 0
	if raw := c.Query("sma"); raw != "" {
		lookback, err = strconv.Atoi(raw)
		if err != nil || lookback <= 0 {
			return respondError(c, fmt.Errorf("%w: sma must be a positive integer: %q", data.ErrInvalidQuery, raw))
		}
	}

	return c.JSON(series.IndexReport(requested, lookback))
}

// ListMacro returns the monthly macroeconomic series
func (api *API) ListMacro(c *fiber.Ctx) error {
	return c.JSON(api.engine.Macro().Observations())
}

// ListTrade returns the quarterly trade series
func (api *API) ListTrade(c *fiber.Ctx) error {
	return c.JSON(api.engine.Trade().Observations())
}
