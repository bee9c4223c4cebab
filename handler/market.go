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
	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/mvmsim/filter"
	"github.com/rs/zerolog/log"
)

// ListQuotes returns the current quotes filtered by the sector and
// performance query parameters and ordered by sort
func (api *API) ListQuotes(c *fiber.Ctx) error {
	q, err := filter.ParseQuery(c.Query("sector"), c.Query("performance"), c.Query("sort"))
	if err != nil {
		return respondError(c, err)
	}

	return api.sendCached(c, func() (interface{}, error) {
		return api.engine.Query(q)
	})
}

// GetQuote returns the current quote of one symbol
func (api *API) GetQuote(c *fiber.Ctx) error {
	q, err := api.engine.Quote(c.Params("symbol"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(q)
}

// Screen returns the quotes satisfying every supplied threshold
func (api *API) Screen(c *fiber.Ctx) error {
	params := make(map[string]string)
	for _, key := range []string{filter.KeyMinMarketCap, filter.KeyMinDividendYield, filter.KeyMinPercentChange, filter.KeySectors} {
		if val := c.Query(key); val != "" {
			params[key] = val
		}
	}

	criteria, err := filter.ParseCriteria(params)
	if err != nil {
		return respondError(c, err)
	}

	return api.sendCached(c, func() (interface{}, error) {
		return api.engine.Screen(criteria)
	})
}

// ListSectors returns the sector summaries
func (api *API) ListSectors(c *fiber.Ctx) error {
	return api.sendCached(c, func() (interface{}, error) {
		return api.engine.Sectors(), nil
	})
}

// Summary returns the headline market metrics
func (api *API) Summary(c *fiber.Ctx) error {
	return api.sendCached(c, func() (interface{}, error) {
		return api.engine.Summary(), nil
	})
}

// Tick advances the simulation by one step on request
func (api *API) Tick(c *fiber.Ctx) error {
	if !api.manualTick {
		return fiber.ErrForbidden
	}

	res := api.engine.Tick(c.UserContext())
	log.Info().Int("Tick", res.Tick).Int("NumSelected", len(res.Selected)).Msg("manual tick")
	return c.JSON(res)
}
