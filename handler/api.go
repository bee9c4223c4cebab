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

// Package handler exposes an engine over HTTP
package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/mvmsim/common"
	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/engine"
	"github.com/rs/zerolog/log"
)

// API serves one engine. Responses derived from live quotes are cached under
// the engine version, so a tick invalidates them implicitly.
type API struct {
	engine     *engine.Engine
	cache      *common.Cache
	manualTick bool
}

type PingResponse struct {
	Status   string `json:"status" example:"success"`
	Message  string `json:"message" example:"API is alive"`
	Time     string `json:"time" example:"2021-06-19T08:09:10.115924-05:00"`
	EngineID string `json:"engineID"`
	Tick     int    `json:"tick"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// New creates an API for e. A nil cache disables response caching.
func New(e *engine.Engine, cache *common.Cache, manualTick bool) *API {
	return &API{
		engine:     e,
		cache:      cache,
		manualTick: manualTick,
	}
}

func (api *API) Ping(c *fiber.Ctx) error {
	var response PingResponse
	now, err := time.Now().MarshalText()
	if err != nil {
		log.Error().Err(err).Msg("error while getting time in ping")
		response = PingResponse{
			Status:  "error",
			Message: err.Error(),
			Time:    string(now),
		}
	} else {
		response = PingResponse{
			Status:   "success",
			Message:  "API is alive",
			Time:     string(now),
			EngineID: api.engine.ID().String(),
			Tick:     api.engine.TickCount(),
		}
	}
	return c.JSON(response)
}

// respondError maps engine errors onto HTTP status codes
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, data.ErrInvalidQuery):
		status = fiber.StatusBadRequest
	case errors.Is(err, data.ErrUnknownSymbol):
		status = fiber.StatusNotFound
	}

	subLog := log.With().Str("Path", c.Path()).Int("StatusCode", status).Logger()
	if status == fiber.StatusInternalServerError {
		subLog.Error().Err(err).Msg("request failed")
	} else {
		subLog.Debug().Err(err).Msg("request rejected")
	}

	return c.Status(status).JSON(ErrorResponse{
		Status:  "error",
		Message: err.Error(),
	})
}

// sendCached serves the body stored for this request at the current engine
// version, computing and storing it with build on a miss
func (api *API) sendCached(c *fiber.Ctx, build func() (interface{}, error)) error {
	version, err := api.engine.Version()
	if err != nil {
		return respondError(c, err)
	}

	etag := fmt.Sprintf("%q", version)
	c.Set(fiber.HeaderETag, etag)
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}

	key := fmt.Sprintf("%s:%s?%s", version, c.Path(), c.Context().QueryArgs().String())
	ctx := context.Background()

	if api.cache != nil {
		if body, err := api.cache.Get(ctx, key); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		} else if !errors.Is(err, common.ErrCacheMiss) {
			log.Warn().Err(err).Str("Key", key).Msg("cache lookup failed")
		}
	}

	val, err := build()
	if err != nil {
		return respondError(c, err)
	}

	body, err := json.Marshal(val)
	if err != nil {
		return respondError(c, err)
	}

	// a tick may have landed while building; only cache bodies that still
	// match the version they are keyed under
	if after, err := api.engine.Version(); api.cache != nil && err == nil && after == version {
		if err := api.cache.Set(ctx, key, body); err != nil {
			log.Warn().Err(err).Str("Key", key).Msg("could not cache response")
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
