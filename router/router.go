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

package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/penny-vault/mvmsim/handler"
)

// SetupRoutes setup router api
func SetupRoutes(app *fiber.App, api *handler.API) {
	v1 := app.Group("/v1")
	v1.Get("/", api.Ping)
	v1.Get("/ping", api.Ping)

	// Catalog
	entities := v1.Group("/entities")
	entities.Get("/", api.ListEntities)
	entities.Get("/:symbol", api.GetEntity)

	// Series
	v1.Get("/history", api.ListHistory)
	v1.Get("/history/index", api.IndexHistory)
	v1.Get("/macro", api.ListMacro)
	v1.Get("/trade", api.ListTrade)

	// Live market
	quotes := v1.Group("/quotes")
	quotes.Get("/", api.ListQuotes)
	quotes.Get("/:symbol", api.GetQuote)

	v1.Get("/screen", api.Screen)
	v1.Get("/sectors", api.ListSectors)
	v1.Get("/summary", api.Summary)
	v1.Post("/tick", api.Tick)
}
