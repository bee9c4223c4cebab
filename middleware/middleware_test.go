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

package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/penny-vault/mvmsim/middleware"
)

var _ = Describe("Middleware", func() {
	var (
		app *fiber.App
		buf *bytes.Buffer
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		log.Logger = zerolog.New(buf)

		app = fiber.New()
		app.Use(middleware.NewTracer())
		app.Use(middleware.NewLogger())
		app.Get("/ok", func(c *fiber.Ctx) error {
			Expect(trace.SpanFromContext(c.UserContext())).NotTo(BeNil())
			return c.SendString("ok")
		})
		app.Get("/missing", func(c *fiber.Ctx) error {
			return fiber.ErrNotFound
		})
	})

	AfterEach(func() {
		log.Logger = log.Output(GinkgoWriter)
	})

	lastEntry := func() map[string]interface{} {
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		Expect(lines).NotTo(BeEmpty())
		entry := make(map[string]interface{})
		Expect(json.Unmarshal(lines[len(lines)-1], &entry)).To(Succeed())
		return entry
	}

	It("logs successful requests at info", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok?x=1", nil), -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		entry := lastEntry()
		Expect(entry["level"]).To(Equal("info"))
		Expect(entry["StatusCode"]).To(BeNumerically("==", 200))
		Expect(entry["Path"]).To(Equal("/ok"))
		Expect(entry["QueryStringParams"]).To(Equal("x=1"))
		Expect(entry["message"]).To(Equal("Processed HTTP request"))
	})

	It("routes handler errors through the error handler and logs a warning", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusNotFound))

		entry := lastEntry()
		Expect(entry["level"]).To(Equal("warn"))
		Expect(entry["StatusCode"]).To(BeNumerically("==", 404))
		Expect(entry["message"]).To(Equal("Bad HTTP request"))
	})
})
