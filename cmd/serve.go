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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/penny-vault/mvmsim/common"
	"github.com/penny-vault/mvmsim/engine"
	"github.com/penny-vault/mvmsim/handler"
	"github.com/penny-vault/mvmsim/middleware"
	"github.com/penny-vault/mvmsim/observability/opentelemetry"
	"github.com/penny-vault/mvmsim/router"
	"github.com/penny-vault/mvmsim/tradecron"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	serveCmd.Flags().Bool("manual-tick", true, "Allow clients to advance the market with POST /v1/tick")
	viper.BindPFlag("server.manual_tick", serveCmd.Flags().Lookup("manual-tick"))

	viper.BindEnv("tick.interval", "MVM_TICK_INTERVAL")
	serveCmd.Flags().Duration("tick-interval", 30*time.Second, "Time between market ticks; 0 disables scheduled ticks")
	viper.BindPFlag("tick.interval", serveCmd.Flags().Lookup("tick-interval"))

	serveCmd.Flags().Bool("market-hours-only", false, "Only tick while the exchange is open")
	viper.BindPFlag("tick.market_hours_only", serveCmd.Flags().Lookup("market-hours-only"))

	// Cache
	serveCmd.Flags().Int("cache-local-size", 128, "Number of responses held in memory")
	viper.BindPFlag("cache.local_size", serveCmd.Flags().Lookup("cache-local-size"))

	viper.BindEnv("cache.redis_url", "REDIS_URL")
	serveCmd.Flags().Bool("cache-redis", false, "Share cached responses through redis")
	viper.BindPFlag("cache.redis", serveCmd.Flags().Lookup("cache-redis"))

	serveCmd.Flags().Int("cache-ttl", 30, "Seconds a cached response lives in redis")
	viper.BindPFlag("cache.ttl", serveCmd.Flags().Lookup("cache-ttl"))

	rootCmd.AddCommand(serveCmd)
}

// scheduleTicks advances e every tick.interval. When tick.market_hours_only is
// set ticks that land outside the trading session are skipped.
func scheduleTicks(e *engine.Engine) (*gocron.Scheduler, error) {
	interval := viper.GetDuration("tick.interval")
	if interval <= 0 {
		log.Info().Msg("scheduled ticks disabled")
		return nil, nil
	}

	var session *tradecron.TradeCron
	if viper.GetBool("tick.market_hours_only") {
		var err error
		if session, err = sessionCalendar("@open * * *"); err != nil {
			return nil, err
		}
	}

	scheduler := gocron.NewScheduler(common.GetTimezone())
	_, err := scheduler.Every(interval).Do(func() {
		if session != nil && !session.IsMarketOpen(time.Now()) {
			log.Debug().Msg("market closed; skipping tick")
			return
		}
		res := e.Tick(context.Background())
		log.Debug().Int("Tick", res.Tick).Int("NumSelected", len(res.Selected)).Msg("scheduled tick")
	})
	if err != nil {
		return nil, err
	}

	scheduler.StartAsync()
	log.Info().Dur("Interval", interval).Bool("MarketHoursOnly", session != nil).Msg("scheduled ticks")
	return scheduler, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the market simulator server",
	Long:  `Run HTTP server that exposes the simulated market and advances it on a schedule`,
	Run: func(cmd *cobra.Command, args []string) {
		shutdownTracer, err := opentelemetry.Setup()
		if err != nil {
			log.Fatal().Err(err).Msg("could not setup tracing")
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Error().Err(err).Msg("could not flush traces")
			}
		}()

		e, err := buildEngine(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize engine")
		}

		cache, err := common.SetupCache()
		if err != nil {
			log.Fatal().Err(err).Msg("could not setup cache")
		}

		scheduler, err := scheduleTicks(e)
		if err != nil {
			log.Fatal().Err(err).Msg("could not schedule ticks")
		}
		if scheduler != nil {
			defer scheduler.Stop()
		}

		// Create new Fiber instance
		app := fiber.New(fiber.Config{
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
			DisableStartupMessage: true,
		})

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c // block until signal is read
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			if err := app.Shutdown(); err != nil {
				log.Error().Err(err).Msg("could not shutdown server")
			}
		}()

		// Configure CORS
		corsConfig := cors.Config{
			AllowOrigins: "*",
			AllowHeaders: "*",
			AllowMethods: "GET,POST,HEAD",
		}
		app.Use(cors.New(corsConfig))

		// Setup tracing and logging middleware
		app.Use(middleware.NewTracer())
		app.Use(middleware.NewLogger())

		// Setup routes
		router.SetupRoutes(app, handler.New(e, cache, viper.GetBool("server.manual_tick")))

		port := viper.GetString("server.port")
		log.Info().Str("Port", port).Str("EngineID", e.ID().String()).Msg("starting server")
		if err := app.Listen(":" + port); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	},
}
