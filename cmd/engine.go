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
	"time"

	"github.com/penny-vault/mvmsim/catalog"
	"github.com/penny-vault/mvmsim/common"
	"github.com/penny-vault/mvmsim/data"
	"github.com/penny-vault/mvmsim/engine"
	"github.com/penny-vault/mvmsim/sector"
	"github.com/penny-vault/mvmsim/tradecron"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// sessionCalendar builds the exchange calendar from market.timezone and
// market.holidays
func sessionCalendar(spec string) (*tradecron.TradeCron, error) {
	tz := common.GetTimezone()
	holidays, err := tradecron.ParseHolidays(viper.GetStringSlice("market.holidays"), tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", data.ErrConfiguration, err)
	}

	tc, err := tradecron.New(spec, tradecron.RegularHours, tradecron.WithLocation(tz), tradecron.WithHolidays(holidays...))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", data.ErrConfiguration, err)
	}
	return tc, nil
}

func parseConfigDate(key string, def time.Time) (time.Time, error) {
	val := viper.GetString(key)
	if val == "" {
		return def, nil
	}
	dt, err := time.ParseInLocation("2006-01-02", val, common.GetTimezone())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD: %q", data.ErrConfiguration, key, val)
	}
	return dt, nil
}

// buildEngine initializes an engine from the sim.* configuration keys
func buildEngine(ctx context.Context) (*engine.Engine, error) {
	tz := common.GetTimezone()
	now := time.Now().In(tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, tz)

	begin, err := parseConfigDate("sim.start", time.Date(2020, 1, 1, 0, 0, 0, 0, tz))
	if err != nil {
		return nil, err
	}
	end, err := parseConfigDate("sim.end", today)
	if err != nil {
		return nil, err
	}

	mode, err := sector.ParseMode(viper.GetString("sim.sector_mode"))
	if err != nil {
		return nil, err
	}

	cfg := engine.Config{
		Interval:   data.Interval{Begin: begin, End: end},
		SectorMode: mode,
	}

	if fn := viper.GetString("sim.catalog"); fn != "" {
		cat, err := catalog.Load(fn)
		if err != nil {
			return nil, err
		}
		cfg.Catalog = cat
	}

	if seed := viper.GetUint64("sim.seed"); seed != 0 {
		cfg.Seed = &seed
	}

	if viper.GetBool("sim.trading_days_only") {
		if cfg.Calendar, err = sessionCalendar("@open * * *"); err != nil {
			return nil, err
		}
	}

	e, err := engine.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.Info().Str("EngineID", e.ID().String()).Object("Interval", cfg.Interval).Str("SectorMode", mode.String()).Msg("initialized engine")
	return e, nil
}
