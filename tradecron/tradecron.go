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

// Package tradecron provides market aware scheduling on top of robfig/cron.
// The session calendar is a weekday calendar in the exchange's timezone with
// an optional list of holidays.
package tradecron

import (
	"strings"
	"time"

	"github.com/penny-vault/mvmsim/common"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	AtOpen       = "@open"
	AtClose      = "@close"
	AtWeekBegin  = "@weekbegin"
	AtWeekEnd    = "@weekend"
	AtMonthBegin = "@monthbegin"
	AtMonthEnd   = "@monthend"
)

type MarketHours struct {
	Open  int
	Close int
}

type TradeCron struct {
	Schedule       cron.Schedule
	ScheduleString string
	TimeSpec       string
	TimeFlag       string
	DateFlag       string
	marketStatus   *MarketStatus
}

// Option configures a TradeCron
type Option func(*options)

type options struct {
	tz       *time.Location
	holidays []Holiday
}

var (
	RegularHours = MarketHours{
		Open:  930,
		Close: 1600,
	}
	ExtendedHours = MarketHours{
		Open:  700,
		Close: 2000,
	}
)

// WithLocation evaluates the schedule in tz instead of the configured market timezone
func WithLocation(tz *time.Location) Option {
	return func(o *options) {
		o.tz = tz
	}
}

// WithHolidays closes (or shortens) the session on the given days
func WithHolidays(holidays ...Holiday) Option {
	return func(o *options) {
		o.holidays = append(o.holidays, holidays...)
	}
}

// New creates a market aware schedule. It supports schedules via the standard
// CRON format of: Minutes(Min) Hours(H) DayOfMonth(DoM) Month(M) DayOfWeek(DoW)
// See: https://en.wikipedia.org/wiki/Cron
//
// '*' wildcards only execute during market open hours
//
// Additional market-aware modifiers are supported:
//
//	@open       - Run at market open; replaces Minute and Hour field
//	              e.g., @open * * *
//	@close      - Run at market close; replaces Minute and Hour field
//	@weekbegin  - Run on first trading day of week; replaces DayOfMonth field
//	@weekend    - Run on last trading day of week; replaces DayOfMonth field
//	@monthbegin - Run at market open or timespec on first trading day of month
//	@monthend   - Run at market close or timespec on last trading day of month
//
// Examples:
//   - every 5 minutes: */5 * * * *
//   - market open on tuesdays: @open * * 2
//   - 15 minutes after market open: 15 @open * * *
//   - market open on first trading day of week: @weekbegin
//   - market open on last trading day of month: @open @monthend
func New(cronSpec string, hours MarketHours, opts ...Option) (*TradeCron, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.tz == nil {
		o.tz = common.GetTimezone()
	}

	specParser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	scheduleStr := strings.TrimSpace(cronSpec)
	if scheduleStr == "" {
		return nil, ErrMalformedTimeSpec
	}
	scheduleStr = expandBriefFormat(scheduleStr)

	// separate special tokens from timespec
	tokens := strings.Fields(scheduleStr)

	timeSpecTokens := make([]string, 0, 5)
	specialTokens := make([]string, 0, 2)
	for _, token := range tokens {
		if token[0] == '@' {
			specialTokens = append(specialTokens, token)
		} else {
			timeSpecTokens = append(timeSpecTokens, token)
		}
	}

	var timeSpec string
	var timeFlag string
	var dateFlag string
	var err error
	for _, token := range specialTokens {
		switch token {
		case AtOpen, AtClose:
			if timeFlag != "" {
				return nil, ErrConflictingModifiers
			}
			anchor := hours.Open
			if token == AtClose {
				anchor = hours.Close
			}
			if timeSpec, err = parseTimeRelativeTo(timeSpecTokens, anchor/100, anchor%100); err != nil {
				return nil, err
			}
			timeFlag = token
		case AtWeekBegin, AtWeekEnd, AtMonthBegin, AtMonthEnd:
			if dateFlag != "" {
				return nil, ErrConflictingModifiers
			}
			dateFlag = token
		default:
			return nil, ErrUnknownModifier
		}
	}

	if timeSpec == "" {
		timeSpec = strings.Join(timeSpecTokens, " ")
	}

	schedule, err := specParser.Parse(timeSpec)
	if err != nil {
		log.Error().Err(err).Str("TimeSpec", timeSpec).Str("TradeCronSpec", cronSpec).Msg("robfig/cron could not parse timespec")
		return nil, err
	}

	tc := &TradeCron{
		Schedule:       schedule,
		ScheduleString: cronSpec,
		TimeSpec:       timeSpec,
		DateFlag:       dateFlag,
		TimeFlag:       timeFlag,
		marketStatus:   NewMarketStatus(&hours, o.tz, o.holidays...),
	}

	return tc, nil
}

// IsMarketOpen returns true if t falls inside a trading session
func (tc *TradeCron) IsMarketOpen(t time.Time) bool {
	return tc.marketStatus.IsMarketOpen(t)
}

// IsTradeDay evaluates the given date against the schedule and returns true if the date falls
// on a trading day according to the schedule. The time portion of the schedule is ignored when
// evaluating this function
func (tc *TradeCron) IsTradeDay(forDate time.Time) bool {
	t1 := midnight(forDate, tc.marketStatus.tz)
	t0 := t1.AddDate(0, 0, -1)
	t0 = time.Date(t0.Year(), t0.Month(), t0.Day(), 23, 59, 59, 999_999_999, tc.marketStatus.tz)
	next := tc.Next(t0)
	return midnight(next, tc.marketStatus.tz).Equal(t1)
}

// Location returns the timezone the schedule is evaluated in
func (tc *TradeCron) Location() *time.Location {
	return tc.marketStatus.tz
}

// Next returns the next tradeable date
func (tc *TradeCron) Next(forDate time.Time) time.Time {
	var checkDate time.Time

	forDate = forDate.In(tc.marketStatus.tz)
	next := tc.Schedule.Next(forDate)
	dateOnly := midnight(next, tc.marketStatus.tz)

	// if there is a date flag in the schedule then fast-forward to the next possible date for checking
	switch tc.DateFlag {
	case AtWeekBegin:
		firstTradingDay := tc.marketStatus.NextFirstTradingDayOfWeek(forDate)

		switch {
		case dateOnly.Before(firstTradingDay):
			checkDate = firstTradingDay
		case dateOnly.Equal(firstTradingDay):
			checkDate = forDate
		default:
			checkDate = tc.marketStatus.NextFirstTradingDayOfWeek(dateOnly)
		}
	case AtWeekEnd:
		lastTradingDay := tc.marketStatus.NextLastTradingDayOfWeek(forDate)

		switch {
		case dateOnly.Before(lastTradingDay):
			checkDate = lastTradingDay
		case dateOnly.Equal(lastTradingDay):
			checkDate = forDate
		default:
			checkDate = tc.marketStatus.NextLastTradingDayOfWeek(dateOnly)
		}
	case AtMonthBegin:
		// get the first trading day of the current month
		lastMonth := time.Date(forDate.Year(), forDate.Month(), 1, 23, 59, 59, 999_999_999, tc.marketStatus.tz).AddDate(0, 0, -1)
		firstTradingDayOfThisMonth := tc.marketStatus.NextFirstTradingDayOfMonth(lastMonth)
		firstTradingDayOfNextMonth := tc.marketStatus.NextFirstTradingDayOfMonth(forDate)
		// if next date is a first date of month then we are good to go
		if dateOnly.Equal(firstTradingDayOfThisMonth) || dateOnly.Equal(firstTradingDayOfNextMonth) {
			checkDate = forDate
		} else {
			checkDate = firstTradingDayOfNextMonth
			firstTradingDay := time.Date(checkDate.Year(), checkDate.Month(), checkDate.Day(), next.Hour(), next.Minute(), next.Second(), next.Nanosecond(), next.Location())
			if next.After(firstTradingDay) {
				// bump forward because next date is still after dt
				checkDate = tc.marketStatus.NextFirstTradingDayOfMonth(next)
			}
		}
	case AtMonthEnd:
		nextMonth := time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, tc.marketStatus.tz).AddDate(0, 1, 0)
		lastTradingDay := tc.marketStatus.LastTradingDayOfMonth(next)

		switch {
		case dateOnly.Before(lastTradingDay):
			checkDate = lastTradingDay
		case dateOnly.Equal(lastTradingDay):
			checkDate = forDate
		default:
			checkDate = tc.marketStatus.LastTradingDayOfMonth(nextMonth)
		}
	default:
		checkDate = forDate
	}

	const maxIters = 5000
	for iter := 0; ; iter++ {
		checkDate = tc.Schedule.Next(checkDate)
		if tc.marketStatus.IsMarketOpen(checkDate) {
			break
		}
		if iter > maxIters {
			log.Panic().Str("TimeSpec", tc.TimeSpec).Msg("something is wrong with tradecron schedule as it appears to be in an infinite loop")
		}
	}

	return checkDate
}
