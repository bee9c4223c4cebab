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

package tradecron

import (
	"time"
)

// Holiday is a day the exchange is closed. A non-zero EarlyClose (e.g. 1200)
// marks a shortened session instead.
type Holiday struct {
	Date       time.Time
	EarlyClose int
}

type MarketStatus struct {
	marketHours *MarketHours
	tz          *time.Location
	holidays    map[int64]int
}

// NewMarketStatus creates a weekday session calendar in tz with the given holidays
func NewMarketStatus(hours *MarketHours, tz *time.Location, holidays ...Holiday) *MarketStatus {
	ms := &MarketStatus{
		marketHours: hours,
		tz:          tz,
		holidays:    make(map[int64]int, len(holidays)),
	}

	for _, h := range holidays {
		ms.holidays[midnight(h.Date, tz).Unix()] = h.EarlyClose
	}

	return ms
}

// EarlyClose returns close time of an early close market day, e.g. 1300
func (ms *MarketStatus) EarlyClose(t time.Time) int {
	if closeTime, ok := ms.holidays[midnight(t, ms.tz).Unix()]; ok {
		return closeTime
	}
	return 0
}

// IsMarketHoliday returns true if the specified date is a full market holiday
func (ms *MarketStatus) IsMarketHoliday(t time.Time) bool {
	closeTime, ok := ms.holidays[midnight(t, ms.tz).Unix()]
	return ok && closeTime == 0
}

// IsMarketOpen returns true if the specified time is during market hours
// (i.e. not a market holiday or weekend)
func (ms *MarketStatus) IsMarketOpen(t time.Time) bool {
	t = t.In(ms.tz)
	if !ms.IsMarketDay(t) {
		return false
	}

	// check time
	closeTime := ms.marketHours.Close
	if earlyClose := ms.EarlyClose(t); earlyClose != 0 {
		closeTime = earlyClose
	}

	timeOfDay := t.Hour()*100 + t.Minute()
	return timeOfDay >= ms.marketHours.Open && timeOfDay <= closeTime
}

// IsMarketDay returns true if the specified date is a valid trading day
// (i.e. not a market holiday or weekend)
func (ms *MarketStatus) IsMarketDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}

	return !ms.IsMarketHoliday(t)
}

// NextFirstTradingDayOfMonth returns the first trading day of the next month
func (ms *MarketStatus) NextFirstTradingDayOfMonth(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, ms.tz).AddDate(0, 1, 0)
	for !ms.IsMarketDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// NextFirstTradingDayOfWeek returns the first trading day of the week.
func (ms *MarketStatus) NextFirstTradingDayOfWeek(t time.Time) time.Time {
	daysToWeekBegin := (8 - t.Weekday()) % 7
	t2 := t.AddDate(0, 0, int(daysToWeekBegin))
	for !ms.IsMarketDay(t2) {
		t2 = t2.AddDate(0, 0, 1)
	}

	return midnight(t2, ms.tz)
}

// LastTradingDayOfMonth returns the last trading day of the month containing t
func (ms *MarketStatus) LastTradingDayOfMonth(t time.Time) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, ms.tz)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	for !ms.IsMarketDay(lastOfMonth) {
		lastOfMonth = lastOfMonth.AddDate(0, 0, -1)
	}

	return lastOfMonth
}

// NextLastTradingDayOfWeek returns the next last trading day of week
func (ms *MarketStatus) NextLastTradingDayOfWeek(t time.Time) time.Time {
	daysToFriday := time.Friday - t.Weekday()
	lastDayOfWeek := t.AddDate(0, 0, int(daysToFriday))

	for !ms.IsMarketDay(lastDayOfWeek) {
		lastDayOfWeek = lastDayOfWeek.AddDate(0, 0, -1)
	}

	return midnight(lastDayOfWeek, ms.tz)
}
