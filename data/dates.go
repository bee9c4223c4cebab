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

package data

import (
	"time"
)

// Days returns every calendar day in the interval, both ends included
func Days(interval Interval) []time.Time {
	if interval.Valid() != nil {
		return []time.Time{}
	}

	begin := midnight(interval.Begin)
	days := make([]time.Time, 0, int(interval.End.Sub(begin).Hours()/24)+1)
	for dt := begin; !dt.After(interval.End); dt = dt.AddDate(0, 0, 1) {
		days = append(days, dt)
	}
	return days
}

// MonthEnds returns the last calendar day of every month whose month end falls
// inside the interval
func MonthEnds(interval Interval) []time.Time {
	return periodEnds(interval, 1)
}

// QuarterEnds returns the last calendar day of March, June, September and
// December that fall inside the interval
func QuarterEnds(interval Interval) []time.Time {
	return periodEnds(interval, 3)
}

func periodEnds(interval Interval, months int) []time.Time {
	res := make([]time.Time, 0, 72)
	if interval.Valid() != nil {
		return res
	}

	loc := interval.Begin.Location()

	// first month that closes a period on or after Begin
	month := int(interval.Begin.Month())
	if rem := month % months; rem != 0 {
		month += months - rem
	}

	firstOfNext := time.Date(interval.Begin.Year(), time.Month(month)+1, 1, 0, 0, 0, 0, loc)
	for {
		periodEnd := firstOfNext.AddDate(0, 0, -1)
		if periodEnd.After(interval.End) {
			break
		}
		if !periodEnd.Before(midnight(interval.Begin)) {
			res = append(res, periodEnd)
		}
		firstOfNext = firstOfNext.AddDate(0, months, 0)
	}

	return res
}
