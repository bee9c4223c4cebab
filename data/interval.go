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
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Interval stores a beginning and ending time period. Both ends are inclusive.
type Interval struct {
	Begin time.Time
	End   time.Time
}

// NewInterval returns the interval [begin, end] truncated to midnight of each day
// and validated; an invalid range is reported as ErrConfiguration
func NewInterval(begin, end time.Time) (Interval, error) {
	iv := Interval{
		Begin: midnight(begin),
		End:   midnight(end),
	}
	if err := iv.Valid(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Overlaps returns true if interval and other overlap
func (interval Interval) Overlaps(other Interval) bool {
	if (other.Begin.Before(interval.End) || other.Begin.Equal(interval.End)) && (other.End.After(interval.Begin) || other.End.Equal(interval.Begin)) {
		return true
	}
	return false
}

// Valid checks if the given interval is valid range and returns an error
// wrapping ErrBeginAfterEnd if not
func (interval Interval) Valid() error {
	if interval.Begin.After(interval.End) {
		return fmt.Errorf("%w: %s > %s", ErrBeginAfterEnd, interval.Begin.Format("2006-01-02"), interval.End.Format("2006-01-02"))
	}

	return nil
}

// MarshalZerologObject implement the log marshaller interface for zerolog
func (interval Interval) MarshalZerologObject(e *zerolog.Event) {
	e.Time("Begin", interval.Begin).Time("End", interval.End)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
