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

package data_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/mvmsim/data"
)

var _ = Describe("Calendar test", func() {
	var iv data.Interval

	Context("with the first half of 2020", func() {
		BeforeEach(func() {
			iv = data.Interval{
				Begin: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC),
			}
		})

		It("lists every calendar day", func() {
			days := data.Days(iv)
			// 2020 is a leap year
			Expect(days).To(HaveLen(31 + 29 + 31 + 30 + 31 + 15))
			Expect(days[0]).To(Equal(iv.Begin))
			Expect(days[len(days)-1]).To(Equal(iv.End))
		})

		It("lists month ends inside the range", func() {
			months := data.MonthEnds(iv)
			Expect(months).To(HaveLen(5))
			Expect(months[0]).To(Equal(time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)))
			Expect(months[1]).To(Equal(time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)))
			Expect(months[4]).To(Equal(time.Date(2020, 5, 31, 0, 0, 0, 0, time.UTC)))
		})

		It("lists quarter ends inside the range", func() {
			quarters := data.QuarterEnds(iv)
			Expect(quarters).To(Equal([]time.Time{time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC)}))
		})
	})

	Context("with a range that starts on a month end", func() {
		It("includes the starting month", func() {
			iv = data.Interval{
				Begin: time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC),
			}
			Expect(data.MonthEnds(iv)).To(Equal([]time.Time{
				time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC),
			}))
			Expect(data.QuarterEnds(iv)).To(HaveLen(1))
		})
	})

	Context("with an inverted range", func() {
		It("returns nothing", func() {
			iv = data.Interval{
				Begin: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			}
			Expect(data.Days(iv)).To(BeEmpty())
			Expect(data.MonthEnds(iv)).To(BeEmpty())
		})
	})
})
