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

package rng_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/mvmsim/rng"
)

var _ = Describe("Random sources", func() {
	Context("with a seeded source", func() {
		It("is reproducible", func() {
			a := rng.New(42)
			b := rng.New(42)
			for ii := 0; ii < 100; ii++ {
				Expect(a.Float64()).To(Equal(b.Float64()))
				Expect(a.Uniform(-3, 6)).To(Equal(b.Uniform(-3, 6)))
			}
		})

		It("draws inside the requested bounds", func() {
			src := rng.New(7)
			for ii := 0; ii < 1000; ii++ {
				v := src.Uniform(0.92, 1.08)
				Expect(v).To(BeNumerically(">=", 0.92))
				Expect(v).To(BeNumerically("<=", 1.08))

				u := src.Float64()
				Expect(u).To(BeNumerically(">=", 0))
				Expect(u).To(BeNumerically("<", 1))
			}
		})

		It("differs across seeds", func() {
			a := rng.New(1)
			b := rng.New(2)
			same := 0
			for ii := 0; ii < 20; ii++ {
				if a.Float64() == b.Float64() {
					same++
				}
			}
			Expect(same).To(BeNumerically("<", 20))
		})
	})

	Context("with a scripted source", func() {
		It("replays values in order and cycles", func() {
			src := rng.NewScripted(0.1, 0.9)
			Expect(src.Float64()).To(Equal(0.1))
			Expect(src.Float64()).To(Equal(0.9))
			Expect(src.Float64()).To(Equal(0.1))
			Expect(src.Draws()).To(Equal(3))
		})

		It("maps values onto uniform bounds", func() {
			src := rng.NewScripted(0.5, 0, 1)
			Expect(src.Uniform(-0.04, 0.04)).To(BeNumerically("~", 0, 1e-12))
			Expect(src.Uniform(10, 20)).To(Equal(10.0))
			Expect(src.Uniform(10, 20)).To(Equal(20.0))
		})
	})
})
