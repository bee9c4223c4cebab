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

package rng

// Scripted replays a fixed list of unit draws, cycling when exhausted
type Scripted struct {
	values []float64
	next   int
	draws  int
}

// NewScripted returns a source that yields values in order. Uniform maps the
// next value v onto min + (max-min)*v, so 0.5 is always the midpoint.
func NewScripted(values ...float64) *Scripted {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &Scripted{values: values}
}

func (s *Scripted) Float64() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	s.draws++
	return v
}

func (s *Scripted) Uniform(min, max float64) float64 {
	return min + (max-min)*s.Float64()
}

// Draws reports how many values have been consumed
func (s *Scripted) Draws() int {
	return s.draws
}
