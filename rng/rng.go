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

// Package rng provides the injectable random sources used by every generator.
// Production code asks for New(seed) or NewUnseeded(); tests replay exact
// draws with NewScripted.
package rng

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source yields unit draws in [0, 1) and uniform draws in [min, max)
type Source interface {
	Float64() float64
	Uniform(min, max float64) float64
}

type pcgSource struct {
	src rand.Source
	rnd *rand.Rand
}

// New returns a deterministic source; equal seeds produce equal sequences
func New(seed uint64) Source {
	src := rand.NewSource(seed)
	return &pcgSource{
		src: src,
		rnd: rand.New(src),
	}
}

// NewUnseeded returns a source seeded from the wall clock. It is meant for
// interactive use only.
func NewUnseeded() Source {
	return New(uint64(time.Now().UnixNano()))
}

func (s *pcgSource) Float64() float64 {
	return s.rnd.Float64()
}

func (s *pcgSource) Uniform(min, max float64) float64 {
	u := distuv.Uniform{
		Min: min,
		Max: max,
		Src: s.src,
	}
	return u.Rand()
}
