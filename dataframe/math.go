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

package dataframe

import (
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Max returns the largest value in colName; NaN when the column is missing or empty
func (df *DataFrame[T]) Max(colName string) float64 {
	col, err := df.Column(colName)
	if err != nil || len(col) == 0 {
		return math.NaN()
	}
	return floats.Max(col)
}

// Mean returns the arithmetic mean of colName; NaN when the column is missing or empty
func (df *DataFrame[T]) Mean(colName string) float64 {
	col, err := df.Column(colName)
	if err != nil || len(col) == 0 {
		return math.NaN()
	}
	return stat.Mean(col, nil)
}

// Min returns the smallest value in colName; NaN when the column is missing or empty
func (df *DataFrame[T]) Min(colName string) float64 {
	col, err := df.Column(colName)
	if err != nil || len(col) == 0 {
		return math.NaN()
	}
	return floats.Min(col)
}

// MulScalar multiplies all columns in dataframe df by the scalar and returns a new dataframe
func (df *DataFrame[T]) MulScalar(scalar float64) *DataFrame[T] {
	df = df.Copy()
	for colIdx := range df.Vals {
		floats.Scale(scalar, df.Vals[colIdx])
	}
	return df
}

// SMA computes the simple moving average of all the columns in df for the specified
// lookback period. The length of the resulting dataframe equals that of the input with NaNs
// during the warm-up period. Invalid lookback periods result in a dataframe of all NaN.
func (df *DataFrame[T]) SMA(lookback int) *DataFrame[T] {
	smaVals := make([][]float64, df.ColCount())
	for idx := range smaVals {
		smaVals[idx] = make([]float64, df.Len())
	}

	smaDf := &DataFrame[T]{
		Index:    df.Index,
		Vals:     smaVals,
		ColNames: df.ColNames,
	}

	// check that lookback is a valid period
	if (lookback > df.Len()) || (lookback <= 0) {
		log.Warn().Int("Lookback", lookback).Int("NRows", df.Len()).Msg("lookback must be: 0 < lookback <= NRows")
		for colIdx := range smaVals {
			for rowIdx := range smaVals[colIdx] {
				smaVals[colIdx][rowIdx] = math.NaN()
			}
		}
		return smaDf
	}

	for colIdx, col := range df.Vals {
		for rowIdx := range col {
			// NOTE: row is 0 based, lookback is 1 based
			if rowIdx < lookback-1 {
				smaVals[colIdx][rowIdx] = math.NaN()
				continue
			}
			smaVals[colIdx][rowIdx] = stat.Mean(col[rowIdx-lookback+1:rowIdx+1], nil)
		}
	}

	return smaDf
}
