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
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// New creates an empty dataframe with the given column names
func New[T Index](colNames ...string) *DataFrame[T] {
	names := make([]string, len(colNames))
	copy(names, colNames)
	vals := make([][]float64, len(colNames))
	for idx := range vals {
		vals[idx] = make([]float64, 0)
	}
	return &DataFrame[T]{
		Index:    make([]T, 0),
		ColNames: names,
		Vals:     vals,
	}
}

// AsMap creates a map with the index as the key and the specified column as the value
func (df *DataFrame[T]) AsMap(colName string) map[T]float64 {
	res := make(map[T]float64, df.Len())
	colIdx := df.ColIndex(colName)
	if colIdx == -1 {
		// column does not exist, return empty map
		return res
	}

	for idx, val := range df.Vals[colIdx] {
		res[df.Index[idx]] = val
	}

	return res
}

func (df *DataFrame[T]) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

func (df *DataFrame[T]) ColCount() int {
	return len(df.ColNames)
}

// Column returns the values stored in colName
func (df *DataFrame[T]) Column(colName string) ([]float64, error) {
	colIdx := df.ColIndex(colName)
	if colIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, colName)
	}
	return df.Vals[colIdx], nil
}

func (df *DataFrame[T]) Copy() *DataFrame[T] {
	df2 := &DataFrame[T]{
		ColNames: make([]string, len(df.ColNames)),
		Index:    make([]T, len(df.Index)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	copy(df2.ColNames, df.ColNames)
	copy(df2.Index, df.Index)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

func (df *DataFrame[T]) End() time.Time {
	if len(df.Index) == 0 {
		return time.Time{}
	}

	if lastDate, ok := any(df.Index[len(df.Index)-1]).(time.Time); ok {
		return lastDate
	}

	return time.Time{}
}

// InsertRow appends a row to the dataframe. Date indexes must be strictly
// increasing and vals must hold one value per column.
func (df *DataFrame[T]) InsertRow(idx T, vals ...float64) error {
	if len(vals) != len(df.ColNames) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrColumnMismatch, len(vals), len(df.ColNames))
	}

	if len(df.Index) != 0 {
		if last, ok := any(df.Index[len(df.Index)-1]).(time.Time); ok {
			next := any(idx).(time.Time)
			if !next.After(last) {
				return fmt.Errorf("%w: %s <= %s", ErrIndexNotIncreasing, next.Format("2006-01-02"), last.Format("2006-01-02"))
			}
		}
	}

	df.Index = append(df.Index, idx)
	for colIdx := range df.ColNames {
		df.Vals[colIdx] = append(df.Vals[colIdx], vals[colIdx])
	}

	return nil
}

// Last returns a dataframe holding only the final row of df
func (df *DataFrame[T]) Last() *DataFrame[T] {
	if df.Len() == 0 {
		return df
	}

	lastRow := len(df.Index) - 1
	lastVals := make([][]float64, len(df.ColNames))
	for idx, col := range df.Vals {
		lastVals[idx] = []float64{col[lastRow]}
	}

	return &DataFrame[T]{
		ColNames: df.ColNames,
		Index:    []T{df.Index[lastRow]},
		Vals:     lastVals,
	}
}

func (df *DataFrame[T]) Len() int {
	return len(df.Index)
}

func (df *DataFrame[T]) Start() time.Time {
	if len(df.Index) == 0 {
		return time.Time{}
	}

	if firstDate, ok := any(df.Index[0]).(time.Time); ok {
		return firstDate
	}

	return time.Time{}
}

func (df *DataFrame[T]) Table() string {
	if len(df.Index) == 0 {
		return "<NO DATA>"
	}

	// construct table header
	tableCols := append([]string{"Index"}, df.ColNames...)

	// initialize table
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	if len(footer) > 1 {
		footer[1] = fmt.Sprintf("%d", df.Len())
	}
	table.SetFooter(footer)
	table.SetBorder(false)

	for rowIdx, idx := range df.Index {
		row := make([]string, 0, len(df.Vals)+1)
		switch v := any(idx).(type) {
		case time.Time:
			row = append(row, v.Format("2006-01-02"))
		case string:
			row = append(row, v)
		}

		for _, col := range df.Vals {
			val := col[rowIdx]
			if math.IsNaN(val) {
				row = append(row, "NaN")
			} else {
				row = append(row, fmt.Sprintf("%.2f", val))
			}
		}

		table.Append(row)
	}

	table.Render()
	return s.String()
}

// Trim the dataframe to the specified date range (inclusive). The returned
// frame shares its backing arrays with df.
func (df *DataFrame[T]) Trim(begin, end time.Time) *DataFrame[T] {
	df2 := &DataFrame[T]{
		ColNames: df.ColNames,
		Index:    df.Index,
		Vals:     make([][]float64, len(df.Vals)),
	}
	copy(df2.Vals, df.Vals)

	empty := func() *DataFrame[T] {
		df2.Index = []T{}
		for colIdx := range df2.Vals {
			df2.Vals[colIdx] = []float64{}
		}
		return df2
	}

	// special case 0: requested range is invalid
	if end.Before(begin) {
		return empty()
	}

	// special case 1: data frame is empty
	if df.Len() == 0 {
		return df2
	}

	// ensure that index is a date index
	first, ok := any(df.Index[0]).(time.Time)
	if !ok {
		return df2
	}
	last := any(df.Index[len(df.Index)-1]).(time.Time)

	// special case 2: end time is before data frame start
	// special case 3: start time is after data frame end
	if end.Before(first) || begin.After(last) {
		return empty()
	}

	// use binary search to find the index corresponding to the start and end times
	beginIdx := sort.Search(len(df.Index), func(i int) bool {
		return !any(df.Index[i]).(time.Time).Before(begin)
	})

	endIdx := sort.Search(len(df.Index), func(i int) bool {
		return any(df.Index[i]).(time.Time).After(end)
	})

	df2.Index = df.Index[beginIdx:endIdx]
	for colIdx, col := range df.Vals {
		df2.Vals[colIdx] = col[beginIdx:endIdx]
	}

	return df2
}
