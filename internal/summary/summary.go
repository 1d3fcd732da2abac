/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package summary computes a per-column quality report for an in-memory
// table: types, null counts, duplicates, uniqueness and optional memory and
// min/max/mean statistics.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/table-summarizer/internal/table"
)

const (
	// SampleAllNull is emitted when a column has no non-null values to sample.
	SampleAllNull = "All NaN"
	// SampleError replaces the sample when building it fails; one column's
	// display problem must not abort the whole report.
	SampleError = "Error displaying sample"
	// sampleNullToken renders a null hit during sample conversion.
	sampleNullToken = "NaN"
)

// Summarize builds one report row per selected column and sorts the rows by
// null percentage descending. Ties keep the original column order. The
// input table is not modified.
func Summarize(tbl *table.Table, params Params) (*Report, error) {
	if tbl == nil {
		return nil, &ErrInvalidType{Msg: "table must be a non-nil *table.Table"}
	}
	if tbl.NumRows() == 0 {
		return nil, &ErrInvalidValue{Msg: "table has no rows"}
	}
	if params.SampleSize < 1 {
		return nil, &ErrInvalidValue{Msg: fmt.Sprintf("sample size must be at least 1, got %d", params.SampleSize)}
	}

	selected := params.Columns
	if selected == nil {
		selected = tbl.Names()
	} else {
		var missing []string
		for _, name := range selected {
			if !tbl.HasColumn(name) {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return nil, &ErrInvalidValue{Msg: fmt.Sprintf("columns not found in table: %s", strings.Join(missing, ", "))}
		}
	}

	// Duplicate rows are a table-level metric, computed once and repeated on
	// every row of the report.
	dupCount := tbl.DuplicateRowCount()

	rows := make([]ColumnSummary, 0, len(selected))
	for _, name := range selected {
		col, _ := tbl.Column(name)
		rows = append(rows, summarizeColumn(col, tbl.NumRows(), dupCount, params))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NullPercent > rows[j].NullPercent
	})

	return &Report{
		IncludeMemoryUsage: params.IncludeMemoryUsage,
		IncludeStats:       params.IncludeStats,
		Rows:               rows,
	}, nil
}

// TopIssues summarizes the table with memory usage included and keeps only
// the topN rows with the largest null percentage. A non-positive topN
// yields zero rows; an oversized one yields every row.
func TopIssues(tbl *table.Table, topN int) (*Report, error) {
	params := DefaultParams()
	params.IncludeMemoryUsage = true
	report, err := Summarize(tbl, params)
	if err != nil {
		return nil, err
	}
	if topN < 0 {
		topN = 0
	}
	if topN < len(report.Rows) {
		report.Rows = report.Rows[:topN]
	}
	return report, nil
}

func summarizeColumn(col *table.Column, totalRows, dupCount int, params Params) ColumnSummary {
	nulls := col.NullCount()
	pct := 0.0
	if totalRows > 0 {
		pct = round(100*float64(nulls)/float64(totalRows), 2)
	}

	row := ColumnSummary{
		Column:        col.Name(),
		DataType:      col.Kind().String(),
		NullCount:     nulls,
		NullPercent:   pct,
		DuplicateRows: dupCount,
		UniqueValues:  col.DistinctCount(),
		SampleValues:  sampleString(col, params.SampleSize),
	}

	if params.IncludeMemoryUsage {
		bytes := col.MemoryUsage()
		row.MemoryBytes = &bytes
	}

	if params.IncludeStats && col.Kind().Numeric() {
		if vals := col.Float64s(); len(vals) > 0 {
			min, max, mean := minMaxMean(vals)
			row.Min = float64Ptr(round(min, 3))
			row.Max = float64Ptr(round(max, 3))
			row.Mean = float64Ptr(round(mean, 3))
		}
	}

	return row
}

// sampleString joins up to n distinct non-null values in first-seen order.
// Any panic while converting values is downgraded to SampleError.
func sampleString(col *table.Column, n int) (out string) {
	defer func() {
		if recover() != nil {
			out = SampleError
		}
	}()

	distinct := col.Distinct()
	if len(distinct) == 0 {
		return SampleAllNull
	}
	if len(distinct) > n {
		distinct = distinct[:n]
	}
	parts := make([]string, len(distinct))
	for i, v := range distinct {
		parts[i] = FormatValue(v)
	}
	return strings.Join(parts, ", ")
}

// FormatValue renders a single cell for display. Null renders as "NaN".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return sampleNullToken
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func minMaxMean(vals []float64) (min, max, mean float64) {
	min, max = vals[0], vals[0]
	sum := 0.0
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return min, max, sum / float64(len(vals))
}

func round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

func float64Ptr(x float64) *float64 { return &x }
