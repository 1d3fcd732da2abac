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
package summary

// Params controls a single Summarize call.
type Params struct {
	// Columns selects which columns to summarize, in order. Nil means all
	// columns in table order.
	Columns []string
	// SampleSize is the maximum number of distinct values shown per column.
	// Must be at least 1.
	SampleSize int
	// IncludeMemoryUsage adds the per-column memory footprint in bytes.
	IncludeMemoryUsage bool
	// IncludeStats adds Min/Max/Mean for numeric columns.
	IncludeStats bool
}

// DefaultParams returns the defaults: all columns, sample size 5, no
// optional fields.
func DefaultParams() Params {
	return Params{SampleSize: 5}
}

// ColumnSummary is one row of the report.
type ColumnSummary struct {
	Column        string  `json:"column" yaml:"column"`
	DataType      string  `json:"data_type" yaml:"data_type"`
	NullCount     int     `json:"null_count" yaml:"null_count"`
	NullPercent   float64 `json:"null_percent" yaml:"null_percent"`
	DuplicateRows int     `json:"duplicate_rows" yaml:"duplicate_rows"`
	UniqueValues  int     `json:"unique_values" yaml:"unique_values"`
	SampleValues  string  `json:"sample_values" yaml:"sample_values"`

	// MemoryBytes is set only when Params.IncludeMemoryUsage was requested.
	MemoryBytes *int64 `json:"memory_bytes,omitempty" yaml:"memory_bytes,omitempty"`

	// Min, Max and Mean are set only when Params.IncludeStats was requested,
	// and stay nil for non-numeric or all-null columns.
	Min  *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Mean *float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
}

// Report is the finished summary table, sorted by null percentage
// descending. Row index is slice position.
type Report struct {
	IncludeMemoryUsage bool            `json:"include_memory_usage" yaml:"include_memory_usage"`
	IncludeStats       bool            `json:"include_stats" yaml:"include_stats"`
	Rows               []ColumnSummary `json:"rows" yaml:"rows"`
}

// Header returns the column headers matching the optional fields present in
// this report.
func (r *Report) Header() []string {
	header := []string{"Column", "Data Type", "Null Count", "Null Percent", "Duplicate Rows", "Unique Values", "Sample Values"}
	if r.IncludeMemoryUsage {
		header = append(header, "Memory Bytes")
	}
	if r.IncludeStats {
		header = append(header, "Min", "Max", "Mean")
	}
	return header
}
