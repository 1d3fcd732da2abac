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
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/table-summarizer/internal/table"
)

var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// FromCSVFile loads a CSV file into a table. The first record is the header.
func FromCSVFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return FromCSV(f)
}

// FromCSV reads CSV data and infers a kind per column: int64, then float64,
// then bool, then datetime, falling back to string. Empty cells are nulls.
func FromCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv input is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	names := make([]string, ncol)
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}

	raw := make([][]string, ncol)
	rowNum := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rowNum, err)
		}
		rowNum++
		// The reader pins FieldsPerRecord to the header width, so rec always
		// has exactly ncol fields here.
		for i, v := range rec {
			raw[i] = append(raw[i], strings.TrimSpace(v))
		}
	}

	cols := make([]*table.Column, ncol)
	for i := range cols {
		kind := inferKind(raw[i])
		cells, err := convertCells(raw[i], kind)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", names[i], err)
		}
		col, err := table.NewColumn(names[i], kind, cells)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return table.New(cols...)
}

// inferKind picks the narrowest kind every non-empty value parses as.
// A column with no non-empty values stays a string column.
func inferKind(values []string) table.Kind {
	allInt, allFloat, allBool, allTime := true, true, true, true
	seen := false
	for _, v := range values {
		if v == "" {
			continue
		}
		seen = true
		if allInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				allFloat = false
			}
		}
		if allBool {
			lower := strings.ToLower(v)
			if lower != "true" && lower != "false" {
				allBool = false
			}
		}
		if allTime {
			if _, ok := parseCSVTime(v); !ok {
				allTime = false
			}
		}
		if !allInt && !allFloat && !allBool && !allTime {
			return table.String
		}
	}
	switch {
	case !seen:
		return table.String
	case allInt:
		return table.Int
	case allFloat:
		return table.Float
	case allBool:
		return table.Bool
	case allTime:
		return table.Time
	default:
		return table.String
	}
}

func convertCells(values []string, kind table.Kind) ([]any, error) {
	cells := make([]any, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		switch kind {
		case table.Int:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			cells[i] = n
		case table.Float:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			cells[i] = f
		case table.Bool:
			cells[i] = strings.EqualFold(v, "true")
		case table.Time:
			t, ok := parseCSVTime(v)
			if !ok {
				return nil, fmt.Errorf("row %d: cannot parse %q as time", i+1, v)
			}
			cells[i] = t
		default:
			cells[i] = v
		}
	}
	return cells, nil
}

func parseCSVTime(s string) (time.Time, bool) {
	for _, layout := range csvTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
