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

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// NotApplicable marks statistics that do not apply to a column.
const NotApplicable = "N/A"

// FormatReportAsText renders the report as an aligned plain-text table.
func FormatReportAsText(r *Report) string {
	if r == nil || len(r.Rows) == 0 {
		return "No columns summarized.\n"
	}
	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(r.Header(), "\t"))
	for _, row := range r.Rows {
		fmt.Fprintln(w, strings.Join(r.record(row), "\t"))
	}
	w.Flush()
	return buf.String()
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes the report as YAML.
func WriteYAML(r *Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// WriteCSV writes the report as CSV, header included.
func WriteCSV(r *Report, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range r.Rows {
		if err := cw.Write(r.record(row)); err != nil {
			return fmt.Errorf("write csv row for column %s: %w", row.Column, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// record renders one row with exactly the fields named by Header.
func (r *Report) record(row ColumnSummary) []string {
	rec := []string{
		row.Column,
		row.DataType,
		strconv.Itoa(row.NullCount),
		strconv.FormatFloat(row.NullPercent, 'f', 2, 64),
		strconv.Itoa(row.DuplicateRows),
		strconv.Itoa(row.UniqueValues),
		row.SampleValues,
	}
	if r.IncludeMemoryUsage {
		if row.MemoryBytes != nil {
			rec = append(rec, strconv.FormatInt(*row.MemoryBytes, 10))
		} else {
			rec = append(rec, NotApplicable)
		}
	}
	if r.IncludeStats {
		rec = append(rec, statString(row.Min), statString(row.Max), statString(row.Mean))
	}
	return rec
}

func statString(v *float64) string {
	if v == nil {
		return NotApplicable
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
