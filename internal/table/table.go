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

// Package table provides a small in-memory columnar table: labeled, typed
// columns with a nil null marker, plus the per-column and per-table queries
// the summarizer needs (null counts, distinct values, duplicate rows,
// memory footprint).
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the element type of a column.
type Kind int

const (
	Bool Kind = iota
	Int
	Float
	String
	Time
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int64"
	case Float:
		return "float64"
	case String:
		return "string"
	case Time:
		return "datetime"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Numeric reports whether columns of this kind carry numeric values.
func (k Kind) Numeric() bool {
	return k == Int || k == Float
}

// Column is a named, typed, ordered sequence of cells. A nil cell is the
// null marker. Non-nil cells hold the Go type matching the column kind:
// bool, int64, float64, string or time.Time.
type Column struct {
	name  string
	kind  Kind
	cells []any
}

// NewColumn validates that every non-nil cell matches the declared kind.
func NewColumn(name string, kind Kind, cells []any) (*Column, error) {
	if name == "" {
		return nil, fmt.Errorf("column name must not be empty")
	}
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		if !kindMatches(kind, cell) {
			return nil, fmt.Errorf("column %q: cell %d has type %T, want %s", name, i, cell, kind)
		}
	}
	return &Column{name: name, kind: kind, cells: cells}, nil
}

func kindMatches(kind Kind, cell any) bool {
	switch cell.(type) {
	case bool:
		return kind == Bool
	case int64:
		return kind == Int
	case float64:
		return kind == Float
	case string:
		return kind == String
	case time.Time:
		return kind == Time
	default:
		return false
	}
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.cells) }

// Value returns the cell at index i; nil means null.
func (c *Column) Value(i int) any { return c.cells[i] }

// NullCount returns the number of null cells.
func (c *Column) NullCount() int {
	nulls := 0
	for _, cell := range c.cells {
		if cell == nil {
			nulls++
		}
	}
	return nulls
}

// Distinct returns the distinct non-null values in first-seen order.
func (c *Column) Distinct() []any {
	seen := make(map[string]struct{}, len(c.cells))
	var out []any
	for _, cell := range c.cells {
		if cell == nil {
			continue
		}
		key := valueKey(cell)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cell)
	}
	return out
}

// DistinctCount returns the number of distinct non-null values.
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.cells))
	for _, cell := range c.cells {
		if cell == nil {
			continue
		}
		seen[valueKey(cell)] = struct{}{}
	}
	return len(seen)
}

// Float64s returns the non-null values of a numeric column as float64s.
// It returns nil for non-numeric columns.
func (c *Column) Float64s() []float64 {
	if !c.kind.Numeric() {
		return nil
	}
	var out []float64
	for _, cell := range c.cells {
		switch v := cell.(type) {
		case int64:
			out = append(out, float64(v))
		case float64:
			out = append(out, v)
		}
	}
	return out
}

// valueKey returns a canonical representation of a non-nil cell used for
// equality checks. Values of different types never collide because cells
// within a column are homogeneous.
func valueKey(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Table is an ordered sequence of equal-length columns with unique names.
type Table struct {
	cols   []*Column
	byName map[string]int
}

// New builds a table from the given columns.
func New(cols ...*Column) (*Table, error) {
	byName := make(map[string]int, len(cols))
	for i, col := range cols {
		if col == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, ok := byName[col.name]; ok {
			return nil, fmt.Errorf("duplicate column name %q", col.name)
		}
		if i > 0 && col.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.name, col.Len(), cols[0].Len())
		}
		byName[col.name] = i
	}
	return &Table{cols: cols, byName: byName}, nil
}

// NumRows returns the row count; a table with no columns has zero rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// DuplicateRowCount returns the number of rows that are field-for-field
// equal to an earlier row. Nulls compare equal to nulls.
func (t *Table) DuplicateRowCount() int {
	nrows := t.NumRows()
	if nrows == 0 {
		return 0
	}
	seen := make(map[string]struct{}, nrows)
	dups := 0
	var b strings.Builder
	for i := 0; i < nrows; i++ {
		b.Reset()
		for _, col := range t.cols {
			// Length-prefix each cell key so no concatenation of distinct
			// rows can produce the same row key; nulls get a tag that no
			// length prefix starts with.
			cell := col.cells[i]
			if cell == nil {
				b.WriteString("n;")
				continue
			}
			k := valueKey(cell)
			b.WriteString(strconv.Itoa(len(k)))
			b.WriteByte(':')
			b.WriteString(k)
		}
		key := b.String()
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
