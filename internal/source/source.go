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

// Package source loads datasets into table.Table instances, either from CSV
// files or from a live database table via a registered dialect handler.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/GoogleCloudPlatform/table-summarizer/internal/config"
	"github.com/GoogleCloudPlatform/table-summarizer/internal/table"
)

// DialectHandler abstracts per-dialect connection handling.
type DialectHandler interface {
	CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error)
	CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error)
	QuoteIdentifier(name string) string
}

var (
	dialectHandlers = make(map[string]DialectHandler)
	mu              sync.RWMutex
)

// RegisterDialectHandler registers a handler for a dialect name. Dialect
// packages call this from init; cmd wires them in with blank imports.
func RegisterDialectHandler(dialect string, handler DialectHandler) {
	mu.Lock()
	defer mu.Unlock()
	dialectHandlers[dialect] = handler
}

// GetDialectHandler looks up the handler for a dialect.
func GetDialectHandler(dialect string) (DialectHandler, error) {
	mu.RLock()
	defer mu.RUnlock()
	handler, ok := dialectHandlers[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported database dialect: %s", dialect)
	}
	return handler, nil
}

// Connect opens and pings a connection pool for the configured dialect.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, DialectHandler, error) {
	handler, err := GetDialectHandler(cfg.Dialect)
	if err != nil {
		return nil, nil, err
	}

	var pool *sql.DB
	if strings.HasPrefix(cfg.Dialect, "cloudsql") {
		pool, err = handler.CreateCloudSQLPool(cfg)
	} else {
		pool, err = handler.CreateStandardPool(cfg)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database pool for dialect %s: %w", cfg.Dialect, err)
	}

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to connect to database (ping failed) for dialect %s: %w", cfg.Dialect, err)
	}
	return pool, handler, nil
}

// ReadTable reads an entire database table into memory. Column kinds are
// derived from the driver's reported database type names; anything
// unrecognized is kept as a string.
func ReadTable(ctx context.Context, db *sql.DB, handler DialectHandler, tableName string) (*table.Table, error) {
	if tableName == "" {
		return nil, fmt.Errorf("table name must not be empty")
	}
	query := fmt.Sprintf("SELECT * FROM %s", handler.QuoteIdentifier(tableName))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying table %s: %w", tableName, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("error reading column types for table %s: %w", tableName, err)
	}
	ncol := len(colTypes)
	kinds := make([]table.Kind, ncol)
	names := make([]string, ncol)
	for i, ct := range colTypes {
		names[i] = ct.Name()
		kinds[i] = kindForDatabaseType(ct.DatabaseTypeName())
	}

	cells := make([][]any, ncol)
	for rows.Next() {
		dests := make([]any, ncol)
		for i, kind := range kinds {
			dests[i] = scanDest(kind)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("error scanning row from table %s: %w", tableName, err)
		}
		for i, dest := range dests {
			cells[i] = append(cells[i], cellValue(dest))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of table %s: %w", tableName, err)
	}

	cols := make([]*table.Column, ncol)
	for i := range cols {
		col, err := table.NewColumn(names[i], kinds[i], cells[i])
		if err != nil {
			return nil, fmt.Errorf("error building column %s: %w", names[i], err)
		}
		cols[i] = col
	}
	return table.New(cols...)
}

func kindForDatabaseType(dbType string) table.Kind {
	switch strings.ToUpper(dbType) {
	case "BOOL", "BOOLEAN", "BIT":
		return table.Bool
	case "INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT",
		"INT2", "INT4", "INT8", "SERIAL", "BIGSERIAL":
		return table.Int
	case "FLOAT", "FLOAT4", "FLOAT8", "REAL", "DOUBLE", "DOUBLE PRECISION",
		"NUMERIC", "DECIMAL", "MONEY":
		return table.Float
	case "DATE", "DATETIME", "DATETIME2", "SMALLDATETIME", "TIMESTAMP",
		"TIMESTAMPTZ", "TIMESTAMP WITH TIME ZONE":
		return table.Time
	default:
		return table.String
	}
}

func scanDest(kind table.Kind) any {
	switch kind {
	case table.Bool:
		return new(sql.NullBool)
	case table.Int:
		return new(sql.NullInt64)
	case table.Float:
		return new(sql.NullFloat64)
	case table.Time:
		return new(sql.NullTime)
	default:
		return new(sql.NullString)
	}
}

func cellValue(dest any) any {
	switch v := dest.(type) {
	case *sql.NullBool:
		if v.Valid {
			return v.Bool
		}
	case *sql.NullInt64:
		if v.Valid {
			return v.Int64
		}
	case *sql.NullFloat64:
		if v.Valid {
			return v.Float64
		}
	case *sql.NullTime:
		if v.Valid {
			return v.Time
		}
	case *sql.NullString:
		if v.Valid {
			return v.String
		}
	}
	return nil
}
