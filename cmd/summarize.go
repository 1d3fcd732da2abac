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
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/table-summarizer/internal/summary"
)

var (
	columnsFlag        string
	sampleSize         int
	includeMemoryUsage bool
	includeStats       bool
)

var summarizeCmd = &cobra.Command{
	Use:     "summarize [file.csv]",
	Short:   "Summarize the columns of a dataset",
	Long:    `Computes per-column quality metrics for a CSV file or a database table and prints them as a single summary table sorted by null percentage.`,
	Example: `./table_summarizer summarize ./orders.csv --include-stats
./table_summarizer summarize --dialect postgres --username user --password pass --database mydb --table orders --columns id,created_at`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	tbl, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}
	logger.Infow("dataset loaded", "rows", tbl.NumRows(), "columns", tbl.NumCols())

	params := summary.DefaultParams()
	params.SampleSize = appConfig.SampleSize
	if cmd.Flags().Changed("sample-size") {
		params.SampleSize = sampleSize
	}
	params.IncludeMemoryUsage = includeMemoryUsage
	params.IncludeStats = includeStats
	if columnsFlag != "" {
		for _, name := range strings.Split(columnsFlag, ",") {
			params.Columns = append(params.Columns, strings.TrimSpace(name))
		}
	}

	report, err := summary.Summarize(tbl, params)
	if err != nil {
		return fmt.Errorf("failed to summarize dataset: %w", err)
	}

	logger.Infow("summary complete", "report_rows", len(report.Rows))
	return writeReport(report)
}

func init() {
	summarizeCmd.Flags().StringVar(&columnsFlag, "columns", "", "Comma-separated list of columns to summarize (defaults to all)")
	summarizeCmd.Flags().IntVar(&sampleSize, "sample-size", 5, "Maximum number of distinct sample values per column")
	summarizeCmd.Flags().BoolVar(&includeMemoryUsage, "include-memory-usage", false, "Include per-column memory usage in bytes")
	summarizeCmd.Flags().BoolVar(&includeStats, "include-stats", false, "Include Min/Max/Mean for numeric columns")
}
