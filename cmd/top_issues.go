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

	"github.com/spf13/cobra"

	"github.com/GoogleCloudPlatform/table-summarizer/internal/summary"
)

var topN int

var topIssuesCmd = &cobra.Command{
	Use:     "top-issues [file.csv]",
	Short:   "Show the columns with the most missing data",
	Long:    `Summarizes the dataset with memory usage included and keeps only the top-N columns by null percentage.`,
	Example: `./table_summarizer top-issues ./orders.csv --top-n 5`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runTopIssues,
}

func runTopIssues(cmd *cobra.Command, args []string) error {
	tbl, err := loadDataset(cmd, args)
	if err != nil {
		return err
	}
	logger.Infow("dataset loaded", "rows", tbl.NumRows(), "columns", tbl.NumCols())

	n := appConfig.TopN
	if cmd.Flags().Changed("top-n") {
		n = topN
	}

	report, err := summary.TopIssues(tbl, n)
	if err != nil {
		return fmt.Errorf("failed to rank column issues: %w", err)
	}

	logger.Infow("top issues computed", "report_rows", len(report.Rows))
	return writeReport(report)
}

func init() {
	topIssuesCmd.Flags().IntVar(&topN, "top-n", 10, "Number of columns to keep, ranked by null percentage")
}
