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
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/table-summarizer/internal/config"
	"github.com/GoogleCloudPlatform/table-summarizer/internal/source"
	_ "github.com/GoogleCloudPlatform/table-summarizer/internal/source/mysql"
	_ "github.com/GoogleCloudPlatform/table-summarizer/internal/source/postgres"
	_ "github.com/GoogleCloudPlatform/table-summarizer/internal/source/sqlserver"
	"github.com/GoogleCloudPlatform/table-summarizer/internal/summary"
	"github.com/GoogleCloudPlatform/table-summarizer/internal/table"
	"github.com/GoogleCloudPlatform/table-summarizer/internal/utils"
)

var (
	cfgFile    string
	format     string
	outputFile string

	// Database connection flags
	dialect                        string
	host                           string
	port                           int
	username                       string
	password                       string
	dbName                         string
	sslMode                        string
	dbTable                        string
	cloudSQLInstanceConnectionName string
	cloudSQLUsePrivateIP           bool

	appConfig *config.Config
	logger    *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "table_summarizer",
	Short: "A tool to summarize the quality of tabular datasets",
	Long: `table_summarizer is a CLI tool that reports per-column quality
metrics (types, nulls, duplicates, uniqueness, memory and basic statistics)
for CSV files and database tables.`,
	PersistentPreRunE: initFlagsAndConfig,
}

// initFlagsAndConfig loads configuration and applies flag overrides.
func initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	zl, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = zl.Sugar()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Database.Dialect = dialect
	}
	if flags.Changed("host") {
		cfg.Database.Host = host
	}
	if flags.Changed("port") {
		cfg.Database.Port = port
	}
	if flags.Changed("username") {
		cfg.Database.User = username
	}
	if flags.Changed("password") {
		cfg.Database.Password = password
	}
	if flags.Changed("database") {
		cfg.Database.DBName = dbName
	}
	if flags.Changed("sslmode") {
		cfg.Database.SSLMode = sslMode
	}
	if flags.Changed("table") {
		cfg.Database.Table = dbTable
	}
	if flags.Changed("cloudsql-instance-connection-name") {
		cfg.Database.CloudSQLInstanceConnectionName = cloudSQLInstanceConnectionName
	}
	if flags.Changed("cloudsql-use-private-ip") {
		cfg.Database.UsePrivateIP = cloudSQLUsePrivateIP
	}
	if flags.Changed("format") {
		cfg.Format = format
	}

	appConfig = cfg
	return nil
}

func validateDialect(dialect string) error {
	supportedDialects := []string{"postgres", "cloudsqlpostgres", "mysql", "cloudsqlmysql", "sqlserver", "cloudsqlsqlserver"}
	for _, supported := range supportedDialects {
		if dialect == supported {
			return nil
		}
	}
	return fmt.Errorf("unsupported dialect: %s (only %s are supported)", dialect, strings.Join(supportedDialects, ", "))
}

// loadDataset reads the input table: a CSV file when a positional argument
// is given, otherwise a database table named by --table.
func loadDataset(cmd *cobra.Command, args []string) (*table.Table, error) {
	if len(args) == 1 {
		logger.Infow("loading csv file", "path", args[0])
		return source.FromCSVFile(args[0])
	}

	if appConfig.Database.Table == "" {
		return nil, fmt.Errorf("provide a CSV file argument or a database table via --table")
	}
	if err := validateDialect(appConfig.Database.Dialect); err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	logger.Infow("connecting to database",
		"dialect", appConfig.Database.Dialect,
		"database", appConfig.Database.DBName,
		"table", appConfig.Database.Table,
	)
	db, handler, err := source.Connect(ctx, appConfig.Database)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return source.ReadTable(ctx, db, handler, appConfig.Database.Table)
}

// writeReport renders the report in the configured format to --out or stdout.
func writeReport(report *summary.Report) error {
	w, err := utils.OpenOutput(outputFile)
	if err != nil {
		return err
	}
	defer w.Close()

	switch strings.ToLower(appConfig.Format) {
	case "text":
		_, err = fmt.Fprint(w, summary.FormatReportAsText(report))
	case "json":
		err = summary.WriteJSON(report, w)
	case "yaml":
		err = summary.WriteYAML(report, w)
	case "csv":
		err = summary.WriteCSV(report, w)
	default:
		return fmt.Errorf("unsupported output format: %s (use text, json, yaml or csv)", appConfig.Format)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer func() {
		if logger != nil {
			logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to an optional config file")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "Output format (text, json, yaml, csv)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "out", "o", "", "File path to write the report to (defaults to stdout)")

	// Database connection flags
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "postgres", fmt.Sprintf("Database dialect (%s)", strings.Join([]string{"postgres", "mysql", "sqlserver", "cloudsqlpostgres", "cloudsqlmysql", "cloudsqlsqlserver"}, ", ")))
	rootCmd.PersistentFlags().StringVar(&host, "host", "localhost", "Database host")
	rootCmd.PersistentFlags().IntVar(&port, "port", 5432, "Database port")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Database username")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Database password")
	rootCmd.PersistentFlags().StringVar(&dbName, "database", "", "Database name")
	rootCmd.PersistentFlags().StringVar(&sslMode, "sslmode", "disable", "SSL mode for PostgreSQL connections")
	rootCmd.PersistentFlags().StringVar(&dbTable, "table", "", "Database table to summarize (when no CSV file is given)")
	rootCmd.PersistentFlags().StringVar(&cloudSQLInstanceConnectionName, "cloudsql-instance-connection-name", "", "Cloud SQL instance connection name (for Cloud SQL dialects)")
	rootCmd.PersistentFlags().BoolVar(&cloudSQLUsePrivateIP, "cloudsql-use-private-ip", false, "Use private IP for Cloud SQL connection (Cloud SQL)")

	// Add subcommands
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(topIssuesCmd)
}
