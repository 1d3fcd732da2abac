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
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Database   DatabaseConfig
	SampleSize int
	TopN       int
	Format     string
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Dialect                        string
	Host                           string
	Port                           int
	User                           string
	Password                       string
	DBName                         string
	SSLMode                        string
	Table                          string
	CloudSQLInstanceConnectionName string
	UsePrivateIP                   bool
}

// Load builds the configuration from defaults, an optional config file, and
// TABLE_SUMMARIZER_* environment variables. Command-line flags override the
// result in cmd.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLE_SUMMARIZER")
	v.AutomaticEnv()

	v.SetDefault("sample_size", 5)
	v.SetDefault("top_n", 10)
	v.SetDefault("format", "text")
	v.SetDefault("dialect", "postgres")
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 5432)
	v.SetDefault("sslmode", "disable")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	return &Config{
		Database: DatabaseConfig{
			Dialect:                        v.GetString("dialect"),
			Host:                           v.GetString("host"),
			Port:                           v.GetInt("port"),
			User:                           v.GetString("username"),
			Password:                       v.GetString("password"),
			DBName:                         v.GetString("database"),
			SSLMode:                        v.GetString("sslmode"),
			Table:                          v.GetString("table"),
			CloudSQLInstanceConnectionName: v.GetString("cloudsql_instance_connection_name"),
			UsePrivateIP:                   v.GetBool("cloudsql_use_private_ip"),
		},
		SampleSize: v.GetInt("sample_size"),
		TopN:       v.GetInt("top_n"),
		Format:     v.GetString("format"),
	}, nil
}
