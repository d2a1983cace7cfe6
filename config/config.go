/*
Package config reads process configuration.

PURPOSE:
  Collects every setting the payroll binaries need from environment
  variables. A .env file in the working directory is loaded first when
  present; variables already set in the environment win over it.

VARIABLES:
  PAYROLL_ENV               development | production (default: development)
  PAYROLL_LOG_LEVEL         debug | info | warn | error (default: info)
  PAYROLL_HTTP_PORT         HTTP server port (default: 8080)
  PAYROLL_DB_PATH           SQLite path; empty keeps schedules in memory
  PAYROLL_SCHEDULE_FILE     JSON/YAML schedule file; empty uses built-in rates
  PAYROLL_DEFAULT_SCHEDULE  Schedule used when none is named (default: default)
  PAYROLL_CORS_ORIGINS      Comma-separated allowed origins

SEE ALSO:
  - cmd/payroll/main.go: Flags override these values
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment     string
	LogLevel        string
	HTTPPort        int
	DBPath          string
	ScheduleFile    string
	DefaultSchedule string
	CORSOrigins     []string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file path.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	port, err := getEnvInt("PAYROLL_HTTP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:     getEnv("PAYROLL_ENV", "development"),
		LogLevel:        getEnv("PAYROLL_LOG_LEVEL", "info"),
		HTTPPort:        port,
		DBPath:          getEnv("PAYROLL_DB_PATH", ""),
		ScheduleFile:    getEnv("PAYROLL_SCHEDULE_FILE", ""),
		DefaultSchedule: getEnv("PAYROLL_DEFAULT_SCHEDULE", "default"),
		CORSOrigins:     getEnvList("PAYROLL_CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("PAYROLL_HTTP_PORT out of range: %d", cfg.HTTPPort)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvList(key string, def []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
