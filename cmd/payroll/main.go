/*
main.go - Application entry point

PURPOSE:
  The payroll binary. Computes weekly payments interactively, serves the
  HTTP API, and manages stored rate schedules.

COMMANDS:
  serve              Start the HTTP API server
  calc               Interactive payment prompt (or one-shot with --input)
  schedules list     List stored schedules
  schedules show     Print one schedule as JSON
  schedules import   Load a JSON/YAML schedule file into the store

GLOBAL FLAGS:
  --db         SQLite database path (overrides PAYROLL_DB_PATH)
  --schedules  Schedule file used to seed the store (overrides PAYROLL_SCHEDULE_FILE)
  --log-level  debug | info | warn | error (overrides PAYROLL_LOG_LEVEL)

EXAMPLES:
  # Compute one payment with the built-in rates
  payroll calc --input "ASTRID=MO10:00-12:00,TH12:00-14:00,SU20:00-21:00"

  # Serve the API with a file database
  payroll serve --db ./data/payroll.db --port 3000

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
*/
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/logging"
)

var (
	logger zerolog.Logger
	cfg    *config.Config

	flagDB        string
	flagSchedules string
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:           "payroll",
	Short:         "Weekly payroll calculator",
	Long:          "Computes an employee's weekly pay from worked intervals and a rate schedule with per-day time bands.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (empty keeps schedules in memory)")
	rootCmd.PersistentFlags().StringVar(&flagSchedules, "schedules", "", "schedule file (JSON or YAML) used to seed the store")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = flagDB
	}
	if flags.Changed("schedules") {
		cfg.ScheduleFile = flagSchedules
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	logger = logging.Setup(cfg.Environment, cfg.LogLevel)
	return nil
}
