package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/store/sqlite"
)

var flagReplaceAll bool

var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "Manage payment schedules",
}

var schedulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payment schedules",
	Args:  cobra.NoArgs,
	RunE:  runSchedulesList,
}

var schedulesShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a payment schedule as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedulesShow,
}

var schedulesImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import schedules from a JSON or YAML file into the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedulesImport,
}

func init() {
	schedulesImportCmd.Flags().BoolVar(&flagReplaceAll, "replace-all", false, "delete every stored schedule before importing")
	schedulesCmd.AddCommand(schedulesListCmd, schedulesShowCmd, schedulesImportCmd)
	rootCmd.AddCommand(schedulesCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runSchedulesList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	schedules, err := store.ListSchedules(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPERIODS\tDAYS")
	for _, s := range schedules {
		days := make([]string, 0, 7)
		for _, d := range s.ConfiguredDays() {
			days = append(days, d.String())
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name(), len(s.Periods()), strings.Join(days, ","))
	}
	return tw.Flush()
}

func runSchedulesShow(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	schedule, err := store.GetSchedule(ctx, args[0])
	if err != nil {
		return err
	}
	out, err := factory.NewScheduleFactory().FormatSchedule(schedule)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// runSchedulesImport writes every schedule in the file to the database,
// replacing stored schedules with the same name.
func runSchedulesImport(cmd *cobra.Command, args []string) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("import needs a database: set --db or PAYROLL_DB_PATH")
	}
	ctx := commandContext(cmd)

	schedules, err := factory.NewScheduleFactory().LoadFile(args[0])
	if err != nil {
		return err
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if flagReplaceAll {
		if err := db.Reset(ctx); err != nil {
			return err
		}
	}
	for _, s := range schedules {
		if err := db.SaveSchedule(ctx, s); err != nil {
			return err
		}
		logger.Info().Str("schedule", s.Name()).Msg("schedule imported")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d schedule(s) into %s\n", len(schedules), cfg.DBPath)
	return nil
}
