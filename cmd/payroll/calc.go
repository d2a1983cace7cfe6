package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/warp/payroll-engine/payroll"
)

var (
	flagSchedule string
	flagInput    string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate employee payments",
	Long: `Calculate the weekly payment for employees.

Without --input, prompts for work histories until you answer "n".
Work histories look like NAME=MO10:00-12:00,TH12:00-14:00,SU20:00-21:00.`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&flagSchedule, "schedule", "", "payment schedule name (overrides PAYROLL_DEFAULT_SCHEDULE)")
	calcCmd.Flags().StringVar(&flagInput, "input", "", "work history to compute once, without prompting")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	scheduleName := cfg.DefaultSchedule
	if flagSchedule != "" {
		scheduleName = flagSchedule
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Resolve up front so a bad schedule name fails before any prompting.
	if _, err := store.GetSchedule(ctx, scheduleName); err != nil {
		return err
	}

	calc := payroll.NewCalculator(store, payroll.NewTextParser())

	if flagInput != "" {
		payment, err := calc.Calculate(ctx, scheduleName, flagInput)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), paymentMessage(payment))
		return nil
	}

	p := &prompt{
		calc:     calc,
		schedule: scheduleName,
		in:       bufio.NewScanner(cmd.InOrStdin()),
		out:      cmd.OutOrStdout(),
		log:      logger,
	}
	return p.run(ctx)
}

// =============================================================================
// PROMPT LOOP
// =============================================================================

const (
	bannerStyle = "\033[1;33m"
	resetStyle  = "\033[0m"
)

type prompt struct {
	calc     *payroll.Calculator
	schedule string
	in       *bufio.Scanner
	out      io.Writer
	log      zerolog.Logger
}

// run prompts until the user declines another calculation or input ends.
// A failed calculation is reported and the user re-enters the history.
func (p *prompt) run(ctx context.Context) error {
	fmt.Fprintln(p.out, bannerStyle+"Welcome to the Employee Payment Software"+resetStyle)
	defer fmt.Fprintln(p.out, bannerStyle+"Thank you for using the Employee Payment Software"+resetStyle)

	for {
		fmt.Fprint(p.out, "Please enter the employee's work history: ")
		line, ok := p.readLine()
		if !ok {
			fmt.Fprintln(p.out)
			return p.in.Err()
		}

		payment, err := p.calc.Calculate(ctx, p.schedule, line)
		if err != nil {
			p.log.Debug().Err(err).Str("input", line).Msg("calculation failed")
			fmt.Fprintf(p.out, "Could not calculate the payment: %v\n", err)
			continue
		}
		fmt.Fprintln(p.out, paymentMessage(payment))

		again, ok := p.askAgain()
		if !ok {
			fmt.Fprintln(p.out)
			return p.in.Err()
		}
		if !again {
			return nil
		}
	}
}

func (p *prompt) askAgain() (again bool, ok bool) {
	for {
		fmt.Fprint(p.out, "Do you want to calculate another payment? [y/n]: ")
		answer, ok := p.readLine()
		if !ok {
			return false, false
		}
		switch strings.ToLower(answer) {
		case "y":
			return true, true
		case "n":
			return false, true
		}
		fmt.Fprintln(p.out, "Please enter a valid option [y/n]")
	}
}

func (p *prompt) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// paymentMessage rounds the total to whole units for display only.
func paymentMessage(payment *payroll.Payment) string {
	return fmt.Sprintf("The payment for %s is: %s USD", payment.Employee, payment.Total.Round(0).String())
}
