/*
provider.go - Schedule resolution

PURPOSE:
  Defines how the engine's callers obtain a RateSchedule by name, and the
  Calculator that glues parsing, resolution and computation together.

KEY INTERFACES:
  ScheduleProvider: Resolve a name to a schedule (read path)
  ScheduleStore:    Provider plus list/save/delete (admin path)

IMPLEMENTATIONS:
  - payroll/store/memory.go: In-memory, for tests and database-less runs
  - store/sqlite/sqlite.go: SQLite-backed with a parsed schedule cache

SEE ALSO:
  - factory/schedule.go: Builds schedules from configuration files
*/
package payroll

import (
	"context"
	"fmt"
)

// =============================================================================
// PROVIDER INTERFACES
// =============================================================================

// ScheduleProvider resolves a schedule name. Unknown names return a
// *ScheduleNotFoundError.
type ScheduleProvider interface {
	GetSchedule(ctx context.Context, name string) (*RateSchedule, error)
}

// ScheduleStore extends ScheduleProvider with management operations.
type ScheduleStore interface {
	ScheduleProvider

	// ListSchedules returns all schedules ordered by name.
	ListSchedules(ctx context.Context) ([]*RateSchedule, error)

	// SaveSchedule creates or replaces the schedule with the same name.
	SaveSchedule(ctx context.Context, schedule *RateSchedule) error

	// DeleteSchedule removes a schedule. Unknown names return a
	// *ScheduleNotFoundError.
	DeleteSchedule(ctx context.Context, name string) error
}

// =============================================================================
// CALCULATOR - Parse, resolve, compute
// =============================================================================

// Calculator computes payments from raw input strings.
type Calculator struct {
	Provider ScheduleProvider
	Parser   Parser
}

func NewCalculator(provider ScheduleProvider, parser Parser) *Calculator {
	if parser == nil {
		parser = NewTextParser()
	}
	return &Calculator{Provider: provider, Parser: parser}
}

// Calculate parses input and computes its payment under the named schedule.
func (c *Calculator) Calculate(ctx context.Context, scheduleName, input string) (*Payment, error) {
	history, err := c.Parser.Parse(input)
	if err != nil {
		return nil, err
	}

	schedule, err := c.Provider.GetSchedule(ctx, scheduleName)
	if err != nil {
		return nil, fmt.Errorf("resolve schedule: %w", err)
	}

	return Compute(*history, schedule)
}
