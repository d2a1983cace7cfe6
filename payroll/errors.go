/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers match kinds with errors.Is and read details with errors.As.

ERROR CATEGORIES:
  1. Input errors - The raw work history string is malformed
  2. Configuration errors - Schedule missing, day unconfigured, bad band
  3. There are no engine-internal errors: arithmetic is total over valid input

PROPAGATION:
  Every fault reaches the immediate caller as a named condition. Nothing is
  swallowed or converted to a zero payment.

SEE ALSO:
  - parser.go: Raises input errors
  - engine.go: Raises ScheduleLookupError
  - provider.go: Raises ScheduleNotFoundError
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInputFormat is returned when the employee name or the
	// interval list is missing from the input.
	ErrInvalidInputFormat = errors.New("invalid input format")

	// ErrInvalidIntervalFormat is returned when an interval token does not
	// match DDHH:MM-HH:MM.
	ErrInvalidIntervalFormat = errors.New("invalid day interval format")

	// ErrInvalidDay is returned for a two-letter token that is not a day.
	ErrInvalidDay = errors.New("invalid day abbreviation")

	// ErrInvalidTimeInterval is returned when an interval does not end after
	// it starts.
	ErrInvalidTimeInterval = errors.New("end time must be after start time")

	// ErrScheduleNotFound is returned when no schedule has the requested name.
	ErrScheduleNotFound = errors.New("payment schedule not found")

	// ErrScheduleLookup is returned when a schedule has no bands configured
	// for a day that appears in the work history.
	ErrScheduleLookup = errors.New("no rate configuration for day")

	// ErrInvalidRateBand is returned when a band has a negative rate or does
	// not start before it ends.
	ErrInvalidRateBand = errors.New("invalid rate band")

	// ErrInvalidSchedule is returned when a schedule definition is malformed.
	ErrInvalidSchedule = errors.New("invalid payment schedule")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InputError describes a parse failure of the raw work history string.
// Kind is one of the input sentinels above.
type InputError struct {
	Kind  error
	Token string
}

func (e *InputError) Error() string {
	if e.Token == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Token)
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

// ScheduleNotFoundError names the schedule that could not be resolved.
type ScheduleNotFoundError struct {
	Name string
}

func (e *ScheduleNotFoundError) Error() string {
	if e.Name == "" {
		return ErrScheduleNotFound.Error()
	}
	return fmt.Sprintf("payment schedule %q not found", e.Name)
}

func (e *ScheduleNotFoundError) Unwrap() error {
	return ErrScheduleNotFound
}

// ScheduleLookupError means the day token is valid but the schedule has no
// rate information for it.
type ScheduleLookupError struct {
	Schedule string
	Day      Day
}

func (e *ScheduleLookupError) Error() string {
	return fmt.Sprintf("failed to get payment configuration for %s in schedule %q", e.Day, e.Schedule)
}

func (e *ScheduleLookupError) Unwrap() error {
	return ErrScheduleLookup
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid user input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInputFormat) ||
		errors.Is(err, ErrInvalidIntervalFormat) ||
		errors.Is(err, ErrInvalidDay) ||
		errors.Is(err, ErrInvalidTimeInterval)
}

// IsNotFound returns true if the error indicates a missing schedule.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScheduleNotFound)
}

// IsConfigError returns true for schedule data faults.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrScheduleLookup) ||
		errors.Is(err, ErrInvalidRateBand) ||
		errors.Is(err, ErrInvalidSchedule)
}
