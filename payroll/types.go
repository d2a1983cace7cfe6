/*
Package payroll provides the weekly pay calculation engine.

PURPOSE:
  This package turns a week of worked intervals into a payment. A rate
  schedule assigns hourly rates to time-of-day bands for each day of the
  week; the engine intersects every worked interval with the bands of its
  day and sums the paid hours times the band rate.

KEY CONCEPTS IN THIS FILE (types.go):
  - Day: One of the seven fixed day tokens (MO..SU)
  - TimeOfDay: Wall-clock time with no date component
  - RateBand: A time-of-day interval with an hourly rate
  - WorkInterval / WorkHistory: What an employee actually worked

DESIGN PRINCIPLES:
  1. Immutability: Schedules are built once and shared read-only
  2. Precision: Rates and amounts use decimal.Decimal
  3. Explicit faults: A missing day configuration is an error, never zero pay

USAGE:
  schedule := payroll.AssembleSchedule("default", periods)
  history, _ := payroll.NewTextParser().Parse("ASTRID=MO10:00-12:00")
  total, err := payroll.ComputePayment(*history, schedule)

SEE ALSO:
  - schedule.go: Period and RateSchedule assembly
  - engine.go: Overlap arithmetic and rounding policy
  - parser.go: Raw input string parsing
*/
package payroll

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY - Fixed enumeration of day tokens
// =============================================================================

type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysInWeek = 7

var dayTokens = [daysInWeek]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// Days returns all day tokens in week order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseDay converts a two-letter token into a Day.
func ParseDay(token string) (Day, error) {
	for i, t := range dayTokens {
		if t == token {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, token)
}

func (d Day) Valid() bool     { return d >= Monday && d <= Sunday }
func (d Day) IsWeekend() bool { return d == Saturday || d == Sunday }

func (d Day) String() string {
	if !d.Valid() {
		return "Day(" + strconv.Itoa(int(d)) + ")"
	}
	return dayTokens[d]
}

// =============================================================================
// TIME OF DAY - Seconds since midnight, no date component
// =============================================================================

type TimeOfDay int

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600

	// Midnight is the start of the day.
	Midnight TimeOfDay = 0

	// EndOfDay is the last representable second of the day. A band ending at
	// 00:00 is stored with this end so it covers the evening instead of
	// collapsing to zero length.
	EndOfDay TimeOfDay = 23*secondsPerHour + 59*secondsPerMinute + 59
)

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?$`)

// NewTimeOfDay builds a TimeOfDay from clock components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid clock time %02d:%02d:%02d", hour, minute, second)
	}
	return TimeOfDay(hour*secondsPerHour + minute*secondsPerMinute + second), nil
}

// MustTimeOfDay is NewTimeOfDay for literals. It panics on invalid input.
func MustTimeOfDay(hour, minute, second int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses a 24-hour "HH:MM" or "HH:MM:SS" clock string. It
// accepts everything String produces.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second := 0
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	t, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t, nil
}

func (t TimeOfDay) Hour() int   { return int(t) / secondsPerHour }
func (t TimeOfDay) Minute() int { return int(t) % secondsPerHour / secondsPerMinute }
func (t TimeOfDay) Second() int { return int(t) % secondsPerMinute }

func (t TimeOfDay) Before(o TimeOfDay) bool { return t < o }
func (t TimeOfDay) After(o TimeOfDay) bool  { return t > o }

// String formats as HH:MM, or HH:MM:SS when seconds are set.
func (t TimeOfDay) String() string {
	if t.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// =============================================================================
// RATE BAND - Hourly rate for a time-of-day range
// =============================================================================

type RateBand struct {
	Start TimeOfDay
	End   TimeOfDay
	Rate  decimal.Decimal
}

// NewRateBand validates and builds a band. An end of midnight is read as
// end of day.
func NewRateBand(start, end TimeOfDay, rate decimal.Decimal) (RateBand, error) {
	if end == Midnight {
		end = EndOfDay
	}
	if rate.IsNegative() {
		return RateBand{}, fmt.Errorf("%w: negative rate %s", ErrInvalidRateBand, rate)
	}
	if !start.Before(end) {
		return RateBand{}, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidRateBand, start, end)
	}
	return RateBand{Start: start, End: end, Rate: rate}, nil
}

func (b RateBand) String() string {
	return fmt.Sprintf("%s-%s@%s", b.Start, b.End, b.Rate)
}

// =============================================================================
// WORK HISTORY - One request's worth of worked intervals
// =============================================================================

type WorkInterval struct {
	Day   Day
	Start TimeOfDay
	End   TimeOfDay
}

func (w WorkInterval) String() string {
	return fmt.Sprintf("%s%s-%s", w.Day, w.Start, w.End)
}

type WorkHistory struct {
	Employee  string
	Intervals []WorkInterval
}
