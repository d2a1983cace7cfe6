package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func clock(hour, minute int) payroll.TimeOfDay {
	return payroll.MustTimeOfDay(hour, minute, 0)
}

func band(start, end payroll.TimeOfDay, rate int64) payroll.RateBand {
	b, err := payroll.NewRateBand(start, end, decimal.NewFromInt(rate))
	if err != nil {
		panic(err)
	}
	return b
}

func interval(day payroll.Day, start, end payroll.TimeOfDay) payroll.WorkInterval {
	return payroll.WorkInterval{Day: day, Start: start, End: end}
}

func weekdays() []payroll.Day {
	return []payroll.Day{payroll.Monday, payroll.Tuesday, payroll.Wednesday, payroll.Thursday, payroll.Friday}
}

func weekend() []payroll.Day {
	return []payroll.Day{payroll.Saturday, payroll.Sunday}
}

// defaultSchedule mirrors the built-in "default" configuration.
func defaultSchedule() *payroll.RateSchedule {
	return payroll.AssembleSchedule("default", []payroll.Period{
		{
			Name: "weekdays",
			Days: weekdays(),
			Bands: []payroll.RateBand{
				band(clock(0, 1), clock(9, 0), 25),
				band(clock(9, 1), clock(18, 0), 15),
				band(clock(18, 1), payroll.Midnight, 20),
			},
		},
		{
			Name: "weekend",
			Days: weekend(),
			Bands: []payroll.RateBand{
				band(clock(0, 1), clock(9, 0), 30),
				band(clock(9, 1), clock(18, 0), 20),
				band(clock(18, 1), payroll.Midnight, 25),
			},
		},
	})
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "expected %s, got %s", want, got)
}
