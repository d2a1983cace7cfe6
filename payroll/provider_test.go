package payroll_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/payroll/store"
)

func TestCalculator_Calculate(t *testing.T) {
	calc := payroll.NewCalculator(store.NewMemory(defaultSchedule()), nil)

	payment, err := calc.Calculate(context.Background(), "default", "RENE=MO10:00-12:00,TU10:00-12:00,TH01:00-03:00,SA14:00-18:00,SU20:00-21:00")
	require.NoError(t, err)

	assert.Equal(t, "RENE", payment.Employee)
	assert.Equal(t, "default", payment.Schedule)
	assertDecimal(t, "215", payment.Total)
}

func TestCalculator_ParseErrorComesFirst(t *testing.T) {
	// GIVEN: Malformed input and an unknown schedule
	// THEN: The parse error is reported; the schedule is never resolved

	calc := payroll.NewCalculator(store.NewMemory(), nil)

	_, err := calc.Calculate(context.Background(), "missing", "WRONGFORMAT")
	assert.ErrorIs(t, err, payroll.ErrInvalidInputFormat)
	assert.False(t, payroll.IsNotFound(err))
}

func TestCalculator_UnknownSchedule(t *testing.T) {
	calc := payroll.NewCalculator(store.NewMemory(defaultSchedule()), nil)

	_, err := calc.Calculate(context.Background(), "night-shift", "ASTRID=MO10:00-12:00")
	require.Error(t, err)
	assert.True(t, payroll.IsNotFound(err))

	var nf *payroll.ScheduleNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "night-shift", nf.Name)
}

func TestCalculator_LookupFaultPropagates(t *testing.T) {
	weekdaysOnly := payroll.AssembleSchedule("weekdays-only", []payroll.Period{
		{Name: "weekdays", Days: weekdays(), Bands: []payroll.RateBand{band(clock(9, 0), clock(17, 0), 15)}},
	})
	calc := payroll.NewCalculator(store.NewMemory(weekdaysOnly), nil)

	payment, err := calc.Calculate(context.Background(), "weekdays-only", "ASTRID=MO10:00-12:00,SA10:00-12:00")
	assert.Nil(t, payment)
	assert.ErrorIs(t, err, payroll.ErrScheduleLookup)
	assert.True(t, payroll.IsConfigError(err))
}
