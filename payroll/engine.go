/*
engine.go - Payment computation

PURPOSE:
  Computes the pay for a work history against a rate schedule.

ALGORITHM:
  For every worked interval:
    1. Look up the bands of the interval's day (absent day = error)
    2. For every band, overlap = max(0, min(ends) - max(starts)) in hours
    3. Round that overlap to a whole hour, half up
    4. Add rounded hours x band rate to the total

ROUNDING POLICY:
  Rounding happens per (interval, band) slice, before the rate is applied.
  An interval spread over three bands rounds three times. A 35 minute
  evening slice therefore pays a full hour at the evening rate, while a
  29 minute slice pays nothing. The final total is never rounded here;
  display rounding belongs to the caller.

EXAMPLE:
  Weekday bands 00:01-09:00@25, 09:01-18:00@15, 18:01-23:59:59@20
  MO08:00-19:35 pays 1h@25 + 9h@15 (8h59m) + 2h@20 (1h34m) = 200

SEE ALSO:
  - schedule.go: Where the bands come from
  - errors.go: ScheduleLookupError
*/
package payroll

import (
	"github.com/shopspring/decimal"
)

var hourSeconds = decimal.NewFromInt(secondsPerHour)

// =============================================================================
// PAYMENT RESULT
// =============================================================================

// PaymentLine is the contribution of one (interval, band) slice.
type PaymentLine struct {
	Interval     WorkInterval
	Band         RateBand
	OverlapHours decimal.Decimal // exact overlap, fractional
	PaidHours    decimal.Decimal // OverlapHours rounded to a whole hour
	Amount       decimal.Decimal // PaidHours x Band.Rate
}

// Payment is the result of a calculation. Lines only holds slices that paid
// at least one hour.
type Payment struct {
	Employee string
	Schedule string
	Total    decimal.Decimal
	Lines    []PaymentLine
}

// =============================================================================
// ENGINE
// =============================================================================

// ComputePayment returns the total pay for history under schedule.
func ComputePayment(history WorkHistory, schedule *RateSchedule) (decimal.Decimal, error) {
	p, err := Compute(history, schedule)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Total, nil
}

// Compute is ComputePayment with the per-slice breakdown. A nil schedule
// returns a *ScheduleNotFoundError.
func Compute(history WorkHistory, schedule *RateSchedule) (*Payment, error) {
	if schedule == nil {
		return nil, &ScheduleNotFoundError{}
	}
	payment := &Payment{
		Employee: history.Employee,
		Schedule: schedule.Name(),
		Total:    decimal.Zero,
	}

	for _, iv := range history.Intervals {
		bands, ok := schedule.bandsFor(iv.Day)
		if !ok {
			return nil, &ScheduleLookupError{Schedule: schedule.Name(), Day: iv.Day}
		}

		for _, band := range bands {
			overlap := OverlapHours(iv, band)
			paid := PaidHours(overlap)
			if paid.IsZero() {
				continue
			}
			amount := paid.Mul(band.Rate)
			payment.Total = payment.Total.Add(amount)
			payment.Lines = append(payment.Lines, PaymentLine{
				Interval:     iv,
				Band:         band,
				OverlapHours: overlap,
				PaidHours:    paid,
				Amount:       amount,
			})
		}
	}
	return payment, nil
}

// OverlapHours returns the hours common to a worked interval and a band.
// Both are read as same-day clock times. The result is never negative.
func OverlapHours(iv WorkInterval, band RateBand) decimal.Decimal {
	start := max(iv.Start, band.Start)
	end := min(iv.End, band.End)
	if end <= start {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(end - start)).Div(hourSeconds)
}

// PaidHours rounds an overlap to the nearest whole hour. Exactly half an
// hour rounds up.
func PaidHours(overlap decimal.Decimal) decimal.Decimal {
	if !overlap.IsPositive() {
		return decimal.Zero
	}
	return overlap.Round(0)
}
