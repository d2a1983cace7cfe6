package factory

import "github.com/warp/payroll-engine/payroll"

// DefaultScheduleName is the schedule used when a caller names none.
const DefaultScheduleName = "default"

// DefaultConfigJSON is the built-in configuration: weekday and weekend rates
// split into night, day and evening bands.
const DefaultConfigJSON = `{
  "payment_schedules": {
    "default": {
      "periods": [
        {
          "name": "weekdays",
          "days": ["MO", "TU", "WE", "TH", "FR"],
          "time_slots": [
            {"start": "00:01", "end": "09:00", "rate": 25},
            {"start": "09:01", "end": "18:00", "rate": 15},
            {"start": "18:01", "end": "00:00", "rate": 20}
          ]
        },
        {
          "name": "weekend",
          "days": ["SA", "SU"],
          "time_slots": [
            {"start": "00:01", "end": "09:00", "rate": 30},
            {"start": "09:01", "end": "18:00", "rate": 20},
            {"start": "18:01", "end": "00:00", "rate": 25}
          ]
        }
      ]
    }
  }
}`

// DefaultSchedules parses DefaultConfigJSON.
func (f *ScheduleFactory) DefaultSchedules() ([]*payroll.RateSchedule, error) {
	return f.ParseConfig([]byte(DefaultConfigJSON), FormatJSON)
}
