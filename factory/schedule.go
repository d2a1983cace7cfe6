/*
Package factory provides configuration to Go schedule conversion.

PURPOSE:
  Converts schedule definitions from JSON or YAML into payroll.RateSchedule
  objects. Rates change more often than code, so payroll can adjust them in
  a config file (or through the API) and the factory builds the schedules.

CONFIG SCHEMA:
  {
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
          }
        ]
      }
    }
  }

  YAML files use the same keys. Clocks are "HH:MM", or "HH:MM:SS" for
  bands that do not start on a whole minute. An end of "00:00" means end
  of day (23:59:59), not the start of it.

VALIDATION:
  1. Structure: go-playground/validator tags (required fields, rate >= 0)
  2. Semantics: day tokens, HH:MM clocks and band ordering, via payroll
  All failures wrap payroll.ErrInvalidSchedule.

USAGE:
  f := factory.NewScheduleFactory()
  schedules, err := f.LoadFile("schedules.yaml")
  schedule, err := f.ParseSchedule("night-shift", body)

SEE ALSO:
  - payroll/schedule.go: AssembleSchedule
  - defaults.go: Built-in default schedule
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// CONFIG SCHEMA TYPES
// =============================================================================

// ConfigJSON is a file holding any number of named schedules.
type ConfigJSON struct {
	PaymentSchedules map[string]ScheduleJSON `json:"payment_schedules" yaml:"payment_schedules" validate:"required,min=1,dive"`
}

// ScheduleJSON is one schedule. Name is optional inside a config file, where
// the map key names the schedule.
type ScheduleJSON struct {
	Name    string       `json:"name,omitempty" yaml:"name,omitempty"`
	Periods []PeriodJSON `json:"periods" yaml:"periods" validate:"required,min=1,dive"`
}

// PeriodJSON maps days to a shared list of time slots. An empty slot list
// configures the days with no paid bands.
type PeriodJSON struct {
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Days      []string       `json:"days" yaml:"days" validate:"required,min=1,dive,len=2"`
	TimeSlots []TimeSlotJSON `json:"time_slots" yaml:"time_slots" validate:"dive"`
}

// TimeSlotJSON is one rate band with HH:MM clock strings.
type TimeSlotJSON struct {
	Start string  `json:"start" yaml:"start" validate:"required"`
	End   string  `json:"end" yaml:"end" validate:"required"`
	Rate  float64 `json:"rate" yaml:"rate" validate:"gte=0"`
}

// Format is a config file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
}

// =============================================================================
// SCHEDULE FACTORY
// =============================================================================

// ScheduleFactory converts config documents into schedules.
type ScheduleFactory struct {
	validate *validator.Validate
}

// NewScheduleFactory creates a new schedule factory.
func NewScheduleFactory() *ScheduleFactory {
	return &ScheduleFactory{validate: validator.New()}
}

// LoadFile reads a config file and returns its schedules ordered by name.
func (f *ScheduleFactory) LoadFile(path string) ([]*payroll.RateSchedule, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return f.ParseConfig(data, format)
}

// ParseConfig parses a config document and returns its schedules ordered by
// name.
func (f *ScheduleFactory) ParseConfig(data []byte, format Format) ([]*payroll.RateSchedule, error) {
	var cfg ConfigJSON
	if err := unmarshal(data, format, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", payroll.ErrInvalidSchedule, err)
	}
	if err := f.check(cfg); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cfg.PaymentSchedules))
	for name := range cfg.PaymentSchedules {
		names = append(names, name)
	}
	sort.Strings(names)

	schedules := make([]*payroll.RateSchedule, 0, len(names))
	for _, name := range names {
		s, err := f.FromJSON(name, cfg.PaymentSchedules[name])
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// ParseSchedule parses a single JSON schedule document under the given name.
func (f *ScheduleFactory) ParseSchedule(name string, data []byte) (*payroll.RateSchedule, error) {
	var sj ScheduleJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse schedule JSON: %v", payroll.ErrInvalidSchedule, err)
	}
	if err := f.check(sj); err != nil {
		return nil, err
	}
	return f.FromJSON(name, sj)
}

// FromJSON converts a ScheduleJSON into an assembled schedule.
func (f *ScheduleFactory) FromJSON(name string, sj ScheduleJSON) (*payroll.RateSchedule, error) {
	if name == "" {
		name = sj.Name
	}
	if name == "" {
		return nil, fmt.Errorf("%w: schedule name is required", payroll.ErrInvalidSchedule)
	}

	periods := make([]payroll.Period, 0, len(sj.Periods))
	for i, pj := range sj.Periods {
		p, err := parsePeriod(pj)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %q period %d: %v", payroll.ErrInvalidSchedule, name, i, err)
		}
		periods = append(periods, p)
	}
	return payroll.AssembleSchedule(name, periods), nil
}

// ToJSON converts a schedule back to its config representation.
func (f *ScheduleFactory) ToJSON(s *payroll.RateSchedule) ScheduleJSON {
	sj := ScheduleJSON{Name: s.Name()}
	for _, p := range s.Periods() {
		pj := PeriodJSON{Name: p.Name, TimeSlots: []TimeSlotJSON{}}
		for _, d := range p.Days {
			pj.Days = append(pj.Days, d.String())
		}
		for _, b := range p.Bands {
			pj.TimeSlots = append(pj.TimeSlots, TimeSlotJSON{
				Start: formatClock(b.Start),
				End:   formatClock(b.End),
				Rate:  b.Rate.InexactFloat64(),
			})
		}
		sj.Periods = append(sj.Periods, pj)
	}
	return sj
}

// FormatSchedule renders a schedule as indented JSON.
func (f *ScheduleFactory) FormatSchedule(s *payroll.RateSchedule) (string, error) {
	b, err := json.MarshalIndent(f.ToJSON(s), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode schedule: %w", err)
	}
	return string(b), nil
}

// =============================================================================
// HELPERS
// =============================================================================

func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported config format %q", format)
	}
}

func (f *ScheduleFactory) check(v any) error {
	err := f.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", payroll.ErrInvalidSchedule, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", payroll.ErrInvalidSchedule, strings.Join(msgs, "; "))
}

func parsePeriod(pj PeriodJSON) (payroll.Period, error) {
	p := payroll.Period{Name: pj.Name}

	for _, token := range pj.Days {
		d, err := payroll.ParseDay(token)
		if err != nil {
			return payroll.Period{}, err
		}
		p.Days = append(p.Days, d)
	}

	for _, ts := range pj.TimeSlots {
		start, err := payroll.ParseTimeOfDay(ts.Start)
		if err != nil {
			return payroll.Period{}, err
		}
		end, err := payroll.ParseTimeOfDay(ts.End)
		if err != nil {
			return payroll.Period{}, err
		}
		band, err := payroll.NewRateBand(start, end, decimal.NewFromFloat(ts.Rate))
		if err != nil {
			return payroll.Period{}, err
		}
		p.Bands = append(p.Bands, band)
	}
	return p, nil
}

// formatClock writes end of day back as "00:00" so the output parses to the
// same band.
func formatClock(t payroll.TimeOfDay) string {
	if t == payroll.EndOfDay {
		return "00:00"
	}
	return t.String()
}
