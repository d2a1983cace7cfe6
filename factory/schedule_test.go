package factory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

const nightShiftYAML = `
payment_schedules:
  night-shift:
    periods:
      - name: all week
        days: [MO, TU, WE, TH, FR, SA, SU]
        time_slots:
          - {start: "00:00", end: "06:00", rate: 40}
          - {start: "22:00", end: "00:00", rate: 35.5}
  closed-sunday:
    periods:
      - name: sunday
        days: [SU]
        time_slots: []
`

func bandsOf(t *testing.T, s *payroll.RateSchedule, d payroll.Day) []payroll.RateBand {
	t.Helper()
	bands, ok := s.Bands(d)
	require.True(t, ok, "day %s should be configured", d)
	return bands
}

func assertBand(t *testing.T, b payroll.RateBand, start, end, rate string) {
	t.Helper()
	assert.Equal(t, start, b.Start.String())
	assert.Equal(t, end, b.End.String())
	assert.Truef(t, decimal.RequireFromString(rate).Equal(b.Rate), "rate: expected %s, got %s", rate, b.Rate)
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefaultSchedules(t *testing.T) {
	schedules, err := factory.NewScheduleFactory().DefaultSchedules()
	require.NoError(t, err)
	require.Len(t, schedules, 1)

	s := schedules[0]
	assert.Equal(t, factory.DefaultScheduleName, s.Name())
	assert.Equal(t, payroll.Days(), s.ConfiguredDays())

	mo := bandsOf(t, s, payroll.Monday)
	require.Len(t, mo, 3)
	assertBand(t, mo[0], "00:01", "09:00", "25")
	assertBand(t, mo[1], "09:01", "18:00", "15")
	assertBand(t, mo[2], "18:01", "23:59:59", "20")

	su := bandsOf(t, s, payroll.Sunday)
	require.Len(t, su, 3)
	assertBand(t, su[0], "00:01", "09:00", "30")
	assertBand(t, su[1], "09:01", "18:00", "20")
	assertBand(t, su[2], "18:01", "23:59:59", "25")
}

func TestDefaultSchedules_Scenario(t *testing.T) {
	schedules, err := factory.NewScheduleFactory().DefaultSchedules()
	require.NoError(t, err)

	history, err := payroll.NewTextParser().Parse("ASTRID=MO10:00-12:00,TH12:00-14:00,SU20:00-21:00")
	require.NoError(t, err)

	total, err := payroll.ComputePayment(*history, schedules[0])
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(85).Equal(total), "got %s", total)
}

// =============================================================================
// PARSING
// =============================================================================

func TestParseConfig_YAML(t *testing.T) {
	schedules, err := factory.NewScheduleFactory().ParseConfig([]byte(nightShiftYAML), factory.FormatYAML)
	require.NoError(t, err)
	require.Len(t, schedules, 2)

	// Ordered by name
	assert.Equal(t, "closed-sunday", schedules[0].Name())
	assert.Equal(t, "night-shift", schedules[1].Name())

	closed := bandsOf(t, schedules[0], payroll.Sunday)
	assert.Empty(t, closed)
	_, ok := schedules[0].Bands(payroll.Monday)
	assert.False(t, ok)

	night := bandsOf(t, schedules[1], payroll.Wednesday)
	require.Len(t, night, 2)
	assertBand(t, night[0], "00:00", "06:00", "40")
	assertBand(t, night[1], "22:00", "23:59:59", "35.5")
}

func TestParseConfig_JSONAndYAMLAgree(t *testing.T) {
	f := factory.NewScheduleFactory()

	fromJSON, err := f.ParseConfig([]byte(factory.DefaultConfigJSON), factory.FormatJSON)
	require.NoError(t, err)

	yamlDoc := `
payment_schedules:
  default:
    periods:
      - name: weekdays
        days: [MO, TU, WE, TH, FR]
        time_slots:
          - {start: "00:01", end: "09:00", rate: 25}
          - {start: "09:01", end: "18:00", rate: 15}
          - {start: "18:01", end: "00:00", rate: 20}
      - name: weekend
        days: [SA, SU]
        time_slots:
          - {start: "00:01", end: "09:00", rate: 30}
          - {start: "09:01", end: "18:00", rate: 20}
          - {start: "18:01", end: "00:00", rate: 25}
`
	fromYAML, err := f.ParseConfig([]byte(yamlDoc), factory.FormatYAML)
	require.NoError(t, err)

	jsonText, err := f.FormatSchedule(fromJSON[0])
	require.NoError(t, err)
	yamlText, err := f.FormatSchedule(fromYAML[0])
	require.NoError(t, err)
	assert.JSONEq(t, jsonText, yamlText)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"payment_schedules":`},
		{"no schedules", `{"payment_schedules":{}}`},
		{"no periods", `{"payment_schedules":{"a":{"periods":[]}}}`},
		{"no days", `{"payment_schedules":{"a":{"periods":[{"days":[],"time_slots":[]}]}}}`},
		{"unknown day", `{"payment_schedules":{"a":{"periods":[{"days":["XY"],"time_slots":[]}]}}}`},
		{"bad clock", `{"payment_schedules":{"a":{"periods":[{"days":["MO"],"time_slots":[{"start":"9am","end":"10:00","rate":1}]}]}}}`},
		{"negative rate", `{"payment_schedules":{"a":{"periods":[{"days":["MO"],"time_slots":[{"start":"09:00","end":"10:00","rate":-1}]}]}}}`},
		{"end before start", `{"payment_schedules":{"a":{"periods":[{"days":["MO"],"time_slots":[{"start":"10:00","end":"09:00","rate":1}]}]}}}`},
		{"missing start", `{"payment_schedules":{"a":{"periods":[{"days":["MO"],"time_slots":[{"end":"09:00","rate":1}]}]}}}`},
	}

	f := factory.NewScheduleFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ParseConfig([]byte(tt.doc), factory.FormatJSON)
			require.Error(t, err)
			assert.ErrorIs(t, err, payroll.ErrInvalidSchedule)
			assert.True(t, payroll.IsConfigError(err))
		})
	}
}

func TestParseSchedule_RoundTrip(t *testing.T) {
	// GIVEN: A schedule rendered by FormatSchedule
	// WHEN: The output is parsed back
	// THEN: Every day has the same bands, and midnight ends stay end of day

	f := factory.NewScheduleFactory()
	schedules, err := f.ParseConfig([]byte(nightShiftYAML), factory.FormatYAML)
	require.NoError(t, err)
	original := schedules[1]

	text, err := f.FormatSchedule(original)
	require.NoError(t, err)
	assert.Contains(t, text, `"end": "00:00"`)

	parsed, err := f.ParseSchedule("copy", []byte(text))
	require.NoError(t, err)
	assert.Equal(t, "copy", parsed.Name())
	assert.Equal(t, original.ConfiguredDays(), parsed.ConfiguredDays())

	for _, d := range original.ConfiguredDays() {
		want := bandsOf(t, original, d)
		got := bandsOf(t, parsed, d)
		require.Len(t, got, len(want))
		for i := range want {
			assertBand(t, got[i], want[i].Start.String(), want[i].End.String(), want[i].Rate.String())
		}
	}
}

func TestFromJSON_NameFallback(t *testing.T) {
	f := factory.NewScheduleFactory()
	sj := factory.ScheduleJSON{
		Name:    "from-body",
		Periods: []factory.PeriodJSON{{Days: []string{"MO"}}},
	}

	s, err := f.FromJSON("", sj)
	require.NoError(t, err)
	assert.Equal(t, "from-body", s.Name())

	sj.Name = ""
	_, err = f.FromJSON("", sj)
	assert.ErrorIs(t, err, payroll.ErrInvalidSchedule)
}

// =============================================================================
// FILES
// =============================================================================

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]factory.Format{
		"rates.json":     factory.FormatJSON,
		"rates.yaml":     factory.FormatYAML,
		"conf/RATES.YML": factory.FormatYAML,
	} {
		got, err := factory.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := factory.FormatFromPath("rates.toml")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(nightShiftYAML), 0o644))

	schedules, err := factory.NewScheduleFactory().LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, schedules, 2)

	_, err = factory.NewScheduleFactory().LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFormatSchedule_SecondPrecision(t *testing.T) {
	f := factory.NewScheduleFactory()
	b, err := payroll.NewRateBand(payroll.MustTimeOfDay(9, 0, 30), payroll.MustTimeOfDay(17, 0, 0), decimal.NewFromInt(15))
	require.NoError(t, err)
	original := payroll.AssembleSchedule("sec", []payroll.Period{
		{Days: []payroll.Day{payroll.Monday}, Bands: []payroll.RateBand{b}},
	})

	text, err := f.FormatSchedule(original)
	require.NoError(t, err)
	assert.Contains(t, text, `"start": "09:00:30"`)

	parsed, err := f.ParseSchedule("sec", []byte(text))
	require.NoError(t, err)
	assertBand(t, bandsOf(t, parsed, payroll.Monday)[0], "09:00:30", "17:00", "15")
}
