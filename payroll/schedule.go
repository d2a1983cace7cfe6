package payroll

import "slices"

// =============================================================================
// PERIOD - Days sharing the same rate bands (assembly input only)
// =============================================================================

// Period maps a set of days to a shared list of rate bands.
//
// Examples:
//   - "weekdays": MO..FR, three bands
//   - "weekend":  SA, SU, three bands with higher rates
type Period struct {
	Name  string
	Days  []Day
	Bands []RateBand
}

// =============================================================================
// RATE SCHEDULE - Per-day band lists, immutable after assembly
// =============================================================================

// RateSchedule is a named set of day-to-band mappings. It is never modified
// after AssembleSchedule returns, so one instance can serve any number of
// concurrent calculations.
type RateSchedule struct {
	name    string
	periods []Period

	bands      [daysInWeek][]RateBand
	configured [daysInWeek]bool
}

// AssembleSchedule expands periods into the per-day mapping. Each day in a
// period receives that period's bands appended to its existing list, in
// period order. Overlap between bands of the same day is not checked.
//
// Days outside Monday..Sunday are ignored and stay unconfigured. Build days
// with ParseDay to reject bad tokens before assembly.
func AssembleSchedule(name string, periods []Period) *RateSchedule {
	s := &RateSchedule{name: name, periods: make([]Period, len(periods))}

	for i, p := range periods {
		s.periods[i] = Period{
			Name:  p.Name,
			Days:  slices.Clone(p.Days),
			Bands: slices.Clone(p.Bands),
		}
		for _, d := range p.Days {
			if !d.Valid() {
				continue
			}
			s.configured[d] = true
			s.bands[d] = append(s.bands[d], p.Bands...)
		}
	}
	return s
}

func (s *RateSchedule) Name() string { return s.name }

// Periods returns a copy of the periods the schedule was assembled from.
func (s *RateSchedule) Periods() []Period {
	out := make([]Period, len(s.periods))
	for i, p := range s.periods {
		out[i] = Period{Name: p.Name, Days: slices.Clone(p.Days), Bands: slices.Clone(p.Bands)}
	}
	return out
}

// Bands returns the bands for a day. The bool is false when no period names
// the day, which is distinct from a day that is named but has no bands.
func (s *RateSchedule) Bands(d Day) ([]RateBand, bool) {
	if !d.Valid() || !s.configured[d] {
		return nil, false
	}
	return slices.Clone(s.bands[d]), true
}

// ConfiguredDays lists the days with rate information, in week order.
func (s *RateSchedule) ConfiguredDays() []Day {
	var days []Day
	for _, d := range Days() {
		if s.configured[d] {
			days = append(days, d)
		}
	}
	return days
}

// bandsFor returns the internal slice. Callers must not modify it.
func (s *RateSchedule) bandsFor(d Day) ([]RateBand, bool) {
	if !d.Valid() || !s.configured[d] {
		return nil, false
	}
	return s.bands[d], true
}
