package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func defaultSchedule(t *testing.T) *payroll.RateSchedule {
	t.Helper()
	schedules, err := factory.NewScheduleFactory().DefaultSchedules()
	require.NoError(t, err)
	return schedules[0]
}

func TestStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveSchedule(ctx, defaultSchedule(t)))

	// Drop the cache so the schedule is parsed back from its row.
	s.cache = make(map[string]*payroll.RateSchedule)

	got, err := s.GetSchedule(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "default", got.Name())
	assert.Equal(t, payroll.Days(), got.ConfiguredDays())

	mo, ok := got.Bands(payroll.Monday)
	require.True(t, ok)
	require.Len(t, mo, 3)
	assert.Equal(t, payroll.EndOfDay, mo[2].End)
	assert.Equal(t, "20", mo[2].Rate.String())
}

func TestStore_GetIsCached(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveSchedule(ctx, defaultSchedule(t)))
	s.cache = make(map[string]*payroll.RateSchedule)

	first, err := s.GetSchedule(ctx, "default")
	require.NoError(t, err)
	second, err := s.GetSchedule(ctx, "default")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetSchedule(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrScheduleNotFound)

	err = s.DeleteSchedule(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrScheduleNotFound)
}

func TestStore_SaveBumpsVersion(t *testing.T) {
	// GIVEN: A saved schedule
	// WHEN: It is saved again under the same name
	// THEN: The row is replaced and its version goes to 2

	ctx := context.Background()
	s := newTestStore(t)
	schedule := defaultSchedule(t)

	require.NoError(t, s.SaveSchedule(ctx, schedule))
	rec, err := s.GetRecord(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
	assert.False(t, rec.CreatedAt.IsZero())

	replacement := payroll.AssembleSchedule("default", []payroll.Period{
		{Name: "closed", Days: []payroll.Day{payroll.Sunday}},
	})
	require.NoError(t, s.SaveSchedule(ctx, replacement))

	rec, err = s.GetRecord(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Version)

	got, err := s.GetSchedule(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, []payroll.Day{payroll.Sunday}, got.ConfiguredDays())
}

func TestStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, name := range []string{"weekend", "default", "night"} {
		require.NoError(t, s.SaveSchedule(ctx, payroll.AssembleSchedule(name, []payroll.Period{
			{Name: "all", Days: payroll.Days()},
		})))
	}

	list, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "default", list[0].Name())
	assert.Equal(t, "night", list[1].Name())
	assert.Equal(t, "weekend", list[2].Name())

	require.NoError(t, s.DeleteSchedule(ctx, "night"))
	_, err = s.GetSchedule(ctx, "night")
	assert.True(t, payroll.IsNotFound(err))

	records, err := s.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveSchedule(ctx, defaultSchedule(t)))

	require.NoError(t, s.Reset(ctx))

	_, err := s.GetSchedule(ctx, "default")
	assert.ErrorIs(t, err, payroll.ErrScheduleNotFound)
	list, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_SecondPrecisionBandsRoundTrip(t *testing.T) {
	// GIVEN: A band that starts half a minute past the hour
	// WHEN: It is saved and read back from the row
	// THEN: The band is intact and listing still works

	ctx := context.Background()
	s := newTestStore(t)

	b, err := payroll.NewRateBand(payroll.MustTimeOfDay(9, 0, 30), payroll.Midnight, decimal.NewFromInt(15))
	require.NoError(t, err)
	require.NoError(t, s.SaveSchedule(ctx, payroll.AssembleSchedule("sec", []payroll.Period{
		{Name: "mondays", Days: []payroll.Day{payroll.Monday}, Bands: []payroll.RateBand{b}},
	})))
	s.cache = make(map[string]*payroll.RateSchedule)

	got, err := s.GetSchedule(ctx, "sec")
	require.NoError(t, err)
	bands, ok := got.Bands(payroll.Monday)
	require.True(t, ok)
	require.Len(t, bands, 1)
	assert.Equal(t, payroll.MustTimeOfDay(9, 0, 30), bands[0].Start)
	assert.Equal(t, payroll.EndOfDay, bands[0].End)

	list, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_StaleReadDoesNotReplaceNewerSave(t *testing.T) {
	// GIVEN: A cache miss that has read the old row
	// WHEN: A save for the same name lands before the miss fills the cache
	// THEN: The old schedule is not cached and readers see the new one

	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveSchedule(ctx, defaultSchedule(t)))
	s.cache = make(map[string]*payroll.RateSchedule)

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()
	stale, err := s.load(ctx, "default")
	require.NoError(t, err)

	replacement := payroll.AssembleSchedule("default", []payroll.Period{
		{Name: "closed", Days: []payroll.Day{payroll.Sunday}},
	})
	require.NoError(t, s.SaveSchedule(ctx, replacement))

	assert.False(t, s.cacheIfCurrent("default", stale, gen))

	got, err := s.GetSchedule(ctx, "default")
	require.NoError(t, err)
	assert.Same(t, replacement, got)
}

func TestStore_ConcurrentGetAndSave(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.SaveSchedule(ctx, defaultSchedule(t)))

	last := payroll.AssembleSchedule("default", []payroll.Period{
		{Name: "closed", Days: []payroll.Day{payroll.Sunday}},
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := s.GetSchedule(ctx, "default")
				assert.NoError(t, err)
			}
		}()
	}
	for j := 0; j < 20; j++ {
		require.NoError(t, s.SaveSchedule(ctx, defaultSchedule(t)))
		s.mu.Lock()
		delete(s.cache, "default")
		s.mu.Unlock()
	}
	require.NoError(t, s.SaveSchedule(ctx, last))
	wg.Wait()

	got, err := s.GetSchedule(ctx, "default")
	require.NoError(t, err)
	assert.Same(t, last, got)
}
