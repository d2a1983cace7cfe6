package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/payroll/store"
	"github.com/warp/payroll-engine/store/sqlite"
)

// openStore returns the configured schedule store and a close function. The
// store is seeded with any schedules it does not have yet.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (payroll.ScheduleStore, func() error, error) {
	seed, err := seedSchedules(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.DBPath == "" {
		logger.Debug().Int("schedules", len(seed)).Msg("using in-memory schedule store")
		return store.NewMemory(seed...), func() error { return nil }, nil
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	added, err := seedMissing(ctx, db, seed)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Debug().Str("db", cfg.DBPath).Int("seeded", added).Msg("using sqlite schedule store")
	return db, db.Close, nil
}

// seedSchedules loads the configured schedule file, or the built-in rates.
func seedSchedules(cfg *config.Config) ([]*payroll.RateSchedule, error) {
	f := factory.NewScheduleFactory()
	if cfg.ScheduleFile == "" {
		return f.DefaultSchedules()
	}
	schedules, err := f.LoadFile(cfg.ScheduleFile)
	if err != nil {
		return nil, fmt.Errorf("load schedules from %s: %w", cfg.ScheduleFile, err)
	}
	return schedules, nil
}

// seedMissing saves the schedules whose names are not stored yet and returns
// how many were added. Stored schedules are never overwritten.
func seedMissing(ctx context.Context, s payroll.ScheduleStore, schedules []*payroll.RateSchedule) (int, error) {
	added := 0
	for _, schedule := range schedules {
		_, err := s.GetSchedule(ctx, schedule.Name())
		if err == nil {
			continue
		}
		if !errors.Is(err, payroll.ErrScheduleNotFound) {
			return added, err
		}
		if err := s.SaveSchedule(ctx, schedule); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
