// Package store provides ScheduleStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	schedules map[string]*payroll.RateSchedule
}

// Compile-time check that Memory implements payroll.ScheduleStore
var _ payroll.ScheduleStore = (*Memory)(nil)

func NewMemory(schedules ...*payroll.RateSchedule) *Memory {
	m := &Memory{schedules: make(map[string]*payroll.RateSchedule, len(schedules))}
	for _, s := range schedules {
		m.schedules[s.Name()] = s
	}
	return m
}

func (m *Memory) GetSchedule(_ context.Context, name string) (*payroll.RateSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.schedules[name]
	if !ok {
		return nil, &payroll.ScheduleNotFoundError{Name: name}
	}
	return s, nil
}

func (m *Memory) ListSchedules(_ context.Context) ([]*payroll.RateSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*payroll.RateSchedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result, nil
}

// SaveSchedule replaces any schedule with the same name. Schedules are
// immutable, so the pointer is stored as is.
func (m *Memory) SaveSchedule(_ context.Context, schedule *payroll.RateSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[schedule.Name()] = schedule
	return nil
}

func (m *Memory) DeleteSchedule(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.schedules[name]; !ok {
		return &payroll.ScheduleNotFoundError{Name: name}
	}
	delete(m.schedules, name)
	return nil
}
