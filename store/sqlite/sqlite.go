/*
Package sqlite provides a SQLite-backed implementation of payroll.ScheduleStore.

PURPOSE:
  Persists rate schedules so they survive restarts and can be managed over
  the API. Computed payments are never stored.

STORAGE FORMAT:
  Each schedule is one row holding its config JSON (see factory/schedule.go).
  The JSON is parsed back through the factory, so whatever the API accepts
  is exactly what the store can load.

KEY TABLES:
  schedules: name, config_json, version, created_at, updated_at

CACHING:
  Parsed schedules are cached by name. A RateSchedule is immutable, so the
  cached pointer is handed out to every caller. Save, Delete and Reset bump
  a generation counter; a cache miss only fills the cache if no write
  happened while it was reading the row.

CONCURRENCY:
  Uses sync.RWMutex for the cache and for write ordering. SQLite runs in WAL
  mode so readers don't block the writer.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  schedule, err := store.GetSchedule(ctx, "default")

SEE ALSO:
  - payroll/provider.go: Interface definitions
  - payroll/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements payroll.ScheduleStore using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	factory *factory.ScheduleFactory
	cache   map[string]*payroll.RateSchedule
	gen     uint64 // bumped by every write, guarded by mu
}

// Compile-time check that Store implements payroll.ScheduleStore
var _ payroll.ScheduleStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	store := &Store{
		db:      db,
		factory: factory.NewScheduleFactory(),
		cache:   make(map[string]*payroll.RateSchedule),
	}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schedules (
		name TEXT PRIMARY KEY,
		config_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCHEDULES (payroll.ScheduleStore interface)
// =============================================================================

// ScheduleRecord is a stored schedule row.
type ScheduleRecord struct {
	Name       string
	ConfigJSON string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GetSchedule returns the parsed schedule, from cache when possible.
func (s *Store) GetSchedule(ctx context.Context, name string) (*payroll.RateSchedule, error) {
	s.mu.RLock()
	cached, ok := s.cache[name]
	gen := s.gen
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	schedule, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cacheIfCurrent(name, schedule, gen)
	return schedule, nil
}

// load reads and parses a schedule row, bypassing the cache.
func (s *Store) load(ctx context.Context, name string) (*payroll.RateSchedule, error) {
	rec, err := s.GetRecord(ctx, name)
	if err != nil {
		return nil, err
	}
	schedule, err := s.factory.ParseSchedule(rec.Name, []byte(rec.ConfigJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule %q: %w", name, err)
	}
	return schedule, nil
}

// cacheIfCurrent caches schedule unless a write happened after gen was read.
// A concurrent save has already cached the newer schedule, and an older row
// must not replace it.
func (s *Store) cacheIfCurrent(name string, schedule *payroll.RateSchedule, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.cache[name] = schedule
	return true
}

// ListSchedules returns all schedules ordered by name.
func (s *Store) ListSchedules(ctx context.Context) ([]*payroll.RateSchedule, error) {
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	schedules := make([]*payroll.RateSchedule, 0, len(records))
	for _, rec := range records {
		schedule, err := s.factory.ParseSchedule(rec.Name, []byte(rec.ConfigJSON))
		if err != nil {
			return nil, fmt.Errorf("failed to load schedule %q: %w", rec.Name, err)
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

// SaveSchedule inserts a schedule or replaces it, bumping its version.
func (s *Store) SaveSchedule(ctx context.Context, schedule *payroll.RateSchedule) error {
	configJSON, err := s.factory.FormatSchedule(schedule)
	if err != nil {
		return err
	}
	// A row that cannot be parsed back would break every later List.
	if _, err := s.factory.ParseSchedule(schedule.Name(), []byte(configJSON)); err != nil {
		return fmt.Errorf("schedule %q cannot be stored: %w", schedule.Name(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedules (name, config_json, version, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			config_json = excluded.config_json,
			version = schedules.version + 1,
			updated_at = excluded.updated_at
	`, schedule.Name(), configJSON, now, now)
	if err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	s.gen++
	s.cache[schedule.Name()] = schedule
	return nil
}

// DeleteSchedule removes a schedule by name.
func (s *Store) DeleteSchedule(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM schedules WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	s.gen++
	delete(s.cache, name)
	if n == 0 {
		return &payroll.ScheduleNotFoundError{Name: name}
	}
	return nil
}

// =============================================================================
// RECORDS
// =============================================================================

// GetRecord returns the stored row for a schedule.
func (s *Store) GetRecord(ctx context.Context, name string) (*ScheduleRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, config_json, version, created_at, updated_at
		FROM schedules WHERE name = ?
	`, name)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &payroll.ScheduleNotFoundError{Name: name}
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecords returns all stored rows ordered by name.
func (s *Store) ListRecords(ctx context.Context) ([]ScheduleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, config_json, version, created_at, updated_at
		FROM schedules ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var records []ScheduleRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*ScheduleRecord, error) {
	var (
		rec       ScheduleRecord
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&rec.Name, &rec.ConfigJSON, &rec.Version, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan schedule: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// Reset deletes all schedules.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM schedules"); err != nil {
		return fmt.Errorf("failed to reset schedules: %w", err)
	}
	s.gen++
	s.cache = make(map[string]*payroll.RateSchedule)
	return nil
}
