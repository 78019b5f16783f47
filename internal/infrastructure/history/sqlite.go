// Package history persists applied swaps
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nutriswap/backend/internal/domain"
)

const defaultListLimit = 50

// timeLayout is fixed-width so applied_at sorts chronologically as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is a domain.SwapHistoryRepository on a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

var _ domain.SwapHistoryRepository = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at path.
// Use ":memory:" for a throwaway store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS swap_history (
        id TEXT PRIMARY KEY,
        profile_id TEXT NOT NULL DEFAULT '',
        original_food TEXT NOT NULL,
        replacement_food TEXT NOT NULL,
        goal_target TEXT NOT NULL,
        impact_score REAL NOT NULL,
        delta_calories REAL NOT NULL,
        delta_protein REAL NOT NULL,
        delta_carbs REAL NOT NULL,
        delta_fat REAL NOT NULL,
        delta_fiber REAL NOT NULL,
        delta_sugar REAL NOT NULL,
        applied_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_swap_history_profile ON swap_history(profile_id, applied_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save inserts a record. IDs must be unique.
func (s *SQLiteStore) Save(ctx context.Context, record *domain.SwapRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("%w: record id is required", domain.ErrInvalidRequest)
	}

	query := `
        INSERT INTO swap_history (
            id, profile_id, original_food, replacement_food, goal_target, impact_score,
            delta_calories, delta_protein, delta_carbs, delta_fat, delta_fiber, delta_sugar,
            applied_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	d := record.Delta
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.ProfileID, record.OriginalFood, record.ReplacementFood,
		record.GoalTarget, record.ImpactScore,
		d.Calories, d.Protein, d.Carbohydrates, d.Fat, d.Fiber, d.Sugar,
		record.AppliedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert swap: %w", err)
	}
	return nil
}

// Get returns one record or domain.ErrHistoryNotFound
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.SwapRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrHistoryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List returns records newest first, filtered by profile when profileID is
// non-empty. limit <= 0 uses a default of 50.
func (s *SQLiteStore) List(ctx context.Context, profileID string, limit int) ([]domain.SwapRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := selectColumns + " WHERE 1=1"
	args := []interface{}{}
	if profileID != "" {
		query += " AND profile_id = ?"
		args = append(args, profileID)
	}
	query += " ORDER BY applied_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query swaps: %w", err)
	}
	defer rows.Close()

	records := []domain.SwapRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read swaps: %w", err)
	}
	return records, nil
}

const selectColumns = `
    SELECT id, profile_id, original_food, replacement_food, goal_target, impact_score,
           delta_calories, delta_protein, delta_carbs, delta_fat, delta_fiber, delta_sugar,
           applied_at
    FROM swap_history`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*domain.SwapRecord, error) {
	record := &domain.SwapRecord{}
	d := &record.Delta
	var appliedAt string

	err := row.Scan(
		&record.ID, &record.ProfileID, &record.OriginalFood, &record.ReplacementFood,
		&record.GoalTarget, &record.ImpactScore,
		&d.Calories, &d.Protein, &d.Carbohydrates, &d.Fat, &d.Fiber, &d.Sugar,
		&appliedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan swap: %w", err)
	}

	if record.AppliedAt, err = time.Parse(timeLayout, appliedAt); err != nil {
		return nil, fmt.Errorf("failed to parse applied_at: %w", err)
	}
	return record, nil
}
