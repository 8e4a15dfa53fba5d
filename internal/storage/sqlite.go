// internal/storage/sqlite.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"nutribot/internal/models"
)

// weeklyWindow is the trailing aggregation window for progress reports.
// Records exactly at the boundary are included.
const weeklyWindow = 7 * 24 * time.Hour

// SQLiteStorage persists meal logs in a single local table. Every write is
// an independent single-row insert, so concurrent appends from different
// users need no cross-row coordination.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS meals (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id TEXT NOT NULL,
        timestamp DATETIME NOT NULL,
        image_url TEXT,
        description TEXT,
        classification_json TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_meals_user_timestamp ON meals(user_id, timestamp);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveMeal appends one meal log and returns its assigned id.
func (s *SQLiteStorage) SaveMeal(ctx context.Context, meal *models.MealLog) (int64, error) {
	classificationJSON, err := json.Marshal(meal.Classification)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal classification: %w", err)
	}

	query := `
        INSERT INTO meals (user_id, timestamp, image_url, description, classification_json)
        VALUES (?, ?, ?, ?, ?)
    `
	res, err := s.db.ExecContext(ctx, query,
		meal.UserID,
		meal.Timestamp.UTC().Format(time.RFC3339),
		nullableString(meal.ImageURL),
		nullableString(meal.Description),
		string(classificationJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to insert meal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	meal.ID = id
	return id, nil
}

// WeeklyTotals sums classification fractions for the user's meals in the
// trailing 7-day window ending at now. Groups with no contributing records
// are zero. Totals are raw sums and may exceed 1.0; the renderer caps them.
func (s *SQLiteStorage) WeeklyTotals(ctx context.Context, userID string, now time.Time) (models.Classification, error) {
	var totals models.Classification

	since := now.UTC().Add(-weeklyWindow).Format(time.RFC3339)
	query := `
        SELECT classification_json FROM meals
        WHERE user_id = ? AND timestamp >= ?
    `
	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return totals, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return totals, fmt.Errorf("failed to scan meal: %w", err)
		}

		var c models.Classification
		if err := json.Unmarshal([]byte(blob), &c); err != nil {
			return totals, fmt.Errorf("failed to parse classification for user %s: %w", userID, err)
		}
		totals.Add(c)
	}
	if err := rows.Err(); err != nil {
		return totals, fmt.Errorf("failed to iterate meals: %w", err)
	}

	return totals, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
