package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/novaos-app/novaos-api/internal/models"
)

// HabitRepository handles habit database operations
type HabitRepository struct {
	db *DB
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// Create creates a new habit
func (r *HabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	query := `
		INSERT INTO habits (id, name, frequency, streak, last_completed_at, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	historyJSON, err := json.Marshal(historyOrEmpty(habit.History))
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	now := time.Now()
	err = r.db.QueryRowContext(ctx, query,
		habit.ID,
		habit.Name,
		habit.Frequency,
		habit.Streak,
		nullTime(habit.LastCompletedAt),
		historyJSON,
		now,
		now,
	).Scan(&habit.CreatedAt, &habit.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	return nil
}

// GetByID retrieves a habit by ID. Returns nil when no habit exists.
func (r *HabitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	query := `
		SELECT id, name, frequency, streak, last_completed_at, history, created_at, updated_at
		FROM habits
		WHERE id = $1
	`

	habit, err := scanHabit(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return habit, nil
}

// List retrieves all habits, newest first
func (r *HabitRepository) List(ctx context.Context) ([]*models.Habit, error) {
	query := `
		SELECT id, name, frequency, streak, last_completed_at, history, created_at, updated_at
		FROM habits
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habits: %w", err)
	}

	return habits, nil
}

// Update persists the mutable habit fields (name, frequency, streak,
// last completion, history)
func (r *HabitRepository) Update(ctx context.Context, habit *models.Habit) error {
	query := `
		UPDATE habits
		SET name = $2, frequency = $3, streak = $4, last_completed_at = $5, history = $6, updated_at = $7
		WHERE id = $1
		RETURNING updated_at
	`

	historyJSON, err := json.Marshal(historyOrEmpty(habit.History))
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	err = r.db.QueryRowContext(ctx, query,
		habit.ID,
		habit.Name,
		habit.Frequency,
		habit.Streak,
		nullTime(habit.LastCompletedAt),
		historyJSON,
		time.Now(),
	).Scan(&habit.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("habit not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	return nil
}

// Delete deletes a habit by ID
func (r *HabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("habit not found")
	}

	return nil
}

// Count returns the total number of habits
func (r *HabitRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count habits: %w", err)
	}
	return count, nil
}

// CountCompletedInWindow returns the number of habits last completed within
// [start, end]
func (r *HabitRepository) CountCompletedInWindow(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM habits
		WHERE last_completed_at >= $1 AND last_completed_at <= $2
	`, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed habits: %w", err)
	}
	return count, nil
}

// CountDoneOn returns the number of habits last completed on the calendar
// day containing t. The day boundary is computed in the server's timezone.
func (r *HabitRepository) CountDoneOn(ctx context.Context, t time.Time) (int, error) {
	y, m, d := t.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM habits
		WHERE last_completed_at >= $1 AND last_completed_at < $2
	`, dayStart, dayEnd).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count habits done today: %w", err)
	}
	return count, nil
}

// BestStreak returns the highest streak across all habits, 0 when none exist
func (r *HabitRepository) BestStreak(ctx context.Context) (int, error) {
	var best int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(streak), 0) FROM habits`).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("failed to get best streak: %w", err)
	}
	return best, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (*models.Habit, error) {
	habit := &models.Habit{}
	var historyJSON []byte
	var lastCompletedAt sql.NullTime

	err := row.Scan(
		&habit.ID,
		&habit.Name,
		&habit.Frequency,
		&habit.Streak,
		&lastCompletedAt,
		&historyJSON,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(historyJSON, &habit.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	if lastCompletedAt.Valid {
		habit.LastCompletedAt = &lastCompletedAt.Time
	}

	return habit, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// historyOrEmpty keeps the JSONB column a valid array even for new habits
func historyOrEmpty(history []models.HistoryEntry) []models.HistoryEntry {
	if history == nil {
		return []models.HistoryEntry{}
	}
	return history
}
