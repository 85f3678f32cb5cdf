package database

import (
	"context"
	"fmt"
	"time"

	"github.com/novaos-app/novaos-api/internal/models"
)

// AIActivityRepository handles AI activity log database operations.
// The log is append-only.
type AIActivityRepository struct {
	db *DB
}

// NewAIActivityRepository creates a new AI activity repository
func NewAIActivityRepository(db *DB) *AIActivityRepository {
	return &AIActivityRepository{db: db}
}

// Append records one AI assistant action
func (r *AIActivityRepository) Append(ctx context.Context, activity *models.AIActivity) error {
	query := `
		INSERT INTO ai_activity (id, type, action, source_text, result_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		activity.ID,
		activity.Type,
		activity.Action,
		activity.SourceText,
		activity.ResultType,
		time.Now(),
	).Scan(&activity.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append ai activity: %w", err)
	}

	return nil
}

// CountSince returns the total number of AI activity records since the cutoff
func (r *AIActivityRepository) CountSince(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ai_activity WHERE created_at >= $1
	`, cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ai activity: %w", err)
	}
	return count, nil
}

// CountByResultTypeSince returns per-result-type counts since the cutoff,
// e.g. how many parses produced habits vs todos vs notes.
func (r *AIActivityRepository) CountByResultTypeSince(ctx context.Context, cutoff time.Time) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT result_type, COUNT(*)
		FROM ai_activity
		WHERE created_at >= $1 AND result_type <> ''
		GROUP BY result_type
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to count ai activity by result type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var resultType string
		var count int
		if err := rows.Scan(&resultType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan ai activity count: %w", err)
		}
		counts[resultType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ai activity counts: %w", err)
	}

	return counts, nil
}
