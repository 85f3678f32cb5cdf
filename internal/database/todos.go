package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/novaos-app/novaos-api/internal/models"
)

// TodoRepository handles todo database operations
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create creates a new todo
func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (id, text, done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		todo.ID,
		todo.Text,
		todo.Done,
		now,
		now,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// GetByID retrieves a todo by ID. Returns nil when no todo exists.
func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	todo := &models.Todo{}

	query := `
		SELECT id, text, done, created_at, updated_at
		FROM todos
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID,
		&todo.Text,
		&todo.Done,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// List retrieves all todos, newest first
func (r *TodoRepository) List(ctx context.Context) ([]*models.Todo, error) {
	query := `
		SELECT id, text, done, created_at, updated_at
		FROM todos
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		todo := &models.Todo{}
		err := rows.Scan(
			&todo.ID,
			&todo.Text,
			&todo.Done,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// Update updates an existing todo
func (r *TodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	query := `
		UPDATE todos
		SET text = $2, done = $3, updated_at = $4
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		todo.ID,
		todo.Text,
		todo.Done,
		time.Now(),
	).Scan(&todo.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("todo not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	return nil
}

// Delete deletes a todo by ID
func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("todo not found")
	}

	return nil
}

// Count returns the total number of todos
func (r *TodoRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return count, nil
}

// CountDone returns the number of completed todos
func (r *TodoRepository) CountDone(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE done = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count done todos: %w", err)
	}
	return count, nil
}

// CountDoneInWindow returns the number of completed todos whose last update
// falls within [start, end]. The update timestamp approximates completion
// time since completion is the final mutation in the common flow.
func (r *TodoRepository) CountDoneInWindow(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM todos
		WHERE done = TRUE AND updated_at >= $1 AND updated_at <= $2
	`, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count done todos in window: %w", err)
	}
	return count, nil
}
