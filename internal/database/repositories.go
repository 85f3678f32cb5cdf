package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/novaos-app/novaos-api/internal/models"
)

// HabitRepositoryInterface defines the interface for habit repository operations
// This interface enables better testability by allowing mock implementations
type HabitRepositoryInterface interface {
	Create(ctx context.Context, habit *models.Habit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Habit, error)
	List(ctx context.Context) ([]*models.Habit, error)
	Update(ctx context.Context, habit *models.Habit) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountCompletedInWindow(ctx context.Context, start, end time.Time) (int, error)
	CountDoneOn(ctx context.Context, t time.Time) (int, error)
	BestStreak(ctx context.Context) (int, error)
}

// TodoRepositoryInterface defines the interface for todo repository operations
type TodoRepositoryInterface interface {
	Create(ctx context.Context, todo *models.Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Todo, error)
	List(ctx context.Context) ([]*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountDone(ctx context.Context) (int, error)
	CountDoneInWindow(ctx context.Context, start, end time.Time) (int, error)
}

// NoteRepositoryInterface defines the interface for note repository operations
type NoteRepositoryInterface interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountCreatedInWindow(ctx context.Context, start, end time.Time) (int, error)
}

// AIActivityRepositoryInterface defines the interface for the AI activity log
type AIActivityRepositoryInterface interface {
	Append(ctx context.Context, activity *models.AIActivity) error
	CountSince(ctx context.Context, cutoff time.Time) (int, error)
	CountByResultTypeSince(ctx context.Context, cutoff time.Time) (map[string]int, error)
}

// Ensure concrete types implement the interfaces
var (
	_ HabitRepositoryInterface      = (*HabitRepository)(nil)
	_ TodoRepositoryInterface       = (*TodoRepository)(nil)
	_ NoteRepositoryInterface       = (*NoteRepository)(nil)
	_ AIActivityRepositoryInterface = (*AIActivityRepository)(nil)
)
