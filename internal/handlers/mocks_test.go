package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/novaos-app/novaos-api/internal/models"
	"github.com/novaos-app/novaos-api/internal/queue"
)

// mockHabitRepo is an in-memory habit repository
type mockHabitRepo struct {
	mu     sync.Mutex
	habits map[uuid.UUID]*models.Habit
}

func newMockHabitRepo() *mockHabitRepo {
	return &mockHabitRepo{habits: make(map[uuid.UUID]*models.Habit)}
}

func (m *mockHabitRepo) Create(_ context.Context, h *models.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	copied := *h
	m.habits[h.ID] = &copied
	return nil
}

func (m *mockHabitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.habits[id]
	if !ok {
		return nil, nil
	}
	copied := *h
	copied.History = append([]models.HistoryEntry(nil), h.History...)
	if h.LastCompletedAt != nil {
		t := *h.LastCompletedAt
		copied.LastCompletedAt = &t
	}
	return &copied, nil
}

func (m *mockHabitRepo) List(_ context.Context) ([]*models.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Habit, 0, len(m.habits))
	for _, h := range m.habits {
		copied := *h
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockHabitRepo) Update(_ context.Context, h *models.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.UpdatedAt = time.Now()
	copied := *h
	copied.History = append([]models.HistoryEntry(nil), h.History...)
	m.habits[h.ID] = &copied
	return nil
}

func (m *mockHabitRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.habits, id)
	return nil
}

func (m *mockHabitRepo) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.habits), nil
}

func (m *mockHabitRepo) CountCompletedInWindow(_ context.Context, start, end time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.habits {
		if h.LastCompletedAt != nil && !h.LastCompletedAt.Before(start) && !h.LastCompletedAt.After(end) {
			n++
		}
	}
	return n, nil
}

func (m *mockHabitRepo) CountDoneOn(_ context.Context, t time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	y, mo, d := t.Date()
	n := 0
	for _, h := range m.habits {
		if h.LastCompletedAt == nil {
			continue
		}
		hy, hm, hd := h.LastCompletedAt.Date()
		if hy == y && hm == mo && hd == d {
			n++
		}
	}
	return n, nil
}

func (m *mockHabitRepo) BestStreak(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	best := 0
	for _, h := range m.habits {
		if h.Streak > best {
			best = h.Streak
		}
	}
	return best, nil
}

// mockTodoRepo is an in-memory todo repository
type mockTodoRepo struct {
	mu    sync.Mutex
	todos map[uuid.UUID]*models.Todo
}

func newMockTodoRepo() *mockTodoRepo {
	return &mockTodoRepo{todos: make(map[uuid.UUID]*models.Todo)}
}

func (m *mockTodoRepo) Create(_ context.Context, t *models.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	copied := *t
	m.todos[t.ID] = &copied
	return nil
}

func (m *mockTodoRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (m *mockTodoRepo) List(context.Context) ([]*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Todo, 0, len(m.todos))
	for _, t := range m.todos {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockTodoRepo) Update(_ context.Context, t *models.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.UpdatedAt = time.Now()
	copied := *t
	m.todos[t.ID] = &copied
	return nil
}

func (m *mockTodoRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.todos, id)
	return nil
}

func (m *mockTodoRepo) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.todos), nil
}

func (m *mockTodoRepo) CountDone(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.todos {
		if t.Done {
			n++
		}
	}
	return n, nil
}

func (m *mockTodoRepo) CountDoneInWindow(_ context.Context, start, end time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.todos {
		if t.Done && !t.UpdatedAt.Before(start) && !t.UpdatedAt.After(end) {
			n++
		}
	}
	return n, nil
}

// mockNoteRepo is an in-memory note repository
type mockNoteRepo struct {
	mu    sync.Mutex
	notes map[uuid.UUID]*models.Note
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[uuid.UUID]*models.Note)}
}

func (m *mockNoteRepo) Create(_ context.Context, n *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	copied := *n
	m.notes[n.ID] = &copied
	return nil
}

func (m *mockNoteRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return nil, nil
	}
	copied := *n
	return &copied, nil
}

func (m *mockNoteRepo) List(context.Context) ([]*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Note, 0, len(m.notes))
	for _, n := range m.notes {
		copied := *n
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockNoteRepo) UpdateSummary(_ context.Context, id uuid.UUID, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return nil
	}
	n.Summary = summary
	n.UpdatedAt = time.Now()
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.notes, id)
	return nil
}

func (m *mockNoteRepo) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notes), nil
}

func (m *mockNoteRepo) CountCreatedInWindow(_ context.Context, start, end time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, note := range m.notes {
		if !note.CreatedAt.Before(start) && !note.CreatedAt.After(end) {
			n++
		}
	}
	return n, nil
}

// mockActivityRepo is an in-memory AI activity log
type mockActivityRepo struct {
	mu         sync.Mutex
	activities []*models.AIActivity
}

func (m *mockActivityRepo) Append(_ context.Context, a *models.AIActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.CreatedAt = time.Now()
	copied := *a
	m.activities = append(m.activities, &copied)
	return nil
}

func (m *mockActivityRepo) CountSince(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.activities {
		if !a.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

func (m *mockActivityRepo) CountByResultTypeSince(_ context.Context, cutoff time.Time) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, a := range m.activities {
		if !a.CreatedAt.Before(cutoff) && a.ResultType != "" {
			counts[a.ResultType]++
		}
	}
	return counts, nil
}

// mockJobQueue records enqueued jobs
type mockJobQueue struct {
	mu         sync.Mutex
	enqueued   []*queue.Job
	enqueueErr error
}

func (m *mockJobQueue) Enqueue(_ context.Context, job *queue.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	m.enqueued = append(m.enqueued, job)
	return nil
}

func (m *mockJobQueue) Consume(context.Context, int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, nil
}

func (m *mockJobQueue) Close() error                      { return nil }
func (m *mockJobQueue) HealthCheck(context.Context) error { return nil }
