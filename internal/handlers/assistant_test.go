package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/novaos-app/novaos-api/internal/models"
	"github.com/novaos-app/novaos-api/internal/services/ai"
)

// mockProvider is a scriptable AI provider
type mockProvider struct {
	classifyFunc  func(ctx context.Context, input string) (*ai.Classification, error)
	suggestFunc   func(ctx context.Context, query string) (string, error)
	summarizeFunc func(ctx context.Context, content string) (string, error)
}

func (m *mockProvider) Classify(ctx context.Context, input string) (*ai.Classification, error) {
	if m.classifyFunc != nil {
		return m.classifyFunc(ctx, input)
	}
	return ai.Unknown(), nil
}

func (m *mockProvider) Suggest(ctx context.Context, query string) (string, error) {
	if m.suggestFunc != nil {
		return m.suggestFunc(ctx, query)
	}
	return "Answer:\nstub", nil
}

func (m *mockProvider) Summarize(ctx context.Context, content string) (string, error) {
	if m.summarizeFunc != nil {
		return m.summarizeFunc(ctx, content)
	}
	return "- stub summary", nil
}

type assistantFixture struct {
	router    *mux.Router
	habits    *mockHabitRepo
	todos     *mockTodoRepo
	notes     *mockNoteRepo
	activity  *mockActivityRepo
}

func newAssistantFixture(provider ai.Provider) *assistantFixture {
	f := &assistantFixture{
		habits:   newMockHabitRepo(),
		todos:    newMockTodoRepo(),
		notes:    newMockNoteRepo(),
		activity: &mockActivityRepo{},
	}
	h := NewAssistantHandler(provider, f.habits, f.todos, f.notes, f.activity, zap.NewNop())
	f.router = mux.NewRouter()
	h.RegisterRoutes(f.router.PathPrefix("/ai").Subrouter())
	return f
}

func TestParseTaskCreatesHabit(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		classifyFunc: func(_ context.Context, input string) (*ai.Classification, error) {
			return &ai.Classification{Type: ai.IntentHabit, Text: input, Frequency: "weekly"}, nil
		},
	}
	f := newAssistantFixture(provider)

	req := httptest.NewRequest(http.MethodPost, "/ai/parse-task", strings.NewReader(`{"input":"review finances every sunday"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var c ai.Classification
	decodeData(t, rec.Body.Bytes(), &c)
	if c.Type != ai.IntentHabit {
		t.Errorf("Type = %q, want habit", c.Type)
	}

	habits, _ := f.habits.List(context.Background())
	if len(habits) != 1 {
		t.Fatalf("created %d habits, want 1", len(habits))
	}
	if habits[0].Frequency != models.HabitFrequencyWeekly {
		t.Errorf("Frequency = %q, want weekly", habits[0].Frequency)
	}

	if len(f.activity.activities) != 1 || f.activity.activities[0].Action != "habit_created" {
		t.Errorf("activity log = %+v, want one habit_created record", f.activity.activities)
	}
}

func TestParseTaskProviderFailureDegradesToUnknown(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		classifyFunc: func(context.Context, string) (*ai.Classification, error) {
			return nil, errors.New("provider exploded")
		},
	}
	f := newAssistantFixture(provider)

	req := httptest.NewRequest(http.MethodPost, "/ai/parse-task", strings.NewReader(`{"input":"do something"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite provider failure", rec.Code)
	}

	var c ai.Classification
	decodeData(t, rec.Body.Bytes(), &c)
	if c.Type != ai.IntentUnknown {
		t.Errorf("Type = %q, want unknown", c.Type)
	}

	todos, _ := f.todos.List(context.Background())
	habits, _ := f.habits.List(context.Background())
	if len(todos)+len(habits) != 0 {
		t.Error("entities were created despite unknown classification")
	}
}

func TestParseTaskEmptyInput(t *testing.T) {
	t.Parallel()

	f := newAssistantFixture(&mockProvider{
		classifyFunc: func(context.Context, string) (*ai.Classification, error) {
			t.Error("provider called for empty input")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ai/parse-task", strings.NewReader(`{"input":"   "}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var c ai.Classification
	decodeData(t, rec.Body.Bytes(), &c)
	if c.Type != ai.IntentUnknown {
		t.Errorf("Type = %q, want unknown for empty input", c.Type)
	}
}

func TestInsightsCounts(t *testing.T) {
	t.Parallel()

	f := newAssistantFixture(&mockProvider{})
	ctx := context.Background()
	_ = f.activity.Append(ctx, &models.AIActivity{ID: uuid.New(), Type: models.AIActivityTypeParse, Action: "habit_created", ResultType: "habit"})
	_ = f.activity.Append(ctx, &models.AIActivity{ID: uuid.New(), Type: models.AIActivityTypeParse, Action: "todo_created", ResultType: "todo"})
	_ = f.activity.Append(ctx, &models.AIActivity{ID: uuid.New(), Type: models.AIActivityTypeSuggestion, Action: "suggestion_generated"})

	req := httptest.NewRequest(http.MethodGet, "/ai/insights", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var insights models.AIInsights
	decodeData(t, rec.Body.Bytes(), &insights)
	if insights.Usage != 3 {
		t.Errorf("Usage = %d, want 3", insights.Usage)
	}
	if insights.Habits != 1 || insights.Todos != 1 || insights.Notes != 0 {
		t.Errorf("per-type counts = %+v, want habits=1 todos=1 notes=0", insights)
	}
}

func TestSuggestRateLimited(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		suggestFunc: func(context.Context, string) (string, error) {
			return "", &ai.APIError{StatusCode: 429, Type: "rate_limit_error", Message: "slow down"}
		},
	}
	f := newAssistantFixture(provider)

	req := httptest.NewRequest(http.MethodPost, "/ai/suggest", strings.NewReader(`{"query":"how do I focus?"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestSummarizePersistsSummary(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		summarizeFunc: func(_ context.Context, content string) (string, error) {
			return "- packed bags\n- booked flights", nil
		},
	}
	f := newAssistantFixture(provider)

	noteID := uuid.New()
	_ = f.notes.Create(context.Background(), &models.Note{ID: noteID, Content: "packed bags and booked flights for the trip"})

	req := httptest.NewRequest(http.MethodPost, "/ai/summarize", strings.NewReader(`{"note_id":"`+noteID.String()+`"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp SummarizeResponse
	decodeData(t, rec.Body.Bytes(), &resp)
	if resp.NoteID != noteID {
		t.Errorf("NoteID = %v, want %v", resp.NoteID, noteID)
	}

	stored, _ := f.notes.GetByID(context.Background(), noteID)
	if stored.Summary != "- packed bags\n- booked flights" {
		t.Errorf("stored summary = %q, want persisted summary", stored.Summary)
	}
}

func TestSummarizeProviderFailureLeavesNoteUnchanged(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{
		summarizeFunc: func(context.Context, string) (string, error) {
			return "", errors.New("upstream timeout")
		},
	}
	f := newAssistantFixture(provider)

	noteID := uuid.New()
	_ = f.notes.Create(context.Background(), &models.Note{ID: noteID, Content: "some content"})

	req := httptest.NewRequest(http.MethodPost, "/ai/summarize", strings.NewReader(`{"note_id":"`+noteID.String()+`"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	stored, _ := f.notes.GetByID(context.Background(), noteID)
	if stored.Summary != "" {
		t.Errorf("Summary = %q, want unchanged empty", stored.Summary)
	}
}

func TestSummarizeNoteNotFound(t *testing.T) {
	t.Parallel()

	f := newAssistantFixture(&mockProvider{})

	req := httptest.NewRequest(http.MethodPost, "/ai/summarize", strings.NewReader(`{"note_id":"`+uuid.NewString()+`"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
