package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/novaos-app/novaos-api/internal/habitlock"
	"github.com/novaos-app/novaos-api/internal/models"
)

func newHabitRouter(repo *mockHabitRepo) *mux.Router {
	h := NewHabitHandler(repo, habitlock.New())
	r := mux.NewRouter()
	h.RegisterRoutes(r.PathPrefix("/habits").Subrouter())
	return r
}

func decodeData(t *testing.T, body []byte, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v\nbody: %s", err, body)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("failed to decode data: %v\nbody: %s", err, body)
	}
}

func TestCreateHabit(t *testing.T) {
	t.Parallel()

	repo := newMockHabitRepo()
	router := newHabitRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/habits", strings.NewReader(`{"name":"Read 20 pages","frequency":"daily"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var habit models.Habit
	decodeData(t, rec.Body.Bytes(), &habit)
	if habit.Name != "Read 20 pages" {
		t.Errorf("Name = %q", habit.Name)
	}
	if habit.Streak != 0 {
		t.Errorf("Streak = %d, want 0", habit.Streak)
	}
	if habit.History == nil || len(habit.History) != 0 {
		t.Errorf("History = %v, want empty slice", habit.History)
	}
}

func TestCreateHabitInvalidFrequency(t *testing.T) {
	t.Parallel()

	router := newHabitRouter(newMockHabitRepo())

	req := httptest.NewRequest(http.MethodPost, "/habits", strings.NewReader(`{"name":"Stretch","frequency":"hourly"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCompleteHabitFirstTime(t *testing.T) {
	t.Parallel()

	repo := newMockHabitRepo()
	router := newHabitRouter(repo)

	id := uuid.New()
	_ = repo.Create(nil, &models.Habit{ID: id, Name: "Meditate", Frequency: models.HabitFrequencyDaily})

	req := httptest.NewRequest(http.MethodPatch, "/habits/"+id.String()+"/complete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp CompleteHabitResponse
	decodeData(t, rec.Body.Bytes(), &resp)
	if resp.Streak != 1 {
		t.Errorf("Streak = %d, want 1", resp.Streak)
	}
	if resp.Message != "" {
		t.Errorf("Message = %q, want empty on first completion", resp.Message)
	}

	stored, _ := repo.GetByID(nil, id)
	if stored.Streak != 1 || len(stored.History) != 1 {
		t.Errorf("stored habit streak=%d history=%d, want 1/1", stored.Streak, len(stored.History))
	}
}

func TestCompleteHabitSameDayIsNoOp(t *testing.T) {
	t.Parallel()

	repo := newMockHabitRepo()
	router := newHabitRouter(repo)

	id := uuid.New()
	_ = repo.Create(nil, &models.Habit{ID: id, Name: "Meditate", Frequency: models.HabitFrequencyDaily})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPatch, "/habits/"+id.String()+"/complete", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
		if i == 1 {
			var resp CompleteHabitResponse
			decodeData(t, rec.Body.Bytes(), &resp)
			if resp.Message != "Already completed today" {
				t.Errorf("Message = %q, want already-completed notice", resp.Message)
			}
			if resp.Streak != 1 {
				t.Errorf("Streak = %d, want 1 after repeat completion", resp.Streak)
			}
		}
	}

	stored, _ := repo.GetByID(nil, id)
	if stored.Streak != 1 {
		t.Errorf("stored streak = %d, want 1", stored.Streak)
	}
	if len(stored.History) != 1 {
		t.Errorf("history has %d entries, want 1", len(stored.History))
	}
}

func TestCompleteHabitNotFound(t *testing.T) {
	t.Parallel()

	router := newHabitRouter(newMockHabitRepo())

	req := httptest.NewRequest(http.MethodPatch, "/habits/"+uuid.NewString()+"/complete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestWeeklyStatusIsPlainStatusArray(t *testing.T) {
	t.Parallel()

	repo := newMockHabitRepo()
	router := newHabitRouter(repo)

	id := uuid.New()
	now := time.Now()
	_ = repo.Create(nil, &models.Habit{
		ID:        id,
		Name:      "Run",
		Frequency: models.HabitFrequencyDaily,
		History:   []models.HistoryEntry{{Date: now, Done: true}},
	})

	req := httptest.NewRequest(http.MethodGet, "/habits/"+id.String()+"/weekly", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	// The payload is a bare ordered array of status strings, not an object
	var statuses []string
	decodeData(t, rec.Body.Bytes(), &statuses)
	if len(statuses) != 7 {
		t.Fatalf("weekly view has %d entries, want 7", len(statuses))
	}

	for i, s := range statuses {
		switch models.HabitStatus(s) {
		case models.HabitStatusDone, models.HabitStatusMissed, models.HabitStatusPending:
		default:
			t.Errorf("statuses[%d] = %q, want done/missed/pending", i, s)
		}
	}

	// Monday-first ordering: today's completion lands at today's offset
	todayIdx := (int(now.Weekday()) + 6) % 7
	if statuses[todayIdx] != string(models.HabitStatusDone) {
		t.Errorf("statuses[%d] = %q, want done for today's completion", todayIdx, statuses[todayIdx])
	}
}

func TestUpdateHabitPartial(t *testing.T) {
	t.Parallel()

	repo := newMockHabitRepo()
	router := newHabitRouter(repo)

	id := uuid.New()
	_ = repo.Create(nil, &models.Habit{ID: id, Name: "Journal", Frequency: models.HabitFrequencyDaily, Streak: 4})

	req := httptest.NewRequest(http.MethodPatch, "/habits/"+id.String(), strings.NewReader(`{"name":"Evening journal"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	stored, _ := repo.GetByID(nil, id)
	if stored.Name != "Evening journal" {
		t.Errorf("Name = %q, want updated name", stored.Name)
	}
	if stored.Frequency != models.HabitFrequencyDaily {
		t.Errorf("Frequency = %q, want unchanged", stored.Frequency)
	}
	if stored.Streak != 4 {
		t.Errorf("Streak = %d, want unchanged 4", stored.Streak)
	}
}
