package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/novaos-app/novaos-api/internal/database"
	"github.com/novaos-app/novaos-api/internal/dates"
	"github.com/novaos-app/novaos-api/internal/services/dashboard"
)

// DashboardHandler aggregates cross-entity counts for the dashboard views
type DashboardHandler struct {
	habitRepo database.HabitRepositoryInterface
	todoRepo  database.TodoRepositoryInterface
	noteRepo  database.NoteRepositoryInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	habitRepo database.HabitRepositoryInterface,
	todoRepo database.TodoRepositoryInterface,
	noteRepo database.NoteRepositoryInterface,
) *DashboardHandler {
	return &DashboardHandler{
		habitRepo: habitRepo,
		todoRepo:  todoRepo,
		noteRepo:  noteRepo,
	}
}

// RegisterRoutes registers dashboard routes on the given router
// The router should already have the /dashboard prefix
func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/summary", h.Summary).Methods("GET")
	r.HandleFunc("/weekly", h.Weekly).Methods("GET")
	r.HandleFunc("/habits", h.Habits).Methods("GET")
}

// SummaryResponse holds all-time entity counts
type SummaryResponse struct {
	Notes          int `json:"notes"`
	Todos          int `json:"todos"`
	CompletedTodos int `json:"completedTodos"`
	PendingTodos   int `json:"pendingTodos"`
	Habits         int `json:"habits"`
}

// WeeklyWindow is the week boundary of a weekly report
type WeeklyWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WeeklySummary holds the current week's activity counts and score
type WeeklySummary struct {
	PendingTodos      int `json:"pendingTodos"`
	CompletedTodos    int `json:"completedTodos"`
	HabitsDone        int `json:"habitsDone"`
	NotesCreated      int `json:"notesCreated"`
	ProductivityScore int `json:"productivityScore"`
}

// WeeklyResponse is the weekly dashboard report
type WeeklyResponse struct {
	Week    WeeklyWindow  `json:"week"`
	Summary WeeklySummary `json:"summary"`
}

// HabitsResponse is the habit analytics view
type HabitsResponse struct {
	TotalHabits     int `json:"totalHabits"`
	HabitsDoneToday int `json:"habitsDoneToday"`
	CompletionRate  int `json:"completionRate"`
	BestStreak      int `json:"bestStreak"`
}

// Summary returns all-time counts across notes, todos, and habits
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notes, err := h.noteRepo.Count(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute summary")
		return
	}
	todos, err := h.todoRepo.Count(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute summary")
		return
	}
	completedTodos, err := h.todoRepo.CountDone(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute summary")
		return
	}
	habits, err := h.habitRepo.Count(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute summary")
		return
	}

	respondJSON(w, http.StatusOK, SummaryResponse{
		Notes:          notes,
		Todos:          todos,
		CompletedTodos: completedTodos,
		PendingTodos:   todos - completedTodos,
		Habits:         habits,
	})
}

// Weekly returns the current week's activity report and productivity score
func (h *DashboardHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end := dates.WeekWindow(time.Now())

	completedTodos, err := h.todoRepo.CountDoneInWindow(ctx, start, end)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute weekly report")
		return
	}
	totalTodos, err := h.todoRepo.Count(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute weekly report")
		return
	}
	habitsDone, err := h.habitRepo.CountCompletedInWindow(ctx, start, end)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute weekly report")
		return
	}
	notesCreated, err := h.noteRepo.CountCreatedInWindow(ctx, start, end)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute weekly report")
		return
	}

	respondJSON(w, http.StatusOK, WeeklyResponse{
		Week: WeeklyWindow{Start: start, End: end},
		Summary: WeeklySummary{
			PendingTodos:      totalTodos - completedTodos,
			CompletedTodos:    completedTodos,
			HabitsDone:        habitsDone,
			NotesCreated:      notesCreated,
			ProductivityScore: dashboard.Score(completedTodos, habitsDone, notesCreated),
		},
	})
}

// Habits returns the habit analytics view
func (h *DashboardHandler) Habits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := h.habitRepo.Count(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute habit analytics")
		return
	}
	doneToday, err := h.habitRepo.CountDoneOn(ctx, time.Now())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute habit analytics")
		return
	}
	bestStreak, err := h.habitRepo.BestStreak(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute habit analytics")
		return
	}

	respondJSON(w, http.StatusOK, HabitsResponse{
		TotalHabits:     total,
		HabitsDoneToday: doneToday,
		CompletionRate:  dashboard.CompletionRate(doneToday, total),
		BestStreak:      bestStreak,
	})
}
