package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/novaos-app/novaos-api/internal/database"
	"github.com/novaos-app/novaos-api/internal/habitlock"
	"github.com/novaos-app/novaos-api/internal/models"
	"github.com/novaos-app/novaos-api/internal/services/habit"
	"github.com/novaos-app/novaos-api/internal/validation"
)

const (
	// MaxHabitNameLength is the maximum length for habit names
	MaxHabitNameLength = 500
)

// HabitHandler handles habit-related requests
type HabitHandler struct {
	habitRepo database.HabitRepositoryInterface
	locks     *habitlock.Locker
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habitRepo database.HabitRepositoryInterface, locks *habitlock.Locker) *HabitHandler {
	return &HabitHandler{habitRepo: habitRepo, locks: locks}
}

// RegisterRoutes registers habit routes on the given router
// The router should already have the /habits prefix
func (h *HabitHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListHabits).Methods("GET")
	r.HandleFunc("", h.CreateHabit).Methods("POST")
	r.HandleFunc("/{id}", h.GetHabit).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateHabit).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteHabit).Methods("DELETE")
	r.HandleFunc("/{id}/complete", h.CompleteHabit).Methods("PATCH")
	r.HandleFunc("/{id}/weekly", h.WeeklyStatus).Methods("GET")
}

// CreateHabitRequest represents a create habit request
type CreateHabitRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=500"`
	Frequency string `json:"frequency,omitempty" validate:"omitempty,habit_frequency"`
}

// UpdateHabitRequest represents an update habit request. Only provided fields
// are changed; streak and history are never client-writable.
type UpdateHabitRequest struct {
	Name      *string `json:"name,omitempty"`
	Frequency *string `json:"frequency,omitempty"`
}

// CompleteHabitResponse is the payload returned by a completion
type CompleteHabitResponse struct {
	Streak          int       `json:"streak"`
	LastCompletedAt time.Time `json:"last_completed_at"`
	Message         string    `json:"message,omitempty"`
}

// ListHabits lists all habits, newest first
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := h.habitRepo.List(r.Context())
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve habits")
		return
	}

	if habits == nil {
		habits = []*models.Habit{}
	}
	respondJSON(w, http.StatusOK, habits)
}

// CreateHabit creates a new habit
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", fieldError.Error()))
				return
			}
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	req.Name = validation.SanitizeText(req.Name)
	if req.Name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name is required and cannot be empty after sanitization")
		return
	}

	frequency := models.HabitFrequencyDaily
	if req.Frequency != "" {
		frequency = models.HabitFrequency(req.Frequency)
	}

	habitModel := &models.Habit{
		ID:        uuid.New(),
		Name:      req.Name,
		Frequency: frequency,
		History:   []models.HistoryEntry{},
	}

	if err := h.habitRepo.Create(r.Context(), habitModel); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create habit")
		return
	}

	respondJSON(w, http.StatusCreated, habitModel)
}

// GetHabit retrieves a habit by ID
func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid habit ID")
		return
	}

	habitModel, err := h.habitRepo.GetByID(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve habit")
		return
	}
	if habitModel == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Habit not found")
		return
	}

	respondJSON(w, http.StatusOK, habitModel)
}

// UpdateHabit updates the provided fields of an existing habit
func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid habit ID")
		return
	}

	ctx := r.Context()
	habitModel, err := h.habitRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve habit")
		return
	}
	if habitModel == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Habit not found")
		return
	}

	var req UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if req.Name != nil {
		sanitized := validation.SanitizeText(*req.Name)
		if sanitized == "" {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name cannot be empty after sanitization")
			return
		}
		if len(sanitized) > MaxHabitNameLength {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Name exceeds maximum length of %d characters", MaxHabitNameLength))
			return
		}
		habitModel.Name = sanitized
	}
	if req.Frequency != nil {
		if err := validation.ValidateHabitFrequency(*req.Frequency); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		habitModel.Frequency = models.HabitFrequency(*req.Frequency)
	}

	if err := h.habitRepo.Update(ctx, habitModel); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update habit")
		return
	}

	respondJSON(w, http.StatusOK, habitModel)
}

// DeleteHabit deletes a habit
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid habit ID")
		return
	}

	ctx := r.Context()
	habitModel, err := h.habitRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve habit")
		return
	}
	if habitModel == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Habit not found")
		return
	}

	if err := h.habitRepo.Delete(ctx, id); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteHabit records a completion for today. Repeat completions on the
// same day are idempotent no-ops. The habit's lock is held across the
// read-compute-write so concurrent completes cannot double-increment the
// streak.
func (h *HabitHandler) CompleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid habit ID")
		return
	}

	unlock := h.locks.Lock(id)
	defer unlock()

	ctx := r.Context()
	habitModel, err := h.habitRepo.GetByID(ctx, id)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve habit")
		return
	}
	if habitModel == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Habit not found")
		return
	}

	result := habit.Complete(habitModel, time.Now())
	if result.NoOp {
		respondJSON(w, http.StatusOK, CompleteHabitResponse{
			Streak:          result.Streak,
			LastCompletedAt: result.LastCompletedAt,
			Message:         "Already completed today",
		})
		return
	}

	if err := h.habitRepo.Update(ctx, habitModel); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save completion")
		return
	}

	respondJSON(w, http.StatusOK, CompleteHabitResponse{
		Streak:          result.Streak,
		LastCompletedAt: result.LastCompletedAt,
	})
}

// WeeklyStatus returns the Monday-through-Sunday status array for one habit,
// exactly seven entries ordered Monday first
func (h *HabitHandler) WeeklyStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid habit ID")
		return
	}

	habitModel, err := h.habitRepo.GetByID(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve habit")
		return
	}
	if habitModel == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Habit not found")
		return
	}

	statuses := habit.WeeklyStatus(habitModel, time.Now())
	respondJSON(w, http.StatusOK, statuses[:])
}
