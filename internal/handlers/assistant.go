package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/novaos-app/novaos-api/internal/database"
	logpkg "github.com/novaos-app/novaos-api/internal/logger"
	"github.com/novaos-app/novaos-api/internal/models"
	"github.com/novaos-app/novaos-api/internal/services/ai"
	"github.com/novaos-app/novaos-api/internal/validation"
)

// insightsWindow is the trailing window for AI usage insights
const insightsWindow = 7 * 24 * time.Hour

// AssistantHandler handles AI assistant requests
type AssistantHandler struct {
	provider     ai.Provider
	habitRepo    database.HabitRepositoryInterface
	todoRepo     database.TodoRepositoryInterface
	noteRepo     database.NoteRepositoryInterface
	activityRepo database.AIActivityRepositoryInterface
	logger       *zap.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(
	provider ai.Provider,
	habitRepo database.HabitRepositoryInterface,
	todoRepo database.TodoRepositoryInterface,
	noteRepo database.NoteRepositoryInterface,
	activityRepo database.AIActivityRepositoryInterface,
	logger *zap.Logger,
) *AssistantHandler {
	return &AssistantHandler{
		provider:     provider,
		habitRepo:    habitRepo,
		todoRepo:     todoRepo,
		noteRepo:     noteRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// RegisterRoutes registers assistant routes on the given router
// The router should already have the /ai prefix
func (h *AssistantHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/parse-task", h.ParseTask).Methods("POST")
	r.HandleFunc("/insights", h.Insights).Methods("GET")
	r.HandleFunc("/suggest", h.Suggest).Methods("POST")
	r.HandleFunc("/summarize", h.Summarize).Methods("POST")
}

// ParseTaskRequest represents a parse-task request
type ParseTaskRequest struct {
	Input string `json:"input"`
}

// SuggestRequest represents a suggest request
type SuggestRequest struct {
	Query string `json:"query"`
}

// SuggestResponse carries the advisor output
type SuggestResponse struct {
	Suggestions string `json:"suggestions"`
}

// SummarizeRequest represents a summarize request
type SummarizeRequest struct {
	NoteID uuid.UUID `json:"note_id"`
}

// SummarizeResponse carries the generated note summary
type SummarizeResponse struct {
	NoteID  uuid.UUID `json:"note_id"`
	Summary string    `json:"summary"`
}

// ParseTask classifies free text and auto-creates the resulting entity.
// Classification failures never surface as errors: the client always gets a
// classification, degrading to unknown.
func (h *AssistantHandler) ParseTask(w http.ResponseWriter, r *http.Request) {
	var req ParseTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	req.Input = validation.SanitizeText(req.Input)
	if req.Input == "" {
		respondJSON(w, http.StatusOK, ai.Unknown())
		return
	}

	ctx := r.Context()
	classification, err := h.provider.Classify(ctx, req.Input)
	if err != nil {
		// Provider errors can echo model output, so sanitize before logging
		h.logger.Warn("classification_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
		respondJSON(w, http.StatusOK, ai.Unknown())
		return
	}

	switch classification.Type {
	case ai.IntentHabit:
		frequency := models.HabitFrequencyDaily
		if classification.Frequency == string(models.HabitFrequencyWeekly) {
			frequency = models.HabitFrequencyWeekly
		}
		habit := &models.Habit{
			ID:        uuid.New(),
			Name:      classification.Text,
			Frequency: frequency,
			History:   []models.HistoryEntry{},
		}
		if err := h.habitRepo.Create(ctx, habit); err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create habit")
			return
		}
		h.logActivity(ctx, models.AIActivityTypeParse, "habit_created", req.Input, "habit")

	case ai.IntentTodo:
		todo := &models.Todo{
			ID:   uuid.New(),
			Text: classification.Text,
		}
		if err := h.todoRepo.Create(ctx, todo); err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create todo")
			return
		}
		h.logActivity(ctx, models.AIActivityTypeParse, "todo_created", req.Input, "todo")

	case ai.IntentNote:
		note := &models.Note{
			ID:      uuid.New(),
			Content: classification.Text,
		}
		if err := h.noteRepo.Create(ctx, note); err != nil {
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create note")
			return
		}
		h.logActivity(ctx, models.AIActivityTypeParse, "note_created", req.Input, "note")
	}

	respondJSON(w, http.StatusOK, classification)
}

// Insights returns AI usage counts over the trailing seven days
func (h *AssistantHandler) Insights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cutoff := time.Now().Add(-insightsWindow)

	usage, err := h.activityRepo.CountSince(ctx, cutoff)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute insights")
		return
	}
	byResult, err := h.activityRepo.CountByResultTypeSince(ctx, cutoff)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to compute insights")
		return
	}

	respondJSON(w, http.StatusOK, models.AIInsights{
		Usage:  usage,
		Habits: byResult["habit"],
		Todos:  byResult["todo"],
		Notes:  byResult["note"],
	})
}

// Suggest returns productivity advice for a user question
func (h *AssistantHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	req.Query = validation.SanitizeText(req.Query)
	if req.Query == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Query is required")
		return
	}

	ctx := r.Context()
	suggestions, err := h.provider.Suggest(ctx, req.Query)
	if err != nil {
		h.respondProviderError(w, "suggestion_failed", err)
		return
	}

	h.logActivity(ctx, models.AIActivityTypeSuggestion, "suggestion_generated", req.Query, "")

	respondJSON(w, http.StatusOK, SuggestResponse{Suggestions: suggestions})
}

// Summarize generates and persists a bullet-point summary for a note
func (h *AssistantHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if req.NoteID == uuid.Nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "note_id is required")
		return
	}

	ctx := r.Context()
	note, err := h.noteRepo.GetByID(ctx, req.NoteID)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve note")
		return
	}
	if note == nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Note not found")
		return
	}

	summary, err := h.provider.Summarize(ctx, note.Content)
	if err != nil {
		h.respondProviderError(w, "summarize_failed", err)
		return
	}

	if err := h.noteRepo.UpdateSummary(ctx, note.ID, summary); err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save summary")
		return
	}

	// Result type stays empty so summaries count toward usage only, not
	// toward the created-entity buckets in insights.
	h.logActivity(ctx, models.AIActivityTypeInsight, "note_summarized", "", "")

	respondJSON(w, http.StatusOK, SummarizeResponse{NoteID: note.ID, Summary: summary})
}

// respondProviderError maps provider failures: rate limits to 429, anything
// else to a generic upstream error.
func (h *AssistantHandler) respondProviderError(w http.ResponseWriter, logMsg string, err error) {
	h.logger.Error(logMsg, zap.String("error", logpkg.SanitizeError(err)))
	if ai.IsRateLimitError(err) {
		respondJSONError(w, http.StatusTooManyRequests, "Too Many Requests", "AI provider rate limit reached, try again shortly")
		return
	}
	respondJSONError(w, http.StatusBadGateway, "Bad Gateway", "AI provider request failed")
}

// logActivity appends an AI activity record. Failures are logged, not
// surfaced: the primary operation already succeeded.
func (h *AssistantHandler) logActivity(ctx context.Context, activityType models.AIActivityType, action, sourceText, resultType string) {
	activity := &models.AIActivity{
		ID:         uuid.New(),
		Type:       activityType,
		Action:     action,
		SourceText: sourceText,
		ResultType: resultType,
	}
	if err := h.activityRepo.Append(ctx, activity); err != nil {
		h.logger.Warn("failed_to_log_ai_activity",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
