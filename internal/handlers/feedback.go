package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/novaos-app/novaos-api/internal/queue"
	"github.com/novaos-app/novaos-api/internal/validation"
)

// FeedbackHandler accepts feedback submissions and enqueues them for email
// delivery by the worker.
type FeedbackHandler struct {
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(jobQueue queue.JobQueue, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{jobQueue: jobQueue, logger: logger}
}

// RegisterRoutes registers feedback routes on the given router
// The router should already have the /feedback prefix
func (h *FeedbackHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.SubmitFeedback).Methods("POST")
}

// FeedbackRequest represents a feedback submission
type FeedbackRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitFeedback validates and enqueues a feedback submission
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(req.Email); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	req.Message = validation.SanitizeText(req.Message)
	if err := validation.ValidateFeedbackMessage(req.Message); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	job := queue.NewFeedbackEmailJob(req.Email, req.Message)
	if err := h.jobQueue.Enqueue(r.Context(), job); err != nil {
		h.logger.Error("failed_to_enqueue_feedback",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to submit feedback")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "received",
	})
}
