package models

import (
	"time"

	"github.com/google/uuid"
)

// AIActivityType categorizes an AI assistant interaction.
type AIActivityType string

const (
	AIActivityTypeParse      AIActivityType = "parse"
	AIActivityTypeSuggestion AIActivityType = "suggestion"
	AIActivityTypeInsight    AIActivityType = "insight"
)

// AIActivity is one append-only audit record of an AI assistant action,
// e.g. "habit_created" after a parse, or "suggestion_generated".
type AIActivity struct {
	ID         uuid.UUID      `json:"id"`
	Type       AIActivityType `json:"type"`
	Action     string         `json:"action"`
	SourceText string         `json:"source_text,omitempty"`
	ResultType string         `json:"result_type,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// AIInsights aggregates AI activity counts over a trailing window.
type AIInsights struct {
	Usage  int `json:"usage"`
	Habits int `json:"habits"`
	Todos  int `json:"todos"`
	Notes  int `json:"notes"`
}
