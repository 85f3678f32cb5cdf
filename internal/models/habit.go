package models

import (
	"time"

	"github.com/google/uuid"
)

// HabitFrequency represents how often a habit is meant to be performed.
// It is informational only: streak math is always day-based.
type HabitFrequency string

const (
	HabitFrequencyDaily  HabitFrequency = "daily"
	HabitFrequencyWeekly HabitFrequency = "weekly"
)

// HabitStatus is the per-day status of a habit within a week.
type HabitStatus string

const (
	HabitStatusDone    HabitStatus = "done"
	HabitStatusMissed  HabitStatus = "missed"
	HabitStatusPending HabitStatus = "pending"
)

// HistoryEntry records one calendar day of habit history.
// There is at most one entry per calendar date.
type HistoryEntry struct {
	Date time.Time `json:"date"`
	Done bool      `json:"done"`
}

// Habit represents a tracked habit with its streak and completion history.
type Habit struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Frequency       HabitFrequency `json:"frequency"`
	Streak          int            `json:"streak"`
	LastCompletedAt *time.Time     `json:"last_completed_at,omitempty"`
	History         []HistoryEntry `json:"history"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// HistoryEntryFor returns the history entry for the calendar day containing t,
// or nil if no entry exists for that day.
func (h *Habit) HistoryEntryFor(t time.Time) *HistoryEntry {
	y, m, d := t.Date()
	for i := range h.History {
		ey, em, ed := h.History[i].Date.Date()
		if ey == y && em == m && ed == d {
			return &h.History[i]
		}
	}
	return nil
}
