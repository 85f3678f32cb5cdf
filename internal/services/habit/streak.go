// Package habit implements the habit streak engine and the weekly status
// projector. Both take the current time as an explicit parameter so callers
// (and tests) control the clock.
package habit

import (
	"time"

	"github.com/novaos-app/novaos-api/internal/dates"
	"github.com/novaos-app/novaos-api/internal/models"
)

// CompletionResult is the outcome of a complete operation.
type CompletionResult struct {
	Streak          int
	LastCompletedAt time.Time
	// NoOp is true when the habit was already completed today; the habit
	// is unchanged and the caller should not persist anything.
	NoOp bool
}

// Complete applies a completion event to the habit at time now and mutates it
// in place. The streak continues only on an exact one-day gap since the last
// completion; a same-day repeat is an idempotent no-op, and any other gap
// (never completed, two or more days, or a last completion in the future)
// resets the streak to 1. The streak is a forward-only counter: it is never
// recomputed from history.
func Complete(h *models.Habit, now time.Time) CompletionResult {
	today := dates.DayKey(now)

	if h.LastCompletedAt != nil {
		last := dates.DayKey(*h.LastCompletedAt)

		// Same-day check must precede the one-day check.
		if last.Equal(today) {
			return CompletionResult{
				Streak:          h.Streak,
				LastCompletedAt: *h.LastCompletedAt,
				NoOp:            true,
			}
		}

		if last.AddDate(0, 0, 1).Equal(today) {
			h.Streak++
		} else {
			h.Streak = 1
		}
	} else {
		h.Streak = 1
	}

	h.LastCompletedAt = &today

	// Guard against a double append on retried requests. The no-op branch
	// above already returned, so this only matters for a history entry
	// written by some earlier request that never set last_completed_at.
	if h.HistoryEntryFor(today) == nil {
		h.History = append(h.History, models.HistoryEntry{Date: today, Done: true})
	}

	return CompletionResult{
		Streak:          h.Streak,
		LastCompletedAt: today,
	}
}
