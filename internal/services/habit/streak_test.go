package habit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/novaos-app/novaos-api/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newHabit(streak int, last *time.Time, history ...models.HistoryEntry) *models.Habit {
	return &models.Habit{
		ID:              uuid.New(),
		Name:            "Read 20 pages",
		Frequency:       models.HabitFrequencyDaily,
		Streak:          streak,
		LastCompletedAt: last,
		History:         history,
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 20, 14, 30, 0, 0, time.Local) // Wed afternoon

	tests := []struct {
		name       string
		habit      *models.Habit
		wantStreak int
		wantNoOp   bool
	}{
		{
			name:       "first ever completion starts streak at 1",
			habit:      newHabit(0, nil),
			wantStreak: 1,
		},
		{
			name: "completed yesterday continues streak",
			habit: newHabit(4, timePtr(day(2024, 3, 19)),
				models.HistoryEntry{Date: day(2024, 3, 19), Done: true}),
			wantStreak: 5,
		},
		{
			name: "already completed today is a no-op",
			habit: newHabit(5, timePtr(day(2024, 3, 20)),
				models.HistoryEntry{Date: day(2024, 3, 20), Done: true}),
			wantStreak: 5,
			wantNoOp:   true,
		},
		{
			name:       "two day gap resets to 1",
			habit:      newHabit(9, timePtr(day(2024, 3, 18))),
			wantStreak: 1,
		},
		{
			name:       "long gap resets to 1",
			habit:      newHabit(30, timePtr(day(2024, 2, 1))),
			wantStreak: 1,
		},
		{
			name:       "last completion in the future resets to 1",
			habit:      newHabit(3, timePtr(day(2024, 3, 25))),
			wantStreak: 1,
		},
		{
			name: "last completion stored with time of day still continues",
			habit: newHabit(2, timePtr(time.Date(2024, 3, 19, 22, 15, 0, 0, time.Local)),
				models.HistoryEntry{Date: day(2024, 3, 19), Done: true}),
			wantStreak: 3,
		},
		{
			name:       "same day stored with time of day is still a no-op",
			habit:      newHabit(7, timePtr(time.Date(2024, 3, 20, 8, 0, 0, 0, time.Local))),
			wantStreak: 7,
			wantNoOp:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Complete(tt.habit, now)

			if res.NoOp != tt.wantNoOp {
				t.Fatalf("Complete() NoOp = %v, want %v", res.NoOp, tt.wantNoOp)
			}
			if res.Streak != tt.wantStreak {
				t.Errorf("Complete() streak = %d, want %d", res.Streak, tt.wantStreak)
			}
			if tt.habit.Streak != tt.wantStreak {
				t.Errorf("habit.Streak = %d, want %d", tt.habit.Streak, tt.wantStreak)
			}

			if tt.wantNoOp {
				return
			}

			today := day(2024, 3, 20)
			if tt.habit.LastCompletedAt == nil || !tt.habit.LastCompletedAt.Equal(today) {
				t.Errorf("LastCompletedAt = %v, want %v", tt.habit.LastCompletedAt, today)
			}
			entry := tt.habit.HistoryEntryFor(today)
			if entry == nil || !entry.Done {
				t.Errorf("expected a done history entry for %v, got %+v", today, entry)
			}
		})
	}
}

func TestCompleteIsIdempotentWithinADay(t *testing.T) {
	t.Parallel()

	h := newHabit(0, nil)
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.Local)

	first := Complete(h, now)
	if first.NoOp || first.Streak != 1 {
		t.Fatalf("first completion: got %+v, want streak 1, no-op false", first)
	}

	second := Complete(h, now.Add(5*time.Hour))
	if !second.NoOp {
		t.Fatal("second completion on the same day should be a no-op")
	}
	if second.Streak != 1 || h.Streak != 1 {
		t.Errorf("streak after same-day repeat = %d, want 1", second.Streak)
	}
	if len(h.History) != 1 {
		t.Errorf("history length = %d, want 1 (no duplicate entry)", len(h.History))
	}
}

func TestCompleteMultiDaySequence(t *testing.T) {
	t.Parallel()

	h := newHabit(0, nil)
	start := time.Date(2024, 3, 18, 10, 0, 0, 0, time.Local)

	// Day 1: streak 1. Same day again: no-op.
	if res := Complete(h, start); res.Streak != 1 {
		t.Fatalf("day 1 streak = %d, want 1", res.Streak)
	}
	if res := Complete(h, start.Add(2*time.Hour)); !res.NoOp || res.Streak != 1 {
		t.Fatalf("day 1 repeat: got %+v, want no-op streak 1", res)
	}

	// Day 2: streak 2.
	if res := Complete(h, start.AddDate(0, 0, 1)); res.Streak != 2 {
		t.Fatalf("day 2 streak = %d, want 2", res.Streak)
	}

	// Skip two days, complete on day 5: reset to 1.
	if res := Complete(h, start.AddDate(0, 0, 4)); res.Streak != 1 {
		t.Fatalf("day 5 streak = %d, want 1 after gap", res.Streak)
	}

	if len(h.History) != 3 {
		t.Errorf("history length = %d, want 3", len(h.History))
	}
}

func TestCompleteDoesNotDuplicateExistingHistoryEntry(t *testing.T) {
	t.Parallel()

	// A history entry for today without last_completed_at can exist after a
	// partially applied earlier request; complete must not append a second one.
	today := day(2024, 3, 20)
	h := newHabit(0, nil, models.HistoryEntry{Date: today, Done: true})

	res := Complete(h, time.Date(2024, 3, 20, 16, 0, 0, 0, time.Local))
	if res.NoOp {
		t.Fatal("completion with nil LastCompletedAt must not be a no-op")
	}
	if len(h.History) != 1 {
		t.Errorf("history length = %d, want 1", len(h.History))
	}
}
