package habit

import (
	"testing"
	"time"

	"github.com/novaos-app/novaos-api/internal/models"
)

func TestWeeklyStatus(t *testing.T) {
	t.Parallel()

	// Week of Mon 2024-03-18 .. Sun 2024-03-24, viewed Wednesday afternoon.
	now := time.Date(2024, 3, 20, 14, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		history []models.HistoryEntry
		want    [7]models.HabitStatus
	}{
		{
			name:    "no history: past days missed, rest pending",
			history: nil,
			want: [7]models.HabitStatus{
				models.HabitStatusMissed,  // Mon
				models.HabitStatusMissed,  // Tue
				models.HabitStatusPending, // Wed (today, not completed)
				models.HabitStatusPending,
				models.HabitStatusPending,
				models.HabitStatusPending,
				models.HabitStatusPending,
			},
		},
		{
			name: "entries override both past and today",
			history: []models.HistoryEntry{
				{Date: day(2024, 3, 18), Done: true},
				{Date: day(2024, 3, 19), Done: false},
				{Date: day(2024, 3, 20), Done: true},
			},
			want: [7]models.HabitStatus{
				models.HabitStatusDone,
				models.HabitStatusMissed, // explicit done=false entry
				models.HabitStatusDone,   // today completed
				models.HabitStatusPending,
				models.HabitStatusPending,
				models.HabitStatusPending,
				models.HabitStatusPending,
			},
		},
		{
			name: "a future entry is reflected as-is",
			history: []models.HistoryEntry{
				{Date: day(2024, 3, 22), Done: true}, // Friday, backfilled
			},
			want: [7]models.HabitStatus{
				models.HabitStatusMissed,
				models.HabitStatusMissed,
				models.HabitStatusPending,
				models.HabitStatusPending,
				models.HabitStatusDone,
				models.HabitStatusPending,
				models.HabitStatusPending,
			},
		},
		{
			name: "entries outside the window are ignored",
			history: []models.HistoryEntry{
				{Date: day(2024, 3, 11), Done: true}, // previous Monday
				{Date: day(2024, 3, 25), Done: true}, // next Monday
			},
			want: [7]models.HabitStatus{
				models.HabitStatusMissed,
				models.HabitStatusMissed,
				models.HabitStatusPending,
				models.HabitStatusPending,
				models.HabitStatusPending,
				models.HabitStatusPending,
				models.HabitStatusPending,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHabit(0, nil, tt.history...)
			got := WeeklyStatus(h, now)
			if got != tt.want {
				t.Errorf("WeeklyStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklyStatusOnSunday(t *testing.T) {
	t.Parallel()

	// Sunday evening: Monday..Saturday are past, Sunday itself still pending.
	now := time.Date(2024, 3, 24, 20, 0, 0, 0, time.Local)

	h := newHabit(0, nil, models.HistoryEntry{Date: day(2024, 3, 21), Done: true})
	got := WeeklyStatus(h, now)

	want := [7]models.HabitStatus{
		models.HabitStatusMissed,
		models.HabitStatusMissed,
		models.HabitStatusMissed,
		models.HabitStatusDone, // Thursday
		models.HabitStatusMissed,
		models.HabitStatusMissed,
		models.HabitStatusPending, // today
	}
	if got != want {
		t.Errorf("WeeklyStatus() = %v, want %v", got, want)
	}
}

func TestWeeklyStatusAlwaysSevenEntries(t *testing.T) {
	t.Parallel()

	h := newHabit(0, nil)
	for d := 0; d < 7; d++ {
		now := time.Date(2024, 3, 18+d, 12, 0, 0, 0, time.Local)
		week := WeeklyStatus(h, now)
		for i, s := range week {
			if s == "" {
				t.Errorf("day offset %d: slot %d has empty status", d, i)
			}
		}
	}
}
