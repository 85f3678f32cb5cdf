package habit

import (
	"time"

	"github.com/novaos-app/novaos-api/internal/dates"
	"github.com/novaos-app/novaos-api/internal/models"
)

// WeeklyStatus projects the habit's history onto the Monday-start week
// containing now, returning exactly seven statuses (Monday..Sunday).
//
// For each day: a history entry wins regardless of position ("done" or
// "missed" per its flag); otherwise days before today are "missed" and
// everything else is "pending". The past/future split is deliberately mixed
// granularity: "before today" compares day keys while "after now" compares
// instants, so today itself stays "pending" until completed.
func WeeklyStatus(h *models.Habit, now time.Time) [7]models.HabitStatus {
	start, _ := dates.WeekWindow(now)
	today := dates.DayKey(now)

	var week [7]models.HabitStatus
	for i, day := range dates.Days(start) {
		switch entry := h.HistoryEntryFor(day); {
		case entry != nil && entry.Done:
			week[i] = models.HabitStatusDone
		case entry != nil:
			week[i] = models.HabitStatusMissed
		case day.Before(today):
			week[i] = models.HabitStatusMissed
		default:
			week[i] = models.HabitStatusPending
		}
	}
	return week
}
