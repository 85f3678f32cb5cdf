// Package dates provides the calendar helpers shared by the streak engine,
// the weekly projector, and the dashboard: Monday-start week windows and
// day-granularity comparisons. All math is done in the server's local time
// zone; no time zone parameter is accepted.
package dates

import "time"

// DayKey strips the time-of-day from t, returning local midnight of the same
// calendar date. Two instants fall on the same day iff their day keys are equal.
func DayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DayKey(a).Equal(DayKey(b))
}

// WeekWindow returns the Monday-start week containing now: start is the most
// recent Monday at 00:00:00.000 on or before now (six days back when now is a
// Sunday), end is start + 6 days at 23:59:59.999.
func WeekWindow(now time.Time) (start, end time.Time) {
	diffToMonday := int(time.Monday - now.Weekday())
	if now.Weekday() == time.Sunday {
		diffToMonday = -6
	}
	start = DayKey(now).AddDate(0, 0, diffToMonday)
	end = start.AddDate(0, 0, 6).
		Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
	return start, end
}

// Days returns the seven day keys of the week window, Monday through Sunday.
func Days(start time.Time) [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
