// Package dashboard computes the weekly productivity score and habit
// analytics shown on the dashboard.
package dashboard

const (
	// TodoScoreCap caps the contribution of completed todos.
	TodoScoreCap = 50
	// HabitScoreCap caps the contribution of completed habits.
	HabitScoreCap = 30
	// NoteScoreCap caps the contribution of created notes.
	NoteScoreCap = 20

	todoWeight  = 10
	habitWeight = 10
	noteWeight  = 5
)

// Score computes the weekly productivity score from the week's completed
// todos, completed habits, and created notes. Each term is weighted and
// capped (50/30/20), so the result is bounded to [0, 100] by construction.
func Score(completedTodos, completedHabits, createdNotes int) int {
	return capped(completedTodos*todoWeight, TodoScoreCap) +
		capped(completedHabits*habitWeight, HabitScoreCap) +
		capped(createdNotes*noteWeight, NoteScoreCap)
}

func capped(v, cap int) int {
	if v > cap {
		return cap
	}
	return v
}

// CompletionRate returns the percentage of habits completed today, rounded
// to the nearest integer. Zero habits yields 0, not a division by zero.
func CompletionRate(doneToday, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(doneToday)/float64(total)*100 + 0.5)
}
