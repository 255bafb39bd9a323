package views

import (
	"time"

	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// Stats are the dashboard counters.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	// Overdue counts incomplete tasks due before now.
	Overdue int
	// Today counts incomplete tasks due today.
	Today int
	// ThisWeek counts incomplete tasks due no later than a week from now,
	// overdue ones included.
	ThisWeek int
}

// ComputeStats counts tasks as of now.
func ComputeStats(tasks []models.Task, now time.Time) Stats {
	weekFromNow := timex.AddDays(now, 7)

	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if IsOverdue(t, now) {
			s.Overdue++
		}
		if IsDueToday(t, now) {
			s.Today++
		}
		if !t.DueDate.After(weekFromNow) {
			s.ThisWeek++
		}
	}
	return s
}

// Category names a dashboard task list.
type Category string

const (
	CategoryToday    Category = "today"
	CategoryUpcoming Category = "upcoming"
	CategoryOverdue  Category = "overdue"
)

// upcomingPreview is how many upcoming tasks the dashboard lists.
const upcomingPreview = 5

// TasksByCategory returns the incomplete tasks of one dashboard category, in
// collection order.
func TasksByCategory(tasks []models.Task, c Category, now time.Time) []models.Task {
	switch c {
	case CategoryToday:
		return Select(tasks, func(t models.Task) bool { return !t.Completed && IsDueToday(t, now) })
	case CategoryUpcoming:
		up := Select(tasks, func(t models.Task) bool { return !t.Completed && t.DueDate.After(now) })
		if len(up) > upcomingPreview {
			up = up[:upcomingPreview]
		}
		return up
	case CategoryOverdue:
		return Select(tasks, func(t models.Task) bool { return IsOverdue(t, now) })
	default:
		return nil
	}
}

// ShortDueLabel renders a due date for compact lists: "Today", "Tomorrow"
// or "Jan 2".
func ShortDueLabel(due, now time.Time) string {
	switch {
	case timex.SameDay(now, due):
		return "Today"
	case timex.SameDay(timex.AddDays(now, 1), due):
		return "Tomorrow"
	default:
		return due.Format("Jan 2")
	}
}
