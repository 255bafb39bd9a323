package views

import (
	"time"

	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// IsDueToday reports whether t is due on now's calendar day.
func IsDueToday(t models.Task, now time.Time) bool {
	return timex.SameDay(now, t.DueDate)
}

// IsUpcoming reports whether t is due strictly after the end of today.
func IsUpcoming(t models.Task, now time.Time) bool {
	return t.DueDate.After(timex.EndOfDay(now))
}

// IsOverdue reports whether t is incomplete and its due date lies before now.
// Due dates are midnight, so a task due today is overdue for the dashboard
// once the day has started.
func IsOverdue(t models.Task, now time.Time) bool {
	return !t.Completed && t.DueDate.Before(now)
}

// TodayTasks keeps the tasks due today, completed or not.
func TodayTasks(tasks []models.Task, now time.Time) []models.Task {
	return Select(tasks, func(t models.Task) bool { return IsDueToday(t, now) })
}

// UpcomingTasks keeps the tasks due after today.
func UpcomingTasks(tasks []models.Task, now time.Time) []models.Task {
	return Select(tasks, func(t models.Task) bool { return IsUpcoming(t, now) })
}

// CompletedTasks keeps the completed tasks regardless of date.
func CompletedTasks(tasks []models.Task) []models.Task {
	return Select(tasks, func(t models.Task) bool { return t.Completed })
}
