package views

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// Group is one date bucket of a grouped view.
type Group struct {
	Key   string
	Date  time.Time
	Tasks []models.Task
}

const longDateLayout = "Jan 2, 2006"

// UpcomingKey labels a due date relative to now: "Tomorrow", a weekday name
// for dates within the next 7 days, otherwise the date itself.
func UpcomingKey(due, now time.Time) string {
	switch {
	case timex.SameDay(timex.AddDays(now, 1), due):
		return "Tomorrow"
	case !due.After(timex.AddDays(now, 7)):
		return due.Weekday().String()
	default:
		return due.Format(longDateLayout)
	}
}

// GroupUpcoming buckets tasks by UpcomingKey. Groups come out in ascending
// due-date order and the tasks inside each group are sorted by CompareTasks.
func GroupUpcoming(tasks []models.Task, now time.Time) []Group {
	groups := bucket(tasks, func(t models.Task) (string, time.Time) {
		return UpcomingKey(t.DueDate, now), t.DueDate
	})
	slices.SortStableFunc(groups, func(a, b Group) int { return a.Date.Compare(b.Date) })
	for i := range groups {
		slices.SortStableFunc(groups[i].Tasks, CompareTasks)
	}
	return groups
}

// Period restricts the completed view to a completion time window.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
)

// ParsePeriod parses a completed-view period; the empty string means all.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodToday, PeriodYesterday, PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// InPeriod reports whether t was completed within p as seen at now. Week and
// month are the trailing 7 and 30 days.
func (p Period) InPeriod(t models.Task, now time.Time) bool {
	if t.CompletedAt == nil {
		return false
	}
	at := *t.CompletedAt
	switch p {
	case PeriodToday:
		return timex.SameDay(now, at)
	case PeriodYesterday:
		return timex.SameDay(timex.AddDays(now, -1), at)
	case PeriodWeek:
		return !at.Before(timex.AddDays(now, -7))
	case PeriodMonth:
		return !at.Before(timex.AddDays(now, -30))
	default:
		return true
	}
}

// FilterPeriod keeps the tasks completed within p.
func FilterPeriod(tasks []models.Task, p Period, now time.Time) []models.Task {
	return Select(tasks, func(t models.Task) bool { return p.InPeriod(t, now) })
}

// CompletedKey labels a completion time: "Today", "Yesterday" or the date.
func CompletedKey(at, now time.Time) string {
	switch {
	case timex.SameDay(now, at):
		return "Today"
	case timex.SameDay(timex.AddDays(now, -1), at):
		return "Yesterday"
	default:
		return at.Format(longDateLayout)
	}
}

// GroupCompleted buckets completed tasks by CompletedKey, newest group first,
// newest completion first within a group. Tasks without a completion time
// are skipped.
func GroupCompleted(tasks []models.Task, now time.Time) []Group {
	done := Select(tasks, func(t models.Task) bool { return t.CompletedAt != nil })
	groups := bucket(done, func(t models.Task) (string, time.Time) {
		at := t.CompletedAt.In(now.Location())
		return CompletedKey(at, now), timex.StartOfDay(at)
	})
	slices.SortStableFunc(groups, func(a, b Group) int { return b.Date.Compare(a.Date) })
	for i := range groups {
		slices.SortStableFunc(groups[i].Tasks, compareCompletion)
	}
	return groups
}

// Flatten concatenates the tasks of all groups in order.
func Flatten(groups []Group) []models.Task {
	var out []models.Task
	for _, g := range groups {
		out = append(out, g.Tasks...)
	}
	return out
}

// bucket groups tasks by key, keeping first-seen key order. Date is the
// earliest date seen for the key.
func bucket(tasks []models.Task, keyOf func(models.Task) (string, time.Time)) []Group {
	var groups []Group
	index := map[string]int{}
	for _, t := range tasks {
		key, date := keyOf(t)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Date: date})
		}
		if date.Before(groups[i].Date) {
			groups[i].Date = date
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	return groups
}

func completedAt(t models.Task) time.Time {
	if t.CompletedAt == nil {
		return time.Time{}
	}
	return *t.CompletedAt
}
