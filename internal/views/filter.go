// Package views derives what each TaskFlow screen shows from the raw task
// collection: status/priority filters, the today/upcoming/completed
// partitions, date grouping, ordering and dashboard statistics. It also holds
// the page controllers that load tasks, re-derive after every mutation and
// dispatch changes to the task service.
//
// Everything that depends on "now" takes it as an argument; calendar days
// are judged in now's location.
package views

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskflow/internal/models"
)

// Status selects tasks by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ParseStatus parses a status filter name.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAll, StatusActive, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// PriorityAll disables the priority filter.
const PriorityAll models.Priority = "all"

// ParsePriorityFilter parses a priority filter: "all" or a priority name.
func ParsePriorityFilter(s string) (models.Priority, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(PriorityAll)) {
		return PriorityAll, nil
	}
	return models.ParsePriority(s)
}

// Filter is the conjunction of a status and a priority condition. The zero
// value matches everything.
type Filter struct {
	Status   Status
	Priority models.Priority
}

// Matches reports whether t passes both conditions.
func (f Filter) Matches(t models.Task) bool {
	switch f.Status {
	case StatusActive:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if f.Priority != "" && f.Priority != PriorityAll && t.Priority != f.Priority {
		return false
	}
	return true
}

// Apply returns the tasks that match f, in their original order.
func (f Filter) Apply(tasks []models.Task) []models.Task {
	return Select(tasks, f.Matches)
}

func (f Filter) String() string {
	st, pr := f.Status, f.Priority
	if st == "" {
		st = StatusAll
	}
	if pr == "" {
		pr = PriorityAll
	}
	return fmt.Sprintf("status=%s priority=%s", st, pr)
}

// Select returns the tasks for which keep is true, in order.
func Select(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
