package models

import (
	"fmt"
	"strings"
	"time"
)

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities: high=3, medium=2, low=1, anything else 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ParsePriority parses a priority name, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

// Task is a to-do item.
//
// CompletedAt is non-nil exactly when Completed is true; use SetCompleted to
// change the status so both fields move together.
type Task struct {
	ID          int64      `json:"Id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     time.Time  `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// SetCompleted sets the completion flag, stamping CompletedAt with now when
// the task becomes complete and clearing it otherwise.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	if completed == t.Completed && (t.CompletedAt != nil) == completed {
		return
	}
	t.Completed = completed
	if completed {
		at := now
		t.CompletedAt = &at
		return
	}
	t.CompletedAt = nil
}

// TaskInput carries the fields of a task to create. Zero values are replaced
// by defaults.
type TaskInput struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *time.Time
}

// TaskPatch carries optional field updates; nil means "leave unchanged".
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	DueDate     *time.Time
	Completed   *bool
}
