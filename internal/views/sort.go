package views

import (
	"slices"

	"github.com/dmitrijs2005/taskflow/internal/models"
)

// CompareTasks orders incomplete tasks first, then by descending priority
// rank, then newest first by creation time.
func CompareTasks(a, b models.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if d := b.Priority.Rank() - a.Priority.Rank(); d != 0 {
		return d
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

// SortTasks returns a sorted copy of tasks; see CompareTasks.
func SortTasks(tasks []models.Task) []models.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, CompareTasks)
	return out
}

// compareCompletion puts the most recently completed task first.
func compareCompletion(a, b models.Task) int {
	return completedAt(b).Compare(completedAt(a))
}
