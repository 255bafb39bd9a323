package tasks

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

//go:embed fixtures/tasks.json
var seedTasks []byte

// fixtureTask describes a sample task relative to the seeding day, so the
// views have something to show whenever the program starts.
type fixtureTask struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Priority         models.Priority `json:"priority"`
	DueInDays        int             `json:"dueInDays"`
	CreatedDaysAgo   int             `json:"createdDaysAgo"`
	CompletedDaysAgo *int            `json:"completedDaysAgo"`
}

// ParseFixture decodes a task fixture and anchors it at now.
func ParseFixture(data []byte, now time.Time) ([]models.Task, error) {
	var raw []fixtureTask
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse task fixture: %w", err)
	}

	today := timex.StartOfDay(now)
	out := make([]models.Task, 0, len(raw))
	for i, ft := range raw {
		if !ft.Priority.Valid() {
			return nil, fmt.Errorf("task fixture #%d: unknown priority %q", i, ft.Priority)
		}
		t := models.Task{
			Title:       ft.Title,
			Description: ft.Description,
			Priority:    ft.Priority,
			DueDate:     timex.AddDays(today, ft.DueInDays),
			CreatedAt:   timex.AddDays(now, -ft.CreatedDaysAgo),
		}
		if ft.CompletedDaysAgo != nil {
			t.SetCompleted(true, timex.AddDays(now, -*ft.CompletedDaysAgo))
		}
		out = append(out, t)
	}
	return out, nil
}

// Seed inserts the embedded sample tasks and returns how many were added.
func Seed(ctx context.Context, repo Repository, now time.Time) (int, error) {
	list, err := ParseFixture(seedTasks, now)
	if err != nil {
		return 0, err
	}
	for i := range list {
		if _, err := repo.Create(ctx, &list[i]); err != nil {
			return i, fmt.Errorf("failed to seed tasks: %w", err)
		}
	}
	return len(list), nil
}
