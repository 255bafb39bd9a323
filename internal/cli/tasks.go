package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/timex"
	"github.com/dmitrijs2005/taskflow/internal/views"
)

func (a *App) Dashboard(ctx context.Context) error { return a.show(ctx, ScreenDashboard) }
func (a *App) Today(ctx context.Context) error     { return a.show(ctx, ScreenToday) }
func (a *App) Upcoming(ctx context.Context) error  { return a.show(ctx, ScreenUpcoming) }

// Completed shows the completed view, optionally switching its period.
func (a *App) Completed(ctx context.Context, args []string) error {
	if len(args) > 0 {
		p, err := views.ParsePeriod(args[0])
		if err != nil {
			return invalid("Period must be all, today, yesterday, week or month")
		}
		a.completed.Period = p
	}
	return a.show(ctx, ScreenCompleted)
}

// Filter sets the status and priority filter of the today or upcoming view.
func (a *App) Filter(_ context.Context, args []string) error {
	var f *views.Filter
	switch a.screen {
	case ScreenToday:
		f = &a.today.Filter
	case ScreenUpcoming:
		f = &a.upcoming.Filter
	default:
		return invalid("Filters apply to the today and upcoming views")
	}
	if len(args) == 0 {
		return invalid("Usage: filter <all|active|completed> [all|low|medium|high]")
	}

	status, err := views.ParseStatus(args[0])
	if err != nil {
		return invalid("Status must be all, active or completed")
	}
	priority := f.Priority
	if len(args) > 1 {
		if priority, err = views.ParsePriorityFilter(args[1]); err != nil {
			return invalid("Priority must be all, low, medium or high")
		}
	}

	*f = views.Filter{Status: status, Priority: priority}
	a.render()
	return nil
}

// Add creates a task through the current view, or through Today when the
// current view cannot create tasks.
func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		return invalid("Title is required")
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	priorityText, err := GetSimpleText(a.reader, "Priority (low/medium/high) [medium]", a.out)
	if err != nil {
		return err
	}
	priority, err := parsePriority(priorityText)
	if err != nil {
		return err
	}
	dueText, err := GetSimpleText(a.reader, "Due date (today, tomorrow, +N days or YYYY-MM-DD) [default for this view]", a.out)
	if err != nil {
		return err
	}
	due, err := parseDueDate(dueText, a.clock.Now())
	if err != nil {
		return err
	}

	in := models.TaskInput{Title: title, Description: description, Priority: priority, DueDate: due}

	creator, onScreen := a.page(a.screen).(taskCreator)
	if !onScreen {
		creator = a.today
	}
	t, err := creator.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task #%d created, due %s.\n", t.ID, timex.FormatDate(t.DueDate))
	if onScreen {
		a.render()
		return nil
	}
	return a.show(ctx, a.screen)
}

// Edit prompts for new field values; blank answers keep the current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	page := a.page(a.screen)
	current, ok := findTask(page.All(), id)
	if !ok {
		return fmt.Errorf("task #%d %w on this view", id, common.ErrNotFound)
	}

	var patch models.TaskPatch
	if title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out); err != nil {
		return err
	} else if title != "" && title != current.Title {
		patch.Title = &title
	}
	if desc, err := GetSimpleText(a.reader, fmt.Sprintf("Description [%s] (type - to clear)", current.Description), a.out); err != nil {
		return err
	} else if desc == "-" {
		empty := ""
		patch.Description = &empty
	} else if desc != "" && desc != current.Description {
		patch.Description = &desc
	}
	priorityText, err := GetSimpleText(a.reader, fmt.Sprintf("Priority [%s]", current.Priority), a.out)
	if err != nil {
		return err
	}
	if p, err := parsePriority(priorityText); err != nil {
		return err
	} else if p != "" && p != current.Priority {
		patch.Priority = &p
	}
	dueText, err := GetSimpleText(a.reader, fmt.Sprintf("Due date [%s]", timex.FormatDate(current.DueDate)), a.out)
	if err != nil {
		return err
	}
	if due, err := parseDueDate(dueText, a.clock.Now()); err != nil {
		return err
	} else if due != nil && !timex.SameDay(*due, current.DueDate) {
		patch.DueDate = due
	}

	if patch == (models.TaskPatch{}) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}
	if _, err := page.Update(ctx, id, patch); err != nil {
		return taskError(id, err)
	}
	fmt.Fprintf(a.out, "Task #%d updated.\n", id)
	a.render()
	return nil
}

// Done toggles the completion of a task.
func (a *App) Done(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	t, err := a.page(a.screen).ToggleComplete(ctx, id)
	if err != nil {
		return taskError(id, err)
	}
	if t.Completed {
		fmt.Fprintf(a.out, "Task #%d completed.\n", id)
	} else {
		fmt.Fprintf(a.out, "Task #%d marked as pending.\n", id)
	}
	a.render()
	return nil
}

// Remove deletes a task after confirmation.
func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete task #%d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if err := a.page(a.screen).Delete(ctx, id); err != nil {
		return taskError(id, err)
	}
	fmt.Fprintf(a.out, "Task #%d deleted.\n", id)
	a.render()
	return nil
}

func findTask(tasks []models.Task, id int64) (models.Task, bool) {
	i := slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return tasks[i], true
}

// taskError names the task in not-found failures.
func taskError(id int64, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("task #%d %w", id, common.ErrNotFound)
	}
	return err
}
