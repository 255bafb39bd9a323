package views

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/services"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// taskPage is the state every task screen shares: the slice of the
// collection the screen is about, kept in sync with the task service.
// State only changes after a service call succeeds.
type taskPage struct {
	svc   services.TaskService
	clock timex.Clock
	// belongs decides whether a task is shown on this page at all.
	belongs func(t models.Task, now time.Time) bool
	tasks   []models.Task
}

// Load replaces the page's tasks with a fresh read of the collection.
func (p *taskPage) Load(ctx context.Context) error {
	all, err := p.svc.GetAll(ctx)
	if err != nil {
		return err
	}
	now := p.clock.Now()
	p.tasks = Select(all, func(t models.Task) bool { return p.belongs(t, now) })
	return nil
}

// All returns every task on the page, before filtering.
func (p *taskPage) All() []models.Task {
	return slices.Clone(p.tasks)
}

func (p *taskPage) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	t, err := p.svc.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	p.put(*t)
	return t, nil
}

func (p *taskPage) ToggleComplete(ctx context.Context, id int64) (*models.Task, error) {
	t, err := p.svc.ToggleComplete(ctx, id)
	if err != nil {
		return nil, err
	}
	p.put(*t)
	return t, nil
}

func (p *taskPage) Delete(ctx context.Context, id int64) error {
	if err := p.svc.Delete(ctx, id); err != nil {
		return err
	}
	p.drop(id)
	return nil
}

func (p *taskPage) create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	t, err := p.svc.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	p.put(*t)
	return t, nil
}

// put inserts or replaces t, or drops it when it no longer belongs here.
// New tasks go to the front.
func (p *taskPage) put(t models.Task) {
	i := slices.IndexFunc(p.tasks, func(x models.Task) bool { return x.ID == t.ID })
	switch {
	case !p.belongs(t, p.clock.Now()):
		if i >= 0 {
			p.tasks = slices.Delete(p.tasks, i, i+1)
		}
	case i >= 0:
		p.tasks[i] = t
	default:
		p.tasks = slices.Insert(p.tasks, 0, t)
	}
}

func (p *taskPage) drop(id int64) {
	p.tasks = slices.DeleteFunc(p.tasks, func(x models.Task) bool { return x.ID == id })
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// TodayPage shows the tasks due today.
type TodayPage struct {
	taskPage
	Filter Filter
}

func NewTodayPage(svc services.TaskService, clock timex.Clock) *TodayPage {
	return &TodayPage{
		taskPage: taskPage{svc: svc, clock: clock, belongs: IsDueToday},
		Filter:   Filter{Status: StatusAll, Priority: PriorityAll},
	}
}

// Tasks returns the filtered tasks in display order.
func (p *TodayPage) Tasks() []models.Task {
	return SortTasks(p.Filter.Apply(p.tasks))
}

// Create adds a task, due today unless the input says otherwise.
func (p *TodayPage) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	if in.DueDate == nil {
		today := timex.StartOfDay(p.clock.Now())
		in.DueDate = &today
	}
	return p.create(ctx, in)
}

func (p *TodayPage) Summary() string {
	if len(p.tasks) == 0 {
		return "No tasks scheduled for today"
	}
	done := len(CompletedTasks(p.tasks))
	return fmt.Sprintf("%d/%d tasks completed", done, len(p.tasks))
}

func (p *TodayPage) EmptyMessage() string {
	switch p.Filter.Status {
	case StatusCompleted:
		return "No completed tasks today"
	case StatusActive:
		return "No pending tasks for today"
	default:
		return "No tasks for today"
	}
}

// UpcomingPage shows the tasks due after today, grouped by day.
type UpcomingPage struct {
	taskPage
	Filter Filter
}

func NewUpcomingPage(svc services.TaskService, clock timex.Clock) *UpcomingPage {
	return &UpcomingPage{
		taskPage: taskPage{svc: svc, clock: clock, belongs: IsUpcoming},
		Filter:   Filter{Status: StatusActive, Priority: PriorityAll},
	}
}

// Groups returns the filtered tasks grouped by UpcomingKey.
func (p *UpcomingPage) Groups() []Group {
	return GroupUpcoming(p.Filter.Apply(p.tasks), p.clock.Now())
}

// Create adds a task; a missing due date, or one that is not after today,
// becomes tomorrow.
func (p *UpcomingPage) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	now := p.clock.Now()
	if in.DueDate == nil || !in.DueDate.After(timex.EndOfDay(now)) {
		tomorrow := timex.AddDays(timex.StartOfDay(now), 1)
		in.DueDate = &tomorrow
	}
	return p.create(ctx, in)
}

func (p *UpcomingPage) Summary() string {
	if len(p.tasks) == 0 {
		return "No upcoming tasks scheduled"
	}
	active := len(Filter{Status: StatusActive}.Apply(p.tasks))
	return fmt.Sprintf("%d pending task%s coming up", active, plural(active))
}

func (p *UpcomingPage) EmptyMessage() string {
	switch p.Filter.Status {
	case StatusCompleted:
		return "No completed upcoming tasks"
	case StatusActive:
		return "No pending upcoming tasks"
	default:
		return "No upcoming tasks"
	}
}

// CompletedPage shows completed tasks grouped by completion day. A task that
// is toggled back to active leaves the page.
type CompletedPage struct {
	taskPage
	Period Period
}

func NewCompletedPage(svc services.TaskService, clock timex.Clock) *CompletedPage {
	return &CompletedPage{
		taskPage: taskPage{svc: svc, clock: clock, belongs: func(t models.Task, _ time.Time) bool { return t.Completed }},
		Period:   PeriodAll,
	}
}

// Tasks returns the completed tasks within Period.
func (p *CompletedPage) Tasks() []models.Task {
	return FilterPeriod(p.tasks, p.Period, p.clock.Now())
}

func (p *CompletedPage) Groups() []Group {
	return GroupCompleted(p.Tasks(), p.clock.Now())
}

func (p *CompletedPage) Summary() string {
	total := len(p.tasks)
	if total == 0 {
		return "No completed tasks yet"
	}
	return fmt.Sprintf("%d of %d completed task%s", len(p.Tasks()), total, plural(total))
}

func (p *CompletedPage) EmptyMessage() string {
	if len(p.tasks) == 0 {
		return "No completed tasks yet"
	}
	return "No tasks completed in this period"
}

// DashboardPage shows statistics over the whole collection plus short lists
// of today's, upcoming and overdue work.
type DashboardPage struct {
	taskPage
}

func NewDashboardPage(svc services.TaskService, clock timex.Clock) *DashboardPage {
	return &DashboardPage{
		taskPage: taskPage{svc: svc, clock: clock, belongs: func(models.Task, time.Time) bool { return true }},
	}
}

func (p *DashboardPage) Stats() Stats {
	return ComputeStats(p.tasks, p.clock.Now())
}

func (p *DashboardPage) Category(c Category) []models.Task {
	return TasksByCategory(p.tasks, c, p.clock.Now())
}

// Alert warns about overdue work; it is empty when nothing is overdue.
func (p *DashboardPage) Alert() string {
	n := p.Stats().Overdue
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("You have %d overdue task%s that need attention.", n, plural(n))
}
