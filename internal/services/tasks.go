package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/dbx"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/repositories/tasks"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// DefaultTaskLatency is the simulated delay of every task operation.
const DefaultTaskLatency = 200 * time.Millisecond

// TaskService is CRUD plus completion toggling over the task collection.
// Unknown ids fail with common.ErrNotFound; bad input with
// common.ErrValidation.
type TaskService interface {
	GetAll(ctx context.Context) ([]models.Task, error)

	// Create fills in defaults: priority medium, due today, not completed.
	Create(ctx context.Context, in models.TaskInput) (*models.Task, error)

	// Update applies the non-nil fields of patch. Setting Completed stamps or
	// clears CompletedAt the same way ToggleComplete does.
	Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)

	ToggleComplete(ctx context.Context, id int64) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	db      *sql.DB
	loc     *time.Location
	clock   timex.Clock
	logger  logging.Logger
	latency time.Duration
}

// NewTaskService returns a TaskService over the tasks table in db. Due dates
// are calendar days in loc.
func NewTaskService(db *sql.DB, loc *time.Location, clock timex.Clock, logger logging.Logger, latency time.Duration) TaskService {
	if loc == nil {
		loc = time.Local
	}
	return &taskService{
		db:      db,
		loc:     loc,
		clock:   clock,
		logger:  logger.With("service", "tasks"),
		latency: latency,
	}
}

func (s *taskService) repo(db dbx.DBTX) tasks.Repository {
	return tasks.NewSQLiteRepository(db, s.loc)
}

func (s *taskService) GetAll(ctx context.Context) ([]models.Task, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.repo(s.db).List(ctx)
}

func (s *taskService) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrValidation, priority)
	}

	now := s.clock.Now()
	due := timex.DateIn(now.In(s.loc), s.loc)
	if in.DueDate != nil {
		due = timex.DateIn(*in.DueDate, s.loc)
	}

	t, err := s.repo(s.db).Create(ctx, &models.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Priority:    priority,
		DueDate:     due,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "task created", "task_id", t.ID)
	return t, nil
}

func (s *taskService) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.modify(ctx, id, func(t *models.Task) error {
		return s.applyPatch(t, patch)
	})
}

func (s *taskService) ToggleComplete(ctx context.Context, id int64) (*models.Task, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	return s.modify(ctx, id, func(t *models.Task) error {
		t.SetCompleted(!t.Completed, s.clock.Now())
		return nil
	})
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return err
	}
	if err := s.repo(s.db).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug(ctx, "task deleted", "task_id", id)
	return nil
}

// modify runs a read-modify-write of one task inside a transaction.
func (s *taskService) modify(ctx context.Context, id int64, fn func(t *models.Task) error) (*models.Task, error) {
	var updated *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		updated, err = repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *taskService) applyPatch(t *models.Task, p models.TaskPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return fmt.Errorf("%w: title is required", common.ErrValidation)
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return fmt.Errorf("%w: unknown priority %q", common.ErrValidation, *p.Priority)
		}
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = timex.DateIn(*p.DueDate, s.loc)
	}
	if p.Completed != nil {
		t.SetCompleted(*p.Completed, s.clock.Now())
	}
	return nil
}
