package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/dbx"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
//
// Due dates are stored as YYYY-MM-DD and read back as midnight in loc;
// timestamps are stored as unix milliseconds.
type SQLiteRepository struct {
	db  dbx.DBTX
	loc *time.Location
}

// NewSQLiteRepository returns a repository bound to db that interprets due
// dates in loc (time.Local when nil).
func NewSQLiteRepository(db dbx.DBTX, loc *time.Location) *SQLiteRepository {
	if loc == nil {
		loc = time.Local
	}
	return &SQLiteRepository{db: db, loc: loc}
}

const selectColumns = `id, title, description, priority, due_date, completed, completed_at, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepository) scan(s scanner) (*models.Task, error) {
	var (
		t           models.Task
		priority    string
		dueDate     string
		completedAt sql.NullInt64
		createdAt   int64
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &priority, &dueDate, &t.Completed, &completedAt, &createdAt); err != nil {
		return nil, err
	}

	due, err := timex.ParseDate(dueDate, r.loc)
	if err != nil {
		return nil, fmt.Errorf("bad due date for task %d: %w", t.ID, err)
	}
	t.Priority = models.Priority(priority)
	t.DueDate = due
	t.CreatedAt = time.UnixMilli(createdAt).In(r.loc)
	if completedAt.Valid {
		at := time.UnixMilli(completedAt.Int64).In(r.loc)
		t.CompletedAt = &at
	}
	return &t, nil
}

func nullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM tasks WHERE id = ?`, id)
	t, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return t, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (title, description, priority, due_date, completed, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, string(t.Priority), timex.FormatDate(t.DueDate),
		t.Completed, nullMillis(t.CompletedAt), t.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteRepository) Update(ctx context.Context, t *models.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, priority = ?, due_date = ?,
			completed = ?, completed_at = ?, created_at = ?
		WHERE id = ?`,
		t.Title, t.Description, string(t.Priority), timex.FormatDate(t.DueDate),
		t.Completed, nullMillis(t.CompletedAt), t.CreatedAt.UnixMilli(), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", t.ID, err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}
