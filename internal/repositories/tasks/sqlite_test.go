package tasks

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/dbx"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTask(title string) *models.Task {
	return &models.Task{
		Title:     title,
		Priority:  models.PriorityMedium,
		DueDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		CreatedAt: now,
	}
}

func TestCreate_AssignsIDAndRoundTrips(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), time.UTC)
	ctx := context.Background()

	in := newTask("write docs")
	in.Description = "api section"
	in.ID = 99

	got, err := r.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "write docs", got.Title)
	assert.Equal(t, "api section", got.Description)
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.True(t, got.DueDate.Equal(in.DueDate))
	assert.True(t, got.CreatedAt.Equal(now))
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)

	second, err := r.Create(ctx, newTask("second"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreate_CompletedKeepsTimestamp(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), time.UTC)

	in := newTask("done already")
	in.SetCompleted(true, now.Add(time.Hour))

	got, err := r.Create(context.Background(), in)
	require.NoError(t, err)
	require.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(now.Add(time.Hour)))
}

func TestList_OrderedByID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), time.UTC)
	ctx := context.Background()

	empty, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, title := range []string{"a", "b", "c"} {
		_, err := r.Create(ctx, newTask(title))
		require.NoError(t, err)
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Title)
	assert.Equal(t, "c", list[2].Title)
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), time.UTC)

	_, err := r.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), time.UTC)
	ctx := context.Background()

	created, err := r.Create(ctx, newTask("old"))
	require.NoError(t, err)

	created.Title = "new"
	created.Priority = models.PriorityHigh
	created.SetCompleted(true, now)
	require.NoError(t, r.Update(ctx, created))

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)

	got.SetCompleted(false, now)
	require.NoError(t, r.Update(ctx, got))
	got, err = r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), time.UTC)

	missing := newTask("ghost")
	missing.ID = 7
	assert.ErrorIs(t, r.Update(context.Background(), missing), common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), time.UTC)
	ctx := context.Background()

	created, err := r.Create(ctx, newTask("x"))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))
	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, r.Delete(ctx, created.ID), common.ErrNotFound)
}

func TestWithinTransaction_RollbackDiscardsWrites(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := NewSQLiteRepository(tx, time.UTC).Create(ctx, newTask("tx"))
		require.NoError(t, err)
		return common.ErrValidation
	})
	require.ErrorIs(t, err, common.ErrValidation)

	list, err := NewSQLiteRepository(db, time.UTC).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNewSQLiteRepository_DefaultsToLocal(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	assert.Equal(t, time.Local, r.loc)
}
