package users

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *MemoryRepository {
	t.Helper()
	us, err := SeedUsers()
	require.NoError(t, err)
	return NewMemoryRepository(us)
}

func TestSeedUsers_Fixture(t *testing.T) {
	us, err := SeedUsers()
	require.NoError(t, err)
	require.Len(t, us, 3)

	john := us[0]
	assert.Equal(t, int64(1), john.ID)
	assert.Equal(t, "john@example.com", john.Email)
	assert.Equal(t, "password123", john.Password)
	assert.True(t, john.EmailVerified)
	require.NotNil(t, john.LastLogin)

	mike := us[2]
	assert.False(t, mike.EmailVerified)
	assert.Nil(t, mike.LastLogin)
	assert.Equal(t, models.ThemeAuto, mike.Preferences.Theme)
}

func TestParseFixture_Invalid(t *testing.T) {
	_, err := ParseFixture([]byte(`{"not":"an array"}`))
	require.Error(t, err)
}

func TestGetByEmail_CaseSensitive(t *testing.T) {
	r := seeded(t)
	ctx := context.Background()

	u, err := r.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = r.GetByEmail(ctx, "JOHN@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByID(t *testing.T) {
	r := seeded(t)

	u, err := r.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)

	_, err = r.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestReturnedUsersAreCopies(t *testing.T) {
	r := seeded(t)
	ctx := context.Background()

	u, err := r.GetByID(ctx, 1)
	require.NoError(t, err)
	u.Name = "Mutated"

	again, err := r.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", again.Name)
}

func TestCreate_AssignsMaxPlusOne(t *testing.T) {
	r := seeded(t)
	ctx := context.Background()

	u, err := r.Create(ctx, &models.User{Name: "New", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), u.ID)

	got, err := r.GetByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
}

func TestCreate_EmptyCollectionStartsAtOne(t *testing.T) {
	r := NewMemoryRepository(nil)
	u, err := r.Create(context.Background(), &models.User{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	r := seeded(t)
	_, err := r.Create(context.Background(), &models.User{Email: "jane@example.com"})
	require.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestCreate_ConcurrentIDsAreUnique(t *testing.T) {
	r := NewMemoryRepository(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan int64, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := r.Create(ctx, &models.User{Email: fmt.Sprintf("user%d@example.com", i)})
			if err == nil {
				ids <- u.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 20)
}

func TestUpdate(t *testing.T) {
	r := seeded(t)
	ctx := context.Background()

	u, err := r.GetByID(ctx, 3)
	require.NoError(t, err)
	u.EmailVerified = true
	require.NoError(t, r.Update(ctx, u))

	got, err := r.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)

	require.ErrorIs(t, r.Update(ctx, &models.User{ID: 42}), common.ErrNotFound)
}

func TestHashPasswords(t *testing.T) {
	us, err := SeedUsers()
	require.NoError(t, err)

	require.NoError(t, HashPasswords(us, func(p string) (string, error) { return "h:" + p, nil }))
	for _, u := range us {
		assert.Equal(t, "h:password123", u.Password)
	}

	boom := fmt.Errorf("boom")
	err = HashPasswords(us, func(string) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
}
