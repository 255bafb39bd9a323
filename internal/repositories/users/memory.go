package users

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/models"
)

//go:embed fixtures/users.json
var seedUsers []byte

// fixtureUser exposes the password field that models.User keeps out of JSON.
type fixtureUser struct {
	models.User
	Password string `json:"password"`
}

// ParseFixture decodes a JSON array of users, including their passwords.
func ParseFixture(data []byte) ([]models.User, error) {
	var raw []fixtureUser
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse user fixture: %w", err)
	}
	out := make([]models.User, len(raw))
	for i, fu := range raw {
		u := fu.User
		u.Password = fu.Password
		out[i] = u
	}
	return out, nil
}

// SeedUsers returns the embedded fixture users.
func SeedUsers() ([]models.User, error) {
	return ParseFixture(seedUsers)
}

// MemoryRepository is a Repository over a slice guarded by a mutex.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []*models.User
}

// NewMemoryRepository copies users into a new repository.
func NewMemoryRepository(users []models.User) *MemoryRepository {
	r := &MemoryRepository{users: make([]*models.User, 0, len(users))}
	for i := range users {
		r.users = append(r.users, users[i].Clone())
	}
	return r
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u := r.find(id); u != nil {
		return u.Clone(), nil
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrEmailTaken
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	stored := user.Clone()
	stored.ID = maxID + 1
	r.users = append(r.users, stored)
	return stored.Clone(), nil
}

func (r *MemoryRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(user.ID)
	if u == nil {
		return common.ErrNotFound
	}
	*u = *user.Clone()
	return nil
}

func (r *MemoryRepository) find(id int64) *models.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// HashPasswords replaces each user's password with hash(password). It is
// used to turn fixture plaintext into the stored form a verifier expects.
func HashPasswords(list []models.User, hash func(string) (string, error)) error {
	for i := range list {
		h, err := hash(list[i].Password)
		if err != nil {
			return fmt.Errorf("failed to hash password of user %d: %w", list[i].ID, err)
		}
		list[i].Password = h
	}
	return nil
}
