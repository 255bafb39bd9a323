// Package session persists the single "currently signed in" record.
//
// The record is stored as JSON ({"user": ..., "token": ...}) under one
// well-known key of the durable key/value store, so at most one session
// exists at a time and every Save overwrites the previous one.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/repositories/metadata"
)

// StorageKey is the key the session record lives under.
const StorageKey = "taskflow_auth"

type Store struct {
	repo   metadata.Repository
	logger logging.Logger
}

func NewStore(repo metadata.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger}
}

// Save writes s, replacing any stored session.
func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.repo.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when none is stored or the stored
// value cannot be decoded.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	data, err := s.repo.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn(ctx, "ignoring unreadable session record", "error", err)
		return nil, nil
	}
	return &sess, nil
}

// Clear removes the stored session. Clearing when nothing is stored is fine.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
