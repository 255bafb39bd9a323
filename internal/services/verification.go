package services

import (
	"sync"

	"github.com/dmitrijs2005/taskflow/internal/common"
)

// VerificationStore remembers the outstanding email verification tokens.
// A token is single-use; issuing a new token for a user leaves older ones
// valid until consumed.
type VerificationStore struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func NewVerificationStore() *VerificationStore {
	return &VerificationStore{tokens: make(map[string]int64)}
}

// Issue returns a fresh 32-character hex token for userID.
func (v *VerificationStore) Issue(userID int64) (string, error) {
	token, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[token] = userID
	return token, nil
}

// Consume removes token and reports the user it was issued for.
func (v *VerificationStore) Consume(token string) (int64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id, ok := v.tokens[token]
	if ok {
		delete(v.tokens, token)
	}
	return id, ok
}
