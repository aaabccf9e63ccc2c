// file: repository/session_registry.go

package repository

import (
	"context"
	"sync"
)

// ISessionRegistry tracks, per user, the set of refresh token ids that are
// currently honored. It is an allow-list: expiry of the signed token is
// checked by the token codec, never here.
type ISessionRegistry interface {
	Add(ctx context.Context, userID int, tokenID string) error
	Contains(ctx context.Context, userID int, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID int, tokenID string) error
	RevokeAll(ctx context.Context, userID int) error
}

// userSessions holds one user's token ids behind its own lock, so one
// user's login storm never serializes another user's requests.
type userSessions struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// InMemorySessionRegistry implements ISessionRegistry with per-user locked
// sets. The outer lock only guards the user map itself; all membership
// operations for a user run under that user's lock, which makes RevokeAll
// linearizable with concurrent Add and Contains calls for the same user.
type InMemorySessionRegistry struct {
	mu    sync.RWMutex
	users map[int]*userSessions
}

func NewInMemorySessionRegistry() *InMemorySessionRegistry {
	return &InMemorySessionRegistry{users: make(map[int]*userSessions)}
}

// sessionsFor returns the existing per-user entry, creating it if needed.
// Entries are never removed from the outer map, so a caller holding one can
// never race a delete.
func (r *InMemorySessionRegistry) sessionsFor(userID int) *userSessions {
	r.mu.RLock()
	s, ok := r.users[userID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok = r.users[userID]; ok {
		return s
	}
	s = &userSessions{ids: make(map[string]struct{})}
	r.users[userID] = s
	return s
}

func (r *InMemorySessionRegistry) Add(_ context.Context, userID int, tokenID string) error {
	s := r.sessionsFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[tokenID] = struct{}{}
	return nil
}

func (r *InMemorySessionRegistry) Contains(_ context.Context, userID int, tokenID string) (bool, error) {
	r.mu.RLock()
	s, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := s.ids[tokenID]
	return found, nil
}

// Revoke removes tokenID from the user's set. Removing an absent id is not
// an error.
func (r *InMemorySessionRegistry) Revoke(_ context.Context, userID int, tokenID string) error {
	r.mu.RLock()
	s, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, tokenID)
	return nil
}

// RevokeAll clears every token id for the user. The set is replaced under
// the user's lock, so an Add concurrent with RevokeAll lands either
// entirely before the clear (and is removed) or entirely after it (and
// survives as a fresh session).
func (r *InMemorySessionRegistry) RevokeAll(_ context.Context, userID int) error {
	r.mu.RLock()
	s, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
	return nil
}
