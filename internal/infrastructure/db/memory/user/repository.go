// Package user keeps users in process memory. It backs the service when no
// PostgreSQL is configured and doubles as a test store.
package user

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"imageresizer/internal/domain/user"
)

type Repository struct {
	mu      sync.RWMutex
	byID    map[user.ID]*user.User
	byEmail map[string]user.ID
}

func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[user.ID]*user.User),
		byEmail: make(map[string]user.ID),
	}
}

func (r *Repository) FetchUserByID(_ context.Context, id user.ID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *Repository) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *Repository) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(req.Email)
	if _, exists := r.byEmail[key]; exists {
		return nil, user.ErrEmailAlreadyExists
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: req.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[u.ID] = u
	r.byEmail[key] = u.ID

	cp := *u
	return &cp, nil
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
