package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface with an
// in-memory store keyed by id, with a secondary email index.
type UserRepositoryImpl struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]entities.User
	byEmail map[string]uuid.UUID
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() ports.UserRepository {
	return &UserRepositoryImpl{
		users:   make(map[uuid.UUID]entities.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	key := emailKey(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[key]; taken {
		return entities.ErrEmailTaken
	}
	r.users[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	user := r.users[id]
	return &user, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return entities.ErrUserNotFound
	}

	newKey := emailKey(user.Email)
	oldKey := emailKey(existing.Email)
	if newKey != oldKey {
		if _, taken := r.byEmail[newKey]; taken {
			return entities.ErrEmailTaken
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = user.ID
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return entities.ErrUserNotFound
	}
	delete(r.byEmail, emailKey(user.Email))
	delete(r.users, id)
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
