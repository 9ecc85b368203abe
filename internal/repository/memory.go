package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/upadhyay-sonu/Task-Manager/internal/model"
)

// In-memory repository implementations. They back the service tests and can
// stand in for PostgreSQL during local development.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]model.User{}}
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (r *MemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID] = u
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
}

type MemoryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]model.RefreshToken
}

func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{tokens: map[string]model.RefreshToken{}}
}

func (r *MemoryTokenRepository) Store(_ context.Context, token string, userID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = model.RefreshToken{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}
	return nil
}

func (r *MemoryTokenRepository) Find(_ context.Context, token string) (model.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[token]
	if !ok {
		return model.RefreshToken{}, model.ErrTokenNotFound
	}
	return t, nil
}

func (r *MemoryTokenRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
	return nil
}

func (r *MemoryTokenRepository) DeleteAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *MemoryTokenRepository) CountForUser(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, t := range r.tokens {
		if t.UserID == userID {
			count++
		}
	}
	return count
}

type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: map[string]model.Task{}}
}

func (r *MemoryTaskRepository) Create(_ context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[t.ID] = t
	return nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, id string) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, model.ErrTaskNotFound
	}
	return t, nil
}

func (r *MemoryTaskRepository) ListByUser(_ context.Context, userID string, filter model.TaskFilter, offset int, limit int) ([]model.Task, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]model.Task, 0)
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, t)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []model.Task{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; !ok {
		return model.ErrTaskNotFound
	}
	r.tasks[t.ID] = t
	return nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return model.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}
