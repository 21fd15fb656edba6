// Package memory holds in-process repositories, used as fakes in tests.
package memory

import (
	"context"
	"sync"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	"github.com/ipdr-analysis/auth-server/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []entity.User

	// FailWith, when set, is returned by every call.
	FailWith error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) find(match func(u *entity.User) bool) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	for i := range r.users {
		if match(&r.users[i]) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username || u.Email == email })
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	for i := range r.users {
		if r.users[i].Username == u.Username || r.users[i].Email == u.Email {
			return repository.ErrDuplicateIdentity
		}
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = *u
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.UserRepository = (*UserRepository)(nil)
