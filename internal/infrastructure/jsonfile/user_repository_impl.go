package jsonfile

import (
	"context"
	"sync"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	"github.com/ipdr-analysis/auth-server/internal/domain/repository"
)

// UserRepository keeps the user collection in a single JSON document.
// Each call reads the document in full; each mutation rewrites it.
type UserRepository struct {
	path string
	mu   sync.Mutex
}

func NewUserRepository(path string) *UserRepository {
	return &UserRepository{path: path}
}

func (r *UserRepository) find(match func(u *entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readDocument[entity.User](r.path)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(&users[i]) {
			u := users[i]
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

	users, err := readDocument[entity.User](r.path)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == u.Username || users[i].Email == u.Email {
			return repository.ErrDuplicateIdentity
		}
	}
	users = append(users, *u)
	return writeDocument(r.path, users)
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := readDocument[entity.User](r.path)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = *u
			return writeDocument(r.path, users)
		}
	}
	return repository.ErrNotFound
}

var _ repository.UserRepository = (*UserRepository)(nil)
