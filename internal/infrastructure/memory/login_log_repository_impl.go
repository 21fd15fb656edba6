package memory

import (
	"context"
	"sync"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	"github.com/ipdr-analysis/auth-server/internal/domain/repository"
)

type LoginLogRepository struct {
	mu      sync.Mutex
	entries []entity.LoginLog

	FailWith error
}

func NewLoginLogRepository() *LoginLogRepository {
	return &LoginLogRepository{}
}

func (r *LoginLogRepository) Append(_ context.Context, entry *entity.LoginLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *LoginLogRepository) List(_ context.Context) ([]entity.LoginLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	out := make([]entity.LoginLog, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

var _ repository.LoginLogRepository = (*LoginLogRepository)(nil)
