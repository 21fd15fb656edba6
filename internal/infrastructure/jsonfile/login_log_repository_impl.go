package jsonfile

import (
	"context"
	"sync"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	"github.com/ipdr-analysis/auth-server/internal/domain/repository"
)

// LoginLogRepository appends audit entries to a JSON array document.
type LoginLogRepository struct {
	path string
	mu   sync.Mutex
}

func NewLoginLogRepository(path string) *LoginLogRepository {
	return &LoginLogRepository{path: path}
}

func (r *LoginLogRepository) Append(_ context.Context, entry *entity.LoginLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs, err := readDocument[entity.LoginLog](r.path)
	if err != nil {
		return err
	}
	logs = append(logs, *entry)
	return writeDocument(r.path, logs)
}

func (r *LoginLogRepository) List(_ context.Context) ([]entity.LoginLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return readDocument[entity.LoginLog](r.path)
}

var _ repository.LoginLogRepository = (*LoginLogRepository)(nil)
