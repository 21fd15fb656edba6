package repository

import (
	"context"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
)

// LoginLogRepository is the append-only audit trail.
type LoginLogRepository interface {
	Append(ctx context.Context, entry *entity.LoginLog) error
	// List returns every entry, oldest first.
	List(ctx context.Context) ([]entity.LoginLog, error)
}
