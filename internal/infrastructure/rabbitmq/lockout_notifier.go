// Package rabbitmq turns lockout events into email jobs on the worker queue.
package rabbitmq

import (
	"context"
	"time"

	"github.com/ipdr-analysis/auth-server/config"
	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	"github.com/ipdr-analysis/auth-server/pkg/mailer"
	tpl "github.com/ipdr-analysis/auth-server/pkg/mailer/templates"
)

// Publisher is satisfied by *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type LockoutNotifier struct {
	Pub Publisher
	Cfg *config.Config
	Now func() time.Time
}

func NewLockoutNotifier(pub Publisher, cfg *config.Config) *LockoutNotifier {
	return &LockoutNotifier{Pub: pub, Cfg: cfg, Now: time.Now}
}

// NotifyAccountLocked enqueues an account_locked email to the account owner.
func (n *LockoutNotifier) NotifyAccountLocked(ctx context.Context, u *entity.User, ip string) error {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	data := tpl.NewAccountLockedData(n.Cfg, u.FirstName+" "+u.LastName, u.Email,
		tpl.WithIP(ip),
		tpl.WithLocation(u.Location),
		tpl.WithTime(now()),
		tpl.WithAttempts(u.FailedLoginAttempts),
	)
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return n.Pub.PublishJSON(c, mailer.EmailJob{To: u.Email, Template: tpl.AccountLocked, Data: data})
}
