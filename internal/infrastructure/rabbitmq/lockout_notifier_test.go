package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipdr-analysis/auth-server/config"
	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	"github.com/ipdr-analysis/auth-server/pkg/mailer"
	tpl "github.com/ipdr-analysis/auth-server/pkg/mailer/templates"
)

type capturePublisher struct {
	jobs []any
	err  error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return p.err
}

func TestNotifyAccountLocked_PublishesTemplateJob(t *testing.T) {
	pub := &capturePublisher{}
	n := NewLockoutNotifier(pub, &config.Config{CompanyName: "IPDR Analysis"})
	n.Now = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) }

	u := &entity.User{FirstName: "Alice", LastName: "Liddell", Email: "alice@x.com", Location: "Pune", FailedLoginAttempts: 5}
	require.NoError(t, n.NotifyAccountLocked(context.Background(), u, "10.0.0.7"))

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "alice@x.com", job.To)
	assert.Equal(t, tpl.AccountLocked, job.Template)
	assert.Equal(t, "Alice Liddell", job.Data["Name"])
	assert.Equal(t, "10.0.0.7", job.Data["IP"])
	assert.Equal(t, "Pune", job.Data["Location"])
	assert.EqualValues(t, 5, job.Data["Attempts"])

	_, _, _, err := tpl.Render(job.Template, job.Data)
	assert.NoError(t, err)
}

func TestNotifyAccountLocked_PropagatesPublishError(t *testing.T) {
	pub := &capturePublisher{err: errors.New("channel closed")}
	n := NewLockoutNotifier(pub, &config.Config{})

	err := n.NotifyAccountLocked(context.Background(), &entity.User{Email: "a@x.com"}, "")
	assert.Error(t, err)
}
