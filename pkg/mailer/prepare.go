package mailer

import (
	"errors"
	"fmt"
	"strings"

	tpl "github.com/ipdr-analysis/auth-server/pkg/mailer/templates"
)

var (
	ErrNoRecipient = errors.New("email job has no recipient")
	ErrEmptyJob    = errors.New("email job needs a template or a subject and body")
)

// Rendered is a job ready for Mailgun.
type Rendered struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Prepare renders a templated job or passes a literal one through.
func Prepare(job EmailJob) (Rendered, error) {
	to := strings.TrimSpace(job.To)
	if to == "" {
		return Rendered{}, ErrNoRecipient
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return Rendered{}, ErrEmptyJob
		}
		return Rendered{To: to, Subject: job.Subject, Text: job.Text, HTML: job.HTML}, nil
	}

	data := make(map[string]any, len(job.Data)+1)
	for k, v := range job.Data {
		data[k] = v
	}
	if v, ok := data["Email"]; !ok || fmt.Sprint(v) == "" {
		data["Email"] = to
	}
	subject, text, html, err := tpl.Render(job.Template, data)
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", job.Template, err)
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return Rendered{To: to, Subject: subject, Text: text, HTML: html}, nil
}
