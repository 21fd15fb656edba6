package mailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMessage struct {
	path, from, to, subject, text, html string
	user, pass                          string
}

func fakeMailgunAPI(t *testing.T, status int) (*httptest.Server, func() capturedMessage) {
	t.Helper()
	var (
		mu  sync.Mutex
		got capturedMessage
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		got.path = r.URL.Path
		got.from = r.FormValue("from")
		got.to = r.FormValue("to")
		got.subject = r.FormValue("subject")
		got.text = r.FormValue("text")
		got.html = r.FormValue("html")
		got.user, got.pass, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"<20261017.1@mg.example.com>","message":"Queued. Thank you."}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"unavailable"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, func() capturedMessage {
		mu.Lock()
		defer mu.Unlock()
		return got
	}
}

func TestMailgun_Send(t *testing.T) {
	srv, captured := fakeMailgunAPI(t, http.StatusOK)
	m := NewMailgun("mg.example.com", "key-123", "IPDR <no-reply@mg.example.com>", srv.URL+"/v3")

	id, err := m.Send(context.Background(), "alice@x.com", "Locked", "plain body", "<p>html body</p>")

	require.NoError(t, err)
	assert.Equal(t, "<20261017.1@mg.example.com>", id)
	got := captured()
	assert.True(t, strings.HasSuffix(got.path, "/mg.example.com/messages"), got.path)
	assert.Equal(t, "IPDR <no-reply@mg.example.com>", got.from)
	assert.Equal(t, "alice@x.com", got.to)
	assert.Equal(t, "Locked", got.subject)
	assert.Equal(t, "plain body", got.text)
	assert.Equal(t, "<p>html body</p>", got.html)
	assert.Equal(t, "api", got.user)
	assert.Equal(t, "key-123", got.pass)
}

func TestMailgun_SendFailure(t *testing.T) {
	srv, _ := fakeMailgunAPI(t, http.StatusServiceUnavailable)
	m := NewMailgun("mg.example.com", "key-123", "no-reply@mg.example.com", srv.URL+"/v3")

	_, err := m.Send(context.Background(), "alice@x.com", "Locked", "plain body", "")

	assert.Error(t, err)
}
