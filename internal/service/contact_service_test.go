package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/devfolio/backend/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to      string
	subject string
	html    string
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, html string) error {
	m.to = to
	m.subject = subject
	m.html = html
	return nil
}

func TestContactSend(t *testing.T) {
	t.Setenv("CONTACT_RECIPIENT", "owner@example.com")

	mail := &recordingMailer{}
	svc := NewContactService(mail, nil, time.Minute)

	err := svc.Send(context.Background(), ContactInput{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hello",
		Message: "<script>alert(1)</script> I like your work",
	}, "203.0.113.7")
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", mail.to)
	assert.Equal(t, "[Portfolio] Hello", mail.subject)
	assert.Contains(t, mail.html, "Visitor")
	// Template escaping keeps visitor HTML inert.
	assert.NotContains(t, mail.html, "<script>")
	assert.Contains(t, mail.html, "&lt;script&gt;")
	assert.True(t, strings.Contains(mail.html, "visitor@example.com"))
}

func TestContactSendUnconfigured(t *testing.T) {
	t.Setenv("CONTACT_RECIPIENT", "")

	svc := NewContactService(nil, nil, time.Minute)
	err := svc.Send(context.Background(), ContactInput{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hello",
		Message: "Hi",
	}, "203.0.113.7")
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestContactSendUnconfiguredSkipsRateLimit(t *testing.T) {
	t.Setenv("CONTACT_RECIPIENT", "")

	// A client pointing nowhere: the configuration check must fail the
	// request before the sender's one slot is ever claimed in redis.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := NewContactService(nil, rdb, time.Minute)
	err := svc.Send(context.Background(), ContactInput{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hello",
		Message: "Hi",
	}, "203.0.113.7")
	assert.ErrorIs(t, err, apperror.ErrInternal)
}
