package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/devfolio/backend/pkg/apperror"
	"github.com/devfolio/backend/pkg/mailer"
	"github.com/redis/go-redis/v9"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=150"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ContactService interface {
	Send(ctx context.Context, input ContactInput, clientIP string) error
}

type contactService struct {
	mail      mailer.Mailer
	rdb       *redis.Client
	recipient string
	window    time.Duration
	tmpl      *template.Template
}

// contactTemplate renders the inbound message; template escaping keeps the
// visitor-supplied fields inert.
const contactTemplate = `<html>
<body style="font-family: sans-serif">
  <h2>New portfolio message</h2>
  <p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <hr>
  <p>{{.Message}}</p>
</body>
</html>`

func NewContactService(mail mailer.Mailer, rdb *redis.Client, window time.Duration) ContactService {
	recipient := os.Getenv("CONTACT_RECIPIENT")

	return &contactService{
		mail:      mail,
		rdb:       rdb,
		recipient: recipient,
		window:    window,
		tmpl:      template.Must(template.New("contact").Parse(contactTemplate)),
	}
}

func (s *contactService) Send(ctx context.Context, input ContactInput, clientIP string) error {
	// Check configuration before claiming the sender's slot; a broken
	// deployment must not burn their one send on a guaranteed failure.
	if s.mail == nil || s.recipient == "" {
		return fmt.Errorf("contact email is not configured: %w", apperror.ErrInternal)
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, clientIP, "contact", s.window)
	if err != nil {
		return err
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.rdb, clientIP, "contact")
		return &RateLimitError{
			Message:    fmt.Sprintf("you can only send one message every %.0f seconds. Please wait %.0f seconds", s.window.Seconds(), ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, input); err != nil {
		return fmt.Errorf("failed to render contact email: %w", err)
	}

	subject := "[Portfolio] " + input.Subject
	return s.mail.Send(ctx, s.recipient, subject, body.String())
}
