package leads

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Notifier delivers lead notifications.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// ErrNotConfigured is returned by NewResendNotifier when the API key or the
// recipient is missing.
var ErrNotConfigured = errors.New("email notifier not configured")

// ResendNotifier sends notifications through the Resend email API.
type ResendNotifier struct {
	client *resend.Client
	from   string
	to     []string
}

// ResendOption customizes a ResendNotifier.
type ResendOption func(*resend.Client) error

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(raw string) ResendOption {
	return func(c *resend.Client) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid Resend base URL: %w", err)
		}
		if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
			u.Path += "/"
		}
		c.BaseURL = u
		return nil
	}
}

// NewResendNotifier returns ErrNotConfigured when apiKey or to is empty.
func NewResendNotifier(apiKey, from, to string, opts ...ResendOption) (*ResendNotifier, error) {
	if apiKey == "" || to == "" {
		return nil, ErrNotConfigured
	}
	client := resend.NewClient(apiKey)
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}
	return &ResendNotifier{client: client, from: from, to: []string{to}}, nil
}

// Notify sends msg as an HTML email.
func (n *ResendNotifier) Notify(ctx context.Context, msg Message) error {
	_, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

// LogNotifier records notifications in the log instead of sending them. It is
// used when email delivery is not configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the subject at info level.
func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.logger.Info("Lead notification not emailed", zap.String("subject", msg.Subject))
	return nil
}
