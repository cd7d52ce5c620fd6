package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightpath/site-backend/pkg/logger"
	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends notifications through the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
	to     []string
}

// NewResendNotifier creates a notifier delivering from → to.
func NewResendNotifier(apiKey, from string, to []string) (*ResendNotifier, error) {
	if apiKey == "" || from == "" || len(to) == 0 {
		return nil, errors.New("notify: api key, sender and recipients are required")
	}
	return &ResendNotifier{client: resend.NewClient(apiKey), from: from, to: to}, nil
}

func (r *ResendNotifier) Notify(ctx context.Context, n Notification) error {
	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      r.to,
		Subject: n.Subject,
		Html:    n.HTML,
	}
	if n.ReplyTo != "" {
		params.ReplyTo = n.ReplyTo
	}
	sent, err := r.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	logger.Infof("notification sent: id=%s subject=%q", sent.Id, n.Subject)
	return nil
}
