package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/brightpath/site-backend/pkg/logger"
)

// Notification is an e-mail to site staff.
type Notification struct {
	Subject string
	HTML    string
	ReplyTo string
}

// Notifier delivers staff notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Nop logs notifications without delivering them.
type Nop struct{}

func (Nop) Notify(_ context.Context, n Notification) error {
	logger.Debugf("notify (disabled): %s", n.Subject)
	return nil
}

// ForMessage builds the notification for a new contact message.
func ForMessage(rec content.Record) Notification {
	return Notification{
		Subject: fmt.Sprintf("New message from %s", str(rec, "name")),
		ReplyTo: str(rec, "email"),
		HTML: table(rec, []row{
			{"Name", "name"}, {"Email", "email"}, {"Subject", "subject"}, {"Message", "message"},
		}),
	}
}

// ForInquiry builds the notification for a new service inquiry.
func ForInquiry(rec content.Record) Notification {
	subject := fmt.Sprintf("New inquiry from %s", str(rec, "name"))
	if svc := str(rec, "serviceName"); svc != "" {
		subject += " about " + svc
	}
	return Notification{
		Subject: subject,
		ReplyTo: str(rec, "email"),
		HTML: table(rec, []row{
			{"Name", "name"}, {"Email", "email"}, {"Phone", "phone"}, {"Company", "company"},
			{"Service", "serviceName"}, {"Message", "message"},
		}),
	}
}

type row struct{ label, field string }

func table(rec content.Record, rows []row) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, r := range rows {
		v := str(rec, r.field)
		if v == "" {
			continue
		}
		fmt.Fprintf(&b, "<tr><th align=\"left\">%s</th><td>%s</td></tr>", r.label,
			strings.ReplaceAll(html.EscapeString(v), "\n", "<br>"))
	}
	b.WriteString("</table>")
	return b.String()
}

func str(rec content.Record, field string) string {
	s, _ := rec[field].(string)
	return s
}
