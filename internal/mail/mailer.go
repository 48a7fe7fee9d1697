// Package mail sends contact-form messages through an external SMTP relay.
// Delivery is fire-and-forget: failures only change the notification shown
// to the visitor, nothing is persisted or retried.
package mail

import (
	"context"
	"fmt"
	"regexp"

	gomail "github.com/wneessen/go-mail"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// FormatInquiry turns a camel-case inquiry label into spaced words,
// e.g. "generalInquiry" -> "general Inquiry".
func FormatInquiry(inquiry string) string {
	return camelBoundary.ReplaceAllString(inquiry, "$1 $2")
}

// Mailer dispatches contact messages through one SMTP account.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	// To is the site owner's address every contact message is delivered to.
	To string
}

func NewMailer(host string, port int, username, password, to string) *Mailer {
	return &Mailer{Host: host, Port: port, Username: username, Password: password, To: to}
}

// SendContactMessage builds the plain-text contact mail and sends it.
// The visitor's address goes into Reply-To; relays reject spoofed From headers.
func (m *Mailer) SendContactMessage(ctx context.Context, name, email, inquiry, message string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.Username); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	if err := msg.ReplyTo(email); err != nil {
		return fmt.Errorf("mail reply-to: %w", err)
	}
	msg.Subject(fmt.Sprintf("New Message from %s", name))
	msg.SetBodyString(gomail.TypeTextPlain,
		fmt.Sprintf("Inquiry: %s \n\n\n %s \n\n Email sent from: %s",
			FormatInquiry(inquiry), message, email))

	client, err := gomail.NewClient(m.Host,
		gomail.WithPort(m.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.Username),
		gomail.WithPassword(m.Password),
	)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
