// Package mailer delivers the post-booking notification mails. It is a
// fire-and-forget collaborator of the booking flow: a failed send is
// reported distinctly so callers know the booking itself committed.
package mailer

import (
	"context"
	"errors"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/velokiez/cargoshare-backend/rent"
)

var (
	ErrMissingConfig = errors.New("mail configuration incomplete")
	ErrSendFailed    = errors.New("failed to send mail")
)

// Sender is the notification hook invoked after a committed booking and at
// process startup.
type Sender interface {
	SendRentMail(ctx context.Context, booking rent.Booking) error
	SendStartupMail(ctx context.Context) error
}

// Config holds the SMTP relay settings. Everything except Port is required.
type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	To            string
	SubjectPrefix string
}

// Validate reports whether the configuration is complete enough to send
// mail. Called at startup; an incomplete config is fatal there.
func (c Config) Validate() error {
	if c.Host == "" || c.Username == "" || c.Password == "" || c.From == "" || c.To == "" {
		return ErrMissingConfig
	}
	return nil
}

// SMTPSender implements Sender against an SMTP relay.
type SMTPSender struct {
	cfg    Config
	client *mail.Client
}

func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = 587
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return &SMTPSender{cfg: cfg, client: client}, nil
}

// SendRentMail notifies the operator, and the renter when they left an
// address. The body carries only the short token; everything else about the
// renter stays encrypted in the store.
func (s *SMTPSender) SendRentMail(ctx context.Context, booking rent.Booking) error {
	to := []string{s.cfg.To}
	if booking.Email != nil {
		to = append(to, *booking.Email)
	}

	subject := fmt.Sprintf("New rent from %s to %s",
		booking.StartTimestamp.Format("2006-01-02"),
		booking.EndTimestamp.Format("2006-01-02"))

	return s.send(ctx, to, subject, booking.ShortToken)
}

func (s *SMTPSender) SendStartupMail(ctx context.Context) error {
	return s.send(ctx, []string{s.cfg.To}, "Launch", "Cargobike share backend is about to launch!")
}

func (s *SMTPSender) send(ctx context.Context, to []string, subject, body string) error {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if err := m.To(to...); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	m.Subject(fmt.Sprintf("[%s] %s", s.cfg.SubjectPrefix, subject))
	m.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}
