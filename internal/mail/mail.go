// Package mail sends plain text notifications over SMTP.
package mail

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
)

// ErrNoRecipient is returned when neither the message nor the config names a recipient.
var ErrNoRecipient = errors.New("mail recipient is empty")

// Sender delivers composed messages, *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Notifier sends notifications to the team address.
type Notifier struct {
	sender   Sender
	from     string
	notifyTo string
}

// New returns a notifier for the SMTP settings. A disabled config yields a notifier that sends nothing.
func New(cfg config.Mail) *Notifier {
	if !cfg.Enabled {
		return &Notifier{}
	}

	return NewWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From, cfg.NotifyTo)
}

// NewWithSender returns a notifier using the given sender.
func NewWithSender(s Sender, from, notifyTo string) *Notifier {
	return &Notifier{sender: s, from: from, notifyTo: notifyTo}
}

// Enabled reports whether the notifier sends mail.
func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil
}

// Notify sends subject and body to the configured notify address.
// replyTo is optional and set as Reply-To header.
func (n *Notifier) Notify(subject, body, replyTo string) error {
	if !n.Enabled() {
		log.Debug().Str("subject", subject).Msg("mail disabled, notification skipped")
		return nil
	}

	if n.notifyTo == "" {
		return ErrNoRecipient
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.notifyTo)
	m.SetHeader("Subject", subject)

	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}

	m.SetBody("text/plain", body)

	if err := n.sender.DialAndSend(m); err != nil {
		return errors.Wrapf(err, "send mail %q", subject)
	}

	return nil
}
