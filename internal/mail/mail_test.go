package mail_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/mail"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestNotify(t *testing.T) {
	s := &fakeSender{}
	n := mail.NewWithSender(s, "no-reply@example.com", "team@example.com")

	require.True(t, n.Enabled())
	require.NoError(t, n.Notify("New contact", "hello there", "jane@example.com"))
	require.Len(t, s.sent, 1)

	m := s.sent[0]
	assert.Equal(t, []string{"no-reply@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"team@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"New contact"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"jane@example.com"}, m.GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hello there")
}

func TestNotifyErrors(t *testing.T) {
	s := &fakeSender{err: errors.New("smtp down")} //nolint:goerr113
	require.Error(t, mail.NewWithSender(s, "a@example.com", "b@example.com").Notify("x", "y", ""))

	require.ErrorIs(t, mail.NewWithSender(&fakeSender{}, "a@example.com", "").Notify("x", "y", ""), mail.ErrNoRecipient)
}

func TestDisabled(t *testing.T) {
	n := mail.New(config.Mail{Enabled: false, Host: "smtp.example.com"})

	assert.False(t, n.Enabled())
	require.NoError(t, n.Notify("x", "y", ""))

	var nilNotifier *mail.Notifier
	require.NoError(t, nilNotifier.Notify("x", "y", ""))
}
