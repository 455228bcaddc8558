package utils

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func testMailer(cfg SMTPConfig, sendErr error) (*Mailer, *capturedMail, *test.Hook) {
	logger, hook := test.NewNullLogger()
	m := NewMailer(cfg, logrus.NewEntry(logger))
	got := &capturedMail{}
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		got.addr, got.from, got.to, got.msg = addr, from, to, string(msg)
		return sendErr
	}
	return m, got, hook
}

var smtpCfg = SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "desk@example.com", Password: "pw", FromName: "Front Desk"}

func TestMailerMocksWithoutSMTP(t *testing.T) {
	m, got, hook := testMailer(SMTPConfig{}, nil)
	require.NoError(t, m.SendPasswordReset("guest@example.com", "Ali", "https://app/reset?t=1"))
	assert.Empty(t, got.addr)
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "MOCK EMAIL")
	assert.Equal(t, "g***t@e******.com", hook.LastEntry().Data["to"])
}

func TestSendInvoice(t *testing.T) {
	m, got, _ := testMailer(smtpCfg, nil)
	err := m.SendInvoice("guest@example.com", InvoiceEmail{
		HotelName:  "Maria Resorts",
		Currency:   "PKR",
		BillNumber: "INV-1-1",
		GuestName:  "Sara <Khan>",
		Lines:      []InvoiceLine{{Description: "Single Room - Room 101 (2 nights)", Quantity: 2, UnitPrice: "5000.00", Total: "10000.00"}},
		Subtotal:   "10000.00",
		Tax:        "500.00",
		Total:      "10500.00",
		Paid:       "0.00",
		Remaining:  "10500.00",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.Equal(t, []string{"guest@example.com"}, got.to)
	assert.Contains(t, got.msg, "Subject: Invoice INV-1-1\r\n")
	assert.Contains(t, got.msg, "From: Front Desk <desk@example.com>")
	assert.Contains(t, got.msg, "Sara &lt;Khan&gt;")
	assert.Contains(t, got.msg, "Total: PKR 10500.00")
	assert.True(t, strings.HasSuffix(got.msg, "--"+mailBoundary+"--\r\n"))
}

func TestMailerHeaderInjection(t *testing.T) {
	m, got, _ := testMailer(smtpCfg, nil)
	require.NoError(t, m.SendInvoice("a@example.com\r\nBcc: evil@example.com", InvoiceEmail{BillNumber: "X"}))
	assert.NotContains(t, got.msg, "\r\nBcc:")
}

func TestMailerSendError(t *testing.T) {
	m, _, _ := testMailer(smtpCfg, errors.New("535 auth failed"))
	assert.Error(t, m.SendPasswordReset("guest@example.com", "Ali", "app/reset"))
	assert.Error(t, m.SendPasswordReset("", "Ali", "app/reset"))
}

func TestGenerateSecureToken(t *testing.T) {
	tok, err := GenerateSecureToken(24)
	require.NoError(t, err)
	assert.Len(t, tok, 48)
	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}
