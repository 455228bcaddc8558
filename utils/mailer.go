package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
)

// SMTPConfig holds SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD and
// SMTP_FROM_NAME.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends multipart (plain + HTML) mail. Without SMTP settings it only
// logs what it would have sent.
type Mailer struct {
	cfg  SMTPConfig
	log  *logrus.Entry
	send sendFunc
}

func NewMailer(cfg SMTPConfig, log *logrus.Entry) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

func (m *Mailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Port != "" && m.cfg.Username != "" && m.cfg.Password != ""
}

// ----------------------------------------------------
// messages
// ----------------------------------------------------

func (m *Mailer) SendPasswordReset(to, name, link string) error {
	name, link = safeHeader(name), safeHeader(link)
	if !(strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")) {
		link = "https://" + strings.TrimLeft(link, "/")
	}
	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"A password reset was requested for your back-office account.\n"+
			"Set a new password using the link below (valid for one hour):\n%s\n\n"+
			"If you did not request this, you can ignore this email.\n",
		name, link,
	)
	html := fmt.Sprintf(`<!doctype html>
<html>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
<p>Hi %s,</p>
<p>A password reset was requested for your back-office account.</p>
<p><a href="%s" target="_blank">Set a new password</a> (valid for one hour)</p>
<p>If you did not request this, you can ignore this email.</p>
</body>
</html>`, htmlEscape(name), htmlEscape(link))
	return m.deliver(to, "Password reset", plain, html)
}

type InvoiceLine struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       string
}

type InvoiceEmail struct {
	HotelName  string
	Currency   string
	BillNumber string
	GuestName  string
	Lines      []InvoiceLine
	Subtotal   string
	Tax        string
	Total      string
	Paid       string
	Remaining  string
	Footer     string
}

func (m *Mailer) SendInvoice(to string, inv InvoiceEmail) error {
	var plain, rows strings.Builder
	fmt.Fprintf(&plain, "Dear %s,\n\nInvoice %s from %s\n\n", inv.GuestName, inv.BillNumber, inv.HotelName)
	for _, l := range inv.Lines {
		fmt.Fprintf(&plain, "%-40s %3d x %10s = %10s\n", l.Description, l.Quantity, l.UnitPrice, l.Total)
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			htmlEscape(l.Description), l.Quantity, htmlEscape(l.UnitPrice), htmlEscape(l.Total))
	}
	fmt.Fprintf(&plain, "\nSubtotal: %s %s\nTax: %s %s\nTotal: %s %s\nPaid: %s %s\nBalance: %s %s\n",
		inv.Currency, inv.Subtotal, inv.Currency, inv.Tax, inv.Currency, inv.Total,
		inv.Currency, inv.Paid, inv.Currency, inv.Remaining)
	if inv.Footer != "" {
		plain.WriteString("\n" + inv.Footer + "\n")
	}

	html := fmt.Sprintf(`<!doctype html>
<html>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
<h2>%s</h2>
<p>Invoice <strong>%s</strong> for %s</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Description</th><th>Qty</th><th>Unit</th><th>Total</th></tr>
%s
</table>
<p>Subtotal: %s %s<br>Tax: %s %s<br><strong>Total: %s %s</strong><br>Paid: %s %s<br>Balance: %s %s</p>
<p>%s</p>
</body>
</html>`,
		htmlEscape(inv.HotelName), htmlEscape(inv.BillNumber), htmlEscape(inv.GuestName), rows.String(),
		inv.Currency, inv.Subtotal, inv.Currency, inv.Tax, inv.Currency, inv.Total,
		inv.Currency, inv.Paid, inv.Currency, inv.Remaining, htmlEscape(inv.Footer))

	return m.deliver(to, fmt.Sprintf("Invoice %s", safeHeader(inv.BillNumber)), plain.String(), html)
}

// ----------------------------------------------------
// transport
// ----------------------------------------------------

func (m *Mailer) deliver(to, subject, plain, html string) error {
	to = safeHeader(to)
	if to == "" {
		return errors.New("recipient address is empty")
	}
	if !m.Configured() {
		m.log.WithFields(logrus.Fields{"to": MaskEmail(to), "subject": subject}).Info("[MOCK EMAIL] smtp not configured")
		return nil
	}

	from := fmt.Sprintf("%s <%s>", safeHeader(m.cfg.FromName), m.cfg.Username)
	msg := buildMessage(from, to, subject, plain, html)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	if err := m.send(addr, auth, m.cfg.Username, []string{to}, msg); err != nil {
		m.log.WithError(err).WithField("to", MaskEmail(to)).Error("sending email failed")
		return err
	}
	m.log.WithFields(logrus.Fields{"to": MaskEmail(to), "subject": subject}).Info("email sent")
	return nil
}

const mailBoundary = "----=_BACKOFFICE_MAIL_BOUNDARY"

func buildMessage(from, to, subject, plain, html string) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", mailBoundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", mailBoundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plain + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", mailBoundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(html + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", mailBoundary))
	return []byte(sb.String())
}

// ----------------------------------------------------
// helpers
// ----------------------------------------------------

func safeHeader(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// GenerateSecureToken returns length random bytes hex-encoded.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MaskEmail hides most of the local part and domain name for logs.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}
	local, domain := parts[0], parts[1]

	maskedLocal := local
	if len(local) > 2 {
		maskedLocal = local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	} else if len(local) == 2 {
		maskedLocal = local[:1] + "*"
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) >= 2 && len(domainParts[0]) > 1 {
		domainParts[0] = domainParts[0][:1] + strings.Repeat("*", len(domainParts[0])-1)
	}
	return maskedLocal + "@" + strings.Join(domainParts, ".")
}
