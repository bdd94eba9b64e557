package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"
)

// smsSubject is the fixed subject line; carrier gateways show it as
// the SMS prefix.
const smsSubject = "Pagewatch Notifier"

const smtpDialTimeout = 15 * time.Second

// EmailChannel sends the alert as SMS through carrier email gateways:
// an authenticated SMTP submission to <number>@<carrierGatewayHost>.
type EmailChannel struct {
	host     string
	port     int
	from     string
	password string
	to       []GatewayRecipient
}

// NewEmailChannel creates the channel. Host defaults to Gmail's
// submission endpoint when empty.
func NewEmailChannel(host string, port int, from, appPassword string, to []GatewayRecipient) *EmailChannel {
	if host == "" {
		host = "smtp.gmail.com"
	}
	if port == 0 {
		port = 587
	}
	return &EmailChannel{host: host, port: port, from: from, password: appPassword, to: to}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Recipients() []string {
	out := make([]string, len(c.to))
	for i, r := range c.to {
		out[i] = r.Address()
	}
	return out
}

// Deliver submits one message over SMTP with STARTTLS and PLAIN auth.
func (c *EmailChannel) Deliver(ctx context.Context, recipient string, msg Message) error {
	addr := fmt.Sprintf("%s:%d", c.host, c.port)

	d := net.Dialer{Timeout: smtpDialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, c.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: c.host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", c.from, c.password, c.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(c.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMail(c.from, recipient, smsSubject, msg.text())); err != nil {
		return fmt.Errorf("writing mail body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing mail body: %w", err)
	}

	return client.Quit()
}

func buildMail(from, to, subject, body string) []byte {
	return []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
