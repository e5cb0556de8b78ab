package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/dtroode/newsletter-server/internal/model"
)

var _ model.EmailSender = (*SMTPClient)(nil)

// SMTPClient submits email to a relay over SMTP. STARTTLS is used when the
// relay offers it, and PLAIN auth when credentials are set.
type SMTPClient struct {
	host   string
	addr   string
	sender string
	auth   smtp.Auth
	now    func() time.Time
}

func NewSMTPClient(host, port, sender, username, password string) *SMTPClient {
	c := &SMTPClient{
		host:   host,
		addr:   net.JoinHostPort(host, port),
		sender: sender,
		now:    time.Now,
	}
	if username != "" {
		c.auth = smtp.PlainAuth("", username, password, host)
	}
	return c
}

// Send delivers e. The whole SMTP conversation is bounded by ctx's deadline.
func (c *SMTPClient) Send(ctx context.Context, e model.Email) error {
	msg, err := Render(c.sender, e, c.now())
	if err != nil {
		return err
	}

	if err := c.send(ctx, e.To, msg); err != nil {
		return fmt.Errorf("%w: %w", model.ErrEmailDelivery, err)
	}
	return nil
}

func (c *SMTPClient) send(ctx context.Context, to string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, c.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start smtp session: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: c.host}); err != nil {
			return fmt.Errorf("failed to start tls: %w", err)
		}
	}
	if c.auth != nil {
		if err := client.Auth(c.auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(c.sender); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to submit message: %w", err)
	}

	return client.Quit()
}
