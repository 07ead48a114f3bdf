package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"

	"pricewatch/internal/models"
)

// SMTPMailer sends alerts over SMTP with implicit TLS (smtps, port 465).
// Credentials come from EMAIL_USER / EMAIL_PASS and the recipient from
// ALERT_TO when constructed by the CLI.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	to       string
	logger   *slog.Logger
}

func NewSMTPMailer(host string, port int, username, password, to string, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		to:       to,
		logger:   logger,
	}
}

// Notify renders the changes and sends a single multipart alert email.
func (m *SMTPMailer) Notify(ctx context.Context, changes []models.Change) error {
	n, err := BuildNotification(m.to, changes)
	if err != nil {
		return err
	}
	return m.Send(ctx, n)
}

// Send delivers a rendered notification.
func (m *SMTPMailer) Send(ctx context.Context, n models.Notification) error {
	msg, err := buildMessage(m.username, n)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}
	if err := client.Mail(m.username); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(n.Email); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	m.logger.Info("sent notification email", slog.String("to", n.Email))
	return client.Quit()
}

// buildMessage assembles a multipart/alternative MIME message with plain-text
// and HTML parts.
func buildMessage(from string, n models.Notification) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", n.Email)
	fmt.Fprintf(&buf, "Subject: %s\r\n", n.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=utf-8", n.TextBody},
		{"text/html; charset=utf-8", n.HTMLBody},
	}
	for _, part := range parts {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Type", part.contentType)
		pw, err := mw.CreatePart(hdr)
		if err != nil {
			return nil, fmt.Errorf("failed to create MIME part: %w", err)
		}
		if _, err := pw.Write([]byte(part.body)); err != nil {
			return nil, fmt.Errorf("failed to write MIME part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close MIME message: %w", err)
	}
	return buf.Bytes(), nil
}
