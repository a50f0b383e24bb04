package smtp

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/go-mail-verify/internal/config"
)

// Mailer is the outbound email transport capability. It performs exactly one
// SMTP transaction per SendEmail call; waiting bounds and failure
// classification are layered on top by the delivery gateway.
type Mailer interface {
	SendEmail(to, subject, htmlBody string) error
	Probe() error
}

type mailer struct {
	host     string
	port     string
	from     string
	fromName string
	username string
	password string

	// Transport-level timeouts, fixed at setup rather than per call.
	connectTimeout  time.Duration
	greetingTimeout time.Duration
	socketTimeout   time.Duration
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:            cfg.SMTPHost,
		port:            cfg.SMTPPort,
		from:            cfg.SMTPFrom,
		fromName:        cfg.SMTPFromName,
		username:        cfg.SMTPUsername,
		password:        cfg.SMTPPassword,
		connectTimeout:  60 * time.Second,
		greetingTimeout: 30 * time.Second,
		socketTimeout:   60 * time.Second,
	}
}

func (m *mailer) addr() string { return net.JoinHostPort(m.host, m.port) }

// dial opens the connection and completes the server greeting under the
// transport timeouts. Dial and auth errors pass through unwrapped
// (*net.OpError, *textproto.Error) so the gateway can classify them.
func (m *mailer) dial() (*smtp.Client, net.Conn, error) {
	conn, err := net.DialTimeout("tcp", m.addr(), m.connectTimeout)
	if err != nil {
		return nil, nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(m.greetingTimeout))
	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(m.socketTimeout))
	return c, conn, nil
}

func (m *mailer) SendEmail(to, subject, htmlBody string) error {
	c, conn, err := m.dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		// Self-signed certificates are common on relay hosts we don't control.
		if err := c.StartTLS(&tls.Config{ServerName: m.host, InsecureSkipVerify: true}); err != nil {
			return err
		}
	}
	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.fromName, m.from, to, subject, htmlBody)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// Probe opens a connection, completes the greeting and quits. Used only for
// the best-effort startup connectivity check.
func (m *mailer) Probe() error {
	c, conn, err := m.dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	return c.Quit()
}
