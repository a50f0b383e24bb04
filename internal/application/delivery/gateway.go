package delivery

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/textproto"
	"time"

	"github.com/go-mail-verify/internal/domain"
	"github.com/go-mail-verify/internal/infrastructure/smtp"
	"github.com/go-mail-verify/internal/pkg/clock"
	"github.com/go-mail-verify/internal/pkg/id"
)

// Gateway is the bounded-latency wrapper around the mail transport.
type Gateway interface {
	// Send transmits exactly one message. On success it returns a receipt;
	// on failure a *domain.DeliveryError. There is no retry and no queuing.
	Send(ctx context.Context, recipient, subject, body string) (*domain.Receipt, error)
	// Probe is a best-effort connectivity check with its own shorter bound.
	// A probe failure never blocks later sends.
	Probe(ctx context.Context) error
}

type gateway struct {
	mailer       smtp.Mailer
	clk          clock.Clock
	sendTimeout  time.Duration
	probeTimeout time.Duration
}

func NewGateway(mailer smtp.Mailer, clk clock.Clock, sendTimeout, probeTimeout time.Duration) Gateway {
	return &gateway{
		mailer:       mailer,
		clk:          clk,
		sendTimeout:  sendTimeout,
		probeTimeout: probeTimeout,
	}
}

func (g *gateway) Send(ctx context.Context, recipient, subject, body string) (*domain.Receipt, error) {
	messageID := id.New()
	done := make(chan error, 1)
	go func() {
		done <- g.mailer.SendEmail(recipient, subject, body)
	}()

	timer := time.NewTimer(g.sendTimeout)
	defer timer.Stop()

	// The transport call is not cancelled on timeout; with no retry a
	// duplicate send cannot result.
	select {
	case err := <-done:
		if err != nil {
			de := classify(err)
			slog.Error("email delivery failed", "message_id", messageID, "to", recipient, "kind", de.Kind, "err", err)
			return nil, de
		}
	case <-timer.C:
		slog.Error("email delivery timed out", "message_id", messageID, "to", recipient, "timeout", g.sendTimeout)
		return nil, &domain.DeliveryError{Kind: domain.DeliveryTimeout, Err: errors.New("send exceeded bound")}
	case <-ctx.Done():
		slog.Error("email delivery cancelled", "message_id", messageID, "to", recipient, "err", ctx.Err())
		return nil, &domain.DeliveryError{Kind: domain.DeliveryTimeout, Err: ctx.Err()}
	}

	slog.Info("email sent", "message_id", messageID, "to", recipient, "subject", subject)
	return &domain.Receipt{
		MessageID: messageID,
		Recipient: recipient,
		SentAt:    g.clk.Now(),
	}, nil
}

func (g *gateway) Probe(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- g.mailer.Probe() }()

	timer := time.NewTimer(g.probeTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return errors.New("probe exceeded bound")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// classify maps a transport error onto the delivery taxonomy. SMTP 530/534/535
// replies mean the relay rejected our credentials; dial-level errors mean we
// never reached it.
func classify(err error) *domain.DeliveryError {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return &domain.DeliveryError{Kind: domain.DeliveryAuthFailure, Err: err}
		}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &domain.DeliveryError{Kind: domain.DeliveryConnectionFailure, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.DeliveryError{Kind: domain.DeliveryTimeout, Err: err}
	}
	return &domain.DeliveryError{Kind: domain.DeliveryOther, Err: err}
}
