package delivery

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-mail-verify/internal/domain"
	"github.com/go-mail-verify/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

func (m *mockMailer) Probe() error {
	return m.Called().Error(0)
}

// blockingMailer never completes a send within any test timeframe.
type blockingMailer struct{ release chan struct{} }

func (b *blockingMailer) SendEmail(string, string, string) error {
	<-b.release
	return nil
}

func (b *blockingMailer) Probe() error {
	<-b.release
	return nil
}

func TestSend_Success_ReturnsReceipt(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", "a@b.com", "Hello", "<p>hi</p>").Return(nil)

	g := NewGateway(ml, clock.New(), time.Second, time.Second)
	receipt, err := g.Send(context.Background(), "a@b.com", "Hello", "<p>hi</p>")

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", receipt.Recipient)
	assert.Len(t, receipt.MessageID, 26) // ULID
	ml.AssertNumberOfCalls(t, "SendEmail", 1)
}

func TestSend_BoundElapses_ReturnsTimeout(t *testing.T) {
	bm := &blockingMailer{release: make(chan struct{})}
	defer close(bm.release)

	g := NewGateway(bm, clock.New(), 30*time.Millisecond, time.Second)
	_, err := g.Send(context.Background(), "a@b.com", "Hello", "body")

	de, ok := domain.IsDeliveryError(err)
	require.True(t, ok)
	assert.Equal(t, domain.DeliveryTimeout, de.Kind)
}

func TestSend_AuthError_Classified(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(&textproto.Error{Code: 535, Msg: "authentication credentials invalid"})

	g := NewGateway(ml, clock.New(), time.Second, time.Second)
	_, err := g.Send(context.Background(), "a@b.com", "Hello", "body")

	de, ok := domain.IsDeliveryError(err)
	require.True(t, ok)
	assert.Equal(t, domain.DeliveryAuthFailure, de.Kind)
}

func TestSend_DialError_Classified(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	g := NewGateway(ml, clock.New(), time.Second, time.Second)
	_, err := g.Send(context.Background(), "a@b.com", "Hello", "body")

	de, ok := domain.IsDeliveryError(err)
	require.True(t, ok)
	assert.Equal(t, domain.DeliveryConnectionFailure, de.Kind)
}

func TestSend_UnknownError_ClassifiedOther(t *testing.T) {
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("short write"))

	g := NewGateway(ml, clock.New(), time.Second, time.Second)
	_, err := g.Send(context.Background(), "a@b.com", "Hello", "body")

	de, ok := domain.IsDeliveryError(err)
	require.True(t, ok)
	assert.Equal(t, domain.DeliveryOther, de.Kind)
}

func TestProbe_BoundElapses(t *testing.T) {
	bm := &blockingMailer{release: make(chan struct{})}
	defer close(bm.release)

	g := NewGateway(bm, clock.New(), time.Second, 30*time.Millisecond)
	assert.Error(t, g.Probe(context.Background()))
}

func TestProbe_Success(t *testing.T) {
	ml := &mockMailer{}
	ml.On("Probe").Return(nil)

	g := NewGateway(ml, clock.New(), time.Second, time.Second)
	assert.NoError(t, g.Probe(context.Background()))
}
