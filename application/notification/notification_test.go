package notification

import (
	"context"
	"errors"
	"testing"

	"invoicing/domain/notification"
	"invoicing/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDriver struct {
	sent []notification.Message
	err  error
}

func (d *recordingDriver) Send(_ context.Context, msg notification.Message) error {
	d.sent = append(d.sent, msg)
	return d.err
}

func (d *recordingDriver) Name() string { return "recording" }

func TestFacade_Notify(t *testing.T) {
	driver := &recordingDriver{}
	facade := NewFacade(driver)

	err := facade.Notify(context.Background(), notification.NotifyRequest{
		ResourceID: "0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70",
		ToEmail:    "john@example.com",
		Subject:    "Invoice for John Doe",
		Message:    "Please find your invoice attached.",
	})

	require.NoError(t, err)
	require.Len(t, driver.sent, 1)
	assert.Equal(t, notification.Message{
		To:        "john@example.com",
		Subject:   "Invoice for John Doe",
		Body:      "Please find your invoice attached.",
		Reference: "0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70",
	}, driver.sent[0])
}

func TestFacade_Notify_DriverFailure(t *testing.T) {
	cause := errors.New("connection refused")
	facade := NewFacade(&recordingDriver{err: cause})

	err := facade.Notify(context.Background(), notification.NotifyRequest{ResourceID: "r", ToEmail: "a@b.c"})

	require.Error(t, err)
	assert.ErrorIs(t, err, notification.ErrNotificationFailed)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "recording driver")
}

func TestService_Delivered(t *testing.T) {
	bus := shared.NewEventBus()
	var received []string
	require.NoError(t, bus.Subscribe(notification.ResourceDeliveredEventName,
		shared.NewFuncHandler("recorder", func(_ context.Context, e shared.DomainEvent) error {
			delivered, ok := e.(*notification.ResourceDeliveredEvent)
			require.True(t, ok)
			received = append(received, delivered.ResourceID())
			return nil
		})))

	svc := NewService(bus)

	require.NoError(t, svc.Delivered(context.Background(), "0192F0C4-7A4B-7C3E-9D1A-2B3C4D5E6F70"))

	// the reference is normalised to the canonical lowercase form
	assert.Equal(t, []string{"0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70"}, received)
}

func TestService_Delivered_InvalidReference(t *testing.T) {
	bus := shared.NewEventBus()
	called := false
	require.NoError(t, bus.Subscribe(notification.ResourceDeliveredEventName,
		shared.NewFuncHandler("recorder", func(context.Context, shared.DomainEvent) error {
			called = true
			return nil
		})))

	err := NewService(bus).Delivered(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, notification.ErrInvalidReference)
	assert.False(t, called)
}

func TestService_Delivered_HandlerErrorPropagates(t *testing.T) {
	bus := shared.NewEventBus()
	require.NoError(t, bus.Subscribe(notification.ResourceDeliveredEventName,
		shared.NewFuncHandler("failing", func(context.Context, shared.DomainEvent) error {
			return errors.New("db down")
		})))

	err := NewService(bus).Delivered(context.Background(), "0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
