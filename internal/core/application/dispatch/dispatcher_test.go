package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"ordertrack/internal/core/application/dispatch"
	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() (*dispatch.Dispatcher, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return dispatch.NewDispatcher(logger), &buf
}

func TestDispatcher_EnsureRegistered(t *testing.T) {
	d, _ := newTestDispatcher()
	noop := func(_ context.Context, _ events.Notification) error { return nil }

	t.Run("reports every missing handler", func(t *testing.T) {
		err := d.EnsureRegistered(events.AllEventTypes()...)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONFIRMED")
		assert.Contains(t, err.Error(), "DELIVERED")
	})

	t.Run("passes once all handlers are bound", func(t *testing.T) {
		for _, eventType := range events.AllEventTypes() {
			d.Register(eventType, noop)
		}

		require.NoError(t, d.EnsureRegistered(events.AllEventTypes()...))
	})
}

func TestDispatcher_Publish(t *testing.T) {
	notification := events.CancellationRequest{OrderID: "ORD-25-AB12345678"}

	t.Run("invokes the bound handler with the notification", func(t *testing.T) {
		d, _ := newTestDispatcher()
		var got events.Notification
		d.Register(events.Cancelled, func(_ context.Context, n events.Notification) error {
			got = n
			return nil
		})

		d.Publish(t.Context(), events.Cancelled, notification)

		assert.Equal(t, notification, got)
	})

	t.Run("swallows domain failures at warn level", func(t *testing.T) {
		d, buf := newTestDispatcher()
		d.Register(events.Cancelled, func(_ context.Context, _ events.Notification) error {
			return order.NewInvalidTransitionError(order.Delivered, order.Cancelled)
		})

		d.Publish(t.Context(), events.Cancelled, notification)

		assert.Contains(t, buf.String(), "level=WARN")
		assert.NotContains(t, buf.String(), "level=ERROR")
	})

	t.Run("swallows unknown orders at warn level", func(t *testing.T) {
		d, buf := newTestDispatcher()
		d.Register(events.Cancelled, func(_ context.Context, _ events.Notification) error {
			return errs.NewObjectNotFoundError("orderId", notification.OrderID)
		})

		d.Publish(t.Context(), events.Cancelled, notification)

		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("unexpected failures log at error level", func(t *testing.T) {
		d, buf := newTestDispatcher()
		d.Register(events.Cancelled, func(_ context.Context, _ events.Notification) error {
			return errors.New("database on fire")
		})

		d.Publish(t.Context(), events.Cancelled, notification)

		assert.Contains(t, buf.String(), "level=ERROR")
	})

	t.Run("missing handler logs instead of panicking", func(t *testing.T) {
		d, buf := newTestDispatcher()

		d.Publish(t.Context(), events.Shipped, notification)

		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "SHIPPED")
	})
}
