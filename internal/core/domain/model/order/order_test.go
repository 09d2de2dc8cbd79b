package order_test

import (
	"testing"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.Item {
	t.Helper()

	first, err := order.NewItem(kernel.NewUUID(), 2, 17.95)
	require.NoError(t, err)
	second, err := order.NewItem(kernel.NewUUID(), 1, 94.35)
	require.NoError(t, err)

	return []order.Item{first, second}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(order.GenerateID("ORD"), kernel.NewUUID(), time.Now(), testItems(t))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts in Pending with a derived total", func(t *testing.T) {
		id := order.GenerateID("ORD")
		customerID := kernel.NewUUID()
		orderDate := time.Now()
		items := testItems(t)

		o, err := order.NewOrder(id, customerID, orderDate, items)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.Equal(t, orderDate, o.OrderDate())
		// 2*17.95 + 1*94.35
		assert.InDelta(t, 130.25, o.TotalAmount(), 1e-9)
		require.NoError(t, o.Validate())
	})

	t.Run("requires at least one item", func(t *testing.T) {
		_, err := order.NewOrder(order.GenerateID("ORD"), kernel.NewUUID(), time.Now(), nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a valid identifier and customer", func(t *testing.T) {
		_, err := order.NewOrder(order.ID{}, kernel.NewUUID(), time.Now(), testItems(t))
		require.Error(t, err)

		_, err = order.NewOrder(order.GenerateID("ORD"), kernel.UUID{}, time.Now(), testItems(t))
		require.Error(t, err)
	})

	t.Run("requires an order date", func(t *testing.T) {
		_, err := order.NewOrder(order.GenerateID("ORD"), kernel.NewUUID(), time.Time{}, testItems(t))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("item order is preserved and defensively copied", func(t *testing.T) {
		items := testItems(t)
		o, err := order.NewOrder(order.GenerateID("ORD"), kernel.NewUUID(), time.Now(), items)
		require.NoError(t, err)

		got := o.Items()
		require.Len(t, got, 2)
		assert.Equal(t, items[0], got[0])
		assert.Equal(t, items[1], got[1])

		// mutating the returned slice must not affect the aggregate
		got[0] = got[1]
		assert.Equal(t, items[0], o.Items()[0])
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("rehydrates with the stored status", func(t *testing.T) {
		o, err := order.RestoreOrder(
			order.GenerateID("ORD"), kernel.NewUUID(), time.Now(), testItems(t), order.Shipped)

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("recomputes the total from the items", func(t *testing.T) {
		items := testItems(t)
		o, err := order.RestoreOrder(
			order.GenerateID("ORD"), kernel.NewUUID(), time.Now(), items, order.Confirmed)

		require.NoError(t, err)
		assert.InDelta(t, items[0].Subtotal()+items[1].Subtotal(), o.TotalAmount(), 1e-9)
	})

	t.Run("rejects invalid status values", func(t *testing.T) {
		_, err := order.RestoreOrder(
			order.GenerateID("ORD"), kernel.NewUUID(), time.Now(), testItems(t), order.Unknown)

		require.Error(t, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("walks the happy path to delivery", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStatus(order.Confirmed))
		require.NoError(t, o.ChangeStatus(order.Shipped))
		require.NoError(t, o.ChangeStatus(order.Delivered))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("shipment before confirmation is rejected", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.Shipped)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Confirmed))
		require.NoError(t, o.ChangeStatus(order.Shipped))
		require.NoError(t, o.ChangeStatus(order.Delivered))

		for _, target := range allStatuses() {
			err := o.ChangeStatus(target)
			require.Error(t, err, "delivered order accepted transition to %s", target)
		}
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestOrder_UpdateDetails(t *testing.T) {
	t.Run("replaces details and recomputes the total", func(t *testing.T) {
		o := newTestOrder(t)
		newCustomer := kernel.NewUUID()
		newDate := time.Now().Add(time.Hour)
		newItem, err := order.NewItem(kernel.NewUUID(), 4, 5.25)
		require.NoError(t, err)

		require.NoError(t, o.UpdateDetails(newCustomer, newDate, []order.Item{newItem}))

		assert.True(t, o.CustomerID().IsEqual(newCustomer))
		assert.Equal(t, newDate, o.OrderDate())
		assert.InDelta(t, 21.0, o.TotalAmount(), 1e-9)
	})

	t.Run("does not touch status", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Confirmed))

		require.NoError(t, o.UpdateDetails(kernel.NewUUID(), time.Now(), testItems(t)))

		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("failure leaves the order unmodified", func(t *testing.T) {
		o := newTestOrder(t)
		originalCustomer := o.CustomerID()
		originalTotal := o.TotalAmount()

		err := o.UpdateDetails(kernel.NewUUID(), time.Now(), nil)

		require.Error(t, err)
		assert.True(t, o.CustomerID().IsEqual(originalCustomer))
		assert.InDelta(t, originalTotal, o.TotalAmount(), 1e-9)
		assert.Len(t, o.Items(), 2)
	})
}

func TestOrder_Validate(t *testing.T) {
	var unconstructed order.Order

	require.ErrorIs(t, unconstructed.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (*order.Order)(nil).Validate(), order.ErrOrderIsNotConstructed)
	require.NoError(t, newTestOrder(t).Validate())
}
