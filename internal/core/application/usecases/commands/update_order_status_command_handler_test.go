package commands_test

import (
	"testing"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStatusHandler(factory commands.OrderUoWFactory) commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(
		factory, commands.DefaultMismatchThreshold, nil)
}

func TestUpdateOrderStatusCommandHandler_Handle_ConfirmsWithExactAmount(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	existing := storedOrder(t, orderID, order.Pending)
	paid := existing.TotalAmount()
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Confirmed, &paid)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(existing, nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Confirmed
		}), order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ToleratesSmallDifference(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	existing := storedOrder(t, orderID, order.Pending)
	paid := existing.TotalAmount() - 0.05 // within the 0.10 threshold
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Confirmed, &paid)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(existing, nil).Once(),
		repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), order.Pending).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ConfirmsOverpayment(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	existing := storedOrder(t, orderID, order.Pending)
	// only a shortfall blocks confirmation; paying too much just gets logged
	paid := existing.TotalAmount() + 0.50
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Confirmed, &paid)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(existing, nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Confirmed
		}), order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_RejectsLargeMismatch(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	existing := storedOrder(t, orderID, order.Pending)
	paid := existing.TotalAmount() - 5.00
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Confirmed, &paid)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAmountMismatch)
	var mismatchErr *commands.AmountMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	require.InDelta(t, 5.00, mismatchErr.Difference, 1e-9)
	require.Equal(t, order.Pending, existing.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_RejectsMissingAmount(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	existing := storedOrder(t, orderID, order.Pending)
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Confirmed, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAmountMismatch)
}

func TestUpdateOrderStatusCommandHandler_Handle_RejectsZeroAmount(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	existing := storedOrder(t, orderID, order.Pending)
	paid := 0.0
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Confirmed, &paid)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAmountMismatch)
	var mismatchErr *commands.AmountMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	require.InDelta(t, existing.TotalAmount(), mismatchErr.Difference, 1e-9)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransitionPropagates(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	existing := storedOrder(t, orderID, order.Pending)
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Shipped, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	require.Equal(t, order.Pending, existing.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_RetriesOnWriteConflict(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Delivered, nil)
	require.NoError(t, err)

	// first attempt loses the race; the second re-reads and succeeds
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, orderID).
		Return(storedOrder(t, orderID, order.Shipped), nil).Once()
	repo.On("Get", mock.Anything, orderID).
		Return(storedOrder(t, orderID, order.Shipped), nil).Once()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), order.Shipped).
		Return(ports.ErrConcurrentModification).Once()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), order.Shipped).
		Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_GivesUpAfterBoundedRetries(t *testing.T) {
	ctx := t.Context()
	orderID := order.GenerateID("ORD")
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, events.Delivered, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	for range 3 {
		repo.On("Get", mock.Anything, orderID).
			Return(storedOrder(t, orderID, order.Shipped), nil).Once()
	}
	repo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order"), order.Shipped).
		Return(ports.ErrConcurrentModification).Times(3)

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("OrderRepository").Return(repo).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	h := newStatusHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrConcurrentModification)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateOrderStatusCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)

	h := newStatusHandler(factory)

	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
