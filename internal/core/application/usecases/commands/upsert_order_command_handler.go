package commands

import (
	"context"
	"errors"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/errs"
)

// UpsertOrderCommandHandler creates orders that do not exist yet and updates
// the details of orders that do. Status is never written from the command:
// new orders always start Pending, and existing orders keep the status they
// already carry. A client-originated request whose claimed status disagrees
// with the stored one is rejected before anything is persisted.
type UpsertOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpsertOrderCommandHandler creates a handler for order upsert operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewUpsertOrderCommandHandler(uowFactory OrderUoWFactory) UpsertOrderCommandHandler {
	return UpsertOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the upsert command.
// The update path writes conditionally on the status the order was read
// with, so a status transition racing this upsert makes the write fail with
// ports.ErrConcurrentModification instead of silently interleaving.
func (h *UpsertOrderCommandHandler) Handle(ctx context.Context, cmd UpsertOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	existing, err := repo.Get(ctx, cmd.OrderID())
	switch {
	case err == nil:
		if err = h.updateExisting(ctx, cmd, existing, repo); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		if err = h.createNew(ctx, cmd, repo); err != nil {
			return err
		}
	default:
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpsertOrderCommandHandler) createNew(
	ctx context.Context, cmd UpsertOrderCommand, repo ports.OrderRepository,
) error {
	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.OrderDate(), cmd.Items())
	if err != nil {
		return err
	}

	return repo.Add(ctx, aggregate)
}

func (h *UpsertOrderCommandHandler) updateExisting(
	ctx context.Context, cmd UpsertOrderCommand, existing *order.Order, repo ports.OrderRepository,
) error {
	readStatus := existing.Status()

	if cmd.ClientOrigin() && cmd.ClaimedStatus() != order.Unknown && cmd.ClaimedStatus() != readStatus {
		return order.NewInvalidTransitionError(readStatus, cmd.ClaimedStatus())
	}

	if err := existing.UpdateDetails(cmd.CustomerID(), cmd.OrderDate(), cmd.Items()); err != nil {
		return err
	}

	return repo.Update(ctx, existing, readStatus)
}
