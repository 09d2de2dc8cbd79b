package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

// DefaultMismatchThreshold is the largest tolerated shortfall between the
// recorded order total and the amount a payment provider reports.
const DefaultMismatchThreshold = 0.10

// maxUpdateAttempts bounds the read-modify-write retry loop on concurrent
// status updates.
const maxUpdateAttempts = 3

// ErrAmountMismatch is the unwrap target of AmountMismatchError.
var ErrAmountMismatch = errors.New("payment amount mismatch")

// AmountMismatchError reports a payment that falls short of the recorded
// order total beyond the tolerated threshold, or a confirmation event that
// carried no amount at all. Overpayment is never an error.
type AmountMismatchError struct {
	// Difference is total minus amountPaid: positive means underpayment.
	Difference float64
}

func NewAmountMismatchError(difference float64) *AmountMismatchError {
	return &AmountMismatchError{Difference: difference}
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment amount mismatch: difference is %.2f", e.Difference)
}

func (e *AmountMismatchError) Unwrap() error {
	return ErrAmountMismatch
}

// UpdateOrderStatusCommandHandler applies canonical events to the order state
// machine. Confirmation events are reconciled against the recorded order
// total before the transition is attempted. Writes are conditional on the
// status the order was read with; on a write conflict the whole
// read-reconcile-transition sequence is retried a bounded number of times.
type UpdateOrderStatusCommandHandler struct {
	uowFactory        OrderUoWFactory
	mismatchThreshold float64
	logger            *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status update
// operations. mismatchThreshold caps the tolerated payment difference; pass
// DefaultMismatchThreshold unless configuration overrides it.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory, mismatchThreshold float64, logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return UpdateOrderStatusCommandHandler{
		uowFactory:        uowFactory,
		mismatchThreshold: mismatchThreshold,
		logger:            logger.With("component", "update-order-status"),
	}
}

// Handle processes the status update command.
// Returns *order.InvalidTransitionError when the state machine rejects the
// move, *AmountMismatchError when payment reconciliation fails, and
// ports.ErrConcurrentModification when every retry lost the write race.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err = h.applyOnce(ctx, cmd)
		if !errors.Is(err, ports.ErrConcurrentModification) {
			return err
		}

		h.logger.WarnContext(ctx, "status update lost write race, retrying",
			"orderId", cmd.OrderID().String(),
			"event", cmd.Event().String(),
			"attempt", attempt)
	}

	return err
}

func (h *UpdateOrderStatusCommandHandler) applyOnce(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	readStatus := aggregate.Status()

	if cmd.Event() == events.Confirmed {
		if err = h.reconcileAmount(ctx, cmd, aggregate); err != nil {
			return err
		}
	}

	if err = aggregate.ChangeStatus(cmd.Event().TargetStatus()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate, readStatus); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// reconcileAmount compares the reported payment against the recorded total.
// An underpayment beyond the threshold (or a missing or zero amount) blocks
// confirmation; any other non-zero difference, overpayment included, is
// logged and the order keeps its recorded total.
func (h *UpdateOrderStatusCommandHandler) reconcileAmount(
	ctx context.Context, cmd UpdateOrderStatusCommand, aggregate *order.Order,
) error {
	paid := cmd.AmountPaid()
	if paid == nil || *paid == 0 {
		return NewAmountMismatchError(aggregate.TotalAmount())
	}

	difference := aggregate.TotalAmount() - *paid
	if difference > h.mismatchThreshold {
		return NewAmountMismatchError(difference)
	}

	if difference != 0 {
		h.logger.WarnContext(ctx, "payment amount differs from order total within threshold",
			"orderId", cmd.OrderID().String(),
			"total", aggregate.TotalAmount(),
			"amountPaid", *paid,
			"difference", difference)
	}

	return nil
}
