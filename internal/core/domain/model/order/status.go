package order

import (
	"errors"
	"fmt"
	"strings"

	"ordertrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
// It implements a state machine with a fixed transition table:
//
//	Pending ──┬──> Confirmed ──┬──> Shipped ──> Delivered
//	          │                │
//	          └──> Cancelled <─┘
//
// Delivered and Cancelled are terminal. Transitions outside the table fail,
// including "transitions" to the current status; same-status upserts are a
// separate code path handled by the upsert use case.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every newly created order.
	Pending

	// Confirmed indicates payment was approved and reconciled.
	Confirmed

	// Shipped indicates the carrier has dispatched the order.
	Shipped

	// Delivered is the terminal success state.
	Delivered

	// Cancelled is the terminal failure state, reached from Pending or
	// Confirmed via a cancellation request or a failed payment.
	Cancelled
)

// ErrInvalidTransition is the unwrap target of InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports an attempted status change that is not in
// the transition table, or a status change attempted through the wrong
// channel (direct client upsert instead of a canonical event).
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// statusNames maps every Status, including Unknown, to its wire name.
func statusNames() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Confirmed: "CONFIRMED",
		Shipped:   "SHIPPED",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// validStatusNames maps only the five valid statuses.
func validStatusNames() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Confirmed: "CONFIRMED",
		Shipped:   "SHIPPED",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// allowedTransitions is the fixed successor table. Absent pairs, including
// self-transitions, are illegal.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Shipped, Cancelled},
		Shipped:   {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// ParseStatus is the non-failing, case-insensitive lookup primitive.
// StatusFromString and IsValidStatus are both built on top of it; validity
// probing never goes through an error path.
func ParseStatus(value string) (Status, bool) {
	name := strings.ToUpper(value)
	for status, statusName := range validStatusNames() {
		if statusName == name {
			return status, true
		}
	}
	return Unknown, false
}

// IsValidStatus reports whether value names one of the five statuses,
// ignoring case.
func IsValidStatus(value string) bool {
	_, ok := ParseStatus(value)
	return ok
}

// StatusFromString parses a status name, ignoring case.
// Fails with a ValueIsInvalidError for anything else.
func StatusFromString(value string) (Status, error) {
	status, ok := ParseStatus(value)
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status", value))
	}
	return status, nil
}

// Validate checks that the Status value is one of the five valid statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := validStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid
// values. Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// TransitionTo validates a transition against the successor table.
//
// Returns:
//   - (target, nil) when target is an allowed successor of s
//   - (Unknown, *InvalidTransitionError) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	for _, next := range allowedTransitions()[s] {
		if next == target {
			return target, nil
		}
	}

	return Unknown, NewInvalidTransitionError(s, target)
}
