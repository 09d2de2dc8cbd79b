package order

import (
	"math"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

// Item is an immutable order line: a product, a quantity and the unit price
// at the time the order was placed. Items are only created through NewItem
// and never mutated afterwards.
type Item struct {
	productID kernel.UUID
	quantity  int
	unitPrice float64
}

// NewItem creates a validated line item.
// Quantity must be at least 1 and unitPrice must not be negative.
func NewItem(productID kernel.UUID, quantity int, unitPrice float64) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt)
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("unitPrice", unitPrice, 0.0, math.MaxFloat64)
	}

	return Item{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ProductID returns the product identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}
