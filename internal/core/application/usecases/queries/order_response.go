// Package queries contains read-only operations against the order store.
// Implements the Query side of the CQRS architecture: handlers bypass the
// domain model and read projections straight from the database.
package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// OrderResponse is the read model returned by order queries.
type OrderResponse struct {
	OrderID     string
	CustomerID  string
	OrderDate   time.Time
	Status      string
	TotalAmount float64
	Items       []ItemResponse
}

// ItemResponse is one order line in the read model.
type ItemResponse struct {
	ProductID string
	Quantity  int
	UnitPrice float64
}

const selectOrdersSQL = `
	SELECT
		id,
		customer_id,
		order_date,
		status,
		total_amount
	FROM orders
`

// fetchOrders runs an order select and hydrates each row with its items.
// condition is appended to the base select; results are sorted by id.
func fetchOrders(ctx context.Context, db *gorm.DB, condition string, args ...any) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	rows, err := db.WithContext(ctx).Raw(selectOrdersSQL+condition+" ORDER BY id", args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp OrderResponse

		err = rows.Scan(
			&resp.OrderID,
			&resp.CustomerID,
			&resp.OrderDate,
			&resp.Status,
			&resp.TotalAmount,
		)
		if err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, itemsErr := fetchItems(ctx, db, orders[i].OrderID)
		if itemsErr != nil {
			return nil, itemsErr
		}
		orders[i].Items = items
	}

	return orders, nil
}

func fetchItems(ctx context.Context, db *gorm.DB, orderID string) ([]ItemResponse, error) {
	items := make([]ItemResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item ItemResponse

		err = rows.Scan(
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
