package model

import (
	"errors"
	"time"
)

// Order is a completed sale. Rows are never mutated after creation,
// only referenced.
type Order struct {
	ID           int64     `json:"id"`
	ShopID       int64     `json:"shop_id"` // owning customer, 0 for walk-in sales
	Total        float64   `json:"total"`
	InitialTotal float64   `json:"initial_total"` // cost-basis total, for profit calc
	AmountGiven  float64   `json:"amount_given"`
	ChangeAmount float64   `json:"change_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

type OrderItem struct {
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // unit price copied at sale time
}

// OrderLine is one draft line before the order is persisted.
type OrderLine struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderDraft is the input to SaveOrder. Totals arrive precomputed from
// the order-entry screen.
type OrderDraft struct {
	CustomerID   int64       `json:"customer_id"`
	Items        []OrderLine `json:"items"`
	Total        float64     `json:"total"`
	InitialTotal float64     `json:"initial_total"`
	AmountGiven  float64     `json:"amount_given"`
	Change       float64     `json:"change"`
}

func (d OrderDraft) Validate() error {
	if len(d.Items) == 0 {
		return errors.New("order needs at least one item")
	}
	for _, it := range d.Items {
		if it.ProductID == 0 {
			return errors.New("item product_id is required")
		}
		if it.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
	}
	return nil
}

// OrderItemDetail is one line of an order as shown in history, with the
// product name resolved at read time.
type OrderItemDetail struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderHistoryRow is one flat row of the order history join, before
// lines are folded back under their order.
type OrderHistoryRow struct {
	OrderID     int64     `json:"order_id"`
	Total       float64   `json:"total"`
	AmountGiven float64   `json:"amount_given"`
	Change      float64   `json:"change"`
	CreatedAt   time.Time `json:"created_at"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
}

// OrderWithItems is one order with its lines grouped back together after
// the flat history join.
type OrderWithItems struct {
	OrderID     int64             `json:"order_id"`
	Total       float64           `json:"total"`
	AmountGiven float64           `json:"amount_given"`
	Change      float64           `json:"change"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemDetail `json:"items"`
}
