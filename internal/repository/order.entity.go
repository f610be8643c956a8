package repository

import (
	"time"

	"github.com/possxc/ledger/internal/model"
)

type OrderEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	ShopID       int64     `db:"shop_id"       gorm:"column:shop_id;index"`
	Total        float64   `db:"total"         gorm:"column:total;not null"`
	InitialTotal float64   `db:"initial_total" gorm:"column:initial_total;not null"`
	AmountGiven  float64   `db:"amount_given"  gorm:"column:amount_given;not null"`
	ChangeAmount float64   `db:"change_amount" gorm:"column:change_amount;not null"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;not null;index"`
}

func (OrderEntity) TableName() string {
	return "orders"
}

// OrderItemEntity has no surrogate key of its own; lines exist only in
// the context of their order.
type OrderItemEntity struct {
	OrderID   int64   `db:"order_id"   gorm:"column:order_id;not null;index"`
	ProductID int64   `db:"product_id" gorm:"column:product_id;not null"`
	Quantity  int     `db:"quantity"   gorm:"column:quantity;not null"`
	Price     float64 `db:"price"      gorm:"column:price;not null"`
}

func (OrderItemEntity) TableName() string {
	return "orderitems"
}

func toOrderEntity(m *model.Order) *OrderEntity {
	if m == nil {
		return nil
	}
	return &OrderEntity{
		ID:           m.ID,
		ShopID:       m.ShopID,
		Total:        m.Total,
		InitialTotal: m.InitialTotal,
		AmountGiven:  m.AmountGiven,
		ChangeAmount: m.ChangeAmount,
		CreatedAt:    m.CreatedAt,
	}
}

func toOrderModel(e *OrderEntity) *model.Order {
	if e == nil {
		return nil
	}
	return &model.Order{
		ID:           e.ID,
		ShopID:       e.ShopID,
		Total:        e.Total,
		InitialTotal: e.InitialTotal,
		AmountGiven:  e.AmountGiven,
		ChangeAmount: e.ChangeAmount,
		CreatedAt:    e.CreatedAt,
	}
}

func toOrderItemEntity(m *model.OrderItem) *OrderItemEntity {
	if m == nil {
		return nil
	}
	return &OrderItemEntity{
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Price:     m.Price,
	}
}

func toOrderItemModel(e *OrderItemEntity) *model.OrderItem {
	if e == nil {
		return nil
	}
	return &model.OrderItem{
		OrderID:   e.OrderID,
		ProductID: e.ProductID,
		Quantity:  e.Quantity,
		Price:     e.Price,
	}
}

func toOrderItemModels(entities []*OrderItemEntity) []*model.OrderItem {
	if entities == nil {
		return nil
	}
	models := make([]*model.OrderItem, len(entities))
	for i, e := range entities {
		models[i] = toOrderItemModel(e)
	}
	return models
}

// orderHistoryRow is one row of the flat order × item × product join used
// by order history. Grouping back into orders happens in the service
// layer, not in the query.
type orderHistoryRow struct {
	OrderID     int64     `gorm:"column:order_id"`
	Total       float64   `gorm:"column:total"`
	AmountGiven float64   `gorm:"column:amount_given"`
	Change      float64   `gorm:"column:change_amount"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	ProductID   int64     `gorm:"column:product_id"`
	ProductName string    `gorm:"column:product_name"`
	Quantity    int       `gorm:"column:quantity"`
	Price       float64   `gorm:"column:price"`
}

func toOrderHistoryRow(e *orderHistoryRow) model.OrderHistoryRow {
	return model.OrderHistoryRow{
		OrderID:     e.OrderID,
		Total:       e.Total,
		AmountGiven: e.AmountGiven,
		Change:      e.Change,
		CreatedAt:   e.CreatedAt,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Quantity:    e.Quantity,
		Price:       e.Price,
	}
}
