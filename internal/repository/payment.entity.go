package repository

import (
	"time"

	"github.com/possxc/ledger/internal/model"
)

type PaymentEntity struct {
	ID           int64      `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	OrderID      int64      `db:"order_id"        gorm:"column:order_id;not null;uniqueIndex"`
	ShopID       int64      `db:"shop_id"         gorm:"column:shop_id;not null;index"`
	PaymentType  *string    `db:"payment_type"    gorm:"column:payment_type"`
	CreditPeriod *int       `db:"credit_period"   gorm:"column:credit_period"`
	CreditDue    *time.Time `db:"credit_due_date" gorm:"column:credit_due_date"`
	CheckNumber  *string    `db:"check_number"    gorm:"column:check_number"`
	CheckDue     *time.Time `db:"check_due_date"  gorm:"column:check_due_date"`
	CashAmount   *float64   `db:"cash_amount"     gorm:"column:cash_amount"`
	CheckAmount  *float64   `db:"check_amount"    gorm:"column:check_amount"`
	CreditAmount *float64   `db:"credit_amount"   gorm:"column:credit_amount"`
}

func (PaymentEntity) TableName() string {
	return "payments"
}

func toPaymentModel(e *PaymentEntity) *model.Payment {
	if e == nil {
		return nil
	}
	m := &model.Payment{
		ID:           e.ID,
		OrderID:      e.OrderID,
		ShopID:       e.ShopID,
		CreditPeriod: e.CreditPeriod,
		CreditDue:    e.CreditDue,
		CheckNumber:  e.CheckNumber,
		CheckDue:     e.CheckDue,
		CashAmount:   e.CashAmount,
		CheckAmount:  e.CheckAmount,
		CreditAmount: e.CreditAmount,
	}
	if e.PaymentType != nil {
		m.Type = model.PaymentType(*e.PaymentType)
	}
	return m
}

func toPaymentModels(entities []*PaymentEntity) []*model.Payment {
	if entities == nil {
		return nil
	}
	models := make([]*model.Payment, len(entities))
	for i, e := range entities {
		models[i] = toPaymentModel(e)
	}
	return models
}

type paymentDetailRow struct {
	PaymentEntity
	ShopName   string  `gorm:"column:shop_name"`
	OrderTotal float64 `gorm:"column:order_total"`
}

func toPaymentDetail(e *paymentDetailRow) *model.PaymentDetail {
	return &model.PaymentDetail{
		Payment:    *toPaymentModel(&e.PaymentEntity),
		ShopName:   e.ShopName,
		OrderTotal: e.OrderTotal,
	}
}

type orderPaymentRow struct {
	OrderID     int64   `gorm:"column:order_id"`
	Total       float64 `gorm:"column:total"`
	PaymentType *string `gorm:"column:payment_type"`
	ShopName    *string `gorm:"column:shop_name"`
}

func toOrderPaymentRow(e *orderPaymentRow) *model.OrderPaymentRow {
	m := &model.OrderPaymentRow{
		OrderID: e.OrderID,
		Total:   e.Total,
	}
	if e.PaymentType != nil {
		m.Type = model.PaymentType(*e.PaymentType)
	}
	if e.ShopName != nil {
		m.ShopName = *e.ShopName
	}
	return m
}

// Entities lists every persisted table for create-if-absent schema setup.
func Entities() []any {
	return []any{
		&ProductEntity{},
		&CustomerEntity{},
		&OrderEntity{},
		&OrderItemEntity{},
		&GRNEntity{},
		&GRNItemEntity{},
		&PaymentEntity{},
	}
}
