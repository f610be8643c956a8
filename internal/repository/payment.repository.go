package repository

import (
	"context"
	"errors"
	"time"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/store"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	store *store.Store
}

func NewPaymentRepository(s *store.Store) *PaymentRepository {
	return &PaymentRepository{
		store: s,
	}
}

// CreateForOrder inserts the settlement shell for a freshly saved order:
// linkage only, payment_type stays null until the payment is recorded.
func (r *PaymentRepository) CreateForOrder(ctx context.Context, orderID, shopID int64) (*model.Payment, error) {
	entity := &PaymentEntity{
		OrderID: orderID,
		ShopID:  shopID,
	}

	if err := r.store.DB(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toPaymentModel(entity), nil
}

// Record settles an order. One UPDATE keyed by order_id; every settlement
// column is overwritten so re-recording a payment never leaves stale
// fields from a previous type behind.
func (r *PaymentRepository) Record(ctx context.Context, p model.PaymentRecordRequest) error {
	updates := map[string]any{
		"payment_type":    string(p.Type),
		"credit_period":   nil,
		"credit_due_date": nil,
		"check_number":    nil,
		"check_due_date":  nil,
		"cash_amount":     nil,
		"check_amount":    nil,
		"credit_amount":   nil,
	}

	switch p.Type {
	case model.PaymentCash:
		updates["cash_amount"] = p.Amount
	case model.PaymentCredit:
		updates["credit_amount"] = p.Amount
		updates["credit_period"] = p.CreditPeriod
		updates["credit_due_date"] = p.CreditDue
	case model.PaymentCheck:
		updates["check_amount"] = p.Amount
		updates["check_number"] = p.CheckNumber
		updates["check_due_date"] = p.CheckDue
	case model.PaymentCustom:
		updates["cash_amount"] = p.CustomCash
		updates["check_amount"] = p.CustomCheck
		updates["credit_amount"] = p.CustomCredit
		if p.CustomCheck > 0 {
			updates["check_number"] = p.CheckNumber
			updates["check_due_date"] = p.CheckDue
		}
		if p.CustomCredit > 0 {
			updates["credit_period"] = p.CreditPeriod
			updates["credit_due_date"] = p.CreditDue
		}
	}

	result := r.store.DB(ctx).
		Model(&PaymentEntity{}).
		Where("order_id = ?", p.OrderID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) GetByOrder(ctx context.Context, orderID int64) (*model.PaymentDetail, error) {
	var row paymentDetailRow
	err := r.store.DB(ctx).
		Table("payments AS p").
		Select("p.*, c.shop_name AS shop_name, o.total AS order_total").
		Joins("LEFT JOIN orders AS o ON p.order_id = o.id").
		Joins("LEFT JOIN customers AS c ON p.shop_id = c.id").
		Where("p.order_id = ?", orderID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return toPaymentDetail(&row), nil
}

// BalanceByCustomer sums the settled amount of each payment type,
// strictly scoped to the customer's shop_id. Custom settlements do not
// contribute, matching the balance screen's definition.
func (r *PaymentRepository) BalanceByCustomer(ctx context.Context, shopID int64) (*model.CustomerBalance, error) {
	var bal model.CustomerBalance
	err := r.store.DB(ctx).
		Table("payments").
		Select(`
            COALESCE(SUM(CASE WHEN payment_type = 'Cash' THEN cash_amount ELSE 0 END), 0)     AS cash_amount,
            COALESCE(SUM(CASE WHEN payment_type = 'Check' THEN check_amount ELSE 0 END), 0)   AS check_amount,
            COALESCE(SUM(CASE WHEN payment_type = 'Credit' THEN credit_amount ELSE 0 END), 0) AS credit_amount
        `).
		Where("shop_id = ?", shopID).
		Take(&bal).Error
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (r *PaymentRepository) HistoryByCustomer(ctx context.Context, shopID int64) ([]*model.PaymentDetail, error) {
	var rows []*paymentDetailRow
	err := r.store.DB(ctx).
		Table("payments AS p").
		Select("p.*, c.shop_name AS shop_name, o.total AS order_total").
		Joins("LEFT JOIN orders AS o ON p.order_id = o.id").
		Joins("LEFT JOIN customers AS c ON p.shop_id = c.id").
		Where("p.shop_id = ?", shopID).
		Order("p.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	details := make([]*model.PaymentDetail, len(rows))
	for i, row := range rows {
		details[i] = toPaymentDetail(row)
	}
	return details, nil
}

// DuePayments returns Credit/Check settlements whose recorded due date
// is on or before asOf. Cash and Custom settlements never match.
func (r *PaymentRepository) DuePayments(ctx context.Context, asOf time.Time) ([]*model.Payment, error) {
	var entities []*PaymentEntity
	err := r.store.DB(ctx).
		Where("payment_type IN ?", []string{string(model.PaymentCredit), string(model.PaymentCheck)}).
		Where("credit_due_date <= ? OR check_due_date <= ?", asOf, asOf).
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toPaymentModels(entities), nil
}

func (r *PaymentRepository) Summary(ctx context.Context) (*model.PaymentSummary, error) {
	var row struct {
		Cash   float64 `gorm:"column:cash"`
		Check  float64 `gorm:"column:checks"`
		Credit float64 `gorm:"column:credit"`
	}
	err := r.store.DB(ctx).
		Table("payments").
		Select(`
            COALESCE(SUM(cash_amount), 0)   AS cash,
            COALESCE(SUM(check_amount), 0)  AS checks,
            COALESCE(SUM(credit_amount), 0) AS credit
        `).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &model.PaymentSummary{Cash: row.Cash, Check: row.Check, Credit: row.Credit}, nil
}

// ListOrdersWithPayment is the settlement worklist: every order joined
// with whatever payment state it has, unsettled orders first.
func (r *PaymentRepository) ListOrdersWithPayment(ctx context.Context) ([]*model.OrderPaymentRow, error) {
	var rows []*orderPaymentRow
	err := r.store.DB(ctx).
		Table("orders AS o").
		Select("o.id AS order_id, o.total AS total, p.payment_type AS payment_type, c.shop_name AS shop_name").
		Joins("LEFT JOIN payments AS p ON o.id = p.order_id").
		Joins("LEFT JOIN customers AS c ON o.shop_id = c.id").
		Order("p.payment_type IS NULL DESC, o.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*model.OrderPaymentRow, len(rows))
	for i, row := range rows {
		out[i] = toOrderPaymentRow(row)
	}
	return out, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]*model.Payment, error) {
	var entities []*PaymentEntity
	err := r.store.DB(ctx).Order("id ASC").Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toPaymentModels(entities), nil
}
