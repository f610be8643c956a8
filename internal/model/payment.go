package model

import (
	"errors"
	"time"
)

type PaymentType string

const (
	PaymentCash   PaymentType = "Cash"
	PaymentCredit PaymentType = "Credit"
	PaymentCheck  PaymentType = "Check"
	PaymentCustom PaymentType = "Custom"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentCash, PaymentCredit, PaymentCheck, PaymentCustom:
		return true
	}
	return false
}

// Payment is the settlement record for an order. Exactly one row exists
// per order from the moment the order is saved; the type and amount
// fields stay null until the payment is recorded.
type Payment struct {
	ID           int64       `json:"id"`
	OrderID      int64       `json:"order_id"`
	ShopID       int64       `json:"shop_id"`
	Type         PaymentType `json:"payment_type"` // empty until recorded
	CreditPeriod *int        `json:"credit_period"`
	CreditDue    *time.Time  `json:"credit_due_date"`
	CheckNumber  *string     `json:"check_number"`
	CheckDue     *time.Time  `json:"check_due_date"`
	CashAmount   *float64    `json:"cash_amount"`
	CheckAmount  *float64    `json:"check_amount"`
	CreditAmount *float64    `json:"credit_amount"`
}

// PaymentRecordRequest fills in the settlement for an existing order.
// Amount carries the single figure for Cash/Credit/Check; the Custom
// sub-amounts are used only when Type is Custom.
type PaymentRecordRequest struct {
	OrderID      int64       `json:"order_id"`
	Type         PaymentType `json:"payment_type"`
	Amount       float64     `json:"amount"`
	CreditPeriod int         `json:"credit_period"` // months
	CreditDue    *time.Time  `json:"credit_due_date"`
	CheckNumber  string      `json:"check_number"`
	CheckDue     *time.Time  `json:"check_due_date"`
	CustomCash   float64     `json:"custom_cash"`
	CustomCheck  float64     `json:"custom_check"`
	CustomCredit float64     `json:"custom_credit"`
}

func (p PaymentRecordRequest) Validate() error {
	if p.OrderID == 0 {
		return errors.New("order_id is required")
	}
	if p.Type == "" {
		return errors.New("payment_type is required")
	}
	if !p.Type.Valid() {
		return errors.New("unknown payment_type")
	}
	switch p.Type {
	case PaymentCredit:
		if p.CreditDue == nil {
			return errors.New("credit_due_date is required for credit payments")
		}
	case PaymentCheck:
		if p.CheckNumber == "" {
			return errors.New("check_number is required for check payments")
		}
		if p.CheckDue == nil {
			return errors.New("check_due_date is required for check payments")
		}
	}
	return nil
}

// EffectiveAmount is the settled total this request represents.
func (p PaymentRecordRequest) EffectiveAmount() float64 {
	if p.Type == PaymentCustom {
		return p.CustomCash + p.CustomCheck + p.CustomCredit
	}
	return p.Amount
}

// CustomerBalance aggregates the settled amounts per payment type for
// one customer.
type CustomerBalance struct {
	CashAmount   float64 `json:"cash_amount"`
	CheckAmount  float64 `json:"check_amount"`
	CreditAmount float64 `json:"credit_amount"`
}

// PaymentDetail is a payment joined with its order and customer context.
type PaymentDetail struct {
	Payment
	ShopName   string  `json:"shop_name"`
	OrderTotal float64 `json:"order_total"`
}

// DuePayment is one overdue Credit/Check settlement found by the scan.
type DuePayment struct {
	OrderID int64       `json:"order_id"`
	Type    PaymentType `json:"payment_type"`
	DueDate time.Time   `json:"due_date"`
	Message string      `json:"message"`
}

// PaymentSummary holds the global per-type sums for the dashboard.
type PaymentSummary struct {
	Cash   float64 `json:"cash"`
	Check  float64 `json:"checks"`
	Credit float64 `json:"credit"`
}

// OrderPaymentRow is one row of the settlement worklist: every order with
// whatever payment state it has, unpaid orders first.
type OrderPaymentRow struct {
	OrderID  int64       `json:"order_id"`
	Total    float64     `json:"total"`
	Type     PaymentType `json:"payment_type"` // empty while unpaid
	ShopName string      `json:"shop_name"`
}
