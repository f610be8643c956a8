package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/internal/queue"
	"github.com/possxc/ledger/pkg/logger"
	"github.com/possxc/ledger/pkg/prom"
)

type PaymentRepository interface {
	Record(ctx context.Context, p model.PaymentRecordRequest) error
	GetByOrder(ctx context.Context, orderID int64) (*model.PaymentDetail, error)
	BalanceByCustomer(ctx context.Context, shopID int64) (*model.CustomerBalance, error)
	HistoryByCustomer(ctx context.Context, shopID int64) ([]*model.PaymentDetail, error)
	DuePayments(ctx context.Context, asOf time.Time) ([]*model.Payment, error)
	Summary(ctx context.Context) (*model.PaymentSummary, error)
	ListOrdersWithPayment(ctx context.Context) ([]*model.OrderPaymentRow, error)
}

// PaymentService settles orders and watches for overdue credit and
// check settlements. Overdue ones are turned into reminders and pushed
// onto the reminder queue for the notifier to deliver.
type PaymentService struct {
	paymentRepo PaymentRepository
	reminders   *queue.Queue
}

func NewPaymentService(paymentRepo PaymentRepository, reminders *queue.Queue) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		reminders:   reminders,
	}
}

func (s *PaymentService) Record(ctx context.Context, p model.PaymentRecordRequest) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.paymentRepo.Record(ctx, p)
}

func (s *PaymentService) GetByOrder(ctx context.Context, orderID int64) (*model.PaymentDetail, error) {
	return s.paymentRepo.GetByOrder(ctx, orderID)
}

func (s *PaymentService) Balance(ctx context.Context, shopID int64) (*model.CustomerBalance, error) {
	return s.paymentRepo.BalanceByCustomer(ctx, shopID)
}

func (s *PaymentService) History(ctx context.Context, shopID int64) ([]*model.PaymentDetail, error) {
	return s.paymentRepo.HistoryByCustomer(ctx, shopID)
}

func (s *PaymentService) Summary(ctx context.Context) (*model.PaymentSummary, error) {
	return s.paymentRepo.Summary(ctx)
}

func (s *PaymentService) Worklist(ctx context.Context) ([]*model.OrderPaymentRow, error) {
	return s.paymentRepo.ListOrdersWithPayment(ctx)
}

// DuePayments lists the settlements overdue as of asOf, each with the
// due date that actually lapsed for its type.
func (s *PaymentService) DuePayments(ctx context.Context, asOf time.Time) ([]*model.DuePayment, error) {
	payments, err := s.paymentRepo.DuePayments(ctx, asOf)
	if err != nil {
		return nil, err
	}

	var due []*model.DuePayment
	for _, p := range payments {
		var dueDate *time.Time
		var kind string

		switch p.Type {
		case model.PaymentCredit:
			dueDate, kind = p.CreditDue, "credit"
		case model.PaymentCheck:
			dueDate, kind = p.CheckDue, "check"
		default:
			continue
		}

		if dueDate == nil || dueDate.After(asOf) {
			continue
		}

		due = append(due, &model.DuePayment{
			OrderID: p.OrderID,
			Type:    p.Type,
			DueDate: *dueDate,
			Message: fmt.Sprintf("Order #%d has an overdue %s payment!", p.OrderID, kind),
		})
	}
	return due, nil
}

// ScanAndPublish runs one due-payment sweep and publishes a reminder
// per overdue settlement.
func (s *PaymentService) ScanAndPublish(ctx context.Context, asOf time.Time) (int, error) {
	if s.reminders == nil {
		return 0, fmt.Errorf("reminder queue is not configured")
	}

	due, err := s.DuePayments(ctx, asOf)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, d := range due {
		reminder := model.Reminder{
			ID:      uuid.NewString(),
			OrderID: d.OrderID,
			Title:   "Payment overdue",
			Body:    d.Message,
			DueDate: d.DueDate,
			FireAt:  asOf,
		}
		if _, err := s.reminders.PublishJSON(ctx, reminder); err != nil {
			logger.Error("failed to publish reminder", "order_id", d.OrderID, "error", err)
			continue
		}
		prom.IncRemindersPublished()
		published++
	}
	return published, nil
}

// StartDueMonitor sweeps for overdue settlements on a fixed interval
// until ctx is cancelled. One sweep runs immediately on start.
func (s *PaymentService) StartDueMonitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	run := func() {
		n, err := s.ScanAndPublish(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("due-payment sweep failed", "error", err)
			return
		}
		if n > 0 {
			logger.Info("due-payment sweep published reminders", "count", n)
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
