package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/internal/queue"
	"github.com/possxc/ledger/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Record(ctx context.Context, p model.PaymentRecordRequest) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrder(ctx context.Context, orderID int64) (*model.PaymentDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentDetail), args.Error(1)
}

func (m *MockPaymentRepository) BalanceByCustomer(ctx context.Context, shopID int64) (*model.CustomerBalance, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerBalance), args.Error(1)
}

func (m *MockPaymentRepository) HistoryByCustomer(ctx context.Context, shopID int64) ([]*model.PaymentDetail, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PaymentDetail), args.Error(1)
}

func (m *MockPaymentRepository) DuePayments(ctx context.Context, asOf time.Time) ([]*model.Payment, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Summary(ctx context.Context) (*model.PaymentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentSummary), args.Error(1)
}

func (m *MockPaymentRepository) ListOrdersWithPayment(ctx context.Context) ([]*model.OrderPaymentRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.OrderPaymentRow), args.Error(1)
}

func TestPaymentService_Record_Validation(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, nil)
	ctx := context.Background()

	t.Run("missing type", func(t *testing.T) {
		err := service.Record(ctx, model.PaymentRecordRequest{OrderID: 1})
		assert.Error(t, err)
	})

	t.Run("credit without due date", func(t *testing.T) {
		err := service.Record(ctx, model.PaymentRecordRequest{
			OrderID: 1, Type: model.PaymentCredit, Amount: 100,
		})
		assert.Error(t, err)
	})

	t.Run("check without number", func(t *testing.T) {
		due := time.Now()
		err := service.Record(ctx, model.PaymentRecordRequest{
			OrderID: 1, Type: model.PaymentCheck, Amount: 100, CheckDue: &due,
		})
		assert.Error(t, err)
	})

	// no repo call should ever happen on a validation failure
	repo.AssertNotCalled(t, "Record")

	t.Run("valid cash reaches the repository", func(t *testing.T) {
		req := model.PaymentRecordRequest{OrderID: 1, Type: model.PaymentCash, Amount: 100}
		repo.On("Record", ctx, req).Return(nil)

		err := service.Record(ctx, req)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestPaymentService_DuePayments(t *testing.T) {
	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, nil)
	ctx := context.Background()

	asOf := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	past := asOf.AddDate(0, 0, -2)
	future := asOf.AddDate(0, 0, 5)

	repo.On("DuePayments", ctx, asOf).Return([]*model.Payment{
		{OrderID: 1, Type: model.PaymentCredit, CreditDue: &past},
		{OrderID: 2, Type: model.PaymentCheck, CheckDue: &past},
		// credit row matched on its stale check date, the credit due
		// date itself has not lapsed
		{OrderID: 3, Type: model.PaymentCredit, CreditDue: &future, CheckDue: &past},
		{OrderID: 4, Type: model.PaymentCredit},
	}, nil)

	due, err := service.DuePayments(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, due, 2)

	assert.Equal(t, int64(1), due[0].OrderID)
	assert.Equal(t, "Order #1 has an overdue credit payment!", due[0].Message)
	assert.Equal(t, past, due[0].DueDate)

	assert.Equal(t, int64(2), due[1].OrderID)
	assert.Equal(t, "Order #2 has an overdue check payment!", due[1].Message)
}

func TestPaymentService_ScanAndPublish(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	adapter, err := redis.NewRedisAdapter(t.Name()+"-"+mr.Addr(), "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	reminders, err := queue.NewQueue(adapter, queue.Config{
		Name:              "test:due:reminders",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		PollInterval:      50 * time.Millisecond,
		VisibilityTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	defer reminders.Stop(time.Second)

	repo := new(MockPaymentRepository)
	service := NewPaymentService(repo, reminders)
	ctx := context.Background()

	asOf := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	past := asOf.AddDate(0, 0, -1)

	repo.On("DuePayments", ctx, asOf).Return([]*model.Payment{
		{OrderID: 7, Type: model.PaymentCheck, CheckDue: &past},
	}, nil)

	n, err := service.ScanAndPublish(ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	received := make(chan model.Reminder, 1)
	require.NoError(t, reminders.Consume(func(ctx context.Context, msg *queue.Message) error {
		var r model.Reminder
		if err := json.Unmarshal(msg.Data, &r); err != nil {
			return err
		}
		received <- r
		return nil
	}))

	select {
	case r := <-received:
		assert.Equal(t, int64(7), r.OrderID)
		assert.Equal(t, "Payment overdue", r.Title)
		assert.Equal(t, "Order #7 has an overdue check payment!", r.Body)
		assert.NotEmpty(t, r.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("reminder never reached the queue")
	}
}

func TestPaymentService_ScanAndPublish_NoQueue(t *testing.T) {
	service := NewPaymentService(new(MockPaymentRepository), nil)

	_, err := service.ScanAndPublish(context.Background(), time.Now())
	assert.Error(t, err)
}
