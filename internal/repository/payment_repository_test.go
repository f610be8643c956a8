package repository

import (
	"context"
	"testing"
	"time"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderWithPayment(t *testing.T, s *store.Store, shopID int64, total float64) *model.Order {
	t.Helper()
	ctx := context.Background()

	o, err := NewOrderRepository(s).Create(ctx, &model.Order{
		ShopID:    shopID,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = NewPaymentRepository(s).CreateForOrder(ctx, o.ID, shopID)
	require.NoError(t, err)
	return o
}

func TestPaymentRepository_CreateForOrder(t *testing.T) {
	s := setupTestStore(t)
	repo := NewPaymentRepository(s)
	ctx := context.Background()

	o := newOrderWithPayment(t, s, 7, 300)

	detail, err := repo.GetByOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, detail.OrderID)
	assert.Equal(t, int64(7), detail.ShopID)
	assert.Empty(t, detail.Type, "payment_type stays unset until recorded")
	assert.Nil(t, detail.CashAmount)
}

func TestPaymentRepository_Record(t *testing.T) {
	s := setupTestStore(t)
	repo := NewPaymentRepository(s)
	ctx := context.Background()

	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("cash", func(t *testing.T) {
		o := newOrderWithPayment(t, s, 1, 100)

		err := repo.Record(ctx, model.PaymentRecordRequest{
			OrderID: o.ID,
			Type:    model.PaymentCash,
			Amount:  100,
		})
		require.NoError(t, err)

		p, err := repo.GetByOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentCash, p.Type)
		require.NotNil(t, p.CashAmount)
		assert.Equal(t, 100.0, *p.CashAmount)
		assert.Nil(t, p.CreditAmount)
		assert.Nil(t, p.CheckAmount)
	})

	t.Run("credit", func(t *testing.T) {
		o := newOrderWithPayment(t, s, 1, 200)

		err := repo.Record(ctx, model.PaymentRecordRequest{
			OrderID:      o.ID,
			Type:         model.PaymentCredit,
			Amount:       200,
			CreditPeriod: 2,
			CreditDue:    &due,
		})
		require.NoError(t, err)

		p, err := repo.GetByOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentCredit, p.Type)
		require.NotNil(t, p.CreditAmount)
		assert.Equal(t, 200.0, *p.CreditAmount)
		require.NotNil(t, p.CreditPeriod)
		assert.Equal(t, 2, *p.CreditPeriod)
		require.NotNil(t, p.CreditDue)
		assert.Nil(t, p.CashAmount)
	})

	t.Run("check", func(t *testing.T) {
		o := newOrderWithPayment(t, s, 1, 150)

		err := repo.Record(ctx, model.PaymentRecordRequest{
			OrderID:     o.ID,
			Type:        model.PaymentCheck,
			Amount:      150,
			CheckNumber: "CHK-778",
			CheckDue:    &due,
		})
		require.NoError(t, err)

		p, err := repo.GetByOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentCheck, p.Type)
		require.NotNil(t, p.CheckAmount)
		assert.Equal(t, 150.0, *p.CheckAmount)
		require.NotNil(t, p.CheckNumber)
		assert.Equal(t, "CHK-778", *p.CheckNumber)
	})

	t.Run("custom splits across all three amounts", func(t *testing.T) {
		o := newOrderWithPayment(t, s, 1, 100)

		err := repo.Record(ctx, model.PaymentRecordRequest{
			OrderID:      o.ID,
			Type:         model.PaymentCustom,
			CustomCash:   50,
			CustomCheck:  30,
			CustomCredit: 20,
			CheckNumber:  "CHK-9",
			CheckDue:     &due,
			CreditDue:    &due,
		})
		require.NoError(t, err)

		p, err := repo.GetByOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentCustom, p.Type)
		assert.Equal(t, 50.0, *p.CashAmount)
		assert.Equal(t, 30.0, *p.CheckAmount)
		assert.Equal(t, 20.0, *p.CreditAmount)
	})

	t.Run("re-recording clears stale fields", func(t *testing.T) {
		o := newOrderWithPayment(t, s, 1, 90)

		err := repo.Record(ctx, model.PaymentRecordRequest{
			OrderID:     o.ID,
			Type:        model.PaymentCheck,
			Amount:      90,
			CheckNumber: "CHK-1",
			CheckDue:    &due,
		})
		require.NoError(t, err)

		err = repo.Record(ctx, model.PaymentRecordRequest{
			OrderID: o.ID,
			Type:    model.PaymentCash,
			Amount:  90,
		})
		require.NoError(t, err)

		p, err := repo.GetByOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentCash, p.Type)
		assert.Nil(t, p.CheckAmount)
		assert.Nil(t, p.CheckNumber)
		assert.Nil(t, p.CheckDue)
	})

	t.Run("unknown order", func(t *testing.T) {
		err := repo.Record(ctx, model.PaymentRecordRequest{
			OrderID: 9999,
			Type:    model.PaymentCash,
			Amount:  10,
		})
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}

func TestPaymentRepository_BalanceByCustomer(t *testing.T) {
	s := setupTestStore(t)
	repo := NewPaymentRepository(s)
	ctx := context.Background()

	due := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	o1 := newOrderWithPayment(t, s, 1, 100)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{OrderID: o1.ID, Type: model.PaymentCash, Amount: 100}))

	o2 := newOrderWithPayment(t, s, 1, 200)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{OrderID: o2.ID, Type: model.PaymentCredit, Amount: 200, CreditDue: &due}))

	o3 := newOrderWithPayment(t, s, 1, 150)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{OrderID: o3.ID, Type: model.PaymentCheck, Amount: 150, CheckNumber: "C-1", CheckDue: &due}))

	// unrelated customer must never contribute
	other := newOrderWithPayment(t, s, 2, 500)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{OrderID: other.ID, Type: model.PaymentCash, Amount: 500}))

	bal, err := repo.BalanceByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, bal.CashAmount)
	assert.Equal(t, 150.0, bal.CheckAmount)
	assert.Equal(t, 200.0, bal.CreditAmount)

	empty, err := repo.BalanceByCustomer(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, empty.CashAmount)
	assert.Zero(t, empty.CheckAmount)
	assert.Zero(t, empty.CreditAmount)
}

func TestPaymentRepository_DuePayments(t *testing.T) {
	s := setupTestStore(t)
	repo := NewPaymentRepository(s)
	ctx := context.Background()

	now := time.Now().UTC()
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 14)

	overdueCredit := newOrderWithPayment(t, s, 1, 100)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{
		OrderID: overdueCredit.ID, Type: model.PaymentCredit, Amount: 100, CreditDue: &past,
	}))

	overdueCheck := newOrderWithPayment(t, s, 1, 200)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{
		OrderID: overdueCheck.ID, Type: model.PaymentCheck, Amount: 200, CheckNumber: "C-2", CheckDue: &past,
	}))

	notDueYet := newOrderWithPayment(t, s, 1, 300)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{
		OrderID: notDueYet.ID, Type: model.PaymentCredit, Amount: 300, CreditDue: &future,
	}))

	// cash settles immediately, it can never be overdue
	cash := newOrderWithPayment(t, s, 1, 50)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{
		OrderID: cash.ID, Type: model.PaymentCash, Amount: 50,
	}))

	due, err := repo.DuePayments(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 2)

	ids := []int64{due[0].OrderID, due[1].OrderID}
	assert.Contains(t, ids, overdueCredit.ID)
	assert.Contains(t, ids, overdueCheck.ID)
}

func TestPaymentRepository_SummaryAndWorklist(t *testing.T) {
	s := setupTestStore(t)
	repo := NewPaymentRepository(s)
	customers := NewCustomerRepository(s)
	ctx := context.Background()

	c, err := customers.Create(ctx, &model.Customer{ShopName: "Sunrise Stores", Telephone: "077"})
	require.NoError(t, err)

	paid := newOrderWithPayment(t, s, c.ID, 120)
	require.NoError(t, repo.Record(ctx, model.PaymentRecordRequest{OrderID: paid.ID, Type: model.PaymentCash, Amount: 120}))

	unpaid := newOrderWithPayment(t, s, c.ID, 80)

	t.Run("summary sums every settled amount", func(t *testing.T) {
		sum, err := repo.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 120.0, sum.Cash)
		assert.Zero(t, sum.Check)
		assert.Zero(t, sum.Credit)
	})

	t.Run("worklist lists unpaid orders first", func(t *testing.T) {
		rows, err := repo.ListOrdersWithPayment(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, unpaid.ID, rows[0].OrderID)
		assert.Empty(t, rows[0].Type)
		assert.Equal(t, paid.ID, rows[1].OrderID)
		assert.Equal(t, model.PaymentCash, rows[1].Type)
		assert.Equal(t, "Sunrise Stores", rows[1].ShopName)
	})

	t.Run("history scoped to customer", func(t *testing.T) {
		history, err := repo.HistoryByCustomer(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "Sunrise Stores", history[0].ShopName)
		assert.Equal(t, 120.0, history[0].OrderTotal)
	})
}
