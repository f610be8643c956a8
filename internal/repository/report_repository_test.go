package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, s *store.Store, total, initialTotal float64, createdAt time.Time) *model.Order {
	t.Helper()
	o, err := NewOrderRepository(s).Create(context.Background(), &model.Order{
		Total:        total,
		InitialTotal: initialTotal,
		CreatedAt:    createdAt,
	})
	require.NoError(t, err)
	return o
}

func TestReportRepository_SalesMetrics(t *testing.T) {
	s := setupTestStore(t)
	repo := NewReportRepository(s)
	ctx := context.Background()

	now := time.Now().UTC()
	seedOrder(t, s, 100, 60, now)
	seedOrder(t, s, 300, 180, now)
	seedOrder(t, s, 50, 30, now.AddDate(0, 0, -30))

	t.Run("all time", func(t *testing.T) {
		m, err := repo.SalesMetrics(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), m.OrderCount)
		assert.Equal(t, 450.0, m.TotalSales)
		assert.Equal(t, 150.0, m.AvgOrderPrice)
	})

	t.Run("since filters the window", func(t *testing.T) {
		since := now.AddDate(0, 0, -7)
		m, err := repo.SalesMetrics(ctx, &since)
		require.NoError(t, err)
		assert.Equal(t, int64(2), m.OrderCount)
		assert.Equal(t, 400.0, m.TotalSales)
		assert.Equal(t, 200.0, m.AvgOrderPrice)
	})

	t.Run("empty window is all zeros", func(t *testing.T) {
		since := now.AddDate(0, 0, 1)
		m, err := repo.SalesMetrics(ctx, &since)
		require.NoError(t, err)
		assert.Zero(t, m.OrderCount)
		assert.Zero(t, m.TotalSales)
		assert.Zero(t, m.AvgOrderPrice)
	})
}

func TestReportRepository_TopSellingItems(t *testing.T) {
	s := setupTestStore(t)
	repo := NewReportRepository(s)
	products := NewProductRepository(s)
	orders := NewOrderRepository(s)
	ctx := context.Background()

	now := time.Now().UTC()

	// 7 products so the cap at 5 is observable
	var ids []int64
	for i := 0; i < 7; i++ {
		p, err := products.Create(ctx, &model.Product{Name: fmt.Sprintf("Item %d", i), Price: 10})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	o := seedOrder(t, s, 100, 60, now)
	for i, id := range ids {
		// quantities 1..7 so "Item 6" sells the most
		require.NoError(t, orders.CreateItem(ctx, &model.OrderItem{
			OrderID: o.ID, ProductID: id, Quantity: i + 1, Price: 10,
		}))
	}

	top, err := repo.TopSellingItems(ctx, nil)
	require.NoError(t, err)
	require.Len(t, top, 5)
	assert.Equal(t, "Item 6", top[0].Name)
	assert.Equal(t, int64(7), top[0].TotalQuantity)
	assert.Equal(t, "Item 2", top[4].Name)

	t.Run("window excludes old orders", func(t *testing.T) {
		oldOrder := seedOrder(t, s, 500, 300, now.AddDate(0, -2, 0))
		require.NoError(t, orders.CreateItem(ctx, &model.OrderItem{
			OrderID: oldOrder.ID, ProductID: ids[0], Quantity: 100, Price: 10,
		}))

		since := now.AddDate(0, 0, -7)
		recent, err := repo.TopSellingItems(ctx, &since)
		require.NoError(t, err)
		require.NotEmpty(t, recent)
		assert.Equal(t, "Item 6", recent[0].Name, "old bulk order must not dominate the window")
	})
}

func TestReportRepository_SalesTrends(t *testing.T) {
	s := setupTestStore(t)
	repo := NewReportRepository(s)
	ctx := context.Background()

	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 15, 0, 0, 0, time.UTC)

	seedOrder(t, s, 100, 60, day1)
	seedOrder(t, s, 200, 120, day1)
	seedOrder(t, s, 50, 30, day2)

	points, err := repo.SalesTrends(ctx, nil)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2026-08-10", points[0].Date)
	assert.Equal(t, 300.0, points[0].TotalSales)
	assert.Equal(t, "2026-08-11", points[1].Date)
	assert.Equal(t, 50.0, points[1].TotalSales)
}

func TestReportRepository_FinancialSummary(t *testing.T) {
	s := setupTestStore(t)
	repo := NewReportRepository(s)
	ctx := context.Background()

	seedOrder(t, s, 300, 180, time.Now().UTC())
	seedOrder(t, s, 100, 70, time.Now().UTC())

	sum, err := repo.FinancialSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 400.0, sum.Revenue)
	assert.Equal(t, 150.0, sum.Profit)
}
