package repository

import (
	"context"
	"time"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/store"
)

// ReportRepository holds the read-only aggregation queries behind the
// reports screen. Nothing here writes.
type ReportRepository struct {
	store *store.Store
}

func NewReportRepository(s *store.Store) *ReportRepository {
	return &ReportRepository{
		store: s,
	}
}

func (r *ReportRepository) SalesMetrics(ctx context.Context, since *time.Time) (*model.SalesMetrics, error) {
	var row struct {
		OrderCount    int64   `gorm:"column:order_count"`
		TotalSales    float64 `gorm:"column:total_sales"`
		AvgOrderPrice float64 `gorm:"column:avg_order_price"`
	}

	q := r.store.DB(ctx).
		Table("orders").
		Select(`
            COUNT(id)                AS order_count,
            COALESCE(SUM(total), 0)  AS total_sales,
            COALESCE(AVG(total), 0)  AS avg_order_price
        `)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	if err := q.Take(&row).Error; err != nil {
		return nil, err
	}
	return &model.SalesMetrics{
		OrderCount:    row.OrderCount,
		TotalSales:    row.TotalSales,
		AvgOrderPrice: row.AvgOrderPrice,
	}, nil
}

// TopSellingItems ranks products by quantity sold, capped to the top 5.
func (r *ReportRepository) TopSellingItems(ctx context.Context, since *time.Time) ([]*model.TopSellingItem, error) {
	q := r.store.DB(ctx).
		Table("orderitems AS oi").
		Select("p.name AS name, SUM(oi.quantity) AS total_quantity").
		Joins("JOIN products AS p ON oi.product_id = p.id")

	if since != nil {
		q = q.Joins("JOIN orders AS o ON oi.order_id = o.id").
			Where("o.created_at >= ?", *since)
	}

	var rows []*struct {
		Name          string `gorm:"column:name"`
		TotalQuantity int64  `gorm:"column:total_quantity"`
	}
	err := q.Group("oi.product_id").
		Order("total_quantity DESC").
		Limit(5).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]*model.TopSellingItem, len(rows))
	for i, row := range rows {
		items[i] = &model.TopSellingItem{Name: row.Name, TotalQuantity: row.TotalQuantity}
	}
	return items, nil
}

// SalesTrends groups order totals per calendar day, oldest day first.
func (r *ReportRepository) SalesTrends(ctx context.Context, since *time.Time) ([]*model.SalesTrendPoint, error) {
	q := r.store.DB(ctx).
		Table("orders").
		Select("DATE(created_at) AS date, SUM(total) AS total_sales")
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var rows []*struct {
		Date       string  `gorm:"column:date"`
		TotalSales float64 `gorm:"column:total_sales"`
	}
	err := q.Group("DATE(created_at)").
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make([]*model.SalesTrendPoint, len(rows))
	for i, row := range rows {
		points[i] = &model.SalesTrendPoint{Date: row.Date, TotalSales: row.TotalSales}
	}
	return points, nil
}

func (r *ReportRepository) FinancialSummary(ctx context.Context) (*model.FinancialSummary, error) {
	var row struct {
		Revenue float64 `gorm:"column:revenue"`
		Profit  float64 `gorm:"column:profit"`
	}
	err := r.store.DB(ctx).
		Table("orders").
		Select(`
            COALESCE(SUM(total), 0)                 AS revenue,
            COALESCE(SUM(total - initial_total), 0) AS profit
        `).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &model.FinancialSummary{Revenue: row.Revenue, Profit: row.Profit}, nil
}
