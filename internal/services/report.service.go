package services

import (
	"context"
	"errors"
	"time"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/logger"
)

var ErrUnknownRange = errors.New("unknown report range")

type ReportRepository interface {
	SalesMetrics(ctx context.Context, since *time.Time) (*model.SalesMetrics, error)
	TopSellingItems(ctx context.Context, since *time.Time) ([]*model.TopSellingItem, error)
	SalesTrends(ctx context.Context, since *time.Time) ([]*model.SalesTrendPoint, error)
	FinancialSummary(ctx context.Context) (*model.FinancialSummary, error)
}

// OrderHistorian supplies the grouped order history the reports screen
// re-scopes by range.
type OrderHistorian interface {
	History(ctx context.Context, since *time.Time) ([]*model.OrderWithItems, error)
}

type ReportService struct {
	reportRepo ReportRepository
	orders     OrderHistorian
	now        func() time.Time
}

func NewReportService(reportRepo ReportRepository, orders OrderHistorian) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		orders:     orders,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard is everything the reports screen shows in one call. A
// failing section degrades to its zero value instead of blanking the
// whole screen.
type Dashboard struct {
	Metrics   *model.SalesMetrics      `json:"metrics"`
	TopItems  []*model.TopSellingItem  `json:"top_items"`
	Trends    []*model.SalesTrendPoint `json:"trends"`
	Financial *model.FinancialSummary  `json:"financial"`
}

// lowerBound maps a report range onto the matching created_at cutoff.
func (s *ReportService) lowerBound(r model.ReportRange) (*time.Time, error) {
	now := s.now()

	var since time.Time
	switch r {
	case model.RangeToday:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case model.RangeWeekly:
		since = now.AddDate(0, 0, -7)
	case model.RangeMonthly:
		since = now.AddDate(0, -1, 0)
	case "":
		return nil, nil // all time
	default:
		return nil, ErrUnknownRange
	}
	return &since, nil
}

// The read paths below never propagate query failures: the reports
// screen degrades to zeroed/empty payloads instead of erroring out.
// Range validation failures still surface.

func (s *ReportService) Metrics(ctx context.Context, r model.ReportRange) (*model.SalesMetrics, error) {
	since, err := s.lowerBound(r)
	if err != nil {
		return nil, err
	}
	m, err := s.reportRepo.SalesMetrics(ctx, since)
	if err != nil {
		logger.Error("sales metrics query failed", "error", err)
		return &model.SalesMetrics{}, nil
	}
	return m, nil
}

func (s *ReportService) TopItems(ctx context.Context, r model.ReportRange) ([]*model.TopSellingItem, error) {
	since, err := s.lowerBound(r)
	if err != nil {
		return nil, err
	}
	top, err := s.reportRepo.TopSellingItems(ctx, since)
	if err != nil {
		logger.Error("top selling items query failed", "error", err)
		return []*model.TopSellingItem{}, nil
	}
	return top, nil
}

func (s *ReportService) Trends(ctx context.Context, r model.ReportRange) ([]*model.SalesTrendPoint, error) {
	since, err := s.lowerBound(r)
	if err != nil {
		return nil, err
	}
	trends, err := s.reportRepo.SalesTrends(ctx, since)
	if err != nil {
		logger.Error("sales trends query failed", "error", err)
		return []*model.SalesTrendPoint{}, nil
	}
	return trends, nil
}

func (s *ReportService) Financial(ctx context.Context) (*model.FinancialSummary, error) {
	fin, err := s.reportRepo.FinancialSummary(ctx)
	if err != nil {
		logger.Error("financial summary query failed", "error", err)
		return &model.FinancialSummary{}, nil
	}
	return fin, nil
}

// Orders lists past orders with their lines, scoped to the given range.
func (s *ReportService) Orders(ctx context.Context, r model.ReportRange) ([]*model.OrderWithItems, error) {
	since, err := s.lowerBound(r)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.History(ctx, since)
	if err != nil {
		logger.Error("order history query failed", "error", err)
		return []*model.OrderWithItems{}, nil
	}
	return orders, nil
}

func (s *ReportService) Dashboard(ctx context.Context, r model.ReportRange) (*Dashboard, error) {
	since, err := s.lowerBound(r)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Metrics:   &model.SalesMetrics{},
		Financial: &model.FinancialSummary{},
	}

	if m, err := s.reportRepo.SalesMetrics(ctx, since); err != nil {
		logger.Error("sales metrics query failed", "error", err)
	} else {
		d.Metrics = m
	}

	if top, err := s.reportRepo.TopSellingItems(ctx, since); err != nil {
		logger.Error("top selling items query failed", "error", err)
	} else {
		d.TopItems = top
	}

	if trends, err := s.reportRepo.SalesTrends(ctx, since); err != nil {
		logger.Error("sales trends query failed", "error", err)
	} else {
		d.Trends = trends
	}

	if fin, err := s.reportRepo.FinancialSummary(ctx); err != nil {
		logger.Error("financial summary query failed", "error", err)
	} else {
		d.Financial = fin
	}

	return d, nil
}
