package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/internal/services"
	xhttp "github.com/possxc/ledger/pkg/http"
)

type ReportService interface {
	Metrics(ctx context.Context, r model.ReportRange) (*model.SalesMetrics, error)
	TopItems(ctx context.Context, r model.ReportRange) ([]*model.TopSellingItem, error)
	Trends(ctx context.Context, r model.ReportRange) ([]*model.SalesTrendPoint, error)
	Financial(ctx context.Context) (*model.FinancialSummary, error)
	Orders(ctx context.Context, r model.ReportRange) ([]*model.OrderWithItems, error)
	Dashboard(ctx context.Context, r model.ReportRange) (*services.Dashboard, error)
}

type ReportHandler struct {
	svc ReportService
}

func RegisterReportRoutes(e *router.Group, h *ReportHandler) {
	e.GET("/reports/dashboard", h.GetDashboard)
	e.GET("/reports/metrics", h.GetMetrics)
	e.GET("/reports/top-items", h.GetTopItems)
	e.GET("/reports/trends", h.GetTrends)
	e.GET("/reports/financial", h.GetFinancial)
	e.GET("/reports/orders", h.GetOrders)
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

func reportRange(ctx *xhttp.RequestCtx) model.ReportRange {
	return model.ReportRange(query(ctx, "range"))
}

func (h *ReportHandler) GetDashboard(ctx *xhttp.RequestCtx) {
	d, err := h.svc.Dashboard(ctx, reportRange(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, d)
}

func (h *ReportHandler) GetMetrics(ctx *xhttp.RequestCtx) {
	m, err := h.svc.Metrics(ctx, reportRange(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, m)
}

func (h *ReportHandler) GetTopItems(ctx *xhttp.RequestCtx) {
	items, err := h.svc.TopItems(ctx, reportRange(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, items)
}

func (h *ReportHandler) GetTrends(ctx *xhttp.RequestCtx) {
	trends, err := h.svc.Trends(ctx, reportRange(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, trends)
}

func (h *ReportHandler) GetOrders(ctx *xhttp.RequestCtx) {
	orders, err := h.svc.Orders(ctx, reportRange(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, orders)
}

func (h *ReportHandler) GetFinancial(ctx *xhttp.RequestCtx) {
	fin, err := h.svc.Financial(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, fin)
}
