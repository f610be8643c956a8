package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/possxc/ledger/internal/model"
	xhttp "github.com/possxc/ledger/pkg/http"
)

type OrderService interface {
	Save(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	Items(ctx context.Context, orderID int64) ([]*model.OrderItem, error)
	History(ctx context.Context, since *time.Time) ([]*model.OrderWithItems, error)
}

type OrderHandler struct {
	svc OrderService
}

func RegisterOrderRoutes(e *router.Group, h *OrderHandler) {
	e.POST("/orders", h.SaveOrder)
	e.GET("/orders", h.OrderHistory)
	e.GET("/orders/{id}", h.GetOrder)
	e.GET("/orders/{id}/items", h.GetOrderItems)
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

func (h *OrderHandler) SaveOrder(ctx *xhttp.RequestCtx) {
	var draft model.OrderDraft
	if err := readJSON(ctx, &draft); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	order, err := h.svc.Save(ctx, draft)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, order)
}

func (h *OrderHandler) GetOrder(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, order)
}

func (h *OrderHandler) GetOrderItems(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	items, err := h.svc.Items(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, items)
}

// OrderHistory returns past orders with their lines. An optional
// "since" query bounds the window (RFC3339 or YYYY-MM-DD).
func (h *OrderHandler) OrderHistory(ctx *xhttp.RequestCtx) {
	var since *time.Time
	if v := query(ctx, "since"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			writeError(ctx, 400, "invalid since: "+err.Error())
			return
		}
		since = &t
	}

	orders, err := h.svc.History(ctx, since)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, orders)
}
