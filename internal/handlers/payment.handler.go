package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/possxc/ledger/internal/model"
	xhttp "github.com/possxc/ledger/pkg/http"
)

type PaymentService interface {
	Record(ctx context.Context, p model.PaymentRecordRequest) error
	GetByOrder(ctx context.Context, orderID int64) (*model.PaymentDetail, error)
	Balance(ctx context.Context, shopID int64) (*model.CustomerBalance, error)
	History(ctx context.Context, shopID int64) ([]*model.PaymentDetail, error)
	Summary(ctx context.Context) (*model.PaymentSummary, error)
	Worklist(ctx context.Context) ([]*model.OrderPaymentRow, error)
	DuePayments(ctx context.Context, asOf time.Time) ([]*model.DuePayment, error)
}

type PaymentHandler struct {
	svc PaymentService
}

func RegisterPaymentRoutes(e *router.Group, h *PaymentHandler) {
	e.POST("/payments", h.RecordPayment)
	e.GET("/payments/summary", h.PaymentSummary)
	e.GET("/payments/worklist", h.PaymentWorklist)
	e.GET("/payments/due", h.DuePayments)
	e.GET("/orders/{id}/payment", h.GetOrderPayment)
	e.GET("/customers/{id}/balance", h.CustomerBalance)
	e.GET("/customers/{id}/payments", h.CustomerPaymentHistory)
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

func (h *PaymentHandler) RecordPayment(ctx *xhttp.RequestCtx) {
	var req model.PaymentRecordRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	if err := h.svc.Record(ctx, req); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]int64{"order_id": req.OrderID})
}

func (h *PaymentHandler) GetOrderPayment(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	p, err := h.svc.GetByOrder(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, p)
}

func (h *PaymentHandler) CustomerBalance(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	bal, err := h.svc.Balance(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, bal)
}

func (h *PaymentHandler) CustomerPaymentHistory(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	history, err := h.svc.History(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, history)
}

func (h *PaymentHandler) PaymentSummary(ctx *xhttp.RequestCtx) {
	sum, err := h.svc.Summary(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, sum)
}

func (h *PaymentHandler) PaymentWorklist(ctx *xhttp.RequestCtx) {
	rows, err := h.svc.Worklist(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, rows)
}

// DuePayments lists the settlements overdue right now, or as of the
// optional "as_of" query value.
func (h *PaymentHandler) DuePayments(ctx *xhttp.RequestCtx) {
	asOf := time.Now().UTC()
	if v := query(ctx, "as_of"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			writeError(ctx, 400, "invalid as_of: "+err.Error())
			return
		}
		asOf = t
	}

	due, err := h.svc.DuePayments(ctx, asOf)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, due)
}
