package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/possxc/ledger/internal/model"
	xhttp "github.com/possxc/ledger/pkg/http"
)

type GRNService interface {
	Save(ctx context.Context, date time.Time, lines []model.GRNLine) (*model.GRN, error)
	Update(ctx context.Context, grnID int64, lines []model.GRNLine) error
	Delete(ctx context.Context, grnID int64) error
	List(ctx context.Context) ([]*model.GRN, error)
	Details(ctx context.Context, grnID int64) (*model.GRNDetails, error)
}

type GRNHandler struct {
	svc GRNService
}

func RegisterGRNRoutes(e *router.Group, h *GRNHandler) {
	e.POST("/grns", h.SaveGRN)
	e.GET("/grns", h.ListGRNs)
	e.GET("/grns/{id}", h.GetGRNDetails)
	e.PUT("/grns/{id}", h.UpdateGRN)
	e.DELETE("/grns/{id}", h.DeleteGRN)
}

func NewGRNHandler(svc GRNService) *GRNHandler {
	return &GRNHandler{
		svc: svc,
	}
}

type grnRequest struct {
	Date  string          `json:"date"` // RFC3339 or YYYY-MM-DD, defaults to now
	Items []model.GRNLine `json:"items"`
}

func (h *GRNHandler) SaveGRN(ctx *xhttp.RequestCtx) {
	var req grnRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = parseTime(req.Date)
		if err != nil {
			writeError(ctx, 400, "invalid date: "+err.Error())
			return
		}
	}

	grn, err := h.svc.Save(ctx, date, req.Items)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, grn)
}

func (h *GRNHandler) ListGRNs(ctx *xhttp.RequestCtx) {
	grns, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, grns)
}

func (h *GRNHandler) GetGRNDetails(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	details, err := h.svc.Details(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, details)
}

func (h *GRNHandler) UpdateGRN(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	var req grnRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	if err := h.svc.Update(ctx, id, req.Items); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]int64{"id": id})
}

func (h *GRNHandler) DeleteGRN(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]int64{"id": id})
}
