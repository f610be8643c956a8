package handlers

import (
	"github.com/fasthttp/router"
	xhttp "github.com/possxc/ledger/pkg/http"
)

type HealthService interface {
	Get() error
}
type HealthHandler struct {
	ledgerService HealthService
}

func RegisterHealthRoutes(e *router.Group, h *HealthHandler) {
	e.GET("/health", h.GetHealth)
}

func NewHealthHandler(ledgerService HealthService) *HealthHandler {
	return &HealthHandler{
		ledgerService: ledgerService,
	}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	ctx.Response.SetBodyString("success")
	return
}
