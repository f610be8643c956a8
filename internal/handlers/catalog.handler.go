package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/possxc/ledger/internal/model"
	xhttp "github.com/possxc/ledger/pkg/http"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, p model.ProductCreateRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, p model.ProductUpdateRequest) error
	ArchiveProduct(ctx context.Context, id int64) error

	CreateCustomer(ctx context.Context, c model.CustomerCreateRequest) (*model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]*model.Customer, error)
	UpdateCustomer(ctx context.Context, c model.CustomerUpdateRequest) error
	ArchiveCustomer(ctx context.Context, id int64) error
}

type CatalogHandler struct {
	svc CatalogService
}

func RegisterCatalogRoutes(e *router.Group, h *CatalogHandler) {
	e.POST("/products", h.CreateProduct)
	e.GET("/products", h.ListProducts)
	e.GET("/products/{id}", h.GetProduct)
	e.PUT("/products/{id}", h.UpdateProduct)
	e.DELETE("/products/{id}", h.ArchiveProduct)

	e.POST("/customers", h.CreateCustomer)
	e.GET("/customers", h.ListCustomers)
	e.GET("/customers/{id}", h.GetCustomer)
	e.PUT("/customers/{id}", h.UpdateCustomer)
	e.DELETE("/customers/{id}", h.ArchiveCustomer)
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

type productRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	InitialPrice float64 `json:"initial_price"`
	Stock        int     `json:"stock"`
	Image        string  `json:"image"`
}

type customerRequest struct {
	ShopName       string `json:"shop_name"`
	Address        string `json:"address"`
	Telephone      string `json:"telephone"`
	RegistrationNo string `json:"registration_no"`
}

/* --------------------------------- Products ----------------------------------- */

func (h *CatalogHandler) CreateProduct(ctx *xhttp.RequestCtx) {
	var req productRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	p, err := h.svc.CreateProduct(ctx, model.ProductCreateRequest{
		Name:         req.Name,
		Price:        req.Price,
		InitialPrice: req.InitialPrice,
		Stock:        req.Stock,
		Image:        req.Image,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, p)
}

func (h *CatalogHandler) ListProducts(ctx *xhttp.RequestCtx) {
	products, err := h.svc.ListProducts(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, products)
}

func (h *CatalogHandler) GetProduct(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	p, err := h.svc.GetProduct(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, p)
}

func (h *CatalogHandler) UpdateProduct(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	var req productRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	err = h.svc.UpdateProduct(ctx, model.ProductUpdateRequest{
		ID:           id,
		Name:         req.Name,
		Price:        req.Price,
		InitialPrice: req.InitialPrice,
		Stock:        req.Stock,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]int64{"id": id})
}

func (h *CatalogHandler) ArchiveProduct(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.ArchiveProduct(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]int64{"id": id})
}

/* --------------------------------- Customers ----------------------------------- */

func (h *CatalogHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var req customerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	c, err := h.svc.CreateCustomer(ctx, model.CustomerCreateRequest{
		ShopName:       req.ShopName,
		Address:        req.Address,
		Telephone:      req.Telephone,
		RegistrationNo: req.RegistrationNo,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, c)
}

func (h *CatalogHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	customers, err := h.svc.ListCustomers(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, customers)
}

func (h *CatalogHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	c, err := h.svc.GetCustomer(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, c)
}

func (h *CatalogHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	var req customerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}

	err = h.svc.UpdateCustomer(ctx, model.CustomerUpdateRequest{
		ID:             id,
		ShopName:       req.ShopName,
		Address:        req.Address,
		Telephone:      req.Telephone,
		RegistrationNo: req.RegistrationNo,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]int64{"id": id})
}

func (h *CatalogHandler) ArchiveCustomer(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}

	if err := h.svc.ArchiveCustomer(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]int64{"id": id})
}
