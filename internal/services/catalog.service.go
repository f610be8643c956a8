package services

import (
	"context"
	"strings"

	"github.com/possxc/ledger/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, p model.ProductUpdateRequest) error
	Archive(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int) error
}

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context) ([]*model.Customer, error)
	Update(ctx context.Context, c model.CustomerUpdateRequest) error
	Archive(ctx context.Context, id int64) error
}

// CatalogService covers the two master-data sets: products and the
// registered wholesale customers.
type CatalogService struct {
	productRepo  ProductRepository
	customerRepo CustomerRepository
}

func NewCatalogService(productRepo ProductRepository, customerRepo CustomerRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, p model.ProductCreateRequest) (*model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return s.productRepo.Create(ctx, &model.Product{
		Name:         p.Name,
		Price:        p.Price,
		InitialPrice: p.InitialPrice,
		Stock:        p.Stock,
		Image:        p.Image,
	})
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.productRepo.Get(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p model.ProductUpdateRequest) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return err
	}
	return s.productRepo.Update(ctx, p)
}

// ArchiveProduct hides the product from listings without deleting the
// row. Order and GRN history keep referencing it.
func (s *CatalogService) ArchiveProduct(ctx context.Context, id int64) error {
	return s.productRepo.Archive(ctx, id)
}

func (s *CatalogService) CreateCustomer(ctx context.Context, c model.CustomerCreateRequest) (*model.Customer, error) {
	c.ShopName = strings.TrimSpace(c.ShopName)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return s.customerRepo.Create(ctx, &model.Customer{
		ShopName:       c.ShopName,
		Address:        c.Address,
		Telephone:      c.Telephone,
		RegistrationNo: c.RegistrationNo,
	})
}

func (s *CatalogService) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	return s.customerRepo.Get(ctx, id)
}

func (s *CatalogService) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *CatalogService) UpdateCustomer(ctx context.Context, c model.CustomerUpdateRequest) error {
	c.ShopName = strings.TrimSpace(c.ShopName)
	if err := c.Validate(); err != nil {
		return err
	}
	return s.customerRepo.Update(ctx, c)
}

func (s *CatalogService) ArchiveCustomer(ctx context.Context, id int64) error {
	return s.customerRepo.Archive(ctx, id)
}
