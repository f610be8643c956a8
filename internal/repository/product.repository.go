package repository

import (
	"context"
	"errors"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/store"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrGRNNotFound      = errors.New("grn not found")
	ErrPaymentNotFound  = errors.New("payment not found")
)

type ProductRepository struct {
	store *store.Store
}

func NewProductRepository(s *store.Store) *ProductRepository {
	return &ProductRepository{
		store: s,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	entity := toProductEntity(p)
	if entity.State == "" {
		entity.State = string(model.StateActive)
	}

	if err := r.store.DB(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toProductModel(entity), nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	var entity ProductEntity
	err := r.store.DB(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return toProductModel(&entity), nil
}

// List returns the active catalog. Archived products are excluded but
// stay in the table for historical order and GRN references.
func (r *ProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	var entities []*ProductEntity
	err := r.store.DB(ctx).
		Where("state = ?", string(model.StateActive)).
		Order("id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toProductModels(entities), nil
}

func (r *ProductRepository) Update(ctx context.Context, p model.ProductUpdateRequest) error {
	result := r.store.DB(ctx).
		Model(&ProductEntity{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":          p.Name,
			"price":         p.Price,
			"initial_price": p.InitialPrice,
			"stock":         p.Stock,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Archive(ctx context.Context, id int64) error {
	result := r.store.DB(ctx).
		Model(&ProductEntity{}).
		Where("id = ?", id).
		Update("state", string(model.StateArchived))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock shifts a product's on-hand quantity by delta (negative for
// order placement, positive for GRN intake). No floor: stock is allowed
// to go negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, id int64, delta int) error {
	result := r.store.DB(ctx).
		Model(&ProductEntity{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
