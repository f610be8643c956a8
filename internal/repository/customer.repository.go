package repository

import (
	"context"
	"errors"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/store"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	store *store.Store
}

func NewCustomerRepository(s *store.Store) *CustomerRepository {
	return &CustomerRepository{
		store: s,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)
	if entity.State == "" {
		entity.State = string(model.StateActive)
	}

	if err := r.store.DB(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.store.DB(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	err := r.store.DB(ctx).
		Where("state = ?", string(model.StateActive)).
		Order("id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) Update(ctx context.Context, c model.CustomerUpdateRequest) error {
	result := r.store.DB(ctx).
		Model(&CustomerEntity{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"shop_name":       c.ShopName,
			"address":         c.Address,
			"telephone":       c.Telephone,
			"registration_no": c.RegistrationNo,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Archive(ctx context.Context, id int64) error {
	result := r.store.DB(ctx).
		Model(&CustomerEntity{}).
		Where("id = ?", id).
		Update("state", string(model.StateArchived))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
