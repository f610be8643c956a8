package repository

import (
	"context"
	"errors"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/store"
	"gorm.io/gorm"
)

type GRNRepository struct {
	store *store.Store
}

func NewGRNRepository(s *store.Store) *GRNRepository {
	return &GRNRepository{
		store: s,
	}
}

func (r *GRNRepository) Create(ctx context.Context, g *model.GRN) (*model.GRN, error) {
	entity := toGRNEntity(g)

	if err := r.store.DB(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toGRNModel(entity), nil
}

func (r *GRNRepository) Get(ctx context.Context, id int64) (*model.GRN, error) {
	var entity GRNEntity
	err := r.store.DB(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGRNNotFound
		}
		return nil, err
	}
	return toGRNModel(&entity), nil
}

func (r *GRNRepository) List(ctx context.Context) ([]*model.GRN, error) {
	var entities []*GRNEntity
	err := r.store.DB(ctx).Order("date DESC").Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toGRNModels(entities), nil
}

func (r *GRNRepository) CreateItem(ctx context.Context, grnID int64, line model.GRNLine) error {
	entity := &GRNItemEntity{
		GRNID:     grnID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Price:     line.Price,
		Total:     line.Price * float64(line.Quantity),
	}
	return r.store.DB(ctx).Create(entity).Error
}

// ItemsByGRN reads the recorded lines of a batch. The delete and update
// flows depend on this running before the lines are removed, since the
// quantities drive the stock rollback.
func (r *GRNRepository) ItemsByGRN(ctx context.Context, grnID int64) ([]*model.GRNItem, error) {
	var entities []*GRNItemEntity
	err := r.store.DB(ctx).Where("grn_id = ?", grnID).Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toGRNItemModels(entities), nil
}

func (r *GRNRepository) DeleteItems(ctx context.Context, grnID int64) error {
	return r.store.DB(ctx).Where("grn_id = ?", grnID).Delete(&GRNItemEntity{}).Error
}

func (r *GRNRepository) Delete(ctx context.Context, grnID int64) error {
	return r.store.DB(ctx).Where("id = ?", grnID).Delete(&GRNEntity{}).Error
}

func (r *GRNRepository) UpdateTotal(ctx context.Context, grnID int64, total float64) error {
	result := r.store.DB(ctx).
		Model(&GRNEntity{}).
		Where("id = ?", grnID).
		Update("total", total)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGRNNotFound
	}
	return nil
}

// Details returns the batch header with its lines joined against product
// names.
func (r *GRNRepository) Details(ctx context.Context, grnID int64) (*model.GRNDetails, error) {
	grn, err := r.Get(ctx, grnID)
	if err != nil {
		return nil, err
	}

	var rows []*grnItemDetailRow
	err = r.store.DB(ctx).
		Table("grn_items").
		Select("grn_items.*, products.name AS product_name").
		Joins("JOIN products ON grn_items.product_id = products.id").
		Where("grn_items.grn_id = ?", grnID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	details := &model.GRNDetails{
		GRN:   grn,
		Items: make([]model.GRNItemDetail, len(rows)),
	}
	for i, row := range rows {
		details.Items[i] = toGRNItemDetail(row)
	}
	return details, nil
}
