package repository

import (
	"time"

	"github.com/possxc/ledger/internal/model"
)

type GRNEntity struct {
	ID    int64     `db:"id"    gorm:"primaryKey;autoIncrement;column:id"`
	Date  time.Time `db:"date"  gorm:"column:date;not null;index"`
	Total float64   `db:"total" gorm:"column:total;not null"`
}

func (GRNEntity) TableName() string {
	return "grn"
}

type GRNItemEntity struct {
	ID        int64   `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	GRNID     int64   `db:"grn_id"     gorm:"column:grn_id;not null;index"`
	ProductID int64   `db:"product_id" gorm:"column:product_id;not null"`
	Quantity  int     `db:"quantity"   gorm:"column:quantity;not null"`
	Price     float64 `db:"price"      gorm:"column:price;not null"`
	Total     float64 `db:"total"      gorm:"column:total;not null"`
}

func (GRNItemEntity) TableName() string {
	return "grn_items"
}

func toGRNEntity(m *model.GRN) *GRNEntity {
	if m == nil {
		return nil
	}
	return &GRNEntity{
		ID:    m.ID,
		Date:  m.Date,
		Total: m.Total,
	}
}

func toGRNModel(e *GRNEntity) *model.GRN {
	if e == nil {
		return nil
	}
	return &model.GRN{
		ID:    e.ID,
		Date:  e.Date,
		Total: e.Total,
	}
}

func toGRNModels(entities []*GRNEntity) []*model.GRN {
	if entities == nil {
		return nil
	}
	models := make([]*model.GRN, len(entities))
	for i, e := range entities {
		models[i] = toGRNModel(e)
	}
	return models
}

func toGRNItemModel(e *GRNItemEntity) *model.GRNItem {
	if e == nil {
		return nil
	}
	return &model.GRNItem{
		ID:        e.ID,
		GRNID:     e.GRNID,
		ProductID: e.ProductID,
		Quantity:  e.Quantity,
		Price:     e.Price,
		Total:     e.Total,
	}
}

func toGRNItemModels(entities []*GRNItemEntity) []*model.GRNItem {
	if entities == nil {
		return nil
	}
	models := make([]*model.GRNItem, len(entities))
	for i, e := range entities {
		models[i] = toGRNItemModel(e)
	}
	return models
}

type grnItemDetailRow struct {
	GRNItemEntity
	ProductName string `gorm:"column:product_name"`
}

func toGRNItemDetail(e *grnItemDetailRow) model.GRNItemDetail {
	return model.GRNItemDetail{
		GRNItem:     *toGRNItemModel(&e.GRNItemEntity),
		ProductName: e.ProductName,
	}
}
