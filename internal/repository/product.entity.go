package repository

import (
	"github.com/possxc/ledger/internal/model"
)

type ProductEntity struct {
	ID           int64   `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Name         string  `db:"name"          gorm:"column:name;not null"`
	Price        float64 `db:"price"         gorm:"column:price;not null"`
	InitialPrice float64 `db:"initial_price" gorm:"column:initial_price"`
	Stock        int     `db:"stock"         gorm:"column:stock;default:0"`
	Image        string  `db:"image"         gorm:"column:image"`
	State        string  `db:"state"         gorm:"column:state;not null;index"`
}

func (ProductEntity) TableName() string {
	return "products"
}

func toProductEntity(m *model.Product) *ProductEntity {
	if m == nil {
		return nil
	}
	return &ProductEntity{
		ID:           m.ID,
		Name:         m.Name,
		Price:        m.Price,
		InitialPrice: m.InitialPrice,
		Stock:        m.Stock,
		Image:        m.Image,
		State:        string(m.State),
	}
}

func toProductModel(e *ProductEntity) *model.Product {
	if e == nil {
		return nil
	}
	return &model.Product{
		ID:           e.ID,
		Name:         e.Name,
		Price:        e.Price,
		InitialPrice: e.InitialPrice,
		Stock:        e.Stock,
		Image:        e.Image,
		State:        model.State(e.State),
	}
}

func toProductModels(entities []*ProductEntity) []*model.Product {
	if entities == nil {
		return nil
	}
	models := make([]*model.Product, len(entities))
	for i, e := range entities {
		models[i] = toProductModel(e)
	}
	return models
}
