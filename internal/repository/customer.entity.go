package repository

import (
	"github.com/possxc/ledger/internal/model"
)

type CustomerEntity struct {
	ID             int64  `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	ShopName       string `db:"shop_name"       gorm:"column:shop_name;not null"`
	Address        string `db:"address"         gorm:"column:address"`
	Telephone      string `db:"telephone"       gorm:"column:telephone;not null"`
	RegistrationNo string `db:"registration_no" gorm:"column:registration_no;default:''"`
	State          string `db:"state"           gorm:"column:state;not null;index"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:             m.ID,
		ShopName:       m.ShopName,
		Address:        m.Address,
		Telephone:      m.Telephone,
		RegistrationNo: m.RegistrationNo,
		State:          string(m.State),
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:             e.ID,
		ShopName:       e.ShopName,
		Address:        e.Address,
		Telephone:      e.Telephone,
		RegistrationNo: e.RegistrationNo,
		State:          model.State(e.State),
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}
