package model

import "errors"

type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`         // current sale price
	InitialPrice float64 `json:"initial_price"` // cost basis
	Stock        int     `json:"stock"`         // may go negative, no floor enforced
	Image        string  `json:"image"`
	State        State   `json:"state"`
}

// ProductCreateRequest is the input for adding a product to the catalog.
type ProductCreateRequest struct {
	Name         string
	Price        float64
	InitialPrice float64
	Stock        int
	Image        string
}

func (p ProductCreateRequest) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

type ProductUpdateRequest struct {
	ID           int64
	Name         string
	Price        float64
	InitialPrice float64
	Stock        int
}

func (p ProductUpdateRequest) Validate() error {
	if p.ID == 0 {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
