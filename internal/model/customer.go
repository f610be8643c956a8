package model

import "errors"

type Customer struct {
	ID             int64  `json:"id"`
	ShopName       string `json:"shop_name"`
	Address        string `json:"address"`
	Telephone      string `json:"telephone"`
	RegistrationNo string `json:"registration_no"`
	State          State  `json:"state"`
}

type CustomerCreateRequest struct {
	ShopName       string
	Address        string
	Telephone      string
	RegistrationNo string
}

func (c CustomerCreateRequest) Validate() error {
	if c.ShopName == "" {
		return errors.New("shop_name is required")
	}
	if c.Telephone == "" {
		return errors.New("telephone is required")
	}
	return nil
}

type CustomerUpdateRequest struct {
	ID             int64
	ShopName       string
	Address        string
	Telephone      string
	RegistrationNo string
}

func (c CustomerUpdateRequest) Validate() error {
	if c.ID == 0 {
		return errors.New("id is required")
	}
	if c.ShopName == "" {
		return errors.New("shop_name is required")
	}
	return nil
}
