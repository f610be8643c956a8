package model

import (
	"errors"
	"time"
)

// GRN is a goods-received note, one batch of stock intake.
type GRN struct {
	ID    int64     `json:"id"`
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

type GRNItem struct {
	ID        int64   `json:"id"`
	GRNID     int64   `json:"grn_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// GRNLine is one intake line before persisting. The line total and the
// batch total are derived as price × quantity.
type GRNLine struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func ValidateGRNLines(lines []GRNLine) error {
	if len(lines) == 0 {
		return errors.New("grn needs at least one line")
	}
	for _, l := range lines {
		if l.ProductID == 0 {
			return errors.New("line product_id is required")
		}
		if l.Quantity <= 0 {
			return errors.New("line quantity must be positive")
		}
	}
	return nil
}

type GRNItemDetail struct {
	GRNItem
	ProductName string `json:"product_name"`
}

type GRNDetails struct {
	GRN   *GRN            `json:"grn"`
	Items []GRNItemDetail `json:"items"`
}
