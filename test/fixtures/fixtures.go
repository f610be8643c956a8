package fixtures

import (
	"time"

	"github.com/possxc/ledger/internal/model"
)

var (
	TestCustomerCorner = model.CustomerCreateRequest{
		ShopName:       "Corner Shop",
		Address:        "12 Main St",
		Telephone:      "0771234567",
		RegistrationNo: "REG-001",
	}

	TestCustomerMarket = model.CustomerCreateRequest{
		ShopName:       "Market Stall",
		Address:        "3 Market Rd",
		Telephone:      "0777654321",
		RegistrationNo: "REG-002",
	}
)

func NewTestProduct(name string, price, initialPrice float64, stock int) model.ProductCreateRequest {
	return model.ProductCreateRequest{
		Name:         name,
		Price:        price,
		InitialPrice: initialPrice,
		Stock:        stock,
	}
}

func NewTestOrderDraft(customerID, productID int64, quantity int, price float64) model.OrderDraft {
	total := price * float64(quantity)
	return model.OrderDraft{
		CustomerID: customerID,
		Items: []model.OrderLine{
			{ProductID: productID, Quantity: quantity, Price: price},
		},
		Total:       total,
		AmountGiven: total,
	}
}

func NewTestCreditPayment(orderID int64, amount float64, due time.Time) model.PaymentRecordRequest {
	return model.PaymentRecordRequest{
		OrderID:      orderID,
		Type:         model.PaymentCredit,
		Amount:       amount,
		CreditPeriod: 1,
		CreditDue:    &due,
	}
}

func NewTestGRNLine(productID int64, quantity int, price float64) model.GRNLine {
	return model.GRNLine{
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
	}
}
