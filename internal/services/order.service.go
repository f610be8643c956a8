package services

import (
	"context"
	"fmt"
	"time"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/prom"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	CreateItem(ctx context.Context, item *model.OrderItem) error
	ItemsByOrder(ctx context.Context, orderID int64) ([]*model.OrderItem, error)
	ListWithItems(ctx context.Context, since *time.Time) ([]model.OrderHistoryRow, error)
}

type PaymentShellCreator interface {
	CreateForOrder(ctx context.Context, orderID, shopID int64) (*model.Payment, error)
}

// Transactor runs fn inside a single store transaction; every repository
// call made with the ctx it passes joins that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type OrderService struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	paymentRepo PaymentShellCreator
	tx          Transactor
}

func NewOrderService(orderRepo OrderRepository, productRepo ProductRepository, paymentRepo PaymentShellCreator, tx Transactor) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
	}
}

// Save persists a completed sale atomically: the order row, its unsettled
// payment shell, and one item row plus stock decrement per line. Any
// failure rolls the whole sale back, stock included.
func (s *OrderService) Save(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var created *model.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.Create(ctx, &model.Order{
			ShopID:       draft.CustomerID,
			Total:        draft.Total,
			InitialTotal: draft.InitialTotal,
			AmountGiven:  draft.AmountGiven,
			ChangeAmount: draft.Change,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if _, err := s.paymentRepo.CreateForOrder(ctx, order.ID, draft.CustomerID); err != nil {
			return fmt.Errorf("create payment shell: %w", err)
		}

		for _, line := range draft.Items {
			err := s.orderRepo.CreateItem(ctx, &model.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			})
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			// sold quantity leaves the shelf, negative stock is allowed
			if err := s.productRepo.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
				return fmt.Errorf("adjust stock: %w", err)
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	prom.IncOrdersSaved()
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	return s.orderRepo.Get(ctx, id)
}

func (s *OrderService) Items(ctx context.Context, orderID int64) ([]*model.OrderItem, error) {
	return s.orderRepo.ItemsByOrder(ctx, orderID)
}

// History returns past orders with their lines grouped back under each
// order. The repository hands back the flat join; grouping happens here.
func (s *OrderService) History(ctx context.Context, since *time.Time) ([]*model.OrderWithItems, error) {
	rows, err := s.orderRepo.ListWithItems(ctx, since)
	if err != nil {
		return nil, err
	}

	var orders []*model.OrderWithItems
	byID := make(map[int64]*model.OrderWithItems)

	for _, row := range rows {
		order, ok := byID[row.OrderID]
		if !ok {
			order = &model.OrderWithItems{
				OrderID:     row.OrderID,
				Total:       row.Total,
				AmountGiven: row.AmountGiven,
				Change:      row.Change,
				CreatedAt:   row.CreatedAt,
			}
			byID[row.OrderID] = order
			orders = append(orders, order)
		}
		order.Items = append(order.Items, model.OrderItemDetail{
			ProductID: row.ProductID,
			Name:      row.ProductName,
			Quantity:  row.Quantity,
			Price:     row.Price,
		})
	}

	return orders, nil
}
