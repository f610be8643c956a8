package repository

import (
	"context"
	"errors"
	"time"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/pkg/store"
	"gorm.io/gorm"
)

type OrderRepository struct {
	store *store.Store
}

func NewOrderRepository(s *store.Store) *OrderRepository {
	return &OrderRepository{
		store: s,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	entity := toOrderEntity(o)

	if err := r.store.DB(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toOrderModel(entity), nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	var entity OrderEntity
	err := r.store.DB(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return toOrderModel(&entity), nil
}

func (r *OrderRepository) CreateItem(ctx context.Context, item *model.OrderItem) error {
	return r.store.DB(ctx).Create(toOrderItemEntity(item)).Error
}

func (r *OrderRepository) ItemsByOrder(ctx context.Context, orderID int64) ([]*model.OrderItem, error) {
	var entities []*OrderItemEntity
	err := r.store.DB(ctx).Where("order_id = ?", orderID).Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toOrderItemModels(entities), nil
}

// ListWithItems returns the flat order × item × product join for order
// history, oldest first. Callers fold the rows back into orders; the
// query stays flat on purpose.
func (r *OrderRepository) ListWithItems(ctx context.Context, since *time.Time) ([]model.OrderHistoryRow, error) {
	q := r.store.DB(ctx).
		Table("orders AS o").
		Select(`
            o.id            AS order_id,
            o.total         AS total,
            o.amount_given  AS amount_given,
            o.change_amount AS change_amount,
            o.created_at    AS created_at,
            oi.product_id   AS product_id,
            p.name          AS product_name,
            oi.quantity     AS quantity,
            oi.price        AS price
        `).
		Joins("JOIN orderitems AS oi ON o.id = oi.order_id").
		Joins("JOIN products AS p ON oi.product_id = p.id")

	if since != nil {
		q = q.Where("o.created_at >= ?", *since)
	}

	var rows []*orderHistoryRow
	if err := q.Order("o.id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]model.OrderHistoryRow, len(rows))
	for i, row := range rows {
		out[i] = toOrderHistoryRow(row)
	}
	return out, nil
}
