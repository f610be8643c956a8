package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/internal/queue"
	"github.com/possxc/ledger/internal/repository"
	"github.com/possxc/ledger/internal/services"
	"github.com/possxc/ledger/pkg/redis"
	"github.com/possxc/ledger/pkg/store"
	"github.com/possxc/ledger/test/fixtures"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestEnvironment struct {
	Store          *store.Store
	Redis          *miniredis.Miniredis
	RedisAdapter   redis.RedisAdapter
	Queue          *queue.Queue
	ProductRepo    *repository.ProductRepository
	CustomerRepo   *repository.CustomerRepository
	OrderRepo      *repository.OrderRepository
	GRNRepo        *repository.GRNRepository
	PaymentRepo    *repository.PaymentRepository
	CatalogService *services.CatalogService
	OrderService   *services.OrderService
	GRNService     *services.GRNService
	PaymentService *services.PaymentService
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	s, err := store.Open(store.Config{Path: ":memory:"}, false)
	require.NoError(t, err)

	err = s.Migrate(repository.Entities()...)
	require.NoError(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := fmt.Sprintf("test-%d", time.Now().UnixNano())
	redisAdapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	q, err := queue.NewQueue(redisAdapter, queue.Config{
		Name:              "test:reminders",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
		MaxLen:            1000,
	})
	require.NoError(t, err)

	productRepo := repository.NewProductRepository(s)
	customerRepo := repository.NewCustomerRepository(s)
	orderRepo := repository.NewOrderRepository(s)
	grnRepo := repository.NewGRNRepository(s)
	paymentRepo := repository.NewPaymentRepository(s)

	return &TestEnvironment{
		Store:          s,
		Redis:          mr,
		RedisAdapter:   redisAdapter,
		Queue:          q,
		ProductRepo:    productRepo,
		CustomerRepo:   customerRepo,
		OrderRepo:      orderRepo,
		GRNRepo:        grnRepo,
		PaymentRepo:    paymentRepo,
		CatalogService: services.NewCatalogService(productRepo, customerRepo),
		OrderService:   services.NewOrderService(orderRepo, productRepo, paymentRepo, s),
		GRNService:     services.NewGRNService(grnRepo, productRepo, s),
		PaymentService: services.NewPaymentService(paymentRepo, q),
	}
}

func (env *TestEnvironment) Cleanup() {
	if env.Queue != nil {
		_ = env.Queue.Stop(5 * time.Second)
	}
	time.Sleep(100 * time.Millisecond)
	if env.Redis != nil {
		env.Redis.Close()
	}
	if env.Store != nil {
		_ = env.Store.Close()
	}
}

func TestE2E_OrderCreatesPaymentShell(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	customer, err := env.CatalogService.CreateCustomer(ctx, fixtures.TestCustomerCorner)
	require.NoError(t, err)

	product, err := env.CatalogService.CreateProduct(ctx, fixtures.NewTestProduct("Tea 400g", 100, 60, 10))
	require.NoError(t, err)

	order, err := env.OrderService.Save(ctx, fixtures.NewTestOrderDraft(customer.ID, product.ID, 3, 100))
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, float64(300), order.Total)

	// stock moves with the sale
	updated, err := env.ProductRepo.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)

	// a settlement shell exists, still untyped
	payment, err := env.PaymentRepo.GetByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, payment.OrderID)
	assert.Empty(t, payment.Type)
}

func TestE2E_OverdueCreditReminderFlow(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	customer, err := env.CatalogService.CreateCustomer(ctx, fixtures.TestCustomerMarket)
	require.NoError(t, err)

	product, err := env.CatalogService.CreateProduct(ctx, fixtures.NewTestProduct("Rice 5kg", 50, 30, 20))
	require.NoError(t, err)

	order, err := env.OrderService.Save(ctx, fixtures.NewTestOrderDraft(customer.ID, product.ID, 2, 50))
	require.NoError(t, err)

	due := time.Now().UTC().Add(-48 * time.Hour)
	err = env.PaymentService.Record(ctx, fixtures.NewTestCreditPayment(order.ID, 100, due))
	require.NoError(t, err)

	published, err := env.PaymentService.ScanAndPublish(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	received := make(chan model.Reminder, 1)
	handler := func(ctx context.Context, qMsg *queue.Message) error {
		var reminder model.Reminder
		if err := json.Unmarshal(qMsg.Data, &reminder); err != nil {
			return err
		}
		received <- reminder
		return nil
	}

	err = env.Queue.Consume(handler)
	require.NoError(t, err)

	select {
	case reminder := <-received:
		assert.NotEmpty(t, reminder.ID)
		assert.Equal(t, order.ID, reminder.OrderID)
		assert.Contains(t, reminder.Body, "overdue credit payment")
	case <-time.After(3 * time.Second):
		t.Fatal("reminder not consumed within timeout")
	}
}

func TestE2E_SettledOnTimeProducesNoReminder(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	customer, err := env.CatalogService.CreateCustomer(ctx, fixtures.TestCustomerCorner)
	require.NoError(t, err)

	product, err := env.CatalogService.CreateProduct(ctx, fixtures.NewTestProduct("Sugar 1kg", 40, 25, 5))
	require.NoError(t, err)

	order, err := env.OrderService.Save(ctx, fixtures.NewTestOrderDraft(customer.ID, product.ID, 1, 40))
	require.NoError(t, err)

	due := time.Now().UTC().Add(30 * 24 * time.Hour)
	err = env.PaymentService.Record(ctx, fixtures.NewTestCreditPayment(order.ID, 40, due))
	require.NoError(t, err)

	published, err := env.PaymentService.ScanAndPublish(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, published)

	length, err := env.Queue.Len()
	require.NoError(t, err)
	assert.Equal(t, int64(0), length)
}

func TestE2E_GRNRestockAndRollback(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	product, err := env.CatalogService.CreateProduct(ctx, fixtures.NewTestProduct("Flour 1kg", 80, 55, 2))
	require.NoError(t, err)

	grn, err := env.GRNService.Save(ctx, time.Now().UTC(), []model.GRNLine{
		fixtures.NewTestGRNLine(product.ID, 10, 55),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(550), grn.Total)

	restocked, err := env.ProductRepo.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, restocked.Stock)

	err = env.GRNService.Delete(ctx, grn.ID)
	require.NoError(t, err)

	rolledBack, err := env.ProductRepo.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rolledBack.Stock)
}
