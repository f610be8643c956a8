package services

import (
	"context"
	"testing"
	"time"

	"github.com/possxc/ledger/internal/model"
	"github.com/possxc/ledger/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGRNService(t *testing.T) (*GRNService, *repository.ProductRepository, *repository.GRNRepository) {
	t.Helper()
	s := setupTestStore(t)
	products := repository.NewProductRepository(s)
	grns := repository.NewGRNRepository(s)
	return NewGRNService(grns, products, s), products, grns
}

func TestGRNService_Save(t *testing.T) {
	service, products, grns := newGRNService(t)
	ctx := context.Background()

	tea, err := products.Create(ctx, &model.Product{Name: "Tea", Price: 100, Stock: 0})
	require.NoError(t, err)
	rice, err := products.Create(ctx, &model.Product{Name: "Rice", Price: 200, Stock: 2})
	require.NoError(t, err)

	grn, err := service.Save(ctx, time.Now().UTC(), []model.GRNLine{
		{ProductID: tea.ID, Quantity: 10, Price: 60},
		{ProductID: rice.ID, Quantity: 5, Price: 150},
	})
	require.NoError(t, err)
	require.NotZero(t, grn.ID)

	assert.Equal(t, 1350.0, grn.Total, "total is the sum of price x quantity per line")

	gotTea, err := products.Get(ctx, tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, gotTea.Stock)

	gotRice, err := products.Get(ctx, rice.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, gotRice.Stock)

	items, err := grns.ItemsByGRN(ctx, grn.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestGRNService_Save_Validation(t *testing.T) {
	service, _, _ := newGRNService(t)

	_, err := service.Save(context.Background(), time.Now(), nil)
	assert.Error(t, err)

	_, err = service.Save(context.Background(), time.Now(), []model.GRNLine{
		{ProductID: 1, Quantity: 0, Price: 10},
	})
	assert.Error(t, err)
}

func TestGRNService_Save_RollsBackOnFailure(t *testing.T) {
	service, products, grns := newGRNService(t)
	ctx := context.Background()

	tea, err := products.Create(ctx, &model.Product{Name: "Tea", Price: 100, Stock: 3})
	require.NoError(t, err)

	_, err = service.Save(ctx, time.Now().UTC(), []model.GRNLine{
		{ProductID: tea.ID, Quantity: 4, Price: 60},
		{ProductID: 999, Quantity: 1, Price: 10},
	})
	require.Error(t, err)

	got, err := products.Get(ctx, tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock, "first line's increment rolled back")

	all, err := grns.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGRNService_Update(t *testing.T) {
	service, products, grns := newGRNService(t)
	ctx := context.Background()

	tea, err := products.Create(ctx, &model.Product{Name: "Tea", Price: 100, Stock: 0})
	require.NoError(t, err)
	rice, err := products.Create(ctx, &model.Product{Name: "Rice", Price: 200, Stock: 0})
	require.NoError(t, err)

	grn, err := service.Save(ctx, time.Now().UTC(), []model.GRNLine{
		{ProductID: tea.ID, Quantity: 10, Price: 60},
	})
	require.NoError(t, err)

	// replace the tea line with a smaller one plus a rice line
	err = service.Update(ctx, grn.ID, []model.GRNLine{
		{ProductID: tea.ID, Quantity: 4, Price: 60},
		{ProductID: rice.ID, Quantity: 2, Price: 150},
	})
	require.NoError(t, err)

	gotTea, err := products.Get(ctx, tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, gotTea.Stock, "old +10 rolled back, new +4 applied")

	gotRice, err := products.Get(ctx, rice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotRice.Stock)

	updated, err := grns.Get(ctx, grn.ID)
	require.NoError(t, err)
	assert.Equal(t, 540.0, updated.Total)

	items, err := grns.ItemsByGRN(ctx, grn.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	t.Run("unknown grn", func(t *testing.T) {
		err := service.Update(ctx, 999, []model.GRNLine{{ProductID: tea.ID, Quantity: 1, Price: 60}})
		assert.ErrorIs(t, err, repository.ErrGRNNotFound)
	})
}

func TestGRNService_Delete(t *testing.T) {
	service, products, grns := newGRNService(t)
	ctx := context.Background()

	tea, err := products.Create(ctx, &model.Product{Name: "Tea", Price: 100, Stock: 1})
	require.NoError(t, err)

	grn, err := service.Save(ctx, time.Now().UTC(), []model.GRNLine{
		{ProductID: tea.ID, Quantity: 6, Price: 60},
	})
	require.NoError(t, err)

	// save then delete is a stock no-op
	require.NoError(t, service.Delete(ctx, grn.ID))

	got, err := products.Get(ctx, tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	_, err = grns.Get(ctx, grn.ID)
	assert.ErrorIs(t, err, repository.ErrGRNNotFound)

	items, err := grns.ItemsByGRN(ctx, grn.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	t.Run("unknown grn", func(t *testing.T) {
		err := service.Delete(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrGRNNotFound)
	})
}
