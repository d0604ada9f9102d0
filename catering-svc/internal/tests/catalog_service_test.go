package tests

import (
	"context"
	"errors"
	"testing"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/mocks"
	"veg-catering/catering-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogService_ListCuisines(t *testing.T) {
	ctx := context.Background()
	stored := []domain.Cuisine{{ID: 1, Name: "South Indian"}, {ID: 2, Name: "North Indian"}}
	cacheErr := errors.New("redis down")

	tests := []struct {
		name         string
		prepareMocks func(repo *mocks.CuisineRepository, cache *mocks.CatalogCache)
	}{
		{
			name: "cache_hit_skips_store",
			prepareMocks: func(repo *mocks.CuisineRepository, cache *mocks.CatalogCache) {
				cache.On("CuisinesKey").Return("catalog:cuisines").Once()
				cache.On("Get", ctx, "catalog:cuisines", mock.Anything).Run(func(args mock.Arguments) {
					*args.Get(2).(*[]domain.Cuisine) = stored
				}).Return(true, nil).Once()
			},
		},
		{
			name: "cache_miss_loads_and_fills",
			prepareMocks: func(repo *mocks.CuisineRepository, cache *mocks.CatalogCache) {
				cache.On("CuisinesKey").Return("catalog:cuisines").Once()
				cache.On("Get", ctx, "catalog:cuisines", mock.Anything).Return(false, nil).Once()
				repo.On("ListCuisines", ctx).Return(stored, nil).Once()
				cache.On("Set", ctx, "catalog:cuisines", stored).Return(nil).Once()
			},
		},
		{
			name: "cache_errors_fall_back_to_store",
			prepareMocks: func(repo *mocks.CuisineRepository, cache *mocks.CatalogCache) {
				cache.On("CuisinesKey").Return("catalog:cuisines").Once()
				cache.On("Get", ctx, "catalog:cuisines", mock.Anything).Return(false, cacheErr).Once()
				repo.On("ListCuisines", ctx).Return(stored, nil).Once()
				cache.On("Set", ctx, "catalog:cuisines", stored).Return(cacheErr).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCuisineRepository(t)
			cache := mocks.NewCatalogCache(t)
			svc := service.NewCatalogService(repo, mocks.NewDishRepository(t), cache, zap.NewNop())
			testCase.prepareMocks(repo, cache)

			cuisines, err := svc.ListCuisines(ctx)
			require.NoError(t, err)
			assert.Equal(t, stored, cuisines)
		})
	}
}

func TestCatalogService_ListDishesWithoutCache(t *testing.T) {
	ctx := context.Background()
	dishes := mocks.NewDishRepository(t)
	svc := service.NewCatalogService(mocks.NewCuisineRepository(t), dishes, nil, nil)

	all := []domain.Dish{masalaDosa(), {ID: 2, Name: "Dal Makhani", CuisineID: 2}}
	dishes.On("ListDishes", ctx).Return(all, nil).Once()
	dishes.On("ListDishesByCuisine", ctx, 2).Return(all[1:], nil).Once()

	got, err := svc.ListDishes(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.ListDishes(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dal Makhani", got[0].Name)
}

func TestCatalogService_CreateDishInvalidatesLists(t *testing.T) {
	ctx := context.Background()
	dishes := mocks.NewDishRepository(t)
	cache := mocks.NewCatalogCache(t)
	svc := service.NewCatalogService(mocks.NewCuisineRepository(t), dishes, cache, zap.NewNop())

	dish := &domain.Dish{Name: "Rava Dosa", Price: decimal.NewFromInt(110), CuisineID: 1}
	dishes.On("CreateDish", ctx, dish).Return(nil).Once()
	cache.On("DishesKey", 0).Return("catalog:dishes:all").Once()
	cache.On("DishesKey", 1).Return("catalog:dishes:cuisine:1").Once()
	cache.On("Invalidate", ctx, []string{"catalog:dishes:all", "catalog:dishes:cuisine:1"}).Return(nil).Once()

	require.NoError(t, svc.CreateDish(ctx, dish))
}

func TestCatalogService_CreateDishValidation(t *testing.T) {
	svc := service.NewCatalogService(mocks.NewCuisineRepository(t), mocks.NewDishRepository(t), nil, nil)

	err := svc.CreateDish(context.Background(), &domain.Dish{Price: decimal.NewFromInt(-1)})
	verr, ok := service.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "price")
	assert.Contains(t, verr.Fields, "cuisineId")
}

func TestCatalogService_ResolveCart(t *testing.T) {
	ctx := context.Background()

	t.Run("prices_from_catalog", func(t *testing.T) {
		dishes := mocks.NewDishRepository(t)
		svc := service.NewCatalogService(mocks.NewCuisineRepository(t), dishes, nil, nil)
		dosa := masalaDosa()
		dishes.On("GetDish", ctx, 1).Return(&dosa, nil).Twice()

		selection, err := svc.ResolveCart(ctx, []service.CartLine{{DishID: 1, Quantity: 1}, {DishID: 1, Quantity: 0}})
		require.NoError(t, err)
		assert.Equal(t, 1, selection.Len())
		assert.Equal(t, 2, selection.Quantity(1))
		assert.True(t, selection.Totals(50).Total.Equal(decimal.NewFromInt(276)))
	})

	t.Run("unknown_dish", func(t *testing.T) {
		dishes := mocks.NewDishRepository(t)
		svc := service.NewCatalogService(mocks.NewCuisineRepository(t), dishes, nil, nil)
		dishes.On("GetDish", ctx, 42).Return(nil, domain.ErrNotFound).Once()

		_, err := svc.ResolveCart(ctx, []service.CartLine{{DishID: 42, Quantity: 1}})
		verr, ok := service.IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "unknown dish id 42", verr.Fields["dishes"])
	})

	t.Run("store_failure", func(t *testing.T) {
		dishes := mocks.NewDishRepository(t)
		svc := service.NewCatalogService(mocks.NewCuisineRepository(t), dishes, nil, nil)
		dbErr := errors.New("connection reset")
		dishes.On("GetDish", ctx, 1).Return(nil, dbErr).Once()

		_, err := svc.ResolveCart(ctx, []service.CartLine{{DishID: 1, Quantity: 1}})
		assert.ErrorIs(t, err, dbErr)
		_, ok := service.IsValidation(err)
		assert.False(t, ok)
	})
}
