package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"veg-catering/catering-svc/internal/cart"
	"veg-catering/catering-svc/internal/domain"

	"go.uber.org/zap"
)

// CartLine is what a client sends for each selected dish. Prices always come
// from the catalog.
type CartLine struct {
	DishID   int `json:"id"`
	Quantity int `json:"quantity"`
}

type CatalogService struct {
	cuisines CuisineRepository
	dishes   DishRepository
	cache    CatalogCache
	logger   *zap.Logger
}

// NewCatalogService builds the catalog read side. cache may be nil.
func NewCatalogService(cuisines CuisineRepository, dishes DishRepository, cache CatalogCache, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{cuisines: cuisines, dishes: dishes, cache: cache, logger: logger}
}

func (s *CatalogService) ListCuisines(ctx context.Context) ([]domain.Cuisine, error) {
	if s.cache == nil {
		return s.cuisines.ListCuisines(ctx)
	}
	return readThrough(ctx, s, s.cache.CuisinesKey(), func() ([]domain.Cuisine, error) {
		return s.cuisines.ListCuisines(ctx)
	})
}

func (s *CatalogService) GetCuisine(ctx context.Context, id int) (*domain.Cuisine, error) {
	return s.cuisines.GetCuisine(ctx, id)
}

// ListDishes returns every dish when cuisineID is 0, otherwise the dishes of that cuisine.
func (s *CatalogService) ListDishes(ctx context.Context, cuisineID int) ([]domain.Dish, error) {
	load := func() ([]domain.Dish, error) {
		if cuisineID == 0 {
			return s.dishes.ListDishes(ctx)
		}
		return s.dishes.ListDishesByCuisine(ctx, cuisineID)
	}
	if s.cache == nil {
		return load()
	}
	return readThrough(ctx, s, s.cache.DishesKey(cuisineID), load)
}

func (s *CatalogService) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	return s.dishes.GetDish(ctx, id)
}

func (s *CatalogService) CreateCuisine(ctx context.Context, cuisine *domain.Cuisine) error {
	fields := fieldErrors{}
	fields.required("name", cuisine.Name)
	if err := fields.result("invalid cuisine"); err != nil {
		return err
	}

	if err := s.cuisines.CreateCuisine(ctx, cuisine); err != nil {
		return fmt.Errorf("create cuisine: %w", err)
	}
	if s.cache != nil {
		s.invalidate(ctx, s.cache.CuisinesKey())
	}
	return nil
}

func (s *CatalogService) CreateDish(ctx context.Context, dish *domain.Dish) error {
	fields := fieldErrors{}
	fields.required("name", dish.Name)
	fields.check(dish.Price.IsPositive(), "price", "price must be greater than zero")
	fields.check(dish.CuisineID > 0, "cuisineId", "cuisineId is required")
	if err := fields.result("invalid dish"); err != nil {
		return err
	}

	if err := s.dishes.CreateDish(ctx, dish); err != nil {
		return fmt.Errorf("create dish: %w", err)
	}
	if s.cache != nil {
		s.invalidate(ctx, s.cache.DishesKey(0), s.cache.DishesKey(dish.CuisineID))
	}
	return nil
}

// ResolveCart prices the requested lines from the catalog. Unknown dish ids are
// reported as a validation error on the "dishes" field.
func (s *CatalogService) ResolveCart(ctx context.Context, lines []CartLine) (cart.Cart, error) {
	selected := make([]domain.SelectedDish, 0, len(lines))
	var unknown []string
	for _, line := range lines {
		dish, err := s.dishes.GetDish(ctx, line.DishID)
		if errors.Is(err, domain.ErrNotFound) {
			unknown = append(unknown, fmt.Sprint(line.DishID))
			continue
		}
		if err != nil {
			return cart.Cart{}, fmt.Errorf("resolve dish %d: %w", line.DishID, err)
		}
		selected = append(selected, domain.SelectedDish{Dish: *dish, Quantity: line.Quantity})
	}

	if len(unknown) > 0 {
		return cart.Cart{}, &ValidationError{
			Message: "invalid menu selection",
			Fields:  map[string]string{"dishes": "unknown dish id " + strings.Join(unknown, ", ")},
		}
	}
	return cart.FromLines(selected), nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func readThrough[T any](ctx context.Context, s *CatalogService, key string, load func() (T, error)) (T, error) {
	var cached T
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	fresh, err := load()
	if err != nil {
		return fresh, err
	}
	if err := s.cache.Set(ctx, key, fresh); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return fresh, nil
}
