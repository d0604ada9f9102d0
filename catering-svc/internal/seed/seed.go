// Package seed loads the starter catalog into an empty store.
package seed

import (
	"context"
	"fmt"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type dishSeed struct {
	name        string
	description string
	price       string
	vegan       bool
	glutenFree  bool
	popular     bool
}

type cuisineSeed struct {
	cuisine domain.Cuisine
	dishes  []dishSeed
}

var catalog = []cuisineSeed{
	{
		cuisine: domain.Cuisine{Name: "South Indian", Description: "Authentic South Indian dishes with traditional flavors.", ImageURL: "/images/cuisines/south-indian.jpg"},
		dishes: []dishSeed{
			{"Masala Dosa", "Crispy rice crepe filled with spiced potatoes.", "120", true, false, true},
			{"Idly", "Soft steamed rice cakes, a South Indian breakfast staple.", "60", true, false, true},
			{"Medu Vada", "Savory lentil donuts with a crispy exterior and soft interior.", "70", true, false, false},
			{"Pongal", "Rice and lentil porridge with spices.", "90", false, true, false},
		},
	},
	{
		cuisine: domain.Cuisine{Name: "North Indian", Description: "Rich and flavorful dishes from North India.", ImageURL: "/images/cuisines/north-indian.jpg"},
		dishes: []dishSeed{
			{"Paneer Butter Masala", "Cottage cheese in a rich tomato and butter gravy.", "180", false, true, true},
			{"Dal Makhani", "Black lentils slow cooked with cream and spices.", "150", false, true, true},
			{"Chana Masala", "Chickpeas in a tangy spiced onion tomato gravy.", "140", true, true, false},
		},
	},
	{
		cuisine: domain.Cuisine{Name: "Chinese", Description: "Indo-Chinese fusion dishes with flavorful sauces.", ImageURL: "/images/cuisines/chinese.jpg"},
		dishes: []dishSeed{
			{"Veg Manchurian", "Vegetable dumplings tossed in a tangy soy garlic sauce.", "160", true, false, true},
			{"Hakka Noodles", "Stir fried noodles with crunchy vegetables.", "140", true, false, true},
			{"Veg Fried Rice", "Wok tossed rice with vegetables and spring onion.", "130", true, true, false},
		},
	},
	{
		cuisine: domain.Cuisine{Name: "Italian", Description: "Authentic Italian vegetarian dishes.", ImageURL: "/images/cuisines/italian.jpg"},
		dishes: []dishSeed{
			{"Margherita Pizza", "Classic pizza with tomato, mozzarella and basil.", "220", false, false, true},
			{"Pasta Arrabbiata", "Penne in a spicy garlic tomato sauce.", "180", true, false, false},
			{"Tiramisu", "Coffee flavored layered dessert.", "150", false, false, false},
		},
	},
	{
		cuisine: domain.Cuisine{Name: "Sweets", Description: "Traditional and fusion desserts.", ImageURL: "/images/cuisines/sweets.jpg"},
		dishes: []dishSeed{
			{"Boondi Laddu", "Sweet gram flour pearls shaped into balls.", "80", false, true, true},
			{"Gulab Jamoon", "Milk dumplings soaked in rose cardamom syrup.", "80", false, false, true},
			{"Semiya Payasam", "Vermicelli pudding with milk and cardamom.", "70", false, false, false},
		},
	},
	{
		cuisine: domain.Cuisine{Name: "Rice Items", Description: "Rice dishes from different regional cuisines.", ImageURL: "/images/cuisines/rice.jpg"},
		dishes: []dishSeed{
			{"Veg Dum Biryani", "Fragrant basmati rice layered with vegetables and spices.", "180", false, true, true},
			{"Lemon Rice", "Rice tempered with lemon, peanuts and curry leaves.", "130", true, true, false},
			{"Coconut Rice", "Rice cooked with fresh grated coconut.", "140", true, true, false},
		},
	},
	{
		cuisine: domain.Cuisine{Name: "Veg Curries", Description: "Vegetable curries from various Indian regions.", ImageURL: "/images/cuisines/curries.jpg"},
		dishes: []dishSeed{
			{"Mix Veg Curry", "Seasonal vegetables in a spiced gravy.", "160", true, true, true},
			{"Kadai Vegetable", "Vegetables cooked with kadai masala and peppers.", "170", true, true, false},
			{"Bagara Baingan", "Baby eggplants in a peanut sesame gravy.", "170", true, true, false},
		},
	},
	{
		cuisine: domain.Cuisine{Name: "Chat", Description: "Popular Indian street food snacks.", ImageURL: "/images/cuisines/chat.jpg"},
		dishes: []dishSeed{
			{"Samosa Ragada", "Crispy samosa topped with white peas curry, chutneys and sev.", "90", true, false, true},
			{"Pani Puri", "Hollow puris filled with spiced water, potatoes and chickpeas.", "80", true, false, true},
			{"Cutlet Ragada", "Vegetable cutlet topped with white peas curry and chutneys.", "90", true, false, false},
		},
	},
}

// Catalog inserts the starter cuisines and dishes unless the store already
// has cuisines. It reports whether anything was inserted.
func Catalog(ctx context.Context, cuisines service.CuisineRepository, dishes service.DishRepository, logger *zap.Logger) (bool, error) {
	existing, err := cuisines.ListCuisines(ctx)
	if err != nil {
		return false, fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("catalog already present, skipping seed", zap.Int("cuisines", len(existing)))
		return false, nil
	}

	total := 0
	for _, entry := range catalog {
		cuisine := entry.cuisine
		if err := cuisines.CreateCuisine(ctx, &cuisine); err != nil {
			return false, fmt.Errorf("seed cuisine %q: %w", cuisine.Name, err)
		}
		for _, d := range entry.dishes {
			dish := domain.Dish{
				Name:         d.name,
				Description:  d.description,
				Price:        decimal.RequireFromString(d.price),
				CuisineID:    cuisine.ID,
				IsVegan:      d.vegan,
				IsGlutenFree: d.glutenFree,
				IsPopular:    d.popular,
			}
			if err := dishes.CreateDish(ctx, &dish); err != nil {
				return false, fmt.Errorf("seed dish %q: %w", dish.Name, err)
			}
			total++
		}
	}

	logger.Info("catalog seeded", zap.Int("cuisines", len(catalog)), zap.Int("dishes", total))
	return true, nil
}
