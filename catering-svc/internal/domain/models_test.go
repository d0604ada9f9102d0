package domain_test

import (
	"encoding/json"
	"testing"

	"veg-catering/catering-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyJSON(t *testing.T) {
	dosa := domain.Dish{ID: 1, Name: "Masala Dosa", Price: decimal.NewFromInt(120), CuisineID: 1}

	tests := []struct {
		name  string
		value any
		want  map[string]any
	}{
		{
			name:  "dish_price",
			value: dosa,
			want:  map[string]any{"id": float64(1), "name": "Masala Dosa", "price": "120.00", "cuisineId": float64(1)},
		},
		{
			name:  "selected_dish_keeps_quantity",
			value: domain.SelectedDish{Dish: dosa, Quantity: 3},
			want:  map[string]any{"price": "120.00", "quantity": float64(3)},
		},
		{
			name:  "booking_total",
			value: domain.Booking{ID: 7, TotalPrice: decimal.RequireFromString("276.5"), Status: domain.BookingPending},
			want:  map[string]any{"id": float64(7), "totalPrice": "276.50", "status": "pending"},
		},
		{
			name:  "rounds_to_cents",
			value: domain.Booking{TotalPrice: decimal.RequireFromString("10.005")},
			want:  map[string]any{"totalPrice": "10.01"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			payload, err := json.Marshal(testCase.value)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(payload, &got))
			for key, want := range testCase.want {
				assert.Equal(t, want, got[key], key)
			}
		})
	}
}

func TestMoneyJSON_DecodesBack(t *testing.T) {
	payload, err := json.Marshal([]domain.SelectedDish{{Dish: domain.Dish{ID: 2, Price: decimal.RequireFromString("60")}, Quantity: 2}})
	require.NoError(t, err)

	var lines []domain.SelectedDish
	require.NoError(t, json.Unmarshal(payload, &lines))
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Price.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, 2, lines[0].Quantity)
}
