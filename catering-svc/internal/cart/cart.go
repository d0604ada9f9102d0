// Package cart implements the menu selection a visitor builds before booking.
//
// A Cart is a value: every operation returns a new Cart and leaves the receiver
// untouched, so a cart handed to the booking flow can not change underneath it.
package cart

import (
	"encoding/json"
	"fmt"
	"math"

	"veg-catering/catering-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const DefaultGuestCount = 50

var (
	ServiceChargeRate = decimal.RequireFromString("0.10")
	TaxRate           = decimal.RequireFromString("0.05")
)

type Cart struct {
	lines []domain.SelectedDish
}

func New() Cart {
	return Cart{}
}

// FromLines rebuilds a cart from previously selected lines. Duplicate dish ids are
// merged and quantities below 1 are raised to 1.
func FromLines(lines []domain.SelectedDish) Cart {
	var out []domain.SelectedDish
	for _, line := range lines {
		qty := max(line.Quantity, 1)
		if i := indexOf(out, line.ID); i >= 0 {
			out[i].Quantity = addClamped(out[i].Quantity, qty)
			continue
		}
		out = append(out, domain.SelectedDish{Dish: line.Dish, Quantity: qty})
	}
	return Cart{lines: out}
}

func (c Cart) Add(dish domain.Dish) Cart {
	lines := c.Lines()
	if i := indexOf(lines, dish.ID); i >= 0 {
		lines[i].Quantity = addClamped(lines[i].Quantity, 1)
		return Cart{lines: lines}
	}
	return Cart{lines: append(lines, domain.SelectedDish{Dish: dish, Quantity: 1})}
}

// ChangeQuantity moves a line's quantity by delta, never below 1. Unknown dish ids
// leave the cart as it was.
func (c Cart) ChangeQuantity(dishID, delta int) Cart {
	lines := c.Lines()
	if i := indexOf(lines, dishID); i >= 0 {
		lines[i].Quantity = addClamped(lines[i].Quantity, delta)
	}
	return Cart{lines: lines}
}

func (c Cart) Remove(dishID int) Cart {
	lines := make([]domain.SelectedDish, 0, len(c.lines))
	for _, line := range c.lines {
		if line.ID != dishID {
			lines = append(lines, line)
		}
	}
	return Cart{lines: lines}
}

// Lines returns a copy of the cart lines in insertion order.
func (c Cart) Lines() []domain.SelectedDish {
	out := make([]domain.SelectedDish, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity reports the quantity selected for a dish, 0 when it is not in the cart.
func (c Cart) Quantity(dishID int) int {
	if i := indexOf(c.lines, dishID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

type Totals struct {
	Subtotal      decimal.Decimal
	ServiceCharge decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PerGuestCost  decimal.Decimal
}

// Totals prices the cart. Values are exact; rounding happens only when rendered.
func (c Cart) Totals(guestCount int) Totals {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	serviceCharge := subtotal.Mul(ServiceChargeRate)
	tax := subtotal.Mul(TaxRate)
	total := subtotal.Add(serviceCharge).Add(tax)

	perGuest := decimal.Zero
	if guestCount > 0 {
		perGuest = total.Div(decimal.NewFromInt(int64(guestCount)))
	}

	return Totals{
		Subtotal:      subtotal,
		ServiceCharge: serviceCharge,
		Tax:           tax,
		Total:         total,
		PerGuestCost:  perGuest,
	}
}

type totalsView struct {
	Subtotal      string `json:"subtotal"`
	ServiceCharge string `json:"serviceCharge"`
	Tax           string `json:"tax"`
	Total         string `json:"total"`
	PerGuestCost  string `json:"perGuestCost"`
}

func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(totalsView{
		Subtotal:      t.Subtotal.StringFixed(domain.MoneyPlaces),
		ServiceCharge: t.ServiceCharge.StringFixed(domain.MoneyPlaces),
		Tax:           t.Tax.StringFixed(domain.MoneyPlaces),
		Total:         t.Total.StringFixed(domain.MoneyPlaces),
		PerGuestCost:  t.PerGuestCost.StringFixed(domain.MoneyPlaces),
	})
}

// Snapshot serializes the lines into the string stored on a booking.
func (c Cart) Snapshot() (string, error) {
	lines := c.Lines()
	payload, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode menu snapshot: %w", err)
	}
	return string(payload), nil
}

func DecodeSnapshot(snapshot string) ([]domain.SelectedDish, error) {
	var lines []domain.SelectedDish
	if err := json.Unmarshal([]byte(snapshot), &lines); err != nil {
		return nil, fmt.Errorf("decode menu snapshot: %w", err)
	}
	return lines, nil
}

func indexOf(lines []domain.SelectedDish, dishID int) int {
	for i := range lines {
		if lines[i].ID == dishID {
			return i
		}
	}
	return -1
}

func addClamped(qty, delta int) int {
	if delta > 0 && qty > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(qty+delta, 1)
}
