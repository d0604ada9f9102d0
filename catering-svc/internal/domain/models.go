package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Cuisine struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type Dish struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"imageUrl"`
	CuisineID    int             `json:"cuisineId"`
	IsVegan      bool            `json:"isVegan"`
	IsGlutenFree bool            `json:"isGlutenFree"`
	IsPopular    bool            `json:"isPopular"`
}

// MoneyPlaces is the scale money carries on the wire and in NUMERIC columns.
const MoneyPlaces = 2

func (d Dish) MarshalJSON() ([]byte, error) {
	type plain Dish
	return json.Marshal(struct {
		plain
		Price string `json:"price"`
	}{plain(d), d.Price.StringFixed(MoneyPlaces)})
}

// SelectedDish is a cart line: the dish as it was when selected plus a quantity.
type SelectedDish struct {
	Dish
	Quantity int `json:"quantity"`
}

// MarshalJSON overrides the one promoted from Dish so the quantity is kept.
func (s SelectedDish) MarshalJSON() ([]byte, error) {
	type plain Dish
	return json.Marshal(struct {
		plain
		Price    string `json:"price"`
		Quantity int    `json:"quantity"`
	}{plain(s.Dish), s.Price.StringFixed(MoneyPlaces), s.Quantity})
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCanceled}

func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Booking struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	EventType  string          `json:"eventType"`
	EventDate  string          `json:"eventDate"`
	GuestCount int             `json:"guestCount"`
	Message    string          `json:"message,omitempty"`
	Dishes     string          `json:"dishes"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	Status     BookingStatus   `json:"status"`
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type plain Booking
	return json.Marshal(struct {
		plain
		TotalPrice string `json:"totalPrice"`
	}{plain(b), b.TotalPrice.StringFixed(MoneyPlaces)})
}

type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Preferences struct {
	Theme               string   `json:"theme"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	FavoriteDishIDs     []int    `json:"favoriteDishIds"`
	EmailNotifications  bool     `json:"emailNotifications"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:               ThemeLight,
		DietaryRestrictions: []string{},
		FavoriteDishIDs:     []int{},
		EmailNotifications:  true,
	}
}

// Clone copies the slices so stored preferences never alias caller memory.
func (p Preferences) Clone() Preferences {
	out := p
	out.DietaryRestrictions = append([]string{}, p.DietaryRestrictions...)
	out.FavoriteDishIDs = append([]int{}, p.FavoriteDishIDs...)
	return out
}

type User struct {
	ID           int         `json:"id"`
	Username     string      `json:"username"`
	DisplayName  string      `json:"displayName"`
	Email        string      `json:"email,omitempty"`
	Role         Role        `json:"role"`
	Preferences  Preferences `json:"preferences"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
