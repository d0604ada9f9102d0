package domain

import "time"

const (
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"

	StatusCanceled = "canceled"
)

// Keys shared with the catering service dashboard reader.
const (
	PopularDishesKey    = "analytics:dishes:popular"
	DishNamesKey        = "analytics:dishes:names"
	DailyBookingsPrefix = "analytics:bookings:daily:"
	BookingStatusKey    = "analytics:bookings:status"
	ProcessedPrefix     = "analytics:events:"
)

type EventDish struct {
	DishID   int    `json:"dish_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type BookingEvent struct {
	EventID        string      `json:"event_id"`
	Type           string      `json:"type"`
	BookingID      int         `json:"booking_id"`
	Status         string      `json:"status"`
	PreviousStatus string      `json:"previous_status,omitempty"`
	GuestCount     int         `json:"guest_count"`
	TotalPrice     string      `json:"total_price"`
	Dishes         []EventDish `json:"dishes,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}
