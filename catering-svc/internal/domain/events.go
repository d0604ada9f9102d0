package domain

import "time"

const (
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"
)

type EventDish struct {
	DishID   int    `json:"dish_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// BookingEvent is the message written to the bookings topic and read by agg-svc.
type BookingEvent struct {
	EventID        string        `json:"event_id"`
	Type           string        `json:"type"`
	BookingID      int           `json:"booking_id"`
	Status         BookingStatus `json:"status"`
	PreviousStatus BookingStatus `json:"previous_status,omitempty"`
	GuestCount     int           `json:"guest_count"`
	TotalPrice     string        `json:"total_price"`
	Dishes         []EventDish   `json:"dishes,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}
