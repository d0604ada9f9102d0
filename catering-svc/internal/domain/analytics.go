package domain

const (
	PopularDishesKey    = "analytics:dishes:popular"
	DishNamesKey        = "analytics:dishes:names"
	DailyBookingsPrefix = "analytics:bookings:daily:"
)

type DishPopularity struct {
	DishID   int    `json:"dishId"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type DailyCount struct {
	Date     string `json:"date"`
	Bookings int64  `json:"bookings"`
}

// Dashboard is the admin overview. TopDishes and Daily stay empty when
// booking analytics are not configured.
type Dashboard struct {
	Users          int                   `json:"users"`
	Bookings       int                   `json:"bookings"`
	BookingsByStat map[BookingStatus]int `json:"bookingsByStatus"`
	Contacts       int                   `json:"contacts"`
	UnreadContacts int                   `json:"unreadContacts"`
	TopDishes      []DishPopularity      `json:"topDishes"`
	Daily          []DailyCount          `json:"dailyBookings"`
}
