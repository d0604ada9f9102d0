package service

import (
	"context"
	"time"

	"veg-catering/catering-svc/internal/cart"
	"veg-catering/catering-svc/internal/domain"
)

type CuisineRepository interface {
	CreateCuisine(ctx context.Context, cuisine *domain.Cuisine) error
	ListCuisines(ctx context.Context) ([]domain.Cuisine, error)
	GetCuisine(ctx context.Context, id int) (*domain.Cuisine, error)
}

type DishRepository interface {
	CreateDish(ctx context.Context, dish *domain.Dish) error
	ListDishes(ctx context.Context) ([]domain.Dish, error)
	ListDishesByCuisine(ctx context.Context, cuisineID int) ([]domain.Dish, error)
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
}

// BookingRepository.CreateBooking assigns ID and CreatedAt and sets the status to pending.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id int) (*domain.Booking, error)
	// UpdateBookingStatus returns the updated booking and the status it held
	// immediately before this write.
	UpdateBookingStatus(ctx context.Context, id int, status domain.BookingStatus) (*domain.Booking, domain.BookingStatus, error)
}

type ContactRepository interface {
	CreateContact(ctx context.Context, contact *domain.Contact) error
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	GetContact(ctx context.Context, id int) (*domain.Contact, error)
	MarkContactRead(ctx context.Context, id int) (*domain.Contact, error)
}

// UserRepository.CreateUser returns domain.ErrConflict when the username is taken.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserPreferences(ctx context.Context, id int, prefs domain.Preferences) (*domain.User, error)
}

type CatalogCache interface {
	CuisinesKey() string
	DishesKey(cuisineID int) string
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

type EventPublisher interface {
	PublishBooking(ctx context.Context, evt domain.BookingEvent) error
}

type AnalyticsReader interface {
	TopDishes(ctx context.Context, limit int) ([]domain.DishPopularity, error)
	DailyBookings(ctx context.Context, day time.Time) (int64, error)
}

type CatalogServiceInterface interface {
	ListCuisines(ctx context.Context) ([]domain.Cuisine, error)
	GetCuisine(ctx context.Context, id int) (*domain.Cuisine, error)
	ListDishes(ctx context.Context, cuisineID int) ([]domain.Dish, error)
	GetDish(ctx context.Context, id int) (*domain.Dish, error)
	CreateCuisine(ctx context.Context, cuisine *domain.Cuisine) error
	CreateDish(ctx context.Context, dish *domain.Dish) error
	ResolveCart(ctx context.Context, lines []CartLine) (cart.Cart, error)
}

type BookingServiceInterface interface {
	Submit(ctx context.Context, form BookingForm, selection cart.Cart) (*domain.Booking, error)
	Quote(selection cart.Cart, guestCount int) cart.Totals
	List(ctx context.Context) ([]domain.Booking, error)
	Get(ctx context.Context, id int) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int, status domain.BookingStatus) (*domain.Booking, error)
	QRCode(ctx context.Context, id int) ([]byte, error)
}

type ContactServiceInterface interface {
	Submit(ctx context.Context, form ContactForm) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	MarkRead(ctx context.Context, id int) (*domain.Contact, error)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	VerifyToken(token string) (*Claims, error)
	RequireRole(claims *Claims, role domain.Role) error
	EnsureAdmin(ctx context.Context, username, password string) error
}

type UserServiceInterface interface {
	Current(ctx context.Context, claims *Claims) (*domain.User, error)
	UpdatePreferences(ctx context.Context, userID int, prefs domain.Preferences) (*domain.User, error)
}

type AdminServiceInterface interface {
	Users(ctx context.Context) ([]domain.User, error)
	Bookings(ctx context.Context) ([]domain.Booking, error)
	Contacts(ctx context.Context) ([]domain.Contact, error)
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ BookingServiceInterface = (*BookingService)(nil)
	_ ContactServiceInterface = (*ContactService)(nil)
	_ AuthServiceInterface    = (*AuthService)(nil)
	_ UserServiceInterface    = (*UserService)(nil)
	_ AdminServiceInterface   = (*AdminService)(nil)
)
