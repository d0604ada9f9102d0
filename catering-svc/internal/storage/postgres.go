package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/service"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cuisines (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS dishes (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		cuisine_id INTEGER NOT NULL,
		is_vegan BOOLEAN NOT NULL DEFAULT FALSE,
		is_gluten_free BOOLEAN NOT NULL DEFAULT FALSE,
		is_popular BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		event_type TEXT NOT NULL,
		event_date TEXT NOT NULL,
		guest_count INTEGER NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		dishes TEXT NOT NULL,
		total_price NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status TEXT NOT NULL DEFAULT 'pending'
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_read BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'user',
		preferences JSONB NOT NULL DEFAULT '{}',
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var (
	_ service.CuisineRepository = (*PostgresRepository)(nil)
	_ service.DishRepository    = (*PostgresRepository)(nil)
	_ service.BookingRepository = (*PostgresRepository)(nil)
	_ service.ContactRepository = (*PostgresRepository)(nil)
	_ service.UserRepository    = (*PostgresRepository)(nil)
)

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateCuisine(ctx context.Context, cuisine *domain.Cuisine) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO cuisines (name, description, image_url) VALUES ($1, $2, $3) RETURNING id",
		cuisine.Name, cuisine.Description, cuisine.ImageURL,
	).Scan(&cuisine.ID)
}

func (r *PostgresRepository) ListCuisines(ctx context.Context) ([]domain.Cuisine, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, description, image_url FROM cuisines ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cuisines := []domain.Cuisine{}
	for rows.Next() {
		var c domain.Cuisine
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL); err != nil {
			return nil, err
		}
		cuisines = append(cuisines, c)
	}
	return cuisines, rows.Err()
}

func (r *PostgresRepository) GetCuisine(ctx context.Context, id int) (*domain.Cuisine, error) {
	var c domain.Cuisine
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description, image_url FROM cuisines WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

const dishColumns = "id, name, description, price, image_url, cuisine_id, is_vegan, is_gluten_free, is_popular"

func (r *PostgresRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO dishes (name, description, price, image_url, cuisine_id, is_vegan, is_gluten_free, is_popular)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		dish.Name, dish.Description, dish.Price, dish.ImageURL, dish.CuisineID,
		dish.IsVegan, dish.IsGlutenFree, dish.IsPopular,
	).Scan(&dish.ID)
}

func (r *PostgresRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	return r.queryDishes(ctx, "SELECT "+dishColumns+" FROM dishes ORDER BY id")
}

func (r *PostgresRepository) ListDishesByCuisine(ctx context.Context, cuisineID int) ([]domain.Dish, error) {
	return r.queryDishes(ctx, "SELECT "+dishColumns+" FROM dishes WHERE cuisine_id = $1 ORDER BY id", cuisineID)
}

func (r *PostgresRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	var d domain.Dish
	err := r.DB.QueryRowContext(ctx, "SELECT "+dishColumns+" FROM dishes WHERE id = $1", id).
		Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.ImageURL, &d.CuisineID, &d.IsVegan, &d.IsGlutenFree, &d.IsPopular)
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *PostgresRepository) queryDishes(ctx context.Context, query string, args ...any) ([]domain.Dish, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.ImageURL, &d.CuisineID, &d.IsVegan, &d.IsGlutenFree, &d.IsPopular); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

const bookingColumns = "id, name, email, phone, event_type, event_date, guest_count, message, dishes, total_price, created_at, status"

func (r *PostgresRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO bookings (name, email, phone, event_type, event_date, guest_count, message, dishes, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending') RETURNING id, created_at, status`,
		booking.Name, booking.Email, booking.Phone, booking.EventType, booking.EventDate,
		booking.GuestCount, booking.Message, booking.Dishes, booking.TotalPrice,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.Status)
}

func (r *PostgresRepository) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+bookingColumns+" FROM bookings ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PostgresRepository) GetBooking(ctx context.Context, id int) (*domain.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// updateBookingStatus locks the row in the FROM subquery so the returned
// previous status is the one this statement overwrote.
const updateBookingStatus = `
	UPDATE bookings AS b SET status = $1
	FROM (SELECT id, status FROM bookings WHERE id = $2 FOR UPDATE) AS prev
	WHERE b.id = prev.id
	RETURNING b.id, b.name, b.email, b.phone, b.event_type, b.event_date, b.guest_count,
		b.message, b.dishes, b.total_price, b.created_at, b.status, prev.status`

func (r *PostgresRepository) UpdateBookingStatus(ctx context.Context, id int, status domain.BookingStatus) (*domain.Booking, domain.BookingStatus, error) {
	var previous string
	b, err := scanBooking(r.DB.QueryRowContext(ctx, updateBookingStatus, string(status), id), &previous)
	if err != nil {
		return nil, "", notFound(err)
	}
	return b, domain.BookingStatus(previous), nil
}

const contactColumns = "id, name, email, phone, subject, message, created_at, is_read"

func (r *PostgresRepository) CreateContact(ctx context.Context, contact *domain.Contact) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO contacts (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, is_read`,
		contact.Name, contact.Email, contact.Phone, contact.Subject, contact.Message,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.IsRead)
}

func (r *PostgresRepository) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+contactColumns+" FROM contacts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func (r *PostgresRepository) GetContact(ctx context.Context, id int) (*domain.Contact, error) {
	c, err := scanContact(r.DB.QueryRowContext(ctx, "SELECT "+contactColumns+" FROM contacts WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *PostgresRepository) MarkContactRead(ctx context.Context, id int) (*domain.Contact, error) {
	c, err := scanContact(r.DB.QueryRowContext(ctx,
		"UPDATE contacts SET is_read = TRUE WHERE id = $1 RETURNING "+contactColumns, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

const userColumns = "id, username, display_name, email, role, preferences, password_hash, created_at, updated_at"

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, display_name, email, role, preferences, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`,
		user.Username, user.DisplayName, user.Email, string(user.Role), prefs, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) UpdateUserPreferences(ctx context.Context, id int, prefs domain.Preferences) (*domain.User, error) {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"UPDATE users SET preferences = $1, updated_at = NOW() WHERE id = $2 RETURNING "+userColumns, payload, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanBooking reads bookingColumns followed by any extra destinations.
func scanBooking(row scanner, extra ...any) (*domain.Booking, error) {
	var b domain.Booking
	var status string
	dest := append([]any{&b.ID, &b.Name, &b.Email, &b.Phone, &b.EventType, &b.EventDate,
		&b.GuestCount, &b.Message, &b.Dishes, &b.TotalPrice, &b.CreatedAt, &status}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

func scanContact(row scanner) (*domain.Contact, error) {
	var c domain.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt, &c.IsRead); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var role string
	var prefs []byte
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &role, &prefs,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.Preferences = domain.DefaultPreferences()
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
			return nil, fmt.Errorf("decode preferences for user %d: %w", u.ID, err)
		}
	}
	return &u, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
