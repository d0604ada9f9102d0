package storage

import (
	"context"
	"sync"
	"time"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/service"
)

// collection keeps one entity type in insertion order with its own id sequence.
// All access goes through the mutex; ids are handed out inside the critical
// section so concurrent creates never share one.
type collection[T any] struct {
	mu     sync.RWMutex
	nextID int
	order  []int
	items  map[int]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{nextID: 1, items: make(map[int]T)}
}

func (c *collection[T]) insert(build func(id int) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, err := build(c.nextID)
	if err != nil {
		return item, err
	}
	c.items[c.nextID] = item
	c.order = append(c.order, c.nextID)
	c.nextID++
	return item, nil
}

func (c *collection[T]) get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

func (c *collection[T]) list(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *collection[T]) update(id int, apply func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return item, false
	}
	apply(&item)
	c.items[id] = item
	return item, true
}

func (c *collection[T]) find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.order {
		if item := c.items[id]; match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// MemoryStore is the default entity store. Entities are held by value and
// returned as copies.
type MemoryStore struct {
	cuisines *collection[domain.Cuisine]
	dishes   *collection[domain.Dish]
	bookings *collection[domain.Booking]
	contacts *collection[domain.Contact]
	users    *collection[domain.User]
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cuisines: newCollection[domain.Cuisine](),
		dishes:   newCollection[domain.Dish](),
		bookings: newCollection[domain.Booking](),
		contacts: newCollection[domain.Contact](),
		users:    newCollection[domain.User](),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var (
	_ service.CuisineRepository = (*MemoryStore)(nil)
	_ service.DishRepository    = (*MemoryStore)(nil)
	_ service.BookingRepository = (*MemoryStore)(nil)
	_ service.ContactRepository = (*MemoryStore)(nil)
	_ service.UserRepository    = (*MemoryStore)(nil)
)

func (m *MemoryStore) CreateCuisine(_ context.Context, cuisine *domain.Cuisine) error {
	stored, _ := m.cuisines.insert(func(id int) (domain.Cuisine, error) {
		c := *cuisine
		c.ID = id
		return c, nil
	})
	*cuisine = stored
	return nil
}

func (m *MemoryStore) ListCuisines(_ context.Context) ([]domain.Cuisine, error) {
	return m.cuisines.list(nil), nil
}

func (m *MemoryStore) GetCuisine(_ context.Context, id int) (*domain.Cuisine, error) {
	c, ok := m.cuisines.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *MemoryStore) CreateDish(_ context.Context, dish *domain.Dish) error {
	stored, _ := m.dishes.insert(func(id int) (domain.Dish, error) {
		d := *dish
		d.ID = id
		return d, nil
	})
	*dish = stored
	return nil
}

func (m *MemoryStore) ListDishes(_ context.Context) ([]domain.Dish, error) {
	return m.dishes.list(nil), nil
}

func (m *MemoryStore) ListDishesByCuisine(_ context.Context, cuisineID int) ([]domain.Dish, error) {
	return m.dishes.list(func(d domain.Dish) bool { return d.CuisineID == cuisineID }), nil
}

func (m *MemoryStore) GetDish(_ context.Context, id int) (*domain.Dish, error) {
	d, ok := m.dishes.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (m *MemoryStore) CreateBooking(_ context.Context, booking *domain.Booking) error {
	stored, _ := m.bookings.insert(func(id int) (domain.Booking, error) {
		b := *booking
		b.ID = id
		b.CreatedAt = m.now()
		b.Status = domain.BookingPending
		return b, nil
	})
	*booking = stored
	return nil
}

func (m *MemoryStore) ListBookings(_ context.Context) ([]domain.Booking, error) {
	return m.bookings.list(nil), nil
}

func (m *MemoryStore) GetBooking(_ context.Context, id int) (*domain.Booking, error) {
	b, ok := m.bookings.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (m *MemoryStore) UpdateBookingStatus(_ context.Context, id int, status domain.BookingStatus) (*domain.Booking, domain.BookingStatus, error) {
	var previous domain.BookingStatus
	b, ok := m.bookings.update(id, func(b *domain.Booking) {
		previous = b.Status
		b.Status = status
	})
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return &b, previous, nil
}

func (m *MemoryStore) CreateContact(_ context.Context, contact *domain.Contact) error {
	stored, _ := m.contacts.insert(func(id int) (domain.Contact, error) {
		c := *contact
		c.ID = id
		c.CreatedAt = m.now()
		c.IsRead = false
		return c, nil
	})
	*contact = stored
	return nil
}

func (m *MemoryStore) ListContacts(_ context.Context) ([]domain.Contact, error) {
	return m.contacts.list(nil), nil
}

func (m *MemoryStore) GetContact(_ context.Context, id int) (*domain.Contact, error) {
	c, ok := m.contacts.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *MemoryStore) MarkContactRead(_ context.Context, id int) (*domain.Contact, error) {
	c, ok := m.contacts.update(id, func(c *domain.Contact) { c.IsRead = true })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *MemoryStore) CreateUser(_ context.Context, user *domain.User) error {
	stored, err := m.users.insert(func(id int) (domain.User, error) {
		for _, existing := range m.users.items {
			if existing.Username == user.Username {
				return domain.User{}, domain.ErrConflict
			}
		}
		u := *user
		u.ID = id
		u.Preferences = user.Preferences.Clone()
		u.CreatedAt = m.now()
		u.UpdatedAt = u.CreatedAt
		return u, nil
	})
	if err != nil {
		return err
	}
	*user = cloneUser(stored)
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id int) (*domain.User, error) {
	u, ok := m.users.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := m.users.find(func(u domain.User) bool { return u.Username == username })
	if !ok {
		return nil, domain.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]domain.User, error) {
	users := m.users.list(nil)
	for i := range users {
		users[i] = cloneUser(users[i])
	}
	return users, nil
}

func (m *MemoryStore) UpdateUserPreferences(_ context.Context, id int, prefs domain.Preferences) (*domain.User, error) {
	u, ok := m.users.update(id, func(u *domain.User) {
		u.Preferences = prefs.Clone()
		u.UpdatedAt = m.now()
	})
	if !ok {
		return nil, domain.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func cloneUser(u domain.User) domain.User {
	u.Preferences = u.Preferences.Clone()
	return u
}
