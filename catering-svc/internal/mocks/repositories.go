package mocks

import (
	"context"

	"veg-catering/catering-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CuisineRepository struct {
	mock.Mock
}

func NewCuisineRepository(t testingT) *CuisineRepository {
	m := &CuisineRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CuisineRepository) CreateCuisine(ctx context.Context, cuisine *domain.Cuisine) error {
	return _m.Called(ctx, cuisine).Error(0)
}

func (_m *CuisineRepository) ListCuisines(ctx context.Context) ([]domain.Cuisine, error) {
	ret := _m.Called(ctx)
	out, _ := ret.Get(0).([]domain.Cuisine)
	return out, ret.Error(1)
}

func (_m *CuisineRepository) GetCuisine(ctx context.Context, id int) (*domain.Cuisine, error) {
	ret := _m.Called(ctx, id)
	out, _ := ret.Get(0).(*domain.Cuisine)
	return out, ret.Error(1)
}

type DishRepository struct {
	mock.Mock
}

func NewDishRepository(t testingT) *DishRepository {
	m := &DishRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *DishRepository) CreateDish(ctx context.Context, dish *domain.Dish) error {
	return _m.Called(ctx, dish).Error(0)
}

func (_m *DishRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	ret := _m.Called(ctx)
	out, _ := ret.Get(0).([]domain.Dish)
	return out, ret.Error(1)
}

func (_m *DishRepository) ListDishesByCuisine(ctx context.Context, cuisineID int) ([]domain.Dish, error) {
	ret := _m.Called(ctx, cuisineID)
	out, _ := ret.Get(0).([]domain.Dish)
	return out, ret.Error(1)
}

func (_m *DishRepository) GetDish(ctx context.Context, id int) (*domain.Dish, error) {
	ret := _m.Called(ctx, id)
	out, _ := ret.Get(0).(*domain.Dish)
	return out, ret.Error(1)
}

type BookingRepository struct {
	mock.Mock
}

func NewBookingRepository(t testingT) *BookingRepository {
	m := &BookingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	return _m.Called(ctx, booking).Error(0)
}

func (_m *BookingRepository) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	ret := _m.Called(ctx)
	out, _ := ret.Get(0).([]domain.Booking)
	return out, ret.Error(1)
}

func (_m *BookingRepository) GetBooking(ctx context.Context, id int) (*domain.Booking, error) {
	ret := _m.Called(ctx, id)
	out, _ := ret.Get(0).(*domain.Booking)
	return out, ret.Error(1)
}

func (_m *BookingRepository) UpdateBookingStatus(ctx context.Context, id int, status domain.BookingStatus) (*domain.Booking, domain.BookingStatus, error) {
	ret := _m.Called(ctx, id, status)
	out, _ := ret.Get(0).(*domain.Booking)
	previous, _ := ret.Get(1).(domain.BookingStatus)
	return out, previous, ret.Error(2)
}

type ContactRepository struct {
	mock.Mock
}

func NewContactRepository(t testingT) *ContactRepository {
	m := &ContactRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ContactRepository) CreateContact(ctx context.Context, contact *domain.Contact) error {
	return _m.Called(ctx, contact).Error(0)
}

func (_m *ContactRepository) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	ret := _m.Called(ctx)
	out, _ := ret.Get(0).([]domain.Contact)
	return out, ret.Error(1)
}

func (_m *ContactRepository) GetContact(ctx context.Context, id int) (*domain.Contact, error) {
	ret := _m.Called(ctx, id)
	out, _ := ret.Get(0).(*domain.Contact)
	return out, ret.Error(1)
}

func (_m *ContactRepository) MarkContactRead(ctx context.Context, id int) (*domain.Contact, error) {
	ret := _m.Called(ctx, id)
	out, _ := ret.Get(0).(*domain.Contact)
	return out, ret.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return _m.Called(ctx, user).Error(0)
}

func (_m *UserRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	ret := _m.Called(ctx, id)
	out, _ := ret.Get(0).(*domain.User)
	return out, ret.Error(1)
}

func (_m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	ret := _m.Called(ctx, username)
	out, _ := ret.Get(0).(*domain.User)
	return out, ret.Error(1)
}

func (_m *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	ret := _m.Called(ctx)
	out, _ := ret.Get(0).([]domain.User)
	return out, ret.Error(1)
}

func (_m *UserRepository) UpdateUserPreferences(ctx context.Context, id int, prefs domain.Preferences) (*domain.User, error) {
	ret := _m.Called(ctx, id, prefs)
	out, _ := ret.Get(0).(*domain.User)
	return out, ret.Error(1)
}
