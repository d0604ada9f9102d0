package service

import (
	"context"
	"fmt"
	"time"

	"veg-catering/catering-svc/internal/domain"

	"go.uber.org/zap"
)

const (
	dashboardTopDishes = 5
	dashboardDays      = 7
)

type AdminService struct {
	users     UserRepository
	bookings  BookingRepository
	contacts  ContactRepository
	analytics AnalyticsReader
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdminService builds the admin read side. analytics may be nil.
func NewAdminService(users UserRepository, bookings BookingRepository, contacts ContactRepository, analytics AnalyticsReader, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		users:     users,
		bookings:  bookings,
		contacts:  contacts,
		analytics: analytics,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *AdminService) Bookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListBookings(ctx)
}

func (s *AdminService) Contacts(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.ListContacts(ctx)
}

func (s *AdminService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard users: %w", err)
	}
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard bookings: %w", err)
	}
	contacts, err := s.contacts.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard contacts: %w", err)
	}

	dash := &domain.Dashboard{
		Users:          len(users),
		Bookings:       len(bookings),
		BookingsByStat: make(map[domain.BookingStatus]int, len(domain.BookingStatuses)),
		Contacts:       len(contacts),
		TopDishes:      []domain.DishPopularity{},
		Daily:          []domain.DailyCount{},
	}
	for _, status := range domain.BookingStatuses {
		dash.BookingsByStat[status] = 0
	}
	for _, b := range bookings {
		dash.BookingsByStat[b.Status]++
	}
	for _, c := range contacts {
		if !c.IsRead {
			dash.UnreadContacts++
		}
	}

	if s.analytics != nil {
		s.fillAnalytics(ctx, dash)
	}
	return dash, nil
}

// fillAnalytics is best effort; the dashboard still renders store counts when
// the analytics backend is down.
func (s *AdminService) fillAnalytics(ctx context.Context, dash *domain.Dashboard) {
	top, err := s.analytics.TopDishes(ctx, dashboardTopDishes)
	if err != nil {
		s.logger.Warn("top dishes unavailable", zap.Error(err))
	} else {
		dash.TopDishes = top
	}

	today := s.now().UTC()
	for i := dashboardDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count, err := s.analytics.DailyBookings(ctx, day)
		if err != nil {
			s.logger.Warn("daily bookings unavailable", zap.Error(err))
			dash.Daily = []domain.DailyCount{}
			return
		}
		dash.Daily = append(dash.Daily, domain.DailyCount{Date: day.Format(time.DateOnly), Bookings: count})
	}
}
