package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"veg-catering/catering-svc/internal/cart"
	"veg-catering/catering-svc/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	EventType  string `json:"eventType"`
	EventDate  string `json:"eventDate"`
	GuestCount int    `json:"guestCount"`
	Message    string `json:"message"`
}

type BookingService struct {
	repo      BookingRepository
	publisher EventPublisher
	qr        QRGenerator
	logger    *zap.Logger
}

// NewBookingService wires the booking flow. publisher may be nil, in which case
// no events are emitted.
func NewBookingService(repo BookingRepository, publisher EventPublisher, qr QRGenerator, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, publisher: publisher, qr: qr, logger: logger}
}

func (s *BookingService) Submit(ctx context.Context, form BookingForm, selection cart.Cart) (*domain.Booking, error) {
	if err := validateBooking(form, selection); err != nil {
		return nil, err
	}

	snapshot, err := selection.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}
	totals := selection.Totals(form.GuestCount)

	booking := &domain.Booking{
		Name:       strings.TrimSpace(form.Name),
		Email:      strings.TrimSpace(form.Email),
		Phone:      strings.TrimSpace(form.Phone),
		EventType:  strings.TrimSpace(form.EventType),
		EventDate:  strings.TrimSpace(form.EventDate),
		GuestCount: form.GuestCount,
		Message:    strings.TrimSpace(form.Message),
		Dishes:     snapshot,
		TotalPrice: totals.Total.Round(2),
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}

	s.publish(ctx, bookingEvent(domain.EventBookingCreated, booking, "", selection.Lines()))
	s.logger.Info("booking submitted",
		zap.Int("booking_id", booking.ID),
		zap.Int("guests", booking.GuestCount),
		zap.String("total", booking.TotalPrice.StringFixed(domain.MoneyPlaces)),
	)
	return booking, nil
}

// Quote prices a selection for the live preview. A non-positive guest count
// falls back to cart.DefaultGuestCount.
func (s *BookingService) Quote(selection cart.Cart, guestCount int) cart.Totals {
	if guestCount <= 0 {
		guestCount = cart.DefaultGuestCount
	}
	return selection.Totals(guestCount)
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.repo.ListBookings(ctx)
}

func (s *BookingService) Get(ctx context.Context, id int) (*domain.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id int, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, &ValidationError{
			Message: "invalid booking status",
			Fields:  map[string]string{"status": "status must be one of pending, confirmed, canceled"},
		}
	}

	updated, previous, err := s.repo.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update booking %d: %w", id, err)
	}

	if previous != updated.Status {
		lines, err := cart.DecodeSnapshot(updated.Dishes)
		if err != nil {
			s.logger.Warn("booking has unreadable menu snapshot", zap.Int("booking_id", id), zap.Error(err))
		}
		s.publish(ctx, bookingEvent(domain.EventBookingStatusChanged, updated, previous, lines))
	}
	return updated, nil
}

func (s *BookingService) QRCode(ctx context.Context, id int) ([]byte, error) {
	if _, err := s.repo.GetBooking(ctx, id); err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate qr code for booking %d: %w", id, err)
	}
	return png, nil
}

func (s *BookingService) publish(ctx context.Context, evt domain.BookingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishBooking(ctx, evt); err != nil {
		s.logger.Warn("booking event not published",
			zap.String("type", evt.Type),
			zap.Int("booking_id", evt.BookingID),
			zap.Error(err),
		)
	}
}

func validateBooking(form BookingForm, selection cart.Cart) error {
	fields := fieldErrors{}
	fields.required("name", form.Name)
	fields.email("email", form.Email)
	fields.phone("phone", form.Phone)
	fields.required("eventType", form.EventType)
	fields.required("eventDate", form.EventDate)
	fields.check(form.GuestCount >= 1, "guestCount", "guestCount must be at least 1")

	if selection.IsEmpty() {
		fields["dishes"] = "select at least one dish"
		return &ValidationError{Message: ErrEmptyMenu.Error(), Fields: fields, cause: ErrEmptyMenu}
	}
	return fields.result("invalid booking request")
}

func bookingEvent(kind string, booking *domain.Booking, previous domain.BookingStatus, lines []domain.SelectedDish) domain.BookingEvent {
	dishes := make([]domain.EventDish, 0, len(lines))
	for _, line := range lines {
		dishes = append(dishes, domain.EventDish{DishID: line.ID, Name: line.Name, Quantity: line.Quantity})
	}
	return domain.BookingEvent{
		EventID:        uuid.NewString(),
		Type:           kind,
		BookingID:      booking.ID,
		Status:         booking.Status,
		PreviousStatus: previous,
		GuestCount:     booking.GuestCount,
		TotalPrice:     booking.TotalPrice.StringFixed(domain.MoneyPlaces),
		Dishes:         dishes,
		Timestamp:      time.Now().UTC(),
	}
}
