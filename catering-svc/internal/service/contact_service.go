package service

import (
	"context"
	"fmt"
	"strings"

	"veg-catering/catering-svc/internal/domain"

	"go.uber.org/zap"
)

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactService struct {
	repo   ContactRepository
	logger *zap.Logger
}

func NewContactService(repo ContactRepository, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, logger: logger}
}

func (s *ContactService) Submit(ctx context.Context, form ContactForm) (*domain.Contact, error) {
	fields := fieldErrors{}
	fields.required("name", form.Name)
	fields.email("email", form.Email)
	fields.required("phone", form.Phone)
	fields.required("subject", form.Subject)
	fields.required("message", form.Message)
	if err := fields.result("invalid contact request"); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Phone:   strings.TrimSpace(form.Phone),
		Subject: strings.TrimSpace(form.Subject),
		Message: strings.TrimSpace(form.Message),
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("submit contact: %w", err)
	}
	s.logger.Info("contact message received", zap.Int("contact_id", contact.ID))
	return contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.ListContacts(ctx)
}

// MarkRead is idempotent: an already read contact is returned as is.
func (s *ContactService) MarkRead(ctx context.Context, id int) (*domain.Contact, error) {
	contact, err := s.repo.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact.IsRead {
		return contact, nil
	}
	return s.repo.MarkContactRead(ctx, id)
}
