package service

import (
	"context"
	"fmt"
	"strings"

	"veg-catering/catering-svc/internal/domain"
)

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Current(ctx context.Context, claims *Claims) (*domain.User, error) {
	if claims == nil {
		return nil, ErrInvalidToken
	}
	return s.users.GetUser(ctx, claims.UserID)
}

func (s *UserService) UpdatePreferences(ctx context.Context, userID int, prefs domain.Preferences) (*domain.User, error) {
	prefs.Theme = strings.ToLower(strings.TrimSpace(prefs.Theme))
	if prefs.Theme == "" {
		prefs.Theme = domain.ThemeLight
	}

	fields := fieldErrors{}
	fields.check(prefs.Theme == domain.ThemeLight || prefs.Theme == domain.ThemeDark, "theme", "theme must be light or dark")
	if err := fields.result("invalid preferences"); err != nil {
		return nil, err
	}

	if prefs.DietaryRestrictions == nil {
		prefs.DietaryRestrictions = []string{}
	}
	if prefs.FavoriteDishIDs == nil {
		prefs.FavoriteDishIDs = []int{}
	}

	user, err := s.users.UpdateUserPreferences(ctx, userID, prefs)
	if err != nil {
		return nil, fmt.Errorf("update preferences for user %d: %w", userID, err)
	}
	return user, nil
}
