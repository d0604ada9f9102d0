package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"veg-catering/catering-svc/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type Claims struct {
	UserID   int         `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewAuthService(users UserRepository, secret string, ttl time.Duration, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	fields := fieldErrors{}
	fields.required("username", input.Username)
	fields.check(len(input.Password) >= minPasswordLength, "password", "password must be at least 6 characters")
	if input.Email != "" {
		fields.email("email", input.Email)
	}
	if err := fields.result("invalid registration"); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, input, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	fields := fieldErrors{}
	fields.required("username", username)
	fields.required("password", password)
	if err := fields.result("invalid login request"); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequireRole is the single authorization check. Admins satisfy every role.
func (s *AuthService) RequireRole(claims *Claims, role domain.Role) error {
	if claims == nil {
		return ErrInvalidToken
	}
	if claims.Role == domain.RoleAdmin || claims.Role == role {
		return nil
	}
	return ErrForbidden
}

// EnsureAdmin creates the configured admin account when it does not exist yet.
// An empty username disables the bootstrap.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("lookup admin %q: %w", username, err)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("admin password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.createUser(ctx, RegisterInput{Username: username, Password: password, DisplayName: "Administrator"}, domain.RoleAdmin); err != nil {
		return err
	}
	s.logger.Info("admin account created", zap.String("username", username))
	return nil
}

func (s *AuthService) createUser(ctx context.Context, input RegisterInput, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = input.Username
	}
	user := &domain.User{
		Username:     input.Username,
		DisplayName:  displayName,
		Email:        input.Email,
		Role:         role,
		Preferences:  domain.DefaultPreferences(),
		PasswordHash: string(hash),
	}

	err = s.users.CreateUser(ctx, user)
	if errors.Is(err, domain.ErrConflict) {
		return nil, &ValidationError{
			Message: ErrUsernameTaken.Error(),
			Fields:  map[string]string{"username": "username already taken"},
			cause:   ErrUsernameTaken,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	now := s.now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
