package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"veg-catering/catering-svc/internal/domain"
	"veg-catering/catering-svc/internal/mocks"
	"veg-catering/catering-svc/internal/service"
	"veg-catering/catering-svc/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newAuth(store service.UserRepository) *service.AuthService {
	return service.NewAuthService(store, testSecret, time.Hour, zap.NewNop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(storage.NewMemoryStore())

	registered, err := auth.Register(ctx, service.RegisterInput{Username: "meera", Password: "secret1", Email: "meera@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, registered.User.ID)
	assert.Equal(t, domain.RoleUser, registered.User.Role)
	assert.Equal(t, "meera", registered.User.DisplayName)
	assert.Equal(t, domain.DefaultPreferences(), registered.User.Preferences)
	assert.NotEqual(t, "secret1", registered.User.PasswordHash)

	claims, err := auth.VerifyToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "meera", claims.Username)
	assert.Equal(t, domain.RoleUser, claims.Role)

	loggedIn, err := auth.Login(ctx, "meera", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = auth.Login(ctx, "meera", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(storage.NewMemoryStore())
	_, err := auth.Register(ctx, service.RegisterInput{Username: "taken", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   service.RegisterInput
		field   string
		wantErr error
	}{
		{name: "missing_username", input: service.RegisterInput{Password: "secret1"}, field: "username"},
		{name: "short_password", input: service.RegisterInput{Username: "kiran", Password: "12345"}, field: "password"},
		{name: "bad_email", input: service.RegisterInput{Username: "kiran", Password: "secret1", Email: "kiran@"}, field: "email"},
		{name: "duplicate_username", input: service.RegisterInput{Username: "taken", Password: "secret2"}, field: "username", wantErr: service.ErrUsernameTaken},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := auth.Register(ctx, testCase.input)
			verr, ok := service.IsValidation(err)
			require.True(t, ok)
			assert.Contains(t, verr.Fields, testCase.field)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			}
		})
	}
}

func TestAuthService_LoginRequiresFields(t *testing.T) {
	auth := newAuth(mocks.NewUserRepository(t))

	_, err := auth.Login(context.Background(), "", "")
	verr, ok := service.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "password")
}

func TestAuthService_LoginStoreFailure(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewUserRepository(t)
	auth := newAuth(users)
	dbErr := errors.New("db down")
	users.On("GetUserByUsername", ctx, "meera").Return(nil, dbErr).Once()

	_, err := auth.Login(ctx, "meera", "secret1")
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_VerifyTokenRejects(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	auth := newAuth(store)
	result, err := auth.Register(ctx, service.RegisterInput{Username: "meera", Password: "secret1"})
	require.NoError(t, err)

	expired, err := service.NewAuthService(store, testSecret, -time.Minute, nil).Login(ctx, "meera", "secret1")
	require.NoError(t, err)

	foreign, err := service.NewAuthService(store, "other-secret", time.Hour, nil).Login(ctx, "meera", "secret1")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": result.User.ID, "role": "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":        expired.Token,
		"wrong_secret":   foreign.Token,
		"none_algorithm": unsigned,
		"garbage":        "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.VerifyToken(token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}

func TestAuthService_RequireRole(t *testing.T) {
	auth := newAuth(nil)

	tests := []struct {
		name    string
		claims  *service.Claims
		role    domain.Role
		wantErr error
	}{
		{name: "admin_on_admin_route", claims: &service.Claims{Role: domain.RoleAdmin}, role: domain.RoleAdmin},
		{name: "admin_on_user_route", claims: &service.Claims{Role: domain.RoleAdmin}, role: domain.RoleUser},
		{name: "user_on_user_route", claims: &service.Claims{Role: domain.RoleUser}, role: domain.RoleUser},
		{name: "user_on_admin_route", claims: &service.Claims{Role: domain.RoleUser}, role: domain.RoleAdmin, wantErr: service.ErrForbidden},
		{name: "anonymous", claims: nil, role: domain.RoleUser, wantErr: service.ErrInvalidToken},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := auth.RequireRole(testCase.claims, testCase.role)
			if testCase.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	auth := newAuth(store)

	require.NoError(t, auth.EnsureAdmin(ctx, "", ""))
	require.NoError(t, auth.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, auth.EnsureAdmin(ctx, "admin", "admin123"))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)

	result, err := auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	claims, err := auth.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.NoError(t, auth.RequireRole(claims, domain.RoleAdmin))

	assert.Error(t, newAuth(storage.NewMemoryStore()).EnsureAdmin(ctx, "admin", "123"))
}

func TestUserService_UpdatePreferences(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		prefs        domain.Preferences
		prepareMocks func(users *mocks.UserRepository)
		wantTheme    string
		wantErr      error
		validation   bool
	}{
		{
			name:  "dark_theme",
			prefs: domain.Preferences{Theme: "Dark", FavoriteDishIDs: []int{1}},
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("UpdateUserPreferences", ctx, 1, mock.MatchedBy(func(p domain.Preferences) bool {
					return p.Theme == domain.ThemeDark && p.DietaryRestrictions != nil && len(p.FavoriteDishIDs) == 1
				})).Return(&domain.User{ID: 1, Preferences: domain.Preferences{Theme: domain.ThemeDark}}, nil).Once()
			},
			wantTheme: domain.ThemeDark,
		},
		{
			name:  "empty_theme_defaults_to_light",
			prefs: domain.Preferences{},
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("UpdateUserPreferences", ctx, 1, mock.MatchedBy(func(p domain.Preferences) bool {
					return p.Theme == domain.ThemeLight
				})).Return(&domain.User{ID: 1, Preferences: domain.Preferences{Theme: domain.ThemeLight}}, nil).Once()
			},
			wantTheme: domain.ThemeLight,
		},
		{
			name:         "unknown_theme",
			prefs:        domain.Preferences{Theme: "solarized"},
			prepareMocks: func(*mocks.UserRepository) {},
			validation:   true,
		},
		{
			name:  "unknown_user",
			prefs: domain.Preferences{Theme: domain.ThemeLight},
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("UpdateUserPreferences", ctx, 1, mock.Anything).Return(nil, domain.ErrNotFound).Once()
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			users := mocks.NewUserRepository(t)
			svc := service.NewUserService(users)
			testCase.prepareMocks(users)

			user, err := svc.UpdatePreferences(ctx, 1, testCase.prefs)
			switch {
			case testCase.validation:
				_, ok := service.IsValidation(err)
				assert.True(t, ok)
			case testCase.wantErr != nil:
				assert.ErrorIs(t, err, testCase.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, testCase.wantTheme, user.Preferences.Theme)
			}
		})
	}
}

func TestUserService_Current(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewUserRepository(t)
	svc := service.NewUserService(users)
	users.On("GetUser", ctx, 4).Return(&domain.User{ID: 4, Username: "meera"}, nil).Once()

	user, err := svc.Current(ctx, &service.Claims{UserID: 4})
	require.NoError(t, err)
	assert.Equal(t, "meera", user.Username)

	_, err = svc.Current(ctx, nil)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAdminService_Dashboard(t *testing.T) {
	ctx := context.Background()

	users := mocks.NewUserRepository(t)
	bookings := mocks.NewBookingRepository(t)
	contacts := mocks.NewContactRepository(t)
	analytics := mocks.NewAnalyticsReader(t)
	svc := service.NewAdminService(users, bookings, contacts, analytics, zap.NewNop())

	users.On("ListUsers", ctx).Return([]domain.User{{ID: 1}, {ID: 2}}, nil).Once()
	bookings.On("ListBookings", ctx).Return([]domain.Booking{
		{ID: 1, Status: domain.BookingPending},
		{ID: 2, Status: domain.BookingConfirmed},
		{ID: 3, Status: domain.BookingPending},
	}, nil).Once()
	contacts.On("ListContacts", ctx).Return([]domain.Contact{{ID: 1}, {ID: 2, IsRead: true}}, nil).Once()
	analytics.On("TopDishes", ctx, 5).Return([]domain.DishPopularity{{DishID: 1, Name: "Masala Dosa", Quantity: 12}}, nil).Once()
	analytics.On("DailyBookings", ctx, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Times(7)

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Users)
	assert.Equal(t, 3, dash.Bookings)
	assert.Equal(t, 2, dash.BookingsByStat[domain.BookingPending])
	assert.Equal(t, 1, dash.BookingsByStat[domain.BookingConfirmed])
	assert.Equal(t, 0, dash.BookingsByStat[domain.BookingCanceled])
	assert.Equal(t, 2, dash.Contacts)
	assert.Equal(t, 1, dash.UnreadContacts)
	require.Len(t, dash.TopDishes, 1)
	assert.Equal(t, "Masala Dosa", dash.TopDishes[0].Name)
	require.Len(t, dash.Daily, 7)
	assert.Equal(t, int64(2), dash.Daily[6].Bookings)
}

func TestAdminService_DashboardAnalyticsDown(t *testing.T) {
	ctx := context.Background()

	users := mocks.NewUserRepository(t)
	bookings := mocks.NewBookingRepository(t)
	contacts := mocks.NewContactRepository(t)
	analytics := mocks.NewAnalyticsReader(t)
	svc := service.NewAdminService(users, bookings, contacts, analytics, nil)

	redisErr := errors.New("redis down")
	users.On("ListUsers", ctx).Return([]domain.User{}, nil).Once()
	bookings.On("ListBookings", ctx).Return([]domain.Booking{}, nil).Once()
	contacts.On("ListContacts", ctx).Return([]domain.Contact{}, nil).Once()
	analytics.On("TopDishes", ctx, 5).Return(nil, redisErr).Once()
	analytics.On("DailyBookings", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), redisErr).Once()

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, dash.TopDishes)
	assert.Empty(t, dash.Daily)
}
