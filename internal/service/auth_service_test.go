package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"kusgan/internal/auth"
	"kusgan/internal/model"
)

// MockRosterRepository is a mock implementation of RosterRepository.
type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) Load(ctx context.Context) ([]model.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockRosterRepository) Save(ctx context.Context, roster []model.Member) error {
	args := m.Called(ctx, roster)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context) (*model.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *MockSessionRepository) Set(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockSessionRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPresenceService is a mock implementation of PresenceService.
type MockPresenceService struct {
	mock.Mock
}

func (m *MockPresenceService) RecordDailyPresence(ctx context.Context, member model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockPresenceService) TodayPresent(ctx context.Context) ([]model.PresenceEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PresenceEntry), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret")

	roster := []model.Member{
		{
			ID:       "1",
			Name:     "Admin User",
			Email:    "admin@kusgan.com",
			Password: hashPassword(t, "admin123"),
			Role:     model.RoleAdmin,
			Status:   model.StatusActive,
		},
		{
			ID:       "2",
			Name:     "John Doe",
			Email:    "john@kusgan.com",
			Password: hashPassword(t, "john123"),
			Role:     model.RoleMember,
			Status:   model.StatusActive,
		},
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "successful login",
			email:    "admin@kusgan.com",
			password: "admin123",
		},
		{
			name:     "wrong password",
			email:    "admin@kusgan.com",
			password: "nope",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@kusgan.com",
			password: "admin123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rosterRepo := new(MockRosterRepository)
			sessionRepo := new(MockSessionRepository)
			presence := new(MockPresenceService)
			tokenStore := new(MockTokenStore)

			rosterRepo.On("Load", ctx).Return(roster, nil)
			if tt.wantErr == nil {
				sessionRepo.On("Set", ctx, mock.AnythingOfType("*model.Member")).Return(nil)
				presence.On("RecordDailyPresence", ctx, mock.AnythingOfType("model.Member")).Return(nil)
				tokenStore.On("StoreRefreshToken", ctx, mock.Anything, "1", tt.email, auth.RefreshTokenExpiry).Return(nil)
			}

			svc := NewAuthService(rosterRepo, sessionRepo, presence, jwtService, tokenStore, nil)
			accessToken, refreshToken, member, err := svc.Authenticate(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, member)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, accessToken)
			assert.NotEmpty(t, refreshToken)
			assert.Equal(t, "Admin User", member.Name)
			assert.Empty(t, member.Password, "authenticated member must not carry the hash")
			assert.NotEmpty(t, member.ProfileImage)
			sessionRepo.AssertExpectations(t)
			presence.AssertExpectations(t)
			tokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate_WrongAndUnknownLookAlike(t *testing.T) {
	// An unknown email and a wrong password must produce the same error, so
	// account existence cannot be probed through the login endpoint.
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret")

	rosterRepo := new(MockRosterRepository)
	rosterRepo.On("Load", ctx).Return([]model.Member{
		{ID: "1", Email: "admin@kusgan.com", Password: hashPassword(t, "admin123")},
	}, nil)

	svc := NewAuthService(rosterRepo, new(MockSessionRepository), new(MockPresenceService), jwtService, new(MockTokenStore), nil)

	_, _, _, errWrongPassword := svc.Authenticate(ctx, "admin@kusgan.com", "bad")
	_, _, _, errUnknownEmail := svc.Authenticate(ctx, "nobody@kusgan.com", "admin123")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret")

	existing := []model.Member{
		{ID: "1", Name: "Admin User", Email: "admin@kusgan.com", Password: hashPassword(t, "admin123"), Role: model.RoleAdmin},
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		rosterRepo := new(MockRosterRepository)
		rosterRepo.On("Load", ctx).Return(existing, nil)

		svc := NewAuthService(rosterRepo, new(MockSessionRepository), new(MockPresenceService), jwtService, new(MockTokenStore), nil)
		_, _, member, err := svc.Register(ctx, "Other Admin", "admin@kusgan.com", "secret")

		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.Nil(t, member)
		rosterRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("successful registration", func(t *testing.T) {
		rosterRepo := new(MockRosterRepository)
		sessionRepo := new(MockSessionRepository)
		presence := new(MockPresenceService)
		tokenStore := new(MockTokenStore)

		rosterRepo.On("Load", ctx).Return(existing, nil)
		var saved []model.Member
		rosterRepo.On("Save", ctx, mock.AnythingOfType("[]model.Member")).
			Run(func(args mock.Arguments) { saved = args.Get(1).([]model.Member) }).
			Return(nil)
		sessionRepo.On("Set", ctx, mock.AnythingOfType("*model.Member")).Return(nil)
		presence.On("RecordDailyPresence", ctx, mock.AnythingOfType("model.Member")).Return(nil)
		tokenStore.On("StoreRefreshToken", ctx, mock.Anything, mock.Anything, "new@kusgan.com", auth.RefreshTokenExpiry).Return(nil)

		svc := NewAuthService(rosterRepo, sessionRepo, presence, jwtService, tokenStore, nil)
		accessToken, refreshToken, member, err := svc.Register(ctx, "New Member", "new@kusgan.com", "secret")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, model.RoleMember, member.Role)
		assert.Equal(t, model.StatusActive, member.Status)
		assert.False(t, member.CanCreateAnnouncement)
		assert.Empty(t, member.Password)

		assert.Len(t, saved, 2)
		persisted := saved[1]
		assert.NotEmpty(t, persisted.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.Password), []byte("secret")))
		sessionRepo.AssertExpectations(t)
		presence.AssertExpectations(t)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret")

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken("1", "admin@kusgan.com")
	assert.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", ctx, tokenID).Return("1", "admin@kusgan.com", nil)

		svc := NewAuthService(new(MockRosterRepository), new(MockSessionRepository), new(MockPresenceService), jwtService, tokenStore, nil)
		accessToken, err := svc.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, "1", claims.UserID)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", ctx, tokenID).Return("", "", assert.AnError)

		svc := NewAuthService(new(MockRosterRepository), new(MockSessionRepository), new(MockPresenceService), jwtService, tokenStore, nil)
		_, err := svc.RefreshToken(ctx, refreshToken)

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockRosterRepository), new(MockSessionRepository), new(MockPresenceService), jwtService, new(MockTokenStore), nil)
		_, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret")

	t.Run("clears session and revokes token", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken("1", "admin@kusgan.com")
		assert.NoError(t, err)

		sessionRepo := new(MockSessionRepository)
		sessionRepo.On("Clear", ctx).Return(nil)
		tokenStore := new(MockTokenStore)
		tokenStore.On("DeleteRefreshToken", ctx, tokenID).Return(nil)

		svc := NewAuthService(new(MockRosterRepository), sessionRepo, new(MockPresenceService), jwtService, tokenStore, nil)
		assert.NoError(t, svc.Logout(ctx, refreshToken))
		sessionRepo.AssertExpectations(t)
		tokenStore.AssertExpectations(t)
	})

	t.Run("invalid token still logs out", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		sessionRepo.On("Clear", ctx).Return(nil)

		svc := NewAuthService(new(MockRosterRepository), sessionRepo, new(MockPresenceService), jwtService, new(MockTokenStore), nil)
		assert.NoError(t, svc.Logout(ctx, "expired-or-garbage"))
		sessionRepo.AssertExpectations(t)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret")

	t.Run("logged out returns nil", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		sessionRepo.On("Get", ctx).Return(nil, nil)

		svc := NewAuthService(new(MockRosterRepository), sessionRepo, new(MockPresenceService), jwtService, new(MockTokenStore), nil)
		member, err := svc.CurrentUser(ctx)

		assert.NoError(t, err)
		assert.Nil(t, member)
	})

	t.Run("session member is avatar-enriched", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		sessionRepo.On("Get", ctx).Return(&model.Member{ID: "2", Name: "John Doe"}, nil)

		svc := NewAuthService(new(MockRosterRepository), sessionRepo, new(MockPresenceService), jwtService, new(MockTokenStore), nil)
		member, err := svc.CurrentUser(ctx)

		assert.NoError(t, err)
		assert.Contains(t, member.ProfileImage, "John%20Doe")
	})
}
