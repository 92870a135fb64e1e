package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kusgan/internal/auth"
	"kusgan/internal/avatar"
	"kusgan/internal/cache"
	"kusgan/internal/model"
	"kusgan/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The message deliberately does not distinguish an unknown email from a
	// wrong password, so account existence cannot be probed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email already on the roster.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles authentication and the operator session.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (accessToken, refreshToken string, member *model.Member, err error)
	Register(ctx context.Context, name, email, password string) (accessToken, refreshToken string, member *model.Member, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	// CurrentUser returns the session member, or nil when logged out.
	CurrentUser(ctx context.Context) (*model.Member, error)
}

type authService struct {
	roster     repository.RosterRepository
	session    repository.SessionRepository
	presence   PresenceService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	roster repository.RosterRepository,
	session repository.SessionRepository,
	presence PresenceService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	cacheClient *cache.Client,
) AuthService {
	return &authService{
		roster:     roster,
		session:    session,
		presence:   presence,
		jwtService: jwtService,
		tokenStore: tokenStore,
		cache:      cacheClient,
	}
}

// Authenticate verifies credentials against the roster, starts the session
// and records daily presence. The returned member never carries the hash.
func (s *authService) Authenticate(ctx context.Context, email, password string) (string, string, *model.Member, error) {
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return "", "", nil, fmt.Errorf("load roster: %w", err)
	}

	// Emails are matched case-sensitively; with duplicate emails the first
	// entry whose password also verifies wins.
	var found *model.Member
	for i := range roster {
		if roster[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(roster[i].Password), []byte(password)) == nil {
			found = &roster[i]
			break
		}
	}
	if found == nil {
		return "", "", nil, ErrInvalidCredentials
	}

	member := found.Redacted()
	avatar.Enrich(&member)

	if err := s.session.Set(ctx, &member); err != nil {
		return "", "", nil, fmt.Errorf("save session: %w", err)
	}
	if err := s.presence.RecordDailyPresence(ctx, member); err != nil {
		return "", "", nil, fmt.Errorf("record presence: %w", err)
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, &member)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, &member, nil
}

// Register creates a new member account, starts the session and records
// presence. Registration rejects emails already on the roster; the
// administrative AddUser path does not share that check.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, string, *model.Member, error) {
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return "", "", nil, fmt.Errorf("load roster: %w", err)
	}

	for i := range roster {
		if roster[i].Email == email {
			return "", "", nil, ErrEmailTaken
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", "", nil, fmt.Errorf("hash password: %w", err)
	}

	newMember := model.Member{
		ID:           model.MemberID(uuid.NewString()),
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		Role:         model.RoleMember,
		Status:       model.StatusActive,
		MemberSince:  time.Now().Format(time.RFC3339),
		ProfileImage: avatar.ProfileImageURL(name),
	}

	roster = append(roster, newMember)
	if err := s.roster.Save(ctx, roster); err != nil {
		return "", "", nil, fmt.Errorf("save roster: %w", err)
	}
	_ = s.cache.Delete(ctx, membersCacheKey)

	member := newMember.Redacted()
	if err := s.session.Set(ctx, &member); err != nil {
		return "", "", nil, fmt.Errorf("save session: %w", err)
	}
	if err := s.presence.RecordDailyPresence(ctx, member); err != nil {
		return "", "", nil, fmt.Errorf("record presence: %w", err)
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, &member)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, &member, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout clears the session. The refresh token is revoked best-effort: a
// missing or already-expired token still logs the session out.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		if tokenID, err := s.jwtService.ExtractTokenID(refreshToken); err == nil {
			_ = s.tokenStore.DeleteRefreshToken(ctx, tokenID)
		}
	}
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the session member, avatar-enriched, or nil.
func (s *authService) CurrentUser(ctx context.Context) (*model.Member, error) {
	member, err := s.session.Get(ctx)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}
	avatar.Enrich(member)
	return member, nil
}

func (s *authService) issueTokens(ctx context.Context, member *model.Member) (string, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(member.ID.String(), member.Email)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(member.ID.String(), member.Email)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, member.ID.String(), member.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}
