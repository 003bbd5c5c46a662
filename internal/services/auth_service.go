package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"slotbook/internal/caching"
	"slotbook/internal/models"
	"slotbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 7 * 24 * time.Hour

type AuthService interface {
	// Login exchanges a provider session ID for a local session. A returning
	// user is refreshed in place and keeps their role and original tenant;
	// the first user of a tenant becomes its admin.
	Login(ctx context.Context, tenantID uuid.UUID, providerSessionID string) (*models.User, *models.Session, error)
	// Authenticate resolves an opaque session token to its user.
	Authenticate(ctx context.Context, token string) (*models.User, *models.Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo repositories.UserRepository
	cache    caching.CacheService
	verifier IdentityVerifier
}

func NewAuthService(userRepo repositories.UserRepository, cache caching.CacheService, verifier IdentityVerifier) AuthService {
	return &authService{userRepo: userRepo, cache: cache, verifier: verifier}
}

func (s *authService) Login(ctx context.Context, tenantID uuid.UUID, providerSessionID string) (*models.User, *models.Session, error) {
	if providerSessionID == "" {
		return nil, nil, fmt.Errorf("%w: session ID is required", ErrInvalidArgument)
	}

	identity, err := s.verifier.Verify(ctx, providerSessionID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		user.Name = identity.Name
		user.Picture = identity.Picture
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, nil, fmt.Errorf("failed to refresh user: %w", err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		role := models.RoleClient
		count, err := s.userRepo.CountByTenant(ctx, tenantID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count tenant users: %w", err)
		}
		if count == 0 {
			role = models.RoleAdmin
		}
		user = &models.User{
			ID:       uuid.New(),
			TenantID: tenantID,
			Email:    identity.Email,
			Name:     identity.Name,
			Picture:  identity.Picture,
			Role:     role,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, nil, fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// createSession issues a fresh token and evicts the user's previous session
// so at most one session is live per user.
func (s *authService) createSession(ctx context.Context, user *models.User) (*models.Session, error) {
	if prev, err := s.cache.GetUserSessionToken(ctx, user.ID); err == nil && prev != "" {
		_ = s.cache.DeleteSession(ctx, prev)
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		TenantID:  user.TenantID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}
	if err := s.cache.SetSession(ctx, session, SessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, *models.Session, error) {
	if token == "" {
		return nil, nil, ErrUnauthenticated
	}

	session, err := s.cache.GetSession(ctx, token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.Expired(time.Now().UTC()) {
		return nil, nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, session.TenantID, session.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.cache.DeleteSession(ctx, token)
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
