package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// authService implements the AuthService interface with bcrypt password hashes and random bearer tokens
type authService struct {
	userRepo  users.UserRepository
	tokenRepo users.TokenRepository
	tokenTTL  time.Duration
	cost      int
	logger    logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo users.UserRepository, tokenRepo users.TokenRepository, settings *config.AuthSettings, logger logger.Logger) (users.AuthService, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth settings: %w", err)
	}

	cost := settings.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokenTTL:  settings.TokenTTL,
		cost:      cost,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// Register creates an account and issues its first token.
func (s *authService) Register(ctx context.Context, credentials *users.Credentials) (*users.User, *users.Token, error) {
	if err := credentials.Validate(); err != nil {
		return nil, nil, apperr.Wrap(apperr.CodeInvalidInput, err, "invalid credentials")
	}

	_, err := s.userRepo.GetByUsername(ctx, credentials.Username)
	if err == nil {
		return nil, nil, apperr.Conflict("username %s is already taken", credentials.Username)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, nil, apperr.Wrap(apperr.CodeInvalidInput, err, "invalid credentials")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users.User{
		ID:              uuid.NewString(),
		Username:        credentials.Username,
		PasswordHash:    string(hash),
		DateTimeCreated: s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Registered user ", user.Username)
	return user, token, nil
}

// Login checks the credentials and issues a new token.
func (s *authService) Login(ctx context.Context, credentials *users.Credentials) (*users.Token, error) {
	user, err := s.userRepo.GetByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		s.logger.Warn("Failed login for user ", user.Username)
		return nil, apperr.Unauthorized("invalid username or password")
	}

	if _, err := s.tokenRepo.DeleteExpired(ctx, s.now()); err != nil {
		s.logger.Warn("Failed to purge expired tokens: ", err)
	}

	return s.issueToken(ctx, user.ID)
}

// Logout revokes a token.
func (s *authService) Logout(ctx context.Context, tokenKey string) error {
	if tokenKey == "" {
		return nil
	}
	return s.tokenRepo.DeleteByKey(ctx, tokenKey)
}

// Authenticate resolves a token to its user.
func (s *authService) Authenticate(ctx context.Context, tokenKey string) (*users.User, error) {
	if tokenKey == "" {
		return nil, apperr.Unauthorized("authentication credentials were not provided")
	}

	token, err := s.tokenRepo.GetByKey(ctx, tokenKey)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid token")
		}
		return nil, err
	}

	if token.Expired(s.now()) {
		if err := s.tokenRepo.DeleteByKey(ctx, tokenKey); err != nil {
			s.logger.Warn("Failed to delete expired token: ", err)
		}
		return nil, apperr.Unauthorized("token expired")
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid token")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueToken(ctx context.Context, userID string) (*users.Token, error) {
	key, err := newTokenKey()
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := &users.Token{
		Key:             key,
		UserID:          userID,
		DateTimeCreated: now,
		ExpiresAt:       now.Add(s.tokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// newTokenKey returns TokenKeyLength random hex characters.
func newTokenKey() (string, error) {
	buf := make([]byte, users.TokenKeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
