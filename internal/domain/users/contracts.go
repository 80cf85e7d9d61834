package users

import (
	"context"
	"time"
)

// AuthService defines methods for account registration and token based authentication.
type AuthService interface {
	// Register creates an account and issues its first token.
	// A taken username is reported as a conflict.
	Register(ctx context.Context, credentials *Credentials) (*User, *Token, error)

	// Login checks the credentials and issues a new token.
	Login(ctx context.Context, credentials *Credentials) (*Token, error)

	// Logout revokes a token. Unknown tokens are ignored.
	Logout(ctx context.Context, tokenKey string) error

	// Authenticate resolves a token to its user. Unknown and expired tokens
	// are reported as unauthorized; expired tokens are revoked.
	Authenticate(ctx context.Context, tokenKey string) (*User, error)
}

// UserRepository defines the interface for User-related operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// TokenRepository defines the interface for Token-related operations
type TokenRepository interface {
	Create(ctx context.Context, token *Token) error
	GetByKey(ctx context.Context, key string) (*Token, error)
	DeleteByKey(ctx context.Context, key string) error
	// DeleteExpired removes tokens expired at now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
