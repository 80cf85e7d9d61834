package models

import (
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"
)

// UserModel is the GORM database model for accounts
type UserModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Username        string    `gorm:"not null;uniqueIndex;type:varchar(150)"`
	PasswordHash    string    `gorm:"not null;type:varchar(255)"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:              m.ID,
		Username:        m.Username,
		PasswordHash:    m.PasswordHash,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.DateTimeCreated = u.DateTimeCreated
}

// TokenModel is the GORM database model for API tokens
type TokenModel struct {
	Key             string    `gorm:"primaryKey;column:token_key;type:varchar(40)"`
	UserID          string    `gorm:"not null;index;type:uuid"`
	DateTimeCreated time.Time `gorm:"not null"`
	ExpiresAt       time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (TokenModel) TableName() string {
	return "tokens"
}

// ToDomain converts GORM model to domain entity
func (m *TokenModel) ToDomain() *users.Token {
	return &users.Token{
		Key:             m.Key,
		UserID:          m.UserID,
		DateTimeCreated: m.DateTimeCreated,
		ExpiresAt:       m.ExpiresAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TokenModel) FromDomain(t *users.Token) {
	m.Key = t.Key
	m.UserID = t.UserID
	m.DateTimeCreated = t.DateTimeCreated
	m.ExpiresAt = t.ExpiresAt
}
