package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/persistence/models"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "validation error")
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("username %s is already taken", user.Username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("Created user with id ", user.ID)
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user with ID %s not found", userID)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user %s not found", username)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

type gormTokenRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTokenRepository creates a new GORM-based TokenRepository implementation
func NewGormTokenRepository(db *gorm.DB, logger logger.Logger) (users.TokenRepository, error) {
	return &gormTokenRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTokenRepository) Create(ctx context.Context, token *users.Token) error {
	if err := token.Validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "validation error")
	}

	model := &models.TokenModel{}
	model.FromDomain(token)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	r.logger.Info("Issued token for user with id ", token.UserID)
	return nil
}

func (r *gormTokenRepository) GetByKey(ctx context.Context, key string) (*users.Token, error) {
	var model models.TokenModel
	if err := r.db.WithContext(ctx).Where("token_key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("token not found")
		}
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormTokenRepository) DeleteByKey(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("token_key = ?", key).Delete(&models.TokenModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (r *gormTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.TokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Deleted expired tokens: ", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
