package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/persistence/models"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAnalysisRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAnalysisRepository creates a new GORM-based AnalysisRepository implementation
func NewGormAnalysisRepository(db *gorm.DB, logger logger.Logger) (reproducibility.AnalysisRepository, error) {
	return &gormAnalysisRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAnalysisRepository) Create(ctx context.Context, analysis *reproducibility.Analysis) error {
	if err := analysis.Validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "validation error")
	}

	model := &models.AnalysisModel{}
	model.FromDomain(analysis)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	r.logger.Info("Created analysis with id ", analysis.ID, " and score ", analysis.Score)
	return nil
}

func (r *gormAnalysisRepository) GetLatestByNotebookID(ctx context.Context, notebookID string) (*reproducibility.Analysis, error) {
	var model models.AnalysisModel
	err := r.db.WithContext(ctx).
		Where("notebook_id = ?", notebookID).
		Order("date_time_created desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no analysis for notebook %s", notebookID)
		}
		return nil, fmt.Errorf("failed to fetch analysis: %w", err)
	}
	return model.ToDomain(), nil
}
