package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/persistence/models"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPackageRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPackageRepository creates a new GORM-based PackageRepository implementation
func NewGormPackageRepository(db *gorm.DB, logger logger.Logger) (packages.PackageRepository, error) {
	return &gormPackageRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPackageRepository) Upsert(ctx context.Context, meta *packages.PackageMeta) error {
	if err := meta.Validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "validation error")
	}

	model := &models.PackageModel{}
	model.FromDomain(meta)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notebook_id = ?", meta.NotebookID).Delete(&models.PackageModel{}).Error; err != nil {
			return err
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store package: %w", err)
	}

	r.logger.Info("Stored package ", meta.ArtifactKey, " for notebook with id ", meta.NotebookID)
	return nil
}

func (r *gormPackageRepository) GetByNotebookID(ctx context.Context, notebookID string) (*packages.PackageMeta, error) {
	var model models.PackageModel
	if err := r.db.WithContext(ctx).Where("notebook_id = ?", notebookID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no package for notebook %s", notebookID)
		}
		return nil, fmt.Errorf("failed to fetch package: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPackageRepository) DeleteByNotebookID(ctx context.Context, notebookID string) error {
	if err := r.db.WithContext(ctx).Where("notebook_id = ?", notebookID).Delete(&models.PackageModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return nil
}
