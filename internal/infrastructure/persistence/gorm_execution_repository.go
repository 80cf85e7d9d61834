package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/persistence/models"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormExecutionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormExecutionRepository creates a new GORM-based ExecutionRepository implementation
func NewGormExecutionRepository(db *gorm.DB, logger logger.Logger) (executions.ExecutionRepository, error) {
	return &gormExecutionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormExecutionRepository) Create(ctx context.Context, execution *executions.Execution) error {
	if err := execution.Validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "validation error")
	}

	model := &models.ExecutionModel{}
	model.FromDomain(execution)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create execution: %w", err)
	}

	r.logger.Info("Created execution with id ", execution.ID)
	return nil
}

func (r *gormExecutionRepository) GetByID(ctx context.Context, executionID string) (*executions.Execution, error) {
	var model models.ExecutionModel
	if err := r.db.WithContext(ctx).Where("id = ?", executionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("execution with ID %s not found", executionID)
		}
		return nil, fmt.Errorf("failed to fetch execution: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormExecutionRepository) UpdateByID(ctx context.Context, execution *executions.Execution) error {
	if err := execution.Validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "validation error")
	}

	result := r.db.WithContext(ctx).Model(&models.ExecutionModel{}).Where("id = ?", execution.ID).Updates(map[string]interface{}{
		"status":             execution.Status,
		"output_key":         execution.OutputKey,
		"log":                execution.Log,
		"date_time_finished": execution.DateTimeFinished,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update execution: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("execution with ID %s not found", execution.ID)
	}

	r.logger.Info("Updated execution with id ", execution.ID, " to status ", execution.Status)
	return nil
}

func (r *gormExecutionRepository) ListByNotebookID(ctx context.Context, notebookID, status string, limit int) ([]*executions.Execution, error) {
	var modelList []*models.ExecutionModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ExecutionModel{}).Where("notebook_id = ?", notebookID)

	if status != "" {
		dbQuery = dbQuery.Where("status = ?", status)
	}
	dbQuery = dbQuery.Order("date_time_started desc").Order("id desc")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch executions: %w", err)
	}

	domainList := make([]*executions.Execution, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
