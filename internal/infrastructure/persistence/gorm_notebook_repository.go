package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/persistence/models"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormNotebookRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormNotebookRepository creates a new GORM-based NotebookRepository implementation
func NewGormNotebookRepository(db *gorm.DB, logger logger.Logger) (notebooks.NotebookRepository, error) {
	return &gormNotebookRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormNotebookRepository) Create(ctx context.Context, notebook *notebooks.Notebook) error {
	if err := notebook.Validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "validation error")
	}

	model := &models.NotebookModel{}
	model.FromDomain(notebook)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notebook: %w", err)
	}

	r.logger.Info("Created notebook with id ", notebook.ID)
	return nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *gormNotebookRepository) List(ctx context.Context, userID string, query *notebooks.NotebookQuery) ([]*notebooks.Notebook, error) {
	if err := query.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "invalid query parameters")
	}

	var modelList []*models.NotebookModel
	dbQuery := r.db.WithContext(ctx).Model(&models.NotebookModel{}).Where("user_id = ?", userID)

	if query.Title != "" {
		dbQuery = dbQuery.Where(`title LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(query.Title)+"%")
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "date_time_updated"
	}
	order := query.SortOrder
	if order == "" {
		order = "desc"
	}
	// Both values are restricted to fixed sets by query.Validate.
	dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", sortBy, order)).Order("id")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notebooks: %w", err)
	}

	domainList := make([]*notebooks.Notebook, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormNotebookRepository) GetByID(ctx context.Context, notebookID string) (*notebooks.Notebook, error) {
	var model models.NotebookModel
	if err := r.db.WithContext(ctx).Where("id = ?", notebookID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("notebook with ID %s not found", notebookID)
		}
		return nil, fmt.Errorf("failed to fetch notebook: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormNotebookRepository) UpdateByID(ctx context.Context, notebook *notebooks.Notebook) error {
	if err := notebook.Validate(); err != nil {
		return apperr.Wrap(apperr.CodeInvalidInput, err, "validation error")
	}

	result := r.db.WithContext(ctx).Model(&models.NotebookModel{}).Where("id = ?", notebook.ID).Updates(map[string]interface{}{
		"title":             notebook.Title,
		"content":           notebook.Content,
		"date_time_updated": notebook.DateTimeUpdated,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update notebook: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("notebook with ID %s not found", notebook.ID)
	}

	r.logger.Info("Updated notebook with id ", notebook.ID)
	return nil
}

func (r *gormNotebookRepository) DeleteByID(ctx context.Context, notebookID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&models.ExecutionModel{},
			&models.AnalysisModel{},
			&models.PackageModel{},
		}
		for _, model := range dependents {
			if err := tx.Where("notebook_id = ?", notebookID).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", notebookID).Delete(&models.NotebookModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("notebook with ID %s not found", notebookID)
		}
		return nil
	})
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return err
		}
		return fmt.Errorf("failed to delete notebook: %w", err)
	}

	r.logger.Info("Deleted notebook with id ", notebookID)
	return nil
}
