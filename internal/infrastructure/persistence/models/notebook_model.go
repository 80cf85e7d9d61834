package models

import (
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
)

// NotebookModel is the GORM database model for notebooks
type NotebookModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	UserID          string    `gorm:"not null;index;type:uuid"`
	Title           string    `gorm:"not null;type:varchar(255)"`
	Content         string    `gorm:"not null;type:text"`
	DateTimeCreated time.Time `gorm:"not null"`
	DateTimeUpdated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (NotebookModel) TableName() string {
	return "notebooks"
}

// ToDomain converts GORM model to domain entity
func (m *NotebookModel) ToDomain() *notebooks.Notebook {
	return &notebooks.Notebook{
		ID:              m.ID,
		UserID:          m.UserID,
		Title:           m.Title,
		Content:         m.Content,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *NotebookModel) FromDomain(n *notebooks.Notebook) {
	m.ID = n.ID
	m.UserID = n.UserID
	m.Title = n.Title
	m.Content = n.Content
	m.DateTimeCreated = n.DateTimeCreated
	m.DateTimeUpdated = n.DateTimeUpdated
}
