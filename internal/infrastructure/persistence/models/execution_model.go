package models

import (
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
)

// ExecutionModel is the GORM database model for notebook executions
type ExecutionModel struct {
	ID               string     `gorm:"primaryKey;type:uuid"`
	NotebookID       string     `gorm:"not null;index:idx_executions_notebook_started,priority:1;type:uuid"`
	UserID           string     `gorm:"not null;type:uuid"`
	Status           string     `gorm:"not null;type:varchar(20)"`
	ContentHash      string     `gorm:"not null;type:varchar(64)"`
	OutputKey        *string    `gorm:"type:varchar(512)"`
	Log              string     `gorm:"type:text"`
	DateTimeStarted  time.Time  `gorm:"not null;index:idx_executions_notebook_started,priority:2"`
	DateTimeFinished *time.Time
}

// TableName specifies the table name for GORM
func (ExecutionModel) TableName() string {
	return "executions"
}

// ToDomain converts GORM model to domain entity
func (m *ExecutionModel) ToDomain() *executions.Execution {
	return &executions.Execution{
		ID:               m.ID,
		NotebookID:       m.NotebookID,
		UserID:           m.UserID,
		Status:           m.Status,
		ContentHash:      m.ContentHash,
		OutputKey:        m.OutputKey,
		Log:              m.Log,
		DateTimeStarted:  m.DateTimeStarted,
		DateTimeFinished: m.DateTimeFinished,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ExecutionModel) FromDomain(e *executions.Execution) {
	m.ID = e.ID
	m.NotebookID = e.NotebookID
	m.UserID = e.UserID
	m.Status = e.Status
	m.ContentHash = e.ContentHash
	m.OutputKey = e.OutputKey
	m.Log = e.Log
	m.DateTimeStarted = e.DateTimeStarted
	m.DateTimeFinished = e.DateTimeFinished
}
