package models

import (
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
)

// AnalysisModel is the GORM database model for reproducibility analyses.
// Findings and dependencies are stored as JSON documents.
type AnalysisModel struct {
	ID              string                       `gorm:"primaryKey;type:uuid"`
	NotebookID      string                       `gorm:"not null;index:idx_analyses_notebook_created,priority:1;type:uuid"`
	UserID          string                       `gorm:"not null;type:uuid"`
	ContentHash     string                       `gorm:"not null;type:varchar(64)"`
	Score           int                          `gorm:"not null"`
	Findings        []reproducibility.Finding    `gorm:"serializer:json;type:text"`
	Dependencies    []reproducibility.Dependency `gorm:"serializer:json;type:text"`
	TraceError      *string                      `gorm:"type:text"`
	DateTimeCreated time.Time                    `gorm:"not null;index:idx_analyses_notebook_created,priority:2"`
}

// TableName specifies the table name for GORM
func (AnalysisModel) TableName() string {
	return "analyses"
}

// ToDomain converts GORM model to domain entity
func (m *AnalysisModel) ToDomain() *reproducibility.Analysis {
	findings := m.Findings
	if findings == nil {
		findings = []reproducibility.Finding{}
	}
	dependencies := m.Dependencies
	if dependencies == nil {
		dependencies = []reproducibility.Dependency{}
	}

	return &reproducibility.Analysis{
		ID:              m.ID,
		NotebookID:      m.NotebookID,
		UserID:          m.UserID,
		ContentHash:     m.ContentHash,
		Score:           m.Score,
		Findings:        findings,
		Dependencies:    dependencies,
		TraceError:      m.TraceError,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AnalysisModel) FromDomain(a *reproducibility.Analysis) {
	m.ID = a.ID
	m.NotebookID = a.NotebookID
	m.UserID = a.UserID
	m.ContentHash = a.ContentHash
	m.Score = a.Score
	m.Findings = a.Findings
	m.Dependencies = a.Dependencies
	m.TraceError = a.TraceError
	m.DateTimeCreated = a.DateTimeCreated
}
