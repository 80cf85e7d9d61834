package models

import (
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
)

// PackageModel is the GORM database model for reproducibility packages.
// A notebook has at most one package.
type PackageModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	NotebookID      string    `gorm:"not null;uniqueIndex;type:uuid"`
	UserID          string    `gorm:"not null;type:uuid"`
	ContentHash     string    `gorm:"not null;type:varchar(64)"`
	ArtifactKey     string    `gorm:"not null;type:varchar(512)"`
	Size            int64     `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PackageModel) TableName() string {
	return "packages"
}

// ToDomain converts GORM model to domain entity
func (m *PackageModel) ToDomain() *packages.PackageMeta {
	return &packages.PackageMeta{
		ID:              m.ID,
		NotebookID:      m.NotebookID,
		UserID:          m.UserID,
		ContentHash:     m.ContentHash,
		ArtifactKey:     m.ArtifactKey,
		Size:            m.Size,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PackageModel) FromDomain(p *packages.PackageMeta) {
	m.ID = p.ID
	m.NotebookID = p.NotebookID
	m.UserID = p.UserID
	m.ContentHash = p.ContentHash
	m.ArtifactKey = p.ArtifactKey
	m.Size = p.Size
	m.DateTimeCreated = p.DateTimeCreated
}
