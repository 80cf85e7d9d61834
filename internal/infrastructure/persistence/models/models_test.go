//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"

	"github.com/stretchr/testify/assert"
)

func TestExecutionModel_RoundTrip(t *testing.T) {
	key := "executions/nb/ex.html"
	finished := time.Now()
	execution := &executions.Execution{
		ID:               "ex",
		NotebookID:       "nb",
		UserID:           "user",
		Status:           executions.StatusSucceeded,
		ContentHash:      "abc",
		OutputKey:        &key,
		Log:              "processing file",
		DateTimeStarted:  finished.Add(-time.Second),
		DateTimeFinished: &finished,
	}

	model := &ExecutionModel{}
	model.FromDomain(execution)

	assert.Equal(t, execution, model.ToDomain())
}

func TestAnalysisModel_ToDomainNormalizesNilSlices(t *testing.T) {
	model := &AnalysisModel{ID: "a", Score: 100}

	analysis := model.ToDomain()

	assert.NotNil(t, analysis.Findings)
	assert.Empty(t, analysis.Findings)
	assert.NotNil(t, analysis.Dependencies)
	assert.Empty(t, analysis.Dependencies)
}

func TestAnalysisModel_FromDomain(t *testing.T) {
	analysis := &reproducibility.Analysis{
		ID:    "a",
		Score: 90,
		Findings: []reproducibility.Finding{
			{Rule: reproducibility.RuleMissingSeed, Severity: reproducibility.SeverityWarning, Line: 3},
		},
		Dependencies: []reproducibility.Dependency{
			{Name: "ggplot2", Version: "3.4.4", Source: reproducibility.DependencySourceTraced},
		},
	}

	model := &AnalysisModel{}
	model.FromDomain(analysis)

	assert.Equal(t, analysis.Findings, model.Findings)
	assert.Equal(t, analysis.Dependencies, model.Dependencies)
	assert.Equal(t, 90, model.Score)
}

func TestAll(t *testing.T) {
	assert.Len(t, All(), 6)
}
