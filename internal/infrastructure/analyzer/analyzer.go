package analyzer

import (
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/rmd"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"
)

// staticAnalyzer implements the reproducibility.StaticAnalyzer interface
type staticAnalyzer struct {
	logger logger.Logger
}

// NewStaticAnalyzer creates a new instance of StaticAnalyzer
func NewStaticAnalyzer(logger logger.Logger) (reproducibility.StaticAnalyzer, error) {
	return &staticAnalyzer{
		logger: logger,
	}, nil
}

// Analyze returns the findings for notebook content with editor line numbers.
func (a *staticAnalyzer) Analyze(content string) []reproducibility.Finding {
	findings := Analyze(content)
	a.logger.Debug("Static analysis produced ", len(findings), " findings")
	return findings
}

// Dependencies returns the packages the notebook content loads.
func (a *staticAnalyzer) Dependencies(content string) []reproducibility.Dependency {
	return Dependencies(content)
}

// Analyze scans the evaluated R code of content. Findings are sorted by
// editor line and rule, with one finding per rule and line.
func Analyze(content string) []reproducibility.Finding {
	code, lineMap := rmd.ExtractSource(content)
	lines := scan(code)

	var findings []reproducibility.Finding
	for i := range lines {
		findings = append(findings, checkCalls(&lines[i])...)
		findings = append(findings, checkLiterals(&lines[i])...)
	}
	findings = append(findings, checkSeed(lines)...)

	for i := range findings {
		findings[i].Line = lineMap.ToEditor(findings[i].CodeLine)
	}

	return reproducibility.SortFindings(findings)
}
