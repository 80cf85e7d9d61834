package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/analyzer"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// Output formats of the analyze command
const (
	FormatText = "text"
	FormatJSON = "json"
)

// AnalysisReport is the JSON output of the analyze command
type AnalysisReport struct {
	File         string                           `json:"file"`
	Title        string                           `json:"title"`
	Score        int                              `json:"score"`
	Counts       map[reproducibility.Severity]int `json:"counts"`
	Findings     []reproducibility.Finding        `json:"findings"`
	Dependencies []reproducibility.Dependency     `json:"dependencies"`
}

// AnalyzeCommandHandler encapsulates logic for the static reproducibility analysis via CLI.
type AnalyzeCommandHandler struct {
	analyzer reproducibility.StaticAnalyzer
	logger   logger.Logger
}

// NewAnalyzeCommandHandler initializes and returns an AnalyzeCommandHandler instance
func NewAnalyzeCommandHandler() (*AnalyzeCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	staticAnalyzer, err := analyzer.NewStaticAnalyzer(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create static analyzer: %w", err)
	}

	return &AnalyzeCommandHandler{
		analyzer: staticAnalyzer,
		logger:   loggerInstance,
	}, nil
}

// AnalyzeCmd prints the findings, score and dependencies of a notebook file
func (commandHandler *AnalyzeCommandHandler) AnalyzeCmd(cmd *cobra.Command, _ []string) error {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("invalid file flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("invalid format flag: %w", err)
	}
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("unsupported format %q", format)
	}

	content, title, err := readNotebook(filePath)
	if err != nil {
		return err
	}

	findings := commandHandler.analyzer.Analyze(content)
	if findings == nil {
		findings = []reproducibility.Finding{}
	}
	dependencies := commandHandler.analyzer.Dependencies(content)
	if dependencies == nil {
		dependencies = []reproducibility.Dependency{}
	}

	report := &AnalysisReport{
		File:         filePath,
		Title:        title,
		Score:        reproducibility.Score(findings),
		Counts:       reproducibility.CountBySeverity(findings),
		Findings:     findings,
		Dependencies: dependencies,
	}

	if format == FormatJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
	return writeTextReport(cmd.OutOrStdout(), report)
}

func writeTextReport(w io.Writer, report *AnalysisReport) error {
	var err error
	printf := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("%s: reproducibility score %d/100\n", report.Title, report.Score)
	printf("%d errors, %d warnings, %d info\n",
		report.Counts[reproducibility.SeverityError],
		report.Counts[reproducibility.SeverityWarning],
		report.Counts[reproducibility.SeverityInfo])

	for _, f := range report.Findings {
		printf("\n%s:%d:%d [%s] %s: %s\n", report.File, f.Line, f.Column, f.Severity, f.Rule, f.Message)
		if f.Snippet != "" {
			printf("    %s\n", f.Snippet)
		}
		if f.Suggestion != "" {
			printf("    suggestion: %s\n", f.Suggestion)
		}
	}

	if len(report.Dependencies) > 0 {
		printf("\nPackages:\n")
		for _, d := range report.Dependencies {
			printf("  %s\n", d.Name)
		}
	}
	return err
}

// InitAnalyzeCommands registers analyze-related commands
func InitAnalyzeCommands(rootCmd *cobra.Command) error {
	handler, err := NewAnalyzeCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create analyze command handler: %w", err)
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report reproducibility risks of an R Markdown notebook or R script",
		RunE:  handler.AnalyzeCmd,
	}
	analyzeCmd.Flags().StringP("file", "", "", "Path to the .Rmd or .R file")
	analyzeCmd.Flags().StringP("format", "", FormatText, "Output format (text or json)")
	rootCmd.AddCommand(analyzeCmd)

	return nil
}
