package reproducibility

import "context"

// StaticAnalyzer inspects notebook content without running it.
type StaticAnalyzer interface {
	// Analyze returns the findings of content with editor line numbers.
	Analyze(content string) []Finding

	// Dependencies returns the packages content loads, without versions.
	Dependencies(content string) []Dependency
}

// DependencyTracer records the packages a notebook loads when it runs.
type DependencyTracer interface {
	Trace(ctx context.Context, title, content string) ([]Dependency, error)
}

// OutputDiffer compares rendered HTML outputs.
type OutputDiffer interface {
	Diff(base, head []byte) (*OutputDiff, error)
	RenderHTML(diff *OutputDiff, title string) ([]byte, error)
}

// Report is an analysis together with its freshness.
type Report struct {
	Analysis *Analysis
	// UpToDate is true when the analysis was computed for the current content.
	UpToDate bool
}

// AnalysisService defines methods for computing and retrieving reproducibility analyses.
type AnalysisService interface {
	// Analyze runs static analysis and dependency tracing on the current
	// content of a notebook of userID and stores the result.
	Analyze(ctx context.Context, userID, notebookID string) (*Report, error)

	// GetLatest retrieves the most recent analysis of a notebook.
	GetLatest(ctx context.Context, userID, notebookID string) (*Report, error)
}

// DiffService defines methods for comparing execution outputs of a notebook.
type DiffService interface {
	// GenerateDiff compares two executions of a notebook of userID. Without
	// explicit IDs the two most recent succeeded executions are compared.
	GenerateDiff(ctx context.Context, userID, notebookID string, baseExecutionID, headExecutionID *string) (*OutputDiff, error)

	// RenderHTML renders a diff as a standalone HTML page.
	RenderHTML(diff *OutputDiff, title string) ([]byte, error)
}

// AnalysisRepository defines the interface for Analysis-related operations
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *Analysis) error
	GetLatestByNotebookID(ctx context.Context, notebookID string) (*Analysis, error)
}
