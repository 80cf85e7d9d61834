package reproducibility

// Diff line types
const (
	DiffContext = "context"
	DiffAdded   = "added"
	DiffRemoved = "removed"
)

// DiffLine is one text block of a diff hunk.
type DiffLine struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	// OldLine and NewLine are 1-based block numbers, 0 when absent on that side.
	OldLine int `json:"old_line,omitempty"`
	NewLine int `json:"new_line,omitempty"`
}

// DiffHunk is a run of changes with surrounding context.
type DiffHunk struct {
	OldStart int        `json:"old_start"`
	OldCount int        `json:"old_count"`
	NewStart int        `json:"new_start"`
	NewCount int        `json:"new_count"`
	Lines    []DiffLine `json:"lines"`
}

// OutputDiff compares the rendered outputs of two executions.
type OutputDiff struct {
	BaseExecutionID string     `json:"base_execution_id,omitempty"`
	HeadExecutionID string     `json:"head_execution_id,omitempty"`
	Identical       bool       `json:"identical"`
	Added           int        `json:"added"`
	Removed         int        `json:"removed"`
	Hunks           []DiffHunk `json:"hunks"`
}
