package reproducibility

import "sort"

// Severity ranks how much a finding threatens reproducibility.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rule identifiers
const (
	RuleHardcodedPath    = "hardcoded-path"
	RuleWorkingDirectory = "working-directory"
	RuleMissingSeed      = "missing-seed"
	RuleSecret           = "secret"
	RulePackageInstall   = "package-install"
	RuleSystemTime       = "system-time"
	RuleRemoteData       = "remote-data"
)

// Finding is a risky pattern detected in notebook code.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	// Line is the 1-based line in the editor buffer.
	Line int `json:"line"`
	// CodeLine is the 1-based line in the extracted R code.
	CodeLine   int    `json:"code_line"`
	Column     int    `json:"column"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Snippet    string `json:"snippet,omitempty"`
}

// Penalty is the number of score points a finding costs.
func (f Finding) Penalty() int {
	switch f.Severity {
	case SeverityError:
		return 25
	case SeverityWarning:
		return 10
	default:
		return 2
	}
}

// Score returns 100 minus the penalties of all findings, never below 0.
func Score(findings []Finding) int {
	score := 100
	for _, f := range findings {
		score -= f.Penalty()
	}
	if score < 0 {
		return 0
	}
	return score
}

// SortFindings orders findings by line, then rule, and drops duplicates of the same rule on one line.
func SortFindings(findings []Finding) []Finding {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Rule < findings[j].Rule
	})

	out := findings[:0]
	for i, f := range findings {
		if i > 0 && f.Line == findings[i-1].Line && f.Rule == findings[i-1].Rule {
			continue
		}
		out = append(out, f)
	}
	return out
}

// CountBySeverity tallies findings per severity.
func CountBySeverity(findings []Finding) map[Severity]int {
	counts := map[Severity]int{SeverityInfo: 0, SeverityWarning: 0, SeverityError: 0}
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}
