package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
)

// callPrefix anchors a call name so that it is not the tail of a longer
// identifier or a member access such as df$rt().
const callPrefix = `(?:^|[^A-Za-z0-9._$@])`

// callRule flags calls to functions matched by pattern. The first submatch is the function name.
type callRule struct {
	id         string
	severity   reproducibility.Severity
	pattern    *regexp.Regexp
	message    string
	suggestion string
}

var callRules = []callRule{
	{
		id:         reproducibility.RuleWorkingDirectory,
		severity:   reproducibility.SeverityWarning,
		pattern:    regexp.MustCompile(callPrefix + `(setwd)\s*\(`),
		message:    "%s() ties the notebook to a directory that only exists on this machine",
		suggestion: "Remove setwd() and use paths relative to the notebook, e.g. with file.path() or here::here()",
	},
	{
		id:       reproducibility.RulePackageInstall,
		severity: reproducibility.SeverityInfo,
		pattern: regexp.MustCompile(callPrefix +
			`(install\.packages|(?:remotes|devtools)::install_[A-Za-z_]+|BiocManager::install)\s*\(`),
		message:    "%s() installs packages while the notebook runs",
		suggestion: "Install dependencies in the environment instead; the generated package pins them in its Dockerfile",
	},
	{
		id:         reproducibility.RuleSystemTime,
		severity:   reproducibility.SeverityInfo,
		pattern:    regexp.MustCompile(callPrefix + `(Sys\.time|Sys\.Date|date)\s*\(\s*\)`),
		message:    "%s() makes the output depend on when the notebook runs",
		suggestion: "Use a fixed reference date or keep the value out of the rendered output",
	},
}

var (
	randomCallPattern = regexp.MustCompile(callPrefix + `(sample|rnorm|runif|rbinom|rpois|rexp|rgamma|rbeta|rt|rchisq|rlnorm|rweibull|rmultinom|sample_n|sample_frac|slice_sample|createDataPartition|kmeans)\s*\(`)
	setSeedPattern    = regexp.MustCompile(callPrefix + `(set\.seed)\s*\(`)

	readCallPattern = regexp.MustCompile(callPrefix + `(read\.csv2?|read\.table|read\.delim|read_csv2?|read_tsv|read_delim|read_excel|read_rds|readRDS|readLines|read_json|fromJSON|read_html|fread|download\.file|url|load|source|GET)\s*\(`)

	urlPattern    = regexp.MustCompile(`(?i)^(https?|ftp)://\S+$`)
	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

	absolutePathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^/[A-Za-z0-9._~-]`),
		regexp.MustCompile(`^~[/\\]`),
		regexp.MustCompile(`^[A-Za-z]:[\\/]`),
		regexp.MustCompile(`^\\\\[A-Za-z0-9._$-]+\\`),
	}

	secretNamePattern = regexp.MustCompile(`(?i)([A-Za-z0-9._]*(?:password|passwd|pwd|secret|token|api_?key|access_?key|private_?key)[A-Za-z0-9._]*)\s*(?:<<-|<-|=)\s*$`)

	credentialShapes = []struct {
		kind    string
		pattern *regexp.Regexp
	}{
		{"AWS access key id", regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`)},
		{"GitHub token", regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{20,}\b`)},
		{"Slack token", regexp.MustCompile(`\bxox[abprs]-[A-Za-z0-9-]{10,}`)},
		{"bearer token", regexp.MustCompile(`\bBearer\s+[A-Za-z0-9._~+/-]{16,}=*`)},
		{"private key", regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`)},
	}
)

// checkCalls applies the call rules to one line.
func checkCalls(line *sourceLine) []reproducibility.Finding {
	var findings []reproducibility.Finding
	for _, rule := range callRules {
		for _, m := range rule.pattern.FindAllStringSubmatchIndex(line.Code, -1) {
			name := line.Code[m[2]:m[3]]
			findings = append(findings, newFinding(line, rule.id, rule.severity, m[2]+1,
				fmt.Sprintf(rule.message, name), rule.suggestion, snippet(line.Text)))
		}
	}
	return findings
}

// checkSeed flags random draws that happen before the first set.seed call.
func checkSeed(lines []sourceLine) []reproducibility.Finding {
	seedLine, seedColumn := len(lines)+1, 0
	for i := range lines {
		if m := setSeedPattern.FindStringSubmatchIndex(lines[i].Code); m != nil {
			seedLine, seedColumn = lines[i].Number, m[2]+1
			break
		}
	}

	var findings []reproducibility.Finding
	for i := range lines {
		line := &lines[i]
		if line.Number > seedLine {
			break
		}
		for _, m := range randomCallPattern.FindAllStringSubmatchIndex(line.Code, -1) {
			column := m[2] + 1
			if line.Number == seedLine && column > seedColumn {
				continue
			}
			name := line.Code[m[2]:m[3]]
			findings = append(findings, newFinding(line, reproducibility.RuleMissingSeed, reproducibility.SeverityWarning, column,
				fmt.Sprintf("%s() draws random numbers before set.seed() is called", name),
				"Call set.seed() with a fixed value before the first random draw",
				snippet(line.Text)))
		}
	}
	return findings
}

// checkLiterals applies the path, URL and secret rules to the string literals of one line.
func checkLiterals(line *sourceLine) []reproducibility.Finding {
	var findings []reproducibility.Finding
	for _, lit := range line.Literals {
		if f, ok := checkSecret(line, lit); ok {
			findings = append(findings, f)
			continue
		}

		switch {
		case isAbsolutePath(lit.Value):
			findings = append(findings, newFinding(line, reproducibility.RuleHardcodedPath, reproducibility.SeverityWarning, lit.Column,
				fmt.Sprintf("Absolute path %q will not exist on other machines", lit.Value),
				"Use a path relative to the notebook or make the location configurable",
				snippet(line.Text)))
		case urlPattern.MatchString(lit.Value) && readsRemote(line, lit):
			findings = append(findings, newFinding(line, reproducibility.RuleRemoteData, reproducibility.SeverityInfo, lit.Column,
				fmt.Sprintf("Data is read from %s, which may change or disappear", lit.Value),
				"Store a versioned copy of the data next to the notebook",
				snippet(line.Text)))
		}
	}
	return findings
}

func checkSecret(line *sourceLine, lit literal) (reproducibility.Finding, bool) {
	if strings.TrimSpace(lit.Value) == "" {
		return reproducibility.Finding{}, false
	}

	redacted := snippet(redact(line.Text, lit))
	suggestion := "Read credentials from the environment with Sys.getenv() instead of storing them in the notebook"

	if m := secretNamePattern.FindStringSubmatch(line.Code[:lit.Start-1]); m != nil {
		return newFinding(line, reproducibility.RuleSecret, reproducibility.SeverityError, lit.Column,
			fmt.Sprintf("Possible credential assigned to %s", m[1]), suggestion, redacted), true
	}

	for _, shape := range credentialShapes {
		if shape.pattern.MatchString(lit.Value) {
			return newFinding(line, reproducibility.RuleSecret, reproducibility.SeverityError, lit.Column,
				fmt.Sprintf("String literal looks like a %s", shape.kind), suggestion, redacted), true
		}
	}

	return reproducibility.Finding{}, false
}

func isAbsolutePath(value string) bool {
	if strings.ContainsAny(value, "\n") || schemePattern.MatchString(value) {
		return false
	}
	for _, p := range absolutePathPatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

// readsRemote reports whether lit is an argument of a reading call on the same line.
func readsRemote(line *sourceLine, lit literal) bool {
	for _, m := range readCallPattern.FindAllStringSubmatchIndex(line.Code, -1) {
		if m[1] <= lit.Column {
			return true
		}
	}
	return false
}

// redact replaces the contents of lit within text by asterisks. A literal
// that continues on the next line is redacted up to the end of text.
func redact(text string, lit literal) string {
	start := lit.Column
	if start > len(text) {
		return text
	}
	if lit.End <= start || lit.End > len(text) {
		return text[:start] + "***"
	}
	return text[:start] + "***" + text[lit.End-1:]
}

func snippet(text string) string {
	const max = 120
	text = strings.TrimSpace(text)
	if len(text) > max {
		return text[:max] + "..."
	}
	return text
}

func newFinding(line *sourceLine, rule string, severity reproducibility.Severity, column int, message, suggestion, text string) reproducibility.Finding {
	return reproducibility.Finding{
		Rule:       rule,
		Severity:   severity,
		CodeLine:   line.Number,
		Column:     column,
		Message:    message,
		Suggestion: suggestion,
		Snippet:    text,
	}
}
