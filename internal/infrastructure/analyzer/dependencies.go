package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/rmd"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/validators"
)

// BasePackages ship with every R installation and are never installed separately.
var BasePackages = map[string]bool{
	"base":      true,
	"compiler":  true,
	"datasets":  true,
	"graphics":  true,
	"grDevices": true,
	"grid":      true,
	"methods":   true,
	"parallel":  true,
	"splines":   true,
	"stats":     true,
	"stats4":    true,
	"tcltk":     true,
	"tools":     true,
	"utils":     true,
}

var (
	loadCallPattern      = regexp.MustCompile(callPrefix + `(library|require|requireNamespace|loadNamespace)\s*\(\s*`)
	namespacePattern     = regexp.MustCompile(callPrefix + `([A-Za-z][A-Za-z0-9.]*[A-Za-z0-9]):::?[A-Za-z._` + "`" + `]`)
	pLoadPattern         = regexp.MustCompile(callPrefix + `(p_load)\s*\(`)
	bareNamePattern      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.]*`)
	characterOnlyPattern = regexp.MustCompile(`character\.only\s*=\s*(TRUE|T)\b`)
)

// Dependencies returns the non-base packages loaded by the evaluated R code
// of content, sorted and unique. Versions are unknown to static analysis.
func Dependencies(content string) []reproducibility.Dependency {
	code, _ := rmd.ExtractSource(content)

	names := make(map[string]bool)
	for _, line := range scan(code) {
		for _, name := range packageNames(&line) {
			if BasePackages[name] || !validators.IsRPackageName(name) {
				continue
			}
			names[name] = true
		}
	}

	deps := make([]reproducibility.Dependency, 0, len(names))
	for name := range names {
		deps = append(deps, reproducibility.Dependency{Name: name, Source: reproducibility.DependencySourceStatic})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps
}

func packageNames(line *sourceLine) []string {
	var names []string

	for _, m := range loadCallPattern.FindAllStringIndex(line.Code, -1) {
		args := callArguments(line.Code, m[1])
		if len(args) == 0 {
			continue
		}
		bare := !characterOnlyPattern.MatchString(strings.Join(args, ","))
		if name, ok := argumentName(line, line.Code[m[1]:], m[1], bare); ok {
			names = append(names, name)
		}
	}

	for _, m := range namespacePattern.FindAllStringSubmatch(line.Code, -1) {
		names = append(names, m[1])
	}

	for _, m := range pLoadPattern.FindAllStringIndex(line.Code, -1) {
		offset := m[1]
		for _, arg := range callArguments(line.Code, offset) {
			trimmed := strings.TrimLeft(arg, " \t")
			start := offset + len(arg) - len(trimmed)
			offset += len(arg) + 1
			if strings.Contains(trimmed, "=") {
				continue
			}
			if name, ok := argumentName(line, trimmed, start, true); ok {
				names = append(names, name)
			}
		}
	}

	return names
}

// argumentName reads a package name from an argument beginning at column
// offset+1: a string literal or, when bare is true, a symbol.
func argumentName(line *sourceLine, arg string, offset int, bare bool) (string, bool) {
	if arg == "" {
		return "", false
	}
	switch arg[0] {
	case '"', '\'':
		lit, ok := line.literalAt(offset + 1)
		return lit.Value, ok
	}
	if !bare {
		return "", false
	}
	name := bareNamePattern.FindString(arg)
	return name, name != ""
}

// callArguments splits the top level arguments of the call whose argument
// list starts at index start of code. Unbalanced calls yield the rest of the line.
func callArguments(code string, start int) []string {
	var (
		args  []string
		depth int
		from  = start
	)
	for i := start; i < len(code); i++ {
		switch code[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				if i > from || len(args) > 0 {
					args = append(args, code[from:i])
				}
				return args
			}
			depth--
		case ',':
			if depth == 0 {
				args = append(args, code[from:i])
				from = i + 1
			}
		}
	}
	if from < len(code) {
		args = append(args, code[from:])
	}
	return args
}
