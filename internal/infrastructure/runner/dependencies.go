package runner

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/validators"
)

// ParseDependencies reads a dependency trace with one name==version entry
// per line. Blank lines and lines starting with # are skipped.
func ParseDependencies(r io.Reader) ([]reproducibility.Dependency, error) {
	seen := make(map[string]bool)
	var deps []reproducibility.Dependency

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, version, ok := strings.Cut(line, "==")
		name, version = strings.TrimSpace(name), strings.TrimSpace(version)
		if !ok || version == "" || !validators.IsRPackageName(name) {
			return nil, fmt.Errorf("line %d: expected name==version, got %q", lineNo, line)
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		deps = append(deps, reproducibility.Dependency{
			Name:    name,
			Version: version,
			Source:  reproducibility.DependencySourceTraced,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dependency trace: %w", err)
	}

	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps, nil
}
