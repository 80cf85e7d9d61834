package reproducibility

import "sort"

// Dependency sources
const (
	DependencySourceStatic = "static"
	DependencySourceTraced = "traced"
)

// Dependency is an R package a notebook needs.
type Dependency struct {
	Name string `json:"name" yaml:"name"`
	// Version is empty when only static analysis saw the package.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Source  string `json:"source" yaml:"source"`
}

// MergeDependencies combines statically detected packages with traced ones.
// Traced entries win and carry their versions; static-only names are kept
// without a version. The result is sorted by name.
func MergeDependencies(static, traced []Dependency) []Dependency {
	byName := make(map[string]Dependency, len(static)+len(traced))
	for _, d := range static {
		byName[d.Name] = d
	}
	for _, d := range traced {
		byName[d.Name] = d
	}

	merged := make([]Dependency, 0, len(byName))
	for _, d := range byName {
		merged = append(merged, d)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged
}
