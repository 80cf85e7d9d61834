package packager

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/rmd"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Package file names in archive order
const (
	FileDockerfile   = "Dockerfile"
	FileMakefile     = "Makefile"
	FileReadme       = "README.md"
	FileDependencies = "dependencies.yaml"
	FileInstall      = "install.R"
	FileNotebook     = "notebook.Rmd"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9]+`)
	versionPattern = regexp.MustCompile(`^[0-9]+([.-][0-9]+)*$`)
)

// Manifest is the content of dependencies.yaml.
type Manifest struct {
	Notebook     string                       `yaml:"notebook"`
	ContentHash  string                       `yaml:"content_hash"`
	RVersion     string                       `yaml:"r_version"`
	Image        string                       `yaml:"image"`
	Dependencies []reproducibility.Dependency `yaml:"dependencies"`
}

type templateData struct {
	Title        string
	ImageRef     string
	ImageName    string
	ProjectDir   string
	ContentHash  string
	Dependencies []reproducibility.Dependency
}

// builder implements the packages.Builder interface
type builder struct {
	logger logger.Logger
}

// NewBuilder creates a new instance of Builder
func NewBuilder(logger logger.Logger) (packages.Builder, error) {
	return &builder{logger: logger}, nil
}

// Build renders every package file and zips them.
func (b *builder) Build(spec *packages.BuildSpec) ([]byte, error) {
	files, err := Files(spec)
	if err != nil {
		return nil, err
	}

	archive, err := zipFiles(files)
	if err != nil {
		return nil, err
	}

	b.logger.Info("Built package for ", spec.Title, " with ", len(spec.Dependencies), " dependencies (", len(archive), " bytes)")
	return archive, nil
}

// Files renders the package files of spec in archive order.
func Files(spec *packages.BuildSpec) ([]File, error) {
	if spec.Image == "" {
		return nil, fmt.Errorf("image is required")
	}
	if _, err := semver.StrictNewVersion(spec.RVersion); err != nil {
		return nil, fmt.Errorf("invalid R version %q: %w", spec.RVersion, err)
	}

	deps := pinnableDependencies(spec.Dependencies)
	data := templateData{
		Title:        singleLine(spec.Title),
		ImageRef:     spec.Image + ":" + spec.RVersion,
		ImageName:    imageName(spec.Title),
		ProjectDir:   projectDir,
		ContentHash:  spec.ContentHash,
		Dependencies: deps,
	}

	notebook, _, err := rmd.Renderable(spec.Title, spec.Content)
	if err != nil {
		return nil, err
	}

	manifest, err := yaml.Marshal(Manifest{
		Notebook:     spec.Title,
		ContentHash:  spec.ContentHash,
		RVersion:     spec.RVersion,
		Image:        data.ImageRef,
		Dependencies: deps,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	files := []File{{Name: FileDependencies, Data: manifest}, {Name: FileNotebook, Data: []byte(notebook)}}

	rendered := []struct {
		name string
		tmpl *template.Template
	}{
		{FileDockerfile, dockerfileTemplate},
		{FileMakefile, makefileTemplate},
		{FileInstall, installTemplate},
		{FileReadme, readmeTemplate},
	}
	for _, r := range rendered {
		var buf bytes.Buffer
		if err := r.tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", r.name, err)
		}
		files = append(files, File{Name: r.name, Data: buf.Bytes()})
	}

	sortFiles(files)
	return files, nil
}

// singleLine collapses whitespace, line breaks included, so that text can go
// into a one line comment or heading.
func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// imageName derives a docker image name from a notebook title.
func imageName(title string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "notebook"
	}
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}
	return "rnotebook-" + slug
}

// pinnableDependencies drops versions that are not plain R version numbers,
// so that they are never written into the install script.
func pinnableDependencies(deps []reproducibility.Dependency) []reproducibility.Dependency {
	out := make([]reproducibility.Dependency, len(deps))
	for i, d := range deps {
		if d.Version != "" && !versionPattern.MatchString(d.Version) {
			d.Version = ""
		}
		out[i] = d
	}
	return out
}
