package rmd

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeneratedChunkLabel is the label of the single chunk wrapping plain R code.
const GeneratedChunkLabel = "notebook"

type frontMatter struct {
	Title  string `yaml:"title"`
	Output string `yaml:"output"`
}

// Generate wraps plain R code into a renderable R Markdown document and
// returns the map from code lines to lines of the generated document.
func Generate(title, code string) (string, LineMap, error) {
	header, err := yaml.Marshal(frontMatter{Title: title, Output: "html_document"})
	if err != nil {
		return "", LineMap{}, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "```{r %s}\n", GeneratedChunkLabel)
	offset := strings.Count(b.String(), "\n")

	codeLines := splitLines(code)
	for _, line := range codeLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("```\n")

	return b.String(), OffsetMap(len(codeLines), offset), nil
}

// Renderable returns content as a document knitr can render, wrapping plain R
// code with Generate. The returned map goes from editor lines of content to
// lines of the rendered document.
func Renderable(title, content string) (string, LineMap, error) {
	if IsRMarkdown(content) {
		return content, IdentityMap(len(splitLines(content))), nil
	}
	return Generate(title, content)
}
