package rmd

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	chunkOpenPattern = regexp.MustCompile("^\\s*(`{3,})\\s*\\{\\s*([A-Za-z][A-Za-z0-9_]*)\\s*(.*?)\\}\\s*$")
	fenceOpenPattern = regexp.MustCompile("^\\s*(`{3,}|~{3,})")
)

// Chunk is a fenced code chunk such as ```{r label, eval=FALSE}.
type Chunk struct {
	Index   int
	Engine  string
	Label   string
	Options map[string]string
	// FenceLine is the 1-based line of the opening fence.
	FenceLine int
	Code      []string
	Closed    bool
}

// FirstCodeLine returns the 1-based document line of the chunk's first code line.
func (c *Chunk) FirstCodeLine() int {
	return c.FenceLine + 1
}

// Evaluated reports whether knitr runs the chunk.
func (c *Chunk) Evaluated() bool {
	switch strings.TrimSpace(c.Options["eval"]) {
	case "FALSE", "F", "0":
		return false
	}
	return true
}

// IsR reports whether the chunk uses the R engine.
func (c *Chunk) IsR() bool {
	return strings.EqualFold(c.Engine, "r")
}

// Document is a parsed R Markdown file.
type Document struct {
	FrontMatter string
	// FrontMatterEnd is the line of the closing --- or 0 when there is no front matter.
	FrontMatterEnd int
	Chunks         []Chunk
	LineCount      int
}

// IsRMarkdown reports whether content has R Markdown structure (front matter or chunks).
func IsRMarkdown(content string) bool {
	doc := Parse(content)
	return doc.FrontMatterEnd > 0 || len(doc.Chunks) > 0
}

// Parse splits content into front matter and chunks. It never fails: an
// unterminated chunk extends to the end of the document.
func Parse(content string) *Document {
	lines := splitLines(content)
	doc := &Document{LineCount: len(lines)}

	start := 0
	if len(lines) > 0 && strings.TrimRight(lines[0], " \t") == "---" {
		for i := 1; i < len(lines); i++ {
			trimmed := strings.TrimRight(lines[i], " \t")
			if trimmed == "---" || trimmed == "..." {
				doc.FrontMatter = strings.Join(lines[1:i], "\n")
				doc.FrontMatterEnd = i + 1
				start = i + 1
				break
			}
		}
	}

	var (
		current    *Chunk
		plainFence string
	)
	for i := start; i < len(lines); i++ {
		line := lines[i]

		if plainFence != "" {
			if isClosingFence(line, plainFence) {
				plainFence = ""
			}
			continue
		}

		if current != nil {
			if isClosingFence(line, "```") {
				current.Closed = true
				doc.Chunks = append(doc.Chunks, *current)
				current = nil
				continue
			}
			current.Code = append(current.Code, line)
			continue
		}

		if m := chunkOpenPattern.FindStringSubmatch(line); m != nil {
			label, options := parseChunkHeader(m[3])
			current = &Chunk{
				Index:     len(doc.Chunks),
				Engine:    m[2],
				Label:     label,
				Options:   options,
				FenceLine: i + 1,
			}
			continue
		}

		if m := fenceOpenPattern.FindStringSubmatch(line); m != nil {
			plainFence = m[1]
		}
	}

	if current != nil {
		doc.Chunks = append(doc.Chunks, *current)
	}

	return doc
}

// Title returns the title declared in the front matter, if any.
func (d *Document) Title() string {
	if d.FrontMatter == "" {
		return ""
	}
	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(d.FrontMatter), &meta); err != nil {
		return ""
	}
	title, _ := meta["title"].(string)
	return title
}

// ExtractR concatenates the code of every evaluated R chunk and returns it
// with the map back to document lines.
func (d *Document) ExtractR() (string, LineMap) {
	var (
		b     strings.Builder
		lines []int
	)
	for i := range d.Chunks {
		chunk := &d.Chunks[i]
		if !chunk.IsR() || !chunk.Evaluated() {
			continue
		}
		for j, code := range chunk.Code {
			b.WriteString(code)
			b.WriteByte('\n')
			lines = append(lines, chunk.FirstCodeLine()+j)
		}
	}
	return b.String(), LineMap{lines: lines}
}

// ExtractSource returns the R code evaluated for notebook content and its
// line map. Content without R Markdown structure is treated as a plain R script.
func ExtractSource(content string) (string, LineMap) {
	doc := Parse(content)
	if doc.FrontMatterEnd == 0 && len(doc.Chunks) == 0 {
		return content, IdentityMap(len(splitLines(content)))
	}
	return doc.ExtractR()
}

func isClosingFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}

// parseChunkHeader parses the text after the engine name, e.g.
// " setup, include=FALSE" or ", echo = FALSE, fig.cap='A, B'".
func parseChunkHeader(header string) (string, map[string]string) {
	options := make(map[string]string)
	label := ""

	for i, part := range splitTopLevel(header) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			if i == 0 {
				label = part
			}
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key == "label" {
			label = value
			continue
		}
		options[key] = value
	}

	return label, options
}

// splitTopLevel splits on commas outside quotes and parentheses.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
