//go:build unit
// +build unit

package rmd

import (
	"strings"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_WrapsCodeAndOffsetsLines(t *testing.T) {
	rmdText, lines, err := Generate("Uniform draws", testutil.SampleRScript)
	require.NoError(t, err)

	doc := Parse(rmdText)
	assert.Equal(t, "Uniform draws", doc.Title())
	require.Len(t, doc.Chunks, 1)
	assert.Equal(t, GeneratedChunkLabel, doc.Chunks[0].Label)

	generated := strings.Split(rmdText, "\n")
	source := strings.Split(strings.TrimSuffix(testutil.SampleRScript, "\n"), "\n")
	require.Equal(t, len(source), lines.Len())
	for i, line := range source {
		editorLine := lines.ToEditor(i + 1)
		assert.Equal(t, line, generated[editorLine-1])
	}
}

func TestGenerate_RoundTripsThroughExtract(t *testing.T) {
	rmdText, _, err := Generate("t", testutil.SampleRScript)
	require.NoError(t, err)

	code, _ := ExtractSource(rmdText)
	assert.Equal(t, testutil.SampleRScript, code)
}

func TestGenerate_EscapesTitle(t *testing.T) {
	rmdText, lines, err := Generate("a: \"quoted\" title", "x <- 1")
	require.NoError(t, err)

	assert.Equal(t, "a: \"quoted\" title", Parse(rmdText).Title())
	assert.Equal(t, "x <- 1", strings.Split(rmdText, "\n")[lines.ToEditor(1)-1])
}

func TestRenderable(t *testing.T) {
	content, lines, err := Renderable("ignored", testutil.SampleRMarkdown)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleRMarkdown, content)
	assert.Equal(t, 10, lines.ToEditor(10))

	content, _, err = Renderable("Script", testutil.SampleRScript)
	require.NoError(t, err)
	assert.True(t, IsRMarkdown(content))
}
