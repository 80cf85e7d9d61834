package rmd

// LineMap maps 1-based line numbers of extracted R code to 1-based line
// numbers of the document shown in the editor.
type LineMap struct {
	lines []int
}

// NewLineMap creates a map from an explicit list: editorLines[i] is the editor line of code line i+1.
func NewLineMap(editorLines []int) LineMap {
	return LineMap{lines: append([]int(nil), editorLines...)}
}

// IdentityMap maps each of n lines to itself.
func IdentityMap(n int) LineMap {
	return OffsetMap(n, 0)
}

// OffsetMap maps each of n lines to line+offset.
func OffsetMap(n, offset int) LineMap {
	lines := make([]int, n)
	for i := range lines {
		lines[i] = i + 1 + offset
	}
	return LineMap{lines: lines}
}

// Len returns the number of mapped code lines.
func (m LineMap) Len() int {
	return len(m.lines)
}

// ToEditor returns the editor line of a code line, or 0 when the line is outside the map.
func (m LineMap) ToEditor(line int) int {
	if line < 1 || line > len(m.lines) {
		return 0
	}
	return m.lines[line-1]
}

// ToSource returns the code line shown at an editor line, or 0 when the
// editor line holds no extracted code.
func (m LineMap) ToSource(editorLine int) int {
	for i, l := range m.lines {
		if l == editorLine {
			return i + 1
		}
	}
	return 0
}
