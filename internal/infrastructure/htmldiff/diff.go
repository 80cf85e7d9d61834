package htmldiff

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContextLines is the number of unchanged blocks shown around each change.
const DefaultContextLines = 3

// engine implements the reproducibility.OutputDiffer interface
type engine struct {
	dmp          *diffmatchpatch.DiffMatchPatch
	contextLines int
	logger       logger.Logger
}

// NewOutputDiffer creates a new instance of OutputDiffer
func NewOutputDiffer(logger logger.Logger) (reproducibility.OutputDiffer, error) {
	return newEngine(logger), nil
}

func newEngine(logger logger.Logger) *engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &engine{
		dmp:          dmp,
		contextLines: DefaultContextLines,
		logger:       logger,
	}
}

// Diff compares the text blocks of two HTML documents.
func (e *engine) Diff(base, head []byte) (*reproducibility.OutputDiff, error) {
	oldBlocks, err := ExtractBlocks(bytes.NewReader(base))
	if err != nil {
		return nil, err
	}
	newBlocks, err := ExtractBlocks(bytes.NewReader(head))
	if err != nil {
		return nil, err
	}

	if distinct := countDistinct(oldBlocks, newBlocks); distinct > maxDistinctBlocks {
		return nil, fmt.Errorf("outputs have %d distinct blocks, at most %d can be compared", distinct, maxDistinctBlocks)
	}

	diff := e.diffBlocks(oldBlocks, newBlocks)
	e.logger.Debug("Compared ", len(oldBlocks), " with ", len(newBlocks), " blocks: +", diff.Added, " -", diff.Removed)
	return diff, nil
}

// diffBlocks diffs two block lists with every distinct block encoded as one rune.
func (e *engine) diffBlocks(oldBlocks, newBlocks []string) *reproducibility.OutputDiff {
	a, b, blocks := blocksToRunes(oldBlocks, newBlocks)
	diffs := e.dmp.DiffMainRunes(a, b, false)

	ops := toOperations(diffs, blocks)

	result := &reproducibility.OutputDiff{Hunks: []reproducibility.DiffHunk{}}
	for _, op := range ops {
		switch op.Type {
		case reproducibility.DiffAdded:
			result.Added++
		case reproducibility.DiffRemoved:
			result.Removed++
		}
	}
	result.Identical = result.Added == 0 && result.Removed == 0
	result.Hunks = groupIntoHunks(ops, e.contextLines)
	return result
}

// firstBlockRune starts the block encoding above the surrogate range, so every
// code point up to unicode.MaxRune survives a round trip through a string.
const firstBlockRune = 0xE000

const maxDistinctBlocks = unicode.MaxRune - firstBlockRune + 1

func countDistinct(oldBlocks, newBlocks []string) int {
	seen := make(map[string]struct{}, len(oldBlocks))
	for _, list := range [][]string{oldBlocks, newBlocks} {
		for _, block := range list {
			seen[block] = struct{}{}
		}
	}
	return len(seen)
}

// blocksToRunes encodes both block lists with one rune per distinct block and
// returns the blocks indexed by rune - firstBlockRune.
func blocksToRunes(oldBlocks, newBlocks []string) ([]rune, []rune, []string) {
	var blocks []string
	index := make(map[string]rune)

	encode := func(list []string) []rune {
		runes := make([]rune, len(list))
		for i, block := range list {
			r, ok := index[block]
			if !ok {
				r = rune(firstBlockRune + len(blocks))
				index[block] = r
				blocks = append(blocks, block)
			}
			runes[i] = r
		}
		return runes
	}

	a := encode(oldBlocks)
	b := encode(newBlocks)
	return a, b, blocks
}

// toOperations numbers every block of the diff on the side(s) it appears on.
func toOperations(diffs []diffmatchpatch.Diff, blocks []string) []reproducibility.DiffLine {
	var (
		ops     []reproducibility.DiffLine
		oldLine int
		newLine int
	)
	for _, d := range diffs {
		for _, r := range d.Text {
			text := blocks[r-firstBlockRune]
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
				ops = append(ops, reproducibility.DiffLine{Type: reproducibility.DiffContext, Content: text, OldLine: oldLine, NewLine: newLine})
			case diffmatchpatch.DiffDelete:
				oldLine++
				ops = append(ops, reproducibility.DiffLine{Type: reproducibility.DiffRemoved, Content: text, OldLine: oldLine})
			case diffmatchpatch.DiffInsert:
				newLine++
				ops = append(ops, reproducibility.DiffLine{Type: reproducibility.DiffAdded, Content: text, NewLine: newLine})
			}
		}
	}
	return ops
}

// groupIntoHunks cuts the operations into hunks of changes with up to
// contextLines unchanged blocks around them. Changes closer than twice the
// context share a hunk.
func groupIntoHunks(ops []reproducibility.DiffLine, contextLines int) []reproducibility.DiffHunk {
	hunks := []reproducibility.DiffHunk{}

	start, end := -1, -1
	for i, op := range ops {
		if op.Type == reproducibility.DiffContext {
			continue
		}
		if start >= 0 && i-contextLines > end {
			hunks = append(hunks, newHunk(ops, start, end))
			start = -1
		}
		if start < 0 {
			start = max(0, i-contextLines)
		}
		end = min(len(ops), i+contextLines+1)
	}
	if start >= 0 {
		hunks = append(hunks, newHunk(ops, start, end))
	}

	return hunks
}

func newHunk(ops []reproducibility.DiffLine, start, end int) reproducibility.DiffHunk {
	hunk := reproducibility.DiffHunk{Lines: append([]reproducibility.DiffLine(nil), ops[start:end]...)}

	// Block numbers preceding the hunk on each side.
	var oldBefore, newBefore int
	for _, op := range ops[:start] {
		if op.OldLine > 0 {
			oldBefore = op.OldLine
		}
		if op.NewLine > 0 {
			newBefore = op.NewLine
		}
	}

	for _, line := range hunk.Lines {
		if line.Type != reproducibility.DiffAdded {
			hunk.OldCount++
		}
		if line.Type != reproducibility.DiffRemoved {
			hunk.NewCount++
		}
	}

	hunk.OldStart = oldBefore
	if hunk.OldCount > 0 {
		hunk.OldStart++
	}
	hunk.NewStart = newBefore
	if hunk.NewCount > 0 {
		hunk.NewStart++
	}
	return hunk
}
