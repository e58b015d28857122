package highlight

import (
	"sort"

	"go.abhg.dev/linehl/internal/linerange"
)

// Block is a code block with addressable lines.
type Block interface {
	// Len reports the number of line positions in the block.
	Len() int

	// MarkLine marks the line at the 1-based position p as highlighted.
	// It reports whether there was a line at that position to mark.
	//
	// Marking a line more than once has no additional effect.
	MarkLine(p int) bool

	// MarkHighlighted records that the block has highlighted lines.
	MarkHighlighted()

	// MarkWrapper marks the block's container
	// as wrapping a highlighted block.
	MarkWrapper()
}

// ApplyStep highlights the lines of b selected by step.
// It returns the positions of the lines it marked in ascending order.
//
// Selectors that match nothing, including out of range lines,
// are skipped.
// If no selector in the step matches a line,
// the block is not marked as highlighted.
func ApplyStep(b Block, step linerange.Step) []int {
	n := b.Len()
	marked := make(map[int]struct{})
	for _, sel := range step {
		b.MarkWrapper()

		var hit bool
		for _, p := range sel.Lines(n) {
			if b.MarkLine(p) {
				marked[p] = struct{}{}
				hit = true
			}
		}
		if hit {
			b.MarkHighlighted()
		}
	}

	if len(marked) == 0 {
		return nil
	}
	lines := make([]int, 0, len(marked))
	for p := range marked {
		lines = append(lines, p)
	}
	sort.Ints(lines)
	return lines
}
