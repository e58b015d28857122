package highlight

// Layout reports where lines are placed by a rendering engine.
type Layout interface {
	// LineBox returns the top offset and height of the line
	// at the 1-based position p.
	LineBox(p int) (top, height float64)
}

// Rect is the vertical extent of a region.
type Rect struct {
	Top, Bottom float64
}

// Bounds returns the region spanned by the highlighted lines,
// from the top of the first line to the bottom of the last.
// lines must be in document order.
//
// Bounds returns the zero Rect if no lines are highlighted.
func Bounds(lines []int, layout Layout) Rect {
	if len(lines) == 0 {
		return Rect{}
	}

	top, _ := layout.LineBox(lines[0])
	lastTop, lastHeight := layout.LineBox(lines[len(lines)-1])
	return Rect{Top: top, Bottom: lastTop + lastHeight}
}

// FixedLayout places lines one after another
// with the same height each.
type FixedLayout struct {
	// LineHeight is the height of each line.
	LineHeight float64

	// Offset is the top of the first line.
	Offset float64
}

var _ Layout = FixedLayout{}

// LineBox returns the box of the line at position p.
func (l FixedLayout) LineBox(p int) (top, height float64) {
	return l.Offset + float64(p-1)*l.LineHeight, l.LineHeight
}
