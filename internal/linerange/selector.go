package linerange

import (
	"strconv"
	"strings"
)

// Selector selects a single line or an inclusive range of lines.
// Line numbers are 1-based.
//
// The zero value is the empty selector, which selects nothing.
type Selector struct {
	First, Last int

	// HasFirst reports whether First was specified.
	// Selectors without a First select nothing.
	HasFirst bool

	// HasLast reports whether this is a range.
	// If false, the selector picks only the line at First.
	HasLast bool
}

// Line builds a selector for a single line.
func Line(n int) Selector {
	return Selector{First: n, HasFirst: true}
}

// Range builds a selector for lines first through last, inclusive.
func Range(first, last int) Selector {
	return Selector{First: first, Last: last, HasFirst: true, HasLast: true}
}

// IsEmpty reports whether this is the empty selector.
func (s Selector) IsEmpty() bool { return !s.HasFirst }

// String returns the selector in directive form:
// "3" for a single line, "3-5" for a range,
// and an empty string for the empty selector.
func (s Selector) String() string {
	switch {
	case !s.HasFirst:
		return ""
	case s.HasLast:
		return strconv.Itoa(s.First) + string(RangeDelim) + strconv.Itoa(s.Last)
	default:
		return strconv.Itoa(s.First)
	}
}

// Lines returns the positions in [1, n] selected by s
// in ascending order.
// Positions outside that interval are silently dropped.
func (s Selector) Lines(n int) []int {
	lo, hi, ok := s.bounds(n)
	if !ok {
		return nil
	}
	lines := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		lines = append(lines, p)
	}
	return lines
}

// Contains reports whether the line at position p is selected by s.
func (s Selector) Contains(p int) bool {
	switch {
	case !s.HasFirst:
		return false
	case s.HasLast:
		return s.First <= p && p <= s.Last
	default:
		return p == s.First
	}
}

// bounds returns the selected interval clamped to [1, n].
func (s Selector) bounds(n int) (lo, hi int, ok bool) {
	if !s.HasFirst {
		return 0, 0, false
	}

	lo, hi = s.First, s.First
	if s.HasLast {
		hi = s.Last
	}
	lo = max(lo, 1)
	hi = min(hi, n)
	return lo, hi, lo <= hi
}

// Step is the set of selectors active during one reveal state.
type Step []Selector

// String joins the selectors of this step with ','.
func (st Step) String() string {
	parts := make([]string, len(st))
	for i, s := range st {
		parts[i] = s.String()
	}
	return strings.Join(parts, string(LineDelim))
}

// Lines returns the union of lines in [1, n] selected by this step,
// sorted and without duplicates.
func (st Step) Lines(n int) []int {
	var lines []int
	for p := 1; p <= n; p++ {
		for _, s := range st {
			if s.Contains(p) {
				lines = append(lines, p)
				break
			}
		}
	}
	return lines
}

// Ranges returns the lines selected by this step within [1, n]
// as merged, inclusive [first, last] pairs in ascending order.
// Debug logs use this compact form.
func (st Step) Ranges(n int) [][2]int {
	var ranges [][2]int
	for _, p := range st.Lines(n) {
		if k := len(ranges); k > 0 && ranges[k-1][1]+1 == p {
			ranges[k-1][1] = p
			continue
		}
		ranges = append(ranges, [2]int{p, p})
	}
	return ranges
}

// Spec is a parsed directive: an ordered list of steps.
type Spec []Step

// Steps reports the number of steps in the directive.
func (sp Spec) Steps() int { return len(sp) }

// Step returns the step at index i,
// or nil if there's no such step.
func (sp Spec) Step(i int) Step {
	if i < 0 || i >= len(sp) {
		return nil
	}
	return sp[i]
}

// String joins the steps of this directive with '|'.
func (sp Spec) String() string {
	parts := make([]string, len(sp))
	for i, st := range sp {
		parts[i] = st.String()
	}
	return strings.Join(parts, string(StepDelim))
}
