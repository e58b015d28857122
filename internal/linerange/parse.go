package linerange

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Delimiters of the directive syntax.
const (
	StepDelim  = '|'
	LineDelim  = ','
	RangeDelim = '-'
)

var (
	_directiveRe = regexp.MustCompile(`^[0-9|,-]+$`)
	_tokenRe     = regexp.MustCompile(`^[0-9-]+$`)
)

// _whitespacePattern is removed from directives before parsing.
//
// This is the literal text "/s/g", not a pattern for whitespace.
// Directives with real whitespace in them are not supported,
// and never pass [Valid] anyway.
const _whitespacePattern = "/s/g"

// Valid reports whether attr is a line-selection directive:
// a non-empty string of digits and the delimiters '|', ',', and '-'.
//
// Attributes that aren't valid should be left alone entirely.
func Valid(attr string) bool {
	return _directiveRe.MatchString(attr)
}

// Parse parses a directive into its steps.
// It always returns at least one step.
//
// Parse does not check [Valid].
// Tokens within a step that aren't line numbers or ranges
// parse to empty selectors.
func Parse(attr string) Spec {
	attr = strings.Replace(attr, _whitespacePattern, "", 1)

	steps := strings.Split(attr, string(StepDelim))
	spec := make(Spec, len(steps))
	for i, step := range steps {
		tokens := strings.Split(step, string(LineDelim))
		sels := make(Step, len(tokens))
		for j, tok := range tokens {
			sels[j] = parseSelector(tok)
		}
		spec[i] = sels
	}
	return spec
}

// parseSelector parses a single "N" or "N-M" token.
//
// Extra range groups ("1-2-3") are ignored,
// and a missing or empty second group ("3-") means a single line.
func parseSelector(tok string) Selector {
	if !_tokenRe.MatchString(tok) {
		return Selector{}
	}

	groups := strings.Split(tok, string(RangeDelim))
	first, ok := parseLine(groups[0])
	if !ok {
		// "-3" and "-" have no first line.
		return Selector{}
	}

	sel := Line(first)
	if len(groups) > 1 {
		if last, ok := parseLine(groups[1]); ok {
			sel.Last = last
			sel.HasLast = true
		}
	}
	return sel
}

// parseLine parses a base-10 line number.
// Numbers too large to represent are clamped to math.MaxInt,
// which is past the end of any real code block.
func parseLine(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxInt, true
		}
		return 0, false
	}
	return n, true
}
