// Package linerange parses line-selection directives
// such as those found in data-code-line-numbers attributes.
//
// A directive is a sequence of steps separated by '|'.
// Each step is a sequence of selectors separated by ','.
// A selector is a single line number ("3")
// or an inclusive range of lines ("8-11").
//
//	1|3,6|8-11
//
// The above has three steps: line 1; lines 3 and 6; lines 8 through 11.
// Steps usually correspond to successive presentation fragments.
//
// Parsing never fails.
// Tokens that aren't line numbers or ranges become empty selectors
// that match no lines.
// Use [Valid] to decide whether a string is a directive at all.
package linerange
