// Package dom applies line-selection directives to HTML documents.
//
// It looks for source code containers (div.sourceCode)
// with a data-code-line-numbers attribute,
// moves the attribute onto the nested code elements,
// and highlights the lines selected by the first step of the directive.
// The host presentation framework is expected to handle the remaining steps,
// unless [Processor.Fragments] is set.
package dom
