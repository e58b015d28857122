// Package highlight marks selected lines of code blocks.
//
// [ApplyStep] applies one step of a line-selection directive
// to any [Block]: a sequence of addressable, 1-indexed lines.
// [Bounds] measures the highlighted region with a [Layout].
//
// The package can also render raw source code into a block
// ready for highlighting with [Renderer].
// It uses the Chroma library for syntax highlighting.
package highlight
