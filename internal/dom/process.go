package dom

import (
	"bytes"
	"io"
	"log"
	"strconv"

	"braces.dev/errtrace"
	"github.com/andybalholm/cascadia"
	"go.abhg.dev/linehl/internal/highlight"
	"go.abhg.dev/linehl/internal/linerange"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	_containerSel = cascadia.MustCompile("div." + highlight.SourceCodeClass)
	_codeSel      = cascadia.MustCompile("pre code")
)

// Processor highlights lines in HTML documents.
//
// The zero value is ready to use.
type Processor struct {
	// Fragments expands steps after the first into reveal.js fragments:
	// copies of the code element placed after it,
	// each highlighting the lines of one step.
	//
	// If unset, only the first step is applied.
	Fragments bool

	// Layout places lines to compute [BlockResult.Bounds].
	// Defaults to lines of unit height.
	Layout highlight.Layout

	// Log receives progress information.
	// Defaults to discarding output.
	Log *log.Logger
}

// Result summarizes the changes made to a document.
type Result struct {
	// Containers is the number of source code containers found.
	Containers int

	// Directives is the number of containers
	// with a line-selection directive.
	Directives int

	// Skipped is the number of containers
	// whose attribute was not a line-selection directive.
	Skipped int

	// Blocks lists the code elements that were processed.
	Blocks []BlockResult
}

// Changed reports whether the document was modified.
func (r *Result) Changed() bool {
	return r.Directives > 0
}

// BlockResult reports on a single processed code element.
type BlockResult struct {
	// Directive is the line-selection directive of the block.
	Directive string

	// Steps is the number of steps in the directive.
	Steps int

	// Lines is the number of line positions in the block.
	Lines int

	// Highlighted lists the positions of lines highlighted by the first step.
	Highlighted []int

	// Bounds is the region spanned by the highlighted lines.
	Bounds highlight.Rect

	// Fragments is the number of fragments generated for the block.
	Fragments int
}

func (p *Processor) logger() *log.Logger {
	if p.Log != nil {
		return p.Log
	}
	return log.New(io.Discard, "", 0)
}

func (p *Processor) layout() highlight.Layout {
	if p.Layout != nil {
		return p.Layout
	}
	return highlight.FixedLayout{LineHeight: 1}
}

// Process highlights lines in all source code containers under root.
// root is modified in place.
//
// Containers without a valid directive are left untouched.
func (p *Processor) Process(root *html.Node) *Result {
	logger := p.logger()

	var res Result
	for _, container := range cascadia.QueryAll(root, _containerSel) {
		res.Containers++

		directive, ok := attr(container, highlight.LineNumbersAttr)
		if !ok {
			continue
		}
		if !linerange.Valid(directive) {
			logger.Printf("skipping container: %q is not a line selection", directive)
			res.Skipped++
			continue
		}

		// The directive moves from the container to the code elements.
		res.Directives++
		removeAttr(container, highlight.LineNumbersAttr)
		for _, code := range cascadia.QueryAll(container, _codeSel) {
			setAttr(code, highlight.LineNumbersAttr, directive)
			br := p.processCode(code, directive)
			logger.Printf("%q: selected %v of %d lines (steps=%d, fragments=%d, bounds=%v-%v)",
				directive, linerange.Parse(directive).Step(0).Ranges(br.Lines),
				br.Lines, br.Steps, br.Fragments, br.Bounds.Top, br.Bounds.Bottom)
			res.Blocks = append(res.Blocks, br)
		}
	}
	return &res
}

func (p *Processor) processCode(code *html.Node, directive string) BlockResult {
	spec := linerange.Parse(directive)
	br := BlockResult{
		Directive: directive,
		Steps:     spec.Steps(),
	}

	// Fragments must be copied before the first step is applied
	// so they don't inherit its highlights.
	if p.Fragments && code.Parent != nil {
		prev := code
		for i := 1; i < spec.Steps(); i++ {
			frag := clone(code)
			removeAttr(frag, highlight.LineNumbersAttr)
			addClass(frag, highlight.FragmentClass)
			setAttr(frag, highlight.FragmentIndexAttr, strconv.Itoa(i-1))
			highlight.ApplyStep(newCodeBlock(frag), spec.Step(i))

			code.Parent.InsertBefore(frag, prev.NextSibling)
			prev = frag
			br.Fragments++
		}
	}

	block := newCodeBlock(code)
	br.Lines = block.Len()
	highlight.ApplyStep(block, spec.Step(0))
	br.Highlighted = HighlightedLines(code)
	br.Bounds = highlight.Bounds(br.Highlighted, p.layout())
	return br
}

// HighlightedLines returns the positions of highlighted lines in a code
// element in document order.
func HighlightedLines(code *html.Node) []int {
	var lines []int
	for i, c := range elementChildren(code) {
		if isSpan(c) && hasClass(c, highlight.HighlightLineClass) {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// Rewrite parses an HTML document, highlights lines in it,
// and returns the rendered result.
//
// If the document has nothing to highlight,
// src is returned as-is.
func (p *Processor) Rewrite(src []byte) ([]byte, *Result, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}

	res := p.Process(doc)
	if !res.Changed() {
		return src, res, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return buf.Bytes(), res, nil
}

// RewriteFragment is a variant of [Processor.Rewrite]
// for HTML snippets that aren't full documents.
// The output is not wrapped in <html> and <body> tags.
func (p *Processor) RewriteFragment(src []byte) ([]byte, *Result, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}

	nodes, err := html.ParseFragment(bytes.NewReader(src), body)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	res := p.Process(body)
	if !res.Changed() {
		return src, res, nil
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, nil, errtrace.Wrap(err)
		}
	}
	return buf.Bytes(), res, nil
}

// codeBlock adapts a code element to [highlight.Block].
// Lines are the element children of the code element;
// only <span> children can be highlighted.
type codeBlock struct {
	code  *html.Node
	lines []*html.Node
}

var _ highlight.Block = (*codeBlock)(nil)

func newCodeBlock(code *html.Node) *codeBlock {
	return &codeBlock{code: code, lines: elementChildren(code)}
}

func (b *codeBlock) Len() int { return len(b.lines) }

func (b *codeBlock) MarkLine(p int) bool {
	if p < 1 || p > len(b.lines) {
		return false
	}
	line := b.lines[p-1]
	if !isSpan(line) {
		return false
	}
	addClass(line, highlight.HighlightLineClass)
	return true
}

func (b *codeBlock) MarkHighlighted() {
	addClass(b.code, highlight.HasHighlightsClass)
}

func (b *codeBlock) MarkWrapper() {
	addClass(b.code.Parent, highlight.CodeWrapperClass)
}
