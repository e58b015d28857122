package highlight

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
)

// Class and attribute names shared with presentation stylesheets.
const (
	SourceCodeClass    = "sourceCode"
	HighlightLineClass = "highlight-line"
	HasHighlightsClass = "has-line-highlights"
	CodeWrapperClass   = "code-wrapper"
	FragmentClass      = "fragment"

	LineNumbersAttr   = "data-code-line-numbers"
	FragmentIndexAttr = "data-fragment-index"
)

// _lineHighlightCSS dims lines that aren't selected
// in blocks that have a selection.
const _lineHighlightCSS = `.` + HasHighlightsClass + ` > span:not(.` + HighlightLineClass + `) { opacity: 0.4; }
`

// Renderer renders raw source code into a source code container:
//
//	<div class="sourceCode" data-code-line-numbers="...">
//	  <pre class="sourceCode LANG"><code class="sourceCode LANG">
//	    <span id="ID-1">...</span>
//	    <span id="ID-2">...</span>
//	  </code></pre>
//	</div>
//
// Each line of code is a separate span child of <code>
// so that individual lines can be highlighted.
type Renderer struct {
	// Style used for syntax highlighting of code.
	Style *chroma.Style

	// UseClasses specifies whether the renderer
	// uses inline 'style' attributes for highlighting,
	// or classes, assuming use of an appropriate style sheet.
	UseClasses bool

	once      sync.Once
	formatter *chromahtml.Formatter
}

func (r *Renderer) init() {
	r.once.Do(func() {
		if r.Style == nil {
			r.Style = PlainStyle
		}
		r.formatter = chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(r.UseClasses),
		)
	})
}

// WriteCSS writes the style sheet for this renderer to w.
// This includes line highlighting rules
// and, if the renderer uses classes, the syntax highlighting classes.
func (r *Renderer) WriteCSS(w io.Writer) error {
	r.init()

	if _, err := io.WriteString(w, _lineHighlightCSS); err != nil {
		return errtrace.Wrap(err)
	}
	if !r.UseClasses {
		return nil
	}
	return errtrace.Wrap(r.formatter.WriteCSS(w, r.Style))
}

// Snippet is a piece of source code to render.
type Snippet struct {
	// ID is the identifier of the block.
	// Line spans are identified as ID-1, ID-2, and so on.
	// Defaults to "cb1".
	ID string

	// Lang is the name of the language, used for CSS classes.
	Lang string

	// Lines is the line-selection directive for the block, if any.
	Lines string

	// Source is the source code.
	Source []byte

	// Lexer for the source code.
	// Defaults to the lexer for Lang.
	Lexer Lexer
}

// Render renders the given snippet into HTML.
func (r *Renderer) Render(s *Snippet) (string, error) {
	r.init()

	lexer := s.Lexer
	if lexer == nil {
		lexer = LexerFor(s.Lang)
	}
	tokens, err := lexer.Lex(s.Source)
	if err != nil {
		return "", errtrace.Wrap(fmt.Errorf("lex %v: %w", s.Lang, err))
	}

	id := s.ID
	if id == "" {
		id = "cb1"
	}
	id = template.HTMLEscapeString(id)
	classes := SourceCodeClass
	if s.Lang != "" {
		classes += " " + template.HTMLEscapeString(s.Lang)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<div class=%q id=%q", SourceCodeClass, id)
	if s.Lines != "" {
		fmt.Fprintf(&buf, " %s=%q", LineNumbersAttr, template.HTMLEscapeString(s.Lines))
	}
	buf.WriteString(">")
	if r.UseClasses {
		fmt.Fprintf(&buf, "<pre class=%q>", classes+" "+chroma.StandardTypes[chroma.PreWrapper])
	} else {
		style := chromahtml.StyleEntryToCSS(r.Style.Get(chroma.PreWrapper))
		fmt.Fprintf(&buf, "<pre class=%q style=%q>", classes, style)
	}
	fmt.Fprintf(&buf, "<code class=%q>", classes)

	for i, line := range splitLines(tokens) {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "<span id=%q>", fmt.Sprintf("%s-%d", id, i+1))
		if err := r.formatter.Format(&buf, r.Style, chroma.Literator(line...)); err != nil {
			return "", errtrace.Wrap(err)
		}
		buf.WriteString("</span>")
	}

	buf.WriteString("</code></pre></div>")
	return buf.String(), nil
}

// splitLines splits tokens into lines without their line terminators.
// A trailing line with no text is dropped.
func splitLines(tokens []chroma.Token) [][]chroma.Token {
	var lines [][]chroma.Token
	for _, line := range chroma.SplitTokensIntoLines(tokens) {
		out := make([]chroma.Token, 0, len(line))
		for _, tok := range line {
			tok.Value = strings.TrimSuffix(tok.Value, "\n")
			if tok.Value != "" {
				out = append(out, tok)
			}
		}
		lines = append(lines, out)
	}

	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	return lines
}
