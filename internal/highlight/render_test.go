package highlight

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type stubLexer struct {
	tokens []chroma.Token
	err    error
}

func (l *stubLexer) Lex([]byte) ([]chroma.Token, error) {
	return l.tokens, l.err
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := Renderer{Style: PlainStyle, UseClasses: true}
	got, err := r.Render(&Snippet{
		ID:    "cb3",
		Lang:  "go",
		Lines: "1|2",
		Lexer: &stubLexer{
			tokens: []chroma.Token{
				{Type: chroma.Comment, Value: "/* foo */"},
				{Type: chroma.Text, Value: "\n"},
				{Type: chroma.Text, Value: "a < b\n"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`<div class="sourceCode" id="cb3" data-code-line-numbers="1|2">`+
			`<pre class="sourceCode go chroma"><code class="sourceCode go">`+
			`<span id="cb3-1"><span class="c">/* foo */</span></span>`+"\n"+
			`<span id="cb3-2">a &lt; b</span>`+
			`</code></pre></div>`,
		got)
}

func TestRenderer_Render_lang(t *testing.T) {
	t.Parallel()

	src := "package main\n\nfunc main() {\n\tprintln(1)\n}\n"

	var r Renderer
	got, err := r.Render(&Snippet{
		Lang:   "go",
		Lines:  "3-5",
		Source: []byte(src),
	})
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(got))
	require.NoError(t, err)

	div := cascadia.MustCompile("div.sourceCode").MatchFirst(doc)
	require.NotNil(t, div, "container missing:\n%s", got)

	var attr string
	for _, a := range div.Attr {
		if a.Key == LineNumbersAttr {
			attr = a.Val
		}
	}
	assert.Equal(t, "3-5", attr)

	lines := cascadia.QueryAll(doc, cascadia.MustCompile("pre > code > span"))
	require.Len(t, lines, 5)

	var text bytes.Buffer
	for i, line := range lines {
		if i > 0 {
			text.WriteString("\n")
		}
		writeText(&text, line)
	}
	assert.Equal(t, strings.TrimSuffix(src, "\n"), text.String())
}

func TestRenderer_Render_lexError(t *testing.T) {
	t.Parallel()

	var r Renderer
	_, err := r.Render(&Snippet{
		Lang:  "go",
		Lexer: &stubLexer{err: errors.New("great sadness")},
	})
	assert.ErrorContains(t, err, "great sadness")
}

func TestRenderer_WriteCSS(t *testing.T) {
	t.Parallel()

	t.Run("classes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := Renderer{Style: PlainStyle, UseClasses: true}
		require.NoError(t, r.WriteCSS(&buf))
		assert.Contains(t, buf.String(), ".has-line-highlights")
		assert.Contains(t, buf.String(), ".chroma")
	})

	t.Run("inline", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := Renderer{Style: PlainStyle}
		require.NoError(t, r.WriteCSS(&buf))
		assert.Equal(t, _lineHighlightCSS, buf.String())
	})
}

func TestStyleFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PlainStyle, StyleFor(""))
	assert.Equal(t, PlainStyle, StyleFor("plain"))
	assert.NotNil(t, StyleFor("monokai"))
}

func writeText(buf *bytes.Buffer, n *html.Node) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(buf, c)
	}
}
